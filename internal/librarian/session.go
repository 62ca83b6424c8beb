package librarian

import "strings"

// Greeting opens every assistant session.
const Greeting = "Greetings, seeker of knowledge. I am Akram. How can I assist you in your literary journey? I can recommend books, discuss authors, or even find nearby libraries for you."

// fallbackReply stands in for the assistant when the gateway fails; the
// failure is absorbed into the conversation rather than shown as an error.
const fallbackReply = "Forgive me, my connection to the great library is currently flickering. Please try again later."

// Role tags one side of the conversation.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Turn is a single conversation entry.
type Turn struct {
	Role Role
	Text string
}

// Session holds the append-only conversation log and the in-flight flag. It
// is independent of all search state and never persisted.
type Session struct {
	turns    []Turn
	inFlight bool
}

// NewSession returns a log seeded with the librarian's greeting.
func NewSession() *Session {
	return &Session{turns: []Turn{{Role: RoleAssistant, Text: Greeting}}}
}

// Send appends the user's message optimistically and marks a request in
// flight. It reports false (and mutates nothing) for blank input or when a
// reply is already pending; the returned text is what should be forwarded to
// the gateway.
func (s *Session) Send(text string) (string, bool) {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" || s.inFlight {
		return "", false
	}
	s.turns = append(s.turns, Turn{Role: RoleUser, Text: trimmed})
	s.inFlight = true
	return trimmed, true
}

// Resolve appends the assistant's reply, or the fixed fallback when the
// request failed, and clears the in-flight flag.
func (s *Session) Resolve(reply Reply, err error) {
	if !s.inFlight {
		return
	}
	s.inFlight = false
	if err != nil {
		s.turns = append(s.turns, Turn{Role: RoleAssistant, Text: fallbackReply})
		return
	}
	s.turns = append(s.turns, Turn{Role: RoleAssistant, Text: reply.Render()})
}

// Turns returns a copy of the conversation log.
func (s *Session) Turns() []Turn {
	return append([]Turn(nil), s.turns...)
}

// InFlight reports whether a reply is pending.
func (s *Session) InFlight() bool {
	return s.inFlight
}
