package librarian

import (
	"context"
	"fmt"
	"os"
	"strings"
)

const (
	// defaultModel serves the recommendation and summary paths.
	defaultModel = "gemini-3-flash-preview"
	// chatModel serves the conversational path; it supports search grounding.
	chatModel = "gemini-2.5-flash"

	apiKeyEnv = "GEMINI_API_KEY"
)

const (
	criticPersona = "You are a world-class literary critic and expert librarian named Akram. You have read every book in existence."
	chatPersona   = "You are Akram, the AI librarian. You help users find books, discuss literature, and discover nearby real-world libraries. Be elegant and scholarly."
)

// Config describes how to build a librarian client.
type Config struct {
	// Model overrides defaultModel for the recommendation and summary paths.
	Model string
	// APIKey overrides the GEMINI_API_KEY environment variable.
	APIKey string
}

// Client exposes the three derivative-text paths backed by the LLM gateway.
type Client interface {
	// Recommend suggests thematically similar works for a finished book.
	Recommend(ctx context.Context, title, author string) (string, error)
	// Summarize condenses a book description into three bullet points.
	Summarize(ctx context.Context, title, description string) (string, error)
	// Chat forwards one user message and returns the reply together with any
	// grounding references the gateway attached.
	Chat(ctx context.Context, message string) (Reply, error)
	// Name identifies the configured backend for status lines.
	Name() string
	// Close releases the underlying connection.
	Close() error
}

// GroundingRef is a structured citation returned alongside a grounded reply.
type GroundingRef struct {
	Title string
	URI   string
}

// Reply is the assistant's text plus any grounding references.
type Reply struct {
	Text string
	Refs []GroundingRef
}

// Render appends the grounding references to the reply text as markdown-style
// links, one per line.
func (r Reply) Render() string {
	if len(r.Refs) == 0 {
		return r.Text
	}
	var b strings.Builder
	b.WriteString(r.Text)
	b.WriteString("\n\nI have found these locations for you:")
	for _, ref := range r.Refs {
		b.WriteString(fmt.Sprintf("\n[%s](%s)", ref.Title, ref.URI))
	}
	return b.String()
}

// NewFromEnv builds a Gemini-backed client. The credential is read once here
// and held read-only for the process lifetime; a missing key is a
// configuration error, reported immediately rather than on first request.
func NewFromEnv(ctx context.Context, cfg Config) (Client, error) {
	apiKey := cfg.APIKey
	if apiKey == "" {
		apiKey = os.Getenv(apiKeyEnv)
	}
	if apiKey == "" {
		return nil, fmt.Errorf("librarian: %s is not set", apiKeyEnv)
	}
	model := cfg.Model
	if model == "" {
		model = defaultModel
	}
	client, err := newGeminiClient(ctx, apiKey, model)
	if err != nil {
		// Return a bare nil so callers' nil checks see a nil interface,
		// not a typed nil wrapping a dead *geminiClient.
		return nil, err
	}
	return client, nil
}
