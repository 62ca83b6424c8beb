package librarian

import (
	"context"
	"strings"
	"testing"
)

func TestReplyRenderWithoutRefs(t *testing.T) {
	t.Parallel()

	reply := Reply{Text: "Try The Dispossessed."}
	if got := reply.Render(); got != "Try The Dispossessed." {
		t.Fatalf("Render = %q, want the bare text", got)
	}
}

func TestReplyRenderAppendsGroundingLinks(t *testing.T) {
	t.Parallel()

	reply := Reply{
		Text: "There are two branches near you.",
		Refs: []GroundingRef{
			{Title: "City Archive", URI: "https://example.org/archive"},
			{Title: "Central Library", URI: "https://example.org/central"},
		},
	}
	got := reply.Render()
	if !strings.HasPrefix(got, "There are two branches near you.") {
		t.Fatalf("reply text must come first, got %q", got)
	}
	if !strings.Contains(got, "I have found these locations for you:") {
		t.Fatalf("grounding header missing: %q", got)
	}
	if !strings.HasSuffix(got, "[Central Library](https://example.org/central)") {
		t.Fatalf("links must trail the reply, got %q", got)
	}
	if strings.Index(got, "[City Archive]") > strings.Index(got, "[Central Library]") {
		t.Fatal("grounding links must keep their order")
	}
}

func TestNewFromEnvFailsFastWithoutKey(t *testing.T) {
	t.Setenv(apiKeyEnv, "")

	client, err := NewFromEnv(context.Background(), Config{})
	if err == nil {
		t.Fatal("missing credential must be reported immediately")
	}
	if !strings.Contains(err.Error(), apiKeyEnv) {
		t.Fatalf("error should name the missing variable, got %v", err)
	}
	// A nil interface, not a typed nil: callers decide whether the
	// assistant is available by comparing against nil.
	if client != nil {
		t.Fatalf("failed construction must return a nil interface, got %T", client)
	}
}
