package openlibrary

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Text models the two shapes Open Library uses for long-form prose: either a
// bare JSON string, or an object carrying the string in a "value" field.
type Text struct {
	value   string
	wrapped bool
}

// PlainText returns a Text holding a bare string.
func PlainText(value string) Text {
	return Text{value: value}
}

// WrappedText returns a Text holding an object-wrapped string.
func WrappedText(value string) Text {
	return Text{value: value, wrapped: true}
}

// String normalizes both variants to the underlying prose.
func (t Text) String() string {
	return t.value
}

// Wrapped reports whether the payload arrived in the object form.
func (t Text) Wrapped() bool {
	return t.wrapped
}

// Empty reports whether the field was absent or blank.
func (t Text) Empty() bool {
	return strings.TrimSpace(t.value) == ""
}

func (t *Text) UnmarshalJSON(data []byte) error {
	var plain string
	if err := json.Unmarshal(data, &plain); err == nil {
		*t = PlainText(plain)
		return nil
	}
	var wrapped struct {
		Value string `json:"value"`
	}
	if err := json.Unmarshal(data, &wrapped); err == nil {
		*t = WrappedText(wrapped.Value)
		return nil
	}
	return fmt.Errorf("text field is neither a string nor a value object: %s", clipForError(data))
}

func clipForError(data []byte) string {
	const limit = 64
	if len(data) <= limit {
		return string(data)
	}
	return string(data[:limit]) + "…"
}
