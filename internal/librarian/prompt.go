package librarian

import (
	"fmt"
	"strings"
)

func buildRecommendationPrompt(title, author string) string {
	if strings.TrimSpace(author) == "" {
		author = "Unknown"
	}
	return fmt.Sprintf(
		"I just finished reading %q by %s. Can you suggest 3 similar books and explain why I might like them based on themes, tone, and style? Keep it concise and formatted for a library app.",
		title, author,
	)
}

func buildSummaryPrompt(title, description string) string {
	if strings.TrimSpace(description) == "" {
		description = "No description available"
	}
	return fmt.Sprintf(
		"Summarize the following book description for %q in exactly 3 bullet points, highlighting the core plot, tone, and target audience: %s",
		title, description,
	)
}
