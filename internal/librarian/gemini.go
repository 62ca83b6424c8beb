package librarian

import (
	"context"
	"fmt"
	"strings"

	"google.golang.org/genai"
)

type geminiClient struct {
	client *genai.Client
	model  string
}

func newGeminiClient(ctx context.Context, apiKey, model string) (*geminiClient, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}
	return &geminiClient{client: client, model: model}, nil
}

func (c *geminiClient) Name() string {
	return fmt.Sprintf("Gemini (%s)", c.model)
}

// Close is a no-op; the REST transport holds no long-lived connection.
func (c *geminiClient) Close() error {
	return nil
}

func (c *geminiClient) Recommend(ctx context.Context, title, author string) (string, error) {
	config := &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText(criticPersona, genai.RoleUser),
	}
	resp, err := c.client.Models.GenerateContent(ctx, c.model, genai.Text(buildRecommendationPrompt(title, author)), config)
	if err != nil {
		return "", fmt.Errorf("recommendation request: %w", err)
	}
	return candidateText(resp)
}

func (c *geminiClient) Summarize(ctx context.Context, title, description string) (string, error) {
	resp, err := c.client.Models.GenerateContent(ctx, c.model, genai.Text(buildSummaryPrompt(title, description)), nil)
	if err != nil {
		return "", fmt.Errorf("summary request: %w", err)
	}
	return candidateText(resp)
}

func (c *geminiClient) Chat(ctx context.Context, message string) (Reply, error) {
	config := &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText(chatPersona, genai.RoleUser),
		Tools:             []*genai.Tool{{GoogleSearch: &genai.GoogleSearch{}}},
	}
	resp, err := c.client.Models.GenerateContent(ctx, chatModel, genai.Text(message), config)
	if err != nil {
		return Reply{}, fmt.Errorf("chat request: %w", err)
	}
	text, err := candidateText(resp)
	if err != nil {
		return Reply{}, err
	}
	return Reply{Text: text, Refs: groundingRefs(resp)}, nil
}

func candidateText(resp *genai.GenerateContentResponse) (string, error) {
	if len(resp.Candidates) == 0 {
		return "", fmt.Errorf("no candidates returned from gemini")
	}
	candidate := resp.Candidates[0]
	if candidate.Content == nil || len(candidate.Content.Parts) == 0 {
		return "", fmt.Errorf("empty content returned from gemini")
	}
	var b strings.Builder
	for _, part := range candidate.Content.Parts {
		if part != nil {
			b.WriteString(part.Text)
		}
	}
	if b.Len() == 0 {
		return "", fmt.Errorf("no text returned from gemini")
	}
	return b.String(), nil
}

func groundingRefs(resp *genai.GenerateContentResponse) []GroundingRef {
	if len(resp.Candidates) == 0 {
		return nil
	}
	meta := resp.Candidates[0].GroundingMetadata
	if meta == nil {
		return nil
	}
	var refs []GroundingRef
	for _, chunk := range meta.GroundingChunks {
		if chunk == nil || chunk.Web == nil || chunk.Web.URI == "" {
			continue
		}
		refs = append(refs, GroundingRef{Title: chunk.Web.Title, URI: chunk.Web.URI})
	}
	return refs
}
