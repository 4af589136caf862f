package enrichment

import (
	"context"
	"fmt"

	"google.golang.org/genai"
)

// DefaultVertexModel is used when no model is configured.
const DefaultVertexModel = "gemini-2.0-flash"

// VertexClient generates text through the Vertex AI backend, authenticated with
// application default credentials.
type VertexClient struct {
	client *genai.Client
	model  string
	config *genai.GenerateContentConfig
}

// NewVertexClient creates a client bound to a Google Cloud project and region.
func NewVertexClient(ctx context.Context, project, location, model string) (*VertexClient, error) {
	if project == "" {
		return nil, fmt.Errorf("vertex: project is required")
	}
	if location == "" {
		location = "us-central1"
	}
	if model == "" {
		model = DefaultVertexModel
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		Project:  project,
		Location: location,
		Backend:  genai.BackendVertexAI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create GenAI client: %w", err)
	}

	return &VertexClient{
		client: client,
		model:  model,
		config: &genai.GenerateContentConfig{
			Temperature:      genai.Ptr(float32(0.2)),
			ResponseMIMEType: "application/json",
		},
	}, nil
}

// Generate returns the concatenated text of the response.
func (c *VertexClient) Generate(ctx context.Context, prompt string) (string, error) {
	result, err := c.client.Models.GenerateContent(ctx, c.model, genai.Text(prompt), c.config)
	if err != nil {
		return "", fmt.Errorf("vertex generation failed: %w", err)
	}
	return result.Text(), nil
}
