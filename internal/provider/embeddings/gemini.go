package embeddings

import (
	"context"
	"fmt"

	"github.com/algotutor-core/server/internal/agent/model"
	logx "github.com/algotutor-core/server/pkg/logger"
	"google.golang.org/genai"
)

// GeminiEmbedder produces fixed-dimensionality embeddings via the Gemini API.
type GeminiEmbedder struct {
	client     *genai.Client
	model      string
	dimensions int
}

// NewGeminiEmbedder creates the embedding provider. Callers wire it as an
// optional dependency: when construction fails the semantic cache simply runs
// without an embedder.
func NewGeminiEmbedder(ctx context.Context, apiKey, baseURL string, cfg model.EmbeddingConfig) (*GeminiEmbedder, error) {
	clientCfg := &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	}
	if baseURL != "" {
		clientCfg.HTTPOptions.BaseURL = baseURL
	}

	client, err := genai.NewClient(ctx, clientCfg)
	if err != nil {
		logx.Error().Err(err).Msg("Error creating Gemini client for embeddings")
		return nil, fmt.Errorf("error creating Gemini embeddings client: %w", err)
	}

	return &GeminiEmbedder{
		client:     client,
		model:      cfg.Model,
		dimensions: cfg.Dimensions,
	}, nil
}

// Embed returns the embedding vector for text, converted to float64 for
// similarity math.
func (e *GeminiEmbedder) Embed(ctx context.Context, text string) ([]float64, error) {
	contents := []*genai.Content{
		genai.NewContentFromText(text, genai.RoleUser),
	}
	cfg := &genai.EmbedContentConfig{}
	if e.dimensions > 0 {
		cfg.OutputDimensionality = genai.Ptr(int32(e.dimensions))
	}

	resp, err := e.client.Models.EmbedContent(ctx, e.model, contents, cfg)
	if err != nil {
		return nil, fmt.Errorf("embed content: %w", err)
	}
	if len(resp.Embeddings) == 0 || len(resp.Embeddings[0].Values) == 0 {
		return nil, fmt.Errorf("embed content: empty embedding for model %s", e.model)
	}

	values := resp.Embeddings[0].Values
	vec := make([]float64, len(values))
	for i, v := range values {
		vec[i] = float64(v)
	}
	return vec, nil
}
