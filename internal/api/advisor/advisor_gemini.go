package advisor

import (
	"context"

	"google.golang.org/genai"

	"github.com/FACorreiaa/wagewatch/internal/types"
)

// TextGenerator is a single-turn language model.
type TextGenerator interface {
	GenerateContent(ctx context.Context, prompt string, config *genai.GenerateContentConfig) (string, error)
	Model() string
}

// GeminiProvider answers advice questions with a Gemini model.
type GeminiProvider struct {
	ai     TextGenerator
	config *genai.GenerateContentConfig
}

func NewGeminiProvider(ai TextGenerator) *GeminiProvider {
	return &GeminiProvider{
		ai:     ai,
		config: &genai.GenerateContentConfig{Temperature: genai.Ptr[float32](0.5)},
	}
}

func (g *GeminiProvider) Advice(ctx context.Context, req types.AdviceRequest) (*types.AdviceResponse, error) {
	text, err := g.ai.GenerateContent(ctx, BuildPrompt(req), g.config)
	if err != nil {
		return nil, err
	}
	return &types.AdviceResponse{Response: text, Model: g.ai.Model()}, nil
}
