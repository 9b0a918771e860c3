package generation

import (
	"context"
	"strings"
	"time"

	"github.com/andrewpaige1/studybuddy-api/logger"
	"google.golang.org/genai"
)

const chatInstruction = "You are a friendly study assistant. Answer clearly and concisely, " +
	"use markdown when it helps, and keep the student's earlier questions in mind."

type gemini struct {
	client *genai.Client
	model  string
	log    *logger.Logger
}

// NewGemini returns a Generator backed by the Gemini API. A missing API key
// is not a startup error: every call then fails with ErrGenerationFailed.
func NewGemini(ctx context.Context, apiKey, model string, log *logger.Logger) (Generator, error) {
	g := &gemini{model: model, log: log.With("component", "gemini")}
	apiKey = strings.TrimSpace(apiKey)
	if apiKey == "" {
		g.log.Warn("GEMINI_API_KEY not set; generation endpoints will fail")
		return g, nil
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, err
	}
	g.client = client
	return g, nil
}

func (g *gemini) Generate(ctx context.Context, prompt string, expectStructured bool) (string, error) {
	cfg := &genai.GenerateContentConfig{}
	if expectStructured {
		cfg.ResponseMIMEType = "application/json"
	}
	return g.call(ctx, genai.Text(prompt), cfg)
}

func (g *gemini) Converse(ctx context.Context, history []Turn, message string) (string, error) {
	contents := make([]*genai.Content, 0, len(history)+1)
	for _, turn := range history {
		contents = append(contents, genai.NewContentFromText(turn.Text, genai.Role(turn.Role)))
	}
	contents = append(contents, genai.NewContentFromText(message, genai.RoleUser))

	cfg := &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText(chatInstruction, genai.RoleUser),
	}
	return g.call(ctx, contents, cfg)
}

func (g *gemini) call(ctx context.Context, contents []*genai.Content, cfg *genai.GenerateContentConfig) (string, error) {
	if g.client == nil {
		return "", failed("missing GEMINI_API_KEY")
	}
	start := time.Now()
	resp, err := g.client.Models.GenerateContent(ctx, g.model, contents, cfg)
	if err != nil {
		return "", failed("gemini %s: %v", g.model, err)
	}
	text := resp.Text()
	g.log.Debug("gemini call", "model", g.model, "duration_ms", time.Since(start).Milliseconds(), "chars", len(text))
	if strings.TrimSpace(text) == "" {
		return "", failed("gemini %s returned no text", g.model)
	}
	return text, nil
}
