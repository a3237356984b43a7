package services

import (
	"context"
	"encoding/base64"
	"fmt"
	"strings"
	"time"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"lifepulse-backend/internal/models"
	"lifepulse-backend/internal/prompt"
)

// Substituted when the model returns no text at all.
const emptyReplyFallback = "No response received."

// GeminiConfig carries the pass-through generation parameters.
type GeminiConfig struct {
	APIKey          string
	Model           string
	Temperature     float64
	TopP            float64
	TopK            int
	MaxOutputTokens int
	SafetyThreshold string
	ConcurrentReqs  int
}

type GeminiService struct {
	client   *genai.Client
	model    *genai.GenerativeModel
	rateChan chan struct{} // Token bucket
}

func NewGeminiService(cfg GeminiConfig) (*GeminiService, error) {
	if cfg.APIKey == "" {
		return nil, &ConfigurationError{Message: "Server misconfiguration: API Key missing"}
	}

	ctx := context.Background()
	client, err := genai.NewClient(ctx, option.WithAPIKey(cfg.APIKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	model := client.GenerativeModel(cfg.Model)
	model.SetTemperature(float32(cfg.Temperature))
	model.SetTopP(float32(cfg.TopP))
	model.SetTopK(int32(cfg.TopK))
	model.SetMaxOutputTokens(int32(cfg.MaxOutputTokens))
	model.SafetySettings = safetySettings(cfg.SafetyThreshold)

	concurrent := cfg.ConcurrentReqs
	if concurrent <= 0 {
		concurrent = 1
	}

	// Token bucket for rate limiting
	rateChan := make(chan struct{}, concurrent)
	for i := 0; i < concurrent; i++ {
		rateChan <- struct{}{}
	}

	return &GeminiService{
		client:   client,
		model:    model,
		rateChan: rateChan,
	}, nil
}

func (s *GeminiService) Close() {
	s.client.Close()
}

func safetySettings(threshold string) []*genai.SafetySetting {
	var block genai.HarmBlockThreshold
	switch threshold {
	case "low_and_above":
		block = genai.HarmBlockLowAndAbove
	case "only_high":
		block = genai.HarmBlockOnlyHigh
	case "none":
		block = genai.HarmBlockNone
	default:
		block = genai.HarmBlockMediumAndAbove
	}

	categories := []genai.HarmCategory{
		genai.HarmCategoryHarassment,
		genai.HarmCategoryHateSpeech,
		genai.HarmCategorySexuallyExplicit,
		genai.HarmCategoryDangerousContent,
	}

	settings := make([]*genai.SafetySetting, len(categories))
	for i, c := range categories {
		settings[i] = &genai.SafetySetting{Category: c, Threshold: block}
	}
	return settings
}

// acquireRate blocks until a rate slot is available
func (s *GeminiService) acquireRate(ctx context.Context) error {
	select {
	case <-s.rateChan:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(5 * time.Minute):
		return &RateLimitError{Message: "Service is busy. Please try again in a moment."}
	}
}

func (s *GeminiService) releaseRate() {
	s.rateChan <- struct{}{}
}

// Chat runs one stateless exchange: a fresh session seeded with the system
// instruction as a user turn and the canned greeting as the model turn, then
// the live user message. The session is discarded after the call.
func (s *GeminiService) Chat(ctx context.Context, composed prompt.Composed, history []models.ChatMessage) (string, error) {
	if err := s.acquireRate(ctx); err != nil {
		return "", err
	}
	defer s.releaseRate()

	cs := s.model.StartChat()
	cs.History = []*genai.Content{
		{Role: "user", Parts: []genai.Part{genai.Text(composed.SystemText)}},
		{Role: "model", Parts: []genai.Part{genai.Text(prompt.Greeting)}},
	}
	for _, m := range history {
		role := "user"
		if m.Role == "model" || m.Role == "assistant" {
			role = "model"
		}
		cs.History = append(cs.History, &genai.Content{
			Role:  role,
			Parts: []genai.Part{genai.Text(m.Content)},
		})
	}

	resp, err := cs.SendMessage(ctx, genai.Text(composed.UserText))
	if err != nil {
		return "", classifyUpstreamError(err)
	}

	return normalizeReply(resp), nil
}

// GenerateWithParts issues a single-shot generation with an ordered content
// parts list. Used for the multimodal path, where the attachment is a one-off
// and no session seeding applies.
func (s *GeminiService) GenerateWithParts(ctx context.Context, parts []prompt.Part) (string, error) {
	if err := s.acquireRate(ctx); err != nil {
		return "", err
	}
	defer s.releaseRate()

	genaiParts := make([]genai.Part, 0, len(parts))
	for _, p := range parts {
		if p.Data != "" {
			raw, err := base64.StdEncoding.DecodeString(p.Data)
			if err != nil {
				return "", &ValidationError{Message: "Attachment payload is not valid base64"}
			}
			genaiParts = append(genaiParts, genai.Blob{MIMEType: p.MimeType, Data: raw})
			continue
		}
		genaiParts = append(genaiParts, genai.Text(p.Text))
	}

	resp, err := s.model.GenerateContent(ctx, genaiParts...)
	if err != nil {
		return "", classifyUpstreamError(err)
	}

	return normalizeReply(resp), nil
}

func normalizeReply(resp *genai.GenerateContentResponse) string {
	text := strings.TrimSpace(extractText(resp))
	if text == "" {
		return emptyReplyFallback
	}
	return text
}

func extractText(resp *genai.GenerateContentResponse) string {
	var text strings.Builder
	for _, cand := range resp.Candidates {
		if cand.Content != nil {
			for _, part := range cand.Content.Parts {
				if t, ok := part.(genai.Text); ok {
					text.WriteString(string(t))
				}
			}
		}
	}
	return text.String()
}

// classifyUpstreamError is the only place upstream error text is inspected.
// Everything downstream works with the typed taxonomy.
func classifyUpstreamError(err error) error {
	msg := err.Error()
	lower := strings.ToLower(msg)

	switch {
	case strings.Contains(lower, "api key"):
		return &ConfigurationError{Message: "Invalid API Key. Please check the server environment configuration."}
	case strings.Contains(msg, "404") || strings.Contains(lower, "not found"):
		return &ModelUnavailableError{Message: "AI Model not found. The API Key provided does not have access to Generative Language API."}
	case strings.Contains(msg, "429") || strings.Contains(lower, "quota") || strings.Contains(lower, "resource exhausted"):
		return &RateLimitError{Message: "Service is busy. Please try again in a moment."}
	default:
		return &UpstreamError{Message: "Failed to process request", Details: msg}
	}
}
