package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"google.golang.org/genai"

	"heroic/ats-platform/internal/models"
)

const (
	roleUser  = "user"
	roleModel = "model"
)

var ErrEmptyResponse = errors.New("no text content in response")

type GeminiService interface {
	GenerateText(ctx context.Context, history []models.ConversationTurn, prompt string) (string, error)
	GenerateTextWithRetry(ctx context.Context, history []models.ConversationTurn, prompt string, maxAttempts int) (string, error)
}

type GeminiOptions struct {
	APIKey          string
	Model           string
	Temperature     float32
	MaxOutputTokens int32
	// Timeout bounds a single GenerateContent call; zero disables it.
	Timeout time.Duration
}

type geminiService struct {
	client *genai.Client
	opts   GeminiOptions
}

func NewGeminiService(ctx context.Context, opts GeminiOptions) (GeminiService, error) {
	if opts.APIKey == "" {
		return nil, errors.New("gemini API key is required")
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  opts.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}

	return &geminiService{
		client: client,
		opts:   opts,
	}, nil
}

// GenerateText implements GeminiService.
func (g *geminiService) GenerateText(ctx context.Context, history []models.ConversationTurn, prompt string) (string, error) {
	if g.opts.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, g.opts.Timeout)
		defer cancel()
	}

	temperature := g.opts.Temperature
	config := &genai.GenerateContentConfig{
		Temperature:     &temperature,
		MaxOutputTokens: g.opts.MaxOutputTokens,
	}

	resp, err := g.client.Models.GenerateContent(ctx, g.opts.Model, buildContents(history, prompt), config)
	if err != nil {
		log.Printf("❌ Gemini API error: %v\n", err)
		return "", fmt.Errorf("failed to generate text: %w", err)
	}

	if resp == nil {
		return "", fmt.Errorf("no response generated (nil response)")
	}

	text := resp.Text()
	if text == "" {
		return "", ErrEmptyResponse
	}

	return text, nil
}

// GenerateTextWithRetry implements GeminiService.
func (g *geminiService) GenerateTextWithRetry(ctx context.Context, history []models.ConversationTurn, prompt string, maxAttempts int) (string, error) {
	return generateWithRetry(ctx, maxAttempts, func() (string, error) {
		return g.GenerateText(ctx, history, prompt)
	})
}

func generateWithRetry(ctx context.Context, maxAttempts int, generate func() (string, error)) (string, error) {
	if maxAttempts < 1 {
		maxAttempts = 1
	}

	var lastErr error
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		result, err := generate()
		if err == nil {
			return result, nil
		}

		lastErr = err

		select {
		case <-ctx.Done():
			return "", fmt.Errorf("context cancelled: %w", ctx.Err())
		default:
		}

		if attempt < maxAttempts {
			log.Printf("⚠️ Attempt %d failed: %v. Retrying...\n", attempt, err)
		}
	}

	if maxAttempts == 1 {
		return "", lastErr
	}
	return "", fmt.Errorf("failed after %d attempts: %w", maxAttempts, lastErr)
}

// buildContents replays history as alternating user/model turns and
// appends prompt as the final user turn.
func buildContents(history []models.ConversationTurn, prompt string) []*genai.Content {
	contents := make([]*genai.Content, 0, len(history)*2+1)
	for _, turn := range history {
		contents = append(contents,
			&genai.Content{Role: roleUser, Parts: []*genai.Part{{Text: turn.Prompt}}},
			&genai.Content{Role: roleModel, Parts: []*genai.Part{{Text: turn.Response}}},
		)
	}
	contents = append(contents, &genai.Content{Role: roleUser, Parts: []*genai.Part{{Text: prompt}}})
	return contents
}
