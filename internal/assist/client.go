// Package assist wraps the AI suggestion endpoints. Every call degrades to
// a documented fallback on failure; nothing here ever blocks or breaks the
// task/gamification core.
package assist

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"

	"github.com/vtrpza/todo/internal/model"
)

// Estimate is the time-estimation result.
type Estimate struct {
	EstimatedTimeMinutes int    `json:"estimatedTimeMinutes"`
	Confidence           string `json:"confidence"` // low | medium | high
}

// FallbackEstimate is returned whenever estimation fails for any reason.
var FallbackEstimate = Estimate{EstimatedTimeMinutes: 30, Confidence: "low"}

// FallbackMotivation is the fixed message used when generation fails.
const FallbackMotivation = "Continue assim! Seu progresso é incrível."

// ProgressSnapshot feeds the motivational message.
type ProgressSnapshot struct {
	Points              int
	Level               int
	Streak              int
	TasksCompletedToday int
}

// Client is the AI collaborator contract. Implementations must be safe for
// concurrent use.
type Client interface {
	// GenerateSubtasks returns 3-5 short subtask titles. Failure is
	// returned as an error, never as fake subtask content.
	GenerateSubtasks(ctx context.Context, title string) ([]string, error)
	EstimateTaskTime(ctx context.Context, title string, category model.Category) (Estimate, error)
	SuggestPriority(ctx context.Context, title string, existing []string, dueDate *time.Time) (model.Priority, error)
	MotivationalMessage(ctx context.Context, snap ProgressSnapshot) (string, error)
}

// OpenAIClient talks to an OpenAI-compatible chat-completions endpoint.
type OpenAIClient struct {
	BaseURL string
	APIKey  string
	Model   string
	HTTP    *http.Client
	Logger  *log.Logger
}

func NewOpenAIClient(baseURL, apiKey, model string, timeout time.Duration, logger *log.Logger) *OpenAIClient {
	if logger == nil {
		logger = log.Default()
	}
	return &OpenAIClient{
		BaseURL: baseURL,
		APIKey:  apiKey,
		Model:   model,
		HTTP:    &http.Client{Timeout: timeout},
		Logger:  logger,
	}
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
	MaxTokens   int           `json:"max_tokens"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// complete sends one chat request and returns the first choice's content.
func (c *OpenAIClient) complete(ctx context.Context, system, user string, temperature float64, maxTokens int) (string, error) {
	body, err := json.Marshal(chatRequest{
		Model:       c.Model,
		Messages:    []chatMessage{{Role: "system", Content: system}, {Role: "user", Content: user}},
		Temperature: temperature,
		MaxTokens:   maxTokens,
	})
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+"/chat/completions", bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	if c.APIKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.APIKey)
	}

	res, err := c.HTTP.Do(req)
	if err != nil {
		return "", err
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		b, _ := io.ReadAll(io.LimitReader(res.Body, 4096))
		return "", fmt.Errorf("assist: status %d: %s", res.StatusCode, bytes.TrimSpace(b))
	}

	var out chatResponse
	if err := json.NewDecoder(res.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("assist: decode response: %w", err)
	}
	if len(out.Choices) == 0 {
		return "", fmt.Errorf("assist: empty response")
	}
	return out.Choices[0].Message.Content, nil
}
