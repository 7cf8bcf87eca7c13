// Package openai provides GPT-backed preference analysis over the
// chat-completions API.
package openai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/savorly/engine/internal/domain/preference"
	"github.com/savorly/engine/internal/domain/user"
	"github.com/savorly/engine/internal/infrastructure/config"
	"github.com/savorly/engine/internal/ports/outbound"
	"go.uber.org/zap"
)

// Client implements outbound.PreferenceAnalyzer against an
// OpenAI-compatible chat-completions endpoint.
type Client struct {
	apiKey      string
	baseURL     string
	model       string
	maxTokens   int
	temperature float64
	client      *http.Client
	logger      *zap.Logger
}

// NewClient creates a new analysis client from configuration.
func NewClient(cfg config.AIConfig, logger *zap.Logger) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	maxTokens := cfg.MaxTokens
	if maxTokens <= 0 {
		maxTokens = 500
	}
	model := cfg.Model
	if model == "" {
		model = "gpt-4"
	}
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = "https://api.openai.com/v1"
	}

	return &Client{
		apiKey:      cfg.APIKey,
		baseURL:     strings.TrimRight(baseURL, "/"),
		model:       model,
		maxTokens:   maxTokens,
		temperature: cfg.Temperature,
		client:      &http.Client{Timeout: timeout},
		logger:      logger.Named("openai"),
	}
}

// OpenAI API structures
type ChatCompletionRequest struct {
	Model       string    `json:"model"`
	Messages    []Message `json:"messages"`
	Temperature float64   `json:"temperature"`
	MaxTokens   int       `json:"max_tokens"`
}

type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type ChatCompletionResponse struct {
	Choices []Choice `json:"choices"`
	Usage   Usage    `json:"usage"`
}

type Choice struct {
	Message      Message `json:"message"`
	FinishReason string  `json:"finish_reason"`
}

type Usage struct {
	PromptTokens     int `json:"prompt_tokens"`
	CompletionTokens int `json:"completion_tokens"`
	TotalTokens      int `json:"total_tokens"`
}

const systemPrompt = `You are a culinary preference analyst. Given a user's swipe history and recently cooked meals, infer their food preferences.

CRITICAL: You must respond with ONLY a valid JSON object in the exact format shown below. Do not include any explanatory text, markdown formatting, or other content outside the JSON.

Required JSON format:
{
  "preferredCuisines": ["italian", "japanese"],
  "avoidedIngredients": ["peanut", "cilantro"],
  "preferredComplexity": "easy|medium|hard",
  "preferredPortionSize": "small|medium|large",
  "nutritionalFocus": ["high-protein", "low-carb"]
}

Leave a field empty when the history gives no signal for it. Remember: respond with ONLY valid JSON.`

// AnalyzePreferences infers a preference profile from swipe and meal
// history. Any transport, status, or parse failure returns an error; the
// caller degrades to an unpersonalized feed.
func (c *Client) AnalyzePreferences(ctx context.Context, history outbound.SwipeHistory, recentMeals []user.MealEntry) (*preference.Profile, error) {
	content, err := c.call(ctx, systemPrompt, buildUserPrompt(history, recentMeals))
	if err != nil {
		return nil, err
	}

	profile, err := parseProfile(content)
	if err != nil {
		c.logger.Warn("unparseable analysis response", zap.Error(err))
		return nil, err
	}
	return profile, nil
}

// buildUserPrompt serializes the history the model analyzes.
func buildUserPrompt(history outbound.SwipeHistory, recentMeals []user.MealEntry) string {
	var b strings.Builder
	b.WriteString("Analyze this user's engagement history.\n")

	fmt.Fprintf(&b, "\nLiked recipe ids (%d):\n", len(history.Liked))
	for _, id := range history.Liked {
		b.WriteString("- " + id.String() + "\n")
	}

	fmt.Fprintf(&b, "\nDisliked recipe ids (%d):\n", len(history.Disliked))
	for _, id := range history.Disliked {
		b.WriteString("- " + id.String() + "\n")
	}

	if len(recentMeals) > 0 {
		fmt.Fprintf(&b, "\nRecently cooked meals (%d):\n", len(recentMeals))
		for _, m := range recentMeals {
			fmt.Fprintf(&b, "- meal %s, rated %d/5", m.MealID, m.Rating)
			if m.Notes != "" {
				fmt.Fprintf(&b, ", notes: %s", m.Notes)
			}
			b.WriteString("\n")
		}
	}

	return b.String()
}

func (c *Client) call(ctx context.Context, systemMsg, userMsg string) (string, error) {
	reqBody := ChatCompletionRequest{
		Model: c.model,
		Messages: []Message{
			{Role: "system", Content: systemMsg},
			{Role: "user", Content: userMsg},
		},
		Temperature: c.temperature,
		MaxTokens:   c.maxTokens,
	}

	jsonBody, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", c.baseURL+"/chat/completions", bytes.NewBuffer(jsonBody))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("API request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("API error %d: %s", resp.StatusCode, string(body))
	}

	var chatResp ChatCompletionResponse
	if err := json.Unmarshal(body, &chatResp); err != nil {
		return "", fmt.Errorf("failed to unmarshal response: %w", err)
	}

	if len(chatResp.Choices) == 0 {
		return "", fmt.Errorf("no response choices returned")
	}

	c.logger.Debug("analysis call succeeded",
		zap.Int("prompt_tokens", chatResp.Usage.PromptTokens),
		zap.Int("completion_tokens", chatResp.Usage.CompletionTokens),
	)

	return chatResp.Choices[0].Message.Content, nil
}

// parseProfile extracts the JSON object from the model's reply. The model
// sometimes wraps the JSON in prose, so the content between the first and
// last brace is what gets parsed.
func parseProfile(response string) (*preference.Profile, error) {
	response = strings.TrimSpace(response)

	start := strings.Index(response, "{")
	end := strings.LastIndex(response, "}")
	if start == -1 || end == -1 || end <= start {
		return nil, fmt.Errorf("no valid JSON found in response")
	}

	var profile preference.Profile
	if err := json.Unmarshal([]byte(response[start:end+1]), &profile); err != nil {
		return nil, fmt.Errorf("failed to parse JSON response: %w", err)
	}

	return &profile, nil
}

var _ outbound.PreferenceAnalyzer = (*Client)(nil)
