package planner

import (
	"alcyxob/fitgpt/internal/domain"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

const (
	DefaultAPIURL    = "https://api.anthropic.com/v1/messages"
	DefaultModel     = "claude-sonnet-4-20250514"
	DefaultMaxTokens = 4096
	DefaultTimeout   = 120 * time.Second

	apiVersion          = "2023-06-01"
	validationMaxTokens = 10
	validationPrompt    = "Hi"
)

// Stage is a milestone of plan generation, reported in order.
type Stage string

const (
	StageAnalyzing  Stage = "analyzing"  // Before the prompt is built
	StageDesigning  Stage = "designing"  // The request is being sent
	StageFinalizing Stage = "finalizing" // A successful response arrived
	StageReady      Stage = "ready"      // The plan was parsed
)

// Message is the text shown to the user while the stage is current.
func (s Stage) Message() string {
	switch s {
	case StageAnalyzing:
		return "Analyzing your fitness profile..."
	case StageDesigning:
		return "Designing your personalized workout plan..."
	case StageFinalizing:
		return "Finalizing your workout plan..."
	case StageReady:
		return "Your plan is ready!"
	}
	return string(s)
}

// Config describes the completions endpoint.
type Config struct {
	APIURL    string
	Model     string
	MaxTokens int
	Timeout   time.Duration
}

// Client talks to the messages endpoint. It never retries.
type Client struct {
	apiURL     string
	model      string
	maxTokens  int
	httpClient *http.Client
}

type message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type messagesRequest struct {
	Model     string    `json:"model"`
	MaxTokens int       `json:"max_tokens"`
	Messages  []message `json:"messages"`
}

type messagesResponse struct {
	Content []struct {
		Type string `json:"type"`
		Text string `json:"text"`
	} `json:"content"`
	StopReason string `json:"stop_reason"`
	Usage      struct {
		InputTokens  int `json:"input_tokens"`
		OutputTokens int `json:"output_tokens"`
	} `json:"usage"`
}

type errorResponse struct {
	Error *struct {
		Type    string `json:"type"`
		Message string `json:"message"`
	} `json:"error"`
}

// NewClient creates a Client; zero config values fall back to the defaults.
func NewClient(cfg Config) *Client {
	if cfg.APIURL == "" {
		cfg.APIURL = DefaultAPIURL
	}
	if cfg.Model == "" {
		cfg.Model = DefaultModel
	}
	if cfg.MaxTokens <= 0 {
		cfg.MaxTokens = DefaultMaxTokens
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	return &Client{
		apiURL:     cfg.APIURL,
		model:      cfg.Model,
		maxTokens:  cfg.MaxTokens,
		httpClient: &http.Client{Timeout: cfg.Timeout},
	}
}

// Generate builds the prompt for profile, sends it once and normalizes the answer.
// The returned stages are the milestones reached, in order, also on failure.
func (c *Client) Generate(ctx context.Context, apiKey string, profile domain.UserProfile) (*domain.WorkoutPlan, []Stage, error) {
	var stages []Stage
	if apiKey == "" {
		return nil, stages, ErrConfiguration
	}

	stages = append(stages, StageAnalyzing)
	prompt := BuildPrompt(profile)

	stages = append(stages, StageDesigning)
	resp, err := c.send(ctx, apiKey, c.maxTokens, prompt)
	if err != nil {
		return nil, stages, err
	}
	defer resp.Body.Close()

	if err := checkStatus(resp); err != nil {
		return nil, stages, err
	}

	stages = append(stages, StageFinalizing)

	var body messagesResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, stages, fmt.Errorf("%w: %v", ErrEmptyResponse, err)
	}
	text := firstText(body)
	if text == "" {
		return nil, stages, ErrEmptyResponse
	}

	plan, err := NormalizeWorkoutPlan(text, profile)
	if err != nil {
		return nil, stages, err
	}

	stages = append(stages, StageReady)
	return plan, stages, nil
}

// ValidateAPIKey sends a tiny request and reports whether it was accepted.
// The response body is ignored.
func (c *Client) ValidateAPIKey(ctx context.Context, apiKey string) bool {
	if apiKey == "" {
		return false
	}
	resp, err := c.send(ctx, apiKey, validationMaxTokens, validationPrompt)
	if err != nil {
		return false
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)
	return resp.StatusCode >= 200 && resp.StatusCode < 300
}

func (c *Client) send(ctx context.Context, apiKey string, maxTokens int, prompt string) (*http.Response, error) {
	payload := messagesRequest{
		Model:     c.model,
		MaxTokens: maxTokens,
		Messages:  []message{{Role: "user", Content: prompt}},
	}
	jsonData, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.apiURL, bytes.NewReader(jsonData))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-api-key", apiKey)
	req.Header.Set("anthropic-version", apiVersion)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &UpstreamError{Message: fmt.Sprintf("API request failed: %v", err)}
	}
	return resp, nil
}

// checkStatus maps a non-2xx response to the error taxonomy.
func checkStatus(resp *http.Response) error {
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}
	switch resp.StatusCode {
	case http.StatusUnauthorized:
		return ErrAuthentication
	case http.StatusTooManyRequests:
		return ErrRateLimited
	}

	upstream := &UpstreamError{Status: resp.StatusCode}
	var errBody errorResponse
	if data, err := io.ReadAll(io.LimitReader(resp.Body, 64<<10)); err == nil {
		if json.Unmarshal(data, &errBody) == nil && errBody.Error != nil {
			upstream.Message = errBody.Error.Message
		}
	}
	return upstream
}

func firstText(body messagesResponse) string {
	for _, block := range body.Content {
		if (block.Type == "text" || block.Type == "") && block.Text != "" {
			return block.Text
		}
	}
	return ""
}
