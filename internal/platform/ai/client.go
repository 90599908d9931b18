// Package ai talks to an OpenAI-compatible API for diagnostic question and
// diagnosis generation. Responses are decoded into loose maps: the upstream
// model does not honor a strict schema, so shape tolerance is pushed to the
// document generation layer.
package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"
)

const defaultBaseURL = "https://api.openai.com/v1"

// Question is a single AI-proposed diagnostic question.
type Question struct {
	Question  string `json:"question"`
	Rationale string `json:"rationale,omitempty"`
}

// Provider generates diagnostic content. Implemented by Client; the
// consultation service depends on this interface so tests can stub it.
type Provider interface {
	GenerateQuestions(ctx context.Context, patientSummary string) ([]Question, error)
	GenerateDiagnosis(ctx context.Context, patientSummary, transcript string) (map[string]interface{}, error)
}

// Config holds client settings.
type Config struct {
	APIKey         string
	Model          string
	BaseURL        string
	RateLimitRPM   int
	RateLimitBurst int
}

// Client is an OpenAI API client using plain net/http.
type Client struct {
	apiKey     string
	model      string
	baseURL    string
	httpClient *http.Client
	limiter    *tokenBucket
}

// NewClient creates a new AI client.
func NewClient(cfg Config) (*Client, error) {
	if cfg.APIKey == "" {
		return nil, errors.New("api key is required")
	}

	model := cfg.Model
	if model == "" {
		model = "gpt-4o-mini"
	}
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = defaultBaseURL
	}

	return &Client{
		apiKey:  cfg.APIKey,
		model:   model,
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		limiter: newTokenBucket(cfg.RateLimitRPM, cfg.RateLimitBurst),
	}, nil
}

// Close stops the rate limiter's refill loop. Safe to call more than once.
func (c *Client) Close() {
	if c.limiter != nil {
		c.limiter.close()
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

// GenerateQuestions asks the model for targeted diagnostic questions given a
// patient intake summary.
func (c *Client) GenerateQuestions(ctx context.Context, patientSummary string) ([]Question, error) {
	raw, err := c.complete(ctx, questionsSystemPrompt, buildQuestionsUserPrompt(patientSummary), 800)
	if err != nil {
		return nil, err
	}

	var payload struct {
		Questions []Question `json:"questions"`
	}
	if err := json.Unmarshal(raw, &payload); err != nil {
		return nil, fmt.Errorf("parse questions response: %w", err)
	}
	if len(payload.Questions) == 0 {
		return nil, errors.New("model returned no questions")
	}
	return payload.Questions, nil
}

// GenerateDiagnosis asks the model for a structured diagnosis given the
// intake summary and the consultation transcript. The result is returned as
// a loose map; callers must tolerate schema drift.
func (c *Client) GenerateDiagnosis(ctx context.Context, patientSummary, transcript string) (map[string]interface{}, error) {
	raw, err := c.complete(ctx, diagnosisSystemPrompt, buildDiagnosisUserPrompt(patientSummary, transcript), 2000)
	if err != nil {
		return nil, err
	}

	var result map[string]interface{}
	if err := json.Unmarshal(raw, &result); err != nil {
		return nil, fmt.Errorf("parse diagnosis response: %w", err)
	}
	return result, nil
}

func (c *Client) complete(ctx context.Context, system, user string, maxTokens int) ([]byte, error) {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, err
		}
	}

	payload := chatRequest{
		Model: c.model,
		Messages: []chatMessage{
			{Role: "system", Content: system},
			{Role: "user", Content: user},
		},
		Temperature: 0.2,
		MaxTokens:   maxTokens,
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/chat/completions", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("ai request failed with status %d", resp.StatusCode)
	}

	var envelope chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return nil, err
	}

	var text string
	for _, choice := range envelope.Choices {
		if choice.Message.Content != "" {
			text = choice.Message.Content
			break
		}
	}
	if text == "" {
		return nil, errors.New("ai response missing content")
	}

	return []byte(stripCodeFences(text)), nil
}

// stripCodeFences removes Markdown code fences the model sometimes wraps its
// JSON output in.
func stripCodeFences(s string) string {
	cleaned := strings.TrimSpace(s)
	if strings.HasPrefix(cleaned, "```json") {
		cleaned = strings.TrimPrefix(cleaned, "```json")
		cleaned = strings.TrimSuffix(cleaned, "```")
	} else if strings.HasPrefix(cleaned, "```") {
		cleaned = strings.TrimPrefix(cleaned, "```")
		cleaned = strings.TrimSuffix(cleaned, "```")
	}
	return strings.TrimSpace(cleaned)
}

type tokenBucket struct {
	tokens chan struct{}
	stop   chan struct{}
	once   sync.Once
}

func newTokenBucket(rpm, burst int) *tokenBucket {
	if rpm <= 0 {
		rpm = 60
	}
	if burst <= 0 {
		burst = 5
	}

	bucket := &tokenBucket{
		tokens: make(chan struct{}, burst),
		stop:   make(chan struct{}),
	}
	for i := 0; i < burst; i++ {
		bucket.tokens <- struct{}{}
	}

	interval := time.Minute / time.Duration(rpm)
	if interval <= 0 {
		interval = time.Millisecond
	}

	ticker := time.NewTicker(interval)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				select {
				case bucket.tokens <- struct{}{}:
				default:
				}
			case <-bucket.stop:
				return
			}
		}
	}()

	return bucket
}

func (b *tokenBucket) close() {
	b.once.Do(func() { close(b.stop) })
}

func (b *tokenBucket) Wait(ctx context.Context) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-b.tokens:
		return nil
	}
}
