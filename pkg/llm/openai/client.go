package openai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"math"
	"net/http"
	"strings"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/shappycc2010-ctrl/HinGem/pkg/llm"
)

const (
	defaultBaseURL     = "https://api.openai.com/v1"
	defaultModel       = "gpt-4o-mini"
	defaultTemperature = 0.7
	defaultMaxTokens   = 512
)

// Options configures a Client. Zero values fall back to OpenAI defaults.
type Options struct {
	// Name labels the provider in replies, logs and metrics ("openai", "groq").
	Name    string
	APIKey  string
	BaseURL string
	Model   string
	Timeout time.Duration
	// Logprobs asks the provider for token logprobs to derive a confidence.
	Logprobs bool
	// DefaultConfidence is reported when no logprobs come back.
	DefaultConfidence float64
}

// Client is a minimal OpenAI-compatible chat completions client.
// It works against OpenAI, Groq and any other /chat/completions endpoint.
type Client struct {
	name              string
	APIKey            string
	BaseURL           string
	Model             string
	logprobs          bool
	defaultConfidence float64
	httpDo            *http.Client
}

func New(opts Options) *Client {
	if opts.BaseURL == "" {
		opts.BaseURL = defaultBaseURL
	}
	if opts.Model == "" {
		opts.Model = defaultModel
	}
	if opts.Name == "" {
		opts.Name = "openai"
	}
	if opts.Timeout <= 0 {
		opts.Timeout = 60 * time.Second
	}
	return &Client{
		name:              opts.Name,
		APIKey:            opts.APIKey,
		BaseURL:           strings.TrimRight(opts.BaseURL, "/"),
		Model:             opts.Model,
		logprobs:          opts.Logprobs,
		defaultConfidence: opts.DefaultConfidence,
		httpDo: &http.Client{
			Timeout:   opts.Timeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
	}
}

func (c *Client) Name() string { return c.name }

type message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatCompletionsRequest struct {
	Model       string    `json:"model"`
	Messages    []message `json:"messages"`
	Temperature float32   `json:"temperature,omitempty"`
	MaxTokens   int       `json:"max_tokens,omitempty"`
	Logprobs    bool      `json:"logprobs,omitempty"`
}

type tokenLogprob struct {
	Token   string  `json:"token"`
	Logprob float64 `json:"logprob"`
}

type chatChoice struct {
	Index   int `json:"index"`
	Message struct {
		Role    string `json:"role"`
		Content string `json:"content"`
	} `json:"message"`
	Logprobs *struct {
		Content []tokenLogprob `json:"content"`
	} `json:"logprobs"`
	FinishReason string `json:"finish_reason"`
}

type chatCompletionsResponse struct {
	ID      string       `json:"id"`
	Object  string       `json:"object"`
	Created int64        `json:"created"`
	Model   string       `json:"model"`
	Choices []chatChoice `json:"choices"`
}

// Ask sends the prompts to the model and returns the reply text.
func (c *Client) Ask(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	out, err := c.Complete(ctx, systemPrompt, userPrompt)
	if err != nil {
		return "", err
	}
	return out.Text, nil
}

// Complete sends the prompts to the model and returns the first choice with its confidence.
func (c *Client) Complete(ctx context.Context, systemPrompt, userPrompt string) (llm.Completion, error) {
	if c.APIKey == "" {
		return llm.Completion{}, fmt.Errorf("%s: %w", c.name, llm.ErrMissingAPIKey)
	}
	reqBody := chatCompletionsRequest{
		Model: c.Model,
		Messages: []message{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: userPrompt},
		},
		Temperature: defaultTemperature,
		MaxTokens:   defaultMaxTokens,
		Logprobs:    c.logprobs,
	}
	data, err := json.Marshal(reqBody)
	if err != nil {
		return llm.Completion{}, err
	}

	endpoint := fmt.Sprintf("%s/chat/completions", c.BaseURL)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(data))
	if err != nil {
		return llm.Completion{}, err
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+c.APIKey)

	resp, err := c.httpDo.Do(httpReq)
	if err != nil {
		return llm.Completion{}, err
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var errMap map[string]any
		_ = json.NewDecoder(resp.Body).Decode(&errMap)
		return llm.Completion{}, fmt.Errorf("%s http %d: %v", c.name, resp.StatusCode, errMap)
	}
	var out chatCompletionsResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return llm.Completion{}, fmt.Errorf("%s: decode response: %w", c.name, err)
	}
	if len(out.Choices) == 0 {
		return llm.Completion{}, llm.ErrEmptyReply
	}
	choice := out.Choices[0]
	model := out.Model
	if model == "" {
		model = c.Model
	}
	return llm.Completion{
		Text:         choice.Message.Content,
		Model:        model,
		FinishReason: choice.FinishReason,
		Confidence:   c.confidence(choice),
	}, nil
}

// confidence is the geometric mean of token probabilities, i.e. exp(mean logprob).
func (c *Client) confidence(ch chatChoice) float64 {
	if ch.Logprobs == nil || len(ch.Logprobs.Content) == 0 {
		return c.defaultConfidence
	}
	var sum float64
	for _, t := range ch.Logprobs.Content {
		sum += t.Logprob
	}
	p := math.Exp(sum / float64(len(ch.Logprobs.Content)))
	if p > 1 {
		return 1
	}
	return p
}

var _ llm.ScoredModel = (*Client)(nil)
