package llm

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
	openai "github.com/sashabaranov/go-openai"

	"github.com/hasipfaruk/Stock-Price-Extractor/internal/extract"
	"github.com/hasipfaruk/Stock-Price-Extractor/internal/observability/metrics"
)

// ErrNoChoices means the completion endpoint returned an empty result.
var ErrNoChoices = errors.New("llm: completion returned no choices")

// Config holds the chat-completion client configuration. BaseURL may point
// at any OpenAI-compatible endpoint, including a local inference server.
type Config struct {
	APIKey      string
	BaseURL     string
	Model       string
	Temperature float32
	Timeout     time.Duration
}

// Client runs the extraction prompt against a chat-completion endpoint and
// normalizes the response. The prompt itself is owned by the caller; this
// client only consumes the raw response text.
type Client struct {
	api     *openai.Client
	model   string
	temp    float32
	timeout time.Duration
	metrics *metrics.Metrics
}

// NewClient creates a new completion client.
func NewClient(cfg Config) *Client {
	apiCfg := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		apiCfg.BaseURL = cfg.BaseURL
	}
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 30 * time.Second
	}
	return &Client{
		api:     openai.NewClientWithConfig(apiCfg),
		model:   cfg.Model,
		temp:    cfg.Temperature,
		timeout: timeout,
		metrics: metrics.DefaultMetrics,
	}
}

// RunExtractionPrompt sends the prompt plus transcript to the model and
// returns the raw response text.
func (c *Client) RunExtractionPrompt(ctx context.Context, prompt, transcript string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	resp, err := c.api.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       c.model,
		Temperature: c.temp,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: prompt},
			{Role: openai.ChatMessageRoleUser, Content: fmt.Sprintf("Transcript:\n%s\n\nExtract the information and return as JSON:", transcript)},
		},
	})
	if err != nil {
		return "", fmt.Errorf("llm completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", ErrNoChoices
	}
	return resp.Choices[0].Message.Content, nil
}

// ExtractQuote is the full model path: run the prompt, parse the response,
// validate it and convert to the shared record shape. Malformed and
// placeholder-leaking responses yield a nil record with the error; the
// caller decides whether to fall back to the regex pipeline.
func (c *Client) ExtractQuote(ctx context.Context, prompt, transcript string) (*extract.Record, error) {
	raw, err := c.RunExtractionPrompt(ctx, prompt, transcript)
	if err != nil {
		return nil, err
	}

	fields, err := ParseResponse(raw)
	if err != nil {
		c.metrics.RecordLLMRejected("unparsable")
		return nil, err
	}

	normalized, flagged, err := NormalizeResponse(fields)
	if err != nil {
		c.metrics.RecordLLMRejected("placeholder")
		log.Warn().
			Strs("flaggedFields", flagged).
			Msg("LLM response rejected: instruction text echoed instead of extracted values")
		return nil, err
	}
	if len(flagged) > 0 {
		log.Warn().
			Strs("flaggedFields", flagged).
			Msg("LLM response fields dropped as placeholder text")
	}

	rec := normalized.Record()
	if rec == nil {
		c.metrics.RecordLLMRejected("no_index")
		return nil, nil
	}
	return rec, nil
}
