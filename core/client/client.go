package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/leofalp/campaignlens/providers/ai"
)

var (
	// ErrNilProvider is returned by [New] when no provider is given.
	ErrNilProvider = errors.New("client: provider is nil")

	// ErrEmptyPrompt is returned by [Client.Complete] for a blank prompt.
	ErrEmptyPrompt = errors.New("client: prompt is empty")
)

// ClientOptions configures a [Client]. Use the With* functions to set them.
type ClientOptions struct {
	Model            string
	SystemPrompt     string
	ResponseFormat   *ai.ResponseFormat
	GenerationConfig *ai.GenerationConfig
	Middlewares      []Middleware
}

// WithModel sets the model identifier sent with every request.
func WithModel(model string) func(*ClientOptions) {
	return func(o *ClientOptions) {
		o.Model = model
	}
}

// WithSystemPrompt sets the system prompt sent with every request.
func WithSystemPrompt(prompt string) func(*ClientOptions) {
	return func(o *ClientOptions) {
		o.SystemPrompt = prompt
	}
}

// WithJSONMode asks the provider for a JSON object response.
func WithJSONMode() func(*ClientOptions) {
	return func(o *ClientOptions) {
		o.ResponseFormat = &ai.ResponseFormat{Type: ai.FormatJSONObject}
	}
}

// WithOutputSchema asks the provider for JSON constrained by schema.
func WithOutputSchema(name string, schema json.RawMessage) func(*ClientOptions) {
	return func(o *ClientOptions) {
		o.ResponseFormat = &ai.ResponseFormat{Type: ai.FormatJSONSchema, Name: name, Schema: schema}
	}
}

// WithTemperature sets the sampling temperature. Zero is sent explicitly.
func WithTemperature(temperature float32) func(*ClientOptions) {
	return func(o *ClientOptions) {
		if o.GenerationConfig == nil {
			o.GenerationConfig = &ai.GenerationConfig{}
		}
		o.GenerationConfig.Temperature = &temperature
	}
}

// WithMaxTokens bounds the response length.
func WithMaxTokens(maxTokens int) func(*ClientOptions) {
	return func(o *ClientOptions) {
		if o.GenerationConfig == nil {
			o.GenerationConfig = &ai.GenerationConfig{}
		}
		o.GenerationConfig.MaxTokens = maxTokens
	}
}

// WithMiddleware appends middlewares to the send chain. The first one given
// is the outermost wrapper.
func WithMiddleware(middlewares ...Middleware) func(*ClientOptions) {
	return func(o *ClientOptions) {
		o.Middlewares = append(o.Middlewares, middlewares...)
	}
}

// Client sends single-shot prompts to a language model. It keeps no
// conversation state, so one Client may serve concurrent callers.
type Client struct {
	options ClientOptions
	send    SendFunc
}

// New builds a Client over provider.
func New(provider ai.Provider, opts ...func(*ClientOptions)) (*Client, error) {
	if provider == nil {
		return nil, ErrNilProvider
	}

	var options ClientOptions
	for _, opt := range opts {
		opt(&options)
	}
	for i, mw := range options.Middlewares {
		if mw == nil {
			return nil, fmt.Errorf("client: middleware at index %d is nil", i)
		}
	}

	return &Client{
		options: options,
		send:    buildSendChain(provider, options.Middlewares),
	}, nil
}

// Model returns the configured model identifier.
func (c *Client) Model() string {
	return c.options.Model
}

// Complete sends prompt as the single user message and returns the raw
// response. The returned content is not interpreted.
func (c *Client) Complete(ctx context.Context, prompt string) (*ai.ChatResponse, error) {
	if strings.TrimSpace(prompt) == "" {
		return nil, ErrEmptyPrompt
	}

	return c.send(ctx, ai.ChatRequest{
		Model:            c.options.Model,
		SystemPrompt:     c.options.SystemPrompt,
		Messages:         []ai.Message{{Role: ai.RoleUser, Content: prompt}},
		ResponseFormat:   c.options.ResponseFormat,
		GenerationConfig: c.options.GenerationConfig,
	})
}
