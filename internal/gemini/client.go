// Package gemini writes financial reports with the Google Gemini API.
package gemini

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"google.golang.org/genai"
)

// ModelName is the model used when none is configured.
const ModelName = "gemini-2.5-flash"

// ErrMissingAPIKey is returned when no API key is configured.
var ErrMissingAPIKey = errors.New("gemini API key is required")

// ContentGenerator is the single genai call the client makes. Tests substitute
// a recorder for it.
type ContentGenerator interface {
	GenerateContent(
		ctx context.Context,
		model string,
		contents []*genai.Content,
		config *genai.GenerateContentConfig,
	) (*genai.GenerateContentResponse, error)
}

type genaiModels struct {
	models *genai.Models
}

func (g genaiModels) GenerateContent(
	ctx context.Context,
	model string,
	contents []*genai.Content,
	config *genai.GenerateContentConfig,
) (*genai.GenerateContentResponse, error) {
	resp, err := g.models.GenerateContent(ctx, model, contents, config)
	if err != nil {
		return nil, fmt.Errorf("genai.GenerateContent(%s): %w", model, err)
	}
	return resp, nil
}

// Option configures a Client.
type Option func(*Client)

// WithModel overrides ModelName. An empty name is ignored.
func WithModel(name string) Option {
	return func(c *Client) {
		if name != "" {
			c.model = name
		}
	}
}

// Client produces summaries through a ContentGenerator.
type Client struct {
	generator ContentGenerator
	model     string
}

// NewClient connects to the Gemini API with apiKey. Outgoing requests are
// traced through the global OpenTelemetry provider.
func NewClient(ctx context.Context, apiKey string, opts ...Option) (*Client, error) {
	if apiKey == "" {
		return nil, ErrMissingAPIKey
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:     apiKey,
		Backend:    genai.BackendGeminiAPI,
		HTTPClient: &http.Client{Transport: otelhttp.NewTransport(http.DefaultTransport)},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}
	return NewClientWithGenerator(genaiModels{models: client.Models}, opts...), nil
}

// NewClientWithGenerator builds a Client around an existing generator.
func NewClientWithGenerator(generator ContentGenerator, opts ...Option) *Client {
	c := &Client{generator: generator, model: ModelName}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Model reports the model requests are sent to.
func (c *Client) Model() string {
	return c.model
}
