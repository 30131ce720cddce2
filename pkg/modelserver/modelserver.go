// Package modelserver is a thin client for an OpenAI-shaped model server:
// chat completion, embeddings, and a health probe against a configurable
// base URL, so the model-inference data-graph executor can point at a
// local llama.cpp/Ollama-compatible server as easily as at OpenAI itself.
package modelserver

import (
	"context"
	"fmt"
	"net/http"

	openai "github.com/sashabaranov/go-openai"

	"github.com/yesoreyeram/nodeflow/backend/pkg/config"
	"github.com/yesoreyeram/nodeflow/backend/pkg/httpclient"
)

// Client wraps go-openai's client with a fixed model and base URL, mirroring
// the engine's HTTP-client builder rather than letting go-openai manage its
// own transport.
type Client struct {
	client *openai.Client
	model  string
}

// Config configures a Client.
type Config struct {
	BaseURL    string       // e.g. "http://localhost:11434/v1" for an Ollama OpenAI-compatible endpoint
	APIKey     string       // may be empty for local servers that don't check it
	Model      string       // default model name used when a call doesn't specify one
	HTTPClient *http.Client // optional; overrides the built-in SSRF-guarded client

	// EngineConfig governs the pooled, SSRF-guarded transport built for this
	// client when HTTPClient is nil. A zero value blocks private/loopback/
	// link-local/metadata addresses by default, which also blocks a
	// localhost Ollama endpoint - set EngineConfig.AllowLocalhost for that.
	EngineConfig config.Config
}

// New creates a model server client against cfg.BaseURL. Unless cfg.HTTPClient
// is set, the transport is built through httpclient.Builder so the model
// server is reached through the same pooled, SSRF-guarded client every other
// outbound HTTP call in this engine uses.
func New(cfg Config) (*Client, error) {
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		built, err := httpclient.NewBuilder(cfg.EngineConfig).Build(&httpclient.ClientConfig{
			Name:    "model-server",
			BaseURL: cfg.BaseURL,
		})
		if err != nil {
			return nil, fmt.Errorf("modelserver: failed to build http client: %w", err)
		}
		httpClient = built.GetHTTPClient()
	}

	oaiCfg := openai.DefaultConfig(cfg.APIKey)
	oaiCfg.BaseURL = cfg.BaseURL
	oaiCfg.HTTPClient = httpClient

	return &Client{
		client: openai.NewClientWithConfig(oaiCfg),
		model:  cfg.Model,
	}, nil
}

// ChatRequest is the subset of chat completion parameters the
// model-inference executor exposes.
type ChatRequest struct {
	Model        string
	Prompt       string
	SystemPrompt string
	Temperature  *float32
	MaxTokens    *int
}

// ChatCompletion sends a single-turn chat completion request and returns the
// assistant's reply text.
func (c *Client) ChatCompletion(ctx context.Context, req ChatRequest) (string, error) {
	model := req.Model
	if model == "" {
		model = c.model
	}
	if model == "" {
		return "", fmt.Errorf("modelserver: no model specified and no default configured")
	}

	messages := make([]openai.ChatCompletionMessage, 0, 2)
	if req.SystemPrompt != "" {
		messages = append(messages, openai.ChatCompletionMessage{
			Role:    openai.ChatMessageRoleSystem,
			Content: req.SystemPrompt,
		})
	}
	messages = append(messages, openai.ChatCompletionMessage{
		Role:    openai.ChatMessageRoleUser,
		Content: req.Prompt,
	})

	request := openai.ChatCompletionRequest{
		Model:    model,
		Messages: messages,
	}
	if req.Temperature != nil {
		request.Temperature = *req.Temperature
	}
	if req.MaxTokens != nil {
		request.MaxTokens = *req.MaxTokens
	}

	resp, err := c.client.CreateChatCompletion(ctx, request)
	if err != nil {
		return "", fmt.Errorf("modelserver: chat completion failed: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("modelserver: chat completion returned no choices")
	}
	return resp.Choices[0].Message.Content, nil
}

// Embeddings computes an embedding vector for text using model (or the
// client's default model when empty).
func (c *Client) Embeddings(ctx context.Context, model string, text string) ([]float32, error) {
	if model == "" {
		model = c.model
	}
	resp, err := c.client.CreateEmbeddings(ctx, openai.EmbeddingRequestStrings{
		Input: []string{text},
		Model: openai.EmbeddingModel(model),
	})
	if err != nil {
		return nil, fmt.Errorf("modelserver: embeddings call failed: %w", err)
	}
	if len(resp.Data) == 0 {
		return nil, fmt.Errorf("modelserver: embeddings call returned no data")
	}
	return resp.Data[0].Embedding, nil
}

// Health reports whether the model server's model list endpoint responds.
func (c *Client) Health(ctx context.Context) error {
	if _, err := c.client.ListModels(ctx); err != nil {
		return fmt.Errorf("modelserver: health check failed: %w", err)
	}
	return nil
}
