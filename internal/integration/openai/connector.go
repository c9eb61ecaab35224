package openai

import (
	"context"
	"errors"
	"net/http"

	"github.com/avast/retry-go/v4"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"

	"github.com/floww-ai/backend/internal/config"
	"github.com/floww-ai/backend/internal/entity"
	"github.com/floww-ai/backend/internal/integration/common"
	pkghttp "github.com/floww-ai/backend/pkg/http"
)

var errEmptyChoices = errors.New("response contained no choices")

type Connector struct {
	config    config.OpenAIConfig
	connector *pkghttp.Connector
	logger    *zap.Logger
}

func NewConnector(
	cfg config.OpenAIConfig,
	logger *zap.Logger,
) *Connector {
	return &Connector{
		connector: common.NewBaseConnector(cfg.HTTPClientConfig, cfg.APIKey, logger),
		config:    cfg,
		logger:    logger,
	}
}

// Chat-completions wire types.
type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
	MaxTokens   int           `json:"max_tokens,omitempty"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
}

// Complete performs one synchronous round trip to the generative service
// and returns the raw response text. Transport failures are retried per the
// configured policy; whatever survives comes back as *entity.ProviderError.
func (c *Connector) Complete(ctx context.Context, req entity.CompletionRequest) (string, error) {
	ctxzap.Info(ctx, "requesting completion",
		zap.String("model", c.model(req)),
		zap.Float64("temperature", req.Temperature),
	)

	body := chatRequest{
		Model: c.model(req),
		Messages: []chatMessage{
			{Role: "system", Content: req.Instructions},
			{Role: "user", Content: req.Content},
		},
		Temperature: req.Temperature,
		MaxTokens:   req.MaxTokens,
	}

	resp, err := retry.DoWithData(func() (*chatResponse, error) {
		var out chatResponse
		if err := c.connector.DoRequest(ctx, http.MethodPost, c.config.CompletionsEndpoint, body, &out); err != nil {
			return nil, err
		}
		return &out, nil
	}, append(c.config.Retry.ToRetryOptions(), retry.Context(ctx))...)
	if err != nil {
		ctxzap.Error(ctx, "completion request failed", zap.Error(err))
		return "", &entity.ProviderError{Err: err}
	}

	if len(resp.Choices) == 0 {
		return "", &entity.ProviderError{Err: errEmptyChoices}
	}

	text := resp.Choices[0].Message.Content
	ctxzap.Info(ctx, "completion received", zap.Int("response_length", len(text)))

	return text, nil
}

func (c *Connector) model(req entity.CompletionRequest) string {
	if req.Model != "" {
		return req.Model
	}
	return c.config.Model
}
