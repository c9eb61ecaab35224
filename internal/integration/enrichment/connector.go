// Package enrichment looks up company context (description, market cap)
// from an optional external provider. The feature is wired only when a
// credential is configured.
package enrichment

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"

	"github.com/floww-ai/backend/internal/config"
	"github.com/floww-ai/backend/internal/entity"
	"github.com/floww-ai/backend/internal/integration/common"
	pkghttp "github.com/floww-ai/backend/pkg/http"
)

type Connector struct {
	config    config.EnrichmentConfig
	connector *pkghttp.Connector
	logger    *zap.Logger
}

func NewConnector(
	cfg config.EnrichmentConfig,
	logger *zap.Logger,
) *Connector {
	return &Connector{
		connector: common.NewBaseConnector(cfg.HTTPClientConfig, cfg.APIKey, logger),
		config:    cfg,
		logger:    logger,
	}
}

type profileResponse struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	MarketCap   *float64 `json:"market_cap"`
}

// Lookup fetches a company profile by free-text query (name, domain or
// ticker).
func (c *Connector) Lookup(ctx context.Context, query string) (*entity.CompanyProfile, error) {
	ctxzap.Info(ctx, "looking up company profile")

	endpoint := fmt.Sprintf("%s?query=%s", c.config.ProfileEndpoint, url.QueryEscape(query))

	var resp profileResponse
	if err := c.connector.DoRequest(ctx, http.MethodGet, endpoint, nil, &resp); err != nil {
		ctxzap.Error(ctx, "company lookup failed", zap.Error(err))
		return nil, fmt.Errorf("company lookup: %w", err)
	}

	name := resp.Name
	if name == "" {
		name = query
	}

	return &entity.CompanyProfile{
		Name:        name,
		Description: resp.Description,
		MarketCap:   resp.MarketCap,
	}, nil
}
