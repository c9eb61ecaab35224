package common

import (
	"go.uber.org/zap"

	"github.com/floww-ai/backend/internal/config"
	pkgHTTP "github.com/floww-ai/backend/pkg/http"
)

// NewBaseConnector wires an HTTP client config into the shared connector,
// with request logging and bearer auth on the transport chain.
func NewBaseConnector(cfg config.HTTPClientConfig, token string, logger *zap.Logger) *pkgHTTP.Connector {
	connCfg := &pkgHTTP.ConnectorConfig{
		Logger:  logger,
		BaseURL: cfg.Url,
	}

	return pkgHTTP.NewConnector(
		connCfg,
		pkgHTTP.WithRequestTimeout(cfg.RequestTimeout),
		pkgHTTP.WithConnClientTimeout(cfg.ConnTimeout),
		pkgHTTP.WithClientKeepAlive(cfg.KeepAlive),
		pkgHTTP.WithIdleConnTimeout(cfg.IdleConnTimeout),
		pkgHTTP.WithResponseHeaderTimeout(cfg.ResponseHeaderTimeout),
		pkgHTTP.WithRequestLogging(),
		pkgHTTP.WithAuthToken(token),
	)
}
