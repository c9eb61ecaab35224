package enrichment

import (
	"context"

	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"

	"github.com/floww-ai/backend/internal/entity"
)

type MockConnector struct {
	logger *zap.Logger
}

func NewMockConnector(logger *zap.Logger) *MockConnector {
	return &MockConnector{logger: logger}
}

func (c *MockConnector) Lookup(ctx context.Context, query string) (*entity.CompanyProfile, error) {
	ctxzap.Info(ctx, "mock company lookup", zap.String("query", query))

	marketCap := 1_250_000_000.0
	return &entity.CompanyProfile{
		Name:        query,
		Description: "A mid-size software company in the payments space.",
		MarketCap:   &marketCap,
	}, nil
}
