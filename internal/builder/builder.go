package builder

import (
	"fmt"
	"net/http"
	"time"

	"github.com/unidoc/unioffice/common/license"
	"go.uber.org/zap"

	"github.com/floww-ai/backend/internal/api"
	playbookapi "github.com/floww-ai/backend/internal/api/playbook"
	sessionapi "github.com/floww-ai/backend/internal/api/session"
	"github.com/floww-ai/backend/internal/config"
	"github.com/floww-ai/backend/internal/integration/enrichment"
	"github.com/floww-ai/backend/internal/integration/openai"
	"github.com/floww-ai/backend/internal/pkg/formatter"
	"github.com/floww-ai/backend/internal/pkg/logger"
	"github.com/floww-ai/backend/internal/pkg/validator"
	"github.com/floww-ai/backend/internal/session"
	"github.com/floww-ai/backend/internal/usecase/playbook"
	"github.com/floww-ai/backend/internal/usecase/proposal"
	"github.com/floww-ai/backend/internal/usecase/workflow"
)

func Build() (*App, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	log, err := logger.Setup(cfg.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("setup logger: %w", err)
	}

	log.Info("Building application",
		zap.String("environment", cfg.Environment),
		zap.String("server_addr", cfg.ServerAddr),
	)

	// Initialize session store
	sessions := session.NewStore(cfg.SessionTTL)
	log.Info("Session store initialized", zap.Duration("ttl", cfg.SessionTTL))

	// Initialize external service connectors (with mock support)
	var llmConnector workflow.LLMConnector
	var enrichmentConnector playbook.EnrichmentConnector

	if cfg.EnableMocks {
		log.Info("Using mock connectors for external services")
		llmConnector = openai.NewMockConnector(log)
		enrichmentConnector = enrichment.NewMockConnector(log)
	} else {
		log.Info("Using real connectors for external services")
		llmConnector = openai.NewConnector(cfg.OpenAICfg, log)
		if cfg.EnrichmentCfg.Enabled() {
			enrichmentConnector = enrichment.NewConnector(cfg.EnrichmentCfg, log)
		} else {
			log.Info("Company enrichment disabled, lookup endpoint will return 501")
		}
	}

	// Activate the office export license. The library refuses to save
	// documents without one, so without a key only csv, pdf and markdown
	// exports work.
	if cfg.UnidocLicenseKey != "" {
		if err := license.SetMeteredKey(cfg.UnidocLicenseKey); err != nil {
			return nil, fmt.Errorf("set unidoc license key: %w", err)
		}
		log.Info("Unidoc metered license activated")
	} else {
		log.Warn("UNIDOC_LICENSE_API_KEY not set, office exports (xlsx, docx, pptx) will fail")
	}

	// Initialize export formatters
	formatters := formatter.NewFactory()

	// Initialize validators
	paramsValidator := validator.NewValidator()
	log.Info("Validators initialized")

	// Initialize use cases
	workflowUC := workflow.NewUsecase(sessions, llmConnector, formatters, log)
	proposalUC := proposal.NewUsecase(sessions, llmConnector, formatters, log)
	playbookUC := playbook.NewUsecase(llmConnector, enrichmentConnector, log)
	log.Info("Use cases initialized")

	// Setup API handlers
	sessionHandler := sessionapi.NewHandler(sessions, workflowUC, proposalUC, paramsValidator)
	playbookHandler := playbookapi.NewHandler(playbookUC, paramsValidator)
	log.Info("API handlers initialized")

	// Setup router
	router := api.SetupRouter(sessionHandler, playbookHandler, log)
	log.Info("HTTP router configured")

	// Create HTTP server
	server := &http.Server{
		Addr:         cfg.ServerAddr,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 150 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	log.Info("Application built successfully",
		zap.String("environment", cfg.Environment),
	)

	return &App{
		server: server,
		logger: log,
	}, nil
}
