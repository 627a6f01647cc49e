package bootstrap

import (
	"math/rand"
	"time"

	"dataweaver-be/internal/config"
	"dataweaver-be/internal/controller"
	"dataweaver-be/internal/pkg/logger"
	"dataweaver-be/internal/repository/memory"
	"dataweaver-be/internal/service"
	"dataweaver-be/pkg/llm/ollama"
	"dataweaver-be/pkg/serpapi"
)

type Container struct {
	// Controllers
	SearchController controller.ISearchController
	ChatController   controller.IChatController
	ExportController controller.IExportController

	Logger logger.ILogger
}

func NewContainer(cfg *config.Config) *Container {
	// 1. Core Facades
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")

	// 2. Infrastructure
	sessionRepo := memory.NewSessionRepository()
	serpClient := serpapi.NewClient(cfg.Keys.SerpAPI)
	ollamaProvider := ollama.NewOllamaProvider(cfg.Ai.OllamaBaseURL, cfg.Ai.OllamaModel)

	if !serpClient.HasCredential() {
		sysLogger.Warn("bootstrap", "no SERPAPI_API_KEY configured, searches will use sample data", nil)
	}
	if cfg.Keys.GoogleGemini == "" {
		sysLogger.Warn("bootstrap", "no GEMINI_API_KEY configured, cloud assistant will report unavailable", nil)
	}

	// One process-wide random source for normalization defaults and fallback
	// rows. Tests construct services with their own seeded source.
	rng := rand.New(rand.NewSource(time.Now().UnixNano()))

	// 3. Services
	exportService := service.NewExportService(sessionRepo, cfg.Export.Dir)
	searchService := service.NewSearchService(
		serpClient,
		sessionRepo,
		exportService,
		sysLogger,
		cfg.Export.MaxResults,
		cfg.Ai.OllamaModel,
		rng,
	)
	chatService := service.NewChatService(
		ollamaProvider,
		cfg.Keys.GoogleGemini,
		sessionRepo,
		sysLogger,
	)

	// 4. Controllers
	return &Container{
		SearchController: controller.NewSearchController(searchService),
		ChatController:   controller.NewChatController(chatService),
		ExportController: controller.NewExportController(exportService),
		Logger:           sysLogger,
	}
}
