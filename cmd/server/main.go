package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/Swapnil565/FloatChat/internal/config"
	"github.com/Swapnil565/FloatChat/internal/handler"
	"github.com/Swapnil565/FloatChat/internal/render"
	"github.com/Swapnil565/FloatChat/internal/repository"
	"github.com/Swapnil565/FloatChat/internal/service"
)

var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

func main() {
	logrus.Infof("FloatChat Ocean Data Server")
	logrus.Infof("Version: %s (built %s, commit %s)", Version, BuildTime, GitCommit)

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		logrus.Fatalf("Failed to load configuration: %v", err)
	}

	gin.SetMode(cfg.Server.GinMode)

	// Initialize database connection
	repo, err := repository.NewArgoRepository(
		cfg.GetPostgreSQLDSN(),
		cfg.PostgreSQL.MaxConnections,
		cfg.PostgreSQL.MaxIdleConnections,
	)
	if err != nil {
		logrus.Fatalf("Failed to connect to database: %v", err)
	}
	defer repo.Close()

	logrus.Info("✅ Connected to PostgreSQL database")

	// Initialize LLM client
	llm := service.NewLLMClient(&cfg.LLM)
	if cfg.LLM.Enabled {
		logrus.Info("✅ LLM client initialized")
		logrus.Infof("   - API Base: %s", cfg.LLM.APIBase)
		logrus.Infof("   - Chat model: %s", cfg.LLM.ChatModel)
		if cfg.LLM.EmbeddingModel != "" {
			logrus.Infof("   - Embedding model: %s", cfg.LLM.EmbeddingModel)
		}
	} else {
		logrus.Warn("⚠️  LLM is disabled - SQL generation and narration will use fallbacks")
		logrus.Warn("   Set LLM_API_KEY environment variable to enable AI features")
	}

	// Initialize services
	classifier := service.NewPlotClassifier(cfg.Classifier.Threshold)
	sqlGen := service.NewSQLGenerator(llm)
	narrator := service.NewNarrator(llm)

	renderer, err := render.NewEChartsRenderer(cfg.Plots.Dir)
	if err != nil {
		logrus.Fatalf("Failed to initialize renderer: %v", err)
	}

	var embedder service.Embedder
	if cfg.LLM.Enabled && cfg.LLM.EmbeddingModel != "" {
		embedder = service.NewLLMEmbedder(llm)
	}

	pipeline := service.NewPipeline(classifier, sqlGen, repo, renderer, narrator, embedder)

	logrus.Info("✅ Services initialized")

	// Initialize handlers
	chatHandler := handler.NewChatHandler(pipeline)
	plotsHandler := handler.NewPlotsHandler(cfg.Plots.Dir)
	statusHandler := handler.NewStatusHandler(repo, llm)

	// Setup Gin router
	router := gin.Default()

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = []string{cfg.Server.AllowedOrigins}
	corsConfig.AllowMethods = []string{"GET", "POST", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Content-Type", "Authorization"}
	router.Use(cors.New(corsConfig))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "healthy",
			"service": "floatchat",
			"version": Version,
		})
	})

	apiV1 := router.Group("/api/v1")
	{
		apiV1.POST("/chat", chatHandler.Chat)
		apiV1.GET("/plots/latest", plotsHandler.Latest)
		apiV1.GET("/plots/:filename", plotsHandler.Get)
		apiV1.GET("/system/status", statusHandler.Status)
	}

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	logrus.Infof("🚀 Starting server on %s", addr)

	go func() {
		if err := router.Run(addr); err != nil {
			logrus.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logrus.Info("🛑 Shutting down server...")
	logrus.Info("✅ Server stopped")
}
