package server

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/Adi-aygd/nlterm/internal/api/http"
	"github.com/Adi-aygd/nlterm/internal/api/middleware"
	"github.com/Adi-aygd/nlterm/internal/api/ws"
	"github.com/Adi-aygd/nlterm/internal/engine"
	"github.com/Adi-aygd/nlterm/internal/infrastructure/config"
	"github.com/Adi-aygd/nlterm/internal/infrastructure/logging"
	"github.com/Adi-aygd/nlterm/internal/infrastructure/monitoring"
	"github.com/Adi-aygd/nlterm/internal/intent"
	"github.com/Adi-aygd/nlterm/internal/providers"
	"github.com/Adi-aygd/nlterm/internal/providers/filesystem"
	"github.com/Adi-aygd/nlterm/internal/providers/monitor"
	"github.com/Adi-aygd/nlterm/internal/sandbox"
	"github.com/Adi-aygd/nlterm/internal/session"
)

// Server wraps the HTTP server and dependencies
type Server struct {
	router  *gin.Engine
	engine  *engine.Engine
	logger  *logging.Logger
	config  *config.Config
	metrics *monitoring.Metrics
}

// NewServer creates a new server instance
func NewServer(cfg *config.Config) (*Server, error) {
	logger, err := logging.New(logging.Config{
		Level:       cfg.Logging.Level,
		Development: cfg.Logging.Development,
		OutputPaths: []string{"stdout"},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to build logger: %w", err)
	}

	logger.Info("Initializing NLTerm Server",
		zap.String("port", cfg.Server.Port),
		zap.String("host", cfg.Server.Host),
	)

	metrics := monitoring.NewMetrics()

	resolver, err := sandbox.New(cfg.Sandbox.Root, cfg.Sandbox.Enabled)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize sandbox: %w", err)
	}
	logger.Info("Sandbox initialized",
		zap.String("root", resolver.Root()),
		zap.Bool("enforced", resolver.Enforced()),
	)

	table := intent.NewTable()
	if cfg.Intent.RulesFile != "" {
		n, err := table.LoadFile(cfg.Intent.RulesFile)
		if err != nil {
			logger.Warn("Failed to load intent rule pack",
				zap.String("file", cfg.Intent.RulesFile),
				zap.Error(err),
			)
		} else {
			logger.Info("Loaded intent rule pack",
				zap.String("file", cfg.Intent.RulesFile),
				zap.Int("rules", n),
			)
		}
	}

	logger.Info("Registering command providers...")
	registry := providers.NewRegistry()
	registerProviders(registry, resolver, logger)

	sessions := session.NewRegistry(session.Config{
		WorkingDir:      resolver.InitialDir(),
		TTL:             cfg.Session.TTL,
		CleanupInterval: cfg.Session.CleanupInterval,
	}, logger)

	eng := engine.New(engine.Config{
		Providers: registry,
		Sessions:  sessions,
		Sandbox:   resolver,
		Table:     table,
		Logger:    logger,
		Metrics:   metrics,
	})

	if !cfg.Logging.Development {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()

	router.Use(gin.Recovery())
	router.Use(middleware.RequestID())
	router.Use(monitoring.Middleware(metrics))
	router.Use(middleware.CORS(middleware.CORSFromOrigins(cfg.Server.AllowedOrigins)))
	if cfg.RateLimit.Enabled {
		logger.Info("Rate limiting enabled",
			zap.Int("requests_per_minute", cfg.RateLimit.RequestsPerMinute),
			zap.Int("burst", cfg.RateLimit.Burst),
		)
		router.Use(middleware.RateLimit(middleware.RateLimitConfig{
			RequestsPerMinute: cfg.RateLimit.RequestsPerMinute,
			Burst:             cfg.RateLimit.Burst,
		}))
	}

	handlers := http.NewHandlers(eng)
	wsHandler := ws.NewHandler(eng, logger, metrics)

	router.GET("/health", handlers.Health)

	// Session lifecycle
	router.POST("/api/session", handlers.CreateSession)
	router.DELETE("/api/session/:session_id", handlers.DeleteSession)

	// Command execution
	router.POST("/api/execute", handlers.Execute)
	router.GET("/api/history/:session_id", handlers.History)
	router.GET("/api/examples", handlers.Examples)

	// WebSocket
	router.GET("/ws", wsHandler.HandleConnection)

	if cfg.Metrics.Enabled {
		router.GET("/metrics", gin.WrapH(promhttp.Handler()))
	}

	logger.Info("Server initialized successfully")

	return &Server{
		router:  router,
		engine:  eng,
		logger:  logger,
		config:  cfg,
		metrics: metrics,
	}, nil
}

// Run starts the HTTP server
func (s *Server) Run() error {
	addr := s.config.Server.Host + ":" + s.config.Server.Port
	s.logger.Info("Starting HTTP server", zap.String("addr", addr))
	return s.router.Run(addr)
}

// Close gracefully shuts down the server
func (s *Server) Close() error {
	s.logger.Info("Shutting down server...")
	s.engine.Close()
	s.logger.Sync()
	return nil
}

func registerProviders(registry *providers.Registry, resolver *sandbox.Resolver, logger *logging.Logger) {
	if err := registry.Register(filesystem.NewProvider(resolver)); err != nil {
		logger.Warn("Failed to register filesystem provider", zap.Error(err))
	}
	if err := registry.Register(monitor.NewProvider()); err != nil {
		logger.Warn("Failed to register monitor provider", zap.Error(err))
	}
}
