package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/GriffinCanCode/AgentOS/uirender/internal/agent"
	apihttp "github.com/GriffinCanCode/AgentOS/uirender/internal/api/http"
	"github.com/GriffinCanCode/AgentOS/uirender/internal/api/middleware"
	"github.com/GriffinCanCode/AgentOS/uirender/internal/api/ws"
	"github.com/GriffinCanCode/AgentOS/uirender/internal/domain/normalizer"
	"github.com/GriffinCanCode/AgentOS/uirender/internal/domain/pipeline"
	"github.com/GriffinCanCode/AgentOS/uirender/internal/domain/registry"
	"github.com/GriffinCanCode/AgentOS/uirender/internal/domain/renderer"
	"github.com/GriffinCanCode/AgentOS/uirender/internal/infrastructure/config"
	"github.com/GriffinCanCode/AgentOS/uirender/internal/infrastructure/logging"
	"github.com/GriffinCanCode/AgentOS/uirender/internal/infrastructure/monitoring"
	"github.com/GriffinCanCode/AgentOS/uirender/internal/shared/utils"
	"github.com/GriffinCanCode/AgentOS/uirender/internal/widgets"
)

// Server wraps the HTTP server and dependencies
type Server struct {
	router   *gin.Engine
	http     *http.Server
	catalog  *registry.Registry
	pipeline *pipeline.Pipeline
	logger   *logging.Logger
	config   *config.Config
	metrics  *monitoring.Metrics
}

// NewServer creates a new server instance
func NewServer(cfg *config.Config, logger *logging.Logger) (*Server, error) {
	if logger == nil {
		logger = logging.FromConfig(cfg.Logging.Level, cfg.Logging.Development)
	}

	logger.Info("Initializing render server",
		zap.String("port", cfg.Server.Port),
		zap.Int("max_depth", cfg.Render.MaxDepth),
		zap.Bool("agent", cfg.Agent.Enabled()),
	)

	// Metrics first, everything below records into them
	metrics := monitoring.NewMetrics()

	catalog, err := buildCatalog(cfg, logger)
	if err != nil {
		return nil, err
	}
	metrics.SetCatalogComponents(catalog.Len())

	norm := normalizer.New(
		normalizer.WithMaxDepth(cfg.Render.MaxDepth),
		normalizer.WithDiscoveryDepth(cfg.Render.DiscoveryMaxDepth),
		normalizer.WithLogger(logger.Component(logging.Normalizer)),
	)
	rend := renderer.New(catalog,
		renderer.WithMaxDepth(cfg.Render.MaxDepth),
		renderer.WithRecorder(metrics),
		renderer.WithLogger(logger.Component(logging.Renderer)),
	)

	var fetcher agent.Fetcher
	if cfg.Agent.Enabled() {
		fetcher = agent.New(agent.Config{
			BaseURL:      cfg.Agent.URL,
			PollInterval: cfg.Agent.PollInterval,
			Timeout:      cfg.Agent.Timeout,
			RPS:          cfg.Agent.RPS,
			MaxRetries:   3,
		}, agent.WithLogger(logger.Component(logging.Agent)), agent.WithRecorder(metrics))
		logger.Info("Agent client configured", zap.String("url", cfg.Agent.URL))
	}

	p := pipeline.New(norm, rend, fetcher, logger.Component(logging.Pipeline)).WithMetrics(metrics)

	if !cfg.Logging.Development {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()

	router.Use(gin.Recovery())
	router.Use(middleware.RequestID())
	router.Use(monitoring.Middleware(metrics))
	router.Use(middleware.CORS(middleware.DefaultCORSConfig().WithOrigins(cfg.Server.CORSOrigins)))
	if cfg.RateLimit.Enabled {
		logger.Info("Rate limiting enabled",
			zap.Int("rps", cfg.RateLimit.RequestsPerSecond),
			zap.Int("burst", cfg.RateLimit.Burst),
		)
		rl := middleware.DefaultRateLimitConfig()
		rl.RequestsPerSecond = cfg.RateLimit.RequestsPerSecond
		rl.Burst = cfg.RateLimit.Burst
		router.Use(middleware.RateLimit(rl))
	}
	router.Use(middleware.GzipBody(utils.MaxJSONSize))
	router.Use(middleware.BodyLimit(utils.MaxJSONSize))

	handlers := apihttp.NewHandlers(p, catalog, metrics, logger.Component(logging.HTTP))
	wsHandler := ws.NewHandler(p, metrics, logger.Component(logging.Stream))
	registerRoutes(router, handlers, wsHandler, metrics)

	logger.Info("Server initialized successfully", zap.Int("components", catalog.Len()))

	return &Server{
		router: router,
		http: &http.Server{
			Addr:              net.JoinHostPort(cfg.Server.Host, cfg.Server.Port),
			Handler:           router,
			ReadHeaderTimeout: 10 * time.Second,
		},
		catalog:  catalog,
		pipeline: p,
		logger:   logger,
		config:   cfg,
		metrics:  metrics,
	}, nil
}

// buildCatalog registers the built-in widgets, applies the optional
// manifest and freezes the registry
func buildCatalog(cfg *config.Config, logger *logging.Logger) (*registry.Registry, error) {
	catalog := registry.New(logger.Component(logging.Registry))
	seeder := registry.NewSeeder(catalog, logger.Component(logging.Registry))
	report := seeder.SeedModules(widgets.Modules()...)

	if path := cfg.Render.CatalogManifest; path != "" {
		var err error
		report, err = seeder.SeedManifestFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to apply catalog manifest: %w", err)
		}
	}

	catalog.Freeze()
	logger.Info("Component catalog ready",
		zap.Int("modules", report.Modules),
		zap.Int("registered", report.Registered),
		zap.Int("aliases", report.Aliases),
		zap.Int("failed", report.Failed),
	)
	return catalog, nil
}

func registerRoutes(router *gin.Engine, h *apihttp.Handlers, wsHandler *ws.Handler, metrics *monitoring.Metrics) {
	router.GET("/health", h.Health)

	// Spec processing
	router.POST("/normalize", h.Normalize)
	router.POST("/discover", h.Discover)
	router.POST("/render", h.Render)
	router.POST("/render/batch", h.RenderBatch)
	router.POST("/generate", h.Generate)

	// Catalog
	router.GET("/catalog", h.Catalog)
	router.GET("/catalog/categories", h.Categories)
	router.GET("/catalog/categories/:category", h.CategoryComponents)
	router.GET("/catalog/components/:name", h.Component)

	// WebSocket
	router.GET("/stream", wsHandler.HandleConnection)

	// Metrics
	router.GET("/metrics", gin.WrapH(metrics.Handler()))
	router.GET("/metrics/json", h.MetricsJSON)
}

// Handler returns the HTTP handler, for tests and embedding
func (s *Server) Handler() http.Handler {
	return s.router
}

// Catalog returns the frozen component registry
func (s *Server) Catalog() *registry.Registry {
	return s.catalog
}

// Pipeline returns the render pipeline
func (s *Server) Pipeline() *pipeline.Pipeline {
	return s.pipeline
}

// Run starts the HTTP server and blocks until it stops
func (s *Server) Run() error {
	s.logger.Info("Starting HTTP server", zap.String("addr", s.http.Addr))
	if err := s.http.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown gracefully stops the server
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("Shutting down server...")
	defer s.logger.Sync()

	if err := s.http.Shutdown(ctx); err != nil {
		s.logger.Error("Graceful shutdown failed", zap.Error(err))
		return fmt.Errorf("failed to shut down server: %w", err)
	}
	return nil
}
