package api

import (
	"context"
	"fmt"
	"time"

	"github.com/amaumene/moviedeck/internal/api/handlers"
	"github.com/amaumene/moviedeck/internal/api/middleware"
	"github.com/amaumene/moviedeck/internal/auth"
	"github.com/amaumene/moviedeck/internal/config"
	"github.com/amaumene/moviedeck/internal/controllers"
	"github.com/amaumene/moviedeck/internal/metrics"
	"github.com/amaumene/moviedeck/internal/services/tmdb"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"
)

// Server represents the HTTP server
type Server struct {
	app      *fiber.App
	addr     string
	gateway  *tmdb.Gateway
	registry *controllers.Registry
	auth     *auth.Service
	metrics  *metrics.Metrics
	logger   *logrus.Logger
}

// NewServer creates a new HTTP server
func NewServer(cfg *config.Config, gateway *tmdb.Gateway, registry *controllers.Registry, authService *auth.Service, m *metrics.Metrics, logger *logrus.Logger) *Server {
	s := &Server{
		addr:     ":" + cfg.ServerPort,
		gateway:  gateway,
		registry: registry,
		auth:     authService,
		metrics:  m,
		logger:   logger,
	}

	s.app = fiber.New(fiber.Config{
		AppName:               "moviedeck",
		DisableStartupMessage: true,
		ReadTimeout:           15 * time.Second,
		WriteTimeout:          15 * time.Second,
		IdleTimeout:           60 * time.Second,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			if fe, ok := err.(*fiber.Error); ok {
				code = fe.Code
			}
			return c.Status(code).JSON(fiber.Map{"error": err.Error()})
		},
	})
	s.app.Use(middleware.Logging(logger), middleware.Metrics(m))
	s.setupRoutes(cfg)

	return s
}

// setupRoutes configures all HTTP routes
func (s *Server) setupRoutes(cfg *config.Config) {
	// Health check and status
	healthHandler := handlers.NewHealthHandler()
	s.app.Get("/health", healthHandler.Get)

	statusHandler := handlers.NewStatusHandler(s.gateway, s.registry, cfg.FavoritesBackend, s.logger)
	s.app.Get("/status", statusHandler.Get)

	s.app.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(s.metrics.Registry, promhttp.HandlerOpts{})))

	api := s.app.Group("/api")
	requireAuth := middleware.Auth(s.auth, s.logger)

	// Accounts
	authHandler := handlers.NewAuthHandler(s.auth, s.logger)
	api.Post("/auth/login", authHandler.Login)
	api.Post("/auth/register", authHandler.Register)
	api.Post("/auth/logout", requireAuth, authHandler.Logout)
	api.Get("/me", requireAuth, authHandler.Me)

	// Listing view
	catalogHandler := handlers.NewCatalogHandler(s.registry, s.logger)
	catalog := api.Group("/catalog", requireAuth)
	catalog.Get("", catalogHandler.View)
	catalog.Post("/page", catalogHandler.SetPage)
	catalog.Post("/search", catalogHandler.Search)
	catalog.Post("/favorites/:id", catalogHandler.ToggleFavorite)

	// Movies: fixed paths first so they win over :id
	moviesHandler := handlers.NewMoviesHandler(s.gateway, s.registry, s.logger)
	movies := api.Group("/movies", requireAuth)
	movies.Get("/popular", moviesHandler.Popular)
	movies.Get("/search", moviesHandler.Search)
	movies.Get("/suggest", moviesHandler.Suggest)
	movies.Get("/:id", moviesHandler.Show)
	movies.Post("/:id/favorite", moviesHandler.ToggleFavorite)

	// Favorites page
	favoritesHandler := handlers.NewFavoritesHandler(s.registry, s.logger)
	favorites := api.Group("/favorites", requireAuth)
	favorites.Get("", favoritesHandler.List)
	favorites.Delete("/:id", favoritesHandler.Remove)

	imagesHandler := handlers.NewImagesHandler(s.gateway)
	api.Get("/images", imagesHandler.Get)
}

// Start starts the HTTP server
func (s *Server) Start(ctx context.Context) error {
	s.logger.WithField("port", s.addr).Info("Starting HTTP server")

	errChan := make(chan error, 1)
	go func() {
		if err := s.app.Listen(s.addr); err != nil {
			errChan <- err
		}
	}()

	select {
	case err := <-errChan:
		return fmt.Errorf("server error: %w", err)
	case <-ctx.Done():
		return s.Shutdown(context.Background())
	}
}

// Shutdown gracefully shuts down the HTTP server
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("Shutting down HTTP server")
	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	return s.app.ShutdownWithContext(shutdownCtx)
}
