// Package httpserver provides HTTP server and routing.
package httpserver

import (
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"go.uber.org/zap"

	"collection-search-service/internal/app/service"
	"collection-search-service/internal/domain"
	"collection-search-service/internal/transport/httpserver/handler"
	"collection-search-service/internal/transport/httpserver/middleware"
	"collection-search-service/internal/validator"
)

// ServerConfig holds server configuration.
type ServerConfig struct {
	AppName   string
	Port      int
	BodyLimit int
}

// Services bundles the use cases the HTTP surface exposes.
type Services struct {
	Search   *service.SearchService
	Document *service.DocumentService
	Term     *service.TermService
	Export   *service.ExportService
}

// Server wraps Fiber app with handlers.
type Server struct {
	App    *fiber.App
	Logger *zap.Logger
}

// NewServer creates a new HTTP server with all routes configured. store is
// the readiness probe target; cache may be nil.
func NewServer(
	cfg ServerConfig,
	svcs Services,
	store middleware.Pinger,
	cache domain.Cache,
	v *validator.Validator,
	logger *zap.Logger,
) *Server {
	app := fiber.New(fiber.Config{
		AppName:      cfg.AppName,
		BodyLimit:    cfg.BodyLimit,
		ErrorHandler: errorHandler(logger),
	})

	// Health check middleware MUST be registered BEFORE other middleware
	// for Kubernetes probes to work even during high load
	app.Use(middleware.NewHealthCheck(store))

	app.Use(requestid.New())
	app.Use(middleware.Recover(logger))
	app.Use(middleware.Logger(logger))
	app.Use(cors.New())
	app.Use(compress.New())

	searchHandler := handler.NewSearchHandler(svcs.Search, logger)
	documentHandler := handler.NewDocumentHandler(svcs.Document, logger)
	suggestHandler := handler.NewSuggestHandler(svcs.Term, v, logger)
	adminHandler := handler.NewAdminHandler(svcs.Export, cache, logger)

	registerRoutes(app, searchHandler, documentHandler, suggestHandler, adminHandler)

	return &Server{
		App:    app,
		Logger: logger,
	}
}

// registerRoutes sets up all API routes.
func registerRoutes(
	app *fiber.App,
	searchHandler *handler.SearchHandler,
	documentHandler *handler.DocumentHandler,
	suggestHandler *handler.SuggestHandler,
	adminHandler *handler.AdminHandler,
) {
	// Health checks are handled by middleware (/livez, /readyz)

	v1 := app.Group("/api/v1")

	v1.Get("/search/:index", searchHandler.Search)

	documents := v1.Group("/documents")
	documents.Get("/:index/:id", documentHandler.GetByID)
	documents.Get("/:index/:id/similar", documentHandler.Similar)

	v1.Get("/suggest", suggestHandler.Suggest)

	admin := v1.Group("/admin")
	admin.Get("/stats", adminHandler.Stats)
	admin.Get("/export/:index", adminHandler.Export)
}

// errorHandler returns a custom error handler that logs based on HTTP status code.
// 404s are logged at DEBUG level (expected client behavior), 4xx at WARN, 5xx at ERROR.
func errorHandler(logger *zap.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		code := fiber.StatusInternalServerError

		if e, ok := err.(*fiber.Error); ok {
			code = e.Code
		}

		switch {
		case code == fiber.StatusNotFound:
			logger.Debug("resource not found",
				zap.String("path", c.Path()),
				zap.String("method", c.Method()),
			)
		case code >= 500:
			logger.Error("server error",
				zap.Error(err),
				zap.Int("status", code),
				zap.String("path", c.Path()),
			)
		case code >= 400:
			logger.Warn("client error",
				zap.Error(err),
				zap.Int("status", code),
				zap.String("path", c.Path()),
			)
		default:
			logger.Error("unhandled error",
				zap.Error(err),
				zap.Int("status", code),
				zap.String("path", c.Path()),
			)
		}

		return c.Status(code).JSON(fiber.Map{
			"error": err.Error(),
			"code":  "UNHANDLED_ERROR",
		})
	}
}

// Start starts the HTTP server.
func (s *Server) Start(port int) error {
	s.Logger.Info("starting HTTP server", zap.Int("port", port))

	return s.App.Listen(fmt.Sprintf(":%d", port))
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown() error {
	s.Logger.Info("shutting down HTTP server")

	return s.App.Shutdown()
}
