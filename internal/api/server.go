package api

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"catalogo/internal/api/handlers"
	"catalogo/internal/api/middleware"
	"catalogo/internal/config"
	"catalogo/internal/database"
	"catalogo/internal/events"
	"catalogo/internal/logger"

	"github.com/gin-gonic/gin"
)

type Server struct {
	config    *config.Config
	logger    *logger.Logger
	db        *database.Database
	publisher *events.Publisher
	router    *gin.Engine
	server    *http.Server
}

func New(cfg *config.Config, logger *logger.Logger, db *database.Database, publisher *events.Publisher) *Server {
	// Set Gin mode
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	// Middleware
	router.Use(middleware.Logger(logger))
	router.Use(middleware.Recovery(logger))
	router.Use(middleware.CORS())

	// Initialize handlers
	catalogHandler := handlers.NewCatalogHandler(db.DB, logger, cfg)
	authHandler := handlers.NewAuthHandler(db.DB, logger, cfg)
	exportHandler := handlers.NewExportHandler(logger, publisher)

	// Routes
	v1 := router.Group("/api/v1")
	{
		v1.GET("/catalogo.json", catalogHandler.JSON)
		v1.GET("/catalogo.xlsx", catalogHandler.Excel)
		v1.GET("/catalogo.pdf", catalogHandler.PDF)
		v1.POST("/catalogo/trigger", exportHandler.Trigger)

		auth := v1.Group("/auth")
		{
			auth.GET("/start", authHandler.Start)
			auth.GET("/callback", authHandler.Callback)
		}
	}

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// Browser viewer for the grouped catalog
	router.StaticFile("/", "./web/index.html")

	return &Server{
		config:    cfg,
		logger:    logger,
		db:        db,
		publisher: publisher,
		router:    router,
	}
}

func (s *Server) Start() error {
	addr := fmt.Sprintf("%s:%s", s.config.APIHost, s.config.APIPort)

	s.server = &http.Server{
		Addr:         addr,
		Handler:      s.router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 120 * time.Second, // exports with embedded images are slow
		IdleTimeout:  60 * time.Second,
	}

	s.logger.Info("Starting server on " + addr)
	return s.server.ListenAndServe()
}

func (s *Server) Stop(ctx context.Context) error {
	s.logger.Info("Shutting down server...")
	return s.server.Shutdown(ctx)
}

// GetRouter exposes the router for tests.
func (s *Server) GetRouter() *gin.Engine {
	return s.router
}
