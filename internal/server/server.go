// Package server exposes smell analysis over HTTP.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/SyedUmais05/Java-code-smell-detector/internal/service/analysis"
	"github.com/SyedUmais05/Java-code-smell-detector/pkg/config"
	"github.com/SyedUmais05/Java-code-smell-detector/pkg/source"
)

const shutdownTimeout = 5 * time.Second

// AnalyzeRequest is the body of POST /api/analyze.
type AnalyzeRequest struct {
	SourceCode *string `json:"sourceCode"`
}

// Server serves the analysis API.
type Server struct {
	engine  *gin.Engine
	service *analysis.Service
	config  *config.Config
	logger  *zap.Logger
}

// Option configures a Server.
type Option func(*Server)

// WithLogger sets the request and panic logger.
func WithLogger(logger *zap.Logger) Option {
	return func(s *Server) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// New builds the router around svc. Limits and CORS origins come from the
// service configuration.
func New(svc *analysis.Service, opts ...Option) *Server {
	s := &Server{
		service: svc,
		config:  svc.Config(),
		logger:  zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.engine = s.setupRouter()
	return s
}

func (s *Server) setupRouter() *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()
	router.Use(CustomRecoveryMiddleware(s.logger))
	router.Use(LoggerMiddleware(s.logger))
	if len(s.config.Server.AllowedOrigins) > 0 {
		router.Use(cors.New(corsConfig(s.config.Server.AllowedOrigins)))
	}

	router.GET("/", s.root)
	router.GET("/health", s.health)
	router.POST("/analyze", s.analyze)

	api := router.Group("/api")
	{
		api.POST("/analyze", s.analyze)
		api.GET("/health", s.health)
	}

	return router
}

// corsConfig allows any origin when "*" is listed, otherwise only the
// listed origins.
func corsConfig(origins []string) cors.Config {
	cfg := cors.Config{
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	for _, origin := range origins {
		if origin == "*" {
			cfg.AllowAllOrigins = true
			return cfg
		}
	}
	cfg.AllowOrigins = origins
	return cfg
}

// Handler returns the HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.engine
}

// Run listens on addr until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context, addr string) error {
	if addr == "" {
		addr = s.config.Server.Addr
	}
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("http server starting", zap.String("addr", addr))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("http server: %w", err)
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		s.logger.Info("http server stopping")
		return srv.Shutdown(shutdownCtx)
	}
}

func (s *Server) root(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "active",
		"message": "Code Smell Detection API is running",
	})
}

func (s *Server) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "healthy",
	})
}

func (s *Server) analyze(c *gin.Context) {
	var req AnalyzeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"detail": err.Error()})
		return
	}
	if req.SourceCode == nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"detail": "sourceCode: field required"})
		return
	}

	code := *req.SourceCode
	if strings.TrimSpace(code) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "Source code cannot be empty"})
		return
	}
	if maxLines := s.config.Server.MaxLines; len(source.SplitLines(code)) > maxLines {
		c.JSON(http.StatusBadRequest, gin.H{
			"detail": fmt.Sprintf("Source code exceeds %d lines limit", maxLines),
		})
		return
	}

	report := s.service.AnalyzeSource(c.Request.Context(), []byte(code))
	if report.IsError() {
		s.logger.Debug("analysis returned error report", zap.String("error", report.Error))
	}
	c.JSON(http.StatusOK, report)
}
