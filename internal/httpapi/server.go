// Package httpapi exposes the study board and mentor chat over a local JSON API.
package httpapi

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/abhisek/focoleve/internal/assistant"
	"github.com/abhisek/focoleve/internal/mentor"
	"github.com/abhisek/focoleve/internal/plan"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const shutdownTimeout = 10 * time.Second

// Config is the dependency bag passed to New.
type Config struct {
	Board     *plan.Board
	Assistant assistant.Assistant // nil means assistant.Offline
	Chat      *mentor.Chat        // nil starts a fresh conversation
	Logger    *zap.Logger

	Mode            string // gin mode
	RateLimitPerMin int    // 0 disables the limiter

	// Now is the clock used for the exam countdown.
	Now func() time.Time
}

// Server serves the JSON API.
type Server struct {
	engine    *gin.Engine
	board     *plan.Board
	assistant assistant.Assistant
	chat      *mentor.Chat
	logger    *zap.Logger
	now       func() time.Time
}

// New validates cfg and registers all routes.
func New(cfg Config) (*Server, error) {
	if cfg.Board == nil {
		return nil, errors.New("board is required")
	}
	if cfg.Mode == "" {
		cfg.Mode = gin.ReleaseMode
	}
	gin.SetMode(cfg.Mode)

	srv := &Server{
		engine:    gin.New(),
		board:     cfg.Board,
		assistant: cfg.Assistant,
		chat:      cfg.Chat,
		logger:    cfg.Logger,
		now:       cfg.Now,
	}
	if srv.assistant == nil {
		srv.assistant = assistant.Offline{}
	}
	if srv.chat == nil {
		srv.chat = mentor.NewChat()
	}
	if srv.logger == nil {
		srv.logger = zap.NewNop()
	}
	if srv.now == nil {
		srv.now = time.Now
	}

	srv.engine.Use(gin.Recovery(), srv.accessLog())
	if cfg.RateLimitPerMin > 0 {
		srv.engine.Use(newClientLimiter(cfg.RateLimitPerMin).middleware())
	}
	srv.mapHandlers()
	return srv, nil
}

// Handler returns the underlying http.Handler.
func (srv *Server) Handler() http.Handler { return srv.engine }

// Run listens on addr until ctx is cancelled, then shuts down gracefully.
func (srv *Server) Run(ctx context.Context, addr string) error {
	hs := &http.Server{
		Addr:              addr,
		Handler:           srv.engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		srv.logger.Info("http api listening", zap.String("addr", addr))
		errCh <- hs.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := hs.Shutdown(shutdownCtx); err != nil {
		return err
	}
	srv.logger.Info("http api stopped")
	return nil
}

func (srv *Server) mapHandlers() {
	srv.engine.GET("/health", srv.healthCheck)

	api := srv.engine.Group("/api")
	api.GET("/state", srv.getState)
	api.DELETE("/state", srv.resetState)
	api.POST("/profile", srv.createProfile)
	api.POST("/tasks/:id/toggle", srv.toggleTask)
	api.POST("/celebration/dismiss", srv.dismissCelebration)
	api.GET("/chat", srv.getChat)
	api.POST("/chat", srv.sendChat)
}

func (srv *Server) accessLog() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		srv.logger.Debug("http request",
			zap.String("method", c.Request.Method),
			zap.String("path", c.FullPath()),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)),
		)
	}
}
