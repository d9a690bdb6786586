package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spacesedan/sentidesk/internal/support"
)

const shutdownTimeout = 10 * time.Second

// Server exposes the assistant over HTTP.
type Server struct {
	assistant    *support.Assistant
	conversation *support.Conversation
	healthy      *atomic.Bool
	router       *gin.Engine
}

// New builds the router. healthy reports the remote analyzer's state and may
// be nil when the analyzer runs in-process.
func New(assistant *support.Assistant, conversation *support.Conversation, healthy *atomic.Bool) *Server {
	if healthy == nil {
		healthy = &atomic.Bool{}
		healthy.Store(true)
	}

	s := &Server{
		assistant:    assistant,
		conversation: conversation,
		healthy:      healthy,
		router:       gin.New(),
	}
	s.router.Use(gin.Recovery(), requestLogger())
	s.routes()
	return s
}

func (s *Server) routes() {
	s.router.GET("/healthz", s.handleHealth)
	s.router.GET("/articles", s.handleArticles)
	s.router.GET("/articles/:id", s.handleArticle)
	s.router.POST("/rag", s.handleRAG)

	sessions := s.router.Group("/sessions")
	sessions.POST("", s.handleCreateSession)
	sessions.GET("/:id", s.handleGetSession)
	sessions.DELETE("/:id", s.handleDeleteSession)
	sessions.POST("/:id/messages", s.handleSessionMessage)
}

func (s *Server) Handler() http.Handler {
	return s.router
}

// Run serves on addr until ctx is cancelled, then drains in-flight requests.
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("[Server] Listening", slog.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	slog.Info("[Server] Shutting down...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}
	slog.Info("[Server] Stopped")
	return nil
}

func requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		slog.Info("[Server] Request handled",
			slog.String("method", c.Request.Method),
			slog.String("path", c.FullPath()),
			slog.Int("status", c.Writer.Status()),
			slog.Duration("elapsed", time.Since(start)))
	}
}
