// Package server exposes the analyzer over HTTP.
//
// POST /api/analyze streams one server-sent event per pipeline stage followed
// by the result, or returns the result as plain JSON with ?stream=false.
package server

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-contrib/sse"
	"github.com/gin-gonic/gin"

	"github.com/happyhackingspace/lexis"
	"github.com/happyhackingspace/lexis/corpus"
)

// Server serves analysis requests for one document source.
type Server struct {
	src    corpus.Source
	opts   []lexis.Option
	logger *slog.Logger
	engine *gin.Engine
}

type analyzeRequest struct {
	Category string `json:"category" binding:"required"`
	Word     string `json:"word" binding:"required"`
	TopK     int    `json:"top_k" binding:"gte=0,lte=1000"`
}

type consoleEvent struct {
	Type    string      `json:"type"`
	Stage   lexis.Stage `json:"stage"`
	Message string      `json:"message"`
}

type resultEvent struct {
	Type string `json:"type"`
	lexis.Result
}

// New creates a Server. opts are applied to the analyzer of every request.
func New(src corpus.Source, logger *slog.Logger, opts ...lexis.Option) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	gin.SetMode(gin.ReleaseMode)
	s := &Server{src: src, opts: opts, logger: logger}

	r := gin.New()
	r.Use(gin.Recovery(), s.logRequests)
	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	api := r.Group("/api")
	api.GET("/categories", s.categories)
	api.POST("/analyze", s.analyze)
	s.engine = r
	return s
}

// Handler returns the HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.engine
}

// ListenAndServe serves on addr until ctx is cancelled, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.engine,
		ReadHeaderTimeout: 10 * time.Second,
	}
	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("Listening", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		s.logger.Info("Shutting down")
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return err
		}
		if err := <-errCh; !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	}
}

func (s *Server) categories(c *gin.Context) {
	cats, err := lexis.New(s.src, s.opts...).Categories(c.Request.Context())
	if err != nil {
		c.JSON(statusFor(err), gin.H{"error": err.Error()})
		return
	}
	if cats == nil {
		cats = []string{}
	}
	c.JSON(http.StatusOK, gin.H{"categories": cats})
}

func (s *Server) analyze(c *gin.Context) {
	var req analyzeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	ctx := c.Request.Context()

	if c.Query("stream") == "false" {
		res, err := lexis.New(s.src, s.opts...).Score(ctx, req.Category, req.Word, req.TopK)
		if err != nil {
			s.logger.Warn("Analysis failed", "category", req.Category, "word", req.Word, "error", err)
			c.JSON(statusFor(err), lexis.ErrorResult(req.Category, req.Word, err))
			return
		}
		c.JSON(http.StatusOK, res)
		return
	}

	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")
	c.Status(http.StatusOK)
	send := func(v any) {
		c.Render(-1, sse.Event{Data: v})
		c.Writer.Flush()
	}
	observer := lexis.ObserverFunc(func(e lexis.Event) {
		send(consoleEvent{Type: "console", Stage: e.Stage, Message: e.Message})
	})
	opts := append(append([]lexis.Option{}, s.opts...), lexis.WithObserver(observer))
	res := lexis.New(s.src, opts...).Analyze(ctx, req.Category, req.Word, req.TopK)
	if res.Error != "" {
		s.logger.Warn("Analysis failed", "category", req.Category, "word", req.Word, "error", res.Error)
	}
	send(resultEvent{Type: "result", Result: res})
}

func (s *Server) logRequests(c *gin.Context) {
	start := time.Now()
	c.Next()
	s.logger.Debug("Request",
		"method", c.Request.Method,
		"path", c.Request.URL.Path,
		"status", c.Writer.Status(),
		"duration", time.Since(start),
	)
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, lexis.ErrUnknownCategory), errors.Is(err, lexis.ErrMissingDocumentsDirectory):
		return http.StatusNotFound
	case errors.Is(err, lexis.ErrEmptyCorpus):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}
