// Package httpapi exposes the command core over HTTP, for tooling and for
// testing commands without a chat connection.
package httpapi

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/Jaideep25/Pokedex/internal/command"
	"github.com/Jaideep25/Pokedex/internal/response"
	"github.com/Jaideep25/Pokedex/internal/storage"
)

type Dispatcher interface {
	Dispatch(ctx context.Context, req command.Request) (*response.Response, *command.Invocation, error)
}

// History is the read side of the invocation log.
type History interface {
	History(scope string) ([]storage.InvocationRecord, error)
}

type Server struct {
	dispatcher Dispatcher
	registry   *command.Registry
	history    History
	log        zerolog.Logger
	engine     *gin.Engine
}

// New builds the router. history may be nil, in which case the history
// route answers 404.
func New(d Dispatcher, r *command.Registry, history History, log zerolog.Logger) *Server {
	s := &Server{
		dispatcher: d,
		registry:   r,
		history:    history,
		log:        log.With().Str("component", "httpapi").Logger(),
	}

	e := gin.New()
	e.Use(gin.Recovery(), s.requestLogger())
	e.GET("/status", s.status)

	api := e.Group("/api")
	api.GET("/commands", s.commands)
	api.POST("/run", s.run)
	if history != nil {
		api.GET("/history/:scope", s.scopeHistory)
	}

	s.engine = e
	return s
}

func (s *Server) Handler() http.Handler { return s.engine }

// ListenAndServe serves on addr until ctx is cancelled.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.engine,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.log.Info().Str("addr", addr).Msg("http api listening")
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("http api: %w", err)
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}

func (s *Server) requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		s.log.Debug().
			Str("method", c.Request.Method).
			Str("path", c.FullPath()).
			Int("status", c.Writer.Status()).
			Dur("duration", time.Since(start)).
			Msg("request")
	}
}

func (s *Server) status(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "online", "commands": len(s.registry.All())})
}

func (s *Server) commands(c *gin.Context) {
	all := s.registry.All()
	out := make([]*command.Contract, 0, len(all))
	for _, cmd := range all {
		out = append(out, cmd.Contract())
	}
	c.JSON(http.StatusOK, out)
}

type runRequest struct {
	Text     string `json:"text" binding:"required"`
	Scope    string `json:"scope"`
	UserID   string `json:"user_id"`
	Username string `json:"username"`
}

type runResponse struct {
	*response.Response
	InvocationID string `json:"invocation_id"`
	Command      string `json:"command"`
}

func (s *Server) run(c *gin.Context) {
	var req runRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid JSON"})
		return
	}
	scope := req.Scope
	if scope == "" {
		scope = "http"
	}

	resp, inv, err := s.dispatcher.Dispatch(c.Request.Context(), command.Request{
		Text:      req.Text,
		ScopeID:   scope,
		ChannelID: scope,
		UserID:    req.UserID,
		Username:  req.Username,
	})
	if errors.Is(err, command.ErrUnknownCommand) {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	if err != nil {
		s.log.Error().Err(err).Msg("dispatch failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "dispatch failed"})
		return
	}

	out := runResponse{Response: resp}
	if inv != nil {
		out.InvocationID = inv.ID
		out.Command = inv.Command
	}
	c.JSON(http.StatusOK, out)
}

func (s *Server) scopeHistory(c *gin.Context) {
	records, err := s.history.History(c.Param("scope"))
	if err != nil {
		s.log.Error().Err(err).Msg("history read failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "history unavailable"})
		return
	}
	if records == nil {
		records = []storage.InvocationRecord{}
	}
	c.JSON(http.StatusOK, records)
}
