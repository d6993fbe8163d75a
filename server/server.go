// Copyright 2025 The jiopay-rag-chatbot Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


// Package server exposes the chatbot over HTTP.
//
// One JSON endpoint answers questions; a liveness probe reports process
// health. Error payloads carry user-facing messages, never internals.
package server

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/HarVkr/jiopay-rag-chatbot/core"
)

// User-facing error messages returned by the chat endpoint.
const (
	msgEmptyQuestion = "Please enter a question about JioPay Business"
	msgInternalError = "I'm experiencing technical difficulties. Please try again."
)

// ErrAskerRequired indicates a Server was constructed without a chatbot.
var ErrAskerRequired = errors.New("asker is required")

// Asker answers one question. *jiopayrag.Chatbot satisfies it.
type Asker interface {
	Ask(ctx context.Context, message string) (*core.ChatResponse, error)
}

// Server is the HTTP surface over the chatbot.
type Server struct {
	echo   *echo.Echo
	asker  Asker
	logger *slog.Logger
}

// Option configures a Server.
type Option func(*Server) error

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) error {
		if logger == nil {
			logger = slog.Default()
		}
		s.logger = logger
		return nil
	}
}

// NewServer creates an HTTP server answering questions via the given Asker.
func NewServer(asker Asker, opts ...Option) (*Server, error) {
	if asker == nil {
		return nil, ErrAskerRequired
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Use(middleware.Recover())

	s := &Server{
		echo:   e,
		asker:  asker,
		logger: slog.Default().With("component", "http-server"),
	}

	for _, opt := range opts {
		if err := opt(s); err != nil {
			return nil, err
		}
	}

	e.POST("/api/chat", s.handleChat)
	e.GET("/healthz", s.handleHealth)

	return s, nil
}

type chatRequest struct {
	Message string `json:"message"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func (s *Server) handleChat(c echo.Context) error {
	var req chatRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: msgEmptyQuestion})
	}

	response, err := s.asker.Ask(c.Request().Context(), req.Message)
	if err != nil {
		if errors.Is(err, core.ErrEmptyMessage) {
			return c.JSON(http.StatusBadRequest, errorResponse{Error: msgEmptyQuestion})
		}
		s.logger.Error("chat request failed", "err", err)
		return c.JSON(http.StatusInternalServerError, errorResponse{Error: msgInternalError})
	}

	return c.JSON(http.StatusOK, response)
}

func (s *Server) handleHealth(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

// Handler exposes the underlying http.Handler, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.echo
}

// Start listens on addr and serves until Shutdown is called.
func (s *Server) Start(addr string) error {
	s.logger.Info("http server listening", "addr", addr)
	err := s.echo.Start(addr)
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}

// Shutdown gracefully stops the server, waiting up to 10 seconds for
// in-flight requests.
func (s *Server) Shutdown(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	return s.echo.Shutdown(ctx)
}
