package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/GoArmGo/ContactBook/internal/config"
	"github.com/GoArmGo/ContactBook/internal/core/ports"
	"github.com/GoArmGo/ContactBook/internal/handler"
	"github.com/GoArmGo/ContactBook/internal/usecase"
	"github.com/GoArmGo/ContactBook/internal/web"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// requestTimeout ограничивает обработку одного запроса сверх таймаутов драйвера БД.
const requestTimeout = 15 * time.Second

// runServer запускает HTTP-сервер и блокируется до отмены контекста.
func runServer(
	ctx context.Context,
	cfg *config.Config,
	logger *slog.Logger,
	contacts usecase.ContactUseCase,
	storage ports.ContactStorage,
	renderer *web.Renderer,
) error {
	contactHandler := handler.NewContactHandler(contacts, storage, renderer, logger)

	r := chi.NewRouter()
	r.Use(handler.RequestLogger(logger))
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(requestTimeout))

	r.Get("/health", contactHandler.Health)
	r.Get("/health/db", contactHandler.HealthDB)
	r.Get("/", contactHandler.Index)
	r.Post("/", contactHandler.Index)

	serverAddr := fmt.Sprintf(":%s", cfg.ServerPort)
	server := &http.Server{
		Addr:    serverAddr,
		Handler: r,
	}

	serveErr := make(chan error, 1)
	go func() {
		logger.Info("http server started", "addr", serverAddr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
	}()

	select {
	case err := <-serveErr:
		return fmt.Errorf("ошибка HTTP-сервера: %w", err)
	case <-ctx.Done():
	}

	logger.Info("shutdown signal received, stopping http server")

	ctxServer, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctxServer); err != nil {
		return fmt.Errorf("graceful shutdown failed: %w", err)
	}

	logger.Info("http server stopped")
	return nil
}
