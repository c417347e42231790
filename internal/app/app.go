package app

import (
	"context"
	"fmt"
	"log/slog"
	"os/signal"
	"syscall"

	"github.com/GoArmGo/ContactBook/internal/config"
	"github.com/GoArmGo/ContactBook/internal/core/ports"
	"github.com/GoArmGo/ContactBook/internal/usecase"
	"github.com/GoArmGo/ContactBook/internal/web"
	"github.com/jmoiron/sqlx"
)

// App собирает все зависимости сервиса контактов.
type App struct {
	Config   *config.Config
	logger   *slog.Logger
	db       *sqlx.DB
	contacts usecase.ContactUseCase
	storage  ports.ContactStorage
	renderer *web.Renderer
}

func NewApp(
	cfg *config.Config,
	logger *slog.Logger,
	db *sqlx.DB,
	contacts usecase.ContactUseCase,
	storage ports.ContactStorage,
	renderer *web.Renderer,
) *App {
	return &App{
		Config:   cfg,
		logger:   logger,
		db:       db,
		contacts: contacts,
		storage:  storage,
		renderer: renderer,
	}
}

// LoggerIns возвращает основной логгер приложения.
func (a *App) LoggerIns() *slog.Logger {
	return a.logger
}

// Run запускает приложение в выбранном режиме и блокируется до сигнала завершения.
func (a *App) Run(ctx context.Context, mode *string) error {
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	a.logger.Info("application run", "mode", *mode)

	var err error
	switch *mode {
	case "server":
		err = runServer(ctx, a.Config, a.logger, a.contacts, a.storage, a.renderer)
	default:
		err = fmt.Errorf("неизвестный режим: %s (поддерживается только 'server')", *mode)
	}

	if closeErr := a.Shutdown(); closeErr != nil {
		a.logger.Error("shutdown error", "error", closeErr)
	}

	return err
}

// Shutdown закрывает все ресурсы приложения
func (a *App) Shutdown() error {
	if a.db != nil {
		if err := a.db.Close(); err != nil {
			return fmt.Errorf("ошибка закрытия БД: %w", err)
		}
	}
	return nil
}
