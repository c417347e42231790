package di

import (
	"context"

	"github.com/GoArmGo/ContactBook/internal/app"
	"github.com/GoArmGo/ContactBook/internal/config"
	"github.com/GoArmGo/ContactBook/internal/core/ports"
	"github.com/GoArmGo/ContactBook/internal/database/bootstrap"
	"github.com/GoArmGo/ContactBook/internal/database/client"
	"github.com/GoArmGo/ContactBook/internal/database/storage"
	"github.com/GoArmGo/ContactBook/internal/logger"
	"github.com/GoArmGo/ContactBook/internal/secrets"
	"github.com/GoArmGo/ContactBook/internal/usecase"
	"github.com/GoArmGo/ContactBook/internal/web"
)

// BuildApp инициализирует все зависимости и возвращает готовый объект App.
func BuildApp(ctx context.Context) (*app.App, error) {
	// 1. Загрузка конфигурации
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, err
	}

	slogger := logger.NewSlog(logger.SlogConfig{
		Level:  cfg.LogLevel,
		Format: cfg.LogFormat,
	})
	slogger.Info("logger initialized", "level", cfg.LogLevel, "format", cfg.LogFormat)

	// 2. Резолвер секретов нужен только если задан SECRET_ARN.
	// Сбой его создания — не повод падать: конфигуратор уйдёт в SQLite.
	var resolver ports.CredentialResolver
	if cfg.SecretARN != "" {
		r, err := secrets.NewResolver(ctx, cfg.AWSRegion, slogger)
		if err != nil {
			slogger.Error("failed to build secrets resolver, remote credentials unavailable", "error", err)
		} else {
			resolver = r
		}
	}

	// 3. Выбор хранилища и подключение
	descriptor := client.ResolveDescriptor(ctx, cfg, resolver, slogger)
	dbClient, err := client.NewClient(descriptor, slogger)
	if err != nil {
		return nil, err
	}

	// 4. Подготовка схемы: сбой здесь не мешает старту, остаёмся без seed-данных.
	if err := bootstrap.Ensure(ctx, dbClient.DB, slogger); err != nil {
		slogger.Error("schema bootstrap failed, starting without seed data", "error", err)
	}

	// 5. Хранилище, бизнес-логика, рендер
	contactStorage := storage.NewContactStorage(dbClient.DB, slogger)
	contactUseCase := usecase.NewContactUseCase(contactStorage, slogger)
	renderer := web.NewRenderer()

	// 6. Сборка итогового приложения
	application := app.NewApp(
		cfg,
		slogger,
		dbClient.DB,
		contactUseCase,
		contactStorage,
		renderer,
	)

	slogger.Info("all dependencies initialized", "store", descriptor.String())
	return application, nil
}
