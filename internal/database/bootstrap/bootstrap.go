// Package bootstrap создаёт таблицу контактов и однократно заливает стартовые строки.
package bootstrap

import (
	"context"
	_ "embed"
	"fmt"
	"log/slog"

	"github.com/GoArmGo/ContactBook/internal/domain"
	"github.com/jmoiron/sqlx"
)

//go:embed schema.sql
var schemaDDL string

// seedContacts — фиксированные стартовые строки для свежесозданной пустой таблицы.
var seedContacts = []domain.Contact{
	{Username: "andrii", Email: "andrii@example.com"},
	{Username: "olena", Email: "olena@example.com"},
	{Username: "max", Email: "max@example.com"},
}

// Ensure идемпотентно готовит схему: создаёт таблицу, и если она пуста —
// вставляет стартовые строки одной транзакцией. Любой сбой здесь не должен
// мешать старту процесса: вызывающая сторона только логирует ошибку.
func Ensure(ctx context.Context, db *sqlx.DB, logger *slog.Logger) error {
	if _, err := db.ExecContext(ctx, schemaDDL); err != nil {
		return fmt.Errorf("ошибка создания таблицы users: %w", err)
	}

	var count int
	if err := db.GetContext(ctx, &count, "SELECT COUNT(*) FROM users"); err != nil {
		return fmt.Errorf("ошибка подсчёта строк users: %w", err)
	}
	if count > 0 {
		logger.Info("schema bootstrap complete, table already populated", "rows", count)
		return nil
	}

	tx, err := db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("ошибка открытия транзакции для seed: %w", err)
	}

	for _, c := range seedContacts {
		if _, err := tx.ExecContext(ctx,
			"INSERT INTO users (username, email) VALUES (?, ?)", c.Username, c.Email); err != nil {
			// Возможна гонка с параллельным стартом — откатываемся и отдаём наверх.
			_ = tx.Rollback()
			return fmt.Errorf("ошибка вставки стартовых строк: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("ошибка фиксации seed-транзакции: %w", err)
	}

	logger.Info("schema bootstrap complete, seed rows inserted", "rows", len(seedContacts))
	return nil
}
