package storage

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"time"

	"github.com/GoArmGo/ContactBook/internal/domain"
	"github.com/jmoiron/sqlx"

	mysqldriver "github.com/go-sql-driver/mysql"
	sqlite3 "github.com/mattn/go-sqlite3"
)

// mysqlDupEntry — код ошибки MySQL "Duplicate entry" при нарушении первичного ключа.
const mysqlDupEntry = 1062

// ContactStorage реализует интерфейс ports.ContactStorage поверх sqlx.
// Работает одинаково для MySQL и SQLite: оба драйвера принимают плейсхолдер '?'.
type ContactStorage struct {
	db     *sqlx.DB
	logger *slog.Logger
}

// NewContactStorage создает новый экземпляр ContactStorage
func NewContactStorage(db *sqlx.DB, logger *slog.Logger) *ContactStorage {
	return &ContactStorage{db: db, logger: logger}
}

// SearchByUsername ищет контакты по подстроке username через параметризованный LIKE.
// Подстановка только через аргумент запроса, никакой конкатенации SQL.
func (s *ContactStorage) SearchByUsername(ctx context.Context, keyword string) ([]domain.Contact, error) {
	start := time.Now()

	var contacts []domain.Contact
	err := s.db.SelectContext(ctx, &contacts,
		"SELECT username, email FROM users WHERE username LIKE ?", "%"+keyword+"%")
	if err != nil {
		s.logger.Error("failed to search contacts", "error", err)
		return nil, err
	}

	s.logger.Info("contact search executed",
		"matches", len(contacts),
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return contacts, nil
}

// Exists проверяет, занят ли username.
func (s *ContactStorage) Exists(ctx context.Context, username string) (bool, error) {
	var one int
	err := s.db.GetContext(ctx, &one, "SELECT 1 FROM users WHERE username = ?", username)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		s.logger.Error("failed to check contact existence", "error", err)
		return false, err
	}
	return true, nil
}

// Insert вставляет новый контакт. Проигравшая в гонке вставка упирается в
// первичный ключ — ошибку драйвера переводим в тот же domain.ErrContactExists.
func (s *ContactStorage) Insert(ctx context.Context, contact domain.Contact) error {
	start := time.Now()

	_, err := s.db.ExecContext(ctx,
		"INSERT INTO users (username, email) VALUES (?, ?)", contact.Username, contact.Email)
	if err != nil {
		if isDuplicateKey(err) {
			return domain.ErrContactExists
		}
		s.logger.Error("failed to insert contact", "error", err)
		return err
	}

	s.logger.Info("contact inserted",
		"username", contact.Username,
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return nil
}

// Ping выполняет тривиальный запрос к базе для health-чека.
func (s *ContactStorage) Ping(ctx context.Context) error {
	var one int
	return s.db.GetContext(ctx, &one, "SELECT 1")
}

// isDuplicateKey распознаёт нарушение уникальности у обоих драйверов.
func isDuplicateKey(err error) bool {
	var mysqlErr *mysqldriver.MySQLError
	if errors.As(err, &mysqlErr) {
		return mysqlErr.Number == mysqlDupEntry
	}
	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) {
		return sqliteErr.Code == sqlite3.ErrConstraint
	}
	return false
}
