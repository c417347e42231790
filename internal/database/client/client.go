// Package client отвечает за выбор бекенда БД и установку соединения.
package client

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/GoArmGo/ContactBook/internal/config"
	"github.com/GoArmGo/ContactBook/internal/core/ports"
	"github.com/jmoiron/sqlx"

	mysqldriver "github.com/go-sql-driver/mysql"
	_ "github.com/mattn/go-sqlite3"
)

// Драйверы, которые умеет конфигуратор.
const (
	DriverMySQL  = "mysql"
	DriverSQLite = "sqlite3"
)

// Descriptor описывает выбранное хранилище и способ подключения к нему.
type Descriptor struct {
	Driver string
	DSN    string

	// Справочные поля для логирования; пароль в Descriptor не хранится.
	Host string
	Port int
	Name string
	User string
}

// String возвращает описание без пароля — безопасно для логов.
func (d Descriptor) String() string {
	if d.Driver == DriverSQLite {
		return fmt.Sprintf("sqlite3://%s", d.Name)
	}
	return fmt.Sprintf("mysql://%s@%s:%d/%s", d.User, d.Host, d.Port, d.Name)
}

// ResolveDescriptor решает, какое хранилище использовать. Приоритет:
//  1. Полные прямые параметры (DB_HOST/DB_NAME/DB_USER/DB_PASSWORD) -> MySQL (RDS).
//  2. SECRET_ARN + (DB_HOST/DB_NAME) -> логин/пароль из Secrets Manager.
//  3. Иначе SQLite как бесплатный локальный fallback.
//
// Функция никогда не падает: отсутствие конфигурации — это штатный путь к SQLite.
func ResolveDescriptor(ctx context.Context, cfg *config.Config, resolver ports.CredentialResolver, logger *slog.Logger) Descriptor {
	if cfg.HasDirectCredentials() {
		logger.Info("using remote database from direct environment credentials",
			"host", cfg.Host(), "database", cfg.Name())
		return mysqlDescriptor(cfg.Host(), cfg.Port(), cfg.Name(), cfg.User(), cfg.Password())
	}

	if cfg.SecretARN != "" && cfg.Host() != "" && cfg.Name() != "" && resolver != nil {
		username, password := resolver.Resolve(ctx, cfg.SecretARN)
		if username != "" && password != "" {
			logger.Info("using remote database with credentials from secrets manager",
				"host", cfg.Host(), "database", cfg.Name())
			return mysqlDescriptor(cfg.Host(), cfg.Port(), cfg.Name(), username, password)
		}
		logger.Warn("secret yielded no usable credentials, falling back to local store")
	}

	logger.Info("using local sqlite store", "path", cfg.SQLitePath)
	return Descriptor{
		Driver: DriverSQLite,
		DSN:    cfg.SQLitePath,
		Name:   cfg.SQLitePath,
	}
}

// mysqlDescriptor собирает DSN через mysql.Config, а не конкатенацией строк.
func mysqlDescriptor(host string, port int, name, user, password string) Descriptor {
	mc := mysqldriver.NewConfig()
	mc.Net = "tcp"
	mc.Addr = fmt.Sprintf("%s:%d", host, port)
	mc.DBName = name
	mc.User = user
	mc.Passwd = password
	mc.ParseTime = true
	mc.Timeout = 5 * time.Second

	return Descriptor{
		Driver: DriverMySQL,
		DSN:    mc.FormatDSN(),
		Host:   host,
		Port:   port,
		Name:   name,
		User:   user,
	}
}

// Client представляет клиент для взаимодействия с выбранной БД.
type Client struct {
	DB         *sqlx.DB
	Descriptor Descriptor
	logger     *slog.Logger
}

// NewClient инициализирует новое подключение по дескриптору и пингует базу.
func NewClient(desc Descriptor, logger *slog.Logger) (*Client, error) {
	start := time.Now()

	db, err := sqlx.Open(desc.Driver, desc.DSN)
	if err != nil {
		logger.Error("failed to open database connection", "store", desc.String(), "error", err)
		return nil, fmt.Errorf("ошибка открытия соединения с БД: %w", err)
	}

	if desc.Driver == DriverSQLite {
		// Файловый SQLite не любит конкурентных писателей — одно соединение.
		db.SetMaxOpenConns(1)
	} else {
		db.SetMaxOpenConns(25)
		db.SetMaxIdleConns(10)
		db.SetConnMaxLifetime(5 * time.Minute)
	}

	if err = db.Ping(); err != nil {
		logger.Error("failed to ping database", "store", desc.String(), "error", err)
		_ = db.Close()
		return nil, fmt.Errorf("не удалось подключиться к базе данных: %w", err)
	}

	logger.Info("database connection established successfully",
		"store", desc.String(),
		"duration_ms", time.Since(start).Milliseconds(),
	)

	return &Client{DB: db, Descriptor: desc, logger: logger}, nil
}

func (c *Client) Close() error {
	start := time.Now()
	if err := c.DB.Close(); err != nil {
		c.logger.Error("failed to close database connection", "error", err)
		return err
	}
	c.logger.Info("database connection closed", "duration_ms", time.Since(start).Milliseconds())
	return nil
}
