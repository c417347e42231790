package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/caarlos0/env/v6"
	"github.com/joho/godotenv"
)

// DefaultDBPort — стандартный порт MySQL/RDS, если DB_PORT/RDS_PORT не заданы.
const DefaultDBPort = 3306

// Config хранит все конфигурационные параметры приложения.
// Для каждой переменной БД есть основное имя (DB_*) и запасной алиас (RDS_*),
// как их выставляет Elastic Beanstalk / RDS. Разрешение алиасов — через методы-аксессоры.
type Config struct {
	DBHost      string `env:"DB_HOST"`
	RDSHostname string `env:"RDS_HOSTNAME"`
	DBEndpoint  string `env:"DB_ENDPOINT"`

	DBPort  string `env:"DB_PORT"`
	RDSPort string `env:"RDS_PORT"`

	DBName    string `env:"DB_NAME"`
	RDSDBName string `env:"RDS_DB_NAME"`

	DBUser      string `env:"DB_USER"`
	RDSUsername string `env:"RDS_USERNAME"`

	DBPassword  string `env:"DB_PASSWORD"`
	RDSPassword string `env:"RDS_PASSWORD"`

	// SecretARN — идентификатор секрета в AWS Secrets Manager с логином/паролем БД.
	SecretARN string `env:"SECRET_ARN"`
	AWSRegion string `env:"AWS_REGION"`

	// SQLitePath — путь к локальному файлу-хранилищу (бесплатный fallback).
	SQLitePath string `env:"SQLITE_PATH"`

	ServerPort string `env:"SERVER_PORT"`

	LogLevel  string `env:"LOG_LEVEL"`
	LogFormat string `env:"LOG_FORMAT"`
}

// LoadConfig загружает конфигурацию из переменных окружения.
// В режиме разработки пытается загрузить .env файл.
func LoadConfig() (*Config, error) {
	if _, err := os.Stat(".env"); !os.IsNotExist(err) {
		if err := godotenv.Load(); err != nil {
			return nil, fmt.Errorf("ошибка загрузки .env файла: %w", err)
		}
	}

	cfg := Config{}
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("ошибка парсинга конфигурации из окружения: %w", err)
	}

	// Значения по умолчанию выставляем вручную, как и в остальных сервисах:
	// env.Parse обрабатывает только required и типы.
	if cfg.AWSRegion == "" {
		cfg.AWSRegion = "eu-central-1"
	}
	if cfg.SQLitePath == "" {
		cfg.SQLitePath = "./email.db"
	}
	if cfg.ServerPort == "" {
		cfg.ServerPort = "8000"
	}

	return &cfg, nil
}

// firstNonEmpty возвращает первое непустое значение из списка.
func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

// Host возвращает хост БД: DB_HOST -> RDS_HOSTNAME -> DB_ENDPOINT.
func (c *Config) Host() string {
	return firstNonEmpty(c.DBHost, c.RDSHostname, c.DBEndpoint)
}

// Port возвращает порт БД: DB_PORT -> RDS_PORT -> 3306.
// Некорректное значение тоже деградирует к 3306: конфигурация не должна падать.
func (c *Config) Port() int {
	raw := firstNonEmpty(c.DBPort, c.RDSPort)
	if raw == "" {
		return DefaultDBPort
	}
	port, err := strconv.Atoi(raw)
	if err != nil || port <= 0 {
		return DefaultDBPort
	}
	return port
}

// Name возвращает имя базы: DB_NAME -> RDS_DB_NAME.
func (c *Config) Name() string {
	return firstNonEmpty(c.DBName, c.RDSDBName)
}

// User возвращает пользователя БД: DB_USER -> RDS_USERNAME.
func (c *Config) User() string {
	return firstNonEmpty(c.DBUser, c.RDSUsername)
}

// Password возвращает пароль БД: DB_PASSWORD -> RDS_PASSWORD.
func (c *Config) Password() string {
	return firstNonEmpty(c.DBPassword, c.RDSPassword)
}

// HasDirectCredentials сообщает, заданы ли все четыре прямых параметра подключения.
func (c *Config) HasDirectCredentials() bool {
	return c.Host() != "" && c.Name() != "" && c.User() != "" && c.Password() != ""
}
