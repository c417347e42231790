// Package secrets получает учётные данные БД из AWS Secrets Manager.
package secrets

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/secretsmanager"
)

// defaultUsername подставляется, когда секрет не содержит имени пользователя.
const defaultUsername = "admin"

// SecretsManagerAPI — используемое подмножество клиента Secrets Manager.
// Вынесено в интерфейс, чтобы в тестах подменять клиента фейком.
type SecretsManagerAPI interface {
	GetSecretValue(ctx context.Context, params *secretsmanager.GetSecretValueInput,
		optFns ...func(*secretsmanager.Options)) (*secretsmanager.GetSecretValueOutput, error)
}

// Resolver представляет клиент для получения секретов с учётными данными БД.
type Resolver struct {
	client SecretsManagerAPI
	logger *slog.Logger
}

// NewResolver создает Resolver для указанного региона.
func NewResolver(ctx context.Context, region string, logger *slog.Logger) (*Resolver, error) {
	cfgAws, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("ошибка загрузки AWS-конфигурации: %w", err)
	}
	return &Resolver{
		client: secretsmanager.NewFromConfig(cfgAws),
		logger: logger,
	}, nil
}

// NewResolverWithClient создает Resolver с готовым клиентом (для тестов).
func NewResolverWithClient(client SecretsManagerAPI, logger *slog.Logger) *Resolver {
	return &Resolver{client: client, logger: logger}
}

// Resolve возвращает пару (username, password) по идентификатору секрета.
// Любая ошибка получения логируется (без содержимого секрета) и даёт пустую пару;
// повторных попыток нет.
func (r *Resolver) Resolve(ctx context.Context, secretID string) (string, string) {
	out, err := r.client.GetSecretValue(ctx, &secretsmanager.GetSecretValueInput{
		SecretId: aws.String(secretID),
	})
	if err != nil {
		r.logger.Error("failed to fetch secret", "secret_id", secretID, "error", err)
		return "", ""
	}
	if out.SecretString == nil || *out.SecretString == "" {
		r.logger.Warn("secret has no string payload", "secret_id", secretID)
		return "", ""
	}

	payload := parsePayload(*out.SecretString)
	if payload.Password == "" {
		r.logger.Warn("secret payload contains no password", "secret_id", secretID)
		return "", ""
	}

	r.logger.Info("database credentials resolved from secret",
		"secret_id", secretID,
		"structured", payload.Structured,
	)
	return payload.Username, payload.Password
}

// payload — результат разбора секрета.
// Structured=true: JSON-объект с полями username/user и password/pass.
// Structured=false: всё содержимое секрета — пароль, username по умолчанию.
type payload struct {
	Structured bool
	Username   string
	Password   string
}

// parsePayload разбирает содержимое секрета по явной двухветочной схеме,
// без управления потоком через ошибки разбора наружу.
func parsePayload(raw string) payload {
	var fields struct {
		Username string `json:"username"`
		User     string `json:"user"`
		Password string `json:"password"`
		Pass     string `json:"pass"`
	}

	if err := json.Unmarshal([]byte(raw), &fields); err == nil {
		username := fields.Username
		if username == "" {
			username = fields.User
		}
		if username == "" {
			username = defaultUsername
		}
		password := fields.Password
		if password == "" {
			password = fields.Pass
		}
		return payload{Structured: true, Username: username, Password: password}
	}

	// Не JSON — считаем весь текст паролем.
	return payload{Structured: false, Username: defaultUsername, Password: raw}
}
