package ports

import "context"

// CredentialResolver определяет методы получения учётных данных БД из внешнего
// хранилища секретов. Используется конфигуратором подключения.
type CredentialResolver interface {
	// Resolve возвращает пару (username, password) по идентификатору секрета.
	// При любой ошибке получения возвращает пустую пару — вызывающая сторона
	// деградирует к локальному хранилищу.
	Resolve(ctx context.Context, secretID string) (username, password string)
}
