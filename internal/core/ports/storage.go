package ports

import (
	"context"

	"github.com/GoArmGo/ContactBook/internal/domain"
)

// ContactStorage определяет методы для взаимодействия с хранилищем контактов.
// Все реализации обязаны использовать только параметризованные запросы.
type ContactStorage interface {
	// SearchByUsername ищет контакты по подстроке username (шаблон %keyword%).
	SearchByUsername(ctx context.Context, keyword string) ([]domain.Contact, error)

	// Exists проверяет, занят ли username.
	Exists(ctx context.Context, username string) (bool, error)

	// Insert вставляет новый контакт. При конфликте по username
	// возвращает domain.ErrContactExists.
	Insert(ctx context.Context, contact domain.Contact) error

	// Ping выполняет тривиальный round-trip к БД (SELECT 1) для health-чека.
	Ping(ctx context.Context) error
}
