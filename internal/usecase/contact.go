package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/GoArmGo/ContactBook/internal/core/ports"
	"github.com/GoArmGo/ContactBook/internal/domain"
)

// Статусные сообщения для пользователя. Тексты фиксированы и показываются как есть.
const (
	MsgEmptyFields   = "Username or email cannot be empty!"
	MsgInvalidEmail  = "Please provide a valid email address."
	MsgStorageFailed = "Could not save the contact, please try again later."
)

// ContactUseCase определяет бизнес-операции над контактами.
type ContactUseCase interface {
	// Search возвращает контакты по подстроке username.
	// Пустое ключевое слово — пустой результат без запроса к хранилищу.
	Search(ctx context.Context, keyword string) ([]domain.Contact, error)

	// Add валидирует пару username/email и вставляет контакт.
	// Возвращает готовый статус для пользователя, никогда не сырую ошибку драйвера.
	Add(ctx context.Context, username, email string) string
}

type contactInteractor struct {
	storage ports.ContactStorage
	logger  *slog.Logger
}

// NewContactUseCase создаёт бизнес-логику контактов поверх хранилища.
func NewContactUseCase(storage ports.ContactStorage, logger *slog.Logger) ContactUseCase {
	return &contactInteractor{storage: storage, logger: logger}
}

func (uc *contactInteractor) Search(ctx context.Context, keyword string) ([]domain.Contact, error) {
	if keyword == "" {
		return nil, nil
	}
	return uc.storage.SearchByUsername(ctx, keyword)
}

// Add проверяет поля в фиксированном порядке и останавливается на первой ошибке:
// пустые поля -> формат email -> занятость username -> вставка.
func (uc *contactInteractor) Add(ctx context.Context, username, email string) string {
	if username == "" || email == "" {
		return MsgEmptyFields
	}
	if !domain.ValidEmail(email) {
		return MsgInvalidEmail
	}

	exists, err := uc.storage.Exists(ctx, username)
	if err != nil {
		uc.logger.Error("existence check failed", "username", username, "error", err)
		return MsgStorageFailed
	}
	if exists {
		return fmt.Sprintf("User %s already exists.", username)
	}

	err = uc.storage.Insert(ctx, domain.Contact{Username: username, Email: email})
	if errors.Is(err, domain.ErrContactExists) {
		// Проверка и вставка не атомарны: проигравший гонку получает тот же статус.
		return fmt.Sprintf("User %s already exists.", username)
	}
	if err != nil {
		uc.logger.Error("contact insert failed", "username", username, "error", err)
		return MsgStorageFailed
	}

	return fmt.Sprintf("User %s with email %s has been added successfully.", username, email)
}
