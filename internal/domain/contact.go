package domain

import (
	"errors"
	"strings"
)

// Contact представляет модель контакта в системе.
// Соответствует таблице 'users' в базе данных: username является первичным ключом.
type Contact struct {
	Username string `json:"username" db:"username"`
	Email    string `json:"email" db:"email"`
}

// Сигнальные ошибки слоя хранилища. Usecase переводит их
// в текстовые статусы для пользователя.
var (
	// ErrContactExists возвращается при попытке вставить контакт с уже занятым username.
	ErrContactExists = errors.New("contact already exists")
	// ErrNotFound возвращается, когда контакт не найден.
	ErrNotFound = errors.New("contact not found")
)

// ValidEmail проверяет минимальный формат email: наличие '@' и '.'.
// Это сознательно не полная RFC-валидация.
func ValidEmail(email string) bool {
	return strings.Contains(email, "@") && strings.Contains(email, ".")
}
