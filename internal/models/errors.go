package models

import (
	"errors"
	"strings"
)

// ErrNotFound - операция сослалась на неизвестный id.
// Восстановимая ошибка: вызывающий перечитывает данные или сообщает пользователю.
var ErrNotFound = errors.New("запись не найдена")

// FieldError указывает на ошибку конкретного поля
type FieldError struct {
	Field string
	Error string
}

// ValidationError - ошибка валидации на границе сервисного слоя.
// Репозиторий значения не проверяет, чтобы исторические данные вне
// перечислений оставались читаемыми.
type ValidationError struct {
	Err    error
	Fields []FieldError
}

// NewValidationError создаёт ошибку валидации
func NewValidationError(err error, flds ...FieldError) error {
	return &ValidationError{Err: err, Fields: flds}
}

func (e *ValidationError) Error() string {
	if e.Err == nil {
		return ""
	}
	if len(e.Fields) == 0 {
		return e.Err.Error()
	}
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		parts = append(parts, f.Field+": "+f.Error)
	}
	return e.Err.Error() + " (" + strings.Join(parts, "; ") + ")"
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

// IsValidation проверяет, является ли ошибка ошибкой валидации
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
