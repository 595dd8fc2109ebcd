package boards

import (
	"errors"
	"fmt"
)

// Ошибки конфигурации.
var (
	// ErrMissingBase — не задана переменная окружения ZEPHYR_BASE.
	ErrMissingBase = errors.New("ZEPHYR_BASE is not set")

	// ErrInvalidPattern — фильтр по имени не является корректным регулярным выражением.
	ErrInvalidPattern = errors.New("invalid name pattern")

	// ErrInvalidFormat — некорректная строка формата.
	ErrInvalidFormat = errors.New("invalid format string")
)

// FormatError — ошибка разбора строки формата с позицией.
type FormatError struct {
	Format  string // исходная строка формата
	Pos     int    // смещение в байтах
	Message string // описание ошибки
}

// Error реализует интерфейс error.
func (e *FormatError) Error() string {
	return fmt.Sprintf("%v %q: %s at offset %d", ErrInvalidFormat, e.Format, e.Message, e.Pos)
}

// Unwrap возвращает ErrInvalidFormat.
func (e *FormatError) Unwrap() error {
	return ErrInvalidFormat
}
