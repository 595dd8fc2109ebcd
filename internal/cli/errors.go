package cli

import (
	"errors"
	"fmt"
)

// Ошибки клиента Zephyr IDE API.
var (
	// ErrUnsupportedMethod — метод, отличный от GET/POST; запрос не отправляется.
	ErrUnsupportedMethod = errors.New("unsupported method")

	// ErrUnreachable — не удалось получить HTTP ответ (DNS, connection refused, timeout).
	ErrUnreachable = errors.New("api server unreachable")

	// ErrUnauthorized — сервер отклонил API ключ (HTTP 401).
	ErrUnauthorized = errors.New("api key rejected")

	// ErrServer — ответ получен, но статус не 200 или success=false.
	ErrServer = errors.New("api request failed")

	// ErrMalformedBody — тело ответа не является JSON.
	ErrMalformedBody = errors.New("malformed response body")
)

// ErrorKind — вариант неуспешного результата вызова API.
type ErrorKind int

const (
	KindServer ErrorKind = iota
	KindUnauthorized
	KindUnreachable
	KindMalformed
)

// String возвращает имя варианта.
func (k ErrorKind) String() string {
	switch k {
	case KindUnauthorized:
		return "unauthorized"
	case KindUnreachable:
		return "unreachable"
	case KindMalformed:
		return "malformed"
	default:
		return "server"
	}
}

// APIError — неуспешный результат вызова API.
type APIError struct {
	Kind       ErrorKind // вариант ошибки
	StatusCode int       // HTTP статус, 0 если ответа не было
	Message    string    // payload.error или описание ошибки парсинга
}

// Error реализует интерфейс error.
func (e *APIError) Error() string {
	if e.Kind == KindUnreachable {
		return fmt.Sprintf("%v: %s", e.Unwrap(), e.Message)
	}
	return fmt.Sprintf("%v (HTTP %d): %s", e.Unwrap(), e.StatusCode, e.Message)
}

// Unwrap возвращает sentinel-ошибку, соответствующую Kind.
func (e *APIError) Unwrap() error {
	switch e.Kind {
	case KindUnauthorized:
		return ErrUnauthorized
	case KindUnreachable:
		return ErrUnreachable
	case KindMalformed:
		return ErrMalformedBody
	default:
		return ErrServer
	}
}
