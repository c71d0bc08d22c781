package domain

import (
	"errors"
	"fmt"
)

// Kind - категория ошибки, по которой транспорт выбирает статус ответа
type Kind int

const (
	KindUnexpected Kind = iota
	KindValidation
	KindNotFound
	KindUnauthorized
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindNotFound:
		return "not_found"
	case KindUnauthorized:
		return "unauthorized"
	default:
		return "unexpected"
	}
}

// Error - бизнес-ошибка с категорией
type Error struct {
	Kind    Kind
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// Is сравнивает ошибки по категории и сообщению, чтобы errors.Is
// находил сентинелы среди ошибок, созданных конструкторами ниже.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Kind == t.Kind && e.Message == t.Message
}

// Определение бизнес-ошибок
var (
	ErrEmployeeNotFound = &Error{Kind: KindNotFound, Message: "employee not found"}
	ErrInvalidAPIKey    = &Error{Kind: KindUnauthorized, Message: "invalid api key"}
)

// NotFound оборачивает причину в ошибку отсутствия сотрудника
func NotFound(cause error) *Error {
	return &Error{Kind: KindNotFound, Message: ErrEmployeeNotFound.Message, Cause: cause}
}

// Validation создаёт ошибку валидации входных данных
func Validation(msg string, cause error) *Error {
	return &Error{Kind: KindValidation, Message: msg, Cause: cause}
}

// Unauthorized создаёт ошибку проверки ключа
func Unauthorized(msg string) *Error {
	return &Error{Kind: KindUnauthorized, Message: msg}
}

// KindOf возвращает категорию ошибки; всё, что не является *Error, считается неожиданным
func KindOf(err error) Kind {
	var de *Error
	if errors.As(err, &de) {
		return de.Kind
	}
	return KindUnexpected
}
