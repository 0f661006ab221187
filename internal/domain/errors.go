package domain

import (
	"errors"
	"strings"
)

// ErrorKind классифицирует ошибки так, чтобы HTTP-слой мог выбрать статус.
type ErrorKind string

const (
	KindAuthorizationDenied ErrorKind = "AuthorizationDenied"
	KindValidationFailed    ErrorKind = "ValidationFailed"
	KindNotFound            ErrorKind = "NotFound"
	KindUpstreamFailure     ErrorKind = "UpstreamFailure"
	KindMalformedIdentifier ErrorKind = "MalformedIdentifier"
	KindOwnershipDenied     ErrorKind = "OwnershipDenied"
	KindUnauthenticated     ErrorKind = "Unauthenticated"
	KindConflict            ErrorKind = "Conflict"
)

// FieldError — нарушение, относящееся к конкретному полю.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Error — ошибка бизнес-логики со стабильным видом и сообщением для клиента.
// Err хранит исходную причину и никогда не отдается клиенту.
type Error struct {
	Kind    ErrorKind
	Message string
	Fields  []FieldError
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// KindOf возвращает вид ошибки или пустую строку для неклассифицированных ошибок.
func KindOf(err error) ErrorKind {
	var de *Error
	if errors.As(err, &de) {
		return de.Kind
	}
	return ""
}

func NewAuthorizationDenied(role Role) *Error {
	return &Error{
		Kind:    KindAuthorizationDenied,
		Message: string(role) + " is not allowed to access this resource!",
	}
}

func NewValidation(message string) *Error {
	return &Error{Kind: KindValidationFailed, Message: message}
}

// NewFieldValidation собирает нарушения по полям в одну ошибку,
// сохраняя каждое нарушение отдельно.
func NewFieldValidation(fields []FieldError) *Error {
	msgs := make([]string, 0, len(fields))
	for _, f := range fields {
		msgs = append(msgs, f.Message)
	}
	return &Error{
		Kind:    KindValidationFailed,
		Message: strings.Join(msgs, "; "),
		Fields:  fields,
	}
}

func NewNotFound(message string) *Error {
	return &Error{Kind: KindNotFound, Message: message}
}

func NewMalformedID(message string) *Error {
	return &Error{Kind: KindMalformedIdentifier, Message: message}
}

func NewOwnershipDenied(message string) *Error {
	return &Error{Kind: KindOwnershipDenied, Message: message}
}

func NewUnauthenticated(message string) *Error {
	return &Error{Kind: KindUnauthenticated, Message: message}
}

func NewConflict(message string) *Error {
	return &Error{Kind: KindConflict, Message: message}
}

// NewUpstream оборачивает сбой хранилища или файлового сервиса.
// message уходит клиенту, cause — только в логи.
func NewUpstream(message string, cause error) *Error {
	return &Error{Kind: KindUpstreamFailure, Message: message, Err: cause}
}
