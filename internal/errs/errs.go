// Package errs porte la taxonomie d'erreurs du coeur métier. Toutes les
// erreurs remontées par les services appartiennent à un Kind; la couche HTTP
// traduit le Kind en code de statut.
package errs

import (
	"errors"
	"fmt"
)

type Kind int

const (
	Unknown Kind = iota
	InvalidData
	NotFound
	DuplicateCode
	AlreadyExists
	Forbidden
	InsufficientStock
	EmptyCart
	AuthError
	InvalidCredentials
)

func (k Kind) String() string {
	switch k {
	case InvalidData:
		return "invalid_data"
	case NotFound:
		return "not_found"
	case DuplicateCode:
		return "duplicate_code"
	case AlreadyExists:
		return "already_exists"
	case Forbidden:
		return "forbidden"
	case InsufficientStock:
		return "insufficient_stock"
	case EmptyCart:
		return "empty_cart"
	case AuthError:
		return "auth_error"
	case InvalidCredentials:
		return "invalid_credentials"
	default:
		return "unknown_error"
	}
}

// Error associe un message à un Kind, avec une cause optionnelle.
type Error struct {
	Kind Kind
	Msg  string
	Err  error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Msg, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Msg)
}

func (e *Error) Unwrap() error { return e.Err }

func New(kind Kind, msg string) error {
	return &Error{Kind: kind, Msg: msg}
}

func Newf(kind Kind, format string, args ...any) error {
	return &Error{Kind: kind, Msg: fmt.Sprintf(format, args...)}
}

// Wrap classe une erreur d'une dépendance (stockage, réseau) dans la taxonomie.
func Wrap(kind Kind, msg string, err error) error {
	return &Error{Kind: kind, Msg: msg, Err: err}
}

// KindOf retourne le Kind d'une erreur, Unknown si elle n'est pas classée.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return Unknown
}

func Is(err error, kind Kind) bool {
	return KindOf(err) == kind
}
