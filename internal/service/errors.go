package service

import (
	"errors"
	"strings"
)

var (
	ErrUserNotFound     = errors.New("user not found")
	ErrProtocolNotFound = errors.New("protocol not found")
	ErrRateLimited      = errors.New("rate limited")
	ErrInvalidEmail     = errors.New("invalid email")
)

// ValidationError transporta la lista completa de violaciones de dominio
// hacia la capa HTTP, que responde 422 con los mensajes tal cual.
type ValidationError struct {
	Messages []string
}

func (e *ValidationError) Error() string {
	return "entrada inválida: " + strings.Join(e.Messages, "; ")
}
