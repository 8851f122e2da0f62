package entities

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/viniciusmp/pessoas-backend/internal/domain/valueobjects"
)

var (
	ErrInvalidUserData = errors.New("invalid user data")
)

// User representa um usuário do sistema. Não há papéis nem
// permissões: qualquer usuário autenticado tem acesso completo.
type User struct {
	ID           string
	Name         string
	Email        valueobjects.Email
	PasswordHash string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Validate valida regras de negócio da entidade User. Toda violação
// envolve ErrInvalidUserData, permitindo errors.Is na camada acima.
func (u *User) Validate() error {
	if u.Email.String() == "" {
		return fmt.Errorf("%w: email is required", ErrInvalidUserData)
	}

	if strings.TrimSpace(u.Name) == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidUserData)
	}

	if len(u.Name) > 255 {
		return fmt.Errorf("%w: name must have at most 255 characters", ErrInvalidUserData)
	}

	if u.PasswordHash == "" {
		return fmt.Errorf("%w: password hash is required", ErrInvalidUserData)
	}

	return nil
}
