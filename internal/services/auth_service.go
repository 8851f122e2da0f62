package services

import (
	"context"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/viniciusmp/pessoas-backend/internal/domain/entities"
	"github.com/viniciusmp/pessoas-backend/internal/domain/errors"
	"github.com/viniciusmp/pessoas-backend/internal/domain/ports"
	"github.com/viniciusmp/pessoas-backend/internal/domain/repositories"
	"github.com/viniciusmp/pessoas-backend/internal/domain/valueobjects"
	"github.com/viniciusmp/pessoas-backend/internal/infrastructure/token"
)

// AuthService contém a lógica de registro, login e sessão
type AuthService struct {
	userRepo repositories.UserRepository
	tokens   *token.Manager
	logger   ports.Logger
}

// NewAuthService cria um novo AuthService
func NewAuthService(
	userRepo repositories.UserRepository,
	tokens *token.Manager,
	logger ports.Logger,
) *AuthService {
	return &AuthService{
		userRepo: userRepo,
		tokens:   tokens,
		logger:   logger,
	}
}

// RegisterInput representa os dados para criar um usuário
type RegisterInput struct {
	Name     string
	Email    string
	Password string
}

// Register cria um novo usuário com a senha criptografada.
// A senha nunca é retornada nem registrada em log.
func (s *AuthService) Register(ctx context.Context, input RegisterInput) (*entities.User, error) {
	email, err := valueobjects.NewEmail(input.Email)
	if err != nil {
		return nil, err
	}

	existing, err := s.userRepo.FindByEmail(ctx, email.String())
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, errors.ErrEmailAlreadyExists
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &entities.User{
		Name:         strings.TrimSpace(input.Name),
		Email:        email,
		PasswordHash: string(hash),
	}

	if err := user.Validate(); err != nil {
		return nil, err
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	s.logger.Info("user registered", "id", user.ID, "email", user.Email.String())
	return user, nil
}

// Login verifica credenciais e emite um token de sessão.
// Email inexistente e senha incorreta produzem o mesmo erro, sem
// revelar qual credencial estava errada.
func (s *AuthService) Login(ctx context.Context, emailRaw, password string) (*entities.User, string, error) {
	email, err := valueobjects.NewEmail(emailRaw)
	if err != nil {
		return nil, "", errors.ErrInvalidCredentials
	}

	user, err := s.userRepo.FindByEmail(ctx, email.String())
	if err != nil {
		return nil, "", err
	}
	if user == nil {
		return nil, "", errors.ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, "", errors.ErrInvalidCredentials
	}

	sessionToken, err := s.tokens.Sign(user.ID)
	if err != nil {
		return nil, "", err
	}

	s.logger.Info("user logged in", "id", user.ID)
	return user, sessionToken, nil
}

// Logout revoga o token apresentado. Chamadas sem token ou com token
// já inválido também retornam sucesso (idempotente).
func (s *AuthService) Logout(tokenStr string) {
	if tokenStr == "" {
		return
	}
	s.tokens.Revoke(tokenStr)
}

// CurrentUser retorna a identidade da sessão estabelecida. Sessão com
// usuário removido entre a emissão do token e a chamada produz
// ErrUserNotFound.
func (s *AuthService) CurrentUser(ctx context.Context, userID string) (*entities.User, error) {
	if userID == "" {
		return nil, errors.ErrNotAuthenticated
	}

	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, errors.ErrUserNotFound
	}
	return user, nil
}
