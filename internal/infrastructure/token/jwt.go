package token

import (
	"errors"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var (
	ErrInvalidToken = errors.New("invalid token")
	ErrRevokedToken = errors.New("token has been revoked")
)

// Claims são as claims dos tokens de sessão
type Claims struct {
	UserID string `json:"uid"`
	jwt.RegisteredClaims
}

// Manager assina e valida tokens de sessão HS256. Mantém uma lista
// de revogação em memória (jti) para que o logout invalide de fato
// o token apresentado.
type Manager struct {
	secret []byte
	expiry time.Duration

	mu      sync.Mutex
	revoked map[string]time.Time // jti -> expiração do token
}

// NewManager cria um novo Manager
func NewManager(secret string, expiry time.Duration) *Manager {
	return &Manager{
		secret:  []byte(secret),
		expiry:  expiry,
		revoked: make(map[string]time.Time),
	}
}

// Sign emite um token para o usuário informado
func (m *Manager) Sign(userID string) (string, error) {
	now := time.Now()
	claims := &Claims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.expiry)),
		},
	}

	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return tok.SignedString(m.secret)
}

// Parse valida assinatura, expiração e revogação do token
func (m *Manager) Parse(tokenStr string) (*Claims, error) {
	parsed, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return m.secret, nil
	})
	if err != nil {
		return nil, err
	}

	claims, ok := parsed.Claims.(*Claims)
	if !ok || !parsed.Valid {
		return nil, ErrInvalidToken
	}

	if m.isRevoked(claims.ID) {
		return nil, ErrRevokedToken
	}

	return claims, nil
}

// Revoke invalida o token apresentado. Tokens inválidos ou já
// revogados são ignorados, tornando a operação idempotente.
func (m *Manager) Revoke(tokenStr string) {
	claims, err := m.Parse(tokenStr)
	if err != nil {
		return
	}

	expiresAt := time.Now().Add(m.expiry)
	if claims.ExpiresAt != nil {
		expiresAt = claims.ExpiresAt.Time
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	m.revoked[claims.ID] = expiresAt
	m.sweepLocked()
}

func (m *Manager) isRevoked(jti string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	_, revoked := m.revoked[jti]
	return revoked
}

// sweepLocked remove entradas cujos tokens já expiraram sozinhos.
// Chamado com o lock já adquirido.
func (m *Manager) sweepLocked() {
	now := time.Now()
	for jti, expiresAt := range m.revoked {
		if now.After(expiresAt) {
			delete(m.revoked, jti)
		}
	}
}
