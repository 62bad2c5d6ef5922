package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/Stiven-Chacon/Ecommerce-Nuvera/internal/domain"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

const bcryptCost = 10

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrInvalidToken       = errors.New("invalid token")
)

// Demo accounts. The storefront has no registration; identity comes from
// this fixed credential table.
var demoAccounts = []struct {
	email    string
	password string
	role     string
	name     string
}{
	{"demo@nuvera.com", "demo123456", "user", "Usuario Demo"},
	{"admin@nuvera.com", "admin123456", "admin", "Administrador"},
}

// Claims carried by a session token
type Claims struct {
	Email string `json:"email"`
	Role  string `json:"role"`
	Name  string `json:"name"`
	jwt.RegisteredClaims
}

// Service defines the interface for credential checks and session tokens
type Service interface {
	Login(email, password string) (token string, user domain.User, err error)
	ValidateToken(tokenString string) (*Claims, error)
}

type credential struct {
	passwordHash []byte
	role         string
	name         string
}

type service struct {
	secret      string
	expiry      time.Duration
	credentials map[string]credential
}

// NewService creates a Service over the fixed demo credential table.
// Session tokens are signed with secret and expire after expiry.
func NewService(secret string, expiry time.Duration) (Service, error) {
	credentials := make(map[string]credential, len(demoAccounts))
	for _, account := range demoAccounts {
		hash, err := bcrypt.GenerateFromPassword([]byte(account.password), bcryptCost)
		if err != nil {
			return nil, fmt.Errorf("failed to hash demo credential: %w", err)
		}
		credentials[account.email] = credential{
			passwordHash: hash,
			role:         account.role,
			name:         account.name,
		}
	}

	return &service{
		secret:      secret,
		expiry:      expiry,
		credentials: credentials,
	}, nil
}

// Login validates the credentials and issues a signed session token.
// Unknown emails and wrong passwords are indistinguishable to the caller.
func (s *service) Login(email, password string) (string, domain.User, error) {
	cred, ok := s.credentials[email]
	if !ok {
		return "", domain.User{}, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword(cred.passwordHash, []byte(password)); err != nil {
		return "", domain.User{}, ErrInvalidCredentials
	}

	user := domain.User{Email: email, Role: cred.role, Name: cred.name}

	claims := &Claims{
		Email: user.Email,
		Role:  user.Role,
		Name:  user.Name,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(s.expiry)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(s.secret))
	if err != nil {
		return "", domain.User{}, fmt.Errorf("failed to sign session token: %w", err)
	}

	return signed, user, nil
}

// ValidateToken parses and verifies a session token and returns its claims
func (s *service) ValidateToken(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.secret), nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to parse token: %w", err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}

	return claims, nil
}
