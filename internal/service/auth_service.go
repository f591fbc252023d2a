package service

import (
	"errors"
	"os"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"aligniq/internal/model"
)

var (
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrInvalidToken       = errors.New("invalid or expired token")
)

// AuthService handles sales-rep authentication. The surgeon-alone flow is
// anonymous and never touches this service.
type AuthService struct {
	repUsername string
	repPassword string
	jwtSecret   []byte
}

// NewAuthService creates a new auth service
func NewAuthService() *AuthService {
	username := os.Getenv("REP_USERNAME")
	if username == "" {
		username = "rep"
	}
	password := os.Getenv("REP_PASSWORD")
	if password == "" {
		password = "password123"
	}
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		secret = "super-secret-key-change-in-production"
	}

	return &AuthService{
		repUsername: username,
		repPassword: password,
		jwtSecret:   []byte(secret),
	}
}

// Login validates credentials and returns a bearer token
func (s *AuthService) Login(username, password string) (*model.LoginResponse, error) {
	if username != s.repUsername || password != s.repPassword {
		return nil, ErrInvalidCredentials
	}

	repID := "rep_" + uuid.New().String()[:8]

	claims := &model.RepClaims{
		RepID: repID,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(12 * time.Hour)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.jwtSecret)
	if err != nil {
		return nil, err
	}

	return &model.LoginResponse{
		Token: signed,
		RepID: repID,
	}, nil
}

// ValidateRepToken parses and validates a rep bearer token
func (s *AuthService) ValidateRepToken(tokenString string) (*model.RepClaims, error) {
	claims := &model.RepClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return s.jwtSecret, nil
	})
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
