package services

import (
	"crypto/subtle"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
	"minis-storefront/internal/models"
)

// AuthService issues and checks admin session tokens. There is a single
// admin account configured through the environment.
type AuthService struct {
	username     string
	passwordHash []byte
	secret       []byte
	ttl          time.Duration
	now          func() time.Time
	compare      func(hash, password []byte) error
}

func NewAuthService(username, passwordHash, secret string, ttl time.Duration) *AuthService {
	return &AuthService{
		username:     username,
		passwordHash: []byte(passwordHash),
		secret:       []byte(secret),
		ttl:          ttl,
		now:          time.Now,
		compare:      bcrypt.CompareHashAndPassword,
	}
}

// Login checks the credentials and returns a signed HS256 token.
func (s *AuthService) Login(req models.LoginRequest) (*models.LoginResponse, error) {
	if strings.TrimSpace(req.Username) == "" || req.Password == "" {
		return nil, fmt.Errorf("%w: username and password required", ErrValidation)
	}
	// The hash is always checked so a wrong username costs as much as a
	// wrong password.
	userOK := subtle.ConstantTimeCompare([]byte(req.Username), []byte(s.username)) == 1
	passErr := s.compare(s.passwordHash, []byte(req.Password))
	if !userOK || passErr != nil {
		return nil, fmt.Errorf("%w: invalid credentials", ErrUnauthorized)
	}

	now := s.now()
	claims := jwt.RegisteredClaims{
		Subject:   req.Username,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return nil, fmt.Errorf("failed to sign token: %w", err)
	}

	return &models.LoginResponse{
		Success:   true,
		Token:     token,
		ExpiresIn: s.ttl.Milliseconds(),
	}, nil
}

// Verify validates a token and returns its subject. Expired tokens yield
// ErrSessionExpired so clients know to log in again.
func (s *AuthService) Verify(tokenString string) (string, error) {
	claims := &jwt.RegisteredClaims{}
	_, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		return s.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(s.now),
		jwt.WithExpirationRequired(),
	)
	if errors.Is(err, jwt.ErrTokenExpired) {
		return "", ErrSessionExpired
	}
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUnauthorized, err)
	}
	if claims.Subject != s.username {
		return "", fmt.Errorf("%w: unknown subject", ErrUnauthorized)
	}
	return claims.Subject, nil
}
