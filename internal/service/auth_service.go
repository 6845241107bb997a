package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"package_features/internal/repository"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

const passwordCost = 10

// Identity is what a token proves about its bearer.
type Identity struct {
	UserID int
	Email  string
}

// Claims defines JWT claims
type Claims struct {
	jwt.RegisteredClaims
	UserID int    `json:"userId"`
	Email  string `json:"email"`
}

// AuthService checks credentials and issues/verifies tokens.
type AuthService struct {
	users      repository.Users
	signingKey []byte
	tokenTTL   time.Duration
	now        func() time.Time
}

func NewAuthService(repo repository.Users, secret string, ttl time.Duration) *AuthService {
	return &AuthService{
		users:      repo,
		signingKey: []byte(secret),
		tokenTTL:   ttl,
		now:        time.Now,
	}
}

// WithClock replaces the time source used for issuing and validating tokens.
func (s *AuthService) WithClock(now func() time.Time) *AuthService {
	s.now = now
	return s
}

// Login validates credentials and returns a signed token for the user.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, Identity, error) {
	email = normalizeEmail(email)
	if email == "" || password == "" {
		return "", Identity{}, ErrMissingLogin
	}

	u, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		return "", Identity{}, err
	}
	if u == nil {
		return "", Identity{}, ErrUserNotFound
	}
	if err := verifyPassword(u.PasswordHash, password); err != nil {
		return "", Identity{}, ErrInvalidPassword
	}

	id := Identity{UserID: u.ID, Email: u.Email}
	token, err := s.IssueToken(id)
	if err != nil {
		return "", Identity{}, err
	}
	return token, id, nil
}

// IssueToken signs a token binding id for the configured lifetime.
func (s *AuthService) IssueToken(id Identity) (string, error) {
	now := s.now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(s.tokenTTL)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
		UserID: id.UserID,
		Email:  id.Email,
	})
	signed, err := token.SignedString(s.signingKey)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// ParseToken verifies signature and expiry and returns the bound identity.
func (s *AuthService) ParseToken(accessToken string) (Identity, error) {
	token, err := jwt.ParseWithClaims(accessToken, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		// Ensure HMAC signing is used
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.signingKey, nil
	}, jwt.WithTimeFunc(s.now), jwt.WithExpirationRequired())
	if err != nil {
		return Identity{}, fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return Identity{}, ErrInvalidToken
	}
	return Identity{UserID: claims.UserID, Email: claims.Email}, nil
}

// helper: hash password safely
func hashPassword(password string) (string, error) {
	if strings.TrimSpace(password) == "" {
		return "", errors.New("password is empty")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), passwordCost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hash), nil
}

// helper: verify password against hash
func verifyPassword(hash, password string) error {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
