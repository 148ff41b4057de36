// Package auth implements username/password accounts with bearer tokens.
// Tokens are HS256 JWTs carrying the user id; password hashes are bcrypt.
package auth

import (
	"context"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/hyeon/vocaflash/internal/apperr"
	"github.com/hyeon/vocaflash/internal/logger"
	"github.com/hyeon/vocaflash/internal/models"
)

const (
	minUsernameLen = 3
	minPasswordLen = 4
)

// UserStore is the persistence surface the service needs. Lookups return
// (nil, nil) when no user matches.
type UserStore interface {
	Create(ctx context.Context, username, passwordHash string, email *string) (*models.User, error)
	ByID(ctx context.Context, id string) (*models.User, error)
	ByUsername(ctx context.Context, username string) (*models.User, error)
	ByEmail(ctx context.Context, email string) (*models.User, error)
}

// Service handles registration, login and token verification.
type Service struct {
	users  UserStore
	secret []byte
	ttl    time.Duration
}

func NewService(users UserStore, secret string, ttl time.Duration) *Service {
	return &Service{users: users, secret: []byte(secret), ttl: ttl}
}

type claims struct {
	UserID string `json:"userId"`
	jwt.RegisteredClaims
}

// Register creates an account and returns the user with a fresh token.
func (s *Service) Register(ctx context.Context, username, password, email string) (*models.User, string, error) {
	log := logger.FromContext(ctx).WithPrefix("auth")

	if len(username) < minUsernameLen {
		return nil, "", apperr.NewValidationError("username", "must be at least 3 characters")
	}
	if len(password) < minPasswordLen {
		return nil, "", apperr.NewValidationError("password", "must be at least 4 characters")
	}

	existing, err := s.users.ByUsername(ctx, username)
	if err != nil {
		return nil, "", apperr.NewInternalError(err)
	}
	if existing != nil {
		return nil, "", apperr.NewConflictError("username already taken")
	}
	var emailPtr *string
	if email != "" {
		existing, err := s.users.ByEmail(ctx, email)
		if err != nil {
			return nil, "", apperr.NewInternalError(err)
		}
		if existing != nil {
			return nil, "", apperr.NewConflictError("email already taken")
		}
		emailPtr = &email
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, "", apperr.NewInternalError(err)
	}

	user, err := s.users.Create(ctx, username, string(hash), emailPtr)
	if err != nil {
		return nil, "", apperr.NewInternalError(err)
	}
	log.Info("user registered: username=%s", username)

	token, err := s.issueToken(user.ID)
	if err != nil {
		return nil, "", apperr.NewInternalError(err)
	}
	return user, token, nil
}

// Login verifies credentials and returns the user with a fresh token.
func (s *Service) Login(ctx context.Context, username, password string) (*models.User, string, error) {
	log := logger.FromContext(ctx).WithPrefix("auth")

	user, err := s.users.ByUsername(ctx, username)
	if err != nil {
		return nil, "", apperr.NewInternalError(err)
	}
	if user == nil {
		return nil, "", apperr.NewUnauthorizedError("invalid username or password")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		log.Warn("failed login attempt: username=%s", username)
		return nil, "", apperr.NewUnauthorizedError("invalid username or password")
	}

	token, err := s.issueToken(user.ID)
	if err != nil {
		return nil, "", apperr.NewInternalError(err)
	}
	log.Debug("user logged in: username=%s", username)
	return user, token, nil
}

// UserByID loads a user for an already-verified identity.
func (s *Service) UserByID(ctx context.Context, id string) (*models.User, error) {
	user, err := s.users.ByID(ctx, id)
	if err != nil {
		return nil, apperr.NewInternalError(err)
	}
	if user == nil {
		return nil, apperr.NewNotFoundError("user", id)
	}
	return user, nil
}

func (s *Service) issueToken(userID string) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	})
	return token.SignedString(s.secret)
}

// VerifyToken parses a bearer token and returns the user id it carries.
func (s *Service) VerifyToken(tokenString string) (string, error) {
	var c claims
	token, err := jwt.ParseWithClaims(tokenString, &c, func(t *jwt.Token) (interface{}, error) {
		return s.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil || !token.Valid || c.UserID == "" {
		return "", apperr.NewUnauthorizedError("invalid token")
	}
	return c.UserID, nil
}
