// Package auth signs users in with email and password and issues JWTs
package auth

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/amaumene/moviedeck/internal/config"
	"github.com/amaumene/moviedeck/internal/models"
	"github.com/go-playground/validator/v10"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"
	"github.com/sirupsen/logrus"
	"github.com/timshannon/bolthold"
	"golang.org/x/crypto/bcrypt"
)

// Demo account seeded on start
const (
	DemoID       = "1"
	DemoName     = "Demo User"
	DemoEmail    = "demo@example.com"
	DemoPassword = "password123"
)

// LoginRequest is the body of a login
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

// RegisterRequest is the body of a registration
type RegisterRequest struct {
	Name     string `json:"name" validate:"required,min=2"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

// User is the public view of an account
type User struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// Session is an issued token
type Session struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
	User      User      `json:"user"`
}

// Claims carried by issued tokens. Subject is the account ID.
type Claims struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	jwt.RegisteredClaims
}

// Service handles accounts and tokens
type Service struct {
	db       *models.Database
	secret   []byte
	ttl      time.Duration
	revoked  *cache.Cache
	validate *validator.Validate
	logger   *logrus.Logger
	now      func() time.Time
}

// NewService creates an auth service
func NewService(cfg *config.Config, db *models.Database, logger *logrus.Logger) *Service {
	return &Service{
		db:       db,
		secret:   []byte(cfg.JWTSecret),
		ttl:      cfg.SessionTTL,
		revoked:  cache.New(cfg.SessionTTL, 10*time.Minute),
		validate: validator.New(validator.WithRequiredStructEnabled()),
		logger:   logger,
		now:      time.Now,
	}
}

// SeedDemo stores the demo account unless it already exists
func (s *Service) SeedDemo() error {
	_, err := s.db.GetAccountByEmail(DemoEmail)
	if err == nil {
		return nil
	}
	if !errors.Is(err, bolthold.ErrNotFound) {
		return fmt.Errorf("failed to look up demo account: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(DemoPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash demo password: %w", err)
	}

	err = s.db.CreateAccount(&models.Account{
		ID:           DemoID,
		Name:         DemoName,
		Email:        DemoEmail,
		PasswordHash: hash,
		CreatedAt:    s.now(),
	})
	if err != nil && !errors.Is(err, models.ErrAccountExists) {
		return fmt.Errorf("failed to create demo account: %w", err)
	}

	s.logger.WithField("email", DemoEmail).Info("Demo account ready")
	return nil
}

// Login checks credentials and issues a token
func (s *Service) Login(req LoginRequest) (*Session, error) {
	req.Email = strings.TrimSpace(req.Email)
	if err := s.check(req); err != nil {
		return nil, err
	}

	account, err := s.db.GetAccountByEmail(req.Email)
	if err != nil {
		if errors.Is(err, bolthold.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to look up account: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword(account.PasswordHash, []byte(req.Password)); err != nil {
		s.logger.WithField("email", req.Email).Warn("Failed login attempt")
		return nil, ErrInvalidCredentials
	}

	return s.issue(account)
}

// Register creates an account and issues a token for it
func (s *Service) Register(req RegisterRequest) (*Session, error) {
	req.Name = strings.TrimSpace(req.Name)
	req.Email = strings.TrimSpace(req.Email)
	if err := s.check(req); err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	account := &models.Account{
		ID:           uuid.NewString(),
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: hash,
		CreatedAt:    s.now(),
	}
	if err := s.db.CreateAccount(account); err != nil {
		if errors.Is(err, models.ErrAccountExists) {
			return nil, ErrEmailTaken
		}
		return nil, fmt.Errorf("failed to create account: %w", err)
	}

	s.logger.WithFields(logrus.Fields{
		"user_id": account.ID,
		"email":   account.Email,
	}).Info("Account registered")

	return s.issue(account)
}

// Verify parses a token and returns its claims
func (s *Service) Verify(token string) (*Claims, error) {
	claims := &Claims{}
	_, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		return s.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	if _, revoked := s.revoked.Get(claims.ID); revoked {
		return nil, fmt.Errorf("%w: revoked", ErrInvalidToken)
	}
	return claims, nil
}

// Logout revokes token until it expires
func (s *Service) Logout(token string) error {
	claims, err := s.Verify(token)
	if err != nil {
		return err
	}

	remaining := claims.ExpiresAt.Time.Sub(s.now())
	if remaining > 0 {
		s.revoked.Set(claims.ID, struct{}{}, remaining)
	}

	s.logger.WithField("user_id", claims.Subject).Info("Signed out")
	return nil
}

// RevokedCount returns the number of revoked tokens still tracked
func (s *Service) RevokedCount() int {
	return s.revoked.ItemCount()
}

func (s *Service) issue(account *models.Account) (*Session, error) {
	now := s.now()
	expiresAt := now.Add(s.ttl)

	claims := Claims{
		Name:  account.Name,
		Email: account.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   account.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return nil, fmt.Errorf("failed to sign token: %w", err)
	}

	return &Session{
		Token:     token,
		ExpiresAt: expiresAt,
		User: User{
			ID:    account.ID,
			Name:  account.Name,
			Email: account.Email,
		},
	}, nil
}

var messages = map[string]map[string]string{
	"name":     {"required": "Name is required", "min": "Name must be at least 2 characters"},
	"email":    {"required": "Email is required", "email": "Invalid email address"},
	"password": {"required": "Password is required", "min": "Password must be at least 6 characters"},
}

func (s *Service) check(req interface{}) error {
	err := s.validate.Struct(req)
	if err == nil {
		return nil
	}

	var errs validator.ValidationErrors
	if !errors.As(err, &errs) {
		return fmt.Errorf("failed to validate request: %w", err)
	}

	verr := &ValidationError{Fields: make(map[string]string, len(errs))}
	for _, fe := range errs {
		field := strings.ToLower(fe.Field())
		msg, ok := messages[field][fe.Tag()]
		if !ok {
			msg = fmt.Sprintf("%s is invalid", fe.Field())
		}
		verr.Fields[field] = msg
	}
	return verr
}
