// Package auth implements the single-admin login: password check, signed session cookies backed by
// a sessions table, and the bootstrap of the default admin account.
package auth

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/sujalbistaa/folio/internal/db"
	"github.com/sujalbistaa/folio/internal/models"
	"github.com/sujalbistaa/folio/internal/repository"
)

// Credentials of the account created by EnsureAdmin.
const (
	DefaultAdminUsername = "admin"
	DefaultAdminPassword = "password123"
)

const maxPasswordLen = 72

var (
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrSessionInvalid     = errors.New("session is invalid or expired")
)

// Service issues and checks admin sessions.
type Service struct {
	store  *repository.Store
	secret []byte
	ttl    time.Duration
	cost   int
	now    func() time.Time
}

// New returns a Service signing session tokens with secret.
func New(store *repository.Store, secret string, ttl time.Duration) *Service {
	return &Service{
		store:  store,
		secret: []byte(secret),
		ttl:    ttl,
		cost:   bcrypt.DefaultCost,
		now:    time.Now,
	}
}

// TTL is the lifetime of a new session.
func (s *Service) TTL() time.Duration {
	return s.ttl
}

// HashPassword returns the bcrypt hash stored in users.password.
func (s *Service) HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.cost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hash), nil
}

// Login succeeds iff a user with exactly this username exists and password matches its hash.
func (s *Service) Login(ctx context.Context, username, password string) (*models.User, error) {
	// bcrypt only reads the first maxPasswordLen bytes, and no stored hash came from a longer input.
	if len(password) > maxPasswordLen {
		return nil, ErrInvalidCredentials
	}
	user, err := s.store.UserByUsername(ctx, username)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}
	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)) != nil {
		return nil, ErrInvalidCredentials
	}
	return user, nil
}

// IssueSession records a new session for user and returns the signed cookie value.
func (s *Service) IssueSession(ctx context.Context, user *models.User) (string, *models.Session, error) {
	now := s.now().UTC()
	session := &models.Session{
		ID:        uuid.NewString(),
		UserID:    user.ID,
		CreatedAt: now,
		ExpiresAt: now.Add(s.ttl),
	}
	if err := s.store.CreateSession(ctx, session); err != nil {
		return "", nil, err
	}

	claims := jwt.RegisteredClaims{
		Subject:   strconv.FormatUint(uint64(user.ID), 10),
		ID:        session.ID,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(session.ExpiresAt),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", nil, fmt.Errorf("sign session token: %w", err)
	}
	return token, session, nil
}

// Resolve returns the user behind a cookie value. Unsigned, expired, logged-out or orphaned
// sessions all yield ErrSessionInvalid.
func (s *Service) Resolve(ctx context.Context, token string) (*models.User, error) {
	claims, err := s.parse(token, jwt.WithExpirationRequired(), jwt.WithTimeFunc(s.now))
	if err != nil {
		return nil, ErrSessionInvalid
	}

	session, err := s.store.GetSession(ctx, claims.ID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrSessionInvalid
	}
	if err != nil {
		return nil, err
	}
	if !session.ExpiresAt.After(s.now()) || strconv.FormatUint(uint64(session.UserID), 10) != claims.Subject {
		return nil, ErrSessionInvalid
	}

	user, err := s.store.UserByID(ctx, session.UserID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrSessionInvalid
	}
	return user, err
}

// Destroy deletes the session behind token. Tokens that fail verification are ignored.
func (s *Service) Destroy(ctx context.Context, token string) error {
	claims, err := s.parse(token, jwt.WithoutClaimsValidation())
	if err != nil {
		return nil
	}
	return s.store.DeleteSession(ctx, claims.ID)
}

// PurgeExpired removes sessions past their expiry.
func (s *Service) PurgeExpired(ctx context.Context) (int64, error) {
	return s.store.DeleteExpiredSessions(ctx, s.now().UTC())
}

// EnsureAdmin creates the schema if needed and the default admin unless one already exists.
// It reports whether a user was created.
func (s *Service) EnsureAdmin(ctx context.Context) (bool, error) {
	if err := db.Migrate(s.store.DB().WithContext(ctx)); err != nil {
		return false, err
	}

	n, err := s.store.CountUsersNamed(ctx, DefaultAdminUsername)
	if err != nil {
		return false, err
	}
	if n > 0 {
		return false, nil
	}

	hash, err := s.HashPassword(DefaultAdminPassword)
	if err != nil {
		return false, err
	}
	if err := s.store.CreateUser(ctx, &models.User{Username: DefaultAdminUsername, Password: hash}); err != nil {
		// Lost a race with a concurrent bootstrap: the unique index kept a single row.
		if n, countErr := s.store.CountUsersNamed(ctx, DefaultAdminUsername); countErr == nil && n > 0 {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

func (s *Service) parse(token string, opts ...jwt.ParserOption) (*jwt.RegisteredClaims, error) {
	opts = append(opts, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	claims := &jwt.RegisteredClaims{}
	_, err := jwt.ParseWithClaims(token, claims, func(*jwt.Token) (interface{}, error) {
		return s.secret, nil
	}, opts...)
	if err != nil {
		return nil, err
	}
	if claims.ID == "" {
		return nil, ErrSessionInvalid
	}
	return claims, nil
}
