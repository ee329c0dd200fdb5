package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cast"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/arjunvn/shopstack/internal/auth"
	"github.com/arjunvn/shopstack/internal/mailer"
	"github.com/arjunvn/shopstack/internal/store"
)

const (
	usersCollection  = "users"
	resetsCollection = "password_resets"
	resetTTL         = time.Hour
)

var (
	ErrEmailTaken         = errors.New("user with this email already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrResetCodeInvalid   = errors.New("invalid or expired reset code")
)

// AuthService owns signup, login, google sign-in and the password reset flow.
type AuthService struct {
	store        store.Store
	tokens       *auth.JWTVerifier
	mail         mailer.Mailer
	log          *zap.Logger
	tokenTTL     time.Duration
	resetBaseURL string
}

func NewAuthService(st store.Store, tokens *auth.JWTVerifier, mail mailer.Mailer, log *zap.Logger, tokenTTL time.Duration, resetBaseURL string) *AuthService {
	return &AuthService{
		store:        st,
		tokens:       tokens,
		mail:         mail,
		log:          log,
		tokenTTL:     tokenTTL,
		resetBaseURL: resetBaseURL,
	}
}

// HashPassword hashes a password using bcrypt.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	return string(hash), err
}

// VerifyPassword compares a plain password with a hashed password.
func VerifyPassword(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

// Signup creates a user from validated signup data and returns the stored
// user (without password) plus a signed token. Email uniqueness is a
// pre-check query, not a database constraint.
func (s *AuthService) Signup(ctx context.Context, data store.Document) (store.Document, string, error) {
	email := normalizeEmail(cast.ToString(data["email"]))

	_, err := s.store.FindOneByField(ctx, usersCollection, "email", email)
	if err == nil {
		return nil, "", ErrEmailTaken
	}
	if !errors.Is(err, store.ErrNotFound) {
		return nil, "", err
	}

	hash, err := HashPassword(cast.ToString(data["password"]))
	if err != nil {
		return nil, "", fmt.Errorf("hashing password: %w", err)
	}

	firstName := cast.ToString(data["firstName"])
	lastName := cast.ToString(data["lastName"])
	fullName := strings.TrimSpace(firstName + " " + lastName)
	if fullName == "" {
		fullName = cast.ToString(data["name"])
	}
	role := cast.ToString(data["role"])

	user := store.Document{
		"firstName": firstName,
		"lastName":  lastName,
		"fullName":  fullName,
		"email":     email,
		"password":  hash,
		"role":      role,
		"status":    "active",
		"createdAt": time.Now().UTC().Format(time.RFC3339),
	}

	id, err := s.store.Insert(ctx, usersCollection, user)
	if err != nil {
		return nil, "", fmt.Errorf("creating user: %w", err)
	}

	token, err := s.tokens.Issue(id, email, auth.Role(role), s.tokenTTL)
	if err != nil {
		return nil, "", fmt.Errorf("issuing token: %w", err)
	}

	return sanitizeUser(user, id), token, nil
}

// Login authenticates credentials and returns a signed token.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, error) {
	user, err := s.store.FindOneByField(ctx, usersCollection, "email", normalizeEmail(email))
	if errors.Is(err, store.ErrNotFound) {
		return "", ErrInvalidCredentials
	}
	if err != nil {
		return "", err
	}

	if !VerifyPassword(password, cast.ToString(user["password"])) {
		return "", ErrInvalidCredentials
	}

	return s.tokens.Issue(
		cast.ToString(user["id"]),
		cast.ToString(user["email"]),
		auth.Role(cast.ToString(user["role"])),
		s.tokenTTL,
	)
}

// GoogleSignIn upserts the user document for an identity-provider principal:
// first login creates the user.
func (s *AuthService) GoogleSignIn(ctx context.Context, p auth.Principal) (store.Document, error) {
	email := normalizeEmail(p.Email)
	user, err := s.store.FindOneByField(ctx, usersCollection, "email", email)
	if err == nil {
		return sanitizeUser(user, cast.ToString(user["id"])), nil
	}
	if !errors.Is(err, store.ErrNotFound) {
		return nil, err
	}

	user = store.Document{
		"email":     email,
		"role":      string(p.Role),
		"provider":  "google",
		"status":    "active",
		"createdAt": time.Now().UTC().Format(time.RFC3339),
	}
	id, err := s.store.Insert(ctx, usersCollection, user)
	if err != nil {
		return nil, fmt.Errorf("creating user: %w", err)
	}
	return sanitizeUser(user, id), nil
}

// RequestPasswordReset stores a single-use reset code and mails its link.
// An unknown email is not reported to the caller.
func (s *AuthService) RequestPasswordReset(ctx context.Context, email string) error {
	email = normalizeEmail(email)
	user, err := s.store.FindOneByField(ctx, usersCollection, "email", email)
	if errors.Is(err, store.ErrNotFound) {
		s.log.Info("password reset requested for unknown email")
		return nil
	}
	if err != nil {
		return err
	}

	code := uuid.NewString()
	reset := store.Document{
		"code":      code,
		"userId":    cast.ToString(user["id"]),
		"expiresAt": time.Now().Add(resetTTL).UTC().Format(time.RFC3339),
	}
	if _, err := s.store.Insert(ctx, resetsCollection, reset); err != nil {
		return fmt.Errorf("storing reset code: %w", err)
	}

	link := fmt.Sprintf("%s?oobCode=%s", s.resetBaseURL, code)
	return s.mail.SendPasswordReset(email, link)
}

// VerifyResetCode reports whether a reset code exists and has not expired.
func (s *AuthService) VerifyResetCode(ctx context.Context, code string) error {
	_, err := s.lookupReset(ctx, code)
	return err
}

// SetPassword consumes a reset code and stores the new password hash.
func (s *AuthService) SetPassword(ctx context.Context, code, newPassword string) error {
	reset, err := s.lookupReset(ctx, code)
	if err != nil {
		return err
	}

	hash, err := HashPassword(newPassword)
	if err != nil {
		return fmt.Errorf("hashing password: %w", err)
	}

	userID := cast.ToString(reset["userId"])
	if err := s.store.UpdateByID(ctx, usersCollection, userID, store.Document{"password": hash}); err != nil {
		return fmt.Errorf("updating password: %w", err)
	}

	if err := s.store.DeleteByID(ctx, resetsCollection, cast.ToString(reset["id"])); err != nil {
		s.log.Warn("failed to consume reset code", zap.Error(err))
	}
	return nil
}

func (s *AuthService) lookupReset(ctx context.Context, code string) (store.Document, error) {
	reset, err := s.store.FindOneByField(ctx, resetsCollection, "code", code)
	if errors.Is(err, store.ErrNotFound) {
		return nil, ErrResetCodeInvalid
	}
	if err != nil {
		return nil, err
	}

	expiresAt, err := time.Parse(time.RFC3339, cast.ToString(reset["expiresAt"]))
	if err != nil || time.Now().After(expiresAt) {
		return nil, ErrResetCodeInvalid
	}
	return reset, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// sanitizeUser strips the password hash and attaches the id.
func sanitizeUser(user store.Document, id string) store.Document {
	out := store.Document{"id": id}
	for k, v := range user {
		if k == "password" || k == "id" {
			continue
		}
		out[k] = v
	}
	return out
}
