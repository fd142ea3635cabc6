package service

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/truckhire/truckhire-server/internal/apierrors"
	"github.com/truckhire/truckhire-server/internal/logger"
	"github.com/truckhire/truckhire-server/internal/model"
)

const resetSecretBytes = 32

// dummyHashFallback is a well-formed bcrypt hash of a throwaway string.
// Verifying against it still costs a full bcrypt comparison, unlike the
// fast rejection an empty hash would get.
const dummyHashFallback = "$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy"

// PasswordHasher produces and checks one-way password hashes.
type PasswordHasher interface {
	Hash(plaintext string) (string, error)
	Verify(plaintext, hash string) bool
}

// Auth implements the authentication core: credential verification, session
// token issuance, per-request authentication, and the password reset
// lifecycle.
type Auth struct {
	userStore   model.UserStore
	tokens      model.TokenManager
	hasher      PasswordHasher
	mailer      model.Mailer
	resetWindow time.Duration
	publicURL   string
	logger      *logger.Logger

	// dummyHash keeps login timing flat when the email is unknown.
	dummyHash string
}

// NewAuth creates the auth service. resetWindow bounds the validity of
// password reset secrets; publicURL is the external base for reset links.
func NewAuth(
	userStore model.UserStore,
	tokens model.TokenManager,
	hasher PasswordHasher,
	mailer model.Mailer,
	resetWindow time.Duration,
	publicURL string,
	logger *logger.Logger,
) *Auth {
	dummy, err := hasher.Hash("truckhire-dummy-password")
	if err != nil {
		dummy = dummyHashFallback
	}
	return &Auth{
		userStore:   userStore,
		tokens:      tokens,
		hasher:      hasher,
		mailer:      mailer,
		resetWindow: resetWindow,
		publicURL:   strings.TrimRight(publicURL, "/"),
		logger:      logger,
		dummyHash:   dummy,
	}
}

// SignUpParams carries the fields accepted at registration.
type SignUpParams struct {
	Name     string
	Email    string
	Password string
	Role     string
	Avatar   string
	Phone    string
}

// SignUp creates a new user and issues a session token for it.
func (a *Auth) SignUp(ctx context.Context, params SignUpParams) (model.User, string, error) {
	a.logger.Debug("Auth service: starting signup", "email", params.Email)

	role, err := model.ParseRole(params.Role)
	if err != nil {
		return model.User{}, "", apierrors.NewErrInvalidRequest(err.Error())
	}

	existing, err := a.userStore.GetByEmail(ctx, normalizeEmail(params.Email))
	if err != nil && !errors.Is(err, model.ErrNotFound) {
		return model.User{}, "", fmt.Errorf("failed to get user by email: %w", err)
	}
	if existing.ID != uuid.Nil {
		a.logger.Info("Auth service: email already taken", "email", params.Email)
		return model.User{}, "", apierrors.NewErrEmailTaken()
	}

	hash, err := a.hasher.Hash(params.Password)
	if err != nil {
		return model.User{}, "", apierrors.NewErrInvalidRequest("password cannot be empty")
	}

	now := time.Now()
	user := model.User{
		ID:           uuid.New(),
		Name:         params.Name,
		Email:        normalizeEmail(params.Email),
		Phone:        params.Phone,
		Avatar:       params.Avatar,
		Role:         role,
		Active:       true,
		PasswordHash: hash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	user, err = a.userStore.Create(ctx, user)
	if err != nil {
		a.logger.Error("Auth service: failed to create user",
			"email", params.Email,
			"error", err.Error())
		return model.User{}, "", fmt.Errorf("failed to create user: %w", err)
	}

	sessionToken, err := a.tokens.Generate(user.ID)
	if err != nil {
		return model.User{}, "", fmt.Errorf("failed to issue token: %w", err)
	}

	a.logger.Info("Auth service: signup completed", "user_id", user.ID)

	return user, sessionToken, nil
}

// Login verifies credentials and issues a session token. Unknown email and
// wrong password produce the same error.
func (a *Auth) Login(ctx context.Context, email, plaintext string) (model.User, string, error) {
	a.logger.Debug("Auth service: starting login", "email", email)

	user, err := a.userStore.GetByEmailWithPassword(ctx, normalizeEmail(email))
	if errors.Is(err, model.ErrNotFound) {
		// Burn a verification anyway so the miss is not observable by timing.
		a.hasher.Verify(plaintext, a.dummyHash)
		return model.User{}, "", apierrors.NewErrIncorrectCredentials()
	}
	if err != nil {
		return model.User{}, "", fmt.Errorf("failed to get user by email: %w", err)
	}

	if !a.hasher.Verify(plaintext, user.PasswordHash) {
		a.logger.Info("Auth service: incorrect password", "user_id", user.ID)
		return model.User{}, "", apierrors.NewErrIncorrectCredentials()
	}

	sessionToken, err := a.tokens.Generate(user.ID)
	if err != nil {
		return model.User{}, "", fmt.Errorf("failed to issue token: %w", err)
	}

	user.PasswordHash = ""

	a.logger.Info("Auth service: login completed", "user_id", user.ID)

	return user, sessionToken, nil
}

// Authenticate resolves a bearer token to its principal. It verifies the
// token, checks the subject still exists, and rejects tokens issued before
// the subject's last password change.
func (a *Auth) Authenticate(ctx context.Context, tokenString string) (model.User, error) {
	claims, err := a.tokens.Parse(tokenString)
	if errors.Is(err, model.ErrTokenExpired) {
		return model.User{}, apierrors.NewErrExpiredToken()
	}
	if err != nil {
		return model.User{}, apierrors.NewErrInvalidToken()
	}

	user, err := a.userStore.GetByID(ctx, claims.UserID)
	if errors.Is(err, model.ErrNotFound) {
		return model.User{}, apierrors.NewErrUnknownSubject()
	}
	if err != nil {
		return model.User{}, fmt.Errorf("failed to get user by id: %w", err)
	}

	if user.PasswordChangedAfter(claims.IssuedAt) {
		a.logger.Info("Auth service: token predates password change", "user_id", user.ID)
		return model.User{}, apierrors.NewErrStalePassword()
	}

	return user, nil
}

// ForgotPassword generates a one-time reset secret for the user with the
// given email, stores only its digest with an expiry, and mails the raw
// secret. A failed delivery rolls the ledger entry back so no undeliverable
// secret stays valid.
func (a *Auth) ForgotPassword(ctx context.Context, email string) error {
	a.logger.Debug("Auth service: starting password reset", "email", email)

	user, err := a.userStore.GetByEmail(ctx, normalizeEmail(email))
	if errors.Is(err, model.ErrNotFound) {
		return apierrors.NewErrUnknownEmail()
	}
	if err != nil {
		return fmt.Errorf("failed to get user by email: %w", err)
	}

	rawSecret, digest, err := generateResetSecret()
	if err != nil {
		return fmt.Errorf("failed to generate reset secret: %w", err)
	}

	expiry := time.Now().Add(a.resetWindow)
	if err := a.userStore.SetResetToken(ctx, user.ID, digest, expiry); err != nil {
		return fmt.Errorf("failed to store reset token: %w", err)
	}

	resetURL := fmt.Sprintf("%s/api/v1/users/resetPassword/%s", a.publicURL, rawSecret)
	body := fmt.Sprintf("Forgot your password? Submit a PATCH request with your new password to: %s\nIf you didn't forget your password, please ignore this email!", resetURL)

	if err := a.mailer.Send(ctx, user.Email, "Your password reset token (valid for 10 min)", body); err != nil {
		a.logger.Error("Auth service: reset email delivery failed",
			"user_id", user.ID,
			"error", err.Error())
		if clearErr := a.userStore.ClearResetToken(ctx, user.ID); clearErr != nil {
			a.logger.Error("Auth service: failed to roll back reset token",
				"user_id", user.ID,
				"error", clearErr.Error())
		}
		return apierrors.NewErrDeliveryFailed()
	}

	a.logger.Info("Auth service: reset email sent", "user_id", user.ID)

	return nil
}

// ResetPassword consumes a reset secret and installs the new password. The
// match-and-clear runs as one conditional store update, so a secret admits
// exactly one successful consumption; every token issued before the change
// becomes stale. Returns a fresh session token.
func (a *Auth) ResetPassword(ctx context.Context, rawSecret, newPassword string) (string, error) {
	newHash, err := a.hasher.Hash(newPassword)
	if err != nil {
		return "", apierrors.NewErrInvalidRequest("password cannot be empty")
	}

	// changedAt sits one second in the past so the token issued below is
	// not itself stale at whole-second granularity.
	now := time.Now()
	changedAt := now.Add(-time.Second)

	user, err := a.userStore.ConsumeResetToken(ctx, hashResetSecret(rawSecret), now, newHash, changedAt)
	if errors.Is(err, model.ErrNotFound) {
		return "", apierrors.NewErrExpiredOrInvalidResetToken()
	}
	if err != nil {
		return "", fmt.Errorf("failed to consume reset token: %w", err)
	}

	sessionToken, err := a.tokens.Generate(user.ID)
	if err != nil {
		return "", fmt.Errorf("failed to issue token: %w", err)
	}

	a.logger.Info("Auth service: password reset completed", "user_id", user.ID)

	return sessionToken, nil
}

// generateResetSecret creates a high-entropy secret and its digest. The
// secret goes to the user out-of-band; only the digest is persisted.
func generateResetSecret() (raw, digest string, err error) {
	buf := make([]byte, resetSecretBytes)
	if _, err = rand.Read(buf); err != nil {
		return "", "", fmt.Errorf("failed to read random bytes: %w", err)
	}

	raw = hex.EncodeToString(buf)
	return raw, hashResetSecret(raw), nil
}

func hashResetSecret(raw string) string {
	h := sha256.Sum256([]byte(raw))
	return hex.EncodeToString(h[:])
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
