// Package auth is the credential and session manager: signup, login and
// stateless bearer-token verification.
package auth

import (
	"context"
	"fmt"
	"net/mail"
	"strings"
	"time"

	"github.com/devworkshq/devworks/model"
	"github.com/devworkshq/devworks/store"
	"github.com/devworkshq/devworks/utils"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// TokenTTL is how long an issued session token stays valid. Tokens are
// self-contained and cannot be revoked before natural expiry.
const TokenTTL = 8 * time.Hour

const minPasswordLength = 6

// Manager issues and verifies session tokens and owns the credential store.
// The signing secret is injected at construction, never read from ambient
// globals.
type Manager struct {
	db       *gorm.DB
	secret   []byte
	tokenTTL time.Duration
}

func NewManager(db *gorm.DB, secret []byte) *Manager {
	return &Manager{db: db, secret: secret, tokenTTL: TokenTTL}
}

// GravatarUrl derives the default avatar deterministically from the email, so
// a fresh account renders with an identicon before any upload happens.
func GravatarUrl(email string) string {
	hash := utils.TextToMd5Hash(strings.ToLower(strings.TrimSpace(email)))
	return fmt.Sprintf("https://www.gravatar.com/avatar/%s?s=200&r=pg&d=mm", hash)
}

// Register creates a new identity. The password is stored only as a salted
// bcrypt hash. The email uniqueness check is the conditional insert itself,
// not a separate read, so two racing signups cannot both win.
func (m *Manager) Register(ctx context.Context, name, email, password string) (*model.User, error) {
	var v store.Violations
	if strings.TrimSpace(name) == "" {
		v.Add("name", "name is required")
	}
	email = strings.ToLower(strings.TrimSpace(email))
	if _, err := mail.ParseAddress(email); err != nil {
		v.Add("email", "a valid email is required")
	}
	if len(password) < minPasswordLength {
		v.Add("password", "password must be at least 6 characters")
	}
	if err := v.Err(); err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, errors.Wrap(err, "hash password")
	}

	user := model.User{
		Id:           uuid.New().String(),
		CreatedAt:    time.Now(),
		Name:         strings.TrimSpace(name),
		Email:        email,
		PasswordHash: string(hash),
		AvatarUrl:    GravatarUrl(email),
	}
	res := m.db.WithContext(ctx).
		Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "email"}}, DoNothing: true}).
		Create(&user)
	if res.Error != nil {
		return nil, errors.Wrap(res.Error, "create user")
	}
	if res.RowsAffected == 0 {
		return nil, store.ErrDuplicateEmail
	}
	return &user, nil
}

// Authenticate verifies the email/password pair and issues a session token.
// Unknown email and wrong password are indistinguishable to the caller.
func (m *Manager) Authenticate(ctx context.Context, email, password string) (string, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	var user model.User
	res := m.db.WithContext(ctx).Where("email = ?", email).First(&user)
	if res.Error != nil {
		if errors.Is(res.Error, gorm.ErrRecordNotFound) {
			return "", store.ErrInvalidCredentials
		}
		return "", errors.Wrap(res.Error, "look up user by email")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", store.ErrInvalidCredentials
	}
	return m.IssueToken(user.Id)
}

// CurrentUser resolves an already-authenticated user id to its record.
func (m *Manager) CurrentUser(ctx context.Context, userID string) (*model.User, error) {
	var user model.User
	res := m.db.WithContext(ctx).Where("id = ?", userID).First(&user)
	if res.Error != nil {
		if errors.Is(res.Error, gorm.ErrRecordNotFound) {
			return nil, store.ErrNotFound
		}
		return nil, errors.Wrap(res.Error, "look up current user")
	}
	return &user, nil
}
