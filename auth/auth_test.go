package auth

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/devworkshq/devworks/store"
	"github.com/devworkshq/devworks/utils"
	"github.com/devworkshq/devworks/utils/dotenv"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	dotenv.LoadDotEnvsInTests()
	os.Exit(m.Run())
}

func newTestManager(t *testing.T) *Manager {
	db, _ := utils.CreateTempDB(t)
	return NewManager(db, []byte("test-secret"))
}

func TestSignupLoginRoundTrip(t *testing.T) {
	m := newTestManager(t)

	user, err := m.Register(context.Background(), "n", "e@x.com", "secret1")
	require.NoError(t, err)
	require.NotEmpty(t, user.Id)
	require.NotEqual(t, "secret1", user.PasswordHash)
	require.Contains(t, user.AvatarUrl, "gravatar.com/avatar/")

	token, err := m.Authenticate(context.Background(), "e@x.com", "secret1")
	require.NoError(t, err)

	resolved, err := m.VerifyToken(token)
	require.NoError(t, err)
	require.Equal(t, user.Id, resolved)
}

func TestAuthenticateNeverRevealsWhichFieldWasWrong(t *testing.T) {
	m := newTestManager(t)

	_, err := m.Register(context.Background(), "n", "e@x.com", "secret1")
	require.NoError(t, err)

	_, errWrongPassword := m.Authenticate(context.Background(), "e@x.com", "wrong")
	_, errUnknownEmail := m.Authenticate(context.Background(), "nobody@x.com", "secret1")

	require.ErrorIs(t, errWrongPassword, store.ErrInvalidCredentials)
	require.ErrorIs(t, errUnknownEmail, store.ErrInvalidCredentials)
	require.Equal(t, errWrongPassword.Error(), errUnknownEmail.Error())
}

func TestRegisterRejectsDuplicateEmail(t *testing.T) {
	m := newTestManager(t)

	_, err := m.Register(context.Background(), "first", "dup@x.com", "secret1")
	require.NoError(t, err)

	_, err = m.Register(context.Background(), "second", "dup@x.com", "secret2")
	require.ErrorIs(t, err, store.ErrDuplicateEmail)
}

func TestRegisterListsEveryViolatedField(t *testing.T) {
	m := newTestManager(t)

	_, err := m.Register(context.Background(), " ", "not-an-email", "short")
	ve, ok := store.AsValidation(err)
	require.True(t, ok)
	require.Len(t, ve.Fields, 3)
}

func TestVerifyTokenRejectsExpiredAndForged(t *testing.T) {
	m := newTestManager(t)

	user, err := m.Register(context.Background(), "n", "e@x.com", "secret1")
	require.NoError(t, err)

	// Issue an already-expired token.
	m.tokenTTL = -time.Minute
	expired, err := m.IssueToken(user.Id)
	require.NoError(t, err)
	_, err = m.VerifyToken(expired)
	require.ErrorIs(t, err, ErrTokenExpired)

	m.tokenTTL = TokenTTL
	token, err := m.IssueToken(user.Id)
	require.NoError(t, err)

	forger := NewManager(nil, []byte("other-secret"))
	_, err = forger.VerifyToken(token)
	require.ErrorIs(t, err, ErrTokenInvalid)

	_, err = m.VerifyToken("not-a-token")
	require.ErrorIs(t, err, ErrTokenInvalid)
}

func TestGravatarUrlIsDeterministic(t *testing.T) {
	require.Equal(t, GravatarUrl("E@X.com "), GravatarUrl("e@x.com"))
}
