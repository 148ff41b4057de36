package auth_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/hyeon/vocaflash/internal/apperr"
	"github.com/hyeon/vocaflash/internal/auth"
	"github.com/hyeon/vocaflash/internal/models"
)

// memUsers is an in-memory UserStore.
type memUsers struct {
	users  map[string]*models.User
	nextID int
}

func newMemUsers() *memUsers {
	return &memUsers{users: map[string]*models.User{}}
}

func (m *memUsers) Create(ctx context.Context, username, passwordHash string, email *string) (*models.User, error) {
	m.nextID++
	u := &models.User{
		ID:           "u-" + username,
		Username:     username,
		Email:        email,
		PasswordHash: passwordHash,
		CreatedAt:    time.Now(),
	}
	m.users[u.ID] = u
	return u, nil
}

func (m *memUsers) ByID(ctx context.Context, id string) (*models.User, error) {
	return m.users[id], nil
}

func (m *memUsers) ByUsername(ctx context.Context, username string) (*models.User, error) {
	for _, u := range m.users {
		if u.Username == username {
			return u, nil
		}
	}
	return nil, nil
}

func (m *memUsers) ByEmail(ctx context.Context, email string) (*models.User, error) {
	for _, u := range m.users {
		if u.Email != nil && *u.Email == email {
			return u, nil
		}
	}
	return nil, nil
}

func newService() (*auth.Service, *memUsers) {
	users := newMemUsers()
	return auth.NewService(users, "test-secret", time.Hour), users
}

func appCode(t *testing.T, err error) string {
	t.Helper()
	var appErr *apperr.Error
	require.True(t, errors.As(err, &appErr), "expected *apperr.Error, got %T", err)
	return appErr.Code
}

func TestRegisterAndLogin(t *testing.T) {
	ctx := context.Background()
	svc, _ := newService()

	user, token, err := svc.Register(ctx, "hana", "pass", "kid@example.com")
	require.NoError(t, err)
	require.NotNil(t, user)
	assert.NotEmpty(t, token)

	// The stored hash is bcrypt, never the password itself.
	assert.NotEqual(t, "pass", user.PasswordHash)

	loggedIn, loginToken, err := svc.Login(ctx, "hana", "pass")
	require.NoError(t, err)
	assert.Equal(t, user.ID, loggedIn.ID)
	assert.NotEmpty(t, loginToken)
}

func TestRegister_Validation(t *testing.T) {
	ctx := context.Background()
	svc, _ := newService()

	_, _, err := svc.Register(ctx, "ab", "pass", "")
	require.Error(t, err)
	assert.Equal(t, "VALIDATION_ERROR", appCode(t, err))

	_, _, err = svc.Register(ctx, "hana", "abc", "")
	require.Error(t, err)
	assert.Equal(t, "VALIDATION_ERROR", appCode(t, err))
}

func TestRegister_DuplicateUsername(t *testing.T) {
	ctx := context.Background()
	svc, _ := newService()

	_, _, err := svc.Register(ctx, "hana", "pass", "")
	require.NoError(t, err)

	_, _, err = svc.Register(ctx, "hana", "other", "")
	require.Error(t, err)
	assert.Equal(t, "CONFLICT", appCode(t, err))
}

func TestRegister_DuplicateEmail(t *testing.T) {
	ctx := context.Background()
	svc, _ := newService()

	_, _, err := svc.Register(ctx, "hana", "pass", "kid@example.com")
	require.NoError(t, err)

	_, _, err = svc.Register(ctx, "minsu", "pass", "kid@example.com")
	require.Error(t, err)
	assert.Equal(t, "CONFLICT", appCode(t, err))
}

func TestLogin_WrongPassword(t *testing.T) {
	ctx := context.Background()
	svc, _ := newService()

	_, _, err := svc.Register(ctx, "hana", "pass", "")
	require.NoError(t, err)

	_, _, err = svc.Login(ctx, "hana", "wrong")
	require.Error(t, err)
	assert.Equal(t, "UNAUTHORIZED", appCode(t, err))
}

func TestLogin_UnknownUser(t *testing.T) {
	svc, _ := newService()

	_, _, err := svc.Login(context.Background(), "nobody", "pass")
	require.Error(t, err)
	assert.Equal(t, "UNAUTHORIZED", appCode(t, err), "unknown users and wrong passwords are indistinguishable")
}

func TestVerifyToken_RoundTrip(t *testing.T) {
	ctx := context.Background()
	svc, _ := newService()

	user, token, err := svc.Register(ctx, "hana", "pass", "")
	require.NoError(t, err)

	userID, err := svc.VerifyToken(token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, userID)
}

func TestVerifyToken_Garbage(t *testing.T) {
	svc, _ := newService()

	_, err := svc.VerifyToken("not.a.token")
	require.Error(t, err)
	assert.Equal(t, "UNAUTHORIZED", appCode(t, err))
}

func TestVerifyToken_WrongSecret(t *testing.T) {
	ctx := context.Background()
	svc, users := newService()

	_, token, err := svc.Register(ctx, "hana", "pass", "")
	require.NoError(t, err)

	other := auth.NewService(users, "different-secret", time.Hour)
	_, err = other.VerifyToken(token)
	assert.Error(t, err)
}

func TestVerifyToken_Expired(t *testing.T) {
	ctx := context.Background()
	users := newMemUsers()
	svc := auth.NewService(users, "test-secret", -time.Minute)

	_, token, err := svc.Register(ctx, "hana", "pass", "")
	require.NoError(t, err)

	_, err = svc.VerifyToken(token)
	assert.Error(t, err, "tokens past their expiry are rejected")
}
