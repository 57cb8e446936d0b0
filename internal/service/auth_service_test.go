package service

import (
	"context"
	"menteazul/internal/model"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuthService_RegisterAndLogin(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)

	resp, err := env.auth.Register(ctx, model.RegisterRequest{Email: "ana@example.com", Password: "secreto1"})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.Token)
	assert.Equal(t, "ana", resp.User.DisplayName)
	assert.Equal(t, model.RoleParent, resp.User.Role)
	assert.Equal(t, "light", resp.User.Profile.Preferences.Theme)
	assert.NotEqual(t, "secreto1", resp.User.PasswordHash)

	claims, err := env.auth.ValidateToken(ctx, resp.Token)
	require.NoError(t, err)
	assert.Equal(t, resp.User.ID, claims.UserID)

	login, err := env.auth.Login(ctx, "ANA@example.com", "secreto1")
	require.NoError(t, err)
	assert.Equal(t, resp.User.ID, login.User.ID)

	_, err = env.auth.Login(ctx, "ana@example.com", "wrong-password")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	_, err = env.auth.Login(ctx, "nobody@example.com", "secreto1")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestAuthService_RegisterValidation(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	_, err := env.auth.Register(ctx, model.RegisterRequest{Email: "taken@example.com", Password: "secreto1"})
	require.NoError(t, err)

	tests := []struct {
		name    string
		req     model.RegisterRequest
		wantErr error
	}{
		{"bad email", model.RegisterRequest{Email: "not-an-email", Password: "secreto1"}, ErrInvalidEmail},
		{"short password", model.RegisterRequest{Email: "a@example.com", Password: "123"}, ErrWeakPassword},
		{"admin role", model.RegisterRequest{Email: "b@example.com", Password: "secreto1", Role: model.RoleAdmin}, ErrInvalidRole},
		{"unknown role", model.RegisterRequest{Email: "c@example.com", Password: "secreto1", Role: "doctor"}, ErrInvalidRole},
		{"duplicate", model.RegisterRequest{Email: "Taken@example.com", Password: "secreto1"}, ErrEmailTaken},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := env.auth.Register(ctx, tt.req)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestAuthService_ValidateToken(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	resp, err := env.auth.Register(ctx, model.RegisterRequest{Email: "e@example.com", Password: "secreto1", Role: model.RoleEducator})
	require.NoError(t, err)

	_, err = env.auth.ValidateToken(ctx, "garbage")
	assert.ErrorIs(t, err, ErrInvalidToken)

	other := *env.auth
	other.jwtSecret = []byte("another-secret")
	_, err = other.ValidateToken(ctx, resp.Token)
	assert.ErrorIs(t, err, ErrInvalidToken)

	env.auth.now = func() time.Time { return time.Now().Add(2 * time.Hour) }
	_, err = env.auth.ValidateToken(ctx, resp.Token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestAuthService_Logout(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	first, err := env.auth.Register(ctx, model.RegisterRequest{Email: "luz@example.com", Password: "secreto1"})
	require.NoError(t, err)
	second, err := env.auth.Login(ctx, "luz@example.com", "secreto1")
	require.NoError(t, err)

	claims, err := env.auth.ValidateToken(ctx, first.Token)
	require.NoError(t, err)
	require.NoError(t, env.auth.Logout(ctx, claims))

	_, err = env.auth.ValidateToken(ctx, first.Token)
	assert.ErrorIs(t, err, ErrInvalidToken)

	_, err = env.auth.ValidateToken(ctx, second.Token)
	assert.NoError(t, err, "other sessions of the account stay valid")

	assert.ErrorIs(t, env.auth.Logout(ctx, &model.UserClaims{}), ErrInvalidToken)
}

func TestAuthService_EmailIsCaseAndSpaceInsensitive(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	_, err := env.auth.Register(ctx, model.RegisterRequest{Email: " Ana@Example.com ", Password: "secreto1"})
	require.NoError(t, err)

	_, err = env.auth.Register(ctx, model.RegisterRequest{Email: "ana@example.com", Password: "secreto1"})
	assert.ErrorIs(t, err, ErrEmailTaken)

	login, err := env.auth.Login(ctx, " ana@example.com", "secreto1")
	require.NoError(t, err)
	assert.Equal(t, "ana@example.com", login.User.Email)
}
