package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go-gin-gorm-todo/internal/domain"
)

func TestAuthService_Register(t *testing.T) {
	ctx := context.Background()

	t.Run("creates user with digest", func(t *testing.T) {
		users := newFakeUsers()
		svc := NewAuthService(users, plainHasher{}, nil)

		u, err := svc.Register(ctx, RegisterInput{Email: " a@x.com ", Password: "pw", Name: "A"})
		require.NoError(t, err)
		assert.NotEmpty(t, u.ID)
		assert.Equal(t, "a@x.com", u.Email)
		assert.Equal(t, "h:pw", u.PasswordDigest)
		assert.Equal(t, 1, users.count())
	})

	t.Run("duplicate email never creates a second user", func(t *testing.T) {
		users := newFakeUsers()
		svc := NewAuthService(users, plainHasher{}, nil)
		_, err := svc.Register(ctx, RegisterInput{Email: "a@x.com", Password: "pw", Name: "A"})
		require.NoError(t, err)

		for i := 0; i < 3; i++ {
			_, err = svc.Register(ctx, RegisterInput{Email: "a@x.com", Password: "other", Name: "B"})
			require.ErrorIs(t, err, domain.ErrDuplicateEmail)
		}
		assert.Equal(t, 1, users.count())
		assert.Equal(t, 1, users.calls, "Create must not be called for a known email")
	})

	t.Run("missing fields", func(t *testing.T) {
		svc := NewAuthService(newFakeUsers(), plainHasher{}, nil)
		for _, tt := range []struct {
			in   RegisterInput
			want domain.MissingFields
		}{
			{RegisterInput{Password: "pw", Name: "A"}, domain.MissingFields{"email"}},
			{RegisterInput{Email: "a@x.com", Name: "A"}, domain.MissingFields{"password"}},
			{RegisterInput{Email: "a@x.com", Password: "pw"}, domain.MissingFields{"name"}},
			{RegisterInput{Email: "a@x.com", Password: "pw", Name: "  "}, domain.MissingFields{"name"}},
			{RegisterInput{Email: "a@x.com", Password: "   ", Name: "A"}, domain.MissingFields{"password"}},
			{RegisterInput{Name: " "}, domain.MissingFields{"name", "email", "password"}},
		} {
			_, err := svc.Register(ctx, tt.in)
			assert.ErrorIs(t, err, domain.ErrValidation)
			var got domain.MissingFields
			require.ErrorAs(t, err, &got)
			assert.Equal(t, tt.want, got)
		}
	})

	t.Run("store error is wrapped", func(t *testing.T) {
		users := newFakeUsers()
		users.err = errStore
		svc := NewAuthService(users, plainHasher{}, nil)

		_, err := svc.Register(ctx, RegisterInput{Email: "a@x.com", Password: "pw", Name: "A"})
		require.ErrorIs(t, err, errStore)
		assert.NotErrorIs(t, err, domain.ErrDuplicateEmail)
	})

	t.Run("hash error", func(t *testing.T) {
		users := newFakeUsers()
		svc := NewAuthService(users, plainHasher{err: errStore}, nil)

		_, err := svc.Register(ctx, RegisterInput{Email: "a@x.com", Password: "pw", Name: "A"})
		require.ErrorIs(t, err, errStore)
		assert.Equal(t, 0, users.count())
	})
}

func TestAuthService_Login(t *testing.T) {
	ctx := context.Background()
	users := newFakeUsers()
	svc := NewAuthService(users, plainHasher{}, nil)
	registered, err := svc.Register(ctx, RegisterInput{Email: "a@x.com", Password: "pw", Name: "A"})
	require.NoError(t, err)

	tests := []struct {
		name     string
		email    string
		password string
		wantErr  error
	}{
		{name: "success", email: "a@x.com", password: "pw"},
		{name: "unknown email", email: "b@x.com", password: "pw", wantErr: domain.ErrUserNotFound},
		{name: "bad password", email: "a@x.com", password: "nope", wantErr: domain.ErrWrongPassword},
		{name: "empty password", email: "a@x.com", password: "", wantErr: domain.ErrValidation},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			u, err := svc.Login(ctx, tt.email, tt.password)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, u)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, registered.ID, u.ID)
		})
	}

	t.Run("failures are distinguishable but share a kind", func(t *testing.T) {
		_, unknown := svc.Login(ctx, "b@x.com", "pw")
		_, wrong := svc.Login(ctx, "a@x.com", "nope")
		assert.ErrorIs(t, unknown, domain.ErrAuthentication)
		assert.ErrorIs(t, wrong, domain.ErrAuthentication)
		assert.NotErrorIs(t, unknown, domain.ErrWrongPassword)
		assert.NotErrorIs(t, wrong, domain.ErrUserNotFound)
	})
}

func TestAuthService_Identify(t *testing.T) {
	ctx := context.Background()
	users := newFakeUsers()
	svc := NewAuthService(users, plainHasher{}, nil)
	u, err := svc.Register(ctx, RegisterInput{Email: "a@x.com", Password: "pw", Name: "A"})
	require.NoError(t, err)

	got, err := svc.Identify(ctx, u.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "A", got.Name)

	got, err = svc.Identify(ctx, "")
	require.NoError(t, err)
	assert.Nil(t, got)

	got, err = svc.Identify(ctx, "ghost")
	require.NoError(t, err)
	assert.Nil(t, got)
}
