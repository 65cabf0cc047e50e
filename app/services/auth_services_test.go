package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/shashiranjanraj/storefront/pkg/auth"
)

func newAuth() (*AuthService, *stubUsers) {
	users := newStubUsers()
	return NewAuthService(users, bcrypt.MinCost), users
}

func TestRegisterValidation(t *testing.T) {
	cases := []struct {
		name string
		in   RegisterInput
		want []string
	}{
		{
			name: "missing field",
			in:   RegisterInput{Name: "Ann", Email: "ann@example.com", Password: "pw", Password2: ""},
			want: []string{MsgMissingFields, MsgPasswordMismatch},
		},
		{
			name: "blank name only",
			in:   RegisterInput{Name: "   ", Email: "ann@example.com", Password: "pw", Password2: "pw"},
			want: []string{MsgMissingFields},
		},
		{
			name: "mismatch",
			in:   RegisterInput{Name: "Ann", Email: "ann@example.com", Password: "pw1", Password2: "pw2"},
			want: []string{MsgPasswordMismatch},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			svc, users := newAuth()

			_, err := svc.Register(context.Background(), tc.in)

			var verr *ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, tc.want, verr.Messages)
			assert.Empty(t, users.byEmail, "no user row is created")
		})
	}
}

func TestRegisterStoresHash(t *testing.T) {
	svc, users := newAuth()

	user, err := svc.Register(context.Background(), RegisterInput{
		Name: " Ann ", Email: "ann@example.com", Password: "s3cret", Password2: "s3cret",
	})
	require.NoError(t, err)

	assert.Equal(t, "Ann", user.Name)
	assert.False(t, user.IsAdmin)
	assert.NotEqual(t, "s3cret", user.Password)
	assert.True(t, auth.CheckPassword(users.byEmail["ann@example.com"].Password, "s3cret"))
}

func TestRegisterDuplicateEmail(t *testing.T) {
	svc, users := newAuth()
	in := RegisterInput{Name: "Ann", Email: "ann@example.com", Password: "pw", Password2: "pw"}

	_, err := svc.Register(context.Background(), in)
	require.NoError(t, err)

	_, err = svc.Register(context.Background(), in)
	assert.ErrorIs(t, err, ErrEmailTaken)
	assert.Len(t, users.byEmail, 1)
}

func TestRegisterStoreFailure(t *testing.T) {
	svc, users := newAuth()
	users.findErr = errStore

	_, err := svc.Register(context.Background(), RegisterInput{
		Name: "Ann", Email: "ann@example.com", Password: "pw", Password2: "pw",
	})
	assert.ErrorIs(t, err, errStore)

	var verr *ValidationError
	assert.NotErrorAs(t, err, &verr)
}

func TestAuthenticate(t *testing.T) {
	svc, _ := newAuth()
	ctx := context.Background()
	registered, err := svc.Register(ctx, RegisterInput{
		Name: "Ann", Email: "ann@example.com", Password: "right", Password2: "right",
	})
	require.NoError(t, err)

	user, err := svc.Authenticate(ctx, "ann@example.com", "right")
	require.NoError(t, err)
	assert.Equal(t, registered.ID, user.ID)

	for _, tc := range []struct{ email, password string }{
		{"ann@example.com", "wrong"},
		{"bob@example.com", "right"},
		{"", ""},
	} {
		_, err := svc.Authenticate(ctx, tc.email, tc.password)
		assert.ErrorIs(t, err, ErrInvalidCredentials, tc.email)
	}
}

func TestCurrentUser(t *testing.T) {
	svc, _ := newAuth()
	ctx := context.Background()
	registered, err := svc.Register(ctx, RegisterInput{
		Name: "Ann", Email: "ann@example.com", Password: "pw", Password2: "pw",
	})
	require.NoError(t, err)

	user, err := svc.CurrentUser(ctx, registered.ID)
	require.NoError(t, err)
	assert.Equal(t, "ann@example.com", user.Email)

	user, err = svc.CurrentUser(ctx, 0)
	require.NoError(t, err)
	assert.Nil(t, user)

	user, err = svc.CurrentUser(ctx, 999)
	require.NoError(t, err)
	assert.Nil(t, user, "stale session ids resolve to anonymous")
}

func TestEnsureAdmin(t *testing.T) {
	svc, users := newAuth()
	ctx := context.Background()

	created, err := svc.EnsureAdmin(ctx, "Admin", "admin@example.com", "pw")
	require.NoError(t, err)
	assert.True(t, created)
	assert.True(t, users.byEmail["admin@example.com"].IsAdmin)

	require.NoError(t, svc.SetAdmin(ctx, "admin@example.com", false))
	created, err = svc.EnsureAdmin(ctx, "Admin", "admin@example.com", "other")
	require.NoError(t, err)
	assert.False(t, created)
	assert.True(t, users.byEmail["admin@example.com"].IsAdmin)
	assert.True(t, auth.CheckPassword(users.byEmail["admin@example.com"].Password, "pw"))
}
