package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/synergysphere/synergysphere/internal/rules"
)

func strPtr(s string) *string { return &s }

func TestUsers_RegisterAndAuthenticate(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	user, err := f.svc.Users.Register(ctx, RegisterInput{Name: "Ada", Email: " Ada@Example.com", Password: "secret1"})
	require.NoError(t, err)
	assert.Equal(t, "ada@example.com", user.Email)
	assert.NotEqual(t, "secret1", user.PasswordHash)

	_, err = f.svc.Users.Register(ctx, RegisterInput{Name: "Ada Again", Email: "ada@example.com", Password: "secret1"})
	assert.ErrorIs(t, err, ErrEmailTaken)

	_, err = f.svc.Users.Register(ctx, RegisterInput{Name: "Bob", Email: "bob@example.com", Password: "secret"})
	assert.ErrorIs(t, err, rules.ErrValidation)
	assert.EqualError(t, err, "password must contain at least one number")

	_, err = f.svc.Users.Register(ctx, RegisterInput{Name: "Bob", Email: "not-an-email", Password: "secret1"})
	assert.ErrorIs(t, err, rules.ErrValidation)

	got, err := f.svc.Users.Authenticate(ctx, "ADA@example.com", "secret1")
	require.NoError(t, err)
	assert.Equal(t, user.ID, got.ID)

	_, err = f.svc.Users.Authenticate(ctx, "ada@example.com", "wrong1")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = f.svc.Users.Authenticate(ctx, "nobody@example.com", "secret1")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestUsers_UpdateProfile(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	ada, err := f.svc.Users.Register(ctx, RegisterInput{Name: "Ada", Email: "ada@example.com", Password: "secret1"})
	require.NoError(t, err)
	_, err = f.svc.Users.Register(ctx, RegisterInput{Name: "Bob", Email: "bob@example.com", Password: "secret1"})
	require.NoError(t, err)

	_, err = f.svc.Users.UpdateProfile(ctx, ada.ID, ProfileInput{})
	assert.ErrorIs(t, err, rules.ErrValidation)

	_, err = f.svc.Users.UpdateProfile(ctx, ada.ID, ProfileInput{Email: strPtr("bob@example.com")})
	assert.ErrorIs(t, err, ErrEmailTaken)

	_, err = f.svc.Users.UpdateProfile(ctx, ada.ID, ProfileInput{NewPassword: "another2"})
	assert.ErrorIs(t, err, rules.ErrValidation)

	_, err = f.svc.Users.UpdateProfile(ctx, ada.ID, ProfileInput{CurrentPassword: "wrong1", NewPassword: "another2"})
	assert.ErrorIs(t, err, rules.ErrValidation)

	updated, err := f.svc.Users.UpdateProfile(ctx, ada.ID, ProfileInput{
		Name:            strPtr("Ada Lovelace"),
		CurrentPassword: "secret1",
		NewPassword:     "another2",
	})
	require.NoError(t, err)
	assert.Equal(t, "Ada Lovelace", updated.Name)

	_, err = f.svc.Users.Authenticate(ctx, "ada@example.com", "another2")
	assert.NoError(t, err)

	_, err = f.svc.Users.Get(ctx, 9999)
	assert.ErrorIs(t, err, rules.ErrNotFound)
}
