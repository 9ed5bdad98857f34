package auth

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPasswordIsHashedBeforeSaving(t *testing.T) {
	repo := NewInMemoryUserRepository()
	service := NewService(repo)

	password := "Password@123"

	_, err := service.Register(context.Background(), "Test User", "test@example.com", password)
	require.NoError(t, err)

	user, err := repo.FindByEmail(context.Background(), "test@example.com")
	require.NoError(t, err)

	assert.NotEqual(t, password, user.Password, "password was stored in plain text")
	assert.Equal(t, RoleRestaurant, user.Role)
}

func TestRegister_EmailIsCaseInsensitive(t *testing.T) {
	service := NewService(NewInMemoryUserRepository())

	_, err := service.Register(context.Background(), "A", "Owner@Example.com", "pw")
	require.NoError(t, err)

	_, err = service.Register(context.Background(), "B", "owner@example.com", "pw")
	assert.ErrorIs(t, err, ErrEmailTaken)
}

func TestLogin_UnknownEmail(t *testing.T) {
	service := NewService(NewInMemoryUserRepository())

	_, err := service.Login(context.Background(), "nobody@example.com", "pw")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}
