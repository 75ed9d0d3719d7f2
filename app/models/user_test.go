package models

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateUser(t *testing.T) {
	user, err := CreateUser("Jamie", "Doe", "jamie@example.com", "s3cret-password")
	require.NoError(t, err)

	assert.Equal(t, "Jamie Doe", user.FullName())
	assert.Equal(t, ROLE_USER, user.Role)
	assert.Equal(t, STATUS_ACTIVE, user.Status)
	assert.NotEqual(t, "s3cret-password", user.Password)
	assert.True(t, user.CheckPassword("s3cret-password"))
	assert.False(t, user.CheckPassword("wrong"))
}

func TestCreateUserRejectsBadInput(t *testing.T) {
	_, err := CreateUser("Jamie", "Doe", "not-an-email", "s3cret-password")
	assert.Error(t, err)

	_, err = CreateUser("Jamie", "Doe", "jamie@example.com", "short")
	assert.Error(t, err)
}

func TestGenerateAPIKey(t *testing.T) {
	user := &User{}

	key, err := user.GenerateAPIKey()
	require.NoError(t, err)
	require.NotEmpty(t, key)

	assert.True(t, strings.HasPrefix(key, "ka_"))
	assert.Equal(t, HashAPIKey(key), user.APIKeyHash)

	second, err := user.GenerateAPIKey()
	require.NoError(t, err)
	assert.NotEqual(t, key, second)

	user.RevokeAPIKey()
	assert.Equal(t, "", user.APIKeyHash)
}

func TestIsAdmin(t *testing.T) {
	assert.False(t, (&User{Role: ROLE_USER}).IsAdmin())
	assert.True(t, (&User{Role: ROLE_ADMIN}).IsAdmin())
}
