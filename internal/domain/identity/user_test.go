package identity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewUser(t *testing.T) {
	t.Run("creates user with valid inputs", func(t *testing.T) {
		user, err := NewUser("jdoe", "jdoe@example.com", "secret12", RoleUser)
		require.NoError(t, err)
		require.NotNil(t, user)

		assert.Equal(t, "jdoe", user.Username)
		assert.Equal(t, "jdoe@example.com", user.Email)
		assert.Equal(t, RoleUser, user.Role)
		assert.True(t, user.IsActive)
		assert.NotEqual(t, "secret12", user.PasswordHash)
	})

	t.Run("lowercases username and email", func(t *testing.T) {
		user, err := NewUser("JDoe", "JDoe@Example.com", "secret12", RoleUser)
		require.NoError(t, err)
		assert.Equal(t, "jdoe", user.Username)
		assert.Equal(t, "jdoe@example.com", user.Email)
	})

	t.Run("rejects short username", func(t *testing.T) {
		_, err := NewUser("jd", "jdoe@example.com", "secret12", RoleUser)
		require.Error(t, err)
	})

	t.Run("rejects invalid email", func(t *testing.T) {
		_, err := NewUser("jdoe", "not-an-email", "secret12", RoleUser)
		require.Error(t, err)
	})

	t.Run("rejects weak password", func(t *testing.T) {
		_, err := NewUser("jdoe", "jdoe@example.com", "short1", RoleUser)
		require.Error(t, err)

		_, err = NewUser("jdoe", "jdoe@example.com", "onlyletters", RoleUser)
		require.Error(t, err)
	})

	t.Run("rejects unknown role", func(t *testing.T) {
		_, err := NewUser("jdoe", "jdoe@example.com", "secret12", Role("root"))
		require.Error(t, err)
	})
}

func TestUser_PasswordLifecycle(t *testing.T) {
	user, err := NewUser("jdoe", "jdoe@example.com", "secret12", RoleUser)
	require.NoError(t, err)

	t.Run("verifies correct password", func(t *testing.T) {
		assert.True(t, user.VerifyPassword("secret12"))
		assert.False(t, user.VerifyPassword("wrong"))
	})

	t.Run("change requires current password", func(t *testing.T) {
		err := user.ChangePassword("wrong", "newpass99")
		require.Error(t, err)

		err = user.ChangePassword("secret12", "newpass99")
		require.NoError(t, err)
		assert.True(t, user.VerifyPassword("newpass99"))
	})
}

func TestUser_SetRole(t *testing.T) {
	user, err := NewUser("jdoe", "jdoe@example.com", "secret12", RoleUser)
	require.NoError(t, err)

	require.NoError(t, user.SetRole(RoleManager))
	assert.Equal(t, RoleManager, user.Role)

	require.Error(t, user.SetRole(Role("root")))
}
