package identity

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestUser(t *testing.T) *User {
	user, err := NewUser("testuser", "test@example.com", "Password123")
	require.NoError(t, err)
	user.ClearDomainEvents()
	return user
}

func TestNewUser(t *testing.T) {
	t.Run("creates active user", func(t *testing.T) {
		user, err := NewUser("testuser", "Test@Example.com", "Password123")

		require.NoError(t, err)
		assert.Equal(t, "testuser", user.Username)
		assert.Equal(t, "test@example.com", user.Email)
		assert.NotEmpty(t, user.PasswordHash)
		assert.Equal(t, UserStatusActive, user.Status)
		assert.Empty(t, user.RoleIDs)
		assert.NotNil(t, user.PasswordChangedAt)

		events := user.GetDomainEvents()
		require.Len(t, events, 1)
		_, ok := events[0].(*UserCreatedEvent)
		assert.True(t, ok)
	})

	t.Run("normalizes username", func(t *testing.T) {
		user, err := NewUser("  TestUser  ", "a@b.io", "Password123")

		require.NoError(t, err)
		assert.Equal(t, "testuser", user.Username)
	})

	tests := []struct {
		name        string
		username    string
		email       string
		password    string
		errContains string
	}{
		{"empty username", "", "a@b.io", "Password123", "cannot be empty"},
		{"short username", "ab", "a@b.io", "Password123", "at least 3 characters"},
		{"invalid username characters", "test@user", "a@b.io", "Password123", "only contain letters"},
		{"invalid email", "testuser", "not-an-email", "Password123", "Invalid email"},
		{"short password", "testuser", "a@b.io", "Pass1", "at least 8 characters"},
		{"password without digits", "testuser", "a@b.io", "Password", "at least one letter and one number"},
	}
	for _, tt := range tests {
		t.Run("fails with "+tt.name, func(t *testing.T) {
			_, err := NewUser(tt.username, tt.email, tt.password)

			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errContains)
		})
	}
}

func TestUser_UpdateProfile(t *testing.T) {
	user := newTestUser(t)

	t.Run("updates names and email", func(t *testing.T) {
		err := user.UpdateProfile(" Rahim ", "Uddin", "Rahim@Factory.com")

		require.NoError(t, err)
		assert.Equal(t, "Rahim", user.FirstName)
		assert.Equal(t, "rahim@factory.com", user.Email)
		assert.Equal(t, "Rahim Uddin", user.FullName())
	})

	t.Run("keeps email when empty", func(t *testing.T) {
		err := user.UpdateProfile("", "", "")

		require.NoError(t, err)
		assert.Equal(t, "rahim@factory.com", user.Email)
		assert.Equal(t, "testuser", user.FullName())
	})

	t.Run("rejects invalid email", func(t *testing.T) {
		err := user.UpdateProfile("A", "B", "bad")

		require.Error(t, err)
	})
}

func TestUser_PasswordOperations(t *testing.T) {
	t.Run("verifies password", func(t *testing.T) {
		user := newTestUser(t)

		assert.True(t, user.VerifyPassword("Password123"))
		assert.False(t, user.VerifyPassword("WrongPassword1"))
	})

	t.Run("changes password with correct old password", func(t *testing.T) {
		user := newTestUser(t)

		err := user.ChangePassword("Password123", "NewPassword456")

		require.NoError(t, err)
		assert.True(t, user.VerifyPassword("NewPassword456"))
		events := user.GetDomainEvents()
		require.Len(t, events, 1)
		assert.Equal(t, EventTypeUserPasswordChanged, events[0].EventType())
	})

	t.Run("rejects wrong old password", func(t *testing.T) {
		user := newTestUser(t)

		err := user.ChangePassword("Nope12345", "NewPassword456")

		require.Error(t, err)
		assert.Contains(t, err.Error(), "Current password is incorrect")
	})
}

func TestUser_Roles(t *testing.T) {
	user := newTestUser(t)
	roleID := uuid.New()

	require.NoError(t, user.AssignRole(roleID))
	assert.True(t, user.HasRole(roleID))

	err := user.AssignRole(roleID)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already has")

	assert.Error(t, user.AssignRole(uuid.Nil))

	events := user.GetDomainEvents()
	require.Len(t, events, 1)
	assert.Equal(t, EventTypeUserRolesChanged, events[0].EventType())
}

func TestUser_LoginLockout(t *testing.T) {
	t.Run("locks after max attempts", func(t *testing.T) {
		user := newTestUser(t)

		for i := 0; i < 4; i++ {
			assert.False(t, user.RecordLoginFailure(5, 15*time.Minute))
		}
		assert.True(t, user.RecordLoginFailure(5, 15*time.Minute))

		assert.True(t, user.IsLocked())
		assert.False(t, user.CanLogin())
		require.NotNil(t, user.LockedUntil)
	})

	t.Run("expired lock allows login", func(t *testing.T) {
		user := newTestUser(t)
		require.NoError(t, user.Lock(time.Minute))
		past := time.Now().Add(-time.Second)
		user.LockedUntil = &past

		assert.False(t, user.IsLocked())
		assert.True(t, user.CanLogin())

		user.RecordLoginSuccess("10.0.0.1")
		assert.Equal(t, UserStatusActive, user.Status)
		assert.Equal(t, 0, user.FailedAttempts)
		assert.Equal(t, "10.0.0.1", user.LastLoginIP)
	})

	t.Run("inactive user cannot login", func(t *testing.T) {
		user := newTestUser(t)
		require.NoError(t, user.Deactivate())

		assert.False(t, user.CanLogin())
		assert.Error(t, user.Deactivate())
		assert.Error(t, user.Lock(time.Minute))
	})

	t.Run("unlock resets counters", func(t *testing.T) {
		user := newTestUser(t)
		user.RecordLoginFailure(1, 0)
		require.True(t, user.IsLocked())

		require.NoError(t, user.Unlock())
		assert.True(t, user.CanLogin())
		assert.Equal(t, 0, user.FailedAttempts)
		assert.Error(t, user.Unlock())
	})
}

func TestUser_SetRoles(t *testing.T) {
	u := newTestUser(t)
	r1, r2 := uuid.New(), uuid.New()

	require.NoError(t, u.SetRoles([]uuid.UUID{r1, r2, r1}))
	assert.Equal(t, []uuid.UUID{r1, r2}, u.RoleIDs)
	assert.NotEmpty(t, u.GetDomainEvents())

	assert.Error(t, u.SetRoles([]uuid.UUID{uuid.Nil}))
}
