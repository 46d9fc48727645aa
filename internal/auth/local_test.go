package auth

import (
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/quillpress/quillpress/internal/db/models"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	err = db.AutoMigrate(&models.User{})
	require.NoError(t, err)

	return db
}

func seedUser(t *testing.T, db *gorm.DB, active bool) *models.User {
	t.Helper()

	user := &models.User{
		Active:   active,
		Username: "admin",
		Email:    "admin@example.com",
		Password: models.HashPassword("hunter2"),
		Role:     models.RoleAdmin,
	}
	require.NoError(t, db.Create(user).Error)

	return user
}

func TestAuthenticate(t *testing.T) {
	db := setupTestDB(t)
	seedUser(t, db, true)
	provider := NewLocalProvider(db)

	tests := []struct {
		name     string
		username string
		password string
		wantErr  error
	}{
		{name: "valid credentials", username: "admin", password: "hunter2"},
		{name: "wrong password", username: "admin", password: "wrong", wantErr: ErrInvalidPassword},
		{name: "unknown user", username: "nobody", password: "hunter2", wantErr: ErrUserNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			user, err := provider.Authenticate(tt.username, tt.password)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, "admin", user.Username)
		})
	}
}

func TestAuthenticateDisabledAccount(t *testing.T) {
	db := setupTestDB(t)
	seedUser(t, db, false)
	provider := NewLocalProvider(db)

	_, err := provider.Authenticate("admin", "hunter2")
	assert.ErrorIs(t, err, ErrUserAccountDisabled)
}

func TestCreateUser(t *testing.T) {
	db := setupTestDB(t)
	provider := NewLocalProvider(db)

	user, err := provider.CreateUser("writer", "writer@example.com", "secret", models.RoleAuthor)
	require.NoError(t, err)
	assert.True(t, user.Active)
	assert.Equal(t, models.RoleAuthor, user.Role)
	// the stored password is a hash, not the plaintext
	assert.NotEqual(t, "secret", user.Password)
	assert.True(t, user.VerifyPassword("secret"))

	_, err = provider.CreateUser("writer", "other@example.com", "secret", models.RoleAuthor)
	assert.ErrorIs(t, err, ErrUserNameOrEmailExists)
}

func TestChangePassword(t *testing.T) {
	db := setupTestDB(t)
	user := seedUser(t, db, true)
	provider := NewLocalProvider(db)

	err := provider.ChangePassword(user.ID, "wrong", "newpass")
	assert.ErrorIs(t, err, ErrInvalidOldPassword)

	err = provider.ChangePassword(user.ID, "hunter2", "newpass")
	require.NoError(t, err)

	_, err = provider.Authenticate("admin", "newpass")
	assert.NoError(t, err)
}

func TestActivateDeactivateUser(t *testing.T) {
	db := setupTestDB(t)
	user := seedUser(t, db, true)
	provider := NewLocalProvider(db)

	require.NoError(t, provider.DeactivateUser(user.ID))
	_, err := provider.Authenticate("admin", "hunter2")
	assert.ErrorIs(t, err, ErrUserAccountDisabled)

	require.NoError(t, provider.ActivateUser(user.ID))
	_, err = provider.Authenticate("admin", "hunter2")
	assert.NoError(t, err)
}

func TestGetUser(t *testing.T) {
	db := setupTestDB(t)
	user := seedUser(t, db, true)
	provider := NewLocalProvider(db)

	byID, err := provider.GetUserByID(user.ID)
	require.NoError(t, err)
	assert.Equal(t, user.Username, byID.Username)

	byName, err := provider.GetUserByUsername("admin")
	require.NoError(t, err)
	assert.Equal(t, user.ID, byName.ID)

	_, err = provider.GetUserByID(999)
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestCountUsers(t *testing.T) {
	db := setupTestDB(t)
	seedUser(t, db, true)
	provider := NewLocalProvider(db)

	count, err := provider.CountUsers()
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}
