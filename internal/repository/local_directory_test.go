package repository

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"hr-chatbot/pkg/auth"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func writeUsersFile(t *testing.T) string {
	t.Helper()
	hash, err := auth.HashPassword("password")
	require.NoError(t, err)

	users := []localUser{
		{
			Username:     "bob",
			PasswordHash: hash,
			FullName:     "Bob Martin",
			Email:        "bob@serini.local",
			EmployeeType: "CDI",
			Title:        "Non-Cadre",
			Department:   "IT",
		},
	}
	data, err := json.Marshal(users)
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "users.json")
	require.NoError(t, os.WriteFile(path, data, 0o600))
	return path
}

func TestLocalDirectoryAuthenticate(t *testing.T) {
	dir, err := LoadLocalDirectory(writeUsersFile(t), zap.NewNop())
	require.NoError(t, err)

	assert.True(t, dir.Authenticate("bob", "password"))
	assert.False(t, dir.Authenticate("bob", "wrong"))
	assert.False(t, dir.Authenticate("mallory", "password"))
}

func TestLocalDirectoryProfile(t *testing.T) {
	dir, err := LoadLocalDirectory(writeUsersFile(t), zap.NewNop())
	require.NoError(t, err)

	profile, err := dir.Profile("bob")
	require.NoError(t, err)
	assert.Equal(t, "bob", profile.Username)
	assert.Equal(t, "CDI", profile.EmployeeType)
	assert.Equal(t, "Non-Cadre", profile.Title)

	_, err = dir.Profile("mallory")
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestLoadLocalDirectoryMissingFile(t *testing.T) {
	_, err := LoadLocalDirectory(filepath.Join(t.TempDir(), "absent.json"), zap.NewNop())
	assert.Error(t, err)
}
