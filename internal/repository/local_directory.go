package repository

import (
	"encoding/json"
	"fmt"
	"os"

	"hr-chatbot/internal/models"
	"hr-chatbot/pkg/auth"

	"go.uber.org/zap"
)

type localUser struct {
	Username     string `json:"username"`
	PasswordHash string `json:"password_hash"`
	FullName     string `json:"full_name"`
	Email        string `json:"email"`
	EmployeeType string `json:"employee_type"`
	Title        string `json:"title"`
	Department   string `json:"department"`
}

// LocalDirectory is a file-backed stand-in for the LDAP directory, used
// in development and tests. Passwords are stored as bcrypt hashes.
type LocalDirectory struct {
	users  map[string]localUser
	logger *zap.Logger
}

func LoadLocalDirectory(path string, logger *zap.Logger) (*LocalDirectory, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read local users file: %w", err)
	}

	var users []localUser
	if err := json.Unmarshal(data, &users); err != nil {
		return nil, fmt.Errorf("failed to parse local users file: %w", err)
	}

	byName := make(map[string]localUser, len(users))
	for _, u := range users {
		byName[u.Username] = u
	}

	logger.Info("Local user directory loaded", zap.String("path", path), zap.Int("users", len(byName)))
	return &LocalDirectory{users: byName, logger: logger}, nil
}

func (d *LocalDirectory) Authenticate(username, password string) bool {
	user, ok := d.users[username]
	if !ok {
		d.logger.Warn("Unknown local user", zap.String("username", username))
		return false
	}
	if !auth.CheckPasswordHash(password, user.PasswordHash) {
		d.logger.Warn("Local authentication failed", zap.String("username", username))
		return false
	}
	return true
}

func (d *LocalDirectory) Profile(username string) (*models.UserProfile, error) {
	user, ok := d.users[username]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUserNotFound, username)
	}
	return &models.UserProfile{
		Username:     user.Username,
		FullName:     user.FullName,
		Email:        user.Email,
		EmployeeType: user.EmployeeType,
		Title:        user.Title,
		Department:   user.Department,
	}, nil
}
