package repository

import (
	"errors"
	"fmt"
	"net"
	"time"

	"hr-chatbot/internal/models"
	"hr-chatbot/pkg/config"

	"github.com/go-ldap/ldap/v3"
	"go.uber.org/zap"
)

var ErrUserNotFound = errors.New("user not found")

// LDAPDirectory authenticates employees and resolves their HR profile
// against the company directory.
type LDAPDirectory struct {
	cfg    *config.LDAPConfig
	logger *zap.Logger
}

func NewLDAPDirectory(cfg *config.LDAPConfig, logger *zap.Logger) *LDAPDirectory {
	return &LDAPDirectory{cfg: cfg, logger: logger}
}

// Authenticate binds as the user to verify the password.
func (d *LDAPDirectory) Authenticate(username, password string) bool {
	conn, err := d.dial()
	if err != nil {
		d.logger.Error("LDAP connection failed", zap.Error(err))
		return false
	}
	defer conn.Close()

	userDN := fmt.Sprintf("uid=%s,ou=People,%s", ldap.EscapeDN(username), d.cfg.BaseDN)
	if err := conn.Bind(userDN, password); err != nil {
		d.logger.Warn("LDAP authentication failed", zap.String("username", username), zap.Error(err))
		return false
	}

	d.logger.Info("User authenticated", zap.String("username", username))
	return true
}

// Profile searches the directory with admin credentials and maps the
// entry's attributes to a UserProfile.
func (d *LDAPDirectory) Profile(username string) (*models.UserProfile, error) {
	conn, err := d.dial()
	if err != nil {
		return nil, fmt.Errorf("LDAP connection failed: %w", err)
	}
	defer conn.Close()

	if err := conn.Bind(d.cfg.AdminDN, d.cfg.AdminPassword); err != nil {
		return nil, fmt.Errorf("LDAP admin bind failed: %w", err)
	}

	request := ldap.NewSearchRequest(
		"ou=People,"+d.cfg.BaseDN,
		ldap.ScopeWholeSubtree, ldap.NeverDerefAliases, 1, 0, false,
		fmt.Sprintf("(uid=%s)", ldap.EscapeFilter(username)),
		[]string{"cn", "mail", "employeeType", "title", "departmentNumber"},
		nil,
	)

	result, err := conn.Search(request)
	if err != nil {
		return nil, fmt.Errorf("LDAP search failed: %w", err)
	}
	if len(result.Entries) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrUserNotFound, username)
	}

	entry := result.Entries[0]
	return &models.UserProfile{
		Username:     username,
		FullName:     attrOr(entry, "cn", username),
		Email:        attrOr(entry, "mail", username+"@serini.local"),
		EmployeeType: attrOr(entry, "employeeType", "Unknown"),
		Title:        attrOr(entry, "title", "Non-Cadre"),
		Department:   attrOr(entry, "departmentNumber", "General"),
	}, nil
}

func (d *LDAPDirectory) dial() (*ldap.Conn, error) {
	return ldap.DialURL(
		d.cfg.ServerURI(),
		ldap.DialWithDialer(&net.Dialer{Timeout: 5 * time.Second}),
	)
}

func attrOr(entry *ldap.Entry, name, fallback string) string {
	if value := entry.GetAttributeValue(name); value != "" {
		return value
	}
	return fallback
}
