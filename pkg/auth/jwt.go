package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var ErrInvalidToken = errors.New("invalid token")

const (
	tokenTypeAccess  = "access"
	tokenTypeRefresh = "refresh"
)

// Claims carries the authenticated username. The directory profile is
// looked up per request rather than baked into the token, so a token
// survives HR attribute changes.
type Claims struct {
	Username  string `json:"username"`
	TokenType string `json:"token_type"`
	jwt.RegisteredClaims
}

// JWTManager issues and validates access and refresh tokens. The two
// token kinds are signed with distinct secrets and carry a type claim,
// so a refresh token can never pass as an access token.
type JWTManager struct {
	secretKey        string
	refreshSecretKey string
	tokenDuration    time.Duration
	refreshDuration  time.Duration
}

func NewJWTManager(secretKey, refreshSecretKey string, tokenDuration, refreshDuration time.Duration) *JWTManager {
	return &JWTManager{
		secretKey:        secretKey,
		refreshSecretKey: refreshSecretKey,
		tokenDuration:    tokenDuration,
		refreshDuration:  refreshDuration,
	}
}

func (m *JWTManager) GenerateToken(username string) (string, error) {
	return m.sign(username, tokenTypeAccess, m.secretKey, m.tokenDuration)
}

func (m *JWTManager) GenerateRefreshToken(username string) (string, error) {
	return m.sign(username, tokenTypeRefresh, m.refreshSecretKey, m.refreshDuration)
}

// ValidateToken verifies an access token and returns its claims.
func (m *JWTManager) ValidateToken(tokenString string) (*Claims, error) {
	return m.parse(tokenString, m.secretKey, tokenTypeAccess)
}

// ValidateRefreshToken verifies a refresh token and returns its claims.
func (m *JWTManager) ValidateRefreshToken(tokenString string) (*Claims, error) {
	return m.parse(tokenString, m.refreshSecretKey, tokenTypeRefresh)
}

func (m *JWTManager) GetTokenDuration() time.Duration {
	return m.tokenDuration
}

func (m *JWTManager) sign(username, tokenType, secret string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := &Claims{
		Username:  username,
		TokenType: tokenType,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   username,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

func (m *JWTManager) parse(tokenString, secret, wantType string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("%w: unexpected signing method %v", ErrInvalidToken, t.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}
	if claims.TokenType != wantType {
		return nil, fmt.Errorf("%w: token type %q", ErrInvalidToken, claims.TokenType)
	}
	return claims, nil
}
