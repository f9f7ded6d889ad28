package service

import (
	"errors"

	"hr-chatbot/internal/dto"
	"hr-chatbot/internal/models"
	"hr-chatbot/pkg/auth"

	"go.uber.org/zap"
)

var ErrInvalidCredentials = errors.New("invalid credentials")

// Directory authenticates employees and resolves their HR profile. It is
// implemented by the LDAP directory in production and by the file-backed
// local directory in development.
type Directory interface {
	Authenticate(username, password string) bool
	Profile(username string) (*models.UserProfile, error)
}

type AuthService struct {
	directory  Directory
	jwtManager *auth.JWTManager
	logger     *zap.Logger
}

func NewAuthService(directory Directory, jwtManager *auth.JWTManager, logger *zap.Logger) *AuthService {
	return &AuthService{
		directory:  directory,
		jwtManager: jwtManager,
		logger:     logger,
	}
}

func (s *AuthService) Login(req *dto.LoginRequest) (*dto.TokenResponse, error) {
	if !s.directory.Authenticate(req.Username, req.Password) {
		return nil, ErrInvalidCredentials
	}

	s.logger.Info("User logged in", zap.String("username", req.Username))
	return s.issueTokens(req.Username)
}

func (s *AuthService) Refresh(refreshToken string) (*dto.TokenResponse, error) {
	claims, err := s.jwtManager.ValidateRefreshToken(refreshToken)
	if err != nil {
		return nil, ErrInvalidCredentials
	}

	s.logger.Info("Tokens refreshed", zap.String("username", claims.Username))
	return s.issueTokens(claims.Username)
}

// Profile resolves the caller's directory record; the chat pipeline uses
// its EmployeeType as the requester profile.
func (s *AuthService) Profile(username string) (*models.UserProfile, error) {
	return s.directory.Profile(username)
}

func (s *AuthService) issueTokens(username string) (*dto.TokenResponse, error) {
	accessToken, err := s.jwtManager.GenerateToken(username)
	if err != nil {
		return nil, err
	}

	refreshToken, err := s.jwtManager.GenerateRefreshToken(username)
	if err != nil {
		return nil, err
	}

	return &dto.TokenResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		TokenType:    "Bearer",
		ExpiresIn:    int64(s.jwtManager.GetTokenDuration().Seconds()),
	}, nil
}
