package auth

import (
	"context"
	"errors"
	"time"

	apperrors "wasit/internal/errors"
	"wasit/internal/models"
	"wasit/internal/repositories"
	"wasit/internal/utils"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

type Service interface {
	Login(ctx context.Context, email, password string) (*models.User, string, string, error)
	RefreshTokens(ctx context.Context, refreshToken string) (string, string, error)
	Logout(ctx context.Context, userID uint) error
	// Authenticate validates an access token against the current token version.
	Authenticate(ctx context.Context, accessToken string) (*models.UserClaims, error)
}

type service struct {
	userRepo repositories.UserRepository
	tokens   *utils.TokenIssuer
	logger   *zap.Logger
}

func NewService(userRepo repositories.UserRepository, tokens *utils.TokenIssuer, logger *zap.Logger) Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &service{
		userRepo: userRepo,
		tokens:   tokens,
		logger:   logger.With(zap.String("component", "auth_service")),
	}
}

func (s *service) Login(ctx context.Context, email, password string) (*models.User, string, string, error) {
	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		if !errors.Is(err, repositories.ErrNotFound) {
			return nil, "", "", err
		}
		s.logger.Info("login failed: unknown email")
		return nil, "", "", apperrors.ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		s.logger.Info("login failed: wrong password", zap.Uint("user_id", user.ID))
		return nil, "", "", apperrors.ErrInvalidCredentials
	}
	if user.Status != "" && user.Status != "active" {
		return nil, "", "", apperrors.ErrInvalidCredentials
	}

	accessToken, refreshToken, err := s.issue(user)
	if err != nil {
		return nil, "", "", err
	}

	if err := s.userRepo.TouchLogin(ctx, user.ID, time.Now()); err != nil {
		s.logger.Warn("failed to record login", zap.Uint("user_id", user.ID), zap.Error(err))
	}
	return user, accessToken, refreshToken, nil
}

func (s *service) RefreshTokens(ctx context.Context, refreshToken string) (string, string, error) {
	claims, err := s.tokens.ParseRefreshToken(refreshToken)
	if err != nil {
		return "", "", apperrors.ErrInvalidToken
	}

	user, err := s.current(ctx, claims)
	if err != nil {
		return "", "", err
	}
	return s.issue(user)
}

func (s *service) Logout(ctx context.Context, userID uint) error {
	err := s.userRepo.IncrementTokenVersion(ctx, userID)
	if errors.Is(err, repositories.ErrNotFound) {
		return apperrors.ErrUserNotFound
	}
	return err
}

func (s *service) Authenticate(ctx context.Context, accessToken string) (*models.UserClaims, error) {
	claims, err := s.tokens.ParseAccessToken(accessToken)
	if err != nil {
		return nil, apperrors.ErrInvalidToken
	}
	if _, err := s.current(ctx, claims); err != nil {
		return nil, err
	}
	return claims, nil
}

// current loads the user behind claims and rejects tokens issued before the
// last logout.
func (s *service) current(ctx context.Context, claims *models.UserClaims) (*models.User, error) {
	user, err := s.userRepo.GetByID(ctx, claims.UserID)
	if errors.Is(err, repositories.ErrNotFound) {
		return nil, apperrors.ErrInvalidToken
	}
	if err != nil {
		return nil, err
	}
	if user.TokenVersion != claims.TokenVersion {
		return nil, apperrors.ErrInvalidToken.WithMessage("token has been revoked")
	}
	return user, nil
}

func (s *service) issue(user *models.User) (string, string, error) {
	return s.tokens.GenerateTokens(&models.UserClaims{
		UserID:       user.ID,
		Email:        user.Email,
		Role:         user.Role,
		TokenVersion: user.TokenVersion,
		Permissions:  models.GetDefaultPermissions(user.Role),
	})
}
