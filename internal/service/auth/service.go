package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"golang.org/x/crypto/bcrypt"

	"github.com/punchdesk/attendance-backend-go/internal/domain/audit"
	"github.com/punchdesk/attendance-backend-go/internal/domain/auth"
	"github.com/punchdesk/attendance-backend-go/internal/domain/user"
	"github.com/punchdesk/attendance-backend-go/internal/pkg/jwt"
)

type authServiceImpl struct {
	userRepo user.UserRepository
	jwtSvc   jwt.Service
	audit    audit.Log
	logger   *slog.Logger
}

func NewAuthService(userRepo user.UserRepository, jwtSvc jwt.Service, auditLog audit.Log, logger *slog.Logger) auth.Service {
	return &authServiceImpl{
		userRepo: userRepo,
		jwtSvc:   jwtSvc,
		audit:    auditLog,
		logger:   logger,
	}
}

func (s *authServiceImpl) Login(ctx context.Context, req auth.LoginRequest) (auth.LoginResponse, error) {
	if err := req.Validate(); err != nil {
		return auth.LoginResponse{}, err
	}

	u, err := s.userRepo.GetByLoginID(ctx, req.LoginID)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			// Indistinguishable from a wrong PIN on purpose.
			return auth.LoginResponse{}, auth.ErrInvalidCredentials
		}
		return auth.LoginResponse{}, fmt.Errorf("failed to look up user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.PINHash), []byte(req.PIN)); err != nil {
		return auth.LoginResponse{}, auth.ErrInvalidCredentials
	}

	accessToken, accessExp, err := s.jwtSvc.GenerateAccessToken(u.ID, u.Role)
	if err != nil {
		return auth.LoginResponse{}, fmt.Errorf("failed to generate access token: %w", err)
	}
	refreshToken, refreshExp, err := s.jwtSvc.GenerateRefreshToken(u.ID)
	if err != nil {
		return auth.LoginResponse{}, fmt.Errorf("failed to generate refresh token: %w", err)
	}

	if err := s.audit.Record(ctx, u.ID, audit.ActionLogin, "logged in", nil); err != nil {
		s.logger.WarnContext(ctx, "failed to write audit entry",
			slog.String("action", audit.ActionLogin), slog.Any("error", err))
	}

	return auth.LoginResponse{
		AccessToken:           accessToken,
		RefreshToken:          refreshToken,
		AccessTokenExpiresAt:  accessExp,
		RefreshTokenExpiresAt: refreshExp,
		UserID:                u.ID,
		Name:                  u.Name,
		Role:                  u.Role,
	}, nil
}

func (s *authServiceImpl) Logout(ctx context.Context, userID string, accessToken string) error {
	s.jwtSvc.RevokeToken(accessToken)

	if err := s.audit.Record(ctx, userID, audit.ActionLogout, "logged out", nil); err != nil {
		s.logger.WarnContext(ctx, "failed to write audit entry",
			slog.String("action", audit.ActionLogout), slog.Any("error", err))
	}
	return nil
}
