package identity

import (
	"context"

	"github.com/supplychain/backend/internal/domain/identity"
	"github.com/supplychain/backend/internal/domain/shared"
	"github.com/supplychain/backend/internal/infrastructure/auth"
	"go.uber.org/zap"
)

// AuthService handles authentication operations
type AuthService struct {
	userRepo   identity.UserRepository
	jwtService *auth.JWTService
	logger     *zap.Logger
}

// NewAuthService creates a new authentication service
func NewAuthService(userRepo identity.UserRepository, jwtService *auth.JWTService, logger *zap.Logger) *AuthService {
	return &AuthService{
		userRepo:   userRepo,
		jwtService: jwtService,
		logger:     logger,
	}
}

// Login authenticates a user and returns tokens
func (s *AuthService) Login(ctx context.Context, req LoginRequest) (*LoginResponse, error) {
	s.logger.Info("Login attempt", zap.String("username", req.Username))

	user, err := s.userRepo.FindByUsername(ctx, req.Username)
	if err != nil {
		s.logger.Warn("User not found during login", zap.String("username", req.Username))
		return nil, shared.NewDomainError("INVALID_CREDENTIALS", "Invalid username or password")
	}

	if !user.IsActive {
		s.logger.Warn("Login attempt for deactivated account", zap.String("username", req.Username))
		return nil, shared.NewDomainError("ACCOUNT_DEACTIVATED", "Account has been deactivated")
	}

	if !user.VerifyPassword(req.Password) {
		s.logger.Warn("Invalid password attempt", zap.String("username", req.Username))
		return nil, shared.NewDomainError("INVALID_CREDENTIALS", "Invalid username or password")
	}

	tokenPair, err := s.jwtService.GenerateTokenPair(auth.GenerateTokenInput{
		UserID:   user.ID,
		Username: user.Username,
		Role:     string(user.Role),
	})
	if err != nil {
		s.logger.Error("Failed to generate token pair", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to generate authentication tokens")
	}

	user.RecordLogin()
	if err := s.userRepo.Save(ctx, user); err != nil {
		// Don't fail the login, just log the error
		s.logger.Error("Failed to update user after successful login", zap.Error(err))
	}

	s.logger.Info("User logged in successfully",
		zap.String("username", req.Username),
		zap.String("user_id", user.ID.String()))

	return &LoginResponse{
		AccessToken:           tokenPair.AccessToken,
		RefreshToken:          tokenPair.RefreshToken,
		AccessTokenExpiresAt:  tokenPair.AccessTokenExpiresAt,
		RefreshTokenExpiresAt: tokenPair.RefreshTokenExpiresAt,
		TokenType:             tokenPair.TokenType,
		User:                  ToUserResponse(user),
	}, nil
}

// RefreshToken issues a new token pair using a valid refresh token
func (s *AuthService) RefreshToken(ctx context.Context, req RefreshTokenRequest) (*LoginResponse, error) {
	claims, err := s.jwtService.ValidateRefreshToken(req.RefreshToken)
	if err != nil {
		s.logger.Warn("Refresh token validation failed", zap.Error(err))
		switch err {
		case auth.ErrExpiredToken:
			return nil, shared.NewDomainError("TOKEN_EXPIRED", "Refresh token has expired")
		case auth.ErrMaxRefreshExceeded:
			return nil, shared.NewDomainError("TOKEN_MAX_REFRESH", "Maximum token refresh count exceeded. Please log in again")
		default:
			return nil, shared.NewDomainError("TOKEN_INVALID", "Invalid refresh token")
		}
	}

	userID, err := claims.GetUserUUID()
	if err != nil {
		return nil, shared.NewDomainError("TOKEN_INVALID", "Invalid refresh token")
	}

	// Re-read the user so role changes and deactivations take effect on refresh
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, shared.NewDomainError("TOKEN_INVALID", "Invalid refresh token")
	}
	if !user.IsActive {
		return nil, shared.NewDomainError("ACCOUNT_DEACTIVATED", "Account has been deactivated")
	}

	tokenPair, err := s.jwtService.RefreshTokenPair(req.RefreshToken, user.Username, string(user.Role))
	if err != nil {
		if err == auth.ErrMaxRefreshExceeded {
			return nil, shared.NewDomainError("TOKEN_MAX_REFRESH", "Maximum token refresh count exceeded. Please log in again")
		}
		s.logger.Error("Failed to refresh token pair", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to refresh authentication tokens")
	}

	return &LoginResponse{
		AccessToken:           tokenPair.AccessToken,
		RefreshToken:          tokenPair.RefreshToken,
		AccessTokenExpiresAt:  tokenPair.AccessTokenExpiresAt,
		RefreshTokenExpiresAt: tokenPair.RefreshTokenExpiresAt,
		TokenType:             tokenPair.TokenType,
		User:                  ToUserResponse(user),
	}, nil
}
