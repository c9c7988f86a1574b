package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Lanziify/seps-web-server/internal/config"
	"github.com/Lanziify/seps-web-server/internal/domain"
	"github.com/Lanziify/seps-web-server/internal/dto"
	"github.com/Lanziify/seps-web-server/internal/logger"
	"github.com/Lanziify/seps-web-server/internal/util"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
)

const blocklistKeyPrefix = "blocklist:jti:"

// TokenService issues and validates signed access and refresh tokens and
// maintains the revocation state for both.
type TokenService interface {
	// IssueAccessToken returns a signed 1-hour access token and its jti.
	IssueAccessToken(user *domain.User) (token string, jti string, err error)
	// IssueRefreshToken returns a signed 30-day refresh token and persists
	// it as a non-blocklisted row.
	IssueRefreshToken(ctx context.Context, user *domain.User) (string, error)
	// Verify parses and validates a token of either type. Expired,
	// tampered and revoked tokens fail with distinct auth errors.
	// Revocation is checked only for tokens carrying a jti.
	Verify(ctx context.Context, tokenString string) (*dto.AuthClaims, error)
	// RevokeCurrentSession blocklists the caller's active refresh token
	// row and the presented access token's jti, as one transaction.
	RevokeCurrentSession(ctx context.Context, userID string, accessJTI string) error
	// Refresh issues a new access token against the user's first
	// non-blocklisted refresh token, or fails when no valid session
	// remains.
	Refresh(ctx context.Context, userID string) (string, error)
}

type tokenServiceImpl struct {
	refreshRepo   domain.RefreshTokenRepository
	blocklistRepo domain.AccessTokenBlocklistRepository
	userRepo      domain.UserRepository
	cache         domain.Cache
	txManager     domain.TransactionManager
	cfg           *config.Config
}

// NewTokenService creates a new instance of TokenService. The cache is an
// optional fast path for blocklist lookups; pass nil to always hit storage.
func NewTokenService(
	refreshRepo domain.RefreshTokenRepository,
	blocklistRepo domain.AccessTokenBlocklistRepository,
	userRepo domain.UserRepository,
	cache domain.Cache,
	txManager domain.TransactionManager,
	cfg *config.Config,
) (TokenService, error) {
	if len(cfg.JWT.SecretKey) == 0 {
		return nil, errors.New("token service requires a signing secret")
	}
	return &tokenServiceImpl{
		refreshRepo:   refreshRepo,
		blocklistRepo: blocklistRepo,
		userRepo:      userRepo,
		cache:         cache,
		txManager:     txManager,
		cfg:           cfg,
	}, nil
}

func (s *tokenServiceImpl) signClaims(claims dto.AuthClaims) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.cfg.JWT.SecretKey))
}

func (s *tokenServiceImpl) IssueAccessToken(user *domain.User) (string, string, error) {
	now := time.Now()
	jti := util.NewULID()
	claims := dto.AuthClaims{
		Username:  user.Username,
		Email:     user.Email,
		Verified:  user.Verified,
		TokenType: dto.TokenTypeAccess,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID,
			ID:        jti,
			ExpiresAt: jwt.NewNumericDate(now.Add(s.cfg.JWT.AccessTokenTTL)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}
	signed, err := s.signClaims(claims)
	if err != nil {
		return "", "", fmt.Errorf("failed to sign access token: %w", err)
	}
	return signed, jti, nil
}

func (s *tokenServiceImpl) IssueRefreshToken(ctx context.Context, user *domain.User) (string, error) {
	now := time.Now()
	claims := dto.AuthClaims{
		TokenType: dto.TokenTypeRefresh,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID,
			ID:        util.NewULID(),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.cfg.JWT.RefreshTokenTTL)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}
	signed, err := s.signClaims(claims)
	if err != nil {
		return "", fmt.Errorf("failed to sign refresh token: %w", err)
	}

	row := &domain.RefreshToken{
		ID:          util.NewULID(),
		UserID:      user.ID,
		Token:       signed,
		Blocklisted: false,
		CreatedAt:   now,
	}
	if err := s.refreshRepo.CreateRefreshToken(ctx, row); err != nil {
		return "", fmt.Errorf("failed to persist refresh token: %w", err)
	}
	return signed, nil
}

func (s *tokenServiceImpl) Verify(ctx context.Context, tokenString string) (*dto.AuthClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &dto.AuthClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.cfg.JWT.SecretKey), nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, domain.NewAuthError(domain.CodeTokenExpired, "Token has expired")
		}
		return nil, domain.NewAuthError(domain.CodeTokenInvalid, "Invalid token")
	}

	claims, ok := token.Claims.(*dto.AuthClaims)
	if !ok || !token.Valid {
		return nil, domain.NewAuthError(domain.CodeTokenInvalid, "Invalid token")
	}

	// Revocation only applies to tokens carrying a jti.
	if claims.ID != "" {
		revoked, err := s.isRevoked(ctx, claims.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to check token revocation: %w", err)
		}
		if revoked {
			return nil, domain.NewAuthError(domain.CodeTokenRevoked, "Token has been revoked")
		}
	}
	return claims, nil
}

// isRevoked consults the cache first and falls back to storage. Cache
// failures are logged and degrade to the authoritative DB lookup.
func (s *tokenServiceImpl) isRevoked(ctx context.Context, jti string) (bool, error) {
	if s.cache != nil {
		if _, err := s.cache.Get(ctx, blocklistKeyPrefix+jti); err == nil {
			return true, nil
		} else if !errors.Is(err, domain.ErrCacheMiss) {
			logger.Get().Warn("blocklist cache lookup failed", zap.Error(err))
		}
	}

	revoked, err := s.blocklistRepo.Exists(ctx, jti)
	if err != nil {
		return false, err
	}
	if revoked && s.cache != nil {
		if err := s.cache.Set(ctx, blocklistKeyPrefix+jti, "1", s.cfg.JWT.AccessTokenTTL); err != nil {
			logger.Get().Warn("blocklist cache set failed", zap.Error(err))
		}
	}
	return revoked, nil
}

func (s *tokenServiceImpl) RevokeCurrentSession(ctx context.Context, userID string, accessJTI string) error {
	err := s.txManager.WithTransaction(ctx, func(txCtx context.Context) error {
		active, err := s.refreshRepo.GetActiveByUserID(txCtx, userID)
		if err != nil {
			return err
		}
		// Session-scoped logout: only the most recent active session is
		// revoked, not every device.
		if len(active) > 0 {
			current := active[len(active)-1]
			if err := s.refreshRepo.Blocklist(txCtx, current.ID); err != nil {
				return err
			}
		}
		return s.blocklistRepo.Insert(txCtx, accessJTI)
	})
	if err != nil {
		return fmt.Errorf("failed to revoke session: %w", err)
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, blocklistKeyPrefix+accessJTI, "1", s.cfg.JWT.AccessTokenTTL); err != nil {
			logger.Get().Warn("blocklist cache set failed", zap.Error(err))
		}
	}

	logger.Get().Info("session revoked", zap.String("userID", userID), zap.String("jti", accessJTI))
	return nil
}

func (s *tokenServiceImpl) Refresh(ctx context.Context, userID string) (string, error) {
	active, err := s.refreshRepo.GetActiveByUserID(ctx, userID)
	if err != nil {
		return "", fmt.Errorf("failed to load refresh tokens: %w", err)
	}

	var validClaims *dto.AuthClaims
	for i := range active {
		claims, err := s.Verify(ctx, active[i].Token)
		if err != nil {
			// expired or tampered rows are skipped, not deleted
			continue
		}
		if claims.TokenType != dto.TokenTypeRefresh {
			continue
		}
		validClaims = claims
		break
	}
	if validClaims == nil {
		return "", domain.NewAuthError(domain.CodeNoValidSession, "No valid session, please log in again")
	}

	user, err := s.userRepo.GetUserByID(ctx, userID)
	if err != nil {
		return "", fmt.Errorf("failed to load user for refresh: %w", err)
	}
	if user == nil {
		return "", domain.NewNotFoundError("User not found")
	}

	access, _, err := s.IssueAccessToken(user)
	if err != nil {
		return "", err
	}
	logger.Get().Info("access token refreshed", zap.String("userID", userID))
	return access, nil
}
