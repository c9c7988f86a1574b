package service

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"errors"
	"fmt"
	"time"

	"github.com/Lanziify/seps-web-server/internal/config"
	"github.com/Lanziify/seps-web-server/internal/domain"
	"github.com/Lanziify/seps-web-server/internal/logger"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
)

// emailConfirmNamespace keys the verification signing key off the server
// secret so verification tokens and auth tokens cannot be cross-used.
const emailConfirmNamespace = "email-confirm"

// emailClaims are the claims of a verification token.
type emailClaims struct {
	Purpose string `json:"purpose"`
	jwt.RegisteredClaims
}

// EmailVerificationService generates and redeems the time-limited signed
// tokens gating account activation.
type EmailVerificationService interface {
	// GenerateToken returns a signed verification token for email, valid
	// for the configured window (24h by default).
	GenerateToken(email string) (string, error)
	// SendVerificationEmail generates a token and dispatches the
	// verification link. A transport failure is a dependency error.
	SendVerificationEmail(ctx context.Context, email string) error
	// Confirm redeems a token and marks the user verified. Redeeming a
	// token for an already verified user is tolerated.
	Confirm(ctx context.Context, token string) (*domain.User, error)
}

type emailVerificationImpl struct {
	userRepo domain.UserRepository
	mailer   domain.Mailer
	cfg      *config.Config
	key      []byte
}

// NewEmailVerificationService creates a new instance of
// EmailVerificationService.
func NewEmailVerificationService(userRepo domain.UserRepository, mailer domain.Mailer, cfg *config.Config) (EmailVerificationService, error) {
	if len(cfg.JWT.SecretKey) == 0 {
		return nil, errors.New("email verification requires a signing secret")
	}
	mac := hmac.New(sha256.New, []byte(cfg.JWT.SecretKey))
	mac.Write([]byte(emailConfirmNamespace))
	return &emailVerificationImpl{
		userRepo: userRepo,
		mailer:   mailer,
		cfg:      cfg,
		key:      mac.Sum(nil),
	}, nil
}

func (s *emailVerificationImpl) GenerateToken(email string) (string, error) {
	now := time.Now()
	claims := emailClaims{
		Purpose: emailConfirmNamespace,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   email,
			ExpiresAt: jwt.NewNumericDate(now.Add(s.cfg.JWT.EmailTokenTTL)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.key)
	if err != nil {
		return "", fmt.Errorf("failed to sign verification token: %w", err)
	}
	return signed, nil
}

func (s *emailVerificationImpl) SendVerificationEmail(ctx context.Context, email string) error {
	token, err := s.GenerateToken(email)
	if err != nil {
		return err
	}

	verificationURL := fmt.Sprintf("%s/confirm_email/%s", s.cfg.Server.BaseURL, token)
	body := fmt.Sprintf("Please click the following link to verify your email: \n%s", verificationURL)

	if err := s.mailer.Send(ctx, email, "Confirm Your Email", body); err != nil {
		return domain.NewDependencyError("Failed to deliver the verification email", err)
	}
	return nil
}

func (s *emailVerificationImpl) Confirm(ctx context.Context, tokenString string) (*domain.User, error) {
	token, err := jwt.ParseWithClaims(tokenString, &emailClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.key, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, domain.NewAuthError(domain.CodeTokenExpired, "The verification link has expired.")
		}
		return nil, domain.NewAuthError(domain.CodeTokenInvalid, "The verification link is invalid.")
	}

	claims, ok := token.Claims.(*emailClaims)
	if !ok || !token.Valid || claims.Purpose != emailConfirmNamespace {
		return nil, domain.NewAuthError(domain.CodeTokenInvalid, "The verification link is invalid.")
	}

	user, err := s.userRepo.GetUserByEmail(ctx, claims.Subject)
	if err != nil {
		return nil, fmt.Errorf("failed to load user for confirmation: %w", err)
	}
	if user == nil {
		return nil, domain.NewNotFoundError("User not found")
	}

	// Re-confirming simply re-sets the flag; it never errors.
	if err := s.userRepo.MarkVerified(ctx, user.ID); err != nil {
		return nil, fmt.Errorf("failed to mark user verified: %w", err)
	}
	user.Verified = true

	logger.Get().Info("email verified", zap.String("userID", user.ID), zap.String("email", user.Email))
	return user, nil
}
