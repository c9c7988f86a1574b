package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Lanziify/seps-web-server/internal/domain"
	"github.com/Lanziify/seps-web-server/internal/dto"
	"github.com/Lanziify/seps-web-server/internal/logger"
	"github.com/Lanziify/seps-web-server/internal/util"

	"go.uber.org/zap"
)

// UserService implements the user directory: registration, credential
// authentication and paginated listing.
type UserService interface {
	// Register creates an unverified account and dispatches the
	// verification email. A mail transport failure surfaces as a
	// dependency error; the account itself still commits.
	Register(ctx context.Context, req dto.RegisterRequest) (*dto.RegisterResponse, error)
	// Authenticate resolves credentials to a verified user. Unknown email
	// and wrong password collapse into one indistinguishable error.
	Authenticate(ctx context.Context, email, password string) (*domain.User, error)
	GetProfile(ctx context.Context, userID string) (*dto.UserResponse, error)
	// ListUsers pages through the directory. The sort field is validated
	// against the whitelist; anything else fails validation.
	ListUsers(ctx context.Context, query dto.ListUsersQuery) (*dto.UserListResponse, error)
}

type userServiceImpl struct {
	userRepo     domain.UserRepository
	hasher       PasswordHasher
	verification EmailVerificationService
	txManager    domain.TransactionManager
}

// NewUserService creates a new instance of UserService.
func NewUserService(
	userRepo domain.UserRepository,
	hasher PasswordHasher,
	verification EmailVerificationService,
	txManager domain.TransactionManager,
) UserService {
	return &userServiceImpl{
		userRepo:     userRepo,
		hasher:       hasher,
		verification: verification,
		txManager:    txManager,
	}
}

func toUserResponse(u *domain.User) dto.UserResponse {
	return dto.UserResponse{
		UserID:    u.ID,
		Username:  u.Username,
		Email:     u.Email,
		Verified:  u.Verified,
		CreatedAt: u.CreatedAt,
	}
}

func (s *userServiceImpl) Register(ctx context.Context, req dto.RegisterRequest) (*dto.RegisterResponse, error) {
	// Fast-path check for a friendly message; the unique constraint on
	// email is the authoritative guard against the check/insert race.
	existing, err := s.userRepo.GetUserByEmail(ctx, req.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to check existing email: %w", err)
	}
	if existing != nil {
		return nil, domain.NewEmailTakenError()
	}

	hash, err := s.hasher.Hash(req.Password)
	if err != nil {
		return nil, domain.NewInternalError("failed to hash password", err)
	}

	user := &domain.User{
		ID:           util.NewULID(),
		Username:     req.Username,
		Email:        req.Email,
		PasswordHash: hash,
		Verified:     false,
		CreatedAt:    time.Now(),
	}

	err = s.txManager.WithTransaction(ctx, func(txCtx context.Context) error {
		return s.userRepo.CreateUser(txCtx, user)
	})
	if err != nil {
		var domainErr *domain.DomainError
		if errors.As(err, &domainErr) && domainErr.Code == domain.CodeConflict {
			return nil, domain.NewEmailTakenError()
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	logger.Get().Info("user registered", zap.String("userID", user.ID), zap.String("email", user.Email))

	// The account is committed at this point; a delivery failure is the
	// mail collaborator's, reported distinctly from validation failures.
	if err := s.verification.SendVerificationEmail(ctx, user.Email); err != nil {
		logger.Get().Error("verification email delivery failed",
			zap.String("userID", user.ID), zap.Error(err))
		return nil, err
	}

	return &dto.RegisterResponse{
		Title: "Verify Your Email",
		Message: fmt.Sprintf(
			"We've sent an email to %s to verify your email address and activate your account. The link in the email will expire in 24 hours.",
			user.Email,
		),
	}, nil
}

func (s *userServiceImpl) Authenticate(ctx context.Context, email, password string) (*domain.User, error) {
	user, err := s.userRepo.GetUserByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}
	if user == nil || !s.hasher.Verify(password, user.PasswordHash) {
		return nil, domain.NewInvalidCredentialsError()
	}
	if !user.Verified {
		return nil, domain.NewUnverifiedAccountError()
	}
	return user, nil
}

func (s *userServiceImpl) GetProfile(ctx context.Context, userID string) (*dto.UserResponse, error) {
	user, err := s.userRepo.GetUserByID(ctx, userID)
	if err != nil {
		return nil, domain.NewInternalError("failed to load user profile", err)
	}
	if user == nil {
		return nil, domain.NewNotFoundError("User not found")
	}
	resp := toUserResponse(user)
	return &resp, nil
}

func (s *userServiceImpl) ListUsers(ctx context.Context, query dto.ListUsersQuery) (*dto.UserListResponse, error) {
	page := query.Page
	if page <= 0 {
		page = 1
	}
	limit := query.Limit
	if limit <= 0 {
		limit = 10
	}

	sortBy := query.SortBy
	if sortBy == "" {
		sortBy = "user_id"
	}
	column, ok := domain.UserSortFields[sortBy]
	if !ok {
		return nil, domain.NewValidationError(fmt.Sprintf("Invalid sort field: %s", sortBy))
	}

	sortOrder := strings.ToUpper(query.SortOrder)
	switch sortOrder {
	case "", "ASC":
		sortOrder = "ASC"
	case "DESC":
	default:
		return nil, domain.NewValidationError(fmt.Sprintf("Invalid sort order: %s", query.SortOrder))
	}

	users, total, err := s.userRepo.ListUsers(ctx, domain.ListUsersParams{
		Page:      page,
		Limit:     limit,
		SortBy:    column,
		SortOrder: sortOrder,
	})
	if err != nil {
		return nil, domain.NewInternalError("failed to list users", err)
	}

	items := make([]dto.UserResponse, 0, len(users))
	for i := range users {
		items = append(items, toUserResponse(&users[i]))
	}
	return &dto.UserListResponse{TotalItems: total, Users: items}, nil
}
