package handler

import (
	"context"

	"github.com/Lanziify/seps-web-server/internal/domain"
	"github.com/Lanziify/seps-web-server/internal/dto"

	"github.com/stretchr/testify/mock"
)

type MockPredictionService struct {
	mock.Mock
}

func (m *MockPredictionService) PredictForDataset(ctx context.Context, datasetID int64, userID string) (*dto.PredictionResponse, error) {
	args := m.Called(ctx, datasetID, userID)
	if resp, ok := args.Get(0).(*dto.PredictionResponse); ok {
		return resp, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockPredictionService) UploadDataset(ctx context.Context, req dto.UploadRequest) (*dto.UploadResponse, error) {
	args := m.Called(ctx, req)
	if resp, ok := args.Get(0).(*dto.UploadResponse); ok {
		return resp, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockPredictionService) UploadAndPredict(ctx context.Context, req dto.UploadRequest, userID string) (*dto.PredictionResponse, error) {
	args := m.Called(ctx, req, userID)
	if resp, ok := args.Get(0).(*dto.PredictionResponse); ok {
		return resp, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockPredictionService) ListDataset(ctx context.Context, p dto.Pagination) (*dto.DatasetListResponse, error) {
	args := m.Called(ctx, p)
	if resp, ok := args.Get(0).(*dto.DatasetListResponse); ok {
		return resp, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockPredictionService) ListPredictions(ctx context.Context, p dto.Pagination) (*dto.PredictionListResponse, error) {
	args := m.Called(ctx, p)
	if resp, ok := args.Get(0).(*dto.PredictionListResponse); ok {
		return resp, args.Error(1)
	}
	return nil, args.Error(1)
}

type MockTokenService struct {
	mock.Mock
}

func (m *MockTokenService) IssueAccessToken(user *domain.User) (string, string, error) {
	args := m.Called(user)
	return args.String(0), args.String(1), args.Error(2)
}

func (m *MockTokenService) IssueRefreshToken(ctx context.Context, user *domain.User) (string, error) {
	args := m.Called(ctx, user)
	return args.String(0), args.Error(1)
}

func (m *MockTokenService) Verify(ctx context.Context, tokenString string) (*dto.AuthClaims, error) {
	args := m.Called(ctx, tokenString)
	if claims, ok := args.Get(0).(*dto.AuthClaims); ok {
		return claims, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockTokenService) RevokeCurrentSession(ctx context.Context, userID string, accessJTI string) error {
	args := m.Called(ctx, userID, accessJTI)
	return args.Error(0)
}

func (m *MockTokenService) Refresh(ctx context.Context, userID string) (string, error) {
	args := m.Called(ctx, userID)
	return args.String(0), args.Error(1)
}

type MockEmailVerificationService struct {
	mock.Mock
}

func (m *MockEmailVerificationService) GenerateToken(email string) (string, error) {
	args := m.Called(email)
	return args.String(0), args.Error(1)
}

func (m *MockEmailVerificationService) SendVerificationEmail(ctx context.Context, email string) error {
	args := m.Called(ctx, email)
	return args.Error(0)
}

func (m *MockEmailVerificationService) Confirm(ctx context.Context, token string) (*domain.User, error) {
	args := m.Called(ctx, token)
	if user, ok := args.Get(0).(*domain.User); ok {
		return user, args.Error(1)
	}
	return nil, args.Error(1)
}

type MockUserService struct {
	mock.Mock
}

func (m *MockUserService) Register(ctx context.Context, req dto.RegisterRequest) (*dto.RegisterResponse, error) {
	args := m.Called(ctx, req)
	if resp, ok := args.Get(0).(*dto.RegisterResponse); ok {
		return resp, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockUserService) Authenticate(ctx context.Context, email, password string) (*domain.User, error) {
	args := m.Called(ctx, email, password)
	if user, ok := args.Get(0).(*domain.User); ok {
		return user, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockUserService) GetProfile(ctx context.Context, userID string) (*dto.UserResponse, error) {
	args := m.Called(ctx, userID)
	if resp, ok := args.Get(0).(*dto.UserResponse); ok {
		return resp, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockUserService) ListUsers(ctx context.Context, query dto.ListUsersQuery) (*dto.UserListResponse, error) {
	args := m.Called(ctx, query)
	if resp, ok := args.Get(0).(*dto.UserListResponse); ok {
		return resp, args.Error(1)
	}
	return nil, args.Error(1)
}
