package service

import (
	"context"
	"testing"
	"time"

	"github.com/Lanziify/seps-web-server/internal/domain"
	"github.com/Lanziify/seps-web-server/internal/dto"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type predictionMocks struct {
	dataset        *MockDatasetRepository
	prediction     *MockPredictionRepository
	classification *MockClassificationRepository
	classifier     *MockClassifier
}

func newPredictionService(m *predictionMocks) PredictionService {
	return NewPredictionService(m.dataset, m.prediction, m.classification, m.classifier, passthroughTxManager{})
}

func newPredictionMocks() *predictionMocks {
	return &predictionMocks{
		dataset:        new(MockDatasetRepository),
		prediction:     new(MockPredictionRepository),
		classification: new(MockClassificationRepository),
		classifier:     new(MockClassifier),
	}
}

var testFeatures = domain.FeatureVector{4, 4, 3, 4, 4, 3, 4, 85}

func TestPredictionService_PredictForDataset_Success(t *testing.T) {
	m := newPredictionMocks()
	svc := newPredictionService(m)

	record := &domain.DatasetRecord{DataID: 7, StudentID: 42, Features: testFeatures}
	m.prediction.On("GetByDataID", mock.Anything, int64(7)).Return(nil, nil)
	m.dataset.On("GetByDataID", mock.Anything, int64(7)).Return(record, nil)
	// Raw model output is 0-based; the schema is 1-based.
	m.classifier.On("Predict", testFeatures).Return(1, nil)
	m.classification.On("GetByClassID", mock.Anything, 2).
		Return(&domain.Classification{ClassID: 2, ClassName: "Employable"}, nil)

	var stored *domain.Prediction
	m.prediction.On("CreatePrediction", mock.Anything, mock.AnythingOfType("*domain.Prediction")).
		Run(func(args mock.Arguments) {
			stored = args.Get(1).(*domain.Prediction)
			stored.PredictionID = 1
		}).
		Return(nil)
	m.dataset.On("MarkPredicted", mock.Anything, int64(7)).Return(nil)

	resp, err := svc.PredictForDataset(context.Background(), 7, "u1")
	require.NoError(t, err)

	assert.Equal(t, "Employability Predicted!", resp.Title)
	assert.Equal(t, "Employable", resp.Prediction)
	assert.Contains(t, resp.Body, "student <b>#42</b>")
	assert.Contains(t, resp.Body, "<b>Employable</b>")

	require.NotNil(t, stored)
	assert.Equal(t, int64(7), stored.DataID)
	assert.Equal(t, 2, stored.ClassificationID)
	assert.Equal(t, "u1", stored.UserID)
	m.dataset.AssertExpectations(t)
	m.prediction.AssertExpectations(t)
}

func TestPredictionService_PredictForDataset_AlreadyPredicted(t *testing.T) {
	m := newPredictionMocks()
	svc := newPredictionService(m)

	m.prediction.On("GetByDataID", mock.Anything, int64(7)).
		Return(&domain.Prediction{PredictionID: 1, DataID: 7}, nil)

	_, err := svc.PredictForDataset(context.Background(), 7, "u1")
	var domainErr *domain.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, domain.CodeAlreadyPredicted, domainErr.Code)
	m.classifier.AssertNotCalled(t, "Predict", mock.Anything)
	m.dataset.AssertNotCalled(t, "MarkPredicted", mock.Anything, mock.Anything)
}

func TestPredictionService_PredictForDataset_FlaggedRecord(t *testing.T) {
	// already_predicted is set but the prediction row lookup came back empty;
	// the flag alone still blocks a second run.
	m := newPredictionMocks()
	svc := newPredictionService(m)

	record := &domain.DatasetRecord{DataID: 7, StudentID: 42, Features: testFeatures, AlreadyPredicted: true}
	m.prediction.On("GetByDataID", mock.Anything, int64(7)).Return(nil, nil)
	m.dataset.On("GetByDataID", mock.Anything, int64(7)).Return(record, nil)

	_, err := svc.PredictForDataset(context.Background(), 7, "u1")
	var domainErr *domain.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, domain.CodeAlreadyPredicted, domainErr.Code)
}

func TestPredictionService_PredictForDataset_DatasetNotFound(t *testing.T) {
	m := newPredictionMocks()
	svc := newPredictionService(m)

	m.prediction.On("GetByDataID", mock.Anything, int64(404)).Return(nil, nil)
	m.dataset.On("GetByDataID", mock.Anything, int64(404)).Return(nil, nil)

	_, err := svc.PredictForDataset(context.Background(), 404, "u1")
	var domainErr *domain.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, domain.CodeDatasetNotFound, domainErr.Code)
}

func TestPredictionService_PredictForDataset_ClassifierFailure(t *testing.T) {
	m := newPredictionMocks()
	svc := newPredictionService(m)

	record := &domain.DatasetRecord{DataID: 7, Features: testFeatures}
	m.prediction.On("GetByDataID", mock.Anything, int64(7)).Return(nil, nil)
	m.dataset.On("GetByDataID", mock.Anything, int64(7)).Return(record, nil)
	m.classifier.On("Predict", testFeatures).Return(0, assert.AnError)

	_, err := svc.PredictForDataset(context.Background(), 7, "u1")
	var domainErr *domain.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, domain.CodeDependency, domainErr.Code)
	m.prediction.AssertNotCalled(t, "CreatePrediction", mock.Anything, mock.Anything)
}

func TestPredictionService_UploadDataset_Success(t *testing.T) {
	m := newPredictionMocks()
	svc := newPredictionService(m)

	m.dataset.On("GetByStudentID", mock.Anything, 42).Return(nil, nil)
	m.dataset.On("CreateDatasetRecord", mock.Anything, mock.AnythingOfType("*domain.DatasetRecord")).
		Run(func(args mock.Arguments) {
			args.Get(1).(*domain.DatasetRecord).DataID = 7
		}).
		Return(nil)

	resp, err := svc.UploadDataset(context.Background(), dto.UploadRequest{
		StudentID: 42,
		Features:  []int{4, 4, 3, 4, 4, 3, 4, 85},
	})
	require.NoError(t, err)
	assert.Equal(t, "Evaluation Uploaded", resp.Title)
	assert.Equal(t, int64(7), resp.DataID)
	m.dataset.AssertExpectations(t)
}

func TestPredictionService_UploadDataset_DuplicateStudent(t *testing.T) {
	m := newPredictionMocks()
	svc := newPredictionService(m)

	m.dataset.On("GetByStudentID", mock.Anything, 42).
		Return(&domain.DatasetRecord{DataID: 3, StudentID: 42}, nil)

	_, err := svc.UploadDataset(context.Background(), dto.UploadRequest{
		StudentID: 42,
		Features:  []int{4, 4, 3, 4, 4, 3, 4, 85},
	})
	var domainErr *domain.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, domain.CodeDuplicateStudent, domainErr.Code)
	m.dataset.AssertNotCalled(t, "CreateDatasetRecord", mock.Anything, mock.Anything)
}

func TestPredictionService_UploadAndPredict_Success(t *testing.T) {
	m := newPredictionMocks()
	svc := newPredictionService(m)

	m.dataset.On("GetByStudentID", mock.Anything, 42).Return(nil, nil)
	m.classifier.On("Predict", testFeatures).Return(0, nil)
	m.classification.On("GetByClassID", mock.Anything, 1).
		Return(&domain.Classification{ClassID: 1, ClassName: "LessEmployable"}, nil)
	m.dataset.On("CreateDatasetRecord", mock.Anything, mock.AnythingOfType("*domain.DatasetRecord")).
		Run(func(args mock.Arguments) {
			args.Get(1).(*domain.DatasetRecord).DataID = 8
		}).
		Return(nil)

	var stored *domain.Prediction
	m.prediction.On("CreatePrediction", mock.Anything, mock.AnythingOfType("*domain.Prediction")).
		Run(func(args mock.Arguments) {
			stored = args.Get(1).(*domain.Prediction)
		}).
		Return(nil)
	m.dataset.On("MarkPredicted", mock.Anything, int64(8)).Return(nil)

	resp, err := svc.UploadAndPredict(context.Background(), dto.UploadRequest{
		StudentID: 42,
		Features:  []int{4, 4, 3, 4, 4, 3, 4, 85},
	}, "u1")
	require.NoError(t, err)
	assert.Equal(t, "LessEmployable", resp.Prediction)
	require.NotNil(t, stored)
	// The prediction references the dataset row created in the same call.
	assert.Equal(t, int64(8), stored.DataID)
	m.dataset.AssertExpectations(t)
}

func TestPredictionService_UploadAndPredict_FailurePropagates(t *testing.T) {
	// A prediction insert failure aborts the shared transaction, so the
	// dataset insert never commits either.
	m := newPredictionMocks()
	svc := newPredictionService(m)

	m.dataset.On("GetByStudentID", mock.Anything, 42).Return(nil, nil)
	m.classifier.On("Predict", testFeatures).Return(0, nil)
	m.classification.On("GetByClassID", mock.Anything, 1).
		Return(&domain.Classification{ClassID: 1, ClassName: "LessEmployable"}, nil)
	m.dataset.On("CreateDatasetRecord", mock.Anything, mock.Anything).Return(nil)
	m.prediction.On("CreatePrediction", mock.Anything, mock.Anything).Return(assert.AnError)

	_, err := svc.UploadAndPredict(context.Background(), dto.UploadRequest{
		StudentID: 42,
		Features:  []int{4, 4, 3, 4, 4, 3, 4, 85},
	}, "u1")
	assert.Error(t, err)
	m.dataset.AssertNotCalled(t, "MarkPredicted", mock.Anything, mock.Anything)
}

func TestPredictionService_ListDataset_Pagination(t *testing.T) {
	m := newPredictionMocks()
	svc := newPredictionService(m)

	records := []domain.DatasetRecord{
		{DataID: 16, StudentID: 16, Features: testFeatures, UploadedAt: time.Now()},
	}
	m.dataset.On("ListDataset", mock.Anything, domain.ListParams{Page: 2, Limit: 10}).
		Return(records, int64(15), nil)

	resp, err := svc.ListDataset(context.Background(), dto.Pagination{Page: 2, Limit: 10})
	require.NoError(t, err)
	assert.Equal(t, int64(15), resp.TotalItems)
	require.Len(t, resp.Datasets, 1)
	assert.Equal(t, 85, resp.Datasets[0].PerformanceRating)
}

func TestPredictionService_ListPredictions_Defaults(t *testing.T) {
	m := newPredictionMocks()
	svc := newPredictionService(m)

	items := []domain.PredictionListItem{
		{PredictionID: 1, DataID: 7, Classification: "Employable", PredictedBy: "alice", Email: "alice@x.com"},
	}
	m.prediction.On("ListPredictions", mock.Anything, domain.ListParams{Page: 1, Limit: 10}).
		Return(items, int64(1), nil)

	resp, err := svc.ListPredictions(context.Background(), dto.Pagination{})
	require.NoError(t, err)
	assert.Equal(t, int64(1), resp.TotalItems)
	require.Len(t, resp.Predictions, 1)
	assert.Equal(t, "alice", resp.Predictions[0].PredictedBy)
}
