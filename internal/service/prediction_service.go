package service

import (
	"context"
	"fmt"
	"time"

	"github.com/Lanziify/seps-web-server/internal/domain"
	"github.com/Lanziify/seps-web-server/internal/dto"
	"github.com/Lanziify/seps-web-server/internal/logger"

	"go.uber.org/zap"
)

// PredictionService orchestrates dataset lookup, classification and
// persistence, enforcing at most one prediction per dataset record.
type PredictionService interface {
	// PredictForDataset classifies a stored evaluation exactly once. The
	// prediction insert and the already_predicted flip commit together or
	// not at all.
	PredictForDataset(ctx context.Context, datasetID int64, userID string) (*dto.PredictionResponse, error)
	// UploadDataset stores one evaluation, rejecting duplicate students.
	UploadDataset(ctx context.Context, req dto.UploadRequest) (*dto.UploadResponse, error)
	// UploadAndPredict stores an evaluation and classifies it in one
	// transaction; a downstream failure rolls back the dataset insert too.
	UploadAndPredict(ctx context.Context, req dto.UploadRequest, userID string) (*dto.PredictionResponse, error)
	ListDataset(ctx context.Context, p dto.Pagination) (*dto.DatasetListResponse, error)
	ListPredictions(ctx context.Context, p dto.Pagination) (*dto.PredictionListResponse, error)
}

type predictionServiceImpl struct {
	datasetRepo        domain.DatasetRepository
	predictionRepo     domain.PredictionRepository
	classificationRepo domain.ClassificationRepository
	classifier         domain.Classifier
	txManager          domain.TransactionManager
}

// NewPredictionService creates a new instance of PredictionService.
func NewPredictionService(
	datasetRepo domain.DatasetRepository,
	predictionRepo domain.PredictionRepository,
	classificationRepo domain.ClassificationRepository,
	classifier domain.Classifier,
	txManager domain.TransactionManager,
) PredictionService {
	return &predictionServiceImpl{
		datasetRepo:        datasetRepo,
		predictionRepo:     predictionRepo,
		classificationRepo: classificationRepo,
		classifier:         classifier,
		txManager:          txManager,
	}
}

// classify runs the model and resolves the classification row. The model
// emits a 0-based class index; the schema is 1-based.
func (s *predictionServiceImpl) classify(ctx context.Context, features domain.FeatureVector) (*domain.Classification, time.Duration, error) {
	start := time.Now()
	raw, err := s.classifier.Predict(features)
	if err != nil {
		return nil, 0, domain.NewDependencyError("Classifier failed", err)
	}
	elapsed := time.Since(start)

	classID := raw + 1
	classification, err := s.classificationRepo.GetByClassID(ctx, classID)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to load classification: %w", err)
	}
	if classification == nil {
		// should not occur with a correctly seeded reference table
		return nil, 0, domain.NewClassificationNotFoundError(classID)
	}
	return classification, elapsed, nil
}

func (s *predictionServiceImpl) PredictForDataset(ctx context.Context, datasetID int64, userID string) (*dto.PredictionResponse, error) {
	existing, err := s.predictionRepo.GetByDataID(ctx, datasetID)
	if err != nil {
		return nil, fmt.Errorf("failed to check existing prediction: %w", err)
	}
	if existing != nil {
		return nil, domain.NewAlreadyPredictedError(datasetID)
	}

	record, err := s.datasetRepo.GetByDataID(ctx, datasetID)
	if err != nil {
		return nil, fmt.Errorf("failed to load dataset record: %w", err)
	}
	if record == nil {
		return nil, domain.NewDatasetNotFoundError(datasetID)
	}
	if record.AlreadyPredicted {
		return nil, domain.NewAlreadyPredictedError(datasetID)
	}

	classification, elapsed, err := s.classify(ctx, record.Features)
	if err != nil {
		return nil, err
	}

	prediction := &domain.Prediction{
		DataID:           datasetID,
		ClassificationID: classification.ClassID,
		UserID:           userID,
		PredictionTime:   time.Now(),
	}
	err = s.txManager.WithTransaction(ctx, func(txCtx context.Context) error {
		if err := s.predictionRepo.CreatePrediction(txCtx, prediction); err != nil {
			return err
		}
		return s.datasetRepo.MarkPredicted(txCtx, datasetID)
	})
	if err != nil {
		return nil, err
	}

	logger.Get().Info("dataset classified",
		zap.Int64("dataID", datasetID),
		zap.Int("studentID", record.StudentID),
		zap.String("classification", classification.ClassName),
		zap.Duration("inference", elapsed),
	)
	return buildPredictionResponse(record.StudentID, prediction, classification, elapsed), nil
}

func buildPredictionResponse(studentID int, prediction *domain.Prediction, classification *domain.Classification, elapsed time.Duration) *dto.PredictionResponse {
	return &dto.PredictionResponse{
		Title: "Employability Predicted!",
		Body: fmt.Sprintf("The system has identified student <b>#%d</b> as <b>%s</b>! <br> Timestamp: %s",
			studentID, classification.ClassName, prediction.PredictionTime.UTC().Format(time.RFC3339)),
		PredictionID:   prediction.PredictionID,
		Prediction:     classification.ClassName,
		PredictionTime: elapsed.Seconds(),
	}
}

func (s *predictionServiceImpl) newRecordFromUpload(req dto.UploadRequest) *domain.DatasetRecord {
	var features domain.FeatureVector
	copy(features[:], req.Features)
	return &domain.DatasetRecord{
		StudentID:        req.StudentID,
		Features:         features,
		UploadedAt:       time.Now(),
		AlreadyPredicted: false,
	}
}

// checkNewStudent is the friendly fast path; the unique constraint on
// student_id remains the authoritative guard.
func (s *predictionServiceImpl) checkNewStudent(ctx context.Context, studentID int) error {
	existing, err := s.datasetRepo.GetByStudentID(ctx, studentID)
	if err != nil {
		return fmt.Errorf("failed to check existing student: %w", err)
	}
	if existing != nil {
		return domain.NewDuplicateStudentError(studentID)
	}
	return nil
}

func (s *predictionServiceImpl) UploadDataset(ctx context.Context, req dto.UploadRequest) (*dto.UploadResponse, error) {
	if err := s.checkNewStudent(ctx, req.StudentID); err != nil {
		return nil, err
	}

	record := s.newRecordFromUpload(req)
	err := s.txManager.WithTransaction(ctx, func(txCtx context.Context) error {
		return s.datasetRepo.CreateDatasetRecord(txCtx, record)
	})
	if err != nil {
		return nil, err
	}

	logger.Get().Info("evaluation uploaded",
		zap.Int64("dataID", record.DataID), zap.Int("studentID", record.StudentID))
	return &dto.UploadResponse{
		Title:   "Evaluation Uploaded",
		Message: "Data have been successfully added to the datasets.",
		DataID:  record.DataID,
	}, nil
}

func (s *predictionServiceImpl) UploadAndPredict(ctx context.Context, req dto.UploadRequest, userID string) (*dto.PredictionResponse, error) {
	if err := s.checkNewStudent(ctx, req.StudentID); err != nil {
		return nil, err
	}

	record := s.newRecordFromUpload(req)

	classification, elapsed, err := s.classify(ctx, record.Features)
	if err != nil {
		return nil, err
	}

	prediction := &domain.Prediction{
		ClassificationID: classification.ClassID,
		UserID:           userID,
		PredictionTime:   time.Now(),
	}
	// One transaction end to end: if the prediction insert or the flag
	// flip fails, the dataset insert rolls back with it.
	err = s.txManager.WithTransaction(ctx, func(txCtx context.Context) error {
		if err := s.datasetRepo.CreateDatasetRecord(txCtx, record); err != nil {
			return err
		}
		prediction.DataID = record.DataID
		if err := s.predictionRepo.CreatePrediction(txCtx, prediction); err != nil {
			return err
		}
		return s.datasetRepo.MarkPredicted(txCtx, record.DataID)
	})
	if err != nil {
		return nil, err
	}

	logger.Get().Info("evaluation uploaded and classified",
		zap.Int64("dataID", record.DataID),
		zap.Int("studentID", record.StudentID),
		zap.String("classification", classification.ClassName),
	)
	return buildPredictionResponse(record.StudentID, prediction, classification, elapsed), nil
}

func normalizePagination(p dto.Pagination) domain.ListParams {
	page := p.Page
	if page <= 0 {
		page = 1
	}
	limit := p.Limit
	if limit <= 0 {
		limit = 10
	}
	return domain.ListParams{Page: page, Limit: limit}
}

func (s *predictionServiceImpl) ListDataset(ctx context.Context, p dto.Pagination) (*dto.DatasetListResponse, error) {
	records, total, err := s.datasetRepo.ListDataset(ctx, normalizePagination(p))
	if err != nil {
		return nil, domain.NewInternalError("Something went wrong when getting the datasets", err)
	}

	items := make([]dto.DatasetRecordResponse, 0, len(records))
	for _, r := range records {
		items = append(items, dto.DatasetRecordResponse{
			DataID:                r.DataID,
			StudentID:             r.StudentID,
			GeneralAppearance:     r.Features[0],
			MannerOfSpeaking:      r.Features[1],
			PhysicalCondition:     r.Features[2],
			MentalAlertness:       r.Features[3],
			SelfConfidence:        r.Features[4],
			AbilityToPresentIdeas: r.Features[5],
			CommunicationSkills:   r.Features[6],
			PerformanceRating:     r.Features[7],
			UploadedAt:            r.UploadedAt,
			AlreadyPredicted:      r.AlreadyPredicted,
		})
	}
	return &dto.DatasetListResponse{TotalItems: total, Datasets: items}, nil
}

func (s *predictionServiceImpl) ListPredictions(ctx context.Context, p dto.Pagination) (*dto.PredictionListResponse, error) {
	predictions, total, err := s.predictionRepo.ListPredictions(ctx, normalizePagination(p))
	if err != nil {
		return nil, domain.NewInternalError("Something went wrong when getting the predictions", err)
	}

	items := make([]dto.PredictionListItemResponse, 0, len(predictions))
	for _, p := range predictions {
		items = append(items, dto.PredictionListItemResponse{
			PredictionID:   p.PredictionID,
			Classification: p.Classification,
			DatasetID:      p.DataID,
			PredictedBy:    p.PredictedBy,
			Email:          p.Email,
			PredictionTime: p.PredictionTime,
		})
	}
	return &dto.PredictionListResponse{TotalItems: total, Predictions: items}, nil
}
