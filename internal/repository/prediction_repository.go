package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Lanziify/seps-web-server/internal/domain"
	"github.com/Lanziify/seps-web-server/internal/repository/models"

	"github.com/jmoiron/sqlx"
)

// sqlxPredictionRepository implements domain.PredictionRepository.
type sqlxPredictionRepository struct {
	db *sqlx.DB
}

// NewSQLXPredictionRepository creates a new prediction repository.
func NewSQLXPredictionRepository(db *sqlx.DB) domain.PredictionRepository {
	return &sqlxPredictionRepository{db: db}
}

// CreatePrediction inserts a prediction and fills in the generated id. The
// unique constraint on data_id enforces the at-most-one-prediction invariant
// even under concurrent identical requests; a violation maps to
// AlreadyPredicted.
func (r *sqlxPredictionRepository) CreatePrediction(ctx context.Context, prediction *domain.Prediction) error {
	query := `INSERT INTO predictions (data_id, classification_id, user_id, prediction_time)
	          VALUES ($1, $2, $3, $4)
	          RETURNING prediction_id`

	err := GetExecutor(ctx, r.db).QueryRowxContext(ctx, query,
		prediction.DataID,
		prediction.ClassificationID,
		prediction.UserID,
		prediction.PredictionTime,
	).Scan(&prediction.PredictionID)
	if err != nil {
		if IsUniqueViolation(err) {
			return domain.NewAlreadyPredictedError(prediction.DataID)
		}
		return fmt.Errorf("failed to create prediction: %w", err)
	}
	return nil
}

// GetByDataID retrieves the prediction referencing a dataset record, if any.
func (r *sqlxPredictionRepository) GetByDataID(ctx context.Context, dataID int64) (*domain.Prediction, error) {
	var row models.Prediction
	query := `SELECT prediction_id, data_id, classification_id, user_id, prediction_time
	          FROM predictions WHERE data_id = $1`

	err := GetExecutor(ctx, r.db).GetContext(ctx, &row, query, dataID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get prediction by data id: %w", err)
	}
	return &domain.Prediction{
		PredictionID:     row.PredictionID,
		DataID:           row.DataID,
		ClassificationID: row.ClassificationID,
		UserID:           row.UserID,
		PredictionTime:   row.PredictionTime,
	}, nil
}

// ListPredictions returns one page of predictions joined with their
// classification name and predictor, plus the total count.
func (r *sqlxPredictionRepository) ListPredictions(ctx context.Context, params domain.ListParams) ([]domain.PredictionListItem, int64, error) {
	exec := GetExecutor(ctx, r.db)

	var total int64
	if err := exec.GetContext(ctx, &total, `SELECT COUNT(*) FROM predictions`); err != nil {
		return nil, 0, fmt.Errorf("failed to count predictions: %w", err)
	}

	offset := (params.Page - 1) * params.Limit
	query := `SELECT p.prediction_id, p.data_id, c.class_name, u.username, u.email, p.prediction_time
	          FROM predictions p
	          JOIN class c ON c.class_id = p.classification_id
	          JOIN users u ON u.id = p.user_id
	          ORDER BY p.prediction_id ASC
	          LIMIT $1 OFFSET $2`

	var rows []models.PredictionListRow
	if err := exec.SelectContext(ctx, &rows, query, params.Limit, offset); err != nil {
		return nil, 0, fmt.Errorf("failed to list predictions: %w", err)
	}

	items := make([]domain.PredictionListItem, 0, len(rows))
	for _, row := range rows {
		items = append(items, domain.PredictionListItem{
			PredictionID:   row.PredictionID,
			DataID:         row.DataID,
			Classification: row.ClassName,
			PredictedBy:    row.Username,
			Email:          row.Email,
			PredictionTime: row.PredictionTime,
		})
	}
	return items, total, nil
}

// sqlxClassificationRepository implements domain.ClassificationRepository.
type sqlxClassificationRepository struct {
	db *sqlx.DB
}

// NewSQLXClassificationRepository creates a new classification repository.
func NewSQLXClassificationRepository(db *sqlx.DB) domain.ClassificationRepository {
	return &sqlxClassificationRepository{db: db}
}

// GetByClassID reads one row of the seeded reference set.
func (r *sqlxClassificationRepository) GetByClassID(ctx context.Context, classID int) (*domain.Classification, error) {
	var row models.Classification
	query := `SELECT class_id, class_name FROM class WHERE class_id = $1`

	err := GetExecutor(ctx, r.db).GetContext(ctx, &row, query, classID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get classification: %w", err)
	}
	return &domain.Classification{ClassID: row.ClassID, ClassName: row.ClassName}, nil
}
