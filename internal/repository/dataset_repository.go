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

// sqlxDatasetRepository implements domain.DatasetRepository using sqlx.
type sqlxDatasetRepository struct {
	db *sqlx.DB
}

// NewSQLXDatasetRepository creates a new dataset repository.
func NewSQLXDatasetRepository(db *sqlx.DB) domain.DatasetRepository {
	return &sqlxDatasetRepository{db: db}
}

func toDomainDatasetRecord(m *models.DatasetRecord) *domain.DatasetRecord {
	if m == nil {
		return nil
	}
	return &domain.DatasetRecord{
		DataID:    m.DataID,
		StudentID: m.StudentID,
		Features: domain.FeatureVector{
			m.GeneralAppearance,
			m.MannerOfSpeaking,
			m.PhysicalCondition,
			m.MentalAlertness,
			m.SelfConfidence,
			m.AbilityToPresentIdeas,
			m.CommunicationSkills,
			m.PerformanceRating,
		},
		UploadedAt:       m.UploadedAt,
		AlreadyPredicted: m.AlreadyPredicted,
	}
}

func fromDomainDatasetRecord(d *domain.DatasetRecord) *models.DatasetRecord {
	if d == nil {
		return nil
	}
	return &models.DatasetRecord{
		DataID:                d.DataID,
		StudentID:             d.StudentID,
		GeneralAppearance:     d.Features[0],
		MannerOfSpeaking:      d.Features[1],
		PhysicalCondition:     d.Features[2],
		MentalAlertness:       d.Features[3],
		SelfConfidence:        d.Features[4],
		AbilityToPresentIdeas: d.Features[5],
		CommunicationSkills:   d.Features[6],
		PerformanceRating:     d.Features[7],
		UploadedAt:            d.UploadedAt,
		AlreadyPredicted:      d.AlreadyPredicted,
	}
}

// CreateDatasetRecord inserts an uploaded evaluation and fills in the
// generated data_id. A duplicate student_id maps to DuplicateStudent; the
// unique constraint is the authoritative check.
func (r *sqlxDatasetRepository) CreateDatasetRecord(ctx context.Context, record *domain.DatasetRecord) error {
	query := `INSERT INTO dataset
	            (student_id, general_appearance, manner_of_speaking, physical_condition,
	             mental_alertness, self_confidence, ability_to_present_ideas,
	             communication_skills, performance_rating, uploaded_at, already_predicted)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	          RETURNING data_id`

	row := fromDomainDatasetRecord(record)
	err := GetExecutor(ctx, r.db).QueryRowxContext(ctx, query,
		row.StudentID,
		row.GeneralAppearance,
		row.MannerOfSpeaking,
		row.PhysicalCondition,
		row.MentalAlertness,
		row.SelfConfidence,
		row.AbilityToPresentIdeas,
		row.CommunicationSkills,
		row.PerformanceRating,
		row.UploadedAt,
		row.AlreadyPredicted,
	).Scan(&record.DataID)
	if err != nil {
		if IsUniqueViolation(err) {
			return domain.NewDuplicateStudentError(record.StudentID)
		}
		return fmt.Errorf("failed to create dataset record: %w", err)
	}
	return nil
}

// GetByDataID retrieves one dataset record by its id.
func (r *sqlxDatasetRepository) GetByDataID(ctx context.Context, dataID int64) (*domain.DatasetRecord, error) {
	var row models.DatasetRecord
	query := `SELECT * FROM dataset WHERE data_id = $1`

	err := GetExecutor(ctx, r.db).GetContext(ctx, &row, query, dataID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get dataset record: %w", err)
	}
	return toDomainDatasetRecord(&row), nil
}

// GetByStudentID retrieves one dataset record by the unique student id.
func (r *sqlxDatasetRepository) GetByStudentID(ctx context.Context, studentID int) (*domain.DatasetRecord, error) {
	var row models.DatasetRecord
	query := `SELECT * FROM dataset WHERE student_id = $1`

	err := GetExecutor(ctx, r.db).GetContext(ctx, &row, query, studentID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get dataset record by student id: %w", err)
	}
	return toDomainDatasetRecord(&row), nil
}

// MarkPredicted flips already_predicted. The workflow calls this inside the
// same transaction as the prediction insert.
func (r *sqlxDatasetRepository) MarkPredicted(ctx context.Context, dataID int64) error {
	query := `UPDATE dataset SET already_predicted = TRUE WHERE data_id = $1`

	result, err := GetExecutor(ctx, r.db).ExecContext(ctx, query, dataID)
	if err != nil {
		return fmt.Errorf("failed to mark dataset predicted: %w", err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// ListDataset returns one page of dataset records, newest first, plus the
// total count.
func (r *sqlxDatasetRepository) ListDataset(ctx context.Context, params domain.ListParams) ([]domain.DatasetRecord, int64, error) {
	exec := GetExecutor(ctx, r.db)

	var total int64
	if err := exec.GetContext(ctx, &total, `SELECT COUNT(*) FROM dataset`); err != nil {
		return nil, 0, fmt.Errorf("failed to count dataset records: %w", err)
	}

	offset := (params.Page - 1) * params.Limit
	query := `SELECT * FROM dataset ORDER BY data_id DESC LIMIT $1 OFFSET $2`

	var rows []models.DatasetRecord
	if err := exec.SelectContext(ctx, &rows, query, params.Limit, offset); err != nil {
		return nil, 0, fmt.Errorf("failed to list dataset records: %w", err)
	}

	records := make([]domain.DatasetRecord, 0, len(rows))
	for i := range rows {
		records = append(records, *toDomainDatasetRecord(&rows[i]))
	}
	return records, total, nil
}
