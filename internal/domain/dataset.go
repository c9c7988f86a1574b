package domain

import (
	"context"
	"time"
)

// FeatureCount is the fixed width of an evaluation record. The order must
// match the order the model was trained with.
const FeatureCount = 8

// FeatureNames lists the evaluation scores in canonical (training) order.
var FeatureNames = [FeatureCount]string{
	"general_appearance",
	"manner_of_speaking",
	"physical_condition",
	"mental_alertness",
	"self_confidence",
	"ability_to_present_ideas",
	"communication_skills",
	"performance_rating",
}

// FeatureVector holds the 8 integer scores in canonical order.
type FeatureVector [FeatureCount]int

// DatasetRecord is one uploaded student evaluation. AlreadyPredicted flips
// true exactly once, set by the prediction workflow, and is never reverted.
type DatasetRecord struct {
	DataID           int64
	StudentID        int
	Features         FeatureVector
	UploadedAt       time.Time
	AlreadyPredicted bool
}

// ListParams carries pagination for dataset and prediction listings.
type ListParams struct {
	Page  int
	Limit int
}

// DatasetRepository defines the interface for dataset persistence.
type DatasetRepository interface {
	CreateDatasetRecord(ctx context.Context, record *DatasetRecord) error
	GetByDataID(ctx context.Context, dataID int64) (*DatasetRecord, error)
	GetByStudentID(ctx context.Context, studentID int) (*DatasetRecord, error)
	// MarkPredicted flips already_predicted. Must run inside the same
	// transaction as the prediction insert.
	MarkPredicted(ctx context.Context, dataID int64) error
	ListDataset(ctx context.Context, params ListParams) ([]DatasetRecord, int64, error)
}
