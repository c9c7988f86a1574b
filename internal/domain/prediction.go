package domain

import (
	"context"
	"time"
)

// Classification is a row of the static reference set seeded once at
// migration time (1=LessEmployable, 2=Employable) and immutable thereafter.
type Classification struct {
	ClassID   int
	ClassName string
}

// Prediction is the immutable outcome of running one dataset record through
// the classifier. A dataset record has at most one prediction, enforced by a
// uniqueness constraint on data_id in addition to the workflow pre-check.
type Prediction struct {
	PredictionID     int64
	DataID           int64
	ClassificationID int
	UserID           string
	PredictionTime   time.Time
}

// PredictionListItem is a prediction joined with its classification name and
// the predictor's identity for listing.
type PredictionListItem struct {
	PredictionID   int64
	DataID         int64
	Classification string
	PredictedBy    string
	Email          string
	PredictionTime time.Time
}

// PredictionRepository defines the interface for prediction persistence.
type PredictionRepository interface {
	CreatePrediction(ctx context.Context, prediction *Prediction) error
	GetByDataID(ctx context.Context, dataID int64) (*Prediction, error)
	ListPredictions(ctx context.Context, params ListParams) ([]PredictionListItem, int64, error)
}

// ClassificationRepository reads the seeded reference set.
type ClassificationRepository interface {
	GetByClassID(ctx context.Context, classID int) (*Classification, error)
}
