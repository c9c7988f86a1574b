package dto

import "time"

// Pagination defines parameters for paginated requests.
type Pagination struct {
	Page  int `query:"page"`
	Limit int `query:"limit"`
}

// UploadRequest is the body for POST /upload: one fixed-schema student
// evaluation. Features are in canonical training order.
type UploadRequest struct {
	StudentID int   `json:"studentId"`
	Features  []int `json:"features"`
}

// UploadResponse acknowledges a stored evaluation.
type UploadResponse struct {
	Title   string `json:"title"`
	Message string `json:"message"`
	DataID  int64  `json:"data_id"`
}

// PredictRequest is the body for POST /predict.
type PredictRequest struct {
	DatasetID int64 `json:"datasetId"`
}

// PredictionResponse is the outcome of a classification run.
type PredictionResponse struct {
	Title          string  `json:"title"`
	Body           string  `json:"body"`
	PredictionID   int64   `json:"prediction_id"`
	Prediction     string  `json:"prediction"`
	PredictionTime float64 `json:"prediction_time"` // inference duration, seconds
}

// DatasetRecordResponse is one dataset row in GET /dataset.
type DatasetRecordResponse struct {
	DataID                int64     `json:"data_id"`
	StudentID             int       `json:"student_id"`
	GeneralAppearance     int       `json:"general_appearance"`
	MannerOfSpeaking      int       `json:"manner_of_speaking"`
	PhysicalCondition     int       `json:"physical_condition"`
	MentalAlertness       int       `json:"mental_alertness"`
	SelfConfidence        int       `json:"self_confidence"`
	AbilityToPresentIdeas int       `json:"ability_to_present_ideas"`
	CommunicationSkills   int       `json:"communication_skills"`
	PerformanceRating     int       `json:"performance_rating"`
	UploadedAt            time.Time `json:"uploaded_at"`
	AlreadyPredicted      bool      `json:"already_predicted"`
}

// DatasetListResponse is the paginated shape for GET /dataset.
type DatasetListResponse struct {
	TotalItems int64                   `json:"total_items"`
	Datasets   []DatasetRecordResponse `json:"datasets"`
}

// PredictionListItemResponse is one row in GET /predictions.
type PredictionListItemResponse struct {
	PredictionID   int64     `json:"prediction_id"`
	Classification string    `json:"classification"`
	DatasetID      int64     `json:"dataset_id"`
	PredictedBy    string    `json:"predicted_by"`
	Email          string    `json:"email"`
	PredictionTime time.Time `json:"prediction_time"`
}

// PredictionListResponse is the paginated shape for GET /predictions.
type PredictionListResponse struct {
	TotalItems  int64                        `json:"total_items"`
	Predictions []PredictionListItemResponse `json:"predictions"`
}
