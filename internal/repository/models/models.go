package models

import (
	"time"
)

// User is the row shape of the users table.
type User struct {
	ID           string    `db:"id"`
	Username     string    `db:"username"`
	Email        string    `db:"email"`
	PasswordHash string    `db:"password_hash"`
	Verified     bool      `db:"verified"`
	CreatedAt    time.Time `db:"created_at"`
}

// RefreshToken is the row shape of the refresh_tokens table. Rows are only
// ever inserted or blocklisted, never deleted.
type RefreshToken struct {
	ID          string    `db:"id"`
	UserID      string    `db:"user_id"`
	Token       string    `db:"token"`
	Blocklisted bool      `db:"blocklisted"`
	CreatedAt   time.Time `db:"created_at"`
}

// BlocklistEntry is the row shape of the access_token_blocklist table.
type BlocklistEntry struct {
	JTI       string    `db:"jti"`
	CreatedAt time.Time `db:"created_at"`
}

// DatasetRecord is the row shape of the dataset table. The eight feature
// columns are stored in canonical training order.
type DatasetRecord struct {
	DataID                int64     `db:"data_id"`
	StudentID             int       `db:"student_id"`
	GeneralAppearance     int       `db:"general_appearance"`
	MannerOfSpeaking      int       `db:"manner_of_speaking"`
	PhysicalCondition     int       `db:"physical_condition"`
	MentalAlertness       int       `db:"mental_alertness"`
	SelfConfidence        int       `db:"self_confidence"`
	AbilityToPresentIdeas int       `db:"ability_to_present_ideas"`
	CommunicationSkills   int       `db:"communication_skills"`
	PerformanceRating     int       `db:"performance_rating"`
	UploadedAt            time.Time `db:"uploaded_at"`
	AlreadyPredicted      bool      `db:"already_predicted"`
}

// Classification is the row shape of the class reference table.
type Classification struct {
	ClassID   int    `db:"class_id"`
	ClassName string `db:"class_name"`
}

// Prediction is the row shape of the predictions table.
type Prediction struct {
	PredictionID     int64     `db:"prediction_id"`
	DataID           int64     `db:"data_id"`
	ClassificationID int       `db:"classification_id"`
	UserID           string    `db:"user_id"`
	PredictionTime   time.Time `db:"prediction_time"`
}

// PredictionListRow joins predictions with the classification name and the
// predictor's identity for listings.
type PredictionListRow struct {
	PredictionID   int64     `db:"prediction_id"`
	DataID         int64     `db:"data_id"`
	ClassName      string    `db:"class_name"`
	Username       string    `db:"username"`
	Email          string    `db:"email"`
	PredictionTime time.Time `db:"prediction_time"`
}
