package domain

import (
	"time"
)

// FormAnalysis is the structured result attached to an uploaded exercise video.
type FormAnalysis struct {
	ExerciseType        string    `json:"exercise_type" bson:"exerciseType"`
	AnalyzedAt          time.Time `json:"analysis_timestamp" bson:"analyzedAt"`
	ConfidenceScore     float64   `json:"confidence_score" bson:"confidenceScore"`
	FormRating          string    `json:"form_rating" bson:"formRating"`
	Recommendations     []string  `json:"recommendations" bson:"recommendations"`
	AreasForImprovement []string  `json:"areas_for_improvement" bson:"areasForImprovement"`
}

// VideoAnalysis stores metadata about a video uploaded by a user together
// with its analysis. The video itself resides in object storage.
type VideoAnalysis struct {
	ID           string       `json:"id"`
	UserID       string       `json:"user_id"`
	ObjectKey    string       `json:"-"`
	FileName     string       `json:"video_filename"`
	ContentType  string       `json:"content_type"`
	Size         int64        `json:"size"`
	ExerciseType string       `json:"exercise_type"`
	Analysis     FormAnalysis `json:"analysis_result"`
	Feedback     string       `json:"feedback"`
	CreatedAt    time.Time    `json:"created_at"`
}
