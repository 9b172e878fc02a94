package recorder

import (
	"context"

	"FOMCPulse/internal/model"
)

// Recorder persists game attempts and survey submissions.
type Recorder interface {
	RecordAttempt(ctx context.Context, a *model.Attempt) error
	RecordSurvey(ctx context.Context, s *model.SurveySubmission) error
	// AttemptsByUser returns a user's attempts, newest first.
	AttemptsByUser(ctx context.Context, userID string, limit int) ([]model.Attempt, error)
	// SurveySubmissions returns submissions, newest first.
	SurveySubmissions(ctx context.Context, limit int) ([]model.SurveySubmission, error)
	Close() error
}
