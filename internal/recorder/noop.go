package recorder

import (
	"context"

	"FOMCPulse/internal/model"
)

// NoopRecorder is a no-op implementation used when no database is configured.
type NoopRecorder struct{}

func NewNoopRecorder() *NoopRecorder { return &NoopRecorder{} }

func (n *NoopRecorder) RecordAttempt(_ context.Context, _ *model.Attempt) error         { return nil }
func (n *NoopRecorder) RecordSurvey(_ context.Context, _ *model.SurveySubmission) error { return nil }
func (n *NoopRecorder) AttemptsByUser(_ context.Context, _ string, _ int) ([]model.Attempt, error) {
	return nil, nil
}
func (n *NoopRecorder) SurveySubmissions(_ context.Context, _ int) ([]model.SurveySubmission, error) {
	return nil, nil
}
func (n *NoopRecorder) Close() error { return nil }
