package survey

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"FOMCPulse/internal/model"
)

// Store persists accepted submissions.
type Store interface {
	RecordSurvey(ctx context.Context, s *model.SurveySubmission) error
}

// Service validates and records survey submissions.
type Service struct {
	Store Store
	Now   func() time.Time
}

func NewService(store Store) *Service {
	return &Service{Store: store, Now: time.Now}
}

// Submit validates s, stamps it with an id and time, and records it.
func (svc *Service) Submit(ctx context.Context, kind Kind, s model.SurveySubmission) (*model.SurveySubmission, error) {
	if err := Validate(kind, &s); err != nil {
		return nil, err
	}
	s.ID = uuid.NewString()
	s.CreatedAt = svc.Now().UTC()
	if kind == KindComment {
		s.Outlook = nil
		s.Projections = nil
	}
	if err := svc.Store.RecordSurvey(ctx, &s); err != nil {
		return nil, fmt.Errorf("record survey: %w", err)
	}
	log.Info().Str("user", s.UserID).Str("id", s.ID).Int("dots", len(s.Projections)).Msg("survey submission recorded")
	return &s, nil
}
