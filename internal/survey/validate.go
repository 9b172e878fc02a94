package survey

import (
	"strings"

	"FOMCPulse/internal/model"
)

// ValidationError carries the message shown to the user for a rejected field.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string { return e.Field + ": " + e.Message }

// Kind separates outlook submissions from comment-only submissions.
type Kind int

const (
	KindOutlook Kind = iota
	KindComment
)

// Validate applies the non-null checks a submission must pass.
func Validate(kind Kind, s *model.SurveySubmission) error {
	if strings.TrimSpace(s.UserID) == "" {
		return &ValidationError{Field: "user_id", Message: "Please tell us who you are"}
	}
	switch kind {
	case KindComment:
		if strings.TrimSpace(s.Comment) == "" {
			return &ValidationError{Field: "comment", Message: "Please enter a comment"}
		}
		return nil
	}

	if s.Outlook == nil || !s.Outlook.Valid() {
		return &ValidationError{Field: "outlook", Message: "Please select your rate outlook"}
	}
	for _, p := range s.Projections {
		if strings.TrimSpace(p.Year) == "" || p.Rate.IsNegative() {
			return &ValidationError{Field: "projections", Message: "Each projection needs a year and a non-negative rate"}
		}
	}
	return nil
}
