package survey

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"FOMCPulse/internal/model"
)

// ResultsProvider supplies the aggregated survey results.
type ResultsProvider interface {
	FetchAggregates(ctx context.Context) (*model.Aggregates, error)
}

// SEPMedians are the Fed's published median projections used alongside the
// crowd's dots.
var SEPMedians = map[string]decimal.Decimal{
	"2025":       decimal.RequireFromString("0.03875"),
	"2026":       decimal.RequireFromString("0.03375"),
	"2027":       decimal.RequireFromString("0.03125"),
	"Longer run": decimal.RequireFromString("0.03000"),
}

// MockTrend is the built-in sentiment trend series.
var MockTrend = []model.TrendPoint{
	{Label: "Apr", Share: model.DirectionShare{Hike: 12, Hold: 70, Cut: 18}},
	{Label: "May", Share: model.DirectionShare{Hike: 10, Hold: 66, Cut: 24}},
	{Label: "Jun", Share: model.DirectionShare{Hike: 8, Hold: 61, Cut: 31}},
	{Label: "Jul", Share: model.DirectionShare{Hike: 6, Hold: 52, Cut: 42}},
	{Label: "Aug", Share: model.DirectionShare{Hike: 5, Hold: 38, Cut: 57}},
	{Label: "Sep", Share: model.DirectionShare{Hike: 4, Hold: 29, Cut: 67}},
}

// StaticResults serves the built-in mock aggregates.
type StaticResults struct{}

func (StaticResults) FetchAggregates(_ context.Context) (*model.Aggregates, error) {
	dots := []model.DotProjection{
		{Year: "2025", Rate: decimal.RequireFromString("0.04125")},
		{Year: "2025", Rate: decimal.RequireFromString("0.03875")},
		{Year: "2025", Rate: decimal.RequireFromString("0.03875")},
		{Year: "2026", Rate: decimal.RequireFromString("0.03625")},
		{Year: "2026", Rate: decimal.RequireFromString("0.03375")},
		{Year: "2026", Rate: decimal.RequireFromString("0.03125")},
		{Year: "2027", Rate: decimal.RequireFromString("0.03125")},
		{Year: "2027", Rate: decimal.RequireFromString("0.02875")},
		{Year: "Longer run", Rate: decimal.RequireFromString("0.03000")},
	}
	trend := make([]model.TrendPoint, len(MockTrend))
	copy(trend, MockTrend)
	return &model.Aggregates{
		Responses: 1247,
		Share:     model.DirectionShare{Hike: 4, Hold: 29, Cut: 67},
		Dots:      DotMedians(dots, SEPMedians),
		Trend:     trend,
		Comments: []string{
			"Labor market cooling faster than the dots imply.",
			"Sticky services inflation keeps them on hold longer.",
		},
		Source: "mock",
	}, nil
}

// SubmissionSource lists recorded survey submissions, newest first.
type SubmissionSource interface {
	SurveySubmissions(ctx context.Context, limit int) ([]model.SurveySubmission, error)
}

// StoreResults aggregates recorded submissions. The trend chart has no
// recorded history, so it keeps the built-in series.
type StoreResults struct {
	Source       SubmissionSource
	Limit        int
	CommentLimit int
}

func (r *StoreResults) FetchAggregates(ctx context.Context) (*model.Aggregates, error) {
	limit := r.Limit
	if limit <= 0 {
		limit = 10000
	}
	subs, err := r.Source.SurveySubmissions(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("load submissions: %w", err)
	}
	return Aggregate(subs, r.CommentLimit), nil
}

// Aggregate computes shares, dot medians and recent comments from submissions.
func Aggregate(subs []model.SurveySubmission, commentLimit int) *model.Aggregates {
	if commentLimit <= 0 {
		commentLimit = 5
	}
	var hike, hold, cut int
	var dots []model.DotProjection
	var comments []string
	for _, s := range subs {
		if s.Outlook != nil {
			switch *s.Outlook {
			case model.DirectionHike:
				hike++
			case model.DirectionHold:
				hold++
			case model.DirectionCut:
				cut++
			}
		}
		dots = append(dots, s.Projections...)
		if s.Comment != "" && len(comments) < commentLimit {
			comments = append(comments, s.Comment)
		}
	}
	trend := make([]model.TrendPoint, len(MockTrend))
	copy(trend, MockTrend)
	return &model.Aggregates{
		Responses: hike + hold + cut,
		Share:     Shares(hike, hold, cut),
		Dots:      DotMedians(dots, SEPMedians),
		Trend:     trend,
		Comments:  comments,
		Source:    "recorded",
	}
}
