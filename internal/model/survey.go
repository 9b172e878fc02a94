package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// DotProjection is one projected policy rate on the dot plot, as a fractional
// decimal (0.0425 means 4.25%). It never mixes with the game's basis points.
type DotProjection struct {
	Year string          `json:"year"`
	Rate decimal.Decimal `json:"rate"`
}

// SurveySubmission is a sentiment survey entry.
type SurveySubmission struct {
	ID          string          `json:"id"`
	UserID      string          `json:"user_id"`
	Outlook     *Direction      `json:"outlook,omitempty"`
	Projections []DotProjection `json:"projections,omitempty"`
	Comment     string          `json:"comment,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
}

// DirectionShare is the percentage of respondents choosing each outlook.
type DirectionShare struct {
	Hike int `json:"hike"`
	Hold int `json:"hold"`
	Cut  int `json:"cut"`
}

// DotMedian is the median projection for one year, alongside the Fed's SEP median when known.
type DotMedian struct {
	Year      string           `json:"year"`
	Median    decimal.Decimal  `json:"median"`
	SEPMedian *decimal.Decimal `json:"sep_median,omitempty"`
	Count     int              `json:"count"`
}

// TrendPoint is one period of the sentiment trend chart.
type TrendPoint struct {
	Label string         `json:"label"`
	Share DirectionShare `json:"share"`
}

// Aggregates is what the results page renders.
type Aggregates struct {
	Responses int            `json:"responses"`
	Share     DirectionShare `json:"share"`
	Dots      []DotMedian    `json:"dots"`
	Trend     []TrendPoint   `json:"trend"`
	Comments  []string       `json:"comments,omitempty"`
	Source    string         `json:"source"`
}
