package survey

import (
	"sort"

	"github.com/shopspring/decimal"

	"FOMCPulse/internal/model"
)

var two = decimal.NewFromInt(2)

// Median returns the median of rates; an even count averages the middle pair.
func Median(rates []decimal.Decimal) decimal.Decimal {
	if len(rates) == 0 {
		return decimal.Zero
	}
	sorted := make([]decimal.Decimal, len(rates))
	copy(sorted, rates)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].LessThan(sorted[j]) })

	mid := len(sorted) / 2
	if len(sorted)%2 == 1 {
		return sorted[mid]
	}
	return sorted[mid-1].Add(sorted[mid]).Div(two)
}

// DotMedians groups projections by year and returns per-year medians sorted by
// year. SEP medians are attached where sep has an entry for the year.
func DotMedians(projections []model.DotProjection, sep map[string]decimal.Decimal) []model.DotMedian {
	byYear := make(map[string][]decimal.Decimal)
	for _, p := range projections {
		byYear[p.Year] = append(byYear[p.Year], p.Rate)
	}

	years := make([]string, 0, len(byYear))
	for y := range byYear {
		years = append(years, y)
	}
	sort.Strings(years)

	out := make([]model.DotMedian, 0, len(years))
	for _, y := range years {
		dm := model.DotMedian{Year: y, Median: Median(byYear[y]), Count: len(byYear[y])}
		if v, ok := sep[y]; ok {
			v := v
			dm.SEPMedian = &v
		}
		out = append(out, dm)
	}
	return out
}

// Shares converts outlook counts into whole percentages. Rounding leftovers go
// to the largest bucket so the shares always sum to 100 when there is data.
func Shares(hike, hold, cut int) model.DirectionShare {
	total := hike + hold + cut
	if total == 0 {
		return model.DirectionShare{}
	}
	s := model.DirectionShare{
		Hike: hike * 100 / total,
		Hold: hold * 100 / total,
		Cut:  cut * 100 / total,
	}
	rest := 100 - s.Hike - s.Hold - s.Cut
	switch {
	case hike >= hold && hike >= cut:
		s.Hike += rest
	case hold >= cut:
		s.Hold += rest
	default:
		s.Cut += rest
	}
	return s
}
