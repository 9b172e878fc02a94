package scoring

// YieldBand awards points when the yield miss is at most MaxDiffBps.
type YieldBand struct {
	MaxDiffBps int
	Points     int
	Label      string
}

// YieldBands are checked in ascending order; the first band that fits wins,
// so a boundary value belongs to the tighter band.
var YieldBands = []YieldBand{
	{5, 50, "Perfect!"},
	{10, 35, "Very close"},
	{20, 15, "Close"},
}

// MissedBand applies when the miss exceeds every band.
var MissedBand = YieldBand{MaxDiffBps: -1, Points: 5, Label: "Missed"}

// DirectionPoints is awarded for calling the policy action correctly.
const DirectionPoints = 50

// MaxScore is the best achievable total.
const MaxScore = 100

// Tiers maps a total score to a badge, highest first.
var Tiers = []struct {
	MinScore int
	Label    string
}{
	{80, "Excellent"},
	{50, "Good"},
}

// DefaultTier is the badge for scores below every tier.
const DefaultTier = "Try Again"

func yieldBand(diff int) YieldBand {
	for _, b := range YieldBands {
		if diff <= b.MaxDiffBps {
			return b
		}
	}
	return MissedBand
}
