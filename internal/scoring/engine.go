// Package scoring grades Rate Reaction Game predictions. Every function here
// is pure: it reads only its arguments and is safe for concurrent use.
package scoring

import (
	"math"

	"FOMCPulse/internal/model"
)

// DirectionScore returns DirectionPoints when guessed matches actual and 0
// otherwise. A nil guess is a miss.
func DirectionScore(guessed *model.Direction, actual model.Direction) int {
	if guessed != nil && *guessed == actual {
		return DirectionPoints
	}
	return 0
}

// YieldScore scores the absolute basis-point miss against the fixed bands.
func YieldScore(guessedBps, actualBps int) int {
	return yieldBand(absDiff(guessedBps, actualBps)).Points
}

// Score returns the total 5..100 score of a guess against s.
func Score(guessed *model.Direction, guessedBps int, s model.Scenario) int {
	return DirectionScore(guessed, s.ActualDirection) + YieldScore(guessedBps, s.ActualYieldChangeBps)
}

// AccuracyLabel describes a basis-point miss for display.
func AccuracyLabel(diffBps int) string {
	return yieldBand(absDiff(diffBps, 0)).Label
}

// TierFor maps a total score to its badge.
func TierFor(score int) string {
	for _, t := range Tiers {
		if score >= t.MinScore {
			return t.Label
		}
	}
	return DefaultTier
}

// Evaluate computes the full score breakdown of p against s.
func Evaluate(p model.Prediction, s model.Scenario) model.ScoreResult {
	diff := absDiff(p.GuessedYieldChangeBps, s.ActualYieldChangeBps)
	band := yieldBand(diff)
	dir := DirectionScore(p.GuessedDirection, s.ActualDirection)
	total := dir + band.Points

	return model.ScoreResult{
		Score:            total,
		DirectionPoints:  dir,
		YieldPoints:      band.Points,
		DirectionCorrect: dir > 0,
		YieldDiffBps:     diff,
		Accuracy:         band.Label,
		Tier:             TierFor(total),
	}
}

// absDiff returns |a-b|, saturating at math.MaxInt.
func absDiff(a, b int) int {
	if a < b {
		a, b = b, a
	}
	// Unsigned subtraction is exact here since the true difference fits in a uint.
	d := uint(a) - uint(b)
	if d > math.MaxInt {
		return math.MaxInt
	}
	return int(d)
}
