package notifier

import (
	"fmt"
	"html"
	"strings"

	"github.com/shopspring/decimal"

	"FOMCPulse/internal/model"
)

// HelpText lists the bot commands.
const HelpText = `🏛 <b>FOMC Pulse</b>

/scenario  show the current scenario
/predict &lt;hike|hold|cut|-&gt; &lt;bps&gt; [confidence]  submit a prediction
/leaderboard  top players
/results  survey results
/profile  your stats
/help  this message`

var hundred = decimal.NewFromInt(100)

func tierBadge(tier string) string {
	switch tier {
	case "Excellent":
		return "🏆"
	case "Good":
		return "👍"
	default:
		return "🔁"
	}
}

func directionLabel(d *model.Direction) string {
	if d == nil {
		return "none"
	}
	return string(*d)
}

func displayName(name, userID string) string {
	if name == "" {
		name = userID
	}
	return html.EscapeString(name)
}

func percent(rate decimal.Decimal) string {
	return rate.Mul(hundred).String() + "%"
}

// FormatScenario renders the scenario card without the outcome.
func FormatScenario(sc *model.Scenario) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("🏛 <b>Rate Reaction</b> | %s | %s\n\n", html.EscapeString(sc.OccurredOn), sc.Difficulty))
	b.WriteString(html.EscapeString(sc.Narrative))
	b.WriteString("\n\nWhat does the Fed do, and how far does the 2-year yield move?\n")
	b.WriteString("Reply with /predict &lt;hike|hold|cut&gt; &lt;bps&gt;")
	return b.String()
}

// FormatResult renders the score card for a submitted prediction.
func FormatResult(sc *model.Scenario, p model.Prediction, res model.ScoreResult, rank int) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("%s <b>%d / 100</b> | %s\n\n", tierBadge(res.Tier), res.Score, res.Tier))

	mark := "❌"
	if res.DirectionCorrect {
		mark = "✅"
	}
	b.WriteString(fmt.Sprintf("%s Direction: you said %s, the Fed chose %s (+%d)\n",
		mark, directionLabel(p.GuessedDirection), sc.ActualDirection, res.DirectionPoints))
	b.WriteString(fmt.Sprintf("📈 Yield: you said %+d bps, actual %+d bps, %s (+%d)\n",
		p.GuessedYieldChangeBps, sc.ActualYieldChangeBps, res.Accuracy, res.YieldPoints))
	b.WriteString(fmt.Sprintf("🎯 Confidence: %d%%\n", p.ConfidencePercent))
	if rank > 0 {
		b.WriteString(fmt.Sprintf("🏅 Leaderboard rank: #%d\n", rank))
	}
	if sc.Context != "" {
		b.WriteString("\n<i>" + html.EscapeString(sc.Context) + "</i>")
	}
	return b.String()
}

// FormatLeaderboard renders the top entries.
func FormatLeaderboard(entries []model.LeaderboardEntry) string {
	if len(entries) == 0 {
		return "🏅 <b>Leaderboard</b>\n\nNo games played yet."
	}
	var b strings.Builder
	b.WriteString("🏅 <b>Leaderboard</b>\n\n")
	for _, e := range entries {
		b.WriteString(fmt.Sprintf("%d. %s  %d pts (%d games, avg %.1f, best %d)\n",
			e.Rank, displayName(e.DisplayName, e.UserID), e.TotalScore, e.Games, e.AverageScore(), e.BestScore))
	}
	return strings.TrimRight(b.String(), "\n")
}

// FormatAggregates renders the survey results.
func FormatAggregates(agg *model.Aggregates) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("📊 <b>Pulse survey</b> | %d responses\n\n", agg.Responses))
	b.WriteString(fmt.Sprintf("Hike %d%% | Hold %d%% | Cut %d%%\n", agg.Share.Hike, agg.Share.Hold, agg.Share.Cut))

	if len(agg.Dots) > 0 {
		b.WriteString("\n<b>Median dots</b>\n")
		for _, d := range agg.Dots {
			line := fmt.Sprintf("  %s: %s", html.EscapeString(d.Year), percent(d.Median))
			if d.SEPMedian != nil {
				line += fmt.Sprintf(" (SEP %s)", percent(*d.SEPMedian))
			}
			b.WriteString(line + "\n")
		}
	}
	if len(agg.Comments) > 0 {
		b.WriteString("\n<b>Recent comments</b>\n")
		for _, c := range agg.Comments {
			b.WriteString("  • " + html.EscapeString(c) + "\n")
		}
	}
	return strings.TrimRight(b.String(), "\n")
}

// FormatProfile renders a player's stats.
func FormatProfile(p *model.Profile) string {
	if p.Games == 0 {
		return "👤 You have not played yet. Try /scenario."
	}
	var b strings.Builder
	b.WriteString(fmt.Sprintf("👤 <b>%s</b>\n\n", displayName(p.DisplayName, p.UserID)))
	b.WriteString(fmt.Sprintf("Games: %d\n", p.Games))
	b.WriteString(fmt.Sprintf("Total: %d pts | Avg: %.1f | Best: %d\n", p.TotalScore, p.AverageScore, p.BestScore))
	b.WriteString(fmt.Sprintf("Direction calls: %d/%d (%.0f%%)\n", p.DirectionHits, p.Games, p.DirectionRate*100))
	if p.Rank > 0 {
		b.WriteString(fmt.Sprintf("Rank: #%d", p.Rank))
	}
	return strings.TrimRight(b.String(), "\n")
}
