package main

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"FOMCPulse/internal/model"
	"FOMCPulse/internal/scoring"
)

var (
	scoreDirection  string
	scoreBps        int
	scoreConfidence int
	scoreScenario   string
)

var scoreCmd = &cobra.Command{
	Use:   "score",
	Short: "Score one prediction against a scenario",
	Example: `  fomcpulse score --direction hike --bps 25
  fomcpulse score --bps -10 --scenario fomc-2024-09`,
	Args: cobra.NoArgs,
	RunE: runScore,
}

var scenariosCmd = &cobra.Command{
	Use:   "scenarios",
	Short: "List the scenario catalog",
	Args:  cobra.NoArgs,
	RunE:  runScenarios,
}

func init() {
	f := scoreCmd.Flags()
	f.StringVarP(&scoreDirection, "direction", "d", "", "hike, hold or cut (omit to leave unset)")
	f.IntVarP(&scoreBps, "bps", "b", 0, "predicted 2-year yield change in basis points")
	f.IntVar(&scoreConfidence, "confidence", model.DefaultConfidence, "confidence percent, informational only")
	f.StringVarP(&scoreScenario, "scenario", "s", "", "scenario id (default: the active scenario)")
}

func runScore(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	provider, _, err := buildProvider(cfg)
	if err != nil {
		return err
	}
	sc, err := findScenario(cmd.Context(), provider, scoreScenario)
	if err != nil {
		return err
	}

	p := model.Prediction{GuessedYieldChangeBps: scoreBps, ConfidencePercent: scoreConfidence}
	if scoreDirection != "" {
		d, err := model.ParseDirection(scoreDirection)
		if err != nil {
			return err
		}
		p.GuessedDirection = &d
	}
	printScoreCard(cmd.OutOrStdout(), sc, p, scoring.Evaluate(p, *sc))
	return nil
}

func printScoreCard(out io.Writer, sc *model.Scenario, p model.Prediction, res model.ScoreResult) {
	guess := "none"
	if p.GuessedDirection != nil {
		guess = string(*p.GuessedDirection)
	}
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "Scenario\t%s (%s, %s)\n", sc.ID, sc.OccurredOn, sc.Difficulty)
	fmt.Fprintf(w, "Direction\t%s vs %s\t+%d\n", guess, sc.ActualDirection, res.DirectionPoints)
	fmt.Fprintf(w, "Yield\t%+d vs %+d bps, %s\t+%d\n", p.GuessedYieldChangeBps, sc.ActualYieldChangeBps, res.Accuracy, res.YieldPoints)
	fmt.Fprintf(w, "Confidence\t%d%%\n", p.ConfidencePercent)
	fmt.Fprintf(w, "Score\t%d / %d\t%s\n", res.Score, scoring.MaxScore, res.Tier)
	w.Flush()
}

func runScenarios(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	provider, _, err := buildProvider(cfg)
	if err != nil {
		return err
	}
	list, err := provider.ListScenarios(cmd.Context())
	if err != nil {
		return err
	}
	active, err := provider.FetchScenario(cmd.Context())
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "\tID\tDATE\tDIFFICULTY")
	for _, sc := range list {
		mark := ""
		if sc.ID == active.ID {
			mark = "*"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", mark, sc.ID, sc.OccurredOn, sc.Difficulty)
	}
	return w.Flush()
}
