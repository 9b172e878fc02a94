// Package bot turns chat commands into game, leaderboard and survey actions.
package bot

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/rs/zerolog/log"

	"FOMCPulse/internal/game"
	"FOMCPulse/internal/model"
	"FOMCPulse/internal/notifier"
	"FOMCPulse/internal/survey"
)

const leaderboardSize = 10

const predictUsage = "Usage: /predict &lt;hike|hold|cut|-&gt; &lt;bps&gt; [confidence]\nExample: /predict hike 15 70"

// Bot answers chat commands.
type Bot struct {
	Game    *game.Service
	Results survey.ResultsProvider
}

func New(g *game.Service, results survey.ResultsProvider) *Bot {
	return &Bot{Game: g, Results: results}
}

// Handle processes one message and returns the reply text.
func (b *Bot) Handle(ctx context.Context, msg notifier.Message) string {
	fields := strings.Fields(msg.Text)
	if len(fields) == 0 {
		return ""
	}
	cmd := strings.ToLower(fields[0])
	if i := strings.IndexByte(cmd, '@'); i >= 0 {
		cmd = cmd[:i]
	}
	args := fields[1:]

	switch cmd {
	case "/scenario", "/start":
		return b.scenario(ctx)
	case "/predict":
		return b.predict(ctx, msg, args)
	case "/leaderboard", "/top":
		return b.leaderboard(ctx)
	case "/results":
		return b.results(ctx)
	case "/profile", "/me":
		return b.profile(ctx, msg)
	default:
		return notifier.HelpText
	}
}

func (b *Bot) scenario(ctx context.Context) string {
	sc, err := b.Game.Scenarios.FetchScenario(ctx)
	if err != nil {
		log.Error().Err(err).Msg("bot: fetch scenario")
		return "⚠️ Scenario unavailable, try again later."
	}
	return notifier.FormatScenario(sc)
}

func (b *Bot) predict(ctx context.Context, msg notifier.Message, args []string) string {
	sess, err := parsePrediction(args)
	if err != nil {
		return "⚠️ " + err.Error() + "\n" + predictUsage
	}
	submitted := sess.Prediction
	_, out, err := b.Game.PlaySession(ctx, player(msg), sess)
	if err != nil {
		log.Error().Err(err).Str("user", msg.UserID).Msg("bot: play")
		return "⚠️ Could not score your prediction, try again later."
	}
	return notifier.FormatResult(&out.Scenario, submitted, out.Result, out.Rank)
}

func (b *Bot) leaderboard(ctx context.Context) string {
	entries, err := b.Game.Board.Top(ctx, leaderboardSize)
	if err != nil {
		log.Error().Err(err).Msg("bot: leaderboard")
		return "⚠️ Leaderboard unavailable."
	}
	return notifier.FormatLeaderboard(entries)
}

func (b *Bot) results(ctx context.Context) string {
	agg, err := b.Results.FetchAggregates(ctx)
	if err != nil {
		log.Error().Err(err).Msg("bot: results")
		return "⚠️ Results unavailable."
	}
	return notifier.FormatAggregates(agg)
}

func (b *Bot) profile(ctx context.Context, msg notifier.Message) string {
	p, err := b.Game.Profile(ctx, player(msg).UserID)
	if err != nil {
		log.Error().Err(err).Str("user", msg.UserID).Msg("bot: profile")
		return "⚠️ Profile unavailable."
	}
	if p.DisplayName == "" {
		p.DisplayName = msg.Username
	}
	return notifier.FormatProfile(p)
}

func player(msg notifier.Message) model.Player {
	id := msg.UserID
	if id == "" {
		id = msg.ChatID
	}
	return model.Player{UserID: "tg:" + id, DisplayName: msg.Username}
}

// parsePrediction reads "<direction|-> <bps> [confidence]" into a session.
func parsePrediction(args []string) (game.Session, error) {
	sess := game.NewSession("")
	if len(args) < 2 || len(args) > 3 {
		return sess, fmt.Errorf("expected a direction and a yield change")
	}

	if args[0] != "-" {
		d, err := model.ParseDirection(args[0])
		if err != nil {
			return sess, fmt.Errorf("direction must be hike, hold, cut or -")
		}
		sess = sess.SelectDirection(d)
	}

	bps, err := strconv.Atoi(strings.TrimSuffix(strings.ToLower(args[1]), "bps"))
	if err != nil {
		return sess, fmt.Errorf("yield change must be a whole number of bps")
	}
	if bps < -game.MaxYieldGuessBps || bps > game.MaxYieldGuessBps {
		return sess, fmt.Errorf("yield change must be between %d and %d bps", -game.MaxYieldGuessBps, game.MaxYieldGuessBps)
	}
	sess = sess.SetYield(bps)

	if len(args) == 3 {
		c, err := strconv.Atoi(strings.TrimSuffix(args[2], "%"))
		if err != nil || c < 0 || c > 100 {
			return sess, fmt.Errorf("confidence must be between 0 and 100")
		}
		sess = sess.SetConfidence(c)
	}
	return sess, nil
}
