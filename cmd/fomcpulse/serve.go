package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"FOMCPulse/internal/api"
	"FOMCPulse/internal/bot"
	"FOMCPulse/internal/game"
	"FOMCPulse/internal/notifier"
	"FOMCPulse/internal/scheduler"
	"FOMCPulse/internal/survey"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API, Telegram bot and scheduled posts",
	RunE:  runServe,
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	log.Info().Msg("FOMCPulse starting")

	// Context for graceful shutdown
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	provider, rotator, err := buildProvider(cfg)
	if err != nil {
		return err
	}
	log.Info().Str("source", provider.Name()).Msg("scenario source")

	rec := buildRecorder(ctx, cfg)
	defer rec.Close()

	board, closeBoard := buildBoard(ctx, cfg)
	defer closeBoard()

	results := buildResults(rec)
	gameSvc := game.NewService(provider, rec, board)
	surveySvc := survey.NewService(rec)

	if cfg.TelegramEnabled() {
		tn := notifier.NewTelegramNotifier(cfg.Telegram.BotToken, cfg.Telegram.ChatID, cfg.Proxy)

		sched := scheduler.NewScheduler(ctx, rotator, board, results, tn)
		if err := sched.RegisterAll(cfg.Schedule.RotateCron, cfg.Schedule.DigestCron); err != nil {
			return err
		}
		sched.Start()
		defer sched.Stop()

		go tn.StartPolling(ctx, bot.New(gameSvc, results).Handle)
		log.Info().Msg("telegram polling started")

		if os.Getenv("RUN_ON_START") == "true" {
			log.Info().Msg("RUN_ON_START enabled, posting digest now")
			go sched.RunDigestNow()
		}
	} else {
		log.Info().Msg("telegram disabled, bot and scheduled posts are off")
	}

	srv := api.NewServer(gameSvc, surveySvc, results, cfg.Server.AllowedOrigins)
	if err := srv.Run(ctx, cfg.Server.Addr); err != nil {
		return err
	}
	log.Info().Msg("FOMCPulse stopped")
	return nil
}
