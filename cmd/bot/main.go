package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"

	"fleet-survey-bot/internal/api"
	"fleet-survey-bot/internal/auth"
	"fleet-survey-bot/internal/config"
	"fleet-survey-bot/internal/scheduler"
	"fleet-survey-bot/internal/storage"
	"fleet-survey-bot/internal/survey"
	"fleet-survey-bot/internal/telegram"
)

func main() {
	if err := godotenv.Load(".env"); err != nil {
		log.Warn().Err(err).Msg(".env file not found")
	}

	cfg := config.New()

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	var adminRepo auth.Repository
	if cfg.AdminsFilePath != "" {
		repo, err := auth.NewFileRepository(cfg.AdminsFilePath)
		if err != nil {
			log.Error().Err(err).Msg("failed to init admins repo")
		} else {
			adminRepo = repo
		}
	}
	adminSvc, err := auth.NewWithRepo(adminRepo, cfg.AdminUserIDs)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to init admin service")
	}

	var recorder storage.Recorder
	if cfg.ResponsesFilePath != "" {
		fr, err := storage.NewFileRecorder(cfg.ResponsesFilePath)
		if err != nil {
			log.Error().Err(err).Msg("failed to init file recorder")
		} else {
			recorder = fr
		}
	}

	var sink storage.Sink
	var sinkReader storage.Reader
	if cfg.GoogleSheetID != "" && cfg.GoogleServiceAccountJSON != "" {
		ss, err := storage.NewSheetsSink(ctx, cfg.GoogleSheetID, cfg.GoogleServiceAccountJSON)
		if err != nil {
			log.Error().Err(err).Msg("Google Sheets init failed; responses will go to the local file")
		} else {
			sink = ss
			sinkReader = ss
		}
	} else {
		log.Warn().Msg("Google Sheets is not fully configured; responses will not be saved to Sheets")
	}

	walker := survey.NewWalker(survey.DefaultSchedule())
	store := survey.NewStore()

	bot, err := telegram.New(
		cfg.TelegramBotToken,
		walker,
		store,
		sink,
		sinkReader,
		recorder,
		adminSvc,
		cfg.MessageParseMode,
		cfg.DefaultLocale,
	)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to create bot")
	}

	sched := scheduler.New()
	sched.SetReportFunction(bot.SendDailyReport)
	if err := sched.Start(); err != nil {
		log.Error().Err(err).Msg("failed to start scheduler")
	}
	defer sched.Stop()

	srv := api.New(cfg.ListenAddr, cfg.BaseURL, bot)

	if cfg.BaseURL != "" {
		// Webhook mode: updates arrive over HTTP only.
		url, err := bot.RegisterWebhook(cfg.BaseURL)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to register webhook")
		}
		log.Info().Str("url", url).Msg("webhook registered")
		if err := srv.Start(); err != nil {
			log.Fatal().Err(err).Msg("HTTP server failed")
		}
		return
	}

	// Polling mode for local runs; the HTTP server still provides /healthz.
	go func() {
		if err := srv.Start(); err != nil {
			log.Error().Err(err).Msg("HTTP server failed")
		}
	}()
	bot.Start(ctx)
}
