package main

import (
	"bookline-backend/config"
	"bookline-backend/routes"
	"bookline-backend/services"
	"bookline-backend/storage"
	"bookline-backend/ws"
)

func main() {
	cfg := config.Load()
	logger := config.NewLogger(cfg.LogLevel)

	var store storage.Storage
	if cfg.DBURL != "" {
		db, err := storage.OpenPostgres(cfg.DBURL)
		if err != nil {
			logger.Fatal().Err(err).Msg("failed to connect to database")
		}
		gs, err := storage.NewGormStorage(db)
		if err != nil {
			logger.Fatal().Err(err).Msg("failed to migrate database")
		}
		if err := gs.SeedIfEmpty(); err != nil {
			logger.Fatal().Err(err).Msg("failed to seed database")
		}
		store = gs
		logger.Info().Msg("using postgres storage")
	} else {
		store = storage.NewMemStorage()
		logger.Info().Msg("using in-memory storage")
	}

	hub := ws.NewHub(logger)

	sms := services.NewSMSService(cfg, logger)
	if !sms.Enabled() {
		logger.Warn().Msg("twilio not configured, reminders will be recorded but not delivered")
	}
	reminders := services.NewReminderService(store, sms, logger)
	if err := reminders.StartScheduler(cfg.ReminderCron); err != nil {
		logger.Fatal().Err(err).Str("cron", cfg.ReminderCron).Msg("failed to start reminder scheduler")
	}

	ai := services.NewAIService(store)

	r := routes.SetupRouter(store, hub, ai, logger)

	logger.Info().Str("port", cfg.Port).Msg("starting server")
	if err := r.Run(":" + cfg.Port); err != nil {
		logger.Fatal().Err(err).Msg("server exited")
	}
}
