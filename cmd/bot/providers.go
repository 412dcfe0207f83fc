package main

import (
	"context"

	"github.com/sirupsen/logrus"

	"eventbot/internal/adapters/discord"
	"eventbot/internal/application"
	"eventbot/internal/config"
	"eventbot/internal/infrastructure/database"
	"eventbot/internal/infrastructure/i18n"
	"eventbot/internal/ports/output"
)

func provideStore(ctx context.Context, cfg *config.Config, logger logrus.FieldLogger) (output.Store, func(), error) {
	store, err := database.Open(ctx, cfg.StoreURL(), logger)
	if err != nil {
		return nil, nil, err
	}
	cleanup := func() {
		if err := store.Close(); err != nil {
			logger.WithError(err).Error("failed to close store")
		}
	}
	return store, cleanup, nil
}

func provideTranslator(cfg *config.Config, logger logrus.FieldLogger) output.T {
	return i18n.NewTranslator(cfg.Locale, logger)
}

func provideSessionConfig(cfg *config.Config) discord.SessionConfig {
	return discord.SessionConfig{Token: cfg.Token}
}

func provideEventService(store output.Store, platform output.Platform, t output.T, cfg *config.Config) *application.EventService {
	return application.NewEventService(store, platform, t, cfg.Locale)
}

func provideHandlerConfig(cfg *config.Config) discord.HandlerConfig {
	return discord.HandlerConfig{
		Prefix:    cfg.Prefix,
		AdminRole: cfg.AdminRole,
		Locale:    cfg.Locale,
	}
}
