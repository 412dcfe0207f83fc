//go:build wireinject

package main

import (
	"context"

	"github.com/google/wire"
	"github.com/sirupsen/logrus"

	"eventbot/internal/adapters/discord"
	"eventbot/internal/application"
	"eventbot/internal/config"
	"eventbot/internal/ports/input"
	"eventbot/internal/ports/output"
)

func initializeBot(_ context.Context, _ *config.Config, _ *logrus.Logger) (*discord.Bot, func(), error) {
	wire.Build(
		wire.Bind(new(logrus.FieldLogger), new(*logrus.Logger)),
		provideStore,
		provideTranslator,
		provideSessionConfig,
		discord.NewSession,
		discord.NewPlatform,
		wire.Bind(new(output.Platform), new(*discord.Platform)),
		provideEventService,
		wire.Bind(new(input.EventUseCase), new(*application.EventService)),
		application.NewRegistrationService,
		wire.Bind(new(input.RegistrationUseCase), new(*application.RegistrationService)),
		provideHandlerConfig,
		discord.NewHandler,
		discord.NewBot,
	)
	return nil, nil, nil
}
