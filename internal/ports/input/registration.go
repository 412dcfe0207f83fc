package input

import "context"

type RegistrationUseCase interface {
	Register(ctx context.Context, guildID, userID string) (bool, error)
	IsRegistered(ctx context.Context, guildID, userID string) (bool, error)
	RequireRegistered(ctx context.Context, guildID, userID string) error
}
