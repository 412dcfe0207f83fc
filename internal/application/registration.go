package application

import (
	"context"
	"fmt"

	"eventbot/internal/domain"
	"eventbot/internal/ports/input"
	"eventbot/internal/ports/output"
)

var _ input.RegistrationUseCase = (*RegistrationService)(nil)

type RegistrationService struct {
	store output.Store
}

func NewRegistrationService(store output.Store) *RegistrationService {
	return &RegistrationService{store: store}
}

// Register records the guild (if new) and then the user in it. It reports
// false when the user was already registered in that guild.
func (s *RegistrationService) Register(ctx context.Context, guildID, userID string) (bool, error) {
	if _, err := s.store.RegisterGuild(ctx, guildID); err != nil {
		return false, err
	}
	ok, err := s.store.RegisterUser(ctx, userID, guildID)
	if err != nil {
		return false, fmt.Errorf("register user: %w", err)
	}
	return ok, nil
}

func (s *RegistrationService) IsRegistered(ctx context.Context, guildID, userID string) (bool, error) {
	return s.store.IsRegistered(ctx, userID, guildID)
}

func (s *RegistrationService) RequireRegistered(ctx context.Context, guildID, userID string) error {
	ok, err := s.IsRegistered(ctx, guildID, userID)
	if err != nil {
		return err
	}
	if !ok {
		return domain.ErrNotRegistered
	}
	return nil
}
