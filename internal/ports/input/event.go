package input

import (
	"context"

	"eventbot/internal/domain/entities"
	"eventbot/internal/ports/output"
)

type EventUseCase interface {
	CreateEvent(ctx context.Context, guildID, name, description, statusChannelID string) (*entities.Event, error)
	DeleteEvent(ctx context.Context, event *entities.Event, deleteChannel bool) error
	PublishStatus(ctx context.Context, event *entities.Event, channelID string) error
	RefreshStatus(ctx context.Context, event *entities.Event) error
	StatusView(ctx context.Context, event *entities.Event, withJoinHint bool) (output.Embed, error)
	Join(ctx context.Context, event *entities.Event, userID string) (bool, error)
	Leave(ctx context.Context, event *entities.Event, userID string) (bool, error)
	FindByName(ctx context.Context, guildID, name string) (*entities.Event, error)
	FindByStatusMessage(ctx context.Context, messageID, channelID string) (*entities.Event, error)
	FindByEventChannel(ctx context.Context, channelID string) (*entities.Event, error)
	ListEvents(ctx context.Context, guildID string) ([]entities.Event, error)
}
