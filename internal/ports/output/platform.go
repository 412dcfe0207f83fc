package output

import (
	"context"
	"errors"
)

// ErrResourceNotFound is returned by Platform when the targeted channel,
// role, member or message no longer exists.
var ErrResourceNotFound = errors.New("platform resource not found")

// Embed is a platform-neutral rich message.
type Embed struct {
	Title       string
	Description string
	Fields      []EmbedField
}

type EmbedField struct {
	Name  string
	Value string
}

// Platform exposes the chat platform requests the bot issues.
type Platform interface {
	BotUserID() string

	CreateRole(ctx context.Context, guildID, name string) (string, error)
	DeleteRole(ctx context.Context, guildID, roleID string) error
	AddMemberRole(ctx context.Context, guildID, userID, roleID string) error
	RemoveMemberRole(ctx context.Context, guildID, userID, roleID string) error
	// MemberRoleNames returns the names of the roles the member holds.
	MemberRoleNames(ctx context.Context, guildID, userID string) ([]string, error)
	DisplayName(ctx context.Context, guildID, userID string) (string, error)

	// CreatePrivateChannel creates a text channel only visible to roleID and the bot.
	CreatePrivateChannel(ctx context.Context, guildID, name, topic, roleID string) (string, error)
	// ResetChannelPermissions drops the @everyone and bot overwrites, making the
	// channel visible again.
	ResetChannelPermissions(ctx context.Context, guildID, channelID string) error
	DeleteChannel(ctx context.Context, channelID string) error

	SendText(ctx context.Context, channelID, content string) (string, error)
	SendEmbed(ctx context.Context, channelID string, embed Embed) (string, error)
	EditEmbed(ctx context.Context, channelID, messageID string, embed Embed) error
	DeleteMessage(ctx context.Context, channelID, messageID string) error
	AddReaction(ctx context.Context, channelID, messageID, emoji string) error
	RemoveReaction(ctx context.Context, channelID, messageID, emoji, userID string) error
}
