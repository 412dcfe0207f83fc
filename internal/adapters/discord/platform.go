package discord

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"regexp"
	"strings"

	"github.com/bwmarrin/discordgo"

	"eventbot/internal/ports/output"
	pkgdiscord "eventbot/pkg/discord"
)

var _ output.Platform = (*Platform)(nil)

const (
	maxChannelNameLen  = 100
	maxChannelTopicLen = 1024
)

var channelNameSanitize = regexp.MustCompile(`[^\p{L}\p{N}_-]+`)

// Platform implements output.Platform on a discordgo session. Every REST call
// carries the caller's context.
type Platform struct {
	session *discordgo.Session
}

func NewPlatform(session *discordgo.Session) *Platform {
	return &Platform{session: session}
}

func (p *Platform) BotUserID() string {
	if p.session.State == nil || p.session.State.User == nil {
		return ""
	}
	return p.session.State.User.ID
}

func (p *Platform) CreateRole(ctx context.Context, guildID, name string) (string, error) {
	role, err := p.session.GuildRoleCreate(guildID, &discordgo.RoleParams{Name: name}, discordgo.WithContext(ctx))
	if err != nil {
		return "", translateError(err)
	}
	return role.ID, nil
}

func (p *Platform) DeleteRole(ctx context.Context, guildID, roleID string) error {
	return translateError(p.session.GuildRoleDelete(guildID, roleID, discordgo.WithContext(ctx)))
}

func (p *Platform) AddMemberRole(ctx context.Context, guildID, userID, roleID string) error {
	return translateError(p.session.GuildMemberRoleAdd(guildID, userID, roleID, discordgo.WithContext(ctx)))
}

func (p *Platform) RemoveMemberRole(ctx context.Context, guildID, userID, roleID string) error {
	return translateError(p.session.GuildMemberRoleRemove(guildID, userID, roleID, discordgo.WithContext(ctx)))
}

func (p *Platform) member(ctx context.Context, guildID, userID string) (*discordgo.Member, error) {
	if p.session.State != nil {
		if m, err := p.session.State.Member(guildID, userID); err == nil {
			return m, nil
		}
	}
	m, err := p.session.GuildMember(guildID, userID, discordgo.WithContext(ctx))
	if err != nil {
		return nil, translateError(err)
	}
	return m, nil
}

func (p *Platform) MemberRoleNames(ctx context.Context, guildID, userID string) ([]string, error) {
	m, err := p.member(ctx, guildID, userID)
	if err != nil {
		return nil, err
	}
	roles, err := p.guildRoles(ctx, guildID)
	if err != nil {
		return nil, err
	}
	return memberRoleNames(m, roles), nil
}

func (p *Platform) guildRoles(ctx context.Context, guildID string) ([]*discordgo.Role, error) {
	if p.session.State != nil {
		if g, err := p.session.State.Guild(guildID); err == nil && len(g.Roles) > 0 {
			return g.Roles, nil
		}
	}
	roles, err := p.session.GuildRoles(guildID, discordgo.WithContext(ctx))
	if err != nil {
		return nil, translateError(err)
	}
	return roles, nil
}

func (p *Platform) DisplayName(ctx context.Context, guildID, userID string) (string, error) {
	m, err := p.member(ctx, guildID, userID)
	if err != nil {
		return "", err
	}
	return resolveDisplayName(m), nil
}

// CreatePrivateChannel creates a text channel hidden from @everyone and
// visible to roleID and the bot.
func (p *Platform) CreatePrivateChannel(ctx context.Context, guildID, name, topic, roleID string) (string, error) {
	channel, err := p.session.GuildChannelCreateComplex(guildID, discordgo.GuildChannelCreateData{
		Name:  sanitizeChannelName(name),
		Type:  discordgo.ChannelTypeGuildText,
		Topic: truncateRunes(topic, maxChannelTopicLen),
		PermissionOverwrites: []*discordgo.PermissionOverwrite{
			{
				// The @everyone role shares the guild's id.
				ID:   guildID,
				Type: discordgo.PermissionOverwriteTypeRole,
				Deny: discordgo.PermissionViewChannel,
			},
			{
				ID:    roleID,
				Type:  discordgo.PermissionOverwriteTypeRole,
				Allow: discordgo.PermissionViewChannel,
			},
			{
				ID:    p.BotUserID(),
				Type:  discordgo.PermissionOverwriteTypeMember,
				Allow: discordgo.PermissionViewChannel,
			},
		},
	}, discordgo.WithContext(ctx))
	if err != nil {
		return "", translateError(err)
	}
	return channel.ID, nil
}

func (p *Platform) ResetChannelPermissions(ctx context.Context, guildID, channelID string) error {
	for _, target := range []string{guildID, p.BotUserID()} {
		err := p.session.ChannelPermissionDelete(channelID, target, discordgo.WithContext(ctx))
		if err = translateError(err); err != nil {
			return err
		}
	}
	return nil
}

func (p *Platform) DeleteChannel(ctx context.Context, channelID string) error {
	_, err := p.session.ChannelDelete(channelID, discordgo.WithContext(ctx))
	return translateError(err)
}

func (p *Platform) SendText(ctx context.Context, channelID, content string) (string, error) {
	msg, err := p.session.ChannelMessageSend(channelID, content, discordgo.WithContext(ctx))
	if err != nil {
		return "", translateError(err)
	}
	return msg.ID, nil
}

func (p *Platform) SendEmbed(ctx context.Context, channelID string, embed output.Embed) (string, error) {
	msg, err := p.session.ChannelMessageSendEmbed(channelID, pkgdiscord.ToMessageEmbed(embed), discordgo.WithContext(ctx))
	if err != nil {
		return "", translateError(err)
	}
	return msg.ID, nil
}

func (p *Platform) EditEmbed(ctx context.Context, channelID, messageID string, embed output.Embed) error {
	_, err := p.session.ChannelMessageEditEmbed(channelID, messageID, pkgdiscord.ToMessageEmbed(embed), discordgo.WithContext(ctx))
	return translateError(err)
}

func (p *Platform) DeleteMessage(ctx context.Context, channelID, messageID string) error {
	return translateError(p.session.ChannelMessageDelete(channelID, messageID, discordgo.WithContext(ctx)))
}

func (p *Platform) AddReaction(ctx context.Context, channelID, messageID, emoji string) error {
	return translateError(p.session.MessageReactionAdd(channelID, messageID, emoji, discordgo.WithContext(ctx)))
}

func (p *Platform) RemoveReaction(ctx context.Context, channelID, messageID, emoji, userID string) error {
	return translateError(p.session.MessageReactionRemove(channelID, messageID, emoji, userID, discordgo.WithContext(ctx)))
}

// translateError maps a 404 REST error to output.ErrResourceNotFound and
// wraps everything else.
func translateError(err error) error {
	if err == nil {
		return nil
	}
	if isDiscordErrRESTCode(err, http.StatusNotFound) {
		return fmt.Errorf("%w: %v", output.ErrResourceNotFound, err)
	}
	return fmt.Errorf("discord: %w", err)
}

func isDiscordErrRESTCode(err error, code int) bool {
	restCode, present := getDiscordErrRESTCode(err)
	return present && restCode == code
}

func getDiscordErrRESTCode(err error) (int, bool) {
	var discordErr *discordgo.RESTError
	if !errors.As(err, &discordErr) || discordErr.Response == nil {
		return 0, false
	}
	return discordErr.Response.StatusCode, true
}

func memberRoleNames(m *discordgo.Member, roles []*discordgo.Role) []string {
	byID := make(map[string]string, len(roles))
	for _, r := range roles {
		byID[r.ID] = r.Name
	}
	names := make([]string, 0, len(m.Roles))
	for _, id := range m.Roles {
		if name, ok := byID[id]; ok {
			names = append(names, name)
		}
	}
	return names
}

// sanitizeChannelName lowercases title and replaces anything Discord would
// reject in a text channel name with dashes.
func sanitizeChannelName(title string) string {
	s := strings.ToLower(strings.TrimSpace(title))
	s = channelNameSanitize.ReplaceAllString(s, "-")
	s = strings.Trim(s, "-")
	s = truncateRunes(s, maxChannelNameLen)
	if s == "" {
		return "event"
	}
	return s
}

func truncateRunes(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
