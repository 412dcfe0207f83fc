package discord

import (
	"strings"

	"github.com/bwmarrin/discordgo"

	"eventbot/internal/ports/output"
)

// Light grey, matching the status embeds users already know.
const embedColor = 0x979C9F

// Discord rejects embeds exceeding these limits.
const (
	maxTitleLen       = 256
	maxDescriptionLen = 4096
	maxFieldNameLen   = 256
	maxFieldValueLen  = 1024
	maxFields         = 25
)

// ToMessageEmbed converts a platform-neutral embed, truncating every part to
// Discord's limits.
func ToMessageEmbed(e output.Embed) *discordgo.MessageEmbed {
	embed := &discordgo.MessageEmbed{
		Title:       truncate(e.Title, maxTitleLen),
		Description: truncate(e.Description, maxDescriptionLen),
		Color:       embedColor,
	}
	for i, f := range e.Fields {
		if i == maxFields {
			break
		}
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name:  truncate(f.Name, maxFieldNameLen),
			Value: truncate(f.Value, maxFieldValueLen),
		})
	}
	return embed
}

// ListEmbed renders lines as the description of an embed titled title.
func ListEmbed(title string, lines []string) output.Embed {
	return output.Embed{Title: title, Description: strings.Join(lines, "\n")}
}

// Mention formats a user mention.
func Mention(userID string) string {
	return "<@" + userID + ">"
}

// truncate cuts s to at most n runes, ending with an ellipsis when cut.
func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
