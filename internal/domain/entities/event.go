package entities

// Event is a guild event backed by a dedicated role and text channel.
// Resource ids are empty until the matching Discord resource is provisioned.
type Event struct {
	ID               int64
	GuildID          string
	Name             string
	Description      string
	MessageID        string // status message
	MessageChannelID string
	EventRoleID      string
	EventChannelID   string
}

// HasStatusMessage reports whether a status message location is recorded.
func (e *Event) HasStatusMessage() bool {
	return e.MessageID != "" && e.MessageChannelID != ""
}
