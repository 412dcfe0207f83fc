package domain

// JoinEmoji is the reaction that toggles membership on an event status message.
const JoinEmoji = "✅"
