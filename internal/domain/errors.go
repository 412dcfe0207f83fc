package domain

import "errors"

// Error is a domain error. Its code is stable and is used to look up the
// user-facing message.
type Error struct {
	code string
	msg  string
}

func newError(code, msg string) *Error {
	return &Error{code: code, msg: msg}
}

func (e *Error) Error() string { return e.msg }

// Code returns the stable code of the error.
func (e *Error) Code() string { return e.code }

// Domain errors.
var (
	ErrEventExists     = newError("event_exists", "event with the same name already exists in this guild")
	ErrEventNotFound   = newError("event_not_found", "event not found")
	ErrEmptyEventName  = newError("empty_event_name", "event name is required")
	ErrInvalidLookup   = newError("invalid_lookup", "exactly one event lookup criterion is required")
	ErrNotRegistered   = newError("not_registered", "user is not registered")
	ErrNotEventChannel = newError("not_event_channel", "channel does not belong to an event")
	ErrGuildOnly       = newError("guild_only", "command is only available inside a guild")
	ErrMissingRole     = newError("missing_role", "member lacks the required role")
)

// Code returns the code of the first domain error in err's chain, or "" when
// err carries none.
func Code(err error) string {
	var de *Error
	if errors.As(err, &de) {
		return de.code
	}
	return ""
}
