package instance

import "errors"

var (
	ErrAlreadyExists    = errors.New("instance already exists for this world")
	ErrUnknownInstance  = errors.New("no instance for this world")
	ErrInvalidState     = errors.New("instance state does not allow this transition")
	ErrWorldTooLarge    = errors.New("world border exceeds the configured maximum")
	ErrMutationFailed   = errors.New("world generation pipeline failed")
	ErrLobbyUnavailable = errors.New("lobby world is not loaded")
)
