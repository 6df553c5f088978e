package prompt

import "errors"

var (
	// ErrAborted signals the user aborted input (e.g., Ctrl+C).
	ErrAborted = errors.New("prompt: aborted")
	// ErrNoChoices is returned when a selection is requested over an empty list.
	ErrNoChoices = errors.New("prompt: nothing to choose from")
)
