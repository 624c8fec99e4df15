package repl

import "errors"

var (
	// ErrHistoryIndex is returned for a history position with no entry.
	ErrHistoryIndex = errors.New("no history entry at index")

	// ErrEditDeclined is returned when the user abandons a template that
	// failed to parse after editing.
	ErrEditDeclined = errors.New("template edit abandoned")
)
