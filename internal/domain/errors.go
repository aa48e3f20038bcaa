package domain

import "errors"

// Lookups of resources owned by another user return these same errors, so a
// caller cannot tell a foreign id from a missing one.
var (
	ErrUserNotFound         = errors.New("user not found")
	ErrTaskNotFound         = errors.New("task not found")
	ErrConversationNotFound = errors.New("conversation not found")
)

var ErrEmailTaken = errors.New("email already taken")
