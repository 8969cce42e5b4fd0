package domain

import "errors"

var (
	// ErrChannelNotFound is returned when no derived channel matches the
	// requested id or telegram id
	ErrChannelNotFound = errors.New("channel not found")

	// ErrTokenNotFound is returned when no sighting matches the requested
	// surrogate id or address
	ErrTokenNotFound = errors.New("token not found")
)
