package constants

const (
	// API_SUBMITTED_CHANNEL marks sightings created through the HTTP API
	// rather than collected from a Telegram channel.
	API_SUBMITTED_CHANNEL = "API"

	DEFAULT_MIN_CHANNELS   = 2
	FAVORITES_MIN_CHANNELS = 1
)
