package config

// Default file locations
const (
	// DEFAULT_CONFIG_FILE is read when no --config flag is given
	DEFAULT_CONFIG_FILE = "lendq.yml"

	DEFAULT_LOG_FILE = "logs/lendq.log"
)

// Dispatch limits
const (
	// DEFAULT_MAX_FRAME_BYTES bounds one request frame
	DEFAULT_MAX_FRAME_BYTES = 16 << 20

	// MIN_FRAME_BYTES is the smallest frame that can hold any request tag
	MIN_FRAME_BYTES = 1
)

// Accepted log formats
const (
	LOG_FORMAT_CONSOLE = "console"
	LOG_FORMAT_JSON    = "json"
)
