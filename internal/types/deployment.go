package types

// RunMode is the deployment mode of the process
type RunMode string

const (
	ModeLocal RunMode = "local"
	ModeDev   RunMode = "dev"
	ModeProd  RunMode = "prod"
)

// LogLevel is the logging verbosity
type LogLevel string

const (
	LogLevelDebug LogLevel = "debug"
	LogLevelInfo  LogLevel = "info"
	LogLevelWarn  LogLevel = "warn"
	LogLevelError LogLevel = "error"
)

// HTTP header names used across middleware and handlers
const (
	HeaderAuthorization = "Authorization"
	HeaderRequestID     = "X-Request-ID"
	HeaderRetryAfter    = "Retry-After"
)
