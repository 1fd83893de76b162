// Package config defines service configuration structures and loading hooks.
//
// Conventions:
// - Keep fields unexported where possible and use functional options.
// - Provide New(...Option) initializer to build a Config with defaults.
// - External errors must be wrapped via this package's error helpers.
package config

// Config contains process configuration. Extend as needed.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// Addr configures the HTTP listen address, e.g. ":8080".
	Addr string `koanf:"addr"`

	// TranscriptionAPIKey authenticates against the speech-to-text service.
	TranscriptionAPIKey string `koanf:"transcription_api_key"`

	// CompletionAPIKey authenticates against the text-completion service.
	CompletionAPIKey string `koanf:"completion_api_key"`

	// TranscriptionModel names the speech-to-text model.
	TranscriptionModel string `koanf:"transcription_model"`

	// CompletionModel names the text-completion model.
	CompletionModel string `koanf:"completion_model"`

	// CallTimeoutMS bounds each external call in milliseconds.
	CallTimeoutMS int `koanf:"call_timeout_ms"`

	// MaxUploadMB caps the size of an uploaded recording in megabytes.
	MaxUploadMB int `koanf:"max_upload_mb"`

	// Mock swaps the live transcription and completion clients for
	// deterministic fakes. No credentials are required in mock mode.
	Mock bool `koanf:"mock"`
}

// New creates a Config with defaults. Live deployments must supply both API
// keys through the file or environment layers.
func New() *Config {
	return &Config{
		LogLevel:           "info",
		Addr:               ":8080",
		TranscriptionModel: "whisper-1",
		CompletionModel:    "gpt-4o-mini",
		CallTimeoutMS:      60_000,
		MaxUploadMB:        25,
		Mock:               false,
	}
}
