package hints

import "time"

// Config holds hint generation settings.
type Config struct {
	Enabled     bool    `mapstructure:"enabled"`
	MaxTokens   int     `mapstructure:"max_tokens"`
	Temperature float64 `mapstructure:"temperature"`
	// Timeout bounds one request, retries included.
	Timeout time.Duration `mapstructure:"timeout"`
}

// DefaultConfig returns the settings used by the TUI.
func DefaultConfig() Config {
	return Config{
		Enabled:     true,
		MaxTokens:   300,
		Temperature: 0.6,
		Timeout:     20 * time.Second,
	}
}
