package common

import (
	"github.com/ternarybob/arbor"
	"github.com/ternarybob/banner"
)

// PrintBanner displays the application banner and logs the effective settings
func PrintBanner(config *Config, logger arbor.ILogger) {
	banner.Print("Scribe", GetVersion())

	logger.Info().
		Str("environment", config.Environment).
		Str("badger_path", config.Storage.Badger.Path).
		Str("provider", string(config.LLM.DefaultProvider)).
		Str("schedule", config.Queue.Schedule).
		Int("queue_limit", config.Queue.Limit).
		Int("queue_concurrency", config.Queue.Concurrency).
		Msg("Configuration loaded")
}
