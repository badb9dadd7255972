package granary

import (
	"github.com/JeremyLoy/config"
	"github.com/rotisserie/eris"
)

// WorldConfig tunes a World from the environment. Unset variables keep
// their defaults, so a World constructed in a bare environment just works.
type WorldConfig struct {
	// WorldID tags every log event and metric from this world, keeping two
	// worlds in one process distinguishable. Defaults to a random UUID.
	WorldID string `config:"GRANARY_WORLD_ID"`
	// LogLevel is any level zerolog.ParseLevel accepts, e.g. "debug".
	LogLevel string `config:"GRANARY_LOG_LEVEL"`
	// LogPretty renders logs through a console writer instead of JSON.
	LogPretty bool `config:"GRANARY_LOG_PRETTY"`
	// StatsdAddress enables DogStatsD emission when non-empty.
	StatsdAddress string `config:"GRANARY_STATSD_ADDRESS"`
	// StatsdTags holds comma-separated tags added to every metric.
	StatsdTags string `config:"GRANARY_STATSD_TAGS"`
}

func defaultWorldConfig() WorldConfig {
	return WorldConfig{
		WorldID:       "",
		LogLevel:      "info",
		LogPretty:     false,
		StatsdAddress: "",
		StatsdTags:    "",
	}
}

// GetWorldConfig loads the world configuration from the environment on top
// of the defaults.
func GetWorldConfig() (WorldConfig, error) {
	cfg := defaultWorldConfig()
	if err := config.FromEnv().To(&cfg); err != nil {
		return cfg, eris.Wrap(err, "failed to load world config from environment")
	}
	return cfg, nil
}
