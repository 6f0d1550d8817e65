package formgraph

import (
	"sync"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Config holds host-facing validator configuration.
type Config struct {
	// PrefixDisplayName prefixes each published message with the field's
	// display name, as in "First Name - must not be empty".
	PrefixDisplayName bool `env:"FORMGRAPH_PREFIX_DISPLAY_NAME" envDefault:"false"`

	// DisplayNameLang selects the language used when title-casing display
	// names derived from field names.
	DisplayNameLang string `env:"FORMGRAPH_DISPLAY_NAME_LANG" envDefault:"en"`
}

// DefaultConfig returns the default validator configuration.
func DefaultConfig() Config {
	return Config{
		PrefixDisplayName: false,
		DisplayNameLang:   "en",
	}
}

var defaultEnvLoaded sync.Once

// LoadConfig reads configuration from environment variables. A .env file in
// the working directory is loaded first when present; its absence is fine.
func LoadConfig() (Config, error) {
	defaultEnvLoaded.Do(func() {
		_ = godotenv.Load()
	})

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
