package config

import (
	"fmt"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

// DefaultPort is the fixed listening port; only the -port flag overrides it.
const DefaultPort = 3000

// Config holds the runtime configuration for the server
type Config struct {
	Port int

	PublicDir string `env:"JUKEBOX_PUBLIC_DIR" env-default:"public"`
	AudioDir  string `env:"JUKEBOX_AUDIO_DIR" env-default:"audio"`

	CORSOrigins []string `env:"CORS_ORIGINS" env-separator:"," env-default:"http://localhost:3000"`
	GinMode     string   `env:"GIN_MODE" env-default:"release"`

	ScanWorkers     int           `env:"JUKEBOX_SCAN_WORKERS" env-default:"8"`
	WatchInterval   time.Duration `env:"JUKEBOX_WATCH_INTERVAL" env-default:"5s"`
	ShutdownTimeout time.Duration `env:"JUKEBOX_SHUTDOWN_TIMEOUT" env-default:"10s"`
}

// Load reads the configuration from the environment, falling back to defaults
func Load() (*Config, error) {
	var cfg Config
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, err
	}
	if cfg.Port == 0 {
		cfg.Port = DefaultPort
	}
	switch cfg.GinMode {
	case "debug", "release", "test":
	default:
		return nil, fmt.Errorf("invalid GIN_MODE %q", cfg.GinMode)
	}
	if cfg.ScanWorkers < 1 {
		cfg.ScanWorkers = 1
	}
	return &cfg, nil
}
