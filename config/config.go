package config

import (
	"fmt"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Prefix is prepended to every variable name. Each field can also be set by
// its bare tag name, e.g. MOVE_INTERVAL instead of CHESSBATTLE_MATCH_MOVE_INTERVAL.
const Prefix = "chessbattle"

type Configuration struct {
	Match struct {
		Interval       time.Duration `envconfig:"MOVE_INTERVAL" default:"1s"`
		White          string        `envconfig:"WHITE_BOT" default:"random"`
		Black          string        `envconfig:"BLACK_BOT" default:"random"`
		Seed           int64         `envconfig:"SEED"`
		StartFEN       string        `envconfig:"START_FEN"`
		HaltOnGameOver bool          `envconfig:"HALT_ON_GAME_OVER" default:"true"`
		ClaimDraws     bool          `envconfig:"CLAIM_DRAWS" default:"true"`
	}
	UI struct {
		Theme string `envconfig:"THEME" default:"light"`
	}
	Server struct {
		Addr string `envconfig:"HTTP_ADDR" default:":8080"`
	}
	SSH struct {
		Addr    string `envconfig:"SSH_ADDR"`
		HostKey string `envconfig:"SSH_HOST_KEY"`
	}
	Log struct {
		Level string `envconfig:"LOG_LEVEL" default:"info"`
		File  string `envconfig:"LOG_FILE"`
	}
}

// InitConfig loads .env files, if any, and then reads the environment.
func InitConfig(envFiles ...string) (*Configuration, error) {
	// a missing .env is normal outside development
	_ = godotenv.Load(envFiles...)

	config := &Configuration{}
	if err := envconfig.Process(Prefix, config); err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if config.Match.Interval <= 0 {
		return nil, fmt.Errorf("read config: move interval must be positive, got %s", config.Match.Interval)
	}
	return config, nil
}
