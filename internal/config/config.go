package config

import (
	"time"

	"github.com/caarlos0/env/v11"

	appenv "github.com/sleepdoctor/sleepdoc/internal/env"
)

type Config struct {
	Env       appenv.Environment `env:"ENV" envDefault:"development"`
	Google    Google             `envPrefix:"GOOGLE_"`
	Fitness   Fitness            `envPrefix:"FITNESS_"`
	Bridge    Bridge             `envPrefix:"BRIDGE_"`
	RateLimit RateLimit          `envPrefix:"RATE_"`
	Redis     Redis              `envPrefix:"REDIS_"`
}

type Google struct {
	ClientID     string `env:"CLIENT_ID,required,notEmpty"`
	ClientSecret string `env:"CLIENT_SECRET,required,notEmpty"`
}

type Fitness struct {
	// Endpoint overrides the API base path, e.g. for a recording proxy.
	Endpoint string        `env:"ENDPOINT"`
	Timeout  time.Duration `env:"TIMEOUT" envDefault:"30s"`
}

type Bridge struct {
	Port string `env:"PORT" envDefault:"8080"`
}

type RateLimit struct {
	Limit float64 `env:"LIMIT" envDefault:"10"`
	Burst int     `env:"BURST" envDefault:"20"`
}

type Redis struct {
	URL string `env:"URL"`
}

func (r Redis) Enabled() bool { return r.URL != "" }

func Read() (Config, error) {
	return env.ParseAs[Config]()
}
