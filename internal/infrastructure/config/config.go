package config

import (
	"fmt"
	"log"
	"sync"

	"github.com/ilyakaznacheev/cleanenv"
)

type Config struct {
	Env    string `env:"APP_ENV" env-default:"local"`
	Listen struct {
		BindIP string `env:"BIND_IP" env-default:"0.0.0.0"`
		Port   string `env:"PORT" env-default:"8080"`
	}
	DatabaseURL string `env:"DB_URL" env-required:"true"`
	RedisURL    string `env:"REDIS_URL" env-default:""`
	Auth        struct {
		TokenSecret string `env:"TOKEN_SECRET" env-required:"true"`
		TokenTTLHrs int    `env:"TOKEN_TTL_HOURS" env-default:"72"`
	}
	Realtime struct {
		SendBuffer  int   `env:"WS_SEND_BUFFER" env-default:"128"`
		MaxFrameLen int64 `env:"WS_MAX_FRAME_BYTES" env-default:"1048576"`
	}
}

func (c *Config) Addr() string {
	return c.Listen.BindIP + ":" + c.Listen.Port
}

var instance *Config
var once sync.Once

// MustLoad reads configuration from the environment and exits on failure.
func MustLoad() *Config {
	once.Do(func() {
		instance = &Config{}
		if err := cleanenv.ReadEnv(instance); err != nil {
			desc, _ := cleanenv.GetDescription(instance, nil)
			log.Fatal(fmt.Errorf("%s; %s", err, desc))
		}
	})
	return instance
}
