package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

type Config struct {
	LogLevel string  `yaml:"log-level" env:"LOG_LEVEL" env-default:"info"`
	API      API     `yaml:"api"`
	Redis    Redis   `yaml:"redis"`
	Cookies  Cookies `yaml:"cookies"`
}

type API struct {
	BaseURL string        `yaml:"base-url" env:"API_BASE_URL" env-default:"http://localhost:8001"`
	Timeout time.Duration `yaml:"timeout" env:"API_TIMEOUT" env-default:"10s"`
}

type Redis struct {
	Host string `yaml:"host" env:"REDIS_HOST" env-default:"localhost"`
	Port string `yaml:"port" env:"REDIS_PORT" env-default:"6379"`
	DB   int    `yaml:"db" env:"REDIS_DB" env-default:"0"`
}

// Cookies selects the cookie jar the client reads and writes.
type Cookies struct {
	Profile string        `yaml:"profile" env:"COOKIE_PROFILE" env-default:"default"`
	TTL     time.Duration `yaml:"ttl" env:"COOKIE_TTL" env-default:"24h"`
}

// Load - reads the config file at path, or only the environment if the file does not exist.
func Load(path string) (*Config, error) {
	config := &Config{}

	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		if err = cleanenv.ReadEnv(config); err != nil {
			return nil, fmt.Errorf("unable to read config from environment: %w", err)
		}

		return config, nil
	}

	if err := cleanenv.ReadConfig(path, config); err != nil {
		return nil, fmt.Errorf("unable to load config file: %w", err)
	}

	return config, nil
}

func (that *Redis) GetRedisAddr() string {
	return fmt.Sprintf("%s:%s", that.Host, that.Port)
}
