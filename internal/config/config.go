package config

import (
	"errors"
	"fmt"

	"github.com/ilyakaznacheev/cleanenv"
)

var ErrInvalidConfig = errors.New("invalid config")

const (
	defaultBoardSize     = 5
	defaultSurfaceSize   = 500
	defaultTickRate      = 60
	defaultRecentResults = 5
)

// Numeric defaults live in newConfig, not env-default, so an explicit zero
// reaches Validate.
type Config struct {
	LogLevel    string  `yaml:"log-level" env:"LOG_LEVEL" env-default:"info"`
	BoardSize   int     `yaml:"board-size" env:"BOARD_SIZE"`
	SurfaceSize int     `yaml:"surface-size" env:"SURFACE_SIZE"`
	TickRate    int     `yaml:"tick-rate" env:"TICK_RATE"`
	Results     Results `yaml:"results"`
	Redis       Redis   `yaml:"redis"`
}

type Results struct {
	Enabled bool `yaml:"enabled" env:"RESULTS_ENABLED" env-default:"false"`
	Recent  int  `yaml:"recent" env:"RESULTS_RECENT"`
}

type Redis struct {
	Host string `yaml:"host" env:"REDIS_HOST" env-default:"localhost"`
	Port string `yaml:"port" env:"REDIS_PORT" env-default:"6379"`
}

func newConfig() *Config {
	return &Config{
		BoardSize:   defaultBoardSize,
		SurfaceSize: defaultSurfaceSize,
		TickRate:    defaultTickRate,
		Results:     Results{Recent: defaultRecentResults},
	}
}

// MustLoad reads path over the defaults, applies the environment and panics
// on anything Validate rejects.
func MustLoad(path string) *Config {
	config := newConfig()

	if err := cleanenv.ReadConfig(path, config); err != nil {
		panic(fmt.Errorf("unable to load config file: %w", err))
	}

	if err := config.Validate(); err != nil {
		panic(fmt.Errorf("unable to use config file: %w", err))
	}

	return config
}

// MustLoadEnv is MustLoad without a file.
func MustLoadEnv() *Config {
	config := newConfig()

	if err := cleanenv.ReadEnv(config); err != nil {
		panic(fmt.Errorf("unable to load config from env: %w", err))
	}

	if err := config.Validate(); err != nil {
		panic(fmt.Errorf("unable to use config from env: %w", err))
	}

	return config
}

func (that *Config) Validate() error {
	switch {
	case that.BoardSize < 1:
		return fmt.Errorf("%w: board-size %d", ErrInvalidConfig, that.BoardSize)
	case that.SurfaceSize < that.BoardSize:
		return fmt.Errorf("%w: surface-size %d is smaller than board-size %d", ErrInvalidConfig, that.SurfaceSize, that.BoardSize)
	case that.TickRate < 1:
		return fmt.Errorf("%w: tick-rate %d", ErrInvalidConfig, that.TickRate)
	case that.Results.Recent < 0:
		return fmt.Errorf("%w: results.recent %d", ErrInvalidConfig, that.Results.Recent)
	}

	return nil
}

func (that *Redis) GetRedisAddr() string {
	return fmt.Sprintf("%s:%s", that.Host, that.Port)
}
