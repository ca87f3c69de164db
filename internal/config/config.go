package config

import (
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"

	"github.com/rocketscienceinc/tictactoe-bot/internal/entity"
)

type Config struct {
	LogLevel   string        `yaml:"log-level" env:"LOG_LEVEL" env-default:"info"`
	HTTPPort   string        `yaml:"http-port" env:"HTTP_PORT" env-default:"9090"`
	SocketPort string        `yaml:"socket-port" env:"SOCKET_PORT" env-default:"8080"`
	BotDelay   time.Duration `yaml:"bot-delay" env:"BOT_DELAY" env-default:"500ms"`
	Redis      Redis         `yaml:"redis"`
	Defaults   Defaults      `yaml:"defaults"`
}

type Redis struct {
	Enabled     bool          `yaml:"enabled" env:"REDIS_ENABLED" env-default:"false"`
	Host        string        `yaml:"host" env:"REDIS_HOST" env-default:"localhost"`
	Port        string        `yaml:"port" env:"REDIS_PORT" env-default:"6379"`
	SettingsTTL time.Duration `yaml:"settings-ttl" env:"REDIS_SETTINGS_TTL" env-default:"720h"`
}

// Defaults - settings a player gets before toggling anything.
type Defaults struct {
	PlayerMark string `yaml:"player-mark" env:"DEFAULT_PLAYER_MARK" env-default:"X"`
	Opponent   string `yaml:"opponent" env:"DEFAULT_OPPONENT" env-default:"bot"`
}

// MustLoad - load all configurations in config.yml file.
func MustLoad(path string) *Config {
	config, err := Load(path)
	if err != nil {
		panic(err)
	}

	return config
}

// Load - reads an optional .env next to the working directory, then the yml file.
// Values from the environment override the file.
func Load(path string, envFiles ...string) (*Config, error) {
	if err := godotenv.Load(envFiles...); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("unable to load env file: %w", err)
	}

	config := &Config{}

	if err := cleanenv.ReadConfig(path, config); err != nil {
		return nil, fmt.Errorf("unable to load config file: %w", err)
	}

	return config, nil
}

func (that *Redis) GetRedisAddr() string {
	if that.Host == "" || that.Port == "" {
		return ""
	}

	return fmt.Sprintf("%s:%s", that.Host, that.Port)
}

// Settings - defaults as a normalized game setting.
func (that *Defaults) Settings() entity.Settings {
	return entity.Settings{
		PlayerMark: entity.Mark(that.PlayerMark),
		Opponent:   entity.Opponent(that.Opponent),
	}.Normalize()
}
