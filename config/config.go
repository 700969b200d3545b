package config

import (
	"fmt"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

type Config struct {
	LogLevel   string     `yaml:"log-level" env:"OTHELLO_LOG_LEVEL" env-default:"info"`
	BoardSize  int        `yaml:"board-size" env:"OTHELLO_BOARD_SIZE" env-default:"8"`
	Players    []string   `yaml:"players" env-default:"white,black"`
	Tournament Tournament `yaml:"tournament"`
	Redis      Redis      `yaml:"redis"`
	HTTP       HTTP       `yaml:"http"`
}

type Tournament struct {
	NumGames  int     `yaml:"num-games" env:"OTHELLO_NUM_GAMES" env-default:"10"`
	OutputDir string  `yaml:"output-dir" env:"OTHELLO_OUTPUT_DIR" env-default:"results"`
	Seed      uint64  `yaml:"seed" env:"OTHELLO_SEED" env-default:"0"`
	Archive   bool    `yaml:"archive" env:"OTHELLO_ARCHIVE" env-default:"false"`
	Agents    []Agent `yaml:"agents"`
}

// Agent describes a computer player. Kind is one of "random", "greedy" or
// "mcts"; the remaining fields only apply to "mcts".
type Agent struct {
	Name        string        `yaml:"name"`
	Kind        string        `yaml:"kind"`
	Goroutines  int           `yaml:"goroutines"`
	Episodes    int           `yaml:"episodes"`
	Duration    time.Duration `yaml:"duration"`
	Cutoff      int           `yaml:"cutoff"`
	Evaluation  string        `yaml:"evaluation"`
	Temperature float64       `yaml:"temperature"`
}

type Redis struct {
	Host string `yaml:"host" env:"OTHELLO_REDIS_HOST" env-default:"localhost"`
	Port string `yaml:"port" env:"OTHELLO_REDIS_PORT" env-default:"6379"`
}

type HTTP struct {
	Port         string        `yaml:"port" env:"OTHELLO_HTTP_PORT" env-default:"9090"`
	ReadTimeout  time.Duration `yaml:"read-timeout" env-default:"5s"`
	WriteTimeout time.Duration `yaml:"write-timeout" env-default:"30s"`
}

// MustLoad - load all configurations in config.yml file.
func MustLoad(path string) *Config {
	config, err := Load(path)
	if err != nil {
		panic(err)
	}

	return config
}

func Load(path string) (*Config, error) {
	config := &Config{}

	if err := cleanenv.ReadConfig(path, config); err != nil {
		return nil, fmt.Errorf("unable to load config file: %w", err)
	}

	return config, nil
}

func (that *Redis) GetRedisAddr() string {
	return fmt.Sprintf("%s:%s", that.Host, that.Port)
}

func (that *HTTP) GetAddr() string {
	return ":" + that.Port
}
