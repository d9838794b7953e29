package config

import (
	"fmt"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"gopkg.in/yaml.v3"
)

const (
	StorageMemory = "memory"
	StorageRedis  = "redis"

	DefaultSessionTTL = 30 * time.Minute

	envSessionTTL = "TICTACTOE_SESSION_TTL"
)

type Config struct {
	LogLevel       string        `yaml:"log-level" env:"TICTACTOE_LOG_LEVEL" env-default:"info"`
	Host           string        `yaml:"host" env:"TICTACTOE_HOST" env-default:"127.0.0.1"`
	TCPPort        string        `yaml:"tcp-port" env:"TICTACTOE_TCP_PORT" env-default:"13373"`
	HTTPPort       string        `yaml:"http-port" env:"TICTACTOE_HTTP_PORT" env-default:"9090"`
	MaxMessageSize int           `yaml:"max-message-size" env:"TICTACTOE_MAX_MESSAGE_SIZE" env-default:"1024"`
	ReadTimeout    time.Duration `yaml:"read-timeout" env:"TICTACTOE_READ_TIMEOUT" env-default:"10s"`
	RandomSeed     uint64        `yaml:"random-seed" env:"TICTACTOE_RANDOM_SEED" env-default:"0"`
	Storage        string        `yaml:"storage" env:"TICTACTOE_STORAGE" env-default:"memory"`
	Session        Session       `yaml:"session"`
	Redis          Redis         `yaml:"redis"`
}

type Session struct {
	TTL          time.Duration `yaml:"ttl" env:"TICTACTOE_SESSION_TTL"`
	ReapInterval time.Duration `yaml:"reap-interval" env:"TICTACTOE_SESSION_REAP_INTERVAL" env-default:"1m"`
}

type Redis struct {
	Host string `yaml:"host" env:"TICTACTOE_REDIS_HOST" env-default:"localhost"`
	Port string `yaml:"port" env:"TICTACTOE_REDIS_PORT" env-default:"6379"`
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

	// zero ttl is a valid setting, so the default only fills a missing key
	ttlSet, err := isSessionTTLSet(path)
	if err != nil {
		return nil, err
	}

	if !ttlSet {
		config.Session.TTL = DefaultSessionTTL
	}

	if config.Storage != StorageMemory && config.Storage != StorageRedis {
		return nil, fmt.Errorf("unknown storage %q", config.Storage)
	}

	return config, nil
}

func isSessionTTLSet(path string) (bool, error) {
	if _, ok := os.LookupEnv(envSessionTTL); ok {
		return true, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return false, fmt.Errorf("unable to read config file: %w", err)
	}

	var raw struct {
		Session map[string]any `yaml:"session"`
	}

	if err = yaml.Unmarshal(data, &raw); err != nil {
		return false, fmt.Errorf("unable to parse config file: %w", err)
	}

	_, ok := raw.Session["ttl"]

	return ok, nil
}

func (that *Config) GetTCPAddr() string {
	return fmt.Sprintf("%s:%s", that.Host, that.TCPPort)
}

func (that *Config) GetHTTPAddr() string {
	return fmt.Sprintf("%s:%s", that.Host, that.HTTPPort)
}

func (that *Redis) GetRedisAddr() string {
	return fmt.Sprintf("%s:%s", that.Host, that.Port)
}
