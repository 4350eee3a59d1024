package core

import (
	"os"

	"github.com/caarlos0/env/v11"
	"github.com/go-yaml/yaml"
	"github.com/pkg/errors"
)

// Config is purse server configuration
type Config struct {
	Server Server `yaml:"server" envPrefix:"PURSE_"`
}

type Server struct {
	Listen        string `yaml:"listen" env:"LISTEN"`
	Dsn           string `yaml:"dsn" env:"DSN"`
	RedisAddr     string `yaml:"redisAddr" env:"REDIS_ADDR"`
	RedisDB       int    `yaml:"redisDB" env:"REDIS_DB"`
	MemcachedAddr string `yaml:"memcachedAddr" env:"MEMCACHED_ADDR"`
	EnableTrace   bool   `yaml:"enableTrace" env:"ENABLE_TRACE"`
	TraceEndpoint string `yaml:"traceEndpoint" env:"TRACE_ENDPOINT"`
}

// DefaultConfig is used for every field neither the file nor the environment sets
func DefaultConfig() Config {
	return Config{
		Server: Server{
			Listen:        ":8000",
			Dsn:           "host=localhost user=postgres password=postgres dbname=purse port=5432 sslmode=disable",
			RedisAddr:     "localhost:6379",
			MemcachedAddr: "localhost:11211",
		},
	}
}

// Load reads the yaml file at path (if it exists) and then applies PURSE_* environment overrides
func (c *Config) Load(path string) error {
	f, err := os.Open(path)
	if err == nil {
		defer f.Close()
		err = yaml.NewDecoder(f).Decode(c)
		if err != nil {
			return errors.Wrap(err, "failed to load configuration file")
		}
	} else if !os.IsNotExist(err) {
		return errors.Wrap(err, "failed to open configuration file")
	}

	err = env.Parse(c)
	if err != nil {
		return errors.Wrap(err, "failed to parse environment")
	}

	return nil
}
