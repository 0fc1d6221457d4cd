package main

import (
	"io/ioutil"
	"os"
	"strconv"
	"strings"

	"github.com/iov-one/chainswap/errors"
	"github.com/iov-one/chainswap/x/relay"
	"gopkg.in/yaml.v3"
)

// Config is the process configuration of swapd.
type Config struct {
	HTTPAddr string `yaml:"http_addr"`
	DataDir  string `yaml:"data_dir"`
	LogLevel string `yaml:"log_level"`
	Debug    bool   `yaml:"debug"`

	Relay struct {
		// Backend is either "mem" or "rpc".
		Backend string          `yaml:"backend"`
		Height  uint32          `yaml:"height"`
		RPC     relay.RPCConfig `yaml:"rpc"`
	} `yaml:"relay"`

	Kafka struct {
		Brokers []string `yaml:"brokers"`
		Topic   string   `yaml:"topic"`
	} `yaml:"kafka"`

	Postgres struct {
		DSN string `yaml:"dsn"`
	} `yaml:"postgres"`
}

func defaultConfig(home string) Config {
	var c Config
	c.HTTPAddr = ":8480"
	c.DataDir = home
	c.LogLevel = "info"
	c.Relay.Backend = "mem"
	c.Kafka.Topic = "chainswap.events"
	return c
}

// LoadConfig reads the YAML file if present and applies SWAPD_*
// environment overrides.
func LoadConfig(path, home string) (Config, error) {
	cfg := defaultConfig(home)
	raw, err := ioutil.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(raw, &cfg); err != nil {
			return cfg, errors.Wrapf(errors.ErrInput, "parse config file: %s", err)
		}
	case os.IsNotExist(err):
	default:
		return cfg, errors.Wrapf(errors.ErrInput, "read config file: %s", err)
	}

	cfg.HTTPAddr = envOrDefault("SWAPD_HTTP_ADDR", cfg.HTTPAddr)
	cfg.DataDir = envOrDefault("SWAPD_DATA_DIR", cfg.DataDir)
	cfg.LogLevel = envOrDefault("SWAPD_LOG_LEVEL", cfg.LogLevel)
	cfg.Debug = envBool("SWAPD_DEBUG", cfg.Debug)
	cfg.Relay.Backend = envOrDefault("SWAPD_RELAY_BACKEND", cfg.Relay.Backend)
	cfg.Relay.RPC.Host = envOrDefault("SWAPD_RELAY_RPC_HOST", cfg.Relay.RPC.Host)
	cfg.Relay.RPC.User = envOrDefault("SWAPD_RELAY_RPC_USER", cfg.Relay.RPC.User)
	cfg.Relay.RPC.Pass = envOrDefault("SWAPD_RELAY_RPC_PASS", cfg.Relay.RPC.Pass)
	cfg.Kafka.Brokers = envCSV("SWAPD_KAFKA_BROKERS", cfg.Kafka.Brokers)
	cfg.Kafka.Topic = envOrDefault("SWAPD_KAFKA_TOPIC", cfg.Kafka.Topic)
	cfg.Postgres.DSN = envOrDefault("SWAPD_POSTGRES_DSN", cfg.Postgres.DSN)

	return cfg, cfg.Validate()
}

func (c Config) Validate() error {
	var errs error
	if c.HTTPAddr == "" {
		errs = errors.AppendField(errs, "HTTPAddr", errors.ErrEmpty)
	}
	if c.DataDir == "" {
		errs = errors.AppendField(errs, "DataDir", errors.ErrEmpty)
	}
	switch c.Relay.Backend {
	case "mem":
	case "rpc":
		if c.Relay.RPC.Host == "" {
			errs = errors.AppendField(errs, "Relay.RPC.Host", errors.ErrEmpty)
		}
	default:
		errs = errors.AppendField(errs, "Relay.Backend",
			errors.Wrapf(errors.ErrInput, "unknown backend %q", c.Relay.Backend))
	}
	return errs
}

func envOrDefault(name, fallback string) string {
	if value := os.Getenv(name); value != "" {
		return value
	}
	return fallback
}

func envBool(name string, fallback bool) bool {
	raw := os.Getenv(name)
	if raw == "" {
		return fallback
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return fallback
	}
	return v
}

func envCSV(name string, fallback []string) []string {
	raw := strings.TrimSpace(os.Getenv(name))
	if raw == "" {
		return fallback
	}
	out := make([]string, 0)
	for _, v := range strings.Split(raw, ",") {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}
