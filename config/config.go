package config

import (
	"github.com/mitchellh/mapstructure"
	"github.com/pkg/errors"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"time"
)

const (
	DefaultPort            = 3000
	DefaultLogLevel        = "info"
	DefaultShutdownTimeout = 10 * time.Second
	DefaultServiceName     = "asanarelay"
)

//Config is loaded once at startup and is read only afterwards
type Config struct {
	AsanaAPIURL      string        `mapstructure:"asana_api_url"`
	AsanaAccessToken string        `mapstructure:"asana_access_token"`
	Port             int           `mapstructure:"port"`
	LogLevel         string        `mapstructure:"log_level"`
	UpstreamTimeout  time.Duration `mapstructure:"upstream_timeout"`
	ShutdownTimeout  time.Duration `mapstructure:"shutdown_timeout"`
	Cors             Cors          `mapstructure:"cors"`
	Tracing          Tracing       `mapstructure:"tracing"`
	Audit            Audit         `mapstructure:"audit"`
}

type Cors struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

type Tracing struct {
	Enabled     bool   `mapstructure:"enabled"`
	ServiceName string `mapstructure:"service_name"`
}

type Audit struct {
	NatsURL  string `mapstructure:"nats_url"`
	Cluster  string `mapstructure:"cluster"`
	ClientID string `mapstructure:"client_id"`
	Topic    string `mapstructure:"topic"`
}

var envBindings = map[string]string{
	"asana_api_url":        "ASANA_API_URL",
	"asana_access_token":   "ASANA_ACCESS_TOKEN",
	"port":                 "PORT",
	"log_level":            "LOG_LEVEL",
	"upstream_timeout":     "UPSTREAM_TIMEOUT",
	"shutdown_timeout":     "SHUTDOWN_TIMEOUT",
	"cors.allowed_origins": "CORS_ALLOWED_ORIGINS",
	"tracing.enabled":      "TRACING_ENABLED",
	"tracing.service_name": "JAEGER_SERVICE_NAME",
	"audit.nats_url":       "AUDIT_NATS_URL",
	"audit.cluster":        "AUDIT_NATS_CLUSTER",
	"audit.client_id":      "AUDIT_NATS_CLIENT_ID",
	"audit.topic":          "AUDIT_TOPIC",
}

//Load reads the configuration from, by precedence: command line flags, environment variables,
//an optional config file and defaults. A missing upstream url or token is not an error.
func Load(args []string) (*Config, error) {
	v := viper.New()

	flags := pflag.NewFlagSet("asanarelay", pflag.ContinueOnError)
	flags.String("config", "", "path to a config file (json, yaml, toml)")
	flags.Int("port", DefaultPort, "port to listen on")
	flags.String("log-level", DefaultLogLevel, "log level: debug, info, warn, error")
	if err := flags.Parse(args); err != nil {
		return nil, errors.Wrap(err, "parse flags")
	}
	if err := v.BindPFlag("port", flags.Lookup("port")); err != nil {
		return nil, err
	}
	if err := v.BindPFlag("log_level", flags.Lookup("log-level")); err != nil {
		return nil, err
	}

	v.SetDefault("port", DefaultPort)
	v.SetDefault("log_level", DefaultLogLevel)
	v.SetDefault("upstream_timeout", time.Duration(0))
	v.SetDefault("shutdown_timeout", DefaultShutdownTimeout)
	v.SetDefault("cors.allowed_origins", []string{"*"})
	v.SetDefault("tracing.enabled", false)
	v.SetDefault("tracing.service_name", DefaultServiceName)
	v.SetDefault("audit.client_id", DefaultServiceName)

	for key, env := range envBindings {
		if err := v.BindEnv(key, env); err != nil {
			return nil, err
		}
	}

	configFile, _ := flags.GetString("config")
	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("config")
		v.AddConfigPath(".")
	}
	if err := v.ReadInConfig(); err != nil {
		if _, notFound := err.(viper.ConfigFileNotFoundError); !notFound || configFile != "" {
			return nil, errors.Wrap(err, "read config file")
		}
	}

	cfg := new(Config)
	hook := viper.DecodeHook(mapstructure.ComposeDecodeHookFunc(
		mapstructure.StringToTimeDurationHookFunc(),
		mapstructure.StringToSliceHookFunc(","),
	))
	if err := v.Unmarshal(cfg, hook); err != nil {
		return nil, errors.Wrap(err, "decode configuration")
	}

	return cfg, nil
}
