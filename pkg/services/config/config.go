package config

import (
	"fmt"
	"net"
	"strings"
	"time"

	"github.com/de-tools/consumption-atlas/pkg/store/dataset"
	"github.com/spf13/viper"
)

const envPrefix = "ATLAS"

type Config struct {
	Dataset dataset.Config `mapstructure:"dataset"`
	Server  ServerConfig   `mapstructure:"server"`
	Log     LogConfig      `mapstructure:"log"`
}

type ServerConfig struct {
	Host            string        `mapstructure:"host"`
	Port            string        `mapstructure:"port"`
	Debug           bool          `mapstructure:"debug"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

func (s ServerConfig) Addr() string {
	return net.JoinHostPort(s.Host, s.Port)
}

type LogConfig struct {
	Level  string `mapstructure:"level"`
	Pretty bool   `mapstructure:"pretty"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("dataset.path", dataset.DefaultPath)
	v.SetDefault("dataset.driver", "")
	v.SetDefault("dataset.delimiter", "")
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", "8050")
	v.SetDefault("server.debug", false)
	v.SetDefault("server.shutdown_timeout", 10*time.Second)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.pretty", false)
}

// LoadConfig reads defaults, the optional config file at path and environment
// overrides, in increasing order of precedence. ATLAS_SERVER_PORT overrides
// server.port; SERVER_HOST and SERVER_PORT are honoured as well.
func LoadConfig(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	if err := v.BindEnv("server.host", envPrefix+"_SERVER_HOST", "SERVER_HOST"); err != nil {
		return nil, fmt.Errorf("failed to bind server host: %w", err)
	}
	if err := v.BindEnv("server.port", envPrefix+"_SERVER_PORT", "SERVER_PORT"); err != nil {
		return nil, fmt.Errorf("failed to bind server port: %w", err)
	}

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	return &cfg, nil
}
