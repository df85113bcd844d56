package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// EnvPrefix is prepended to every environment override, e.g. DOCFETCH_APP_LOGLEVEL
const EnvPrefix = "DOCFETCH"

// Config is the struct that holds the configuration of the application
type Config struct {
	App        AppConfig        `mapstructure:"app"`
	HTTP       HTTPConfig       `mapstructure:"http"`
	Downloader DownloaderConfig `mapstructure:"downloader"`
	RabbitMq   RabbitMQConfig   `mapstructure:"rabbitmq"`
}

type AppConfig struct {
	Name     string `mapstructure:"name"`
	LogLevel int    `mapstructure:"logLevel"`
	Env      string `mapstructure:"env"`
}

type HTTPConfig struct {
	// Timeout of zero means no timeout
	Timeout   time.Duration `mapstructure:"timeout"`
	UserAgent string        `mapstructure:"userAgent"`
}

type DownloaderConfig struct {
	EchoConfig bool `mapstructure:"echoConfig"`
}

// RabbitMQConfig configures the download event stream. An empty URL disables it.
type RabbitMQConfig struct {
	URL      string `mapstructure:"url"`
	Exchange string `mapstructure:"exchange"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("app.name", "docfetch")
	v.SetDefault("app.logLevel", 3)
	v.SetDefault("app.env", "development")
	v.SetDefault("http.timeout", "0s")
	v.SetDefault("http.userAgent", "")
	v.SetDefault("downloader.echoConfig", false)
	v.SetDefault("rabbitmq.url", "")
	v.SetDefault("rabbitmq.exchange", "docfetch")
}

// Load reads the configuration from dir. Sources, lowest precedence first:
// defaults, docfetch.{json,yaml} in dir (or file when set), .env in dir,
// environment variables.
func Load(dir, file string) (*Config, error) {
	// .env never overrides variables that are already set
	if err := godotenv.Load(filepath.Join(dir, ".env")); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("error loading .env file: %w", err)
	}

	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if file != "" {
		v.SetConfigFile(file)
	} else {
		v.SetConfigName("docfetch")
		v.AddConfigPath(dir)
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if file != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}

	return &config, nil
}

// Get config for app
func (c *Config) GetAppConfig() *AppConfig {
	return &c.App
}

// Get config for the HTTP client
func (c *Config) GetHTTPConfig() *HTTPConfig {
	return &c.HTTP
}

// Get config for downloader
func (c *Config) GetDownloaderConfig() *DownloaderConfig {
	return &c.Downloader
}

// Get config for RabbitMQ
func (c *Config) GetRabbitMQConfig() *RabbitMQConfig {
	return &c.RabbitMq
}
