package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const EnvPrefix = "SHORTLINK"

type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	App       AppConfig       `mapstructure:"app"`
	Generator GeneratorConfig `mapstructure:"generator"`
	Events    EventsConfig    `mapstructure:"events"`
	Redis     RedisConfig     `mapstructure:"redis"`
}

type ServerConfig struct {
	Host            string        `mapstructure:"host"`
	Port            string        `mapstructure:"port"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

type AppConfig struct {
	// BaseURL пустой - короткие ссылки строятся из запроса
	BaseURL                string   `mapstructure:"base_url"`
	Environment            string   `mapstructure:"environment"`
	AllowedOrigins         []string `mapstructure:"allowed_origins"`
	TrustedProxies         []string `mapstructure:"trusted_proxies"`
	DefaultValidityMinutes float64  `mapstructure:"default_validity_minutes"`
}

type GeneratorConfig struct {
	MaxAttempts int `mapstructure:"max_attempts"`
}

type EventsConfig struct {
	Enabled        bool          `mapstructure:"enabled"`
	BufferSize     int           `mapstructure:"buffer_size"`
	Workers        int           `mapstructure:"workers"`
	Namespace      string        `mapstructure:"namespace"`
	MaxLen         int64         `mapstructure:"max_len"`
	PublishTimeout time.Duration `mapstructure:"publish_timeout"`
}

type RedisConfig struct {
	Host         string `mapstructure:"host"`
	Port         string `mapstructure:"port"`
	Password     string `mapstructure:"password"`
	DB           int    `mapstructure:"db"`
	PoolSize     int    `mapstructure:"pool_size"`
	MinIdleConns int    `mapstructure:"min_idle_conns"`
	MaxRetries   int    `mapstructure:"max_retry"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.host", "localhost")
	v.SetDefault("server.port", "8080")
	v.SetDefault("server.read_timeout", 10*time.Second)
	v.SetDefault("server.write_timeout", 10*time.Second)
	v.SetDefault("server.shutdown_timeout", 5*time.Second)

	// App defaults
	v.SetDefault("app.base_url", "")
	v.SetDefault("app.environment", "development")
	v.SetDefault("app.allowed_origins", []string{"*"})
	v.SetDefault("app.trusted_proxies", []string{})
	v.SetDefault("app.default_validity_minutes", 30)

	v.SetDefault("generator.max_attempts", 5)

	v.SetDefault("events.enabled", false)
	v.SetDefault("events.buffer_size", 1024)
	v.SetDefault("events.workers", 2)
	v.SetDefault("events.namespace", "shortlink")
	v.SetDefault("events.max_len", 100000)
	v.SetDefault("events.publish_timeout", 2*time.Second)

	// Redis defaults
	v.SetDefault("redis.host", "localhost")
	v.SetDefault("redis.port", "6379")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)
	v.SetDefault("redis.pool_size", 10)
	v.SetDefault("redis.min_idle_conns", 5)
	v.SetDefault("redis.max_retry", 3)
}

// Load reads configuration from path, or from config.yaml in ./configs or
// the working directory when path is empty. Environment variables
// (SHORTLINK_SERVER_PORT and so on) override both.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath("./configs")
		v.AddConfigPath(".")
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config: %w", err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	config.App.BaseURL = strings.TrimRight(config.App.BaseURL, "/")
	return &config, nil
}

func (c *Config) Validate() error {
	if c.Server.Port == "" {
		return errors.New("server.port must be set")
	}
	if c.App.DefaultValidityMinutes <= 0 {
		return fmt.Errorf("app.default_validity_minutes must be positive, got %v", c.App.DefaultValidityMinutes)
	}
	if c.Generator.MaxAttempts <= 0 {
		return fmt.Errorf("generator.max_attempts must be positive, got %d", c.Generator.MaxAttempts)
	}
	if c.Events.Enabled && (c.Events.BufferSize <= 0 || c.Events.Workers <= 0) {
		return errors.New("events.buffer_size and events.workers must be positive when events are enabled")
	}
	return nil
}

func (c *Config) GetServerAddress() string {
	return fmt.Sprintf("%s:%s", c.Server.Host, c.Server.Port)
}

func (c *Config) GetBaseURL() string {
	return c.App.BaseURL
}

func (c *Config) DefaultValidity() time.Duration {
	return time.Duration(c.App.DefaultValidityMinutes * float64(time.Minute))
}

func (c *Config) IsProduction() bool {
	return strings.ToLower(c.App.Environment) == "production"
}

func (c *Config) IsDevelopment() bool {
	return strings.ToLower(c.App.Environment) == "development"
}

func (c *Config) GetAllowedOrigins() []string {
	if len(c.App.AllowedOrigins) == 0 {
		if c.IsProduction() && c.App.BaseURL != "" {
			// В продакшене требуем явного указания origins
			return []string{c.App.BaseURL}
		}
		return []string{"*"}
	}
	return c.App.AllowedOrigins
}
