package config

import (
	"errors"
	"fmt"

	"github.com/kelseyhightower/envconfig"
	"github.com/spf13/viper"
)

type Config struct {
	Server    ServerConfig
	Database  DatabaseConfig
	JWT       JWTConfig
	Redis     RedisConfig
	SMTP      SMTPConfig
	Cache     CacheConfig
	RateLimit RateLimitConfig
}

type ServerConfig struct {
	Port           int `mapstructure:"port" default:"8080"`
	TimeoutSeconds int `mapstructure:"timeoutSeconds" default:"30"`
}

type DatabaseConfig struct {
	Host     string `mapstructure:"host" default:"localhost"`
	Port     int    `mapstructure:"port" default:"5432"`
	User     string `mapstructure:"user" default:"postgres"`
	Password string `mapstructure:"password"`
	Name     string `mapstructure:"name" default:"clinicly"`
	SSLMode  string `mapstructure:"sslmode" default:"disable"`
}

type JWTConfig struct {
	Secret      string `mapstructure:"secret"`
	Issuer      string `mapstructure:"issuer" default:"clinicly"`
	Audience    string `mapstructure:"audience" default:"clinicly-web"`
	ExpiryHours int    `mapstructure:"expiry_hours" split_words:"true" default:"24"`
}

type RedisConfig struct {
	URL string `mapstructure:"url"`
}

type SMTPConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port" default:"587"`
	Username string `mapstructure:"username"`
	Password string `mapstructure:"password"`
	From     string `mapstructure:"from"`
}

type CacheConfig struct {
	TTLSeconds     int `mapstructure:"ttl_seconds" split_words:"true" default:"60"`
	CleanupSeconds int `mapstructure:"cleanup_seconds" split_words:"true" default:"300"`
}

type RateLimitConfig struct {
	RPS   float64 `mapstructure:"rps" default:"50"`
	Burst int     `mapstructure:"burst" default:"100"`
}

// setDefaults mirrors the envconfig `default` tags for the viper path, so a
// partial config.yaml falls back per key instead of yielding zero values.
func setDefaults() {
	viper.SetDefault("server.port", 8080)
	viper.SetDefault("server.timeoutSeconds", 30)
	viper.SetDefault("database.host", "localhost")
	viper.SetDefault("database.port", 5432)
	viper.SetDefault("database.user", "postgres")
	viper.SetDefault("database.name", "clinicly")
	viper.SetDefault("database.sslmode", "disable")
	viper.SetDefault("jwt.issuer", "clinicly")
	viper.SetDefault("jwt.audience", "clinicly-web")
	viper.SetDefault("jwt.expiry_hours", 24)
	viper.SetDefault("smtp.port", 587)
	viper.SetDefault("cache.ttl_seconds", 60)
	viper.SetDefault("cache.cleanup_seconds", 300)
	viper.SetDefault("ratelimit.rps", 50.0)
	viper.SetDefault("ratelimit.burst", 100)
}

// LoadConfig reads config.yaml with env overrides. When no config file is
// present the whole config comes from CLINICLY_* environment variables.
func LoadConfig() (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")

	setDefaults()
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		var config Config
		if err := envconfig.Process("clinicly", &config); err != nil {
			return nil, fmt.Errorf("failed to read config from environment: %w", err)
		}
		return &config, nil
	}

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &config, nil
}
