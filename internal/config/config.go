package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Port string `mapstructure:"PORT"`
	Env  string `mapstructure:"ENV"`

	// Si está vacío, el router cae a repos in-memory (modo dev).
	DBDSN string `mapstructure:"DB_DSN"`

	// Si está vacío, no hay verifier y el middleware acepta X-Debug-* headers.
	JWTSecret     string `mapstructure:"JWT_SECRET"`
	TokenTTLHours int    `mapstructure:"TOKEN_TTL_HOURS"`

	// Código que debe presentar quien se registra como Admin.
	AdminSignupCode string `mapstructure:"ADMIN_SIGNUP_CODE"`

	LogLevel  string `mapstructure:"LOG_LEVEL"`
	LogFormat string `mapstructure:"LOG_FORMAT"`

	CORSOrigins []string `mapstructure:"CORS_ORIGINS"`
}

// Load lee config desde env y un .env opcional (no falla si no existe).
func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigFile(".env")
	v.SetConfigType("env")
	v.AutomaticEnv()

	v.SetDefault("PORT", "8080")
	v.SetDefault("ENV", "development")
	v.SetDefault("TOKEN_TTL_HOURS", 24)
	v.SetDefault("ADMIN_SIGNUP_CODE", "ADMIN123")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "text")
	v.SetDefault("CORS_ORIGINS", "http://localhost:3000")

	v.BindEnv("PORT")
	v.BindEnv("ENV")
	v.BindEnv("DB_DSN")
	v.BindEnv("JWT_SECRET")
	v.BindEnv("TOKEN_TTL_HOURS")
	v.BindEnv("ADMIN_SIGNUP_CODE")
	v.BindEnv("LOG_LEVEL")
	v.BindEnv("LOG_FORMAT")
	v.BindEnv("CORS_ORIGINS")

	_ = v.ReadInConfig()

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	// CORS_ORIGINS llega como string por env; viper no lo parte solo.
	if len(cfg.CORSOrigins) <= 1 {
		if raw := strings.TrimSpace(v.GetString("CORS_ORIGINS")); raw != "" {
			cfg.CORSOrigins = strings.Split(raw, ",")
		}
	}

	return cfg, nil
}

func (c *Config) IsDev() bool {
	return c.Env == "development"
}

func (c *Config) TokenTTL() time.Duration {
	h := c.TokenTTLHours
	if h <= 0 {
		h = 24
	}
	return time.Duration(h) * time.Hour
}

// Validate: en producción no se arranca sin secreto JWT ni sin DB.
func (c *Config) Validate() error {
	if c.IsDev() {
		return nil
	}
	if strings.TrimSpace(c.JWTSecret) == "" {
		return fmt.Errorf("JWT_SECRET is required when ENV=%q", c.Env)
	}
	if strings.TrimSpace(c.DBDSN) == "" {
		return fmt.Errorf("DB_DSN is required when ENV=%q", c.Env)
	}
	return nil
}
