package config

import (
	"time"

	"github.com/caarlos0/env/v10"
)

// Config centraliza la configuración del servicio.
type Config struct {
	HTTPPort                 string `env:"HTTP_PORT" envDefault:"8080"`
	DatabaseURL              string `env:"DATABASE_URL,required"`
	SecretKey                string `env:"SECRET_KEY,required,notEmpty"`
	Algorithm                string `env:"ALGORITHM" envDefault:"HS256"`
	AccessTokenExpireMinutes int    `env:"ACCESS_TOKEN_EXPIRE_MINUTES" envDefault:"30"`
	BcryptCost               int    `env:"BCRYPT_COST" envDefault:"10"`
	RedisAddr                string `env:"REDIS_ADDR"`
	RedisPassword            string `env:"REDIS_PASSWORD"`
	RedisDB                  int    `env:"REDIS_DB" envDefault:"0"`
	LoginMaxAttempts         int    `env:"LOGIN_MAX_ATTEMPTS" envDefault:"10"`
	LoginWindowMinutes       int    `env:"LOGIN_WINDOW_MINUTES" envDefault:"10"`
	SMTPHost                 string `env:"SMTP_HOST"`
	SMTPPort                 int    `env:"SMTP_PORT" envDefault:"587"`
	SMTPUser                 string `env:"SMTP_USER"`
	SMTPPass                 string `env:"SMTP_PASS"`
	SMTPFrom                 string `env:"SMTP_FROM"`
	SMTPFromName             string `env:"SMTP_FROM_NAME"`
	SMTPUseTLS               bool   `env:"SMTP_USE_TLS" envDefault:"false"`
}

// LoadConfig carga la configuración desde variables de entorno.
func LoadConfig() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// AccessTokenTTL devuelve la vida util del access token.
func (c *Config) AccessTokenTTL() time.Duration {
	return time.Duration(c.AccessTokenExpireMinutes) * time.Minute
}

// LoginWindow devuelve la ventana del limitador de login.
func (c *Config) LoginWindow() time.Duration {
	return time.Duration(c.LoginWindowMinutes) * time.Minute
}
