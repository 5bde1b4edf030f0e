package config

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const (
	DefaultAccessTokenMinutes = 30
	DefaultHTTPAddress        = ":8080"
)

// Config is built once at startup and never mutated afterwards.
type Config struct {
	DatabaseURL       string
	DBMaxOpenConns    int
	DBMaxIdleConns    int
	DBConnMaxLifetime time.Duration

	SecretKey      string
	AccessTokenTTL time.Duration
	Issuer         string
	Audience       string
	PasswordPepper string

	HTTPAddress   string
	HTTPSCertFile string
	HTTPSKeyFile  string
	Environment   string
	LogLevel      string

	AllowedOrigins   []string
	AllowCredentials bool
	TrustedProxies   []string

	RedisAddress  string
	RedisPassword string
	RedisDB       int

	LoginMaxAttempts   int64
	LoginLockoutWindow time.Duration

	RateLimitRPS   int
	RateLimitBurst int
}

var required = []string{
	"DATABASE_URL",
	"SECRET_KEY",
}

func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("json")
	v.AddConfigPath(".")
	v.AutomaticEnv()

	v.SetDefault("ACCESS_TOKEN_EXPIRE_MINUTES", DefaultAccessTokenMinutes)
	v.SetDefault("HTTP_ADDRESS", DefaultHTTPAddress)
	v.SetDefault("ENVIRONMENT", "development")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("ALLOW_CREDENTIALS", true)
	v.SetDefault("REDIS_DB", 0)
	v.SetDefault("LOGIN_MAX_ATTEMPTS", 5)
	v.SetDefault("LOGIN_LOCKOUT_WINDOW", 15*time.Minute)
	v.SetDefault("RATE_LIMIT_RPS", 50)
	v.SetDefault("RATE_LIMIT_BURST", 100)
	v.SetDefault("DB_MAX_OPEN_CONNS", 25)
	v.SetDefault("DB_MAX_IDLE_CONNS", 5)
	v.SetDefault("DB_CONN_MAX_LIFETIME", 30*time.Minute)

	for _, key := range []string{
		"DATABASE_URL", "SECRET_KEY", "JWT_ISSUER", "JWT_AUDIENCE", "PASSWORD_PEPPER",
		"HTTPS_CERT_FILE", "HTTPS_KEY_FILE", "CORS_ALLOWED_ORIGINS", "TRUSTED_PROXIES",
		"REDIS_ADDRESS", "REDIS_PASSWORD",
	} {
		if err := v.BindEnv(key); err != nil {
			return nil, err
		}
	}

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var missing []string
	for _, key := range required {
		if v.GetString(key) == "" {
			missing = append(missing, key)
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("required configuration is not set: %s", strings.Join(missing, ", "))
	}

	return &Config{
		DatabaseURL:       v.GetString("DATABASE_URL"),
		DBMaxOpenConns:    v.GetInt("DB_MAX_OPEN_CONNS"),
		DBMaxIdleConns:    v.GetInt("DB_MAX_IDLE_CONNS"),
		DBConnMaxLifetime: v.GetDuration("DB_CONN_MAX_LIFETIME"),

		SecretKey:      v.GetString("SECRET_KEY"),
		AccessTokenTTL: accessTTL(v),
		Issuer:         v.GetString("JWT_ISSUER"),
		Audience:       v.GetString("JWT_AUDIENCE"),
		PasswordPepper: v.GetString("PASSWORD_PEPPER"),

		HTTPAddress:   v.GetString("HTTP_ADDRESS"),
		HTTPSCertFile: v.GetString("HTTPS_CERT_FILE"),
		HTTPSKeyFile:  v.GetString("HTTPS_KEY_FILE"),
		Environment:   v.GetString("ENVIRONMENT"),
		LogLevel:      v.GetString("LOG_LEVEL"),

		AllowedOrigins:   splitList(v.GetString("CORS_ALLOWED_ORIGINS")),
		AllowCredentials: v.GetBool("ALLOW_CREDENTIALS"),
		TrustedProxies:   splitList(v.GetString("TRUSTED_PROXIES")),

		RedisAddress:  v.GetString("REDIS_ADDRESS"),
		RedisPassword: v.GetString("REDIS_PASSWORD"),
		RedisDB:       v.GetInt("REDIS_DB"),

		LoginMaxAttempts:   v.GetInt64("LOGIN_MAX_ATTEMPTS"),
		LoginLockoutWindow: v.GetDuration("LOGIN_LOCKOUT_WINDOW"),

		RateLimitRPS:   v.GetInt("RATE_LIMIT_RPS"),
		RateLimitBurst: v.GetInt("RATE_LIMIT_BURST"),
	}, nil
}

func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// accessTTL falls back to the default when the value is not a positive integer.
func accessTTL(v *viper.Viper) time.Duration {
	minutes, err := strconv.Atoi(strings.TrimSpace(v.GetString("ACCESS_TOKEN_EXPIRE_MINUTES")))
	if err != nil || minutes <= 0 {
		minutes = DefaultAccessTokenMinutes
	}
	return time.Duration(minutes) * time.Minute
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
