package config

import "time"

const (
	EnvDev   = "dev"
	EnvProd  = "prod"
	EnvLocal = "local"
)

var globalConfig *Config

func Global() *Config {
	return globalConfig
}

func SetGlobal(cfg *Config) {
	globalConfig = cfg
}

type Config struct {
	Env      string `env:"ENV" env-required:"true"`
	HTTP     HTTPConfig
	Postgres PostgresConfig
	Bot      BotConfig
	OAuth    OAuthConfig
	JWT      JWTConfig
	Alert    AlertConfig
}

type HTTPConfig struct {
	Host            string        `env:"HTTP_HOST" env-default:"0.0.0.0"`
	Port            string        `env:"HTTP_PORT" env-default:"8080"`
	BaseURL         string        `env:"HTTP_BASE_URL" env-default:"http://localhost:8080"`
	ShutdownTimeout time.Duration `env:"HTTP_SHUTDOWN_TIMEOUT" env-default:"5s"`
}

type PostgresConfig struct {
	Host           string        `env:"POSTGRES_HOST" env-required:"true"`
	Port           int           `env:"POSTGRES_PORT" env-default:"5432"`
	Username       string        `env:"POSTGRES_USERNAME" env-required:"true"`
	Password       string        `env:"POSTGRES_PASSWORD" env-required:"true"`
	Database       string        `env:"POSTGRES_DATABASE" env-required:"true"`
	SSLMode        string        `env:"POSTGRES_SSL_MODE" env-default:"disable"`
	ConnectTimeout time.Duration `env:"POSTGRES_CONNECT_TIMEOUT" env-default:"10s"`
	PingTimeout    time.Duration `env:"POSTGRES_PING_TIMEOUT" env-default:"10s"`
}

type BotConfig struct {
	Token string `env:"CHORETRACKER_BOT_TOKEN" env-required:"true"`
	// AdminID gates the /runalerts command; zero disables it.
	AdminID int64 `env:"CHORETRACKER_BOT_ADMIN_ID" env-default:"0"`
}

type OAuthConfig struct {
	ClientID     string `env:"CHORETRACKER_CLIENT_ID" env-required:"true"`
	ClientSecret string `env:"CHORETRACKER_CLIENT_SECRET" env-required:"true"`
	AuthURL      string `env:"CHORETRACKER_OAUTH_AUTH_URL" env-default:"https://discord.com/api/oauth2/authorize"`
	TokenURL     string `env:"CHORETRACKER_OAUTH_TOKEN_URL" env-default:"https://discord.com/api/oauth2/token"`
	UserInfoURL  string `env:"CHORETRACKER_OAUTH_USER_URL" env-default:"https://discord.com/api/users/@me"`
}

type JWTConfig struct {
	Issuer          string        `env:"JWT_ISSUER" env-default:"choretracker"`
	SigningKey      string        `env:"JWT_SIGNING_KEY" env-required:"true"`
	AccessTokenTTL  time.Duration `env:"JWT_ACCESS_TOKEN_TTL" env-default:"15m"`
	RefreshTokenTTL time.Duration `env:"JWT_REFRESH_TOKEN_TTL" env-default:"720h"`
}

type AlertConfig struct {
	// Hour is the local wall-clock hour the daily alert pass fires at.
	Hour int `env:"CHORETRACKER_ALERT_HOUR" env-default:"6"`
}
