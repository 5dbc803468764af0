package app

import (
	maxbot "github.com/max-messenger/max-bot-api-client-go"

	"choretracker/internal/clock"
	"choretracker/internal/config"
	"choretracker/internal/delivery/bot"
	"choretracker/internal/services"
)

var (
	globalClock          *clock.Clock
	globalBotAPI         *maxbot.Api
	globalTaskService    services.TaskService
	globalSessionService services.SessionService
	globalAuthService    services.AuthService
	globalAlertService   services.AlertService
)

// MustInitServices wires the service layer once at startup so the bot and
// web layers share the same instances.
func MustInitServices() {
	cfg := config.Global()

	globalClock = clock.New(clock.ResolveZone(globalLogger))
	globalLogger.Info().
		Str("zone", globalClock.Location().String()).
		Msg("resolved time zone")

	api, err := maxbot.New(cfg.Bot.Token)
	if err != nil {
		globalLogger.Error().
			Err(err).
			Msg("failed to create bot api client")
		panic(err)
	}
	globalBotAPI = api

	globalTaskService = services.NewTaskService(globalLogger, globalPostgresPool, globalClock)
	globalSessionService = services.NewSessionService(
		globalLogger,
		globalPostgresPool,
		cfg.JWT.Issuer,
		[]byte(cfg.JWT.SigningKey),
		cfg.JWT.AccessTokenTTL,
		cfg.JWT.RefreshTokenTTL,
	)
	globalAuthService = services.NewAuthService(
		globalLogger,
		cfg.OAuth.ClientID,
		cfg.OAuth.ClientSecret,
		cfg.OAuth.AuthURL,
		cfg.OAuth.TokenURL,
		cfg.OAuth.UserInfoURL,
		cfg.HTTP.BaseURL+"/auth/callback",
		cfg.JWT.Issuer,
		[]byte(cfg.JWT.SigningKey),
	)

	notifier := bot.NewNotifier(globalLogger, globalBotAPI)
	globalAlertService = services.NewAlertService(
		globalLogger,
		globalTaskService,
		notifier,
		globalClock,
		cfg.Alert.Hour,
	)

	globalLogger.Info().Msg("initialized services")
}
