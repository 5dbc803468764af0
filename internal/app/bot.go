package app

import (
	"context"

	"choretracker/internal/config"
	"choretracker/internal/delivery/bot"
)

// StartBot launches the long-poll update loop. It returns immediately;
// the loop runs until ctx is cancelled.
func StartBot(ctx context.Context) {
	cfg := config.Global()
	handler := bot.New(globalLogger, globalTaskService, globalAlertService, cfg.Bot.AdminID)

	info, err := globalBotAPI.Bots.GetBot(ctx)
	if err != nil {
		globalLogger.Warn().
			Err(err).
			Msg("failed to get bot info")
	} else {
		globalLogger.Info().
			Str("name", info.Name).
			Msg("connected to chat platform")
	}

	go func() {
		for update := range globalBotAPI.GetUpdates(ctx) {
			handler.HandleUpdate(ctx, globalBotAPI, update)
		}
		globalLogger.Info().Msg("bot update loop stopped")
	}()

	globalLogger.Info().Msg("started bot update loop")
}
