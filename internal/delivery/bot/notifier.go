package bot

import (
	"context"

	maxbot "github.com/max-messenger/max-bot-api-client-go"
	"github.com/rs/zerolog"

	"choretracker/internal/services"
)

type maxNotifier struct {
	logger zerolog.Logger
	api    *maxbot.Api
}

// NewNotifier adapts the chat client into the alerter's Notifier contract.
func NewNotifier(logger zerolog.Logger, api *maxbot.Api) services.Notifier {
	return &maxNotifier{
		logger: logger,
		api:    api,
	}
}

func (n *maxNotifier) SendDirectMessage(ctx context.Context, ownerID int64, text string) error {
	_, err := n.api.Messages.Send(ctx, maxbot.NewMessage().SetUser(ownerID).SetText(text))
	if err != nil {
		return err
	}

	n.logger.Debug().
		Int64("owner_id", ownerID).
		Msg("sent direct message")
	return nil
}
