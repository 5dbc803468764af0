package app

import "context"

// StartAlerter launches the daily alert loop in the background.
func StartAlerter(ctx context.Context) {
	go globalAlertService.Run(ctx)
}
