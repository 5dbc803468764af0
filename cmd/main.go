package main

import (
	"context"

	"choretracker/internal/app"
)

func main() {
	app.InitDefaultLogger()
	app.MustReadEnv()
	app.MustInitApplicationLogger()

	app.MustConnectPostgres()
	defer app.DisconnectPostgres()

	app.MustInitServices()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	app.StartBot(ctx)
	app.StartAlerter(ctx)

	app.MustListenAndServeHTTP()
}
