package main

import (
	"velvetroom/internal/app"
	"velvetroom/pkg/config"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	if cfg.StripeSecretKey == "" {
		panic("STRIPE_SECRET_KEY must be set in environment variables")
	}
	if cfg.StripeWebhookSecret == "" {
		panic("STRIPE_WEBHOOK_SECRET must be set in environment variables")
	}

	application, err := app.NewApp(cfg)
	if err != nil {
		panic(err)
	}

	if err := application.Run(); err != nil {
		panic(err)
	}

	application.Wait()

	if err := application.Shutdown(); err != nil {
		panic(err)
	}
}
