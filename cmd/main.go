// Package main is the entry point for the pricing-service application.
//
// @title           Pricing Service API
// @version         1.0.0
// @description     Prices single-item orders: subtotal, percentage discount, 8% tax and a distance-based delivery fee that is waived above 50.
//
// @termsOfService  http://swagger.io/terms/
//
// @contact.name   API Support
// @contact.email  support@example.com
// @contact.url    https://github.com/guttosm/pricing-service
//
// @license.name  MIT
// @license.url   https://opensource.org/licenses/MIT
//
// @host      localhost:8080
// @BasePath  /
//
// @securityDefinitions.apikey  ApiKeyAuth
// @in                          header
// @name                        X-API-Key
// @description                 API key, required when AUTH_ENABLED is set without client credentials.
//
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
// @description                 Bearer access token from /api/auth/token. Format: "Bearer {token}"
//
// @tag.name        Quotes
// @tag.description Order price calculation
//
// @tag.name        Auth
// @tag.description Client credential exchange
//
// @tag.name        Audit
// @tag.description Stored request and audit trail
//
// @tag.name        Health
// @tag.description Health check endpoints
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"

	"github.com/guttosm/pricing-service/config"
	_ "github.com/guttosm/pricing-service/docs" // swagger docs
	"github.com/guttosm/pricing-service/internal/app"
)

func main() {
	// .env is optional; real environment variables take precedence.
	envErr := godotenv.Load()

	cfg := config.Load()
	application := app.InitializeApp(cfg)

	if envErr != nil && !os.IsNotExist(envErr) {
		log.Warn().Err(envErr).Msg("Failed to read .env file")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	server := app.NewServer(application.Router, cfg.Server)
	server.OnShutdown(application.Close)

	if err := server.Run(ctx); err != nil {
		log.Fatal().Err(err).Msg("Server error")
	}
}
