// Package main is the entry point for the shipping-gateway server.
//
// @title           Shipping Gateway API
// @version         1.0.0
// @description     Authenticated proxy in front of the DHL Express API.
//
//	Validates addresses, quotes rates, books shipments and tracks parcels,
//	recording every booking and quote in an audit log.
//
// @contact.name   API Support
// @contact.url    https://github.com/thcfit/shipping-gateway
//
// @host      localhost:8080
// @BasePath  /
//
// @securityDefinitions.apikey  ApiKeyAuth
// @in                          header
// @name                        X-API-Key
// @description                 API key for the carrier routes. Required when API_KEYS is set.
//
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
// @description                 Admin access token, "Bearer <token>".
//
// @tag.name        Carrier
// @tag.description Proxied carrier operations
//
// @tag.name        Admin
// @tag.description Audit and request log search
//
// @tag.name        Health
// @tag.description Health check endpoints
package main

import (
	"context"

	"github.com/rs/zerolog/log"

	_ "github.com/thcfit/shipping-gateway/docs" // swagger docs

	"github.com/thcfit/shipping-gateway/config"
	"github.com/thcfit/shipping-gateway/internal/app"
)

func main() {
	cfg := config.Load()

	gateway := app.InitializeApp(context.Background(), cfg)
	server := gateway.NewServer()

	if err := server.Run(); err != nil {
		log.Fatal().Err(err).Msg("Server error")
	}
}
