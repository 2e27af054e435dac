// Package app provides admin account bootstrap.
package app

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/thcfit/shipping-gateway/config"
)

const bootstrapTimeout = 10 * time.Second

// adminBootstrapper is the part of the admin service used at startup.
type adminBootstrapper interface {
	EnsureAdmin(ctx context.Context, username, password, fullName string) (bool, error)
}

// bootstrapAdmin creates the configured admin account when it does not exist yet.
// An existing account is never overwritten.
func bootstrapAdmin(ctx context.Context, admins adminBootstrapper, cfg config.AuthConfig) error {
	if cfg.AdminUsername == "" || cfg.AdminPassword == "" {
		log.Debug().Msg("ADMIN_USERNAME/ADMIN_PASSWORD not set - skipping admin bootstrap")
		return nil
	}

	ctx, cancel := context.WithTimeout(ctx, bootstrapTimeout)
	defer cancel()

	created, err := admins.EnsureAdmin(ctx, cfg.AdminUsername, cfg.AdminPassword, cfg.AdminFullName)
	if err != nil {
		return err
	}
	if created {
		log.Info().Str("username", cfg.AdminUsername).Msg("Created admin user")
	}
	return nil
}
