// Package app provides service initialization.
package app

import (
	"github.com/thcfit/shipping-gateway/config"
	"github.com/thcfit/shipping-gateway/internal/carrier"
	"github.com/thcfit/shipping-gateway/internal/circuitbreaker"
	"github.com/thcfit/shipping-gateway/internal/repository"
	"github.com/thcfit/shipping-gateway/internal/service"
	"github.com/thcfit/shipping-gateway/internal/shipment"
)

// ServiceComponents holds the business services behind the HTTP handlers.
type ServiceComponents struct {
	Shipping              service.ShippingService
	Audit                 service.AuditService
	Admins                service.AdminService
	RequestLogs           service.LoggingService
	CarrierCircuitBreaker *circuitbreaker.CircuitBreaker
	AddressCircuitBreaker *circuitbreaker.CircuitBreaker
}

// InitializeServices builds the carrier client and the services that use it.
func InitializeServices(cfg config.Config, db *DatabaseComponents) *ServiceComponents {
	carrierCB := circuitbreaker.New(carrier.BreakerConfig(breakerConfig(cfg.CircuitBreaker, "carrier")))
	addressCB := circuitbreaker.New(carrier.BreakerConfig(breakerConfig(cfg.CircuitBreaker, "carrier-address")))
	client := carrier.NewClient(carrier.Credentials{
		Username: cfg.Carrier.Username,
		Password: cfg.Carrier.Password,
		TokenURL: cfg.Carrier.TokenURL,
		APIKey:   cfg.Carrier.AddressValidationKey,
	}, cfg.Carrier.Timeout,
		carrier.WithCircuitBreaker(carrierCB),
		carrier.WithAddressCircuitBreaker(addressCB),
	)

	var auditRepo repository.AuditRepositoryInterface
	var adminRepo repository.AdminRepositoryInterface
	var archive service.DocumentStore
	var requestLogs service.LoggingService
	if db != nil {
		auditRepo = db.AuditRepo
		adminRepo = db.AdminRepo
		archive = db.Archive
		requestLogs = db.LoggingService
	}
	if requestLogs == nil {
		requestLogs = service.NewLoggingService(nil)
	}

	audit := service.NewAuditService(auditRepo, archive)
	tokens := service.NewTokenService(cfg.Auth.JWTSecretKey, cfg.Auth.AccessTokenTTL)

	return &ServiceComponents{
		Shipping:              service.NewShippingService(client, audit, shipment.NewBuilder(shipment.WithDefaultCurrency(cfg.Carrier.DefaultCurrency)), cfg.Carrier),
		Audit:                 audit,
		Admins:                service.NewAdminService(adminRepo, tokens),
		RequestLogs:           requestLogs,
		CarrierCircuitBreaker: carrierCB,
		AddressCircuitBreaker: addressCB,
	}
}
