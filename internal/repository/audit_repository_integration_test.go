//go:build integration

package repository

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thcfit/shipping-gateway/internal/domain/model"
)

func TestAuditRepository_Integration(t *testing.T) {
	ctx := context.Background()
	pg := setupPostgres(t)
	repo := NewAuditRepository(pg)

	success := model.NewAuditLogEntry(model.ActionShipment, model.OutcomeSuccess)
	success.StatusCode = 201
	success.RequestReference = "REF-001"
	success.ShipperName = "Somchai"
	success.ShipperCompany = "THC Fitness"
	success.ShipperPhone = "+66 81 234 5678"
	success.ShipperCountry = "TH"
	success.ShipperAccountNumber = "123456789"
	success.ReceiverName = "Jane Doe"
	success.ReceiverCountry = "AU"
	success.DutyAccountNumber = "987654321"
	success.TrackingNumber = "1234567890"
	success.Label = "https://bucket.example/label.pdf"
	success.Warnings = []string{"pickup window shortened"}
	success.RequestData = json.RawMessage(`{"productCode":"P"}`)
	success.ResponseData = json.RawMessage(`{"shipmentTrackingNumber":"1234567890"}`)

	failure := model.NewAuditLogEntry(model.ActionQuote, model.OutcomeError)
	failure.StatusCode = 400
	failure.ErrorClass = "application_error"
	failure.ShipperCountry = "TH"
	failure.ReceiverCountry = "US"
	failure.ErrorMessage = "postalCode is required"

	t.Run("insert assigns id and timestamp", func(t *testing.T) {
		require.NoError(t, repo.Insert(ctx, success))
		require.NoError(t, repo.Insert(ctx, failure))

		assert.NotZero(t, success.ID)
		assert.False(t, success.CreatedAt.IsZero())
		assert.Greater(t, failure.ID, success.ID)
	})

	t.Run("newest first", func(t *testing.T) {
		rows, err := repo.Query(ctx, model.AuditQuery{})
		require.NoError(t, err)
		require.Len(t, rows, 2)
		assert.Equal(t, failure.ID, rows[0].ID)
		assert.Equal(t, "quote_error", rows[0].LogType)
	})

	t.Run("round trips every column", func(t *testing.T) {
		rows, err := repo.Query(ctx, model.AuditQuery{TrackingNumber: "1234567890"})
		require.NoError(t, err)
		require.Len(t, rows, 1)

		got := rows[0]
		assert.Equal(t, "shipment_success", got.LogType)
		assert.Equal(t, 201, got.StatusCode)
		assert.Equal(t, []string{"pickup window shortened"}, got.Warnings)
		assert.JSONEq(t, `{"productCode":"P"}`, string(got.RequestData))
		assert.Equal(t, "https://bucket.example/label.pdf", got.Label)
		assert.Empty(t, got.ErrorMessage)
	})

	tests := []struct {
		name  string
		query model.AuditQuery
		want  int
	}{
		{name: "wildcard tracking number", query: model.AuditQuery{TrackingNumber: "12*90"}, want: 1},
		{name: "shipper company matches name filter", query: model.AuditQuery{ShipperName: "fitness"}, want: 1},
		{name: "duty account matches account filter", query: model.AuditQuery{AccountNumber: "987654321"}, want: 1},
		{name: "partial account does not match", query: model.AuditQuery{AccountNumber: "9876"}, want: 0},
		{name: "phone fragment", query: model.AuditQuery{Phone: "234 5678"}, want: 1},
		{name: "shipper country prefix", query: model.AuditQuery{ShipperCountry: "T"}, want: 2},
		{name: "receiver country prefix", query: model.AuditQuery{ReceiverCountry: "U"}, want: 1},
		{name: "log type", query: model.AuditQuery{LogType: "quote_error"}, want: 1},
		{name: "reference", query: model.AuditQuery{Reference: "ref-0"}, want: 1},
		{name: "limit", query: model.AuditQuery{Limit: 1}, want: 1},
		{name: "offset past end", query: model.AuditQuery{Offset: 5}, want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rows, err := repo.Query(ctx, tt.query)
			require.NoError(t, err)
			assert.Len(t, rows, tt.want)
		})
	}

	t.Run("date range", func(t *testing.T) {
		future := time.Now().Add(time.Hour)
		past := time.Now().Add(-time.Hour)

		rows, err := repo.Query(ctx, model.AuditQuery{From: &future})
		require.NoError(t, err)
		assert.Empty(t, rows)

		rows, err = repo.Query(ctx, model.AuditQuery{From: &past, To: &future})
		require.NoError(t, err)
		assert.Len(t, rows, 2)
	})
}

func TestAdminRepository_Integration(t *testing.T) {
	ctx := context.Background()
	pg := setupPostgres(t)
	repo := NewAdminRepository(pg)

	user := &model.AdminUser{Username: "admin", PasswordHash: "$2a$10$hash", FullName: "Admin User"}

	created, err := repo.CreateIfAbsent(ctx, user)
	require.NoError(t, err)
	assert.True(t, created)

	created, err = repo.CreateIfAbsent(ctx, &model.AdminUser{Username: "admin", PasswordHash: "other"})
	require.NoError(t, err)
	assert.False(t, created)

	found, err := repo.FindByUsername(ctx, "admin")
	require.NoError(t, err)
	assert.Equal(t, "$2a$10$hash", found.PasswordHash)
	assert.Equal(t, "Admin User", found.FullName)

	_, err = repo.FindByUsername(ctx, "nobody")
	assert.ErrorIs(t, err, ErrAdminNotFound)
}
