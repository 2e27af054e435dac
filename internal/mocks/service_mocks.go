// Code generated manually. DO NOT EDIT.

package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/thcfit/shipping-gateway/internal/carrier"
	"github.com/thcfit/shipping-gateway/internal/domain/dto"
	"github.com/thcfit/shipping-gateway/internal/domain/model"
	"github.com/thcfit/shipping-gateway/internal/service"
	"github.com/thcfit/shipping-gateway/internal/shipment"
)

var (
	_ service.ShippingService = (*MockShippingService)(nil)
	_ service.AdminService    = (*MockAdminService)(nil)
	_ service.AuditService    = (*MockAuditService)(nil)
	_ service.LoggingService  = (*MockLoggingService)(nil)
)

type MockShippingService struct {
	mock.Mock
}

func (m *MockShippingService) result(args mock.Arguments) (*carrier.Result, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*carrier.Result), args.Error(1)
}

func (m *MockShippingService) ValidateAddress(ctx context.Context, q dto.ValidateAddressQuery) (*carrier.Result, error) {
	return m.result(m.Called(ctx, q))
}

func (m *MockShippingService) Quote(ctx context.Context, req dto.QuoteRequest) (*carrier.Result, error) {
	return m.result(m.Called(ctx, req))
}

func (m *MockShippingService) CreateShipment(ctx context.Context, payload []byte) (*carrier.Result, error) {
	return m.result(m.Called(ctx, payload))
}

func (m *MockShippingService) CreateShipmentFromForm(ctx context.Context, form shipment.Form) (*carrier.Result, error) {
	return m.result(m.Called(ctx, form))
}

func (m *MockShippingService) Track(ctx context.Context, q dto.TrackQuery) (*carrier.Result, error) {
	return m.result(m.Called(ctx, q))
}

func (m *MockShippingService) ReferenceData(ctx context.Context, q dto.ReferenceDataQuery) (*carrier.Result, error) {
	return m.result(m.Called(ctx, q))
}

type MockAdminService struct {
	mock.Mock
}

func (m *MockAdminService) Login(ctx context.Context, username, password string) (*dto.LoginResponse, error) {
	args := m.Called(ctx, username, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.LoginResponse), args.Error(1)
}

func (m *MockAdminService) ValidateToken(tokenString string) (*dto.AdminClaims, error) {
	args := m.Called(tokenString)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.AdminClaims), args.Error(1)
}

func (m *MockAdminService) EnsureAdmin(ctx context.Context, username, password, fullName string) (bool, error) {
	args := m.Called(ctx, username, password, fullName)
	return args.Bool(0), args.Error(1)
}

type MockAuditService struct {
	mock.Mock
}

func (m *MockAuditService) Record(ctx context.Context, entry *model.AuditLogEntry, docs []carrier.Document) {
	m.Called(ctx, entry, docs)
}

func (m *MockAuditService) Search(ctx context.Context, q model.AuditQuery) ([]*model.AuditLogEntry, error) {
	args := m.Called(ctx, q)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.AuditLogEntry), args.Error(1)
}

type MockLoggingService struct {
	mock.Mock
}

func (m *MockLoggingService) CreateLog(ctx context.Context, entry *model.LogEntry) error {
	return m.Called(ctx, entry).Error(0)
}

func (m *MockLoggingService) CreateLogs(ctx context.Context, entries []*model.LogEntry) error {
	return m.Called(ctx, entries).Error(0)
}

func (m *MockLoggingService) QueryLogs(ctx context.Context, opts model.LogQueryOptions) ([]*model.LogEntry, error) {
	args := m.Called(ctx, opts)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.LogEntry), args.Error(1)
}

func (m *MockLoggingService) CountLogs(ctx context.Context, opts model.LogQueryOptions) (int64, error) {
	args := m.Called(ctx, opts)
	return args.Get(0).(int64), args.Error(1)
}
