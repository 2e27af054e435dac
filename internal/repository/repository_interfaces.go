package repository

import (
	"context"

	"github.com/thcfit/shipping-gateway/internal/domain/model"
)

// AuditRepositoryInterface defines the shipment_logs operations.
type AuditRepositoryInterface interface {
	Insert(ctx context.Context, entry *model.AuditLogEntry) error
	Query(ctx context.Context, q model.AuditQuery) ([]*model.AuditLogEntry, error)
}

// AdminRepositoryInterface defines the dbs_users operations.
type AdminRepositoryInterface interface {
	FindByUsername(ctx context.Context, username string) (*model.AdminUser, error)
	CreateIfAbsent(ctx context.Context, user *model.AdminUser) (bool, error)
}

// LogsRepositoryInterface defines the interface for logs repository operations.
type LogsRepositoryInterface interface {
	Create(ctx context.Context, entry *model.LogEntry) error
	CreateMany(ctx context.Context, entries []*model.LogEntry) error
	Query(ctx context.Context, opts model.LogQueryOptions) ([]*model.LogEntry, error)
	Count(ctx context.Context, opts model.LogQueryOptions) (int64, error)
}

var (
	_ AuditRepositoryInterface = (*AuditRepository)(nil)
	_ AuditRepositoryInterface = (*AuditRepositoryWithCircuitBreaker)(nil)
	_ AdminRepositoryInterface = (*AdminRepository)(nil)
	_ LogsRepositoryInterface  = (*LogsRepository)(nil)
	_ LogsRepositoryInterface  = (*LogsRepositoryWithCircuitBreaker)(nil)
)
