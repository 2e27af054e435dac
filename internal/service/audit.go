package service

import (
	"context"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/thcfit/shipping-gateway/internal/carrier"
	"github.com/thcfit/shipping-gateway/internal/domain/model"
	"github.com/thcfit/shipping-gateway/internal/metrics"
	"github.com/thcfit/shipping-gateway/internal/repository"
	"github.com/thcfit/shipping-gateway/internal/storage"
)

// Audit write results reported to metrics.
const (
	auditWritten  = "written"
	auditFailed   = "failed"
	auditDisabled = "disabled"
)

// auditWriteTimeout bounds one audit insert; the proxied call already has its answer.
const auditWriteTimeout = 5 * time.Second

// DocumentStore archives one carrier document and returns its URL.
type DocumentStore interface {
	Store(ctx context.Context, doc storage.Document) (string, error)
}

// AuditService records proxied carrier calls in the audit log.
type AuditService interface {
	// Record stores entry best-effort. Failures are logged and never returned.
	Record(ctx context.Context, entry *model.AuditLogEntry, docs []carrier.Document)
	// Search returns audit rows for the admin UI.
	Search(ctx context.Context, q model.AuditQuery) ([]*model.AuditLogEntry, error)
}

// AuditServiceImpl implements AuditService.
type AuditServiceImpl struct {
	repo    repository.AuditRepositoryInterface
	archive DocumentStore
}

// NewAuditService creates a new audit service. Both dependencies are
// optional: without repo rows are only logged, without archive documents
// are stored inline as base64.
func NewAuditService(repo repository.AuditRepositoryInterface, archive DocumentStore) *AuditServiceImpl {
	return &AuditServiceImpl{
		repo:    repo,
		archive: archive,
	}
}

// Record stores entry with its documents attached.
func (s *AuditServiceImpl) Record(ctx context.Context, entry *model.AuditLogEntry, docs []carrier.Document) {
	if entry == nil {
		return
	}
	// the caller's request may be finished; the audit write must not be cancelled with it
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), auditWriteTimeout)
	defer cancel()

	s.attachDocuments(ctx, entry, docs)

	logger := log.With().
		Str("request_id", entry.RequestID).
		Str("log_type", entry.LogType).
		Int("status_code", entry.StatusCode).
		Logger()

	if s.repo == nil {
		metrics.RecordAuditWrite(auditDisabled)
		logger.Info().Str("tracking_number", entry.TrackingNumber).Msg("Audit store disabled; entry not persisted")
		return
	}

	if err := s.repo.Insert(ctx, entry); err != nil {
		metrics.RecordAuditWrite(auditFailed)
		logger.Warn().Err(err).Msg("Failed to write audit log entry")
		return
	}
	metrics.RecordAuditWrite(auditWritten)
	logger.Debug().Int64("log_id", entry.ID).Msg("Audit log entry written")
}

// Search returns audit rows for the admin UI.
func (s *AuditServiceImpl) Search(ctx context.Context, q model.AuditQuery) ([]*model.AuditLogEntry, error) {
	if s.repo == nil {
		return nil, ErrAuditStoreUnavailable
	}
	q.Normalize()
	return s.repo.Query(ctx, q)
}

func (s *AuditServiceImpl) attachDocuments(ctx context.Context, entry *model.AuditLogEntry, docs []carrier.Document) {
	for _, doc := range docs {
		var target *string
		switch strings.ToLower(doc.TypeCode) {
		case "label":
			target = &entry.Label
		case "receipt":
			target = &entry.Receipt
		case "invoice":
			target = &entry.Invoice
		default:
			continue
		}
		if *target != "" || doc.Content == "" {
			continue
		}
		*target = s.documentReference(ctx, entry, doc)
	}
}

// documentReference returns the archived URL, or the inline content when archiving is off or fails.
func (s *AuditServiceImpl) documentReference(ctx context.Context, entry *model.AuditLogEntry, doc carrier.Document) string {
	if s.archive == nil {
		return doc.Content
	}
	owner := entry.TrackingNumber
	if owner == "" {
		owner = entry.RequestID
	}
	url, err := s.archive.Store(ctx, storage.Document{
		Owner:       owner,
		TypeCode:    doc.TypeCode,
		ImageFormat: doc.ImageFormat,
		Content:     doc.Content,
	})
	if err != nil {
		log.Warn().Err(err).
			Str("request_id", entry.RequestID).
			Str("document", doc.TypeCode).
			Msg("Failed to archive document; storing inline")
		return doc.Content
	}
	return url
}
