package document

import (
	"context"
	"database/sql"
	"time"

	"go-hrdocs/internal/bootstrap"
	documenterrors "go-hrdocs/internal/document/errors"
	"go-hrdocs/internal/events"
	"go-hrdocs/internal/messaging/kafka"
	"go-hrdocs/internal/shared/apperror"
	"go-hrdocs/internal/shared/contextutil"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/datatypes"
)

//go:generate mockgen -source=document_service.go -destination=mock/document_service_mock.go -package=mock
type Service interface {
	Record(ctx context.Context, tenantID, actorID string, in RecordInput) (*GeneratedDocument, error)
	Transition(ctx context.Context, tenantID, actorID, id, to string) (*GeneratedDocument, error)
	// Expire is triggered externally; it is valid from any non-terminal
	// status.
	Expire(ctx context.Context, tenantID, actorID, id string) (*GeneratedDocument, error)
	GetByID(ctx context.Context, tenantID, id string) (*GeneratedDocument, error)
	ListBySubject(ctx context.Context, tenantID, subjectID string) ([]GeneratedDocument, error)
}

type service struct {
	db     *sql.DB
	repo   Repository
	outbox kafka.OutboxRepository
	audit  bootstrap.AuditLogger
	now    func() time.Time
	logger *zap.Logger
}

// NewService wires the ledger. outbox and audit may be nil.
func NewService(
	db *sql.DB,
	repo Repository,
	outbox kafka.OutboxRepository,
	audit bootstrap.AuditLogger,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("document.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("document.service")
	}
	return &service{
		db:     db,
		repo:   repo,
		outbox: outbox,
		audit:  audit,
		now:    func() time.Time { return time.Now().UTC() },
		logger: l,
	}
}

func (s *service) Record(ctx context.Context, tenantID, actorID string, in RecordInput) (*GeneratedDocument, error) {
	log := contextutil.GetLogger(ctx, s.logger)

	tenantUUID, err := uuid.Parse(tenantID)
	if err != nil {
		return nil, documenterrors.ErrModelMismatch.WithDetails(map[string]any{"tenant_id": tenantID})
	}
	subjectUUID, err := uuid.Parse(in.SubjectID)
	if err != nil || in.Model.SubjectID != in.SubjectID || in.Model.DocumentType != in.DocumentType {
		return nil, documenterrors.ErrModelMismatch.WithDetails(map[string]any{
			"subject_id":          in.SubjectID,
			"document_type":       in.DocumentType,
			"model_subject_id":    in.Model.SubjectID,
			"model_document_type": in.Model.DocumentType,
		})
	}
	snapshotUUID, err := uuid.Parse(in.Model.SnapshotID)
	if err != nil {
		return nil, documenterrors.ErrModelMismatch.WithDetails(map[string]any{"snapshot_id": in.Model.SnapshotID})
	}

	now := s.now()
	doc := &GeneratedDocument{
		ID:              uuid.New(),
		TenantID:        tenantUUID,
		SubjectID:       subjectUUID,
		DocumentType:    in.DocumentType,
		TemplateRef:     in.TemplateRef,
		SnapshotID:      snapshotUUID,
		SnapshotVersion: in.Model.SnapshotVersion,
		RenderModel:     datatypes.NewJSONType(in.Model.Clone()),
		PDFLocation:     in.PDFLocation,
		Status:          StatusGenerated,
		CreatedBy:       actorID,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		log.Error("record document begin tx failed", zap.Error(err))
		return nil, mapRepositoryError(err)
	}
	defer tx.Rollback()

	if err := s.repo.WithTx(tx).Create(ctx, doc); err != nil {
		log.Error("record document persist failed", zap.Error(err))
		return nil, mapRepositoryError(err)
	}

	if err := s.enqueue(ctx, tx, tenantID, doc.ID.String(), events.EventDocumentGenerated, events.DocumentGeneratedTopic,
		events.DocumentGeneratedEvent{
			EventType:       events.EventDocumentGenerated,
			TenantID:        tenantID,
			DocumentID:      doc.ID.String(),
			SubjectID:       in.SubjectID,
			DocumentType:    doc.DocumentType,
			SnapshotVersion: doc.SnapshotVersion,
			PDFLocation:     doc.PDFLocation,
			CreatedBy:       actorID,
			OccurredAt:      now,
		}); err != nil {
		log.Error("record document outbox persist failed", zap.Error(err))
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		log.Error("record document commit failed", zap.Error(err))
		return nil, mapRepositoryError(err)
	}

	log.Info("document recorded",
		zap.String("document_id", doc.ID.String()),
		zap.String("document_type", doc.DocumentType),
		zap.Int("snapshot_version", doc.SnapshotVersion),
	)
	return doc, nil
}

func (s *service) Transition(ctx context.Context, tenantID, actorID, id, to string) (*GeneratedDocument, error) {
	if !ValidStatus(to) {
		return nil, documenterrors.ErrInvalidStatus.WithDetails(map[string]any{"status": to})
	}

	doc, err := s.GetByID(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	return s.move(ctx, tenantID, actorID, doc, to)
}

func (s *service) Expire(ctx context.Context, tenantID, actorID, id string) (*GeneratedDocument, error) {
	doc, err := s.GetByID(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	return s.move(ctx, tenantID, actorID, doc, StatusExpired)
}

func (s *service) move(ctx context.Context, tenantID, actorID string, doc *GeneratedDocument, to string) (*GeneratedDocument, error) {
	log := contextutil.GetLogger(ctx, s.logger)
	from := doc.Status
	id := doc.ID.String()

	if !CanTransition(from, to) {
		return nil, invalidTransition(id, from, to)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		log.Error("transition document begin tx failed", zap.Error(err))
		return nil, mapRepositoryError(err)
	}
	defer tx.Rollback()

	now := s.now()
	moved, err := s.repo.WithTx(tx).UpdateStatus(ctx, tenantID, id, from, to, now)
	if err != nil {
		log.Error("transition document update failed", zap.Error(err))
		return nil, mapRepositoryError(err)
	}
	if !moved {
		// Someone else changed the status between our read and write.
		return nil, invalidTransition(id, from, to).WithDetails(map[string]any{"reason": "status changed concurrently"})
	}

	if err := s.enqueue(ctx, tx, tenantID, id, events.EventDocumentStatus, events.DocumentStatusTopic,
		events.DocumentStatusChangedEvent{
			EventType:  events.EventDocumentStatus,
			TenantID:   tenantID,
			DocumentID: id,
			SubjectID:  doc.SubjectID.String(),
			From:       from,
			To:         to,
			ChangedBy:  actorID,
			OccurredAt: now,
		}); err != nil {
		log.Error("transition document outbox persist failed", zap.Error(err))
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		log.Error("transition document commit failed", zap.Error(err))
		return nil, mapRepositoryError(err)
	}

	doc.stamp(to, now)

	if s.audit != nil {
		s.audit.Log(ctx, bootstrap.AuditLog{
			Action:  "DOCUMENT_STATUS_CHANGED",
			Message: "Generated document moved from " + from + " to " + to,
			Meta: map[string]any{
				"document_id":   id,
				"document_type": doc.DocumentType,
				"from":          from,
				"to":            to,
				"actor_id":      actorID,
			},
		})
	}

	log.Info("document status changed",
		zap.String("document_id", id),
		zap.String("from", from),
		zap.String("to", to),
	)
	return doc, nil
}

func (s *service) enqueue(ctx context.Context, tx *sql.Tx, tenantID, aggregateID, eventType, topic string, payload any) error {
	if s.outbox == nil {
		return nil
	}
	event, err := kafka.NewEvent(ctx, tenantID, "generated_document", aggregateID, eventType, topic, payload)
	if err != nil {
		return err
	}
	return mapRepositoryError(s.outbox.WithTx(tx).Create(ctx, event))
}

func (s *service) GetByID(ctx context.Context, tenantID, id string) (*GeneratedDocument, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, documenterrors.ErrInvalidDocumentID
	}

	doc, err := s.repo.FindByID(ctx, tenantID, id)
	if err != nil {
		return nil, mapRepositoryError(err)
	}
	return doc, nil
}

func (s *service) ListBySubject(ctx context.Context, tenantID, subjectID string) ([]GeneratedDocument, error) {
	docs, err := s.repo.ListBySubject(ctx, tenantID, subjectID)
	if err != nil {
		return nil, mapRepositoryError(err)
	}
	return docs, nil
}

func invalidTransition(id, from, to string) *apperror.AppError {
	return documenterrors.ErrInvalidTransition.WithDetails(map[string]any{
		"document_id": id,
		"from":        from,
		"to":          to,
	})
}
