package generation

import (
	"context"

	"go-hrdocs/internal/composer"
	"go-hrdocs/internal/docconfig"
	docconfigerrors "go-hrdocs/internal/docconfig/errors"
	"go-hrdocs/internal/document"
	generationerrors "go-hrdocs/internal/generation/errors"
	"go-hrdocs/internal/render"
	"go-hrdocs/internal/salarysnapshot"
	"go-hrdocs/internal/shared/contextutil"
	"go-hrdocs/internal/storage"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

var tracer = otel.Tracer("go-hrdocs/generation")

//go:generate mockgen -source=generation_service.go -destination=mock/generation_service_mock.go -package=mock
type Service interface {
	Generate(ctx context.Context, tenantID, actorID string, req GenerateRequest) (*Result, error)
}

type service struct {
	snapshots salarysnapshot.Service
	configs   docconfig.Service
	documents document.Service
	blob      storage.Blob
	renderers func(format string) (render.Renderer, error)
	logger    *zap.Logger
}

// NewService wires generation over one tenant's services. blob may be nil
// when only format "none" is requested.
func NewService(
	snapshots salarysnapshot.Service,
	configs docconfig.Service,
	documents document.Service,
	blob storage.Blob,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("generation.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("generation.service")
	}
	return &service{
		snapshots: snapshots,
		configs:   configs,
		documents: documents,
		blob:      blob,
		renderers: render.ForFormat,
		logger:    l,
	}
}

func (s *service) Generate(ctx context.Context, tenantID, actorID string, req GenerateRequest) (*Result, error) {
	ctx, span := tracer.Start(ctx, "generation.Generate", trace.WithAttributes(
		attribute.String("tenant.id", tenantID),
		attribute.String("subject.id", req.SubjectID),
		attribute.String("document.type", req.DocumentType),
		attribute.String("document.format", req.Format),
	))
	defer span.End()

	res, err := s.generate(ctx, tenantID, actorID, req)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	span.SetAttributes(
		attribute.String("document.id", res.Document.ID.String()),
		attribute.Int("snapshot.version", res.Document.SnapshotVersion),
	)
	return res, nil
}

func (s *service) generate(ctx context.Context, tenantID, actorID string, req GenerateRequest) (*Result, error) {
	log := contextutil.GetLogger(ctx, s.logger)

	if _, err := uuid.Parse(req.SubjectID); err != nil {
		return nil, generationerrors.ErrInvalidSubjectID
	}
	if !docconfig.ValidDocumentType(req.DocumentType) {
		return nil, docconfigerrors.ErrInvalidDocumentType.WithDetails(map[string]any{"document_type": req.DocumentType})
	}

	// Validate the format before any snapshot is written.
	renderer, err := s.renderers(req.Format)
	if err != nil {
		return nil, err
	}
	if renderer != nil && s.blob == nil {
		return nil, generationerrors.ErrStorageNotConfigured
	}

	snap, created, err := s.resolveSnapshot(ctx, tenantID, actorID, req)
	if err != nil {
		return nil, err
	}

	cfg, fromDefault, err := s.configs.ResolveConfig(ctx, tenantID, req.DocumentType)
	if err != nil {
		return nil, err
	}
	if fromDefault {
		log.Info("generation using default document config",
			zap.String("tenant_id", tenantID),
			zap.String("document_type", req.DocumentType),
		)
	}

	model := composer.Compose(snap, cfg)

	var location string
	if renderer != nil {
		location, err = s.store(ctx, tenantID, req, renderer, model)
		if err != nil {
			return nil, err
		}
	}

	doc, err := s.documents.Record(ctx, tenantID, actorID, document.RecordInput{
		SubjectID:    req.SubjectID,
		DocumentType: req.DocumentType,
		TemplateRef:  req.TemplateRef,
		PDFLocation:  location,
		Model:        model,
	})
	if err != nil {
		return nil, err
	}

	log.Info("document generated",
		zap.String("document_id", doc.ID.String()),
		zap.String("subject_id", req.SubjectID),
		zap.String("document_type", req.DocumentType),
		zap.Int("snapshot_version", snap.Version),
		zap.Bool("defaults_applied", snap.DefaultsApplied),
		zap.Bool("config_from_default", fromDefault),
	)

	return &Result{
		Document:          doc,
		Model:             model,
		DefaultsApplied:   snap.DefaultsApplied,
		ConfigFromDefault: fromDefault,
		SnapshotCreated:   created,
	}, nil
}

// resolveSnapshot creates a new snapshot when the request carries a salary
// source, else reuses the current one. A subject without any snapshot gets
// one from its own CTC.
func (s *service) resolveSnapshot(
	ctx context.Context,
	tenantID, actorID string,
	req GenerateRequest,
) (*salarysnapshot.Snapshot, bool, error) {
	if !req.wantsNewSnapshot() {
		current, err := s.snapshots.GetCurrent(ctx, tenantID, req.SubjectID)
		if err != nil {
			return nil, false, err
		}
		if current != nil {
			return current, false, nil
		}
	}

	snap, err := s.snapshots.Create(ctx, tenantID, req.SubjectID, actorID, req.snapshotRequest())
	if err != nil {
		return nil, false, err
	}
	return snap, true, nil
}

func (s *service) store(
	ctx context.Context,
	tenantID string,
	req GenerateRequest,
	renderer render.Renderer,
	model composer.RenderModel,
) (string, error) {
	log := contextutil.GetLogger(ctx, s.logger)

	ctx, span := tracer.Start(ctx, "generation.store")
	defer span.End()

	artifact, err := renderer.Render(ctx, model)
	if err != nil {
		log.Error("render artifact failed", zap.String("format", req.Format), zap.Error(err))
		span.RecordError(err)
		return "", generationerrors.ErrRenderFailed.WithCause(err)
	}

	key := storage.DocumentKey(tenantID, req.DocumentType, req.SubjectID, uuid.NewString(), artifact.Extension)
	location, err := s.blob.Put(ctx, key, artifact.Content, artifact.ContentType)
	if err != nil {
		log.Error("upload artifact failed", zap.String("key", key), zap.Error(err))
		span.RecordError(err)
		return "", generationerrors.ErrUploadFailed.WithCause(err)
	}

	span.SetAttributes(attribute.Int("artifact.bytes", len(artifact.Content)))
	return location, nil
}
