package salarysnapshot

import (
	"context"
	"database/sql"
	"errors"
	"time"

	salarysnapshoterrors "go-hrdocs/internal/salarysnapshot/errors"
	"go-hrdocs/internal/shared/contextutil"
	"go-hrdocs/internal/shared/counter"
	"go-hrdocs/internal/subject"
	subjecterrors "go-hrdocs/internal/subject/errors"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// CatalogResolver turns the tenant's active salary definitions into
// component inputs for annualCTC.
type CatalogResolver interface {
	Resolve(ctx context.Context, tenantID string, annualCTC decimal.Decimal) ([]ComponentInput, error)
}

//go:generate mockgen -source=salary_snapshot_service.go -destination=mock/salary_snapshot_service_mock.go -package=mock
type Service interface {
	// Create dispatches on the request: explicit components, the tenant
	// catalog, or the default CTC split (the request's CTC, else the
	// subject's).
	Create(ctx context.Context, tenantID, subjectID, actorID string, req CreateSnapshotRequest) (*Snapshot, error)
	CreateSnapshot(ctx context.Context, tenantID, subjectID, actorID string, components []ComponentInput) (*Snapshot, error)
	CreateFromCTC(ctx context.Context, tenantID, subjectID, actorID string, annualCTC decimal.Decimal) (*Snapshot, error)
	CreateFromCatalog(ctx context.Context, tenantID, subjectID, actorID string, annualCTC *decimal.Decimal) (*Snapshot, error)
	// GetCurrent returns nil, nil when the subject has no snapshot yet.
	GetCurrent(ctx context.Context, tenantID, subjectID string) (*Snapshot, error)
	// GetVersion returns nil, nil when the version does not exist.
	GetVersion(ctx context.Context, tenantID, subjectID string, version int) (*Snapshot, error)
	ListVersions(ctx context.Context, tenantID, subjectID string) ([]Snapshot, error)
}

type service struct {
	db       *sql.DB
	repo     Repository
	subjects subject.Repository
	counter  counter.Repository
	catalog  CatalogResolver
	logger   *zap.Logger
}

func NewService(
	db *sql.DB,
	repo Repository,
	subjects subject.Repository,
	counterRepo counter.Repository,
	catalog CatalogResolver,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("salarysnapshot.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("salarysnapshot.service")
	}
	return &service{
		db:       db,
		repo:     repo,
		subjects: subjects,
		counter:  counterRepo,
		catalog:  catalog,
		logger:   l,
	}
}

func (s *service) Create(
	ctx context.Context,
	tenantID, subjectID, actorID string,
	req CreateSnapshotRequest,
) (*Snapshot, error) {
	switch {
	case len(req.Components) > 0:
		return s.CreateSnapshot(ctx, tenantID, subjectID, actorID, req.Components)
	case req.UseCatalog:
		return s.CreateFromCatalog(ctx, tenantID, subjectID, actorID, req.AnnualCTC)
	case req.AnnualCTC != nil:
		return s.CreateFromCTC(ctx, tenantID, subjectID, actorID, *req.AnnualCTC)
	}

	ctc, err := s.subjectCTC(ctx, tenantID, subjectID)
	if err != nil {
		return nil, err
	}
	return s.CreateFromCTC(ctx, tenantID, subjectID, actorID, ctc)
}

func (s *service) CreateSnapshot(
	ctx context.Context,
	tenantID, subjectID, actorID string,
	components []ComponentInput,
) (*Snapshot, error) {
	return s.create(ctx, tenantID, subjectID, actorID, SourceExplicit, nil, false, components)
}

func (s *service) CreateFromCTC(
	ctx context.Context,
	tenantID, subjectID, actorID string,
	annualCTC decimal.Decimal,
) (*Snapshot, error) {
	if annualCTC.IsNegative() {
		return nil, salarysnapshoterrors.ErrInvalidComponent.WithDetails(map[string]any{
			"violations": []Violation{{Index: -1, Field: "annualCtc", Reason: "must not be negative"}},
		})
	}
	return s.create(ctx, tenantID, subjectID, actorID, SourceAutoCTC, &annualCTC, true, SplitCTC(annualCTC))
}

func (s *service) CreateFromCatalog(
	ctx context.Context,
	tenantID, subjectID, actorID string,
	annualCTC *decimal.Decimal,
) (*Snapshot, error) {
	if s.catalog == nil {
		return nil, salarysnapshoterrors.ErrNoSalarySource
	}

	var ctc decimal.Decimal
	if annualCTC != nil {
		ctc = *annualCTC
	} else {
		subjCTC, err := s.subjectCTC(ctx, tenantID, subjectID)
		if err != nil {
			return nil, err
		}
		ctc = subjCTC
	}

	inputs, err := s.catalog.Resolve(ctx, tenantID, ctc)
	if err != nil {
		return nil, err
	}
	return s.create(ctx, tenantID, subjectID, actorID, SourceCatalog, &ctc, false, inputs)
}

func (s *service) subjectCTC(ctx context.Context, tenantID, subjectID string) (decimal.Decimal, error) {
	subj, err := s.subjects.FindByID(ctx, tenantID, subjectID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return decimal.Zero, subjecterrors.ErrSubjectNotFound
		}
		return decimal.Zero, mapRepositoryError(err)
	}
	if !subj.AnnualCTC.Valid {
		return decimal.Zero, salarysnapshoterrors.ErrNoSalarySource.WithDetails(map[string]any{"subject_id": subjectID})
	}
	return subj.AnnualCTC.Decimal, nil
}

func (s *service) create(
	ctx context.Context,
	tenantID, subjectID, actorID string,
	source string,
	annualCTC *decimal.Decimal,
	defaultsApplied bool,
	inputs []ComponentInput,
) (*Snapshot, error) {
	log := contextutil.GetLogger(ctx, s.logger)
	log.Debug("create salary snapshot requested",
		zap.String("tenant_id", tenantID),
		zap.String("subject_id", subjectID),
		zap.String("source", source),
		zap.Int("components", len(inputs)),
	)

	tenantUUID, err := uuid.Parse(tenantID)
	if err != nil {
		return nil, subjecterrors.ErrInvalidSubjectID.WithDetails(map[string]any{"tenant_id": tenantID})
	}
	subjectUUID, err := uuid.Parse(subjectID)
	if err != nil {
		return nil, subjecterrors.ErrInvalidSubjectID
	}

	snap := &Snapshot{
		ID:              uuid.New(),
		TenantID:        tenantUUID,
		SubjectID:       subjectUUID,
		Source:          source,
		DefaultsApplied: defaultsApplied,
		CreatedBy:       actorID,
		CreatedAt:       time.Now().UTC(),
	}
	if annualCTC != nil {
		snap.AnnualCTC = decimal.NewNullDecimal(*annualCTC)
	}

	components, err := buildComponents(snap.ID, inputs)
	if err != nil {
		log.Warn("create salary snapshot invalid components", zap.Error(err))
		return nil, err
	}
	snap.Components = components

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		log.Error("create salary snapshot begin tx failed", zap.Error(err))
		return nil, mapRepositoryError(err)
	}
	defer tx.Rollback()

	subjects := s.subjects.WithTx(tx)
	if _, err := subjects.FindByID(ctx, tenantID, subjectID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, subjecterrors.ErrSubjectNotFound.WithDetails(map[string]any{"subject_id": subjectID})
		}
		return nil, mapRepositoryError(err)
	}

	// The counter row stays locked until commit, so concurrent creations
	// for one subject commit in version order.
	version, err := s.counter.WithTx(tx).GetNextValue(ctx, subjectID, counter.TypeSnapshotVersion)
	if err != nil {
		log.Error("create salary snapshot allocate version failed", zap.Error(err))
		return nil, err
	}
	snap.Version = int(version)

	if err := s.repo.WithTx(tx).Create(ctx, snap); err != nil {
		log.Error("create salary snapshot persist failed", zap.Error(err))
		return nil, mapRepositoryError(err)
	}

	if _, err := subjects.SetCurrentSnapshot(ctx, tenantID, subjectID, snap.Version); err != nil {
		log.Error("create salary snapshot move pointer failed", zap.Error(err))
		return nil, mapRepositoryError(err)
	}

	if err := tx.Commit(); err != nil {
		log.Error("create salary snapshot commit failed", zap.Error(err))
		return nil, mapRepositoryError(err)
	}

	log.Info("create salary snapshot success",
		zap.String("subject_id", subjectID),
		zap.Int("version", snap.Version),
		zap.String("source", source),
		zap.Bool("defaults_applied", defaultsApplied),
	)
	return snap, nil
}

func (s *service) GetCurrent(ctx context.Context, tenantID, subjectID string) (*Snapshot, error) {
	snap, err := s.repo.FindCurrent(ctx, tenantID, subjectID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, mapRepositoryError(err)
	}
	return snap, nil
}

func (s *service) GetVersion(ctx context.Context, tenantID, subjectID string, version int) (*Snapshot, error) {
	if version < 1 {
		return nil, salarysnapshoterrors.ErrInvalidVersion
	}

	snap, err := s.repo.FindByVersion(ctx, tenantID, subjectID, version)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, mapRepositoryError(err)
	}
	return snap, nil
}

func (s *service) ListVersions(ctx context.Context, tenantID, subjectID string) ([]Snapshot, error) {
	snaps, err := s.repo.ListBySubject(ctx, tenantID, subjectID)
	if err != nil {
		return nil, mapRepositoryError(err)
	}
	return snaps, nil
}
