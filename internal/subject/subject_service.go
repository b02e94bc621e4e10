package subject

import (
	"context"
	"database/sql"
	"errors"

	"go-hrdocs/internal/shared/contextutil"
	subjecterrors "go-hrdocs/internal/subject/errors"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

//go:generate mockgen -source=subject_service.go -destination=mock/subject_service_mock.go -package=mock
type Service interface {
	Upsert(ctx context.Context, tenantID, id string, req UpsertSubjectRequest) (SubjectResponse, error)
	GetAll(ctx context.Context, tenantID, kind string) ([]SubjectResponse, error)
	GetByID(ctx context.Context, tenantID, id string) (SubjectResponse, error)
}

type service struct {
	db     *sql.DB
	repo   Repository
	logger *zap.Logger
}

func NewService(db *sql.DB, repo Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("subject.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("subject.service")
	}
	return &service{db: db, repo: repo, logger: l}
}

func (s *service) Upsert(
	ctx context.Context,
	tenantID, id string,
	req UpsertSubjectRequest,
) (SubjectResponse, error) {
	log := contextutil.GetLogger(ctx, s.logger)
	log.Debug("upsert subject requested",
		zap.String("tenant_id", tenantID),
		zap.String("subject_id", id),
		zap.String("kind", req.Kind),
	)

	subjectID, err := uuid.Parse(id)
	if err != nil {
		return SubjectResponse{}, subjecterrors.ErrInvalidSubjectID
	}
	tenantUUID, err := uuid.Parse(tenantID)
	if err != nil {
		return SubjectResponse{}, subjecterrors.ErrInvalidSubjectID.WithDetails(map[string]any{"tenant_id": tenantID})
	}
	if !ValidKind(req.Kind) {
		return SubjectResponse{}, subjecterrors.ErrInvalidKind.WithDetails(map[string]any{"kind": req.Kind})
	}
	if req.AnnualCTC != nil && req.AnnualCTC.IsNegative() {
		return SubjectResponse{}, subjecterrors.ErrNegativeCTC
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		log.Error("upsert subject begin tx failed", zap.Error(err))
		return SubjectResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	subj := &Subject{ID: subjectID, TenantID: tenantUUID}
	existing, err := qtx.FindByID(ctx, tenantID, id)
	switch mapped := mapRepositoryError(err); {
	case err == nil:
		if existing.Kind != req.Kind {
			return SubjectResponse{}, subjecterrors.ErrKindChange.WithDetails(map[string]any{
				"subject_id": id,
				"from":       existing.Kind,
				"to":         req.Kind,
			})
		}
		subj = existing
	case errors.Is(mapped, subjecterrors.ErrSubjectNotFound):
	default:
		log.Error("upsert subject lookup failed", zap.Error(err))
		return SubjectResponse{}, mapped
	}

	subj.Kind = req.Kind
	subj.FullName = req.FullName
	subj.Email = req.Email
	subj.AnnualCTC.Valid = req.AnnualCTC != nil
	if req.AnnualCTC != nil {
		subj.AnnualCTC.Decimal = *req.AnnualCTC
	}

	if err := qtx.Upsert(ctx, subj); err != nil {
		log.Error("upsert subject persist failed", zap.Error(err))
		return SubjectResponse{}, mapRepositoryError(err)
	}

	if err := tx.Commit(); err != nil {
		log.Error("upsert subject commit failed", zap.Error(err))
		return SubjectResponse{}, err
	}

	log.Info("upsert subject success", zap.String("subject_id", id))
	return mapToResponse(*subj), nil
}

func (s *service) GetAll(ctx context.Context, tenantID, kind string) ([]SubjectResponse, error) {
	repo := s.repo
	if kind != "" {
		if !ValidKind(kind) {
			return nil, subjecterrors.ErrInvalidKind.WithDetails(map[string]any{"kind": kind})
		}
		repo = repo.ForKind(kind)
	}

	subjects, err := repo.FindAll(ctx, tenantID)
	if err != nil {
		s.logger.Error("get all subjects failed", zap.Error(err))
		return nil, mapRepositoryError(err)
	}
	return mapToListResponse(subjects), nil
}

func (s *service) GetByID(ctx context.Context, tenantID, id string) (SubjectResponse, error) {
	if _, err := uuid.Parse(id); err != nil {
		return SubjectResponse{}, subjecterrors.ErrInvalidSubjectID
	}

	subj, err := s.repo.FindByID(ctx, tenantID, id)
	if err != nil {
		return SubjectResponse{}, mapRepositoryError(err)
	}
	return mapToResponse(*subj), nil
}

func mapToResponse(s Subject) SubjectResponse {
	resp := SubjectResponse{
		ID:                     s.ID.String(),
		TenantID:               s.TenantID.String(),
		Kind:                   s.Kind,
		FullName:               s.FullName,
		Email:                  s.Email,
		CurrentSnapshotVersion: s.CurrentSnapshotVersion,
	}
	if s.AnnualCTC.Valid {
		ctc := s.AnnualCTC.Decimal
		resp.AnnualCTC = &ctc
	}
	return resp
}

func mapToListResponse(subjects []Subject) []SubjectResponse {
	res := make([]SubjectResponse, len(subjects))
	for i, s := range subjects {
		res[i] = mapToResponse(s)
	}
	return res
}
