package subject_test

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"go-hrdocs/internal/shared/apperror"
	"go-hrdocs/internal/subject"
	subjecterrors "go-hrdocs/internal/subject/errors"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type fakeRepo struct {
	kind       string
	upserted   []subject.Subject
	UpsertFn   func(ctx context.Context, s *subject.Subject) error
	FindAllFn  func(ctx context.Context, tenantID string) ([]subject.Subject, error)
	FindByIDFn func(ctx context.Context, tenantID, id string) (*subject.Subject, error)
}

func (f *fakeRepo) WithTx(tx *sql.Tx) subject.Repository { return f }
func (f *fakeRepo) ForKind(kind string) subject.Repository {
	cp := *f
	cp.kind = kind
	return &cp
}
func (f *fakeRepo) Kind() string { return f.kind }
func (f *fakeRepo) Upsert(ctx context.Context, s *subject.Subject) error {
	if f.UpsertFn != nil {
		if err := f.UpsertFn(ctx, s); err != nil {
			return err
		}
	}
	f.upserted = append(f.upserted, *s)
	return nil
}
func (f *fakeRepo) FindAll(ctx context.Context, tenantID string) ([]subject.Subject, error) {
	subjects, err := f.FindAllFn(ctx, tenantID)
	if err != nil || f.kind == "" {
		return subjects, err
	}
	var out []subject.Subject
	for _, s := range subjects {
		if s.Kind == f.kind {
			out = append(out, s)
		}
	}
	return out, nil
}
func (f *fakeRepo) FindByID(ctx context.Context, tenantID, id string) (*subject.Subject, error) {
	return f.FindByIDFn(ctx, tenantID, id)
}
func (f *fakeRepo) SetCurrentSnapshot(ctx context.Context, tenantID, id string, version int) (bool, error) {
	return true, nil
}

func newMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db, mock
}

func notFound(ctx context.Context, tenantID, id string) (*subject.Subject, error) {
	return nil, gorm.ErrRecordNotFound
}

func TestService_Upsert(t *testing.T) {
	tenantID := uuid.New().String()
	subjectID := uuid.New().String()
	ctc := decimal.RequireFromString("1200000")

	t.Run("creates a new subject", func(t *testing.T) {
		db, mock := newMockDB(t)
		mock.ExpectBegin()
		mock.ExpectCommit()

		repo := &fakeRepo{FindByIDFn: notFound}
		svc := subject.NewService(db, repo)

		resp, err := svc.Upsert(context.Background(), tenantID, subjectID, subject.UpsertSubjectRequest{
			Kind:      subject.KindCandidate,
			FullName:  "Asha Rao",
			Email:     "asha@example.com",
			AnnualCTC: &ctc,
		})

		require.NoError(t, err)
		assert.Equal(t, subjectID, resp.ID)
		assert.Equal(t, tenantID, resp.TenantID)
		assert.Equal(t, subject.KindCandidate, resp.Kind)
		require.NotNil(t, resp.AnnualCTC)
		assert.True(t, ctc.Equal(*resp.AnnualCTC))
		assert.Equal(t, 0, resp.CurrentSnapshotVersion)
		require.Len(t, repo.upserted, 1)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("updates an existing subject and keeps its snapshot pointer", func(t *testing.T) {
		db, mock := newMockDB(t)
		mock.ExpectBegin()
		mock.ExpectCommit()

		repo := &fakeRepo{FindByIDFn: func(ctx context.Context, tid, id string) (*subject.Subject, error) {
			return &subject.Subject{
				ID:                     uuid.MustParse(id),
				TenantID:               uuid.MustParse(tid),
				Kind:                   subject.KindEmployee,
				FullName:               "Old Name",
				Email:                  "old@example.com",
				AnnualCTC:              decimal.NewNullDecimal(decimal.NewFromInt(900000)),
				CurrentSnapshotVersion: 3,
			}, nil
		}}
		svc := subject.NewService(db, repo)

		resp, err := svc.Upsert(context.Background(), tenantID, subjectID, subject.UpsertSubjectRequest{
			Kind:     subject.KindEmployee,
			FullName: "New Name",
			Email:    "new@example.com",
		})

		require.NoError(t, err)
		assert.Equal(t, "New Name", resp.FullName)
		assert.Equal(t, 3, resp.CurrentSnapshotVersion)
		assert.Nil(t, resp.AnnualCTC)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("kind change is rejected", func(t *testing.T) {
		db, mock := newMockDB(t)
		mock.ExpectBegin()
		mock.ExpectRollback()

		repo := &fakeRepo{FindByIDFn: func(ctx context.Context, tid, id string) (*subject.Subject, error) {
			return &subject.Subject{ID: uuid.MustParse(id), TenantID: uuid.MustParse(tid), Kind: subject.KindCandidate}, nil
		}}
		svc := subject.NewService(db, repo)

		_, err := svc.Upsert(context.Background(), tenantID, subjectID, subject.UpsertSubjectRequest{
			Kind:     subject.KindEmployee,
			FullName: "Asha Rao",
			Email:    "asha@example.com",
		})

		assert.ErrorIs(t, err, subjecterrors.ErrKindChange)
		assert.Empty(t, repo.upserted)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("duplicate email maps to conflict", func(t *testing.T) {
		db, mock := newMockDB(t)
		mock.ExpectBegin()
		mock.ExpectRollback()

		repo := &fakeRepo{
			FindByIDFn: notFound,
			UpsertFn: func(ctx context.Context, s *subject.Subject) error {
				return &pgconn.PgError{Code: "23505", ConstraintName: "uq_subject_email"}
			},
		}
		svc := subject.NewService(db, repo)

		_, err := svc.Upsert(context.Background(), tenantID, subjectID, subject.UpsertSubjectRequest{
			Kind:     subject.KindEmployee,
			FullName: "Asha Rao",
			Email:    "asha@example.com",
		})

		assert.ErrorIs(t, err, subjecterrors.ErrSubjectAlreadyExists)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("lookup timeout surfaces as store timeout", func(t *testing.T) {
		db, mock := newMockDB(t)
		mock.ExpectBegin()
		mock.ExpectRollback()

		repo := &fakeRepo{FindByIDFn: func(ctx context.Context, tid, id string) (*subject.Subject, error) {
			return nil, context.DeadlineExceeded
		}}
		svc := subject.NewService(db, repo)

		_, err := svc.Upsert(context.Background(), tenantID, subjectID, subject.UpsertSubjectRequest{
			Kind:     subject.KindEmployee,
			FullName: "Asha Rao",
			Email:    "asha@example.com",
		})

		assert.ErrorIs(t, err, apperror.ErrStoreTimeout)
	})

	negative := decimal.NewFromInt(-1)
	invalid := []struct {
		name    string
		id      string
		tenant  string
		req     subject.UpsertSubjectRequest
		wantErr error
	}{
		{"bad subject id", "nope", tenantID, subject.UpsertSubjectRequest{Kind: subject.KindEmployee}, subjecterrors.ErrInvalidSubjectID},
		{"bad tenant id", subjectID, "nope", subject.UpsertSubjectRequest{Kind: subject.KindEmployee}, subjecterrors.ErrInvalidSubjectID},
		{"unknown kind", subjectID, tenantID, subject.UpsertSubjectRequest{Kind: "contractor"}, subjecterrors.ErrInvalidKind},
		{"negative ctc", subjectID, tenantID, subject.UpsertSubjectRequest{Kind: subject.KindEmployee, AnnualCTC: &negative}, subjecterrors.ErrNegativeCTC},
	}
	for _, tc := range invalid {
		t.Run(tc.name, func(t *testing.T) {
			db, mock := newMockDB(t)
			svc := subject.NewService(db, &fakeRepo{FindByIDFn: notFound})

			_, err := svc.Upsert(context.Background(), tc.tenant, tc.id, tc.req)

			assert.ErrorIs(t, err, tc.wantErr)
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestService_GetAll(t *testing.T) {
	tenantID := uuid.New()
	all := []subject.Subject{
		{ID: uuid.New(), TenantID: tenantID, Kind: subject.KindEmployee, FullName: "A"},
		{ID: uuid.New(), TenantID: tenantID, Kind: subject.KindCandidate, FullName: "B"},
	}
	repo := &fakeRepo{FindAllFn: func(ctx context.Context, tid string) ([]subject.Subject, error) {
		return all, nil
	}}
	svc := subject.NewService(nil, repo)

	t.Run("all kinds", func(t *testing.T) {
		resp, err := svc.GetAll(context.Background(), tenantID.String(), "")
		require.NoError(t, err)
		assert.Len(t, resp, 2)
	})

	t.Run("filtered by kind", func(t *testing.T) {
		resp, err := svc.GetAll(context.Background(), tenantID.String(), subject.KindCandidate)
		require.NoError(t, err)
		require.Len(t, resp, 1)
		assert.Equal(t, "B", resp[0].FullName)
	})

	t.Run("unknown kind", func(t *testing.T) {
		_, err := svc.GetAll(context.Background(), tenantID.String(), "intern")
		assert.ErrorIs(t, err, subjecterrors.ErrInvalidKind)
	})

	t.Run("repository error", func(t *testing.T) {
		boom := errors.New("boom")
		failing := subject.NewService(nil, &fakeRepo{FindAllFn: func(ctx context.Context, tid string) ([]subject.Subject, error) {
			return nil, boom
		}})
		_, err := failing.GetAll(context.Background(), tenantID.String(), "")
		assert.ErrorIs(t, err, boom)
	})
}

func TestService_GetByID(t *testing.T) {
	tenantID := uuid.New().String()

	t.Run("invalid id", func(t *testing.T) {
		svc := subject.NewService(nil, &fakeRepo{FindByIDFn: notFound})
		_, err := svc.GetByID(context.Background(), tenantID, "123")
		assert.ErrorIs(t, err, subjecterrors.ErrInvalidSubjectID)
	})

	t.Run("not found", func(t *testing.T) {
		svc := subject.NewService(nil, &fakeRepo{FindByIDFn: notFound})
		_, err := svc.GetByID(context.Background(), tenantID, uuid.NewString())
		assert.ErrorIs(t, err, subjecterrors.ErrSubjectNotFound)
	})

	t.Run("found", func(t *testing.T) {
		id := uuid.New()
		svc := subject.NewService(nil, &fakeRepo{FindByIDFn: func(ctx context.Context, tid, sid string) (*subject.Subject, error) {
			return &subject.Subject{ID: id, TenantID: uuid.MustParse(tid), Kind: subject.KindEmployee, CurrentSnapshotVersion: 2}, nil
		}})
		resp, err := svc.GetByID(context.Background(), tenantID, id.String())
		require.NoError(t, err)
		assert.Equal(t, id.String(), resp.ID)
		assert.Equal(t, 2, resp.CurrentSnapshotVersion)
	})
}
