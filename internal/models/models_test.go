package models_test

import (
	"context"
	"testing"

	"go-hrdocs/internal/docconfig"
	"go-hrdocs/internal/models"
	"go-hrdocs/internal/subject"
	"go-hrdocs/internal/tenant"
	tenanterrors "go-hrdocs/internal/tenant/errors"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func newStore(t *testing.T) (*tenant.Store, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	gdb, err := gorm.Open(postgres.New(postgres.Config{Conn: db}), &gorm.Config{})
	require.NoError(t, err)

	store, err := tenant.NewStore(gdb)
	require.NoError(t, err)
	return store, mock
}

func TestBuilder_RegistersNamedModels(t *testing.T) {
	store, mock := newStore(t)
	tn := tenant.Tenant{ID: uuid.New(), Slug: "acme"}

	build := models.NewBuilder(models.Shared{Logger: zap.NewNop()})
	m, set, err := build(context.Background(), tn, store)
	require.NoError(t, err)

	assert.Equal(t, []string{
		models.NameCandidate,
		models.NameDocumentViewConfig,
		models.NameEmployee,
		models.NameGeneratedDocument,
		models.NameOutboxEvent,
		models.NameSalaryCatalog,
		models.NameSalarySnapshot,
		models.NameSubject,
	}, set.Names())

	employees, err := tenant.Model[subject.Repository](set, models.NameEmployee)
	require.NoError(t, err)
	assert.Equal(t, subject.KindEmployee, employees.Kind())

	candidates, err := tenant.Model[subject.Repository](set, models.NameCandidate)
	require.NoError(t, err)
	assert.Equal(t, subject.KindCandidate, candidates.Kind())

	configs, err := tenant.Model[docconfig.Repository](set, models.NameDocumentViewConfig)
	require.NoError(t, err)
	assert.Same(t, m.Configs, configs)

	assert.NotNil(t, m.GenerationService)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBuilder_UnknownOrMistypedModel(t *testing.T) {
	store, _ := newStore(t)
	tn := tenant.Tenant{ID: uuid.New()}

	_, set, err := models.NewBuilder(models.Shared{})(context.Background(), tn, store)
	require.NoError(t, err)

	_, err = set.Get("Payroll")
	assert.ErrorIs(t, err, tenanterrors.ErrModelNotRegistered)

	_, err = tenant.Model[docconfig.Repository](set, models.NameSubject)
	assert.ErrorIs(t, err, tenanterrors.ErrModelNotRegistered)
}

func TestProvision_CreatesActiveConfigIndex(t *testing.T) {
	assert.Contains(t, models.ActiveConfigIndexDDL, "uq_active_doc_config")
	assert.Contains(t, models.ActiveConfigIndexDDL, "WHERE is_active")
	assert.Len(t, models.Tables(), 8)
}
