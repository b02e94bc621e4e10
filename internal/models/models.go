// Package models binds every tenant-scoped repository and service to one
// tenant store.
package models

import (
	"context"
	"fmt"

	"go-hrdocs/internal/bootstrap"
	"go-hrdocs/internal/docconfig"
	"go-hrdocs/internal/document"
	"go-hrdocs/internal/generation"
	"go-hrdocs/internal/messaging/kafka"
	"go-hrdocs/internal/salarycatalog"
	"go-hrdocs/internal/salarysnapshot"
	"go-hrdocs/internal/shared/counter"
	"go-hrdocs/internal/shared/keylock"
	"go-hrdocs/internal/storage"
	"go-hrdocs/internal/subject"
	"go-hrdocs/internal/tenant"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Names under which models are registered in a tenant's ModelSet.
const (
	NameSubject            = "Subject"
	NameEmployee           = "Employee"
	NameCandidate          = "Candidate"
	NameSalarySnapshot     = "SalarySnapshot"
	NameSalaryCatalog      = "SalaryCatalog"
	NameDocumentViewConfig = "DocumentViewConfig"
	NameGeneratedDocument  = "GeneratedDocument"
	NameOutboxEvent        = "OutboxEvent"
)

// Shared holds the process-wide dependencies every tenant reuses.
type Shared struct {
	Redis  *redis.Client
	Locker keylock.Locker
	Blob   storage.Blob
	Audit  bootstrap.AuditLogger
	Logger *zap.Logger
}

type Models struct {
	Subjects   subject.Repository
	Employees  subject.Repository
	Candidates subject.Repository
	Snapshots  salarysnapshot.Repository
	Catalog    salarycatalog.Repository
	Configs    docconfig.Repository
	Documents  document.Repository
	Outbox     kafka.OutboxRepository
	Counter    counter.Repository

	SubjectService    subject.Service
	SnapshotService   salarysnapshot.Service
	CatalogService    salarycatalog.Service
	ConfigService     docconfig.Service
	DocumentService   document.Service
	GenerationService generation.Service
}

// NewBuilder returns the registry builder for tenant models.
func NewBuilder(shared Shared) tenant.Builder[*Models] {
	if shared.Locker == nil {
		shared.Locker = keylock.NewLocal()
	}
	if shared.Logger == nil {
		shared.Logger = zap.L()
	}

	return func(ctx context.Context, t tenant.Tenant, store *tenant.Store) (*Models, *tenant.ModelSet, error) {
		log := shared.Logger.With(zap.String("tenant_id", t.ID.String()))
		db, sqlDB := store.DB, store.SQL

		subjects := subject.NewRepository(db)
		m := &Models{
			Subjects:   subjects,
			Employees:  subjects.ForKind(subject.KindEmployee),
			Candidates: subjects.ForKind(subject.KindCandidate),
			Snapshots:  salarysnapshot.NewRepository(db),
			Catalog:    salarycatalog.NewRepository(db),
			Configs:    docconfig.NewRepository(db),
			Documents:  document.NewRepository(db),
			Outbox:     kafka.NewOutboxRepository(sqlDB),
			Counter:    counter.NewRepository(db),
		}

		m.SubjectService = subject.NewService(sqlDB, m.Subjects, log)
		m.CatalogService = salarycatalog.NewService(sqlDB, m.Catalog, log)
		m.SnapshotService = salarysnapshot.NewService(sqlDB, m.Snapshots, m.Subjects, m.Counter, m.CatalogService, log)
		m.ConfigService = docconfig.NewService(sqlDB, m.Configs, shared.Locker, shared.Redis, log)
		m.DocumentService = document.NewService(sqlDB, m.Documents, m.Outbox, shared.Audit, log)
		m.GenerationService = generation.NewService(m.SnapshotService, m.ConfigService, m.DocumentService, shared.Blob, log)

		set := tenant.NewModelSet(t.ID.String())
		for name, model := range map[string]any{
			NameSubject:            m.Subjects,
			NameEmployee:           m.Employees,
			NameCandidate:          m.Candidates,
			NameSalarySnapshot:     m.Snapshots,
			NameSalaryCatalog:      m.Catalog,
			NameDocumentViewConfig: m.Configs,
			NameGeneratedDocument:  m.Documents,
			NameOutboxEvent:        m.Outbox,
		} {
			if err := set.Register(name, model); err != nil {
				return nil, nil, err
			}
		}

		return m, set, nil
	}
}

// Tables lists every tenant table model in migration order.
func Tables() []any {
	return []any{
		&subject.Subject{},
		&counter.Counter{},
		&salarysnapshot.Snapshot{},
		&salarysnapshot.Component{},
		&salarycatalog.Definition{},
		&docconfig.Config{},
		&document.GeneratedDocument{},
		&kafka.OutboxEvent{},
	}
}

// ActiveConfigIndexDDL enforces one active view config per document type.
const ActiveConfigIndexDDL = `CREATE UNIQUE INDEX IF NOT EXISTS ` + docconfig.ActiveIndexName +
	` ON document_view_configs (tenant_id, document_type) WHERE is_active`

// Provision migrates a tenant store. It is safe to run on every open.
func Provision(ctx context.Context, db *gorm.DB) error {
	tx := db.WithContext(ctx)
	if err := tx.AutoMigrate(Tables()...); err != nil {
		return fmt.Errorf("migrate tenant tables: %w", err)
	}
	if err := tx.Exec(ActiveConfigIndexDDL).Error; err != nil {
		return fmt.Errorf("create %s: %w", docconfig.ActiveIndexName, err)
	}
	return nil
}
