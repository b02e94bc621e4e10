package app

import (
	"go-hrdocs/internal/docconfig"
	"go-hrdocs/internal/document"
	"go-hrdocs/internal/generation"
	"go-hrdocs/internal/models"
	"go-hrdocs/internal/rbac"
	"go-hrdocs/internal/salarycatalog"
	"go-hrdocs/internal/salarysnapshot"
	"go-hrdocs/internal/subject"
	"go-hrdocs/internal/tenant"

	"github.com/gin-gonic/gin"
)

func registerModules(api *gin.RouterGroup, infra *Infra) error {
	reg := infra.Registry

	// --- RBAC Core ---
	authz, err := rbac.NewService()
	if err != nil {
		return err
	}

	// --- Tenant-bound services ---
	subjects := tenant.Bind(reg, func(m *models.Models) subject.Service { return m.SubjectService })
	snapshots := tenant.Bind(reg, func(m *models.Models) salarysnapshot.Service { return m.SnapshotService })
	catalog := tenant.Bind(reg, func(m *models.Models) salarycatalog.Service { return m.CatalogService })
	configs := tenant.Bind(reg, func(m *models.Models) docconfig.Service { return m.ConfigService })
	documents := tenant.Bind(reg, func(m *models.Models) document.Service { return m.DocumentService })
	generator := tenant.Bind(reg, func(m *models.Models) generation.Service { return m.GenerationService })

	// --- Routes Registration ---
	subject.RegisterRoutes(api, subject.NewHandler(subjects), authz)
	salarysnapshot.RegisterRoutes(api, salarysnapshot.NewHandler(snapshots), authz)
	salarycatalog.RegisterRoutes(api, salarycatalog.NewHandler(catalog), authz)
	docconfig.RegisterRoutes(api, docconfig.NewHandler(configs), authz)
	document.RegisterRoutes(api, document.NewHandler(documents), authz)
	generation.RegisterRoutes(api, generation.NewHandler(generator), authz, infra.Redis)

	return nil
}
