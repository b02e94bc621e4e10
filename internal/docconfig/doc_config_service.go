package docconfig

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"

	docconfigerrors "go-hrdocs/internal/docconfig/errors"
	"go-hrdocs/internal/shared/contextutil"
	"go-hrdocs/internal/shared/keylock"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
	"gorm.io/datatypes"
)

const (
	ActiveCacheKeyPrefix = "docconfig:active:"
	activeCacheTTL       = 30 * time.Minute
)

func ActiveCacheKey(tenantID, documentType string) string {
	return ActiveCacheKeyPrefix + tenantID + ":" + documentType
}

func activationLockKey(tenantID, documentType string) string {
	return "docconfig:" + tenantID + ":" + documentType
}

//go:generate mockgen -source=doc_config_service.go -destination=mock/doc_config_service_mock.go -package=mock
type Service interface {
	// GetActiveConfig fails with ErrNoConfigForType when the tenant has no
	// active config for documentType.
	GetActiveConfig(ctx context.Context, tenantID, documentType string) (*Config, error)
	// ResolveConfig falls back to the built-in default and reports it
	// through fromDefault.
	ResolveConfig(ctx context.Context, tenantID, documentType string) (cfg *Config, fromDefault bool, err error)
	// UpsertConfig activates a new version and deactivates the previous
	// active one in the same transaction.
	UpsertConfig(ctx context.Context, tenantID, actorID, documentType string, req UpsertConfigRequest) (*Config, error)
	ListConfigs(ctx context.Context, tenantID, documentType string) ([]Config, error)
}

type service struct {
	db     *sql.DB
	repo   Repository
	locker keylock.Locker
	rdb    *redis.Client
	sf     singleflight.Group
	logger *zap.Logger
}

// NewService wires the config service. locker may be nil for a process
// local lock; rdb may be nil to disable caching.
func NewService(db *sql.DB, repo Repository, locker keylock.Locker, rdb *redis.Client, logger ...*zap.Logger) Service {
	l := zap.L().Named("docconfig.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("docconfig.service")
	}
	if locker == nil {
		locker = keylock.NewLocal()
	}
	return &service{db: db, repo: repo, locker: locker, rdb: rdb, logger: l}
}

func (s *service) GetActiveConfig(ctx context.Context, tenantID, documentType string) (*Config, error) {
	if !ValidDocumentType(documentType) {
		return nil, docconfigerrors.ErrInvalidDocumentType.WithDetails(map[string]any{"document_type": documentType})
	}

	cacheKey := ActiveCacheKey(tenantID, documentType)
	if s.rdb != nil {
		if cached, err := s.rdb.Get(ctx, cacheKey).Bytes(); err == nil {
			var cfg Config
			if json.Unmarshal(cached, &cfg) == nil {
				return &cfg, nil
			}
		}
	}

	v, err, _ := s.sf.Do(cacheKey, func() (interface{}, error) {
		cfg, err := s.repo.FindActive(ctx, tenantID, documentType)
		if err != nil {
			return nil, err
		}

		if s.rdb != nil {
			if err := s.cacheActive(ctx, cacheKey, cfg); err != nil {
				s.logger.Warn("cache active config failed", zap.String("key", cacheKey), zap.Error(err))
			}
		}
		return cfg, nil
	})
	if err != nil {
		mapped := mapRepositoryError(err)
		if errors.Is(mapped, docconfigerrors.ErrNoConfigForType) {
			return nil, docconfigerrors.ErrNoConfigForType.WithDetails(map[string]any{
				"tenant_id":     tenantID,
				"document_type": documentType,
			})
		}
		return nil, mapped
	}

	// Shared between singleflight callers; hand each one its own copy.
	cfg := *v.(*Config)
	cfg.Sections = datatypes.NewJSONType(cfg.SectionList())
	return &cfg, nil
}

func (s *service) ResolveConfig(ctx context.Context, tenantID, documentType string) (*Config, bool, error) {
	cfg, err := s.GetActiveConfig(ctx, tenantID, documentType)
	if err == nil {
		return cfg, false, nil
	}
	if !errors.Is(err, docconfigerrors.ErrNoConfigForType) {
		return nil, false, err
	}

	def, ok := DefaultConfig(documentType)
	if !ok {
		return nil, false, err
	}

	contextutil.GetLogger(ctx, s.logger).Info("using default document config",
		zap.String("tenant_id", tenantID),
		zap.String("document_type", documentType),
	)
	return def, true, nil
}

func (s *service) UpsertConfig(
	ctx context.Context,
	tenantID, actorID, documentType string,
	req UpsertConfigRequest,
) (*Config, error) {
	log := contextutil.GetLogger(ctx, s.logger)

	if !ValidDocumentType(documentType) {
		return nil, docconfigerrors.ErrInvalidDocumentType.WithDetails(map[string]any{"document_type": documentType})
	}
	tenantUUID, err := uuid.Parse(tenantID)
	if err != nil {
		return nil, docconfigerrors.ErrInvalidSection.WithDetails(map[string]any{"tenant_id": tenantID})
	}

	in := make([]Section, len(req.Sections))
	for i, sr := range req.Sections {
		in[i] = sr.toSection()
	}
	sections, err := normalizeSections(in)
	if err != nil {
		return nil, err
	}

	unlock, err := s.locker.Lock(ctx, activationLockKey(tenantID, documentType))
	if err != nil {
		log.Warn("document config lock not obtained",
			zap.String("document_type", documentType),
			zap.Error(err),
		)
		if errors.Is(err, keylock.ErrNotObtained) {
			return nil, docconfigerrors.ErrConfigBusy
		}
		return nil, err
	}
	defer unlock()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		log.Error("upsert document config begin tx failed", zap.Error(err))
		return nil, mapRepositoryError(err)
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	version, err := qtx.NextVersion(ctx, tenantID, documentType)
	if err != nil {
		log.Error("upsert document config next version failed", zap.Error(err))
		return nil, mapRepositoryError(err)
	}

	deactivated, err := qtx.DeactivateActive(ctx, tenantID, documentType)
	if err != nil {
		log.Error("upsert document config deactivate failed", zap.Error(err))
		return nil, mapRepositoryError(err)
	}

	cfg := &Config{
		ID:           uuid.New(),
		TenantID:     tenantUUID,
		DocumentType: documentType,
		Version:      version,
		Name:         req.Name,
		Sections:     datatypes.NewJSONType(sections),
		IsActive:     true,
		CreatedBy:    actorID,
	}
	if err := qtx.Create(ctx, cfg); err != nil {
		log.Error("upsert document config insert failed", zap.Error(err))
		return nil, mapRepositoryError(err)
	}

	if err := tx.Commit(); err != nil {
		log.Error("upsert document config commit failed", zap.Error(err))
		return nil, mapRepositoryError(err)
	}

	if s.rdb != nil {
		key := ActiveCacheKey(tenantID, documentType)
		if err := s.cacheActive(ctx, key, cfg); err != nil {
			log.Warn("cache new active config failed", zap.String("key", key), zap.Error(err))
			s.invalidate(ctx, tenantID, documentType)
		}
	}

	log.Info("document config activated",
		zap.String("document_type", documentType),
		zap.Int("version", version),
		zap.Int64("deactivated", deactivated),
	)
	return cfg, nil
}

func (s *service) ListConfigs(ctx context.Context, tenantID, documentType string) ([]Config, error) {
	if !ValidDocumentType(documentType) {
		return nil, docconfigerrors.ErrInvalidDocumentType.WithDetails(map[string]any{"document_type": documentType})
	}

	configs, err := s.repo.FindAll(ctx, tenantID, documentType)
	if err != nil {
		return nil, mapRepositoryError(err)
	}
	return configs, nil
}

func (s *service) invalidate(ctx context.Context, tenantID, documentType string) {
	if s.rdb == nil {
		return
	}
	key := ActiveCacheKey(tenantID, documentType)
	if err := s.rdb.Del(ctx, key).Err(); err != nil {
		s.logger.Error("failed to invalidate document config cache",
			zap.String("key", key),
			zap.Error(err),
		)
	}
}

const cacheWriteAttempts = 3

// cacheActive writes cfg under key unless the cache already holds the same
// or a newer version of the config. A fill that read the store before an
// activation committed therefore never replaces the newer entry.
func (s *service) cacheActive(ctx context.Context, key string, cfg *Config) error {
	data, err := json.Marshal(cfg)
	if err != nil {
		return err
	}

	write := func(tx *redis.Tx) error {
		cur, err := tx.Get(ctx, key).Bytes()
		switch {
		case err == nil:
			var cached Config
			if json.Unmarshal(cur, &cached) == nil && cached.Version >= cfg.Version {
				return nil
			}
		case !errors.Is(err, redis.Nil):
			return err
		}
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, key, data, activeCacheTTL)
			return nil
		})
		return err
	}

	for i := 0; i < cacheWriteAttempts; i++ {
		err = s.rdb.Watch(ctx, write, key)
		if !errors.Is(err, redis.TxFailedErr) {
			return err
		}
	}
	return err
}
