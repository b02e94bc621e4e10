package tenant

import (
	"context"
	"sort"
	"sync"
	"time"

	"go-hrdocs/internal/shared/dbutil"
	tenanterrors "go-hrdocs/internal/tenant/errors"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

// Builder binds the typed models of one tenant to its store and returns
// both the typed struct and its named view.
type Builder[M any] func(ctx context.Context, t Tenant, store *Store) (M, *ModelSet, error)

// Handle is what a resolved tenant gives its callers.
type Handle[M any] struct {
	Tenant Tenant
	Store  *Store
	Models M
	named  *ModelSet
}

func (h *Handle[M]) Named() *ModelSet {
	return h.named
}

// Model is shorthand for h.Named().Get(name).
func (h *Handle[M]) Model(name string) (any, error) {
	return h.named.Get(name)
}

type RegistryConfig struct {
	// ResolveTimeout bounds the directory lookup, store open and
	// provisioning of a first resolution.
	ResolveTimeout time.Duration
	Logger         *zap.Logger
}

// Registry resolves tenant ids into cached handles. The first resolution
// of an id opens and provisions the tenant store exactly once, however many
// callers ask for it concurrently; later resolutions are map lookups.
type Registry[M any] struct {
	directory Directory
	opener    Opener
	build     Builder[M]
	timeout   time.Duration
	logger    *zap.Logger

	mu      sync.RWMutex
	handles map[string]*Handle[M]
	closed  bool
	sf      singleflight.Group
}

func NewRegistry[M any](directory Directory, opener Opener, build Builder[M], cfg RegistryConfig) *Registry[M] {
	l := zap.L().Named("tenant.registry")
	if cfg.Logger != nil {
		l = cfg.Logger.Named("tenant.registry")
	}
	if cfg.ResolveTimeout <= 0 {
		cfg.ResolveTimeout = 10 * time.Second
	}
	return &Registry[M]{
		directory: directory,
		opener:    opener,
		build:     build,
		timeout:   cfg.ResolveTimeout,
		logger:    l,
		handles:   make(map[string]*Handle[M]),
	}
}

func (r *Registry[M]) Resolve(ctx context.Context, tenantID string) (*Handle[M], error) {
	if tenantID == "" {
		return nil, tenanterrors.ErrTenantRequired
	}

	if h, ok, err := r.cached(tenantID); ok || err != nil {
		return h, err
	}

	ch := r.sf.DoChan(tenantID, func() (interface{}, error) {
		// A caller that raced us into the group may have just finished.
		if h, ok, err := r.cached(tenantID); ok || err != nil {
			return h, err
		}
		return r.initialize(ctx, tenantID)
	})

	select {
	case <-ctx.Done():
		// A deadline is a store timeout; a cancellation stays as is.
		return nil, dbutil.MapTimeout(ctx.Err())
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		return res.Val.(*Handle[M]), nil
	}
}

func (r *Registry[M]) cached(tenantID string) (*Handle[M], bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if r.closed {
		return nil, false, tenanterrors.ErrTenantStoreUnavailable.WithDetails(map[string]any{
			"tenant_id": tenantID,
			"reason":    "registry closed",
		})
	}
	h, ok := r.handles[tenantID]
	return h, ok, nil
}

func (r *Registry[M]) initialize(ctx context.Context, tenantID string) (*Handle[M], error) {
	// Initialization outlives the caller that happened to start it.
	initCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), r.timeout)
	defer cancel()

	started := time.Now()
	t, err := r.directory.FindByID(initCtx, tenantID)
	if err != nil {
		r.logger.Warn("tenant lookup failed", zap.String("tenant_id", tenantID), zap.Error(err))
		return nil, err
	}

	store, err := r.opener.Open(initCtx, *t)
	if err != nil {
		r.logger.Error("tenant store open failed", zap.String("tenant_id", tenantID), zap.Error(err))
		return nil, err
	}

	models, named, err := r.build(initCtx, *t, store)
	if err != nil {
		_ = store.Close()
		r.logger.Error("tenant model build failed", zap.String("tenant_id", tenantID), zap.Error(err))
		return nil, err
	}
	if named == nil {
		named = NewModelSet(tenantID)
	}

	h := &Handle[M]{Tenant: *t, Store: store, Models: models, named: named}

	r.mu.Lock()
	if r.closed {
		r.mu.Unlock()
		_ = store.Close()
		return nil, tenanterrors.ErrTenantStoreUnavailable.WithDetails(map[string]any{
			"tenant_id": tenantID,
			"reason":    "registry closed",
		})
	}
	r.handles[tenantID] = h
	r.mu.Unlock()

	r.logger.Info("tenant resolved",
		zap.String("tenant_id", tenantID),
		zap.String("slug", t.Slug),
		zap.Strings("models", named.Names()),
		zap.Duration("elapsed", time.Since(started)),
	)
	return h, nil
}

// Tenants lists the ids resolved so far.
func (r *Registry[M]) Tenants() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	ids := make([]string, 0, len(r.handles))
	for id := range r.handles {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Directory exposes the control-plane directory the registry reads from.
func (r *Registry[M]) Directory() Directory {
	return r.directory
}

// Evict drops a cached tenant and closes its store. The next Resolve opens
// it again.
func (r *Registry[M]) Evict(tenantID string) error {
	r.mu.Lock()
	h, ok := r.handles[tenantID]
	delete(r.handles, tenantID)
	r.mu.Unlock()

	if !ok {
		return nil
	}
	return h.Store.Close()
}

// Close closes every cached store. Resolve fails afterwards.
func (r *Registry[M]) Close() error {
	r.mu.Lock()
	handles := r.handles
	r.handles = make(map[string]*Handle[M])
	r.closed = true
	r.mu.Unlock()

	var firstErr error
	for id, h := range handles {
		if err := h.Store.Close(); err != nil {
			r.logger.Warn("tenant store close failed", zap.String("tenant_id", id), zap.Error(err))
			if firstErr == nil {
				firstErr = err
			}
		}
	}
	return firstErr
}

// Resolver yields a per-tenant dependency, usually a service picked from
// the tenant's models.
type Resolver[S any] func(ctx context.Context, tenantID string) (S, error)

// Bind adapts a registry into a Resolver using pick.
func Bind[M, S any](r *Registry[M], pick func(M) S) Resolver[S] {
	return func(ctx context.Context, tenantID string) (S, error) {
		h, err := r.Resolve(ctx, tenantID)
		if err != nil {
			var zero S
			return zero, err
		}
		return pick(h.Models), nil
	}
}
