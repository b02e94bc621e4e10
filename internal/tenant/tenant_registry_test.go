package tenant_test

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"go-hrdocs/internal/shared/apperror"
	"go-hrdocs/internal/tenant"
	tenanterrors "go-hrdocs/internal/tenant/errors"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeDirectory struct {
	FindByIDFn   func(ctx context.Context, id string) (*tenant.Tenant, error)
	ListActiveFn func(ctx context.Context) ([]tenant.Tenant, error)
}

func (f *fakeDirectory) FindByID(ctx context.Context, id string) (*tenant.Tenant, error) {
	return f.FindByIDFn(ctx, id)
}

func (f *fakeDirectory) ListActive(ctx context.Context) ([]tenant.Tenant, error) {
	return f.ListActiveFn(ctx)
}

type fakeOpener struct {
	calls  atomic.Int32
	OpenFn func(ctx context.Context, t tenant.Tenant) (*tenant.Store, error)
}

func (f *fakeOpener) Open(ctx context.Context, t tenant.Tenant) (*tenant.Store, error) {
	f.calls.Add(1)
	return f.OpenFn(ctx, t)
}

type testModels struct {
	TenantID string
	Greeter  func() string
}

func directoryOf(tenants ...tenant.Tenant) *fakeDirectory {
	return &fakeDirectory{
		FindByIDFn: func(ctx context.Context, id string) (*tenant.Tenant, error) {
			for _, t := range tenants {
				if t.ID.String() == id {
					t := t
					return &t, nil
				}
			}
			return nil, tenanterrors.ErrTenantNotFound.WithDetails(map[string]any{"tenant_id": id})
		},
	}
}

func buildTestModels(ctx context.Context, t tenant.Tenant, store *tenant.Store) (*testModels, *tenant.ModelSet, error) {
	m := &testModels{TenantID: t.ID.String(), Greeter: func() string { return "hello " + t.Slug }}
	set := tenant.NewModelSet(t.ID.String())
	if err := set.Register("Greeter", m.Greeter); err != nil {
		return nil, nil, err
	}
	return m, set, nil
}

func newTenant(slug string) tenant.Tenant {
	return tenant.Tenant{ID: uuid.New(), Name: slug, Slug: slug, DatabaseName: "hr_" + slug, IsActive: true}
}

func TestRegistry_Resolve(t *testing.T) {
	acme := newTenant("acme")
	globex := newTenant("globex")

	t.Run("concurrent first resolution opens the store once", func(t *testing.T) {
		opener := &fakeOpener{OpenFn: func(ctx context.Context, tn tenant.Tenant) (*tenant.Store, error) {
			time.Sleep(20 * time.Millisecond)
			return &tenant.Store{}, nil
		}}
		var builds atomic.Int32
		build := func(ctx context.Context, tn tenant.Tenant, store *tenant.Store) (*testModels, *tenant.ModelSet, error) {
			builds.Add(1)
			return buildTestModels(ctx, tn, store)
		}
		reg := tenant.NewRegistry(directoryOf(acme), opener, build, tenant.RegistryConfig{})

		const callers = 32
		var wg sync.WaitGroup
		handles := make([]*tenant.Handle[*testModels], callers)
		errs := make([]error, callers)
		for i := 0; i < callers; i++ {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				handles[i], errs[i] = reg.Resolve(context.Background(), acme.ID.String())
			}(i)
		}
		wg.Wait()

		for i := 0; i < callers; i++ {
			require.NoError(t, errs[i])
			assert.Same(t, handles[0], handles[i])
		}
		assert.Equal(t, int32(1), opener.calls.Load())
		assert.Equal(t, int32(1), builds.Load())
		assert.Equal(t, []string{acme.ID.String()}, reg.Tenants())
	})

	t.Run("tenants get isolated stores and models", func(t *testing.T) {
		opener := &fakeOpener{OpenFn: func(ctx context.Context, tn tenant.Tenant) (*tenant.Store, error) {
			return &tenant.Store{}, nil
		}}
		reg := tenant.NewRegistry(directoryOf(acme, globex), opener, buildTestModels, tenant.RegistryConfig{})

		a, err := reg.Resolve(context.Background(), acme.ID.String())
		require.NoError(t, err)
		g, err := reg.Resolve(context.Background(), globex.ID.String())
		require.NoError(t, err)

		assert.NotSame(t, a.Store, g.Store)
		assert.Equal(t, acme.ID.String(), a.Models.TenantID)
		assert.Equal(t, globex.ID.String(), g.Models.TenantID)
		assert.Equal(t, "hello globex", g.Models.Greeter())
	})

	t.Run("unknown tenant", func(t *testing.T) {
		opener := &fakeOpener{}
		reg := tenant.NewRegistry(directoryOf(acme), opener, buildTestModels, tenant.RegistryConfig{})

		_, err := reg.Resolve(context.Background(), uuid.NewString())

		assert.ErrorIs(t, err, tenanterrors.ErrTenantNotFound)
		assert.Equal(t, int32(0), opener.calls.Load())
	})

	t.Run("empty tenant id", func(t *testing.T) {
		reg := tenant.NewRegistry(directoryOf(), &fakeOpener{}, buildTestModels, tenant.RegistryConfig{})

		_, err := reg.Resolve(context.Background(), "")

		assert.ErrorIs(t, err, tenanterrors.ErrTenantRequired)
	})

	t.Run("store unavailable is propagated and not cached", func(t *testing.T) {
		var fail atomic.Bool
		fail.Store(true)
		opener := &fakeOpener{OpenFn: func(ctx context.Context, tn tenant.Tenant) (*tenant.Store, error) {
			if fail.Load() {
				return nil, tenanterrors.ErrTenantStoreUnavailable.WithCause(errors.New("connection refused"))
			}
			return &tenant.Store{}, nil
		}}
		reg := tenant.NewRegistry(directoryOf(acme), opener, buildTestModels, tenant.RegistryConfig{})

		_, err := reg.Resolve(context.Background(), acme.ID.String())
		assert.ErrorIs(t, err, tenanterrors.ErrTenantStoreUnavailable)
		assert.Empty(t, reg.Tenants())

		fail.Store(false)
		h, err := reg.Resolve(context.Background(), acme.ID.String())
		require.NoError(t, err)
		assert.NotNil(t, h)
		assert.Equal(t, int32(2), opener.calls.Load())
	})

	t.Run("store timeout surfaces as store timeout", func(t *testing.T) {
		opener := &fakeOpener{OpenFn: func(ctx context.Context, tn tenant.Tenant) (*tenant.Store, error) {
			return nil, apperror.ErrStoreTimeout.WithCause(context.DeadlineExceeded)
		}}
		reg := tenant.NewRegistry(directoryOf(acme), opener, buildTestModels, tenant.RegistryConfig{})

		_, err := reg.Resolve(context.Background(), acme.ID.String())

		assert.ErrorIs(t, err, apperror.ErrStoreTimeout)
	})

	t.Run("cancelled caller does not abort initialization", func(t *testing.T) {
		release := make(chan struct{})
		opener := &fakeOpener{OpenFn: func(ctx context.Context, tn tenant.Tenant) (*tenant.Store, error) {
			<-release
			return &tenant.Store{}, nil
		}}
		reg := tenant.NewRegistry(directoryOf(acme), opener, buildTestModels, tenant.RegistryConfig{})

		ctx, cancel := context.WithCancel(context.Background())
		done := make(chan error, 1)
		go func() {
			_, err := reg.Resolve(ctx, acme.ID.String())
			done <- err
		}()
		time.Sleep(10 * time.Millisecond)
		cancel()
		assert.ErrorIs(t, <-done, context.Canceled)

		close(release)
		h, err := reg.Resolve(context.Background(), acme.ID.String())
		require.NoError(t, err)
		assert.NotNil(t, h)
		assert.Equal(t, int32(1), opener.calls.Load())
	})

	t.Run("caller deadline surfaces as store timeout", func(t *testing.T) {
		release := make(chan struct{})
		defer close(release)
		opener := &fakeOpener{OpenFn: func(ctx context.Context, tn tenant.Tenant) (*tenant.Store, error) {
			<-release
			return &tenant.Store{}, nil
		}}
		reg := tenant.NewRegistry(directoryOf(acme), opener, buildTestModels, tenant.RegistryConfig{})

		ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
		defer cancel()
		_, err := reg.Resolve(ctx, acme.ID.String())

		assert.ErrorIs(t, err, apperror.ErrStoreTimeout)
		assert.ErrorIs(t, err, context.DeadlineExceeded)
		assert.Equal(t, http.StatusGatewayTimeout, apperror.ToHTTP(err).Status)
	})

	t.Run("closed registry rejects resolution", func(t *testing.T) {
		opener := &fakeOpener{OpenFn: func(ctx context.Context, tn tenant.Tenant) (*tenant.Store, error) {
			return &tenant.Store{}, nil
		}}
		reg := tenant.NewRegistry(directoryOf(acme), opener, buildTestModels, tenant.RegistryConfig{})
		_, err := reg.Resolve(context.Background(), acme.ID.String())
		require.NoError(t, err)

		require.NoError(t, reg.Close())
		_, err = reg.Resolve(context.Background(), acme.ID.String())

		assert.ErrorIs(t, err, tenanterrors.ErrTenantStoreUnavailable)
		assert.Empty(t, reg.Tenants())
	})

	t.Run("evict reopens on next resolution", func(t *testing.T) {
		opener := &fakeOpener{OpenFn: func(ctx context.Context, tn tenant.Tenant) (*tenant.Store, error) {
			return &tenant.Store{}, nil
		}}
		reg := tenant.NewRegistry(directoryOf(acme), opener, buildTestModels, tenant.RegistryConfig{})

		first, err := reg.Resolve(context.Background(), acme.ID.String())
		require.NoError(t, err)
		require.NoError(t, reg.Evict(acme.ID.String()))
		second, err := reg.Resolve(context.Background(), acme.ID.String())
		require.NoError(t, err)

		assert.NotSame(t, first, second)
		assert.Equal(t, int32(2), opener.calls.Load())
	})
}

func TestHandle_Model(t *testing.T) {
	acme := newTenant("acme")
	opener := &fakeOpener{OpenFn: func(ctx context.Context, tn tenant.Tenant) (*tenant.Store, error) {
		return &tenant.Store{}, nil
	}}
	reg := tenant.NewRegistry(directoryOf(acme), opener, buildTestModels, tenant.RegistryConfig{})
	h, err := reg.Resolve(context.Background(), acme.ID.String())
	require.NoError(t, err)

	t.Run("registered model", func(t *testing.T) {
		greeter, err := tenant.Model[func() string](h.Named(), "Greeter")
		require.NoError(t, err)
		assert.Equal(t, "hello acme", greeter())
	})

	t.Run("unregistered model is a configuration error", func(t *testing.T) {
		_, err := h.Model("Payslip")

		require.ErrorIs(t, err, tenanterrors.ErrModelNotRegistered)
		var appErr *apperror.AppError
		require.True(t, errors.As(err, &appErr))
		assert.Equal(t, apperror.CodeModelNotRegistered, appErr.Code)
		assert.Equal(t, "Payslip", appErr.Details["model"])
		assert.Equal(t, acme.ID.String(), appErr.Details["tenant_id"])
	})

	t.Run("wrong type is reported as not registered", func(t *testing.T) {
		_, err := tenant.Model[*testModels](h.Named(), "Greeter")

		assert.ErrorIs(t, err, tenanterrors.ErrModelNotRegistered)
	})
}

func TestBind(t *testing.T) {
	acme := newTenant("acme")
	opener := &fakeOpener{OpenFn: func(ctx context.Context, tn tenant.Tenant) (*tenant.Store, error) {
		return &tenant.Store{}, nil
	}}
	reg := tenant.NewRegistry(directoryOf(acme), opener, buildTestModels, tenant.RegistryConfig{})
	resolve := tenant.Bind(reg, func(m *testModels) string { return m.Greeter() })

	got, err := resolve(context.Background(), acme.ID.String())
	require.NoError(t, err)
	assert.Equal(t, "hello acme", got)

	_, err = resolve(context.Background(), uuid.NewString())
	assert.ErrorIs(t, err, tenanterrors.ErrTenantNotFound)
}

func TestModelSet_Register(t *testing.T) {
	set := tenant.NewModelSet("t1")

	require.NoError(t, set.Register("Employee", 1))
	assert.Error(t, set.Register("Employee", 2))
	assert.Error(t, set.Register("", 3))
	assert.Equal(t, []string{"Employee"}, set.Names())
}
