package tenant

import (
	"fmt"
	"reflect"
	"sort"
	"sync"

	tenanterrors "go-hrdocs/internal/tenant/errors"
)

// ModelSet is the named view over the models bound to one tenant store.
// Asking for a name that was never registered is a wiring error and is
// reported as ErrModelNotRegistered, never as missing data.
type ModelSet struct {
	tenantID string

	mu     sync.RWMutex
	models map[string]any
}

func NewModelSet(tenantID string) *ModelSet {
	return &ModelSet{tenantID: tenantID, models: make(map[string]any)}
}

func (m *ModelSet) TenantID() string {
	return m.tenantID
}

func (m *ModelSet) Register(name string, model any) error {
	if name == "" || model == nil {
		return fmt.Errorf("tenant: invalid model registration %q", name)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.models[name]; ok {
		return fmt.Errorf("tenant: model %q already registered for tenant %s", name, m.tenantID)
	}
	m.models[name] = model
	return nil
}

func (m *ModelSet) Get(name string) (any, error) {
	m.mu.RLock()
	model, ok := m.models[name]
	m.mu.RUnlock()

	if !ok {
		return nil, tenanterrors.ErrModelNotRegistered.WithDetails(map[string]any{
			"tenant_id": m.tenantID,
			"model":     name,
		})
	}
	return model, nil
}

func (m *ModelSet) Names() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()

	names := make([]string, 0, len(m.models))
	for name := range m.models {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Model returns the model registered under name as a T. A registration of
// another type is reported the same way as a missing one.
func Model[T any](set *ModelSet, name string) (T, error) {
	var zero T

	raw, err := set.Get(name)
	if err != nil {
		return zero, err
	}

	typed, ok := raw.(T)
	if !ok {
		return zero, tenanterrors.ErrModelNotRegistered.WithDetails(map[string]any{
			"tenant_id": set.tenantID,
			"model":     name,
			"expected":  reflect.TypeOf((*T)(nil)).Elem().String(),
			"actual":    fmt.Sprintf("%T", raw),
		})
	}
	return typed, nil
}
