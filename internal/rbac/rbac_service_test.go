package rbac_test

import (
	"testing"

	"go-hrdocs/internal/rbac"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuthorizer_Enforce(t *testing.T) {
	authz, err := rbac.NewService()
	require.NoError(t, err)

	tests := []struct {
		name     string
		role     string
		resource string
		action   string
		allowed  bool
	}{
		{"viewer reads documents", rbac.RoleViewer, rbac.ResourceDocument, rbac.ActionRead, true},
		{"viewer cannot generate", rbac.RoleViewer, rbac.ResourceDocument, rbac.ActionWrite, false},
		{"manager inherits read", rbac.RoleManager, rbac.ResourceConfig, rbac.ActionRead, true},
		{"manager transitions documents", rbac.RoleManager, rbac.ResourceDocument, rbac.ActionTransition, true},
		{"manager cannot change configs", rbac.RoleManager, rbac.ResourceConfig, rbac.ActionWrite, false},
		{"admin changes configs", rbac.RoleAdmin, rbac.ResourceConfig, rbac.ActionWrite, true},
		{"admin cannot expire", rbac.RoleAdmin, rbac.ResourceDocument, rbac.ActionExpire, false},
		{"system expires", rbac.RoleSystem, rbac.ResourceDocument, rbac.ActionExpire, true},
		{"unknown role", "intern", rbac.ResourceDocument, rbac.ActionRead, false},
		{"missing role", "", rbac.ResourceDocument, rbac.ActionRead, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			allowed, err := authz.Enforce(rbac.EnforceRequest{
				Role:     tt.role,
				TenantID: "t-1",
				Resource: tt.resource,
				Action:   tt.action,
			})
			require.NoError(t, err)
			assert.Equal(t, tt.allowed, allowed)
		})
	}
}
