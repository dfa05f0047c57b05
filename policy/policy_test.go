package policy_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/jrsteele09/go-inventory-server/policy"
	"github.com/jrsteele09/go-inventory-server/users"
)

func TestAuthorize(t *testing.T) {
	tests := []struct {
		role  users.RoleType
		route policy.RouteID
		allow bool
	}{
		{users.RoleAdmin, policy.RouteInventoryRead, true},
		{users.RoleManager, policy.RouteInventoryRead, true},
		{users.RoleStaff, policy.RouteInventoryRead, true},

		{users.RoleAdmin, policy.RouteInventoryWrite, true},
		{users.RoleManager, policy.RouteInventoryWrite, true},
		{users.RoleStaff, policy.RouteInventoryWrite, false},

		{users.RoleAdmin, policy.RouteNotifySend, true},
		{users.RoleManager, policy.RouteNotifySend, true},
		{users.RoleStaff, policy.RouteNotifySend, false},

		{users.RoleAdmin, policy.RouteAIReport, true},
		{users.RoleManager, policy.RouteAIReport, true},
		{users.RoleStaff, policy.RouteAIReport, true},
	}

	for _, tc := range tests {
		t.Run(string(tc.role)+" "+string(tc.route), func(t *testing.T) {
			require.Equal(t, tc.allow, policy.Authorize(tc.role, tc.route))
		})
	}
}

func TestAuthorizeUnknownRouteDenies(t *testing.T) {
	require.False(t, policy.Authorize(users.RoleAdmin, policy.RouteID("inventory-delete")))
	require.False(t, policy.Authorize(users.RoleAdmin, policy.RouteID("")))
}

func TestAuthorizeUnknownRoleDenies(t *testing.T) {
	require.False(t, policy.Authorize(users.RoleType("superuser"), policy.RouteInventoryRead))
}
