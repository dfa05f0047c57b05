// Package policy maps (role, route) pairs to allow/deny decisions. The
// table is static configuration: changing who may hit a route means
// redeploying the policy, not editing data at runtime.
package policy

import "github.com/jrsteele09/go-inventory-server/users"

// RouteID identifies a protected operation. Routes are an explicit
// enumeration rather than matched strings so the table stays exhaustive
// and statically checkable.
type RouteID string

const (
	RouteInventoryRead  RouteID = "inventory-read"
	RouteInventoryWrite RouteID = "inventory-write"
	RouteNotifySend     RouteID = "notify-send"
	RouteAIReport       RouteID = "ai-report"
)

var roleTable = map[RouteID][]users.RoleType{
	RouteInventoryRead:  {users.RoleAdmin, users.RoleManager, users.RoleStaff},
	RouteInventoryWrite: {users.RoleAdmin, users.RoleManager},
	RouteNotifySend:     {users.RoleAdmin, users.RoleManager},
	RouteAIReport:       {users.RoleAdmin, users.RoleManager, users.RoleStaff},
}

// Authorize reports whether role may invoke route. Unknown routes always
// deny. Unauthenticated callers never reach this check; they are rejected
// earlier by session verification.
func Authorize(role users.RoleType, route RouteID) bool {
	allowed, ok := roleTable[route]
	if !ok {
		return false
	}
	for _, r := range allowed {
		if r == role {
			return true
		}
	}
	return false
}
