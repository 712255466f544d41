// internal/app/system/authz/roles.go
package authz

import (
	"net/http"
	"strings"
)

var roleLabels = map[string]string{
	"admin":                  "Admin",
	"super_admin":            "Super admin",
	"admin_customer_service": "Customer service admin",
	"admin_agent_service":    "Agent service admin",
	"representative":         "Representative",
}

// HasAnyRole reports whether the signed-in user holds one of roles.
// Comparison ignores case and surrounding space.
func HasAnyRole(r *http.Request, roles ...string) bool {
	role, _, _, ok := UserCtx(r)
	if !ok {
		return false
	}
	for _, want := range roles {
		if role == strings.ToLower(strings.TrimSpace(want)) {
			return true
		}
	}
	return false
}

// RoleLabel is the display name for a staff role. Unknown roles are shown
// as stored.
func RoleLabel(role string) string {
	if l, ok := roleLabels[strings.ToLower(strings.TrimSpace(role))]; ok {
		return l
	}
	return role
}
