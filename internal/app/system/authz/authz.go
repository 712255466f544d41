// internal/app/system/authz/authz.go
package authz

import (
	"net/http"
	"strings"

	"github.com/runpro9ja/adminhub/internal/app/system/auth"
)

// Role groups. Every staff role may browse the console; only managers may
// remove accounts, create staff or read the audit log.
var (
	StaffRoles   = auth.AdminRoles
	ManagerRoles = []string{"admin", "super_admin"}
)

// UserCtx returns the user's role (lowercased), name, remote user id, and a
// found flag. Without a user it returns "visitor", "", "", false.
func UserCtx(r *http.Request) (role string, name string, userID string, ok bool) {
	user, ok := auth.CurrentUser(r)
	if !ok || user == nil {
		return "visitor", "", "", false
	}
	return strings.ToLower(user.Role), user.Name, user.ID, true
}

// IsManager reports whether the current user holds a manager role.
func IsManager(r *http.Request) bool {
	return HasAnyRole(r, ManagerRoles...)
}

// IsStaff reports whether the current user may use the console at all.
func IsStaff(r *http.Request) bool {
	role, _, _, ok := UserCtx(r)
	return ok && auth.IsAdminRole(role)
}
