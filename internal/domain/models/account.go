// internal/domain/models/account.go
package models

import "time"

// Account is a platform user as listed by /admin/accounts.
type Account struct {
	ID        string     `json:"_id"`
	Username  string     `json:"username"`
	Email     string     `json:"email"`
	FullName  string     `json:"fullName"`
	Role      string     `json:"role"`
	Phone     string     `json:"phone,omitempty"`
	CreatedAt *time.Time `json:"createdAt,omitempty"`
}

// Handle is the username, or the email for accounts without one.
func (a Account) Handle() string {
	if a.Username != "" {
		return a.Username
	}
	return a.Email
}

// Account list tabs.
const (
	AccountsCustomers       = "customers"
	AccountsAgents          = "agents"
	AccountsAdmins          = "admins"
	AccountsRepresentatives = "representatives"
)

// AccountTabs lists the tabs in display order.
var AccountTabs = []string{AccountsCustomers, AccountsAgents, AccountsAdmins, AccountsRepresentatives}

// IsAccountTab reports whether t is a known tab.
func IsAccountTab(t string) bool {
	for _, v := range AccountTabs {
		if v == t {
			return true
		}
	}
	return false
}

// Roles an admin can create from the console.
const (
	RoleAdminCustomerService = "ADMIN_CUSTOMER_SERVICE"
	RoleAdminAgentService    = "ADMIN_AGENT_SERVICE"
	RoleRepresentative       = "REPRESENTATIVE"
)

// CreatableRoles is the role picker of the "add admin" form.
var CreatableRoles = []string{RoleAdminCustomerService, RoleAdminAgentService, RoleRepresentative}

// IsCreatableRole reports whether r may be used for a new admin.
func IsCreatableRole(r string) bool {
	for _, v := range CreatableRoles {
		if v == r {
			return true
		}
	}
	return false
}

// CreatedAdmin is the data returned after creating an admin.
type CreatedAdmin struct {
	ID       string `json:"_id"`
	Username string `json:"username"`
	Password string `json:"password"`
}

// Created formats CreatedAt as a short date, or "-" when unknown.
func (a Account) Created() string {
	if a.CreatedAt == nil || a.CreatedAt.IsZero() {
		return "-"
	}
	return a.CreatedAt.Format("Jan 2, 2006")
}
