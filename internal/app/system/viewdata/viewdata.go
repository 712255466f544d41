// internal/app/system/viewdata/viewdata.go
package viewdata

import (
	"net/http"
	"strings"

	"github.com/dalemusser/waffle/pantry/httpnav"
	"github.com/gorilla/csrf"
	"github.com/runpro9ja/adminhub/internal/app/system/authz"
	"github.com/runpro9ja/adminhub/internal/app/system/signout"
)

// DefaultSiteName is shown in the title bar and sidebar.
const DefaultSiteName = "RunPro9ja Admin"

// NavItem is one sidebar link.
type NavItem struct {
	Key    string
	Label  string
	Href   string
	Active bool
}

// BaseVM contains common fields for all view models.
// Embed this struct in your feature-specific view models.
//
// Usage:
//
//	type myPageData struct {
//	    viewdata.BaseVM
//	    // page-specific fields...
//	}
//
//	data := myPageData{
//	    BaseVM: viewdata.NewBaseVM(w, r, "Page Title", "/dashboard"),
//	}
type BaseVM struct {
	SiteName string

	// User context (from auth middleware)
	IsLoggedIn bool
	Role       string
	RoleLabel  string
	UserName   string
	IsManager  bool

	// Page context
	Title       string
	BackURL     string
	CurrentPath string
	Nav         []NavItem

	// CSRF protection
	CSRFToken string

	// One-time messages queued by the previous request.
	Flash []string

	// Signout is set when the API rejected the token on this request.
	Signout *signout.Notice
}

// FlashSource pops queued flash messages. The session manager implements it.
type FlashSource interface {
	PopFlash(w http.ResponseWriter, r *http.Request) []string
}

var (
	flashes  FlashSource
	siteName = DefaultSiteName
)

// Init installs the flash source and site name. Call once from bootstrap.
func Init(fs FlashSource, name string) {
	flashes = fs
	if strings.TrimSpace(name) != "" {
		siteName = name
	}
}

// NewBaseVM creates a fully populated BaseVM for a page.
//
// Parameters:
//   - w, r: the response (flash messages are consumed) and request
//   - title: the page title
//   - backDefault: default URL for the back button if none in request
func NewBaseVM(w http.ResponseWriter, r *http.Request, title, backDefault string) BaseVM {
	role, name, _, signedIn := authz.UserCtx(r)

	vm := BaseVM{
		SiteName:    siteName,
		IsLoggedIn:  signedIn,
		Role:        role,
		RoleLabel:   authz.RoleLabel(role),
		UserName:    name,
		IsManager:   signedIn && authz.IsManager(r),
		Title:       title,
		BackURL:     httpnav.ResolveBackURL(r, backDefault),
		CurrentPath: httpnav.CurrentPath(r),
		CSRFToken:   csrf.Token(r),
	}
	if signedIn {
		vm.Nav = navFor(vm.CurrentPath, vm.IsManager)
	}
	if flashes != nil && w != nil {
		vm.Flash = flashes.PopFlash(w, r)
	}
	return vm
}

// WithSignout attaches a sign-out notice (may be nil).
func (vm BaseVM) WithSignout(n *signout.Notice) BaseVM {
	vm.Signout = n
	return vm
}

var sidebar = []NavItem{
	{Key: "dashboard", Label: "Dashboard", Href: "/dashboard"},
	{Key: "services", Label: "Services", Href: "/services"},
	{Key: "delivery", Label: "Delivery tracking", Href: "/delivery"},
	{Key: "providers", Label: "Service Providers", Href: "/providers"},
	{Key: "support", Label: "Customer Support Team", Href: "/support"},
	{Key: "payments", Label: "Payment History", Href: "/payments"},
	{Key: "assign", Label: "Assign Requests", Href: "/assign"},
	{Key: "accounts", Label: "Accounts", Href: "/accounts"},
	{Key: "complaints", Label: "Complaint", Href: "/complaints"},
	{Key: "audit", Label: "Audit Log", Href: "/audit"},
}

func navFor(path string, manager bool) []NavItem {
	out := make([]NavItem, 0, len(sidebar))
	for _, it := range sidebar {
		if it.Key == "audit" && !manager {
			continue
		}
		it.Active = path == it.Href || strings.HasPrefix(path, it.Href+"/")
		out = append(out, it)
	}
	return out
}
