package accounts

import (
	"net/http"
	"strings"

	"github.com/dalemusser/waffle/pantry/query"
	"github.com/dalemusser/waffle/pantry/templates"
	"github.com/gorilla/csrf"
	"github.com/runpro9ja/adminhub/internal/app/features/shared"
	"github.com/runpro9ja/adminhub/internal/app/system/authz"
	"github.com/runpro9ja/adminhub/internal/app/system/paging"
	"github.com/runpro9ja/adminhub/internal/app/system/signout"
	"github.com/runpro9ja/adminhub/internal/app/system/viewdata"
	"github.com/runpro9ja/adminhub/internal/app/system/viewload"
	"github.com/runpro9ja/adminhub/internal/domain/models"
)

const page = "accounts"

// tableTarget is the element HTMX swaps for search, tabs and paging.
const tableTarget = "accounts-table"

type tab struct {
	Key    string
	Label  string
	Href   string
	Active bool
}

type tableData struct {
	Tab       string
	Search    string
	Accounts  viewload.State[models.Account]
	Pager     viewdata.Pager
	CanDelete bool
	ReturnURL string
	CSRFToken string
	Signout   *signout.Notice
}

type createForm struct {
	Username string
	FullName string
	Role     string
	Error    string
}

type listData struct {
	viewdata.BaseVM
	Table       tableData
	Tabs        []tab
	Roles       []string
	CanCreate   bool
	Form        createForm
	ShowForm    bool
	NewUsername string
	NewPassword string
}

var tabLabels = map[string]string{
	models.AccountsCustomers:       "Customers",
	models.AccountsAgents:          "Agents",
	models.AccountsAdmins:          "Admins",
	models.AccountsRepresentatives: "Representatives",
}

func tabsFor(active string) []tab {
	out := make([]tab, 0, len(models.AccountTabs))
	for _, k := range models.AccountTabs {
		out = append(out, tab{Key: k, Label: tabLabels[k], Href: "/accounts?type=" + k, Active: k == active})
	}
	return out
}

func parseListQuery(r *http.Request) listQuery {
	return listQuery{
		Tab:    normalizeTab(query.Get(r, "type")),
		Page:   paging.Parse(r, paging.PageSize),
		Search: strings.TrimSpace(query.Search(r, "search")),
	}
}

func (h *Handler) buildTable(r *http.Request, q listQuery, st viewload.State[models.Account]) tableData {
	return tableData{
		Tab:       q.Tab,
		Search:    q.Search,
		Accounts:  st,
		Pager:     viewdata.NewPager(r, paging.Compute(q.Page, st.Count()), tableTarget),
		CanDelete: authz.IsManager(r) && !st.Fallback,
		ReturnURL: q.listURL(),
	}
}

// ServeList handles GET /accounts. Tabs, search and paging are HTMX swaps
// of the table only.
func (h *Handler) ServeList(w http.ResponseWriter, r *http.Request) {
	q := parseListQuery(r)

	ctx, cancel := h.LoadContext(r, "accounts list")
	defer cancel()
	st := h.load(ctx, q)

	if shared.IsPartial(r, tableTarget) {
		td := h.buildTable(r, q, st)
		td.Signout = h.Enforce(w, r, page, st.Unauthorized)
		td.CSRFToken = csrf.Token(r)
		templates.RenderSnippet(w, "accounts_table", td)
		return
	}

	h.renderList(w, r, q, st, createForm{Role: models.RoleAdminCustomerService}, false)
}

// listView builds the full page for q. Callers fill in the create-admin
// parts before rendering.
func (h *Handler) listView(w http.ResponseWriter, r *http.Request, q listQuery, st viewload.State[models.Account]) listData {
	data := listData{
		BaseVM:    h.Page(w, r, page, "Accounts Management", st.Unauthorized),
		Table:     h.buildTable(r, q, st),
		Tabs:      tabsFor(q.Tab),
		Roles:     models.CreatableRoles,
		CanCreate: authz.IsManager(r) && q.Tab == models.AccountsAdmins,
		Form:      createForm{Role: models.RoleAdminCustomerService},
	}
	data.Table.CSRFToken = data.CSRFToken
	return data
}

func (h *Handler) renderList(w http.ResponseWriter, r *http.Request, q listQuery, st viewload.State[models.Account], form createForm, showForm bool) {
	data := h.listView(w, r, q, st)
	data.Form = form
	data.ShowForm = showForm
	templates.Render(w, r, "accounts_list", data)
}

// renderCreated shows the new admin's credentials once.
func (h *Handler) renderCreated(w http.ResponseWriter, r *http.Request, q listQuery, st viewload.State[models.Account], username, password string) {
	data := h.listView(w, r, q, st)
	data.NewUsername = username
	data.NewPassword = password
	templates.Render(w, r, "accounts_list", data)
}
