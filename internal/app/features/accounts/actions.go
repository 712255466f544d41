package accounts

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/runpro9ja/adminhub/internal/app/features/shared"
	"github.com/runpro9ja/adminhub/internal/app/system/authz"
	"github.com/runpro9ja/adminhub/internal/app/system/paging"
	"github.com/runpro9ja/adminhub/internal/app/system/runapi"
	"github.com/runpro9ja/adminhub/internal/domain/models"
	"go.uber.org/zap"
)

// formListQuery restores the list the action was taken from.
func formListQuery(r *http.Request) listQuery {
	return listQuery{
		Tab:    normalizeTab(r.FormValue("type")),
		Search: strings.TrimSpace(r.FormValue("search")),
	}
}

// deleteOne removes one account and records the outcome.
func (h *Handler) deleteOne(r *http.Request, id, tab string) error {
	ctx, cancel := h.LoadContext(r, "delete account")
	defer cancel()

	env, err := h.API.DeleteAccount(ctx, id)
	err = runapi.Check(env, err)
	h.AuditLog.AccountDeleted(r.Context(), r, shared.ActorID(r), id, tab, err)
	if err != nil {
		h.Log.Warn("delete account failed", zap.String("account_id", id), zap.Error(err))
	}
	return err
}

// HandleDelete handles POST /accounts/{id}/delete.
func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	if !authz.IsManager(r) {
		http.Error(w, "forbidden", http.StatusForbidden)
		return
	}
	if err := r.ParseForm(); err != nil {
		h.ErrLog.LogBadRequest(w, r, "parse form failed", err, "Invalid form data.", "/accounts")
		return
	}

	id := strings.TrimSpace(chi.URLParam(r, "id"))
	q := formListQuery(r)
	if id == "" {
		http.NotFound(w, r)
		return
	}
	if id == shared.ActorID(r) {
		h.Flash(w, r, "You can't delete your own account.")
		shared.Back(w, r, q.listURL())
		return
	}

	if err := h.deleteOne(r, id, q.Tab); err != nil {
		h.Flash(w, r, runapi.UserMessage(err, "Failed to delete account. Please try again."))
	} else {
		h.Flash(w, r, "Account deleted.")
	}
	shared.Back(w, r, q.listURL())
}

// HandleBulkDelete handles POST /accounts/bulk-delete with one "ids" value
// per selected row. Rows are deleted one by one; the flash reports how many
// went through.
func (h *Handler) HandleBulkDelete(w http.ResponseWriter, r *http.Request) {
	if !authz.IsManager(r) {
		http.Error(w, "forbidden", http.StatusForbidden)
		return
	}
	if err := r.ParseForm(); err != nil {
		h.ErrLog.LogBadRequest(w, r, "parse form failed", err, "Invalid form data.", "/accounts")
		return
	}
	q := formListQuery(r)

	self := shared.ActorID(r)
	seen := map[string]bool{}
	var ids []string
	for _, id := range r.Form["ids"] {
		id = strings.TrimSpace(id)
		if id == "" || id == self || seen[id] {
			continue
		}
		seen[id] = true
		ids = append(ids, id)
	}
	if len(ids) == 0 {
		h.Flash(w, r, "Select at least one account to delete.")
		shared.Back(w, r, q.listURL())
		return
	}

	deleted := 0
	for _, id := range ids {
		if h.deleteOne(r, id, q.Tab) == nil {
			deleted++
		}
	}

	switch {
	case deleted == len(ids):
		h.Flash(w, r, fmt.Sprintf("Deleted %d account(s).", deleted))
	default:
		h.Flash(w, r, fmt.Sprintf("Deleted %d of %d accounts. Some deletions failed.", deleted, len(ids)))
	}
	shared.Back(w, r, q.listURL())
}

// HandleCreateAdmin handles POST /accounts/admins. The temporary password
// is shown once on the rendered page and never stored.
func (h *Handler) HandleCreateAdmin(w http.ResponseWriter, r *http.Request) {
	if !authz.IsManager(r) {
		http.Error(w, "forbidden", http.StatusForbidden)
		return
	}
	if err := r.ParseForm(); err != nil {
		h.ErrLog.LogBadRequest(w, r, "parse form failed", err, "Invalid form data.", "/accounts?type=admins")
		return
	}

	form := createForm{
		Username: strings.TrimSpace(r.FormValue("username")),
		FullName: strings.TrimSpace(r.FormValue("fullName")),
		Role:     strings.TrimSpace(r.FormValue("role")),
	}
	q := listQuery{Tab: models.AccountsAdmins}
	q.Page.Number, q.Page.Limit = 1, paging.PageSize

	switch {
	case form.Username == "" || form.FullName == "":
		form.Error = "Username and full name are required."
	case !models.IsCreatableRole(form.Role):
		form.Error = "Choose a valid role."
	}
	if form.Error != "" {
		h.renderAfterCreate(w, r, q, form, "")
		return
	}

	ctx, cancel := h.LoadContext(r, "create admin")
	defer cancel()

	env, err := h.API.CreateAdmin(ctx, runapi.NewAdmin{Username: form.Username, FullName: form.FullName, Role: form.Role})
	err = runapi.Check(env, err)

	var created models.CreatedAdmin
	if err == nil {
		if derr := env.Decode(runapi.KeyData, &created); derr != nil {
			h.Log.Warn("create admin response without data", zap.Error(derr))
		}
	}
	h.AuditLog.AdminCreated(r.Context(), r, shared.ActorID(r), created.ID, form.Username, form.Role, err)

	if err != nil {
		form.Error = runapi.UserMessage(err, "Error creating admin")
		h.renderAfterCreate(w, r, q, form, "")
		return
	}

	if created.Username == "" {
		created.Username = form.Username
	}
	h.renderAfterCreate(w, r, q, createForm{Username: created.Username}, created.Password)
}

// renderAfterCreate reloads the admins tab under the create form result.
func (h *Handler) renderAfterCreate(w http.ResponseWriter, r *http.Request, q listQuery, form createForm, password string) {
	ctx, cancel := h.LoadContext(r, "accounts list")
	defer cancel()
	st := h.load(ctx, q)

	if password != "" {
		h.renderCreated(w, r, q, st, form.Username, password)
		return
	}
	h.renderList(w, r, q, st, form, true)
}
