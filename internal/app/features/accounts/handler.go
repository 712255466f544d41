// internal/app/features/accounts/handler.go
package accounts

import (
	"context"
	"net/url"
	"strconv"
	"time"

	"github.com/gorilla/websocket"
	"github.com/runpro9ja/adminhub/internal/app/features/shared"
	"github.com/runpro9ja/adminhub/internal/app/system/paging"
	"github.com/runpro9ja/adminhub/internal/app/system/runapi"
	"github.com/runpro9ja/adminhub/internal/app/system/viewload"
	"github.com/runpro9ja/adminhub/internal/domain/models"
)

type Handler struct {
	*shared.Deps

	// Quiet is the live-search debounce window.
	Quiet    time.Duration
	upgrader websocket.Upgrader
}

func NewHandler(deps *shared.Deps, quiet time.Duration) *Handler {
	if quiet <= 0 {
		quiet = viewload.DefaultQuiet
	}
	return &Handler{
		Deps:  deps,
		Quiet: quiet,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 4096,
		},
	}
}

// listQuery is one request for a page of accounts.
type listQuery struct {
	Tab    string
	Page   paging.Page
	Search string
}

func (q listQuery) values() url.Values {
	v := url.Values{}
	v.Set("type", q.Tab)
	v.Set("page", strconv.Itoa(q.Page.Number))
	v.Set("limit", strconv.Itoa(q.Page.Limit))
	if q.Search != "" {
		v.Set("search", q.Search)
	}
	return v
}

// listURL is the list page for q, used as the redirect target after
// actions.
func (q listQuery) listURL() string {
	v := url.Values{}
	v.Set("type", q.Tab)
	if q.Page.Number > 1 {
		v.Set("page", strconv.Itoa(q.Page.Number))
	}
	if q.Search != "" {
		v.Set("search", q.Search)
	}
	return "/accounts?" + v.Encode()
}

func normalizeTab(t string) string {
	if models.IsAccountTab(t) {
		return t
	}
	return models.AccountsCustomers
}

func atoiOr(s string, def int) int {
	n, err := strconv.Atoi(s)
	if err != nil || n < 1 {
		return def
	}
	return n
}

// accountsSource lists accounts. A searched list may legitimately be empty;
// an unsearched empty tab falls back to the sample rows.
func (h *Handler) accountsSource(allowEmpty bool) viewload.Source[models.Account] {
	return viewload.Source[models.Account]{
		Name: "accounts",
		Fetch: func(ctx context.Context, q url.Values) (runapi.Envelope, error) {
			return h.API.Accounts(ctx, runapi.AccountsQuery{
				Type:   normalizeTab(q.Get("type")),
				Page:   atoiOr(q.Get("page"), 1),
				Limit:  atoiOr(q.Get("limit"), paging.PageSize),
				Search: q.Get("search"),
			})
		},
		Decode:       viewload.Field[models.Account](runapi.KeyData, runapi.KeyAccounts),
		Fixture:      sampleAccounts,
		FailMessage:  "Failed to load accounts",
		EmptyMessage: "No accounts found.",
		AllowEmpty:   allowEmpty,
	}
}

func (h *Handler) load(ctx context.Context, q listQuery) viewload.State[models.Account] {
	sec := viewload.NewSection(h.accountsSource(q.Search != ""), h.Log)
	defer sec.Close()
	return sec.Load(ctx, q.values())
}
