package viewdata

import (
	"net/http"
	"strconv"

	"github.com/runpro9ja/adminhub/internal/app/system/paging"
)

// Pager is the template data for the shared "pager" partial.
type Pager struct {
	paging.Window
	PrevURL string
	NextURL string
	// Target is the element id HTMX swaps on page change.
	Target string
}

// NewPager links w's previous/next pages to the current URL, keeping every
// other query parameter.
func NewPager(r *http.Request, w paging.Window, target string) Pager {
	return Pager{
		Window:  w,
		PrevURL: pageURL(r, w.PrevPage),
		NextURL: pageURL(r, w.NextPage),
		Target:  target,
	}
}

func pageURL(r *http.Request, page int) string {
	q := r.URL.Query()
	q.Set("page", strconv.Itoa(page))
	return r.URL.Path + "?" + q.Encode()
}
