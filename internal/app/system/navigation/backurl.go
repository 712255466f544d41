// Package navigation resolves where to send a user after a form post.
package navigation

import (
	"net/http"
	"strings"

	"github.com/dalemusser/waffle/pantry/query"
	"github.com/dalemusser/waffle/pantry/urlutil"
)

// BackURLOptions configures SafeBackURL.
type BackURLOptions struct {
	// AllowedPrefix, when set, is the prefix a return URL must carry.
	AllowedPrefix string

	// ExcludedPrefixes are paths a return URL must not start with, such as
	// the login page itself.
	ExcludedPrefixes []string

	// Fallback is used when the request names no acceptable return URL.
	Fallback string
}

// SafeBackURL reads "return" from the query, then the form, and returns it
// if it is a local path that passes opts. Anything else yields the
// fallback.
func SafeBackURL(r *http.Request, opts BackURLOptions) string {
	ret := urlutil.SafeReturn(query.Get(r, "return"), "", "")
	if ret == "" {
		ret = urlutil.SafeReturn(strings.TrimSpace(r.FormValue("return")), "", "")
	}
	if ret != "" && acceptable(ret, opts) {
		return ret
	}
	return opts.Fallback
}

func acceptable(ret string, opts BackURLOptions) bool {
	if opts.AllowedPrefix != "" && !strings.HasPrefix(ret, opts.AllowedPrefix) {
		return false
	}
	path := ret
	if i := strings.IndexAny(path, "?#"); i >= 0 {
		path = path[:i]
	}
	for _, ex := range opts.ExcludedPrefixes {
		if path == ex || strings.HasPrefix(path, ex+"/") {
			return false
		}
	}
	return true
}

// AfterLogin is where a successful sign-in lands. Returning to the auth
// pages would loop, so those fall back to the dashboard.
var AfterLogin = BackURLOptions{
	ExcludedPrefixes: []string{"/login", "/logout"},
	Fallback:         "/dashboard",
}
