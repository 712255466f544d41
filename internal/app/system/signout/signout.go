// Package signout decides what happens when the remote API rejects the
// console's bearer token: clear the credentials and send the user back to
// the login page after a short delay, so the banner explaining why stays
// readable.
package signout

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"
)

// Modes for Policy.Mode.
const (
	ModeAll        = "all"
	ModeComplaints = "complaints"
	ModeOff        = "off"
)

// DefaultDelay is how long the page stays up before the redirect.
const DefaultDelay = 2 * time.Second

// LoginURL is where a signed-out user is sent.
const LoginURL = "/login"

// Clearer removes the token and user from the session.
type Clearer interface {
	ClearCredentials(w http.ResponseWriter, r *http.Request) error
}

// Policy is the configured sign-out behavior.
type Policy struct {
	Mode  string
	Delay time.Duration
	// Pages is the set of pages covered in ModeComplaints.
	Pages []string
}

// NewPolicy normalizes mode and delay. Unknown modes fall back to ModeAll.
func NewPolicy(mode string, delay time.Duration) Policy {
	mode = strings.ToLower(strings.TrimSpace(mode))
	switch mode {
	case ModeAll, ModeComplaints, ModeOff:
	default:
		mode = ModeAll
	}
	if delay < 0 {
		delay = DefaultDelay
	}
	p := Policy{Mode: mode, Delay: delay}
	if mode == ModeComplaints {
		p.Pages = []string{"complaints"}
	}
	return p
}

// Applies reports whether a 401 seen on page triggers a sign-out.
func (p Policy) Applies(page string) bool {
	switch p.Mode {
	case ModeOff:
		return false
	case ModeComplaints:
		for _, pg := range p.Pages {
			if pg == page {
				return true
			}
		}
		return false
	default:
		return true
	}
}

// Notice is rendered by the layout: a meta refresh for full pages, a
// delayed HTMX request for partials.
type Notice struct {
	RedirectURL string
	Delay       time.Duration
}

// Seconds is the delay rounded up to whole seconds, as meta refresh needs.
func (n *Notice) Seconds() int {
	if n == nil {
		return 0
	}
	s := int((n.Delay + time.Second - 1) / time.Second)
	if s < 0 {
		return 0
	}
	return s
}

// Millis is the delay for hx-trigger ("load delay:2000ms").
func (n *Notice) Millis() int64 {
	if n == nil {
		return 0
	}
	return n.Delay.Milliseconds()
}

// Trigger is the hx-trigger value for the delayed redirect element.
func (n *Notice) Trigger() string {
	return fmt.Sprintf("load delay:%dms", n.Millis())
}

// Enforce clears the session credentials when unauthorized is set and the
// policy covers page. It returns the notice to render, or nil when nothing
// happened.
func (p Policy) Enforce(w http.ResponseWriter, r *http.Request, c Clearer, page string, unauthorized bool, log *zap.Logger) *Notice {
	if !unauthorized || !p.Applies(page) {
		return nil
	}
	if err := c.ClearCredentials(w, r); err != nil && log != nil {
		log.Warn("clear credentials after 401 failed", zap.Error(err), zap.String("page", page))
	}
	if log != nil {
		log.Info("remote API rejected token; signing out", zap.String("page", page), zap.Duration("delay", p.Delay))
	}
	return &Notice{RedirectURL: LoginURL, Delay: p.Delay}
}
