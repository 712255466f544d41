package accounts

import (
	"encoding/json"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/runpro9ja/adminhub/internal/app/system/paging"
	"github.com/runpro9ja/adminhub/internal/app/system/viewload"
	"github.com/runpro9ja/adminhub/internal/domain/models"
	"go.uber.org/zap"
)

const (
	// Time allowed to write a message to the peer.
	writeWait = 10 * time.Second

	// Time allowed to read the next pong message from the peer.
	pongWait = 60 * time.Second

	// Send pings to peer with this period. Must be less than pongWait.
	pingPeriod = (pongWait * 9) / 10

	// Maximum message size allowed from peer.
	maxMessageSize = 512
)

// liveInput is a message from the browser: the search box contents.
type liveInput struct {
	Search string `json:"search"`
}

type liveRow struct {
	ID       string `json:"id"`
	Handle   string `json:"handle"`
	FullName string `json:"fullName"`
	Email    string `json:"email"`
	Role     string `json:"role"`
	Created  string `json:"created"`
}

// liveResult is pushed after every settled search.
type liveResult struct {
	Items        []liveRow `json:"items"`
	Error        string    `json:"error,omitempty"`
	Fallback     bool      `json:"fallback"`
	Unauthorized bool      `json:"unauthorized,omitempty"`
	Redirect     string    `json:"redirect,omitempty"`
	DelayMS      int64     `json:"delay_ms,omitempty"`
}

// ServeLive handles GET /accounts/live. The browser sends the search box on
// every keystroke; the list loads once the typing pauses for Quiet and the
// result is pushed back. The tab comes from ?type=.
func (h *Handler) ServeLive(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.Log.Warn("accounts live upgrade failed", zap.Error(err))
		return
	}

	tab := normalizeTab(r.URL.Query().Get("type"))
	sec := viewload.NewSection(h.accountsSource(true), h.Log)
	deb := viewload.NewDebouncer(r.Context(), sec, h.Quiet, func(input string) url.Values {
		v := url.Values{}
		v.Set("type", tab)
		v.Set("page", "1")
		v.Set("limit", strconv.Itoa(paging.PageSize))
		if input != "" {
			v.Set("search", input)
		}
		return v
	})

	out := newLatest()
	sec.OnSettle(func(st viewload.State[models.Account]) {
		out.put(h.liveResult(st))
	})

	done := make(chan struct{})
	go func() {
		defer close(done)
		h.writePump(conn, out)
	}()

	h.readPump(conn, deb)

	deb.Close()
	out.close()
	<-done
}

func (h *Handler) liveResult(st viewload.State[models.Account]) liveResult {
	res := liveResult{
		Items:        make([]liveRow, 0, len(st.Items)),
		Error:        st.Err,
		Fallback:     st.Fallback,
		Unauthorized: st.Unauthorized,
	}
	for _, a := range st.Items {
		res.Items = append(res.Items, liveRow{
			ID:       a.ID,
			Handle:   a.Handle(),
			FullName: a.FullName,
			Email:    a.Email,
			Role:     a.Role,
			Created:  a.Created(),
		})
	}
	// A socket can't clear the session cookie; the browser is sent to
	// /logout, which does.
	if st.Unauthorized && h.Sessions != nil && h.Signout.Applies(page) {
		res.Redirect = "/logout"
		res.DelayMS = h.Signout.Delay.Milliseconds()
	}
	return res
}

// readPump feeds search input to the debouncer until the peer goes away.
func (h *Handler) readPump(conn *websocket.Conn, deb *viewload.Debouncer[models.Account]) {
	conn.SetReadLimit(maxMessageSize)
	_ = conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error { return conn.SetReadDeadline(time.Now().Add(pongWait)) })

	for {
		_, msg, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				h.Log.Debug("accounts live read ended", zap.Error(err))
			}
			return
		}
		var in liveInput
		if err := json.Unmarshal(msg, &in); err != nil {
			h.Log.Debug("accounts live: bad message", zap.Error(err))
			continue
		}
		deb.Trigger(strings.TrimSpace(in.Search))
	}
}

// writePump is the only writer on conn. It sends the newest result and
// keeps the connection alive with pings.
func (h *Handler) writePump(conn *websocket.Conn, out *latest) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		conn.Close()
	}()

	for {
		select {
		case <-out.ready:
			res, pending, open := out.take()
			if !open {
				_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
				_ = conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
				return
			}
			if !pending {
				continue
			}
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteJSON(res); err != nil {
				h.Log.Debug("accounts live write failed", zap.Error(err))
				return
			}
		case <-ticker.C:
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// latest holds the newest unsent result. Older unsent results are replaced,
// never queued.
type latest struct {
	mu     sync.Mutex
	val    *liveResult
	closed bool
	ready  chan struct{}
}

func newLatest() *latest {
	return &latest{ready: make(chan struct{}, 1)}
}

func (l *latest) put(res liveResult) {
	l.mu.Lock()
	if l.closed {
		l.mu.Unlock()
		return
	}
	l.val = &res
	l.mu.Unlock()
	l.signal()
}

func (l *latest) close() {
	l.mu.Lock()
	l.closed = true
	l.mu.Unlock()
	l.signal()
}

func (l *latest) signal() {
	select {
	case l.ready <- struct{}{}:
	default:
	}
}

// take returns the pending result, if any. open is false once closed.
func (l *latest) take() (res liveResult, pending, open bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.closed {
		return liveResult{}, false, false
	}
	if l.val == nil {
		return liveResult{}, false, true
	}
	res = *l.val
	l.val = nil
	return res, true, true
}
