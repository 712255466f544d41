package support

import (
	"net/http"

	"github.com/runpro9ja/adminhub/internal/app/features/shared"
	"github.com/runpro9ja/adminhub/internal/app/system/htmlsanitize"
	"github.com/runpro9ja/adminhub/internal/app/system/runapi"
	"go.uber.org/zap"
)

const maxMessage = 1000

// HandleSend handles POST /support/messages.
func (h *Handler) HandleSend(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.ErrLog.LogBadRequest(w, r, "parse form failed", err, "Invalid form data.", "/support")
		return
	}
	text := htmlsanitize.StripTags(r.FormValue("text"))
	if text == "" {
		h.Flash(w, r, "Type a message before sending.")
		shared.Back(w, r, "/support")
		return
	}
	if rs := []rune(text); len(rs) > maxMessage {
		text = string(rs[:maxMessage])
	}

	ctx, cancel := h.LoadContext(r, "send support message")
	defer cancel()

	env, err := h.API.SendSupportMessage(ctx, text)
	err = runapi.Check(env, err)
	h.AuditLog.SupportMessageSent(r.Context(), r, shared.ActorID(r), err)

	if err != nil {
		if runapi.IsUnauthorized(err) {
			if n := h.Enforce(w, r, page, true); n != nil {
				h.Flash(w, r, "Your session has expired. Please sign in again.")
				shared.Back(w, r, n.RedirectURL)
				return
			}
		}
		h.Log.Warn("send support message failed", zap.Error(err))
		h.Flash(w, r, runapi.UserMessage(err, "Failed to send message. Please try again."))
	}
	shared.Back(w, r, "/support#chat")
}
