package handler

import (
	"encoding/base64"
	"net/http"
	"strings"

	appI18n "github.com/pavelanni/quizmaster/internal/i18n"
)

const flashCookieName = "flash"

// setFlash stores a one-shot message for the next page render. The
// cookie carries a message ID plus optional template data so the text
// is localized at render time, not at set time.
func (h *Handler) setFlash(w http.ResponseWriter, msgID, data string) {
	value := base64.URLEncoding.EncodeToString([]byte(msgID + "|" + data))
	http.SetCookie(w, &http.Cookie{
		Name:     flashCookieName,
		Value:    value,
		Path:     h.cookiePath(),
		MaxAge:   60,
		HttpOnly: true,
		Secure:   h.config.SecureCookies,
		SameSite: http.SameSiteLaxMode,
	})
}

// popFlash returns the localized flash message, if any, and clears it.
func (h *Handler) popFlash(w http.ResponseWriter, r *http.Request) string {
	cookie, err := r.Cookie(flashCookieName)
	if err != nil || cookie.Value == "" {
		return ""
	}

	http.SetCookie(w, &http.Cookie{
		Name:     flashCookieName,
		Value:    "",
		Path:     h.cookiePath(),
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   h.config.SecureCookies,
		SameSite: http.SameSiteLaxMode,
	})

	raw, err := base64.URLEncoding.DecodeString(cookie.Value)
	if err != nil {
		return ""
	}
	msgID, data, _ := strings.Cut(string(raw), "|")
	if data != "" {
		return appI18n.Td(r.Context(), msgID, map[string]any{"Category": data})
	}
	return appI18n.T(r.Context(), msgID)
}
