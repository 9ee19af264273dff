package controllers

import (
	"net/http"

	"repohub/app/session"
	"repohub/app/views"
)

// newPage seeds a Page with the session identity and drains pending
// flash messages into it.
func newPage(m *session.Manager, w http.ResponseWriter, r *http.Request, title string) *views.Page {
	st := m.Load(r)
	return &views.Page{Title: title, Username: st.Username, Flashes: m.PopFlashes(w, r)}
}
