package controllers

import (
	"net/http"

	"repohub/app/session"
	"repohub/app/views"
)

type PageController struct {
	Sessions *session.Manager
	Views    *views.Renderer
}

func NewPageController(sessions *session.Manager, v *views.Renderer) *PageController {
	return &PageController{Sessions: sessions, Views: v}
}

func (c *PageController) Landing(w http.ResponseWriter, r *http.Request) {
	c.Views.Render(w, "landing.html", newPage(c.Sessions, w, r, "Welcome"))
}
