package controllers

import (
	"errors"
	"net/http"

	"repohub/app/services"
	"repohub/app/session"
	"repohub/app/views"
)

type AuthController struct {
	Users    *services.UserService
	Sessions *session.Manager
	Views    *views.Renderer
}

func NewAuthController(users *services.UserService, sessions *session.Manager, v *views.Renderer) *AuthController {
	return &AuthController{Users: users, Sessions: sessions, Views: v}
}

func (c *AuthController) Login(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		c.Views.Render(w, "login.html", newPage(c.Sessions, w, r, "Login"))
		return
	}

	email := r.FormValue("email")
	password := r.FormValue("password")

	renderError := func(msg string) {
		data := newPage(c.Sessions, w, r, "Login")
		data.FormData = map[string]string{"email": email}
		data.FormError = msg
		c.Views.Render(w, "login.html", data)
	}

	if email == "" || password == "" {
		renderError("Email and password are required")
		return
	}

	u, err := c.Users.Authenticate(email, password)
	if err != nil {
		if errors.Is(err, services.ErrInvalidCredentials) {
			renderError("Invalid email or password")
			return
		}
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	st := c.Sessions.Load(r)
	st.SetUser(u.ID, u.Username)
	st.AddFlash("Login successful!", "success")
	_ = c.Sessions.Save(w, st)
	http.Redirect(w, r, "/index", http.StatusFound)
}

func (c *AuthController) Signup(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		c.Views.Render(w, "signup.html", newPage(c.Sessions, w, r, "Sign up"))
		return
	}

	username := r.FormValue("username")
	email := r.FormValue("email")
	password := r.FormValue("password")

	if username == "" || email == "" || password == "" {
		data := newPage(c.Sessions, w, r, "Sign up")
		data.FormError = "Username, email and password are required"
		data.FormData = map[string]string{"username": username, "email": email}
		c.Views.Render(w, "signup.html", data)
		return
	}

	if _, err := c.Users.Create(username, email, password); err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	st := c.Sessions.Load(r)
	st.AddFlash("Signup successful!", "success")
	_ = c.Sessions.Save(w, st)
	http.Redirect(w, r, "/login", http.StatusFound)
}
