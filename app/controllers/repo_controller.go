package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"repohub/app/services"
	"repohub/app/session"
	"repohub/app/views"

	"github.com/gorilla/mux"
)

// 32MB, same order as typical upload limits; larger bodies spill to disk.
const maxUploadMemory = 32 << 20

type RepoController struct {
	Repos    *services.RepositoryService
	Sessions *session.Manager
	Views    *views.Renderer
}

func NewRepoController(repos *services.RepositoryService, sessions *session.Manager, v *views.Renderer) *RepoController {
	return &RepoController{Repos: repos, Sessions: sessions, Views: v}
}

func (c *RepoController) Index(w http.ResponseWriter, r *http.Request) {
	repos, err := c.Repos.List()
	if err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	data := newPage(c.Sessions, w, r, "Repositories")
	data.Repos = repos
	c.Views.Render(w, "index.html", data)
}

func (c *RepoController) Detail(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseUint(mux.Vars(r)["id"], 10, 32)
	if err != nil {
		http.NotFound(w, r)
		return
	}
	d, err := c.Repos.Detail(uint(id))
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			http.NotFound(w, r)
			return
		}
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	data := newPage(c.Sessions, w, r, d.Repo.Name)
	data.Repo = d.Repo
	data.Files = d.Files
	data.Changes = d.Changes
	c.Views.Render(w, "repo_detail.html", data)
}

func (c *RepoController) New(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		c.Views.Render(w, "new_repo.html", newPage(c.Sessions, w, r, "New repository"))
		return
	}

	if err := r.ParseMultipartForm(maxUploadMemory); err != nil {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}
	name := r.FormValue("name")
	description := r.FormValue("description")

	data := newPage(c.Sessions, w, r, "New repository")
	data.FormData = map[string]string{"name": name, "description": description}

	if name == "" {
		data.FormError = "Repository name is required"
		c.Views.Render(w, "new_repo.html", data)
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		data.FormError = "A file is required"
		c.Views.Render(w, "new_repo.html", data)
		return
	}
	defer file.Close()

	if _, err := c.Repos.Create(name, description, header.Filename, file); err != nil {
		if errors.Is(err, services.ErrExtensionNotAllowed) {
			data.FormError = "That file type is not allowed"
			c.Views.Render(w, "new_repo.html", data)
			return
		}
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	http.Redirect(w, r, "/index", http.StatusFound)
}

func (c *RepoController) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseUint(mux.Vars(r)["id"], 10, 32)
	if err != nil {
		http.NotFound(w, r)
		return
	}
	if err := c.Repos.Delete(uint(id)); err != nil {
		if errors.Is(err, services.ErrNotFound) {
			http.NotFound(w, r)
			return
		}
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	http.Redirect(w, r, "/index", http.StatusFound)
}
