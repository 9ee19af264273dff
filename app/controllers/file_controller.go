package controllers

import (
	"errors"
	"net/http"
	"os"
	"strconv"
	"strings"

	"repohub/app/history"
	"repohub/app/session"
	"repohub/app/storage"
	"repohub/app/views"

	"github.com/gorilla/mux"
)

type FileController struct {
	Storage  *storage.Store
	History  *history.Log
	Sessions *session.Manager
	Views    *views.Renderer
}

func NewFileController(store *storage.Store, changes *history.Log, sessions *session.Manager, v *views.Renderer) *FileController {
	return &FileController{Storage: store, History: changes, Sessions: sessions, Views: v}
}

// Edit serves the editor on GET and writes the submitted content on
// POST. The edit flow deliberately applies no extension allow-list;
// any path inside the storage root may be edited.
func (c *FileController) Edit(w http.ResponseWriter, r *http.Request) {
	filename := mux.Vars(r)["filename"]

	if r.Method == http.MethodPost {
		content := r.FormValue("content")
		repoID, err := strconv.ParseUint(r.FormValue("repo_id"), 10, 32)
		if err != nil {
			http.Error(w, "Bad Request", http.StatusBadRequest)
			return
		}
		if err := c.Storage.WriteFile(filename, content); err != nil {
			if errors.Is(err, storage.ErrOutsideRoot) {
				http.NotFound(w, r)
				return
			}
			http.Error(w, "Internal Server Error", http.StatusInternalServerError)
			return
		}
		if err := c.History.Append(uint(repoID), filename, "Edited file"); err != nil {
			http.Error(w, "Internal Server Error", http.StatusInternalServerError)
			return
		}
		http.Redirect(w, r, "/repo/"+strconv.FormatUint(repoID, 10), http.StatusFound)
		return
	}

	content, err := c.Storage.ReadFile(filename)
	if err != nil {
		if errors.Is(err, storage.ErrOutsideRoot) || os.IsNotExist(err) {
			http.NotFound(w, r)
			return
		}
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	data := newPage(c.Sessions, w, r, "Edit "+filename)
	data.Filename = filename
	data.Content = content
	data.RepoID = repoIDHint(r, filename)
	c.Views.Render(w, "edit_file.html", data)
}

// Download streams the stored file byte-exact; net/http infers the
// content type from the extension.
func (c *FileController) Download(w http.ResponseWriter, r *http.Request) {
	abs, err := c.Storage.Resolve(mux.Vars(r)["filename"])
	if err != nil {
		http.NotFound(w, r)
		return
	}
	info, err := os.Stat(abs)
	if err != nil || info.IsDir() {
		http.NotFound(w, r)
		return
	}
	http.ServeFile(w, r, abs)
}

// repoIDHint recovers the repository id the editor should post back:
// the repo_id query parameter when the detail page supplied one,
// otherwise the leading path segment of files living under a per-id
// subdirectory.
func repoIDHint(r *http.Request, filename string) uint {
	if q := r.URL.Query().Get("repo_id"); q != "" {
		if id, err := strconv.ParseUint(q, 10, 32); err == nil {
			return uint(id)
		}
	}
	if head, _, ok := strings.Cut(filename, "/"); ok {
		if id, err := strconv.ParseUint(head, 10, 32); err == nil {
			return uint(id)
		}
	}
	return 0
}
