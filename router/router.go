package router

import (
	"net/http"

	"repohub/app/controllers"

	"github.com/gorilla/mux"
)

// New builds the route table. Every route is reachable without a
// login; authentication only affects the flash banner and the session
// identity shown in the layout.
func New(pages *controllers.PageController, auth *controllers.AuthController, repos *controllers.RepoController, files *controllers.FileController) http.Handler {
	r := mux.NewRouter()

	r.HandleFunc("/", pages.Landing).Methods(http.MethodGet)
	r.HandleFunc("/login", auth.Login).Methods(http.MethodGet, http.MethodPost)
	r.HandleFunc("/signup", auth.Signup).Methods(http.MethodGet, http.MethodPost)

	r.HandleFunc("/index", repos.Index).Methods(http.MethodGet)
	r.HandleFunc("/repo/{id}", repos.Detail).Methods(http.MethodGet)
	r.HandleFunc("/new_repo", repos.New).Methods(http.MethodGet, http.MethodPost)
	r.HandleFunc("/delete_repo/{id}", repos.Delete).Methods(http.MethodGet)

	r.HandleFunc("/edit_file/{filename:.*}", files.Edit).Methods(http.MethodGet, http.MethodPost)
	r.HandleFunc("/uploads/{filename:.*}", files.Download).Methods(http.MethodGet)

	return r
}
