package server

import (
	"fmt"
	"net"
	"net/http"
	"time"
)

// StartHTTPServer blocks serving the handler until the listener fails.
func StartHTTPServer(host string, port int, handler http.Handler) error {
	addr := net.JoinHostPort(host, fmt.Sprintf("%d", port))
	srv := &http.Server{
		Addr:         addr,
		Handler:      handler,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
	}
	return srv.ListenAndServe()
}
