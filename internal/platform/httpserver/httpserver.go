package httpserver

import (
	"net/http"
	"time"
)

// New builds the debug/trigger HTTP server. Write timeout stays generous because
// a manual wallet recompute runs synchronously.
func New(addr string, handler http.Handler) *http.Server {
	return &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       2 * time.Minute,
	}
}
