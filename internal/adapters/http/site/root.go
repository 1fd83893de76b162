// Package site serves the embedded upload page.
package site

import (
	"context"
	"errors"
	"net/http"
)

// Error constants
var (
	ErrServe = errors.New("upload page serve failed")
)

// Register attaches the embedded upload page routes to mux.
func Register(_ context.Context, mux *http.ServeMux) {
	if mux == nil {
		panic("mux is nil")
	}

	// Serve the embedded upload page at root /
	files := http.FileServer(FS())
	mux.Handle("/", files)
}
