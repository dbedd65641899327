// Package site serves the embedded dashboard assets.
package site

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
)

// Register attaches the embedded asset routes to r under /static/.
func Register(_ context.Context, r chi.Router) {
	if r == nil {
		panic("router is nil")
	}

	files := http.StripPrefix("/static/", http.FileServer(FS()))
	r.Handle("/static/*", cacheFor(files, "public, max-age=3600"))
}

func cacheFor(next http.Handler, value string) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Cache-Control", value)
		next.ServeHTTP(w, r)
	})
}
