// Package web serves the browser UI.
package web

import (
	"embed"
	"io/fs"
	"net/http"
)

// SavedStorageKey is the localStorage key holding the saved-activity list.
const SavedStorageKey = "little-lab-coats-saved"

//go:embed static
var assets embed.FS

// Handler serves the embedded single-page UI.
func Handler() http.Handler {
	sub, err := fs.Sub(assets, "static")
	if err != nil {
		panic(err)
	}
	files := http.FileServer(http.FS(sub))
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Cache-Control", "no-cache")
		files.ServeHTTP(w, r)
	})
}
