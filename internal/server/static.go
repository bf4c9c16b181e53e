package server

import (
	"embed"
	"io/fs"
	"net/http"
)

//go:embed static
var assetsFS embed.FS

// staticFileHandler serves the front-end from staticDir when set,
// otherwise from the embedded assets.
func staticFileHandler(staticDir string) (http.Handler, error) {
	if staticDir != "" {
		return http.FileServer(http.Dir(staticDir)), nil
	}
	subFS, err := fs.Sub(assetsFS, "static")
	if err != nil {
		return nil, err
	}
	return http.FileServer(http.FS(subFS)), nil
}
