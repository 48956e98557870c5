package httphandler

import "net/http"

// RegisterStatic serves the product images and page scripts from a local
// directory. A CDN normally fronts these paths; this mount is the origin
// they fall back to.
func RegisterStatic(mux *http.ServeMux, dir string) {
	fs := http.FileServer(http.Dir(dir))
	mux.Handle("GET /img/", fs)
	mux.Handle("GET /assets/", fs)
}
