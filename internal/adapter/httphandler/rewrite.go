package httphandler

import (
	"net/http"
	"strings"
)

// RewritePath applies the edge rule that routes extensionless paths to an
// index document: a path ending in "/" gets "index.html" appended; a path
// whose last segment has no "." gets "/index.html" appended; anything else
// passes through unchanged.
func RewritePath(path string) string {
	if strings.HasSuffix(path, "/") {
		return path + "index.html"
	}
	last := path[strings.LastIndex(path, "/")+1:]
	if !strings.Contains(last, ".") {
		return path + "/index.html"
	}
	return path
}

// RewriteIndex applies RewritePath once per request, before page routing.
// The query string is untouched.
func RewriteIndex(next http.Handler) http.Handler {
	hf := func(w http.ResponseWriter, r *http.Request) {
		r.URL.Path = RewritePath(r.URL.Path)
		next.ServeHTTP(w, r)
	}
	return http.HandlerFunc(hf)
}
