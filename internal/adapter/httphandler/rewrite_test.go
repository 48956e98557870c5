package httphandler_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/groveshop/storefront/internal/adapter/httphandler"
	"github.com/stretchr/testify/assert"
)

func TestRewritePath(t *testing.T) {
	tests := []struct {
		path string
		want string
	}{
		{"/", "/index.html"},
		{"/cart/", "/cart/index.html"},
		{"/cart", "/cart/index.html"},
		{"/checkout", "/checkout/index.html"},
		{"/success", "/success/index.html"},
		{"/cart.html", "/cart.html"},
		{"/img/sourdough.webp", "/img/sourdough.webp"},
		{"/assets/app.v2.js", "/assets/app.v2.js"},
		{"/a/b/c", "/a/b/c/index.html"},
		{"/v1.2/docs", "/v1.2/docs/index.html"},
	}

	for _, tc := range tests {
		t.Run(tc.path, func(t *testing.T) {
			assert.Equal(t, tc.want, httphandler.RewritePath(tc.path))
		})
	}
}

func TestRewriteIndex(t *testing.T) {
	var gotPath, gotQuery string
	next := http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotQuery = r.URL.RawQuery
	})

	r := httptest.NewRequest(
		http.MethodGet, "/success?orderId=A1B2C3D4", nil,
	)
	httphandler.RewriteIndex(next).ServeHTTP(httptest.NewRecorder(), r)

	assert.Equal(t, "/success/index.html", gotPath)
	assert.Equal(t, "orderId=A1B2C3D4", gotQuery)
}
