package router

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func tag(name string) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Add("X-Chain", name)
			next.ServeHTTP(w, r)
		})
	}
}

func TestGroupMiddlewareOrder(t *testing.T) {
	r := New()
	admin := r.Group("/admin", tag("auth"), tag("admin"))
	admin.Post("/orders/{id}/delete", "admin.orders.delete", func(w http.ResponseWriter, req *http.Request) {
		_, _ = w.Write([]byte(chi.URLParam(req, "id")))
	}, tag("route"))

	rec := httptest.NewRecorder()
	r.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/admin/orders/42/delete", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "42", rec.Body.String())
	assert.Equal(t, []string{"auth", "admin", "route"}, rec.Header().Values("X-Chain"))
}

func TestURL(t *testing.T) {
	r := New()
	r.Group("/admin").Post("/orders/{id}", "admin.orders.update", func(http.ResponseWriter, *http.Request) {})

	url, err := r.URL("admin.orders.update", map[string]string{"id": "5"})
	require.NoError(t, err)
	assert.Equal(t, "/admin/orders/5", url)

	_, err = r.URL("admin.orders.update", nil)
	assert.Error(t, err)

	_, err = r.URL("nope", nil)
	assert.Error(t, err)
}

func TestRoutesSorted(t *testing.T) {
	noop := func(http.ResponseWriter, *http.Request) {}
	r := New()
	r.Post("/login", "login.submit", noop)
	r.Get("/login", "login", noop)
	r.Get("/", "home", noop)
	r.Handle("/storage/*", "", http.NotFoundHandler())

	assert.Equal(t, []RouteInfo{
		{Method: http.MethodGet, Path: "/", Name: "home"},
		{Method: http.MethodGet, Path: "/login", Name: "login"},
		{Method: http.MethodPost, Path: "/login", Name: "login.submit"},
		{Method: "*", Path: "/storage/*"},
	}, r.Routes())
}

func TestJoinPath(t *testing.T) {
	assert.Equal(t, "/", joinPath())
	assert.Equal(t, "/", joinPath("/", ""))
	assert.Equal(t, "/admin/orders", joinPath("/admin/", "/orders/"))
}
