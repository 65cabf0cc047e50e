package view

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shashiranjanraj/storefront/resources/views"
)

func TestRenderEscapesAndWrapsLayout(t *testing.T) {
	fsys := fstest.MapFS{
		"layout.html": {Data: []byte(`{{define "layout"}}<main>{{template "content" .}}</main>{{end}}`)},
		"hello.html":  {Data: []byte(`{{define "content"}}Hi {{.Name}} {{money .Price}}{{end}}`)},
	}
	r, err := New(fsys, "layout.html")
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	err = r.Render(rec, http.StatusOK, "hello", map[string]interface{}{"Name": "<b>Ann</b>", "Price": 3.5})
	require.NoError(t, err)

	assert.Equal(t, "<main>Hi &lt;b&gt;Ann&lt;/b&gt; 3.50</main>", rec.Body.String())
	assert.Contains(t, rec.Header().Get("Content-Type"), "text/html")
}

func TestRenderFailureWritesNothing(t *testing.T) {
	fsys := fstest.MapFS{
		"layout.html": {Data: []byte(`{{define "layout"}}{{template "content" .}}{{end}}`)},
		"broken.html": {Data: []byte(`{{define "content"}}before {{.Missing.Field}}{{end}}`)},
	}
	r, err := New(fsys, "layout.html")
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	err = r.Render(rec, http.StatusOK, "broken", struct{ Missing *struct{ Field string } }{})
	assert.Error(t, err)
	assert.Empty(t, rec.Body.String())

	assert.Error(t, r.Render(rec, http.StatusOK, "nope", nil))
}

func TestEmbeddedPagesParse(t *testing.T) {
	r, err := New(views.FS, "layout.html")
	require.NoError(t, err)

	for _, page := range []string{"home", "register", "login", "admin_orders"} {
		assert.Contains(t, r.pages, page)
	}
}
