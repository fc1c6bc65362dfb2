package main

import (
	"bytes"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rahul4469/recipe-browser/internal/config"
	"github.com/rahul4469/recipe-browser/internal/controllers"
	"github.com/rahul4469/recipe-browser/internal/services"
	"github.com/rahul4469/recipe-browser/internal/views"
	"github.com/rahul4469/recipe-browser/templates"
)

func newTestServer(t *testing.T) (*httptest.Server, *int) {
	t.Helper()
	return newTestServerWithRoutes(t, nil)
}

// newTestServerWithRoutes builds the full router; extra may add routes to it.
func newTestServerWithRoutes(t *testing.T, extra func(chi.Router)) (*httptest.Server, *int) {
	t.Helper()

	detailCalls := 0
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/recipes":
			w.Write([]byte(`{"recipes":[{"id":1,"name":"Soup","prepTimeMinutes":5,"cookTimeMinutes":10},{"id":42,"name":"Shakshuka","prepTimeMinutes":10,"cookTimeMinutes":25}]}`))
		case "/recipes/42":
			detailCalls++
			w.Write([]byte(`{"id":42,"name":"Shakshuka","prepTimeMinutes":10,"cookTimeMinutes":25}`))
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(upstream.Close)

	cfg := &config.Config{
		Server:   config.ServerConfig{Environment: "development", BaseURL: "http://localhost:8080"},
		Security: config.SecurityConfig{CSRFSecret: "0123456789abcdef0123456789abcdef"},
		Limits:   config.LimitsConfig{RateLimit: 1000, RateLimitBurst: 1000},
	}

	svc := services.NewRecipeService(upstream.URL, upstream.Client(), slog.New(slog.NewTextHandler(io.Discard, nil)))
	home, err := views.ParseFS(templates.FS, "pages/home.gohtml")
	require.NoError(t, err)
	pages := controllers.NewPagesController(svc, controllers.PagesTemplates{Home: home}, true)

	router := newRouter(cfg, pages)
	if extra != nil {
		extra(router.(chi.Router))
	}
	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)
	return srv, &detailCalls
}

func TestRouter_HomeAndClick(t *testing.T) {
	srv, detailCalls := newTestServer(t)

	resp, err := http.Get(srv.URL + "/")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.NotEmpty(t, resp.Header.Get("X-Request-Id"))

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, 2, doc.Find("#recipes-list li").Length())
	token, _ := doc.Find(`input[name="gorilla.csrf.Token"]`).Attr("value")
	assert.NotEmpty(t, token)

	resp2, err := http.Get(srv.URL + "/?target=recipe-42-button")
	require.NoError(t, err)
	defer resp2.Body.Close()
	doc2, err := goquery.NewDocumentFromReader(resp2.Body)
	require.NoError(t, err)

	assert.Equal(t, 1, *detailCalls)
	assert.Equal(t, "Shakshuka", strings.TrimSpace(doc2.Find("#recipe-details h2").Text()))
}

func TestRouter_SearchRequiresCSRFToken(t *testing.T) {
	srv, _ := newTestServer(t)

	resp, err := http.PostForm(srv.URL+"/search", url.Values{"searchTerm": {"soup"}})
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

func TestRouter_HealthAndMetrics(t *testing.T) {
	srv, _ := newTestServer(t)

	resp, err := http.Get(srv.URL + "/health")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp, err = http.Get(srv.URL + "/metrics")
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), "recipes_http_requests_total")
}

func TestRouter_PanicIsLogged(t *testing.T) {
	var logs bytes.Buffer
	prev := slog.Default()
	slog.SetDefault(slog.New(slog.NewJSONHandler(&logs, nil)))
	t.Cleanup(func() { slog.SetDefault(prev) })

	srv, _ := newTestServerWithRoutes(t, func(r chi.Router) {
		r.Get("/boom", func(w http.ResponseWriter, r *http.Request) {
			panic("boom")
		})
	})

	resp, err := http.Get(srv.URL + "/boom")
	require.NoError(t, err)
	resp.Body.Close()

	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	assert.Contains(t, logs.String(), `"msg":"request completed"`)
	assert.Contains(t, logs.String(), `"status":500`)
}
