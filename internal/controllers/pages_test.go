package controllers

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rahul4469/recipe-browser/internal/models"
	"github.com/rahul4469/recipe-browser/internal/views"
	"github.com/rahul4469/recipe-browser/templates"
)

func newTestRouter(t *testing.T, fetcher RecipeFetcher) http.Handler {
	t.Helper()
	home, err := views.ParseFS(templates.FS, "pages/home.gohtml")
	require.NoError(t, err)

	pages := NewPagesController(fetcher, PagesTemplates{Home: home}, true)
	r := chi.NewRouter()
	r.Get("/", pages.GetHome)
	r.Post("/search", pages.PostSearch)
	r.Get("/health", HealthCheck)
	return r
}

func serve(t *testing.T, h http.Handler, req *http.Request) (*httptest.ResponseRecorder, *goquery.Document) {
	t.Helper()
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(rec.Body.String()))
	require.NoError(t, err)
	return rec, doc
}

func recipeIDs(doc *goquery.Document) []string {
	var ids []string
	doc.Find("#recipes-list li").Each(func(_ int, s *goquery.Selection) {
		id, _ := s.Attr("data-recipe-id")
		ids = append(ids, id)
	})
	return ids
}

func TestGetHome_Load(t *testing.T) {
	fetcher := &stubFetcher{list: models.Some([]models.Recipe{{ID: 1, Name: "Soup"}})}
	h := newTestRouter(t, fetcher)

	rec, doc := serve(t, h, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "text/html; charset=utf-8", rec.Header().Get("Content-Type"))
	assert.Equal(t, []string{"1"}, recipeIDs(doc))
	_, hidden := doc.Find("#error").Attr("hidden")
	assert.True(t, hidden)
	assert.Equal(t, 0, doc.Find("#recipe-details").Length())
	assert.Empty(t, fetcher.getIDs)
	assert.Equal(t, 1, doc.Find(`header a[aria-current="page"]`).Length())
}

func TestGetHome_LoadFailure(t *testing.T) {
	fetcher := &stubFetcher{list: models.None[[]models.Recipe]()}
	h := newTestRouter(t, fetcher)

	rec, doc := serve(t, h, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, MsgListFailed, strings.TrimSpace(doc.Find("#error").Text()))
	assert.Empty(t, recipeIDs(doc))
}

func TestGetHome_Click(t *testing.T) {
	fetcher := &stubFetcher{
		list:   models.Some([]models.Recipe{{ID: 42, Name: "Shakshuka"}, {ID: 7, Name: "Pasta"}}),
		recipe: models.Some(models.Recipe{ID: 42, Name: "Shakshuka", Ingredients: []string{"eggs"}}),
	}
	h := newTestRouter(t, fetcher)

	_, doc := serve(t, h, httptest.NewRequest(http.MethodGet, "/?target=recipe-42-name", nil))

	assert.Equal(t, []string{"42"}, fetcher.getIDs)
	assert.Equal(t, "Shakshuka", strings.TrimSpace(doc.Find("#recipe-details h2").Text()))
	assert.Equal(t, "eggs", strings.TrimSpace(doc.Find("#recipe-details li").First().Text()))
}

func TestGetHome_ClickOnUnknownTarget(t *testing.T) {
	fetcher := &stubFetcher{list: models.Some([]models.Recipe{{ID: 42, Name: "Shakshuka"}})}
	h := newTestRouter(t, fetcher)

	_, doc := serve(t, h, httptest.NewRequest(http.MethodGet, "/?target=recipes-list", nil))

	assert.Empty(t, fetcher.getIDs, "container itself is not a list item")
	assert.Equal(t, 0, doc.Find("#recipe-details").Length())
}

func TestGetHome_ClickAfterSearchReplay(t *testing.T) {
	fetcher := &stubFetcher{
		list:   models.Some([]models.Recipe{{ID: 1, Name: "Soup"}}),
		search: models.SearchSucceeded([]models.Recipe{{ID: 30, Name: "Pad Thai", PrepTimeMinutes: 10, CookTimeMinutes: 10}}),
		recipe: models.Some(models.Recipe{ID: 30, Name: "Pad Thai"}),
	}
	h := newTestRouter(t, fetcher)

	_, doc := serve(t, h, httptest.NewRequest(http.MethodGet, "/?searchTerm=thai&isQuick=on&target=recipe-30-button", nil))

	assert.Equal(t, []string{"thai"}, fetcher.searchTerms)
	assert.Equal(t, []string{"30"}, fetcher.getIDs)
	assert.Equal(t, []string{"30"}, recipeIDs(doc))
	assert.Equal(t, "Pad Thai", strings.TrimSpace(doc.Find("#recipe-details h2").Text()))
}

func TestPostSearch(t *testing.T) {
	fetcher := &stubFetcher{
		list: models.Some([]models.Recipe{{ID: 1, Name: "Soup"}}),
		search: models.SearchSucceeded([]models.Recipe{
			{ID: 1, PrepTimeMinutes: 10, CookTimeMinutes: 5},
			{ID: 2, PrepTimeMinutes: 15, CookTimeMinutes: 10},
		}),
	}
	h := newTestRouter(t, fetcher)

	form := url.Values{"searchTerm": {"pasta"}, "isQuick": {"on"}}
	req := httptest.NewRequest(http.MethodPost, "/search", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	rec, doc := serve(t, h, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, []string{"pasta"}, fetcher.searchTerms)
	assert.Equal(t, []string{"1"}, recipeIDs(doc))
	replay, _ := doc.Find(`#recipes-list-form input[name="searchTerm"]`).Attr("value")
	assert.Equal(t, "pasta", replay)
	assert.Equal(t, 1, doc.Find(`#recipes-list-form input[name="isQuick"]`).Length())
	assert.Equal(t, 0, doc.Find(`header a[aria-current]`).Length())
}

func TestPostSearch_NoMatchesKeepsList(t *testing.T) {
	fetcher := &stubFetcher{
		list:   models.Some([]models.Recipe{{ID: 1, Name: "Soup"}}),
		search: models.SearchSucceeded(nil),
	}
	h := newTestRouter(t, fetcher)

	req := httptest.NewRequest(http.MethodPost, "/search", strings.NewReader("searchTerm=zzz"))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	_, doc := serve(t, h, req)

	assert.Equal(t, MsgSearchNoMatch, strings.TrimSpace(doc.Find("#error").Text()))
	assert.Equal(t, []string{"1"}, recipeIDs(doc), "the loaded list stays on screen")
}

func TestPostSearch_Error(t *testing.T) {
	fetcher := &stubFetcher{
		list:   models.Some([]models.Recipe{{ID: 1, Name: "Soup"}}),
		search: models.SearchFailed(models.NewHTTPError(502, "Bad Gateway")),
	}
	h := newTestRouter(t, fetcher)

	req := httptest.NewRequest(http.MethodPost, "/search", strings.NewReader("searchTerm=pasta"))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	_, doc := serve(t, h, req)

	assert.Equal(t, "Failed to search recipes. Fetch failed. 502 Bad Gateway", strings.TrimSpace(doc.Find("#error").Text()))
}

func TestHealthCheck(t *testing.T) {
	h := newTestRouter(t, &stubFetcher{})

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}
