package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/rahul4469/recipe-browser/internal/metrics"
	"github.com/rahul4469/recipe-browser/internal/models"
)

// DefaultRecipesAPIBaseURL is the public recipes API.
const DefaultRecipesAPIBaseURL = "https://dummyjson.com"

// RecipeListLimit is the fixed page size of the recipe list.
const RecipeListLimit = 9

// Operation names, used as log fields and metric labels.
const (
	OpList   = "list"
	OpGet    = "get"
	OpSearch = "search"
)

// RecipeService talks to the recipes API.
//
// Every failure (non-2xx, network, bad body) is logged here and handed back
// as a value: list and detail fetches return None, search returns an ErrorInfo.
// Nothing is retried and no timeout is set beyond the transport's own.
type RecipeService struct {
	baseURL    string
	httpClient *http.Client
	logger     *slog.Logger
}

// NewRecipeService creates a client for the API at baseURL.
// A nil httpClient or logger falls back to the defaults.
func NewRecipeService(baseURL string, httpClient *http.Client, logger *slog.Logger) *RecipeService {
	if baseURL == "" {
		baseURL = DefaultRecipesAPIBaseURL
	}
	if httpClient == nil {
		httpClient = &http.Client{}
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &RecipeService{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: httpClient,
		logger:     logger,
	}
}

// FetchRecipeList fetches the first RecipeListLimit recipes.
func (s *RecipeService) FetchRecipeList(ctx context.Context) models.Maybe[[]models.Recipe] {
	u := fmt.Sprintf("%s/recipes?limit=%d", s.baseURL, RecipeListLimit)

	var list models.RecipeList
	if info := s.getJSON(ctx, OpList, u, &list); info != nil {
		return models.None[[]models.Recipe]()
	}
	if list.Recipes == nil {
		list.Recipes = []models.Recipe{}
	}
	return models.Some(list.Recipes)
}

// FetchRecipeByID fetches a single recipe. The id goes into the path as given.
func (s *RecipeService) FetchRecipeByID(ctx context.Context, id string) models.Maybe[models.Recipe] {
	u := fmt.Sprintf("%s/recipes/%s", s.baseURL, id)

	var recipe models.Recipe
	if info := s.getJSON(ctx, OpGet, u, &recipe); info != nil {
		return models.None[models.Recipe]()
	}
	return models.Some(recipe)
}

// FetchRecipesBySearchTerm searches recipes by keyword.
// Unlike the other fetches the failure is returned with its message,
// because the search page shows it to the user.
func (s *RecipeService) FetchRecipesBySearchTerm(ctx context.Context, term string) models.SearchResult {
	u := fmt.Sprintf("%s/recipes/search?q=%s", s.baseURL, url.QueryEscape(term))

	var list models.RecipeList
	if info := s.getJSON(ctx, OpSearch, u, &list); info != nil {
		return models.SearchFailed(info)
	}
	return models.SearchSucceeded(list.Recipes)
}

// getJSON issues a GET and decodes the body into out.
// A non-nil ErrorInfo means the failure has already been logged.
func (s *RecipeService) getJSON(ctx context.Context, operation, u string, out any) *models.ErrorInfo {
	started := time.Now()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return s.fail(operation, u, metrics.OutcomeTransportError, started, models.NewTransportError(err))
	}
	s.setHeaders(req)

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return s.fail(operation, u, metrics.OutcomeTransportError, started, models.NewTransportError(err))
	}
	defer resp.Body.Close()

	if info := checkResponse(resp); info != nil {
		return s.fail(operation, u, metrics.OutcomeHTTPError, started, info)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return s.fail(operation, u, metrics.OutcomeDecodeError, started, models.NewTransportError(err))
	}

	metrics.ObserveFetch(operation, metrics.OutcomeSuccess, started)
	return nil
}

func (s *RecipeService) fail(operation, u, outcome string, started time.Time, info *models.ErrorInfo) *models.ErrorInfo {
	metrics.ObserveFetch(operation, outcome, started)
	s.logger.Error(info.Message,
		"operation", operation,
		"url", u,
		"outcome", outcome,
	)
	return info
}

func (s *RecipeService) setHeaders(req *http.Request) {
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", "Recipe-Browser/1.0")
}

// checkResponse turns a non-2xx response into an ErrorInfo.
func checkResponse(resp *http.Response) *models.ErrorInfo {
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}
	return models.NewHTTPError(resp.StatusCode, statusText(resp))
}

// statusText is the reason phrase the server sent, or the standard one.
func statusText(resp *http.Response) string {
	text := strings.TrimSpace(strings.TrimPrefix(resp.Status, strconv.Itoa(resp.StatusCode)))
	if text == "" {
		text = http.StatusText(resp.StatusCode)
	}
	return text
}
