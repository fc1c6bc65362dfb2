package controllers

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/gorilla/csrf"

	"github.com/rahul4469/recipe-browser/internal/views"
)

// ClickTargetParam names the query parameter carrying the id of the clicked element.
const ClickTargetParam = "target"

// PagesController serves the recipe page. Every request is a fresh page load;
// the click or search it carries is then dispatched against that page.
type PagesController struct {
	recipes       RecipeFetcher
	templates     PagesTemplates
	isDevelopment bool
}

// PagesTemplates holds the templates for the recipe pages.
type PagesTemplates struct {
	Home *views.Template
}

// NewPagesController creates a new PagesController.
func NewPagesController(recipes RecipeFetcher, templates PagesTemplates, isDevelopment bool) *PagesController {
	return &PagesController{
		recipes:       recipes,
		templates:     templates,
		isDevelopment: isDevelopment,
	}
}

// HomeData holds data for the home page template.
type HomeData struct {
	Page     views.PageData
	Search   SearchForm
	Searched bool
}

// GetHome loads the page. A searchTerm parameter replays the search the
// visible list came from; a target parameter is a click inside the list.
func (c *PagesController) GetHome(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	query := r.URL.Query()

	page := views.NewPage(c.templates.Home)
	interaction := NewInteraction(c.recipes, page)
	interaction.Load(ctx)

	var search SearchForm
	searched := query.Has(SearchTermField)
	if searched {
		search = ParseSearchForm(query)
		interaction.OnSearchSubmit(ctx, search)
	}

	if target := query.Get(ClickTargetParam); target != "" {
		c.dispatchClick(ctx, interaction, page, target)
	}

	c.render(w, r, page, search, searched)
}

// PostSearch handles the search form submission.
func (c *PagesController) PostSearch(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form data", http.StatusBadRequest)
		return
	}
	ctx := r.Context()

	page := views.NewPage(c.templates.Home)
	interaction := NewInteraction(c.recipes, page)
	interaction.Load(ctx)

	search := ParseSearchForm(r.PostForm)
	interaction.OnSearchSubmit(ctx, search)

	c.render(w, r, page, search, true)
}

// dispatchClick delivers a click on the element with the given id to the
// list container's single listener.
func (c *PagesController) dispatchClick(ctx context.Context, interaction *Interaction, page *views.Page, target string) {
	container, err := page.ListContainer()
	if err != nil {
		slog.ErrorContext(ctx, "failed to build recipe list for click", "error", err, "target", target)
		return
	}
	interaction.OnListClick(ctx, views.FindByID(container, target))
}

func (c *PagesController) render(w http.ResponseWriter, r *http.Request, page *views.Page, search SearchForm, searched bool) {
	data := &views.TemplateData{
		Title:         "Recipes",
		CSRFToken:     csrf.Token(r),
		IsDevelopment: c.isDevelopment,
		Data: HomeData{
			Page:     page.Snapshot(),
			Search:   search,
			Searched: searched,
		},
	}
	c.templates.Home.ExecuteHTTP(w, r, data)
}
