package views

import (
	"bytes"
	"errors"
	"fmt"
	"sync"

	"github.com/PuerkitoBio/goquery"

	"github.com/rahul4469/recipe-browser/internal/models"
)

// ListContainerID is the id of the element holding the recipe list.
const ListContainerID = "recipes-list"

// ListFragment is the partial that renders the recipe list container.
const ListFragment = "recipes-list"

var errNoListContainer = errors.New("rendered list has no #" + ListContainerID + " element")

// Page is the document a visitor sees: the recipe list, the recipe detail
// and the error banner. It implements the controllers' Renderer.
//
// Calls are serialized but not ordered; whichever render lands last is what
// the page shows.
type Page struct {
	mu       sync.Mutex
	tmpl     *Template
	recipes  []models.Recipe
	detail   *models.Recipe
	errMsg   string
	errShown bool
}

// PageData is a point-in-time copy of the page for templates.
type PageData struct {
	Recipes []models.Recipe
	Detail  *models.Recipe
	Error   string
}

// NewPage creates an empty page. tmpl must define ListFragment.
func NewPage(tmpl *Template) *Page {
	return &Page{tmpl: tmpl}
}

// RenderRecipes replaces the recipe list.
func (p *Page) RenderRecipes(recipes []models.Recipe) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.recipes = append([]models.Recipe(nil), recipes...)
}

// RenderRecipeDetails replaces the detail view.
func (p *Page) RenderRecipeDetails(recipe models.Recipe) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.detail = &recipe
}

// RenderError shows msg in the error banner.
func (p *Page) RenderError(msg string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.errMsg = msg
	p.errShown = true
}

// HideError hides the error banner.
func (p *Page) HideError() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.errMsg = ""
	p.errShown = false
}

// Snapshot copies the current page state.
func (p *Page) Snapshot() PageData {
	p.mu.Lock()
	defer p.mu.Unlock()

	data := PageData{
		Recipes: append([]models.Recipe(nil), p.recipes...),
	}
	if p.detail != nil {
		d := *p.detail
		data.Detail = &d
	}
	if p.errShown {
		data.Error = p.errMsg
	}
	return data
}

// ListContainer renders the current list and returns the container element,
// ready for click events to be dispatched against it.
func (p *Page) ListContainer() (*goquery.Selection, error) {
	recipes := p.Snapshot().Recipes

	var buf bytes.Buffer
	if err := p.tmpl.ExecuteFragment(&buf, ListFragment, recipes); err != nil {
		return nil, fmt.Errorf("failed to render recipe list: %w", err)
	}

	doc, err := goquery.NewDocumentFromReader(&buf)
	if err != nil {
		return nil, fmt.Errorf("failed to parse recipe list: %w", err)
	}

	container := doc.Find("#" + ListContainerID)
	if container.Length() == 0 {
		return nil, errNoListContainer
	}
	return container.First(), nil
}

// FindByID returns the element inside container whose id is exactly id.
// The id is compared literally, never compiled as a selector.
func FindByID(container *goquery.Selection, id string) *goquery.Selection {
	return container.Find("[id]").FilterFunction(func(_ int, s *goquery.Selection) bool {
		v, _ := s.Attr("id")
		return v == id
	}).First()
}
