package controllers

import (
	"context"
	"fmt"
	"net/url"

	"github.com/PuerkitoBio/goquery"

	"github.com/rahul4469/recipe-browser/internal/models"
)

// Messages shown in the error banner.
const (
	MsgListFailed    = "Failed to load recipes."
	MsgDetailFailed  = "Failed to load recipe details."
	MsgSearchFailed  = "Failed to search recipes. %s"
	MsgSearchNoMatch = "No recipes match your search."
)

// Names of the DOM hooks the interaction relies on.
const (
	ListItemSelector  = "li"
	RecipeIDAttr      = "data-recipe-id"
	SearchTermField   = "searchTerm"
	QuickRecipesField = "isQuick"
)

// RecipeFetcher is the recipes API as seen by the interaction layer.
type RecipeFetcher interface {
	FetchRecipeList(ctx context.Context) models.Maybe[[]models.Recipe]
	FetchRecipeByID(ctx context.Context, id string) models.Maybe[models.Recipe]
	FetchRecipesBySearchTerm(ctx context.Context, term string) models.SearchResult
}

// Renderer puts recipes and errors on screen.
type Renderer interface {
	RenderRecipes(recipes []models.Recipe)
	RenderRecipeDetails(recipe models.Recipe)
	RenderError(msg string)
	HideError()
}

// SearchForm is the submitted search form.
type SearchForm struct {
	SearchTerm string
	IsQuick    bool
}

// ParseSearchForm reads the search form controls.
// A checkbox is only submitted when checked, so any non-empty value counts.
func ParseSearchForm(form url.Values) SearchForm {
	return SearchForm{
		SearchTerm: form.Get(SearchTermField),
		IsQuick:    form.Get(QuickRecipesField) != "",
	}
}

// Interaction wires page events to the recipes API and the renderer.
// It keeps no state between events; two events in flight at once are not
// sequenced against each other.
type Interaction struct {
	recipes  RecipeFetcher
	renderer Renderer
}

// NewInteraction creates a new Interaction.
func NewInteraction(recipes RecipeFetcher, renderer Renderer) *Interaction {
	return &Interaction{
		recipes:  recipes,
		renderer: renderer,
	}
}

// Load runs on page load: fetch the recipe list and show it.
func (c *Interaction) Load(ctx context.Context) {
	recipes, ok := c.recipes.FetchRecipeList(ctx).Get()
	if !ok {
		c.renderer.RenderError(MsgListFailed)
		return
	}
	c.renderer.HideError()
	c.renderer.RenderRecipes(recipes)
}

// OnListClick handles a click anywhere inside the list container.
// The nearest list item at or above target decides which recipe to show;
// clicks outside any list item are ignored.
func (c *Interaction) OnListClick(ctx context.Context, target *goquery.Selection) {
	if target == nil || target.Length() == 0 {
		return
	}
	li := target.Closest(ListItemSelector)
	if li.Length() == 0 {
		return
	}
	id, _ := li.Attr(RecipeIDAttr)
	c.ShowRecipe(ctx, id)
}

// ShowRecipe fetches one recipe and shows its details.
func (c *Interaction) ShowRecipe(ctx context.Context, id string) {
	recipe, ok := c.recipes.FetchRecipeByID(ctx, id).Get()
	if !ok {
		c.renderer.RenderError(MsgDetailFailed)
		return
	}
	c.renderer.HideError()
	c.renderer.RenderRecipeDetails(recipe)
}

// OnSearchSubmit runs a search and shows the matches, keeping only quick
// recipes when the form asks for it.
func (c *Interaction) OnSearchSubmit(ctx context.Context, form SearchForm) {
	res := c.recipes.FetchRecipesBySearchTerm(ctx, form.SearchTerm)
	if res.Err != nil {
		c.renderer.RenderError(fmt.Sprintf(MsgSearchFailed, res.Err.Message))
		return
	}
	if len(res.Data) == 0 {
		c.renderer.RenderError(MsgSearchNoMatch)
		return
	}

	recipes := res.Data
	if form.IsQuick {
		recipes = models.QuickRecipes(recipes)
	}
	c.renderer.HideError()
	c.renderer.RenderRecipes(recipes)
}
