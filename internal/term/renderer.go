// Package term renders recipes to a terminal.
package term

import (
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/charmbracelet/lipgloss"

	"github.com/rahul4469/recipe-browser/internal/models"
)

var (
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("205"))
	idStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	metaStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("244"))
	quickStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	headStyle  = lipgloss.NewStyle().Bold(true).Underline(true)
	errorStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("196"))
)

// Renderer writes recipes to out and errors to errOut.
// A terminal cannot take output back, so HideError only resets the
// error state reported by Failed.
type Renderer struct {
	mu     sync.Mutex
	out    io.Writer
	errOut io.Writer
	failed bool
}

// NewRenderer creates a new Renderer.
func NewRenderer(out, errOut io.Writer) *Renderer {
	return &Renderer{out: out, errOut: errOut}
}

// RenderRecipes prints one line per recipe.
func (r *Renderer) RenderRecipes(recipes []models.Recipe) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if len(recipes) == 0 {
		fmt.Fprintln(r.out, metaStyle.Render("(no recipes)"))
		return
	}
	for _, rec := range recipes {
		line := fmt.Sprintf("%s %s %s",
			idStyle.Render(fmt.Sprintf("#%-4d", rec.ID)),
			titleStyle.Render(rec.Name),
			metaStyle.Render(fmt.Sprintf("(%s min)", models.FormatMinutes(rec.TotalMinutes()))),
		)
		if rec.IsQuick() {
			line += " " + quickStyle.Render("quick")
		}
		fmt.Fprintln(r.out, line)
	}
}

// RenderRecipeDetails prints the full recipe.
func (r *Renderer) RenderRecipeDetails(recipe models.Recipe) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var b strings.Builder
	fmt.Fprintln(&b, titleStyle.Render(recipe.Name))

	var meta []string
	if recipe.Cuisine != "" {
		meta = append(meta, recipe.Cuisine)
	}
	if recipe.Difficulty != "" {
		meta = append(meta, recipe.Difficulty)
	}
	meta = append(meta, "prep "+models.FormatMinutes(recipe.PrepTimeMinutes)+" min", "cook "+models.FormatMinutes(recipe.CookTimeMinutes)+" min")
	if recipe.Servings > 0 {
		meta = append(meta, fmt.Sprintf("serves %d", recipe.Servings))
	}
	fmt.Fprintln(&b, metaStyle.Render(strings.Join(meta, " · ")))

	if len(recipe.Ingredients) > 0 {
		fmt.Fprintln(&b)
		fmt.Fprintln(&b, headStyle.Render("Ingredients"))
		for _, ing := range recipe.Ingredients {
			fmt.Fprintf(&b, "  - %s\n", ing)
		}
	}
	if len(recipe.Instructions) > 0 {
		fmt.Fprintln(&b)
		fmt.Fprintln(&b, headStyle.Render("Instructions"))
		for i, step := range recipe.Instructions {
			fmt.Fprintf(&b, "  %d. %s\n", i+1, step)
		}
	}

	io.WriteString(r.out, b.String())
}

// RenderError prints msg to errOut.
func (r *Renderer) RenderError(msg string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.failed = true
	fmt.Fprintln(r.errOut, errorStyle.Render(msg))
}

// HideError clears the error state.
func (r *Renderer) HideError() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.failed = false
}

// Failed reports whether the last thing rendered was an error.
func (r *Renderer) Failed() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.failed
}
