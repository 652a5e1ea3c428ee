package pages

import (
	"context"

	"github.com/a-h/templ"

	"cuisine/internal/views/components"
	"cuisine/internal/views/layout"
	"cuisine/models"
)

// ErrorPage renders a titled message.
func ErrorPage(title, message string) templ.Component {
	return layout.Layout(title, components.Func(func(ctx context.Context, h *components.HTML) {
		h.Raw(`<section class="error">`)
		h.Element("h1", "", title)
		h.Element("p", "", message)
		h.Link("/", "", "Back to the recipes")
		h.Raw(`</section>`)
	}))
}

// DeleteRecipeError tells a visitor that only the author may delete recipe.
func DeleteRecipeError(recipe models.Recipe) templ.Component {
	return layout.Layout("Not authorized", components.Func(func(ctx context.Context, h *components.HTML) {
		h.Raw(`<section class="error" id="delete-recipe-error">`)
		h.Element("h1", "", "Not authorized")
		h.Raw("<p>Only the author can delete ")
		h.Link(components.RecipeURL(recipe.ID), "", recipe.Title)
		h.Raw(".</p></section>")
	}))
}
