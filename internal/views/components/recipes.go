package components

import (
	"context"
	"fmt"

	"github.com/a-h/templ"

	"cuisine/models"
)

// RecipeURL is the detail page of a recipe.
func RecipeURL(id uint) string {
	return fmt.Sprintf("/recipe/%d/detail/", id)
}

// AuthorURL lists an author's recipes.
func AuthorURL(id uint) string {
	return fmt.Sprintf("/author/%d/", id)
}

// CategoryURL lists a category's recipes.
func CategoryURL(id uint) string {
	return fmt.Sprintf("/category/%d/recipes/", id)
}

// DietBadges marks vegan and vegetarian recipes.
func DietBadges(recipe models.Recipe) templ.Component {
	return Func(func(_ context.Context, h *HTML) {
		if recipe.IsForVegan {
			h.Element("span", "badge badge-vegan", "Vegan")
		}
		if recipe.IsForVegetarian {
			h.Element("span", "badge badge-vegetarian", "Vegetarian")
		}
		if !recipe.IsPublished {
			h.Element("span", "badge badge-draft", "Draft")
		}
	})
}

// RecipeList renders recipes as cards linking to their detail pages.
func RecipeList(recipes []models.Recipe, empty string) templ.Component {
	return Func(func(ctx context.Context, h *HTML) {
		if len(recipes) == 0 {
			h.Element("p", "empty", empty)
			return
		}
		h.Raw(`<ul class="recipe-list">`)
		for _, recipe := range recipes {
			h.Raw(`<li class="recipe-card"`)
			h.Attr("data-recipe", fmt.Sprint(recipe.ID))
			h.Raw(">")
			h.Link(RecipeURL(recipe.ID), "recipe-title", recipe.Title)
			h.Render(ctx, DietBadges(recipe))
			if recipe.Author != nil {
				h.Raw(` <span class="byline">by `)
				h.Link(AuthorURL(recipe.AuthorID), "", recipe.Author.DisplayName())
				h.Raw(`</span>`)
			}
			if recipe.Summary != "" {
				h.Element("p", "summary", recipe.Summary)
			}
			h.Raw("</li>")
		}
		h.Raw("</ul>")
	})
}
