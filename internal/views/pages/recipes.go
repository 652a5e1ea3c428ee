package pages

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/a-h/templ"

	"cuisine/internal/recipes"
	"cuisine/internal/views/components"
	"cuisine/internal/views/layout"
	"cuisine/models"
)

// Home renders the landing page.
func Home(home *recipes.Home) templ.Component {
	return layout.Layout("Cuisine", components.Func(func(ctx context.Context, h *components.HTML) {
		h.Raw(`<section class="home"><h1>Latest recipes</h1>`)
		h.Render(ctx, components.RecipeList(home.Latest, "No recipes published yet."))
		h.Raw(`<h2>Vegan friendly</h2>`)
		h.Render(ctx, components.RecipeList(home.Vegan, "No vegan recipes yet."))
		h.Raw(`<h2>Vegetarian friendly</h2>`)
		h.Render(ctx, components.RecipeList(home.Vegetarian, "No vegetarian recipes yet."))
		if len(home.Categories) > 0 {
			h.Raw(`<h2>Categories</h2><ul class="categories">`)
			for _, category := range home.Categories {
				h.Raw("<li>")
				h.Link(components.CategoryURL(category.ID), "", category.Name)
				h.Raw("</li>")
			}
			h.Raw("</ul>")
		}
		h.Raw(`</section>`)
	}))
}

// DietTitle is the heading of a browse page for a diet filter.
func DietTitle(diet string) string {
	switch diet {
	case "vegan":
		return "Vegan recipes"
	case "vegetarian":
		return "Vegetarian recipes"
	case "veg":
		return "Vegan and vegetarian recipes"
	default:
		return "All recipes"
	}
}

// Browse renders the published recipes matching a diet filter.
func Browse(diet string, list []models.Recipe) templ.Component {
	title := DietTitle(diet)
	return layout.Layout(title, components.Func(func(ctx context.Context, h *components.HTML) {
		h.Raw(`<section class="browse"><h1>`)
		h.Text(title)
		h.Raw(`</h1><nav class="filters">`)
		for _, filter := range []struct{ diet, label string }{
			{"", "All"}, {"vegan", "Vegan"}, {"vegetarian", "Vegetarian"}, {"veg", "Vegan or vegetarian"},
		} {
			href := "/recipes/"
			if filter.diet != "" {
				href += "?diet=" + filter.diet
			}
			class := "filter"
			if filter.diet == diet {
				class += " active"
			}
			h.Link(href, class, filter.label)
		}
		h.Raw(`</nav>`)
		h.Render(ctx, components.RecipeList(list, "No recipes match this filter."))
		h.Raw(`</section>`)
	}))
}

// RecipeDetail is the data of the recipe detail page.
type RecipeDetail struct {
	Recipe    *models.Recipe
	ForkCount int64
	// Viewer is the signed-in user, zero for anonymous visitors.
	Viewer uint
	// Forked is set when the page shows a recipe that was just forked.
	Forked bool
}

// CanEdit reports whether the viewer authored the recipe.
func (d RecipeDetail) CanEdit() bool {
	return d.Viewer > 0 && d.Viewer == d.Recipe.AuthorID
}

// RecipeDetailPage renders a recipe with its ingredients and steps.
func RecipeDetailPage(detail RecipeDetail) templ.Component {
	recipe := detail.Recipe
	return layout.Layout(recipe.Title, components.Func(func(ctx context.Context, h *components.HTML) {
		h.Raw(`<article class="recipe"`)
		h.Attr("data-recipe", strconv.FormatUint(uint64(recipe.ID), 10))
		h.Raw(">")
		if detail.Forked {
			h.Element("p", "alert success", "Recipe forked. This copy is yours to edit.")
		}
		h.Element("h1", "", recipe.Title)
		h.Render(ctx, components.DietBadges(*recipe))

		h.Raw(`<p class="meta">`)
		if recipe.Author != nil {
			h.Raw("By ")
			h.Link(components.AuthorURL(recipe.AuthorID), "", recipe.Author.DisplayName())
		}
		if recipe.Category != nil {
			h.Raw(" in ")
			h.Link(components.CategoryURL(recipe.CategoryID), "", recipe.Category.Name)
		}
		if recipe.Country != nil {
			h.Raw(" from ")
			h.Text(recipe.Country.Name)
			if recipe.Region != nil {
				h.Text(", " + recipe.Region.Name)
			}
		}
		h.Raw("</p>")

		if recipe.ForkOrigin != nil {
			h.Raw(`<p class="fork-origin">Forked from `)
			h.Link(components.RecipeURL(recipe.ForkOrigin.ID), "", recipe.ForkOrigin.Title)
			h.Raw("</p>")
		}

		h.Raw(`<dl class="facts"><dt>Difficulty</dt><dd>`)
		h.Text(models.DifficultyLabel(recipe.Difficulty))
		h.Raw("</dd>")
		if recipe.PreparationTime != "" {
			h.Raw("<dt>Preparation</dt><dd>")
			h.Text(recipe.PreparationTime)
			h.Raw("</dd>")
		}
		h.Raw(`<dt>Forks</dt><dd class="fork-count">`)
		h.Text(strconv.FormatInt(detail.ForkCount, 10))
		h.Raw("</dd></dl>")

		if recipe.Summary != "" {
			h.Element("p", "summary", recipe.Summary)
		}

		h.Raw(`<h2>Ingredients</h2><ul class="ingredients">`)
		for _, ingredient := range recipe.Ingredients {
			h.Element("li", "", ingredient.Describe())
		}
		h.Raw(`</ul><h2>Steps</h2><ol class="steps">`)
		for _, step := range recipe.Steps {
			h.Raw("<li>")
			h.Text(step.Text)
			if step.Duration != nil {
				h.Element("span", "duration", fmt.Sprintf(" (%d min)", *step.Duration))
			}
			h.Raw("</li>")
		}
		h.Raw("</ol>")

		if len(recipe.SuggestedWines) > 0 {
			names := make([]string, 0, len(recipe.SuggestedWines))
			for _, wine := range recipe.SuggestedWines {
				names = append(names, wine.Name)
			}
			h.Raw(`<p class="wines">Suggested wines: `)
			h.Text(strings.Join(names, ", "))
			h.Raw("</p>")
		}

		if tags := strings.TrimSpace(recipe.Tags); tags != "" {
			h.Element("p", "tags", tags)
		}

		h.Raw(`<div class="actions">`)
		if detail.Viewer > 0 {
			h.Raw(`<form method="post" class="inline"`)
			h.Attr("action", fmt.Sprintf("/recipe/%d/fork/", recipe.ID))
			h.Raw(`><button type="submit">Fork</button></form>`)
		}
		if detail.CanEdit() {
			h.Link(fmt.Sprintf("/recipe/%d/", recipe.ID), "button", "Edit")
			h.Link(fmt.Sprintf("/recipe/%d/delete/", recipe.ID), "button danger", "Delete")
		}
		h.Raw("</div></article>")
	}))
}

// AuthorRecipes renders an author's recipes.
func AuthorRecipes(page *recipes.AuthorPage) templ.Component {
	name := page.Author.DisplayName()
	return layout.Layout("Recipes by "+name, components.Func(func(ctx context.Context, h *components.HTML) {
		h.Raw(`<section class="author">`)
		h.Element("h1", "", "Recipes by "+name)
		noun := "recipes"
		if page.Count == 1 {
			noun = "recipe"
		}
		h.Element("p", "recipe-count", fmt.Sprintf("%d %s", page.Count, noun))
		h.Render(ctx, components.RecipeList(page.Recipes, "No published recipes yet."))
		h.Raw(`</section>`)
	}))
}

// CategoryRecipes renders the recipes of a category.
func CategoryRecipes(category *models.Category, list []models.Recipe) templ.Component {
	return layout.Layout(category.Name, components.Func(func(ctx context.Context, h *components.HTML) {
		h.Raw(`<section class="category">`)
		h.Element("h1", "", category.Name)
		h.Render(ctx, components.RecipeList(list, "No recipes in this category yet."))
		h.Raw(`</section>`)
	}))
}
