package handlers

import (
	"errors"
	"net/http"
	"strings"

	"cuisine/internal/crud"
	applog "cuisine/internal/log"
	"cuisine/internal/recipes"
	"cuisine/internal/views/pages"
)

// Home renders the landing page with the latest, vegan and vegetarian recipes.
func Home(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	if unavailable(w, r) {
		return
	}

	home, err := service.Home(r.Context())
	if err != nil {
		renderRecipeError(w, r, err)
		return
	}
	renderComponent(w, r, pages.Home(home))
}

// Browse lists published recipes narrowed by the diet query parameter.
func Browse(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	if unavailable(w, r) {
		return
	}

	diet := strings.ToLower(strings.TrimSpace(r.URL.Query().Get("diet")))
	list, err := service.Browse(r.Context(), diet)
	if err != nil {
		renderRecipeError(w, r, err)
		return
	}
	applog.Debug(r.Context(), "browsing recipes", "diet", diet, "count", len(list))
	renderComponent(w, r, pages.Browse(diet, list))
}

// AuthorRecipes lists the recipes of the author named in the path.
func AuthorRecipes(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	if unavailable(w, r) {
		return
	}

	authorID, ok := crud.IDFromRequest(r)
	if !ok {
		renderNotFound(w, r, "Author")
		return
	}
	viewer, _ := currentUserID(r)

	page, err := service.ByAuthor(r.Context(), authorID, viewer)
	if errors.Is(err, recipes.ErrNotFound) {
		renderNotFound(w, r, "Author")
		return
	}
	if err != nil {
		renderRecipeError(w, r, err)
		return
	}
	renderComponent(w, r, pages.AuthorRecipes(page))
}

// CategoryRecipes lists the published recipes of the category named in the path.
func CategoryRecipes(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	if unavailable(w, r) {
		return
	}

	categoryID, ok := crud.IDFromRequest(r)
	if !ok {
		renderNotFound(w, r, "Category")
		return
	}

	category, list, err := service.ByCategory(r.Context(), categoryID)
	if errors.Is(err, recipes.ErrNotFound) {
		renderNotFound(w, r, "Category")
		return
	}
	if err != nil {
		renderRecipeError(w, r, err)
		return
	}
	renderComponent(w, r, pages.CategoryRecipes(category, list))
}
