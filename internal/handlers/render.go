package handlers

import (
	"errors"
	"net/http"

	"github.com/a-h/templ"

	applog "cuisine/internal/log"
	"cuisine/internal/recipes"
	"cuisine/internal/views/pages"
)

func renderComponent(w http.ResponseWriter, r *http.Request, component templ.Component) {
	renderStatus(w, r, http.StatusOK, component)
}

func renderStatus(w http.ResponseWriter, r *http.Request, status int, component templ.Component) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := component.Render(r.Context(), w); err != nil {
		applog.Error(r.Context(), "failed to render page", "path", r.URL.Path, "error", err)
	}
}

func renderNotFound(w http.ResponseWriter, r *http.Request, what string) {
	renderStatus(w, r, http.StatusNotFound, pages.ErrorPage("Not found", what+" not found."))
}

// renderRecipeError maps a recipe operation error to its page.
func renderRecipeError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, recipes.ErrNotFound):
		renderNotFound(w, r, "Recipe")
	case errors.Is(err, recipes.ErrUnauthorized):
		renderStatus(w, r, http.StatusForbidden, pages.ErrorPage("Not authorized", "Only the author can change this recipe."))
	case errors.Is(err, recipes.ErrAmbiguousReference):
		applog.Error(r.Context(), "data integrity defect: ambiguous recipe reference", "path", r.URL.Path, "error", err)
		renderStatus(w, r, http.StatusInternalServerError, pages.ErrorPage("Something went wrong", "We could not load this recipe."))
	case errors.Is(err, recipes.ErrForkFailed):
		applog.Error(r.Context(), "recipe fork failed", "path", r.URL.Path, "error", err)
		renderStatus(w, r, http.StatusInternalServerError, pages.ErrorPage("Fork failed", "We could not fork this recipe. Nothing was saved."))
	default:
		applog.Error(r.Context(), "recipe operation failed", "path", r.URL.Path, "error", err)
		renderStatus(w, r, http.StatusInternalServerError, pages.ErrorPage("Something went wrong", "Please try again later."))
	}
}

func unavailable(w http.ResponseWriter, r *http.Request) bool {
	if service == nil {
		applog.Debug(r.Context(), "recipe service unavailable", "path", r.URL.Path)
		http.Error(w, "service not available", http.StatusServiceUnavailable)
		return true
	}
	return false
}
