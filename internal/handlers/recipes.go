package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"cuisine/internal/crud"
	"cuisine/internal/forms"
	applog "cuisine/internal/log"
	"cuisine/internal/recipes"
	"cuisine/internal/views/components"
	"cuisine/internal/views/pages"
	"cuisine/models"
)

var (
	ingredientLimits = forms.Limits{Extra: 3, Max: 30}
	stepLimits       = forms.Limits{Extra: 3, Max: 30}
)

// SetFormsetLimits sizes the ingredient and step rows of the recipe editor.
func SetFormsetLimits(ingredients, steps forms.Limits) {
	ingredientLimits = ingredients
	stepLimits = steps
}

// visible reports whether viewer may see recipe. Drafts are private to
// their author.
func visible(recipe *models.Recipe, viewer uint) bool {
	return recipe.IsPublished || (viewer > 0 && recipe.AuthorID == viewer)
}

// RecipeDetail renders a recipe with its ingredients, steps and fork count.
func RecipeDetail(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	if unavailable(w, r) {
		return
	}

	recipeID, ok := crud.IDFromRequest(r)
	if !ok {
		renderNotFound(w, r, "Recipe")
		return
	}
	viewer, _ := currentUserID(r)

	recipe, err := service.Get(r.Context(), recipeID)
	if err != nil {
		renderRecipeError(w, r, err)
		return
	}
	if !visible(recipe, viewer) {
		renderNotFound(w, r, "Recipe")
		return
	}

	renderDetail(w, r, http.StatusOK, recipe, viewer, false)
}

func renderDetail(w http.ResponseWriter, r *http.Request, status int, recipe *models.Recipe, viewer uint, forked bool) {
	forks, err := service.ForkCount(r.Context(), recipe.ID)
	if err != nil {
		renderRecipeError(w, r, err)
		return
	}
	renderStatus(w, r, status, pages.RecipeDetailPage(pages.RecipeDetail{
		Recipe:    recipe,
		ForkCount: forks,
		Viewer:    viewer,
		Forked:    forked,
	}))
}

// RecipeFork copies the recipe in the path for the signed-in user and
// renders the new copy with status 201.
func RecipeFork(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	if unavailable(w, r) {
		return
	}

	userID, ok := currentUserID(r)
	if !ok {
		redirectToLogin(w, r)
		return
	}
	recipeID, ok := crud.IDFromRequest(r)
	if !ok {
		renderNotFound(w, r, "Recipe")
		return
	}

	source, err := service.Get(r.Context(), recipeID)
	if err != nil {
		renderRecipeError(w, r, err)
		return
	}
	if !visible(source, userID) {
		renderNotFound(w, r, "Recipe")
		return
	}

	fork, err := service.Fork(r.Context(), recipeID, userID)
	if err != nil {
		renderRecipeError(w, r, err)
		return
	}

	detail, err := service.Get(r.Context(), fork.ID)
	if err != nil {
		renderRecipeError(w, r, err)
		return
	}
	renderDetail(w, r, http.StatusCreated, detail, userID, true)
}

// recipeDelete is the delete view of the recipe resource. Only the author
// may confirm or perform the deletion; anyone else gets the delete error page.
var recipeDelete = crud.ViewFunc(func(b crud.Binding) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet && r.Method != http.MethodPost {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		if unavailable(w, r) {
			return
		}

		userID, ok := currentUserID(r)
		if !ok {
			redirectToLogin(w, r)
			return
		}
		recipeID, ok := crud.IDFromRequest(r)
		if !ok {
			renderNotFound(w, r, "Recipe")
			return
		}

		recipe, err := service.Get(r.Context(), recipeID)
		if err != nil {
			renderRecipeError(w, r, err)
			return
		}
		if recipe.AuthorID != userID {
			applog.Info(r.Context(), "recipe delete refused", "id", recipeID, "actor", userID, "author", recipe.AuthorID)
			renderStatus(w, r, http.StatusForbidden, pages.DeleteRecipeError(*recipe))
			return
		}

		if r.Method == http.MethodGet {
			renderComponent(w, r, b.Pages.ConfirmDelete(crud.DeletePage{
				Resource:  b.Name(),
				Entity:    "Recipe",
				Label:     recipe.Title,
				Action:    b.URL(crud.ActionDelete, recipeID),
				CancelURL: components.RecipeURL(recipeID),
			}))
			return
		}

		if err := service.Delete(r.Context(), recipeID, userID); err != nil {
			if errors.Is(err, recipes.ErrUnauthorized) {
				renderStatus(w, r, http.StatusForbidden, pages.DeleteRecipeError(*recipe))
				return
			}
			renderRecipeError(w, r, err)
			return
		}
		redirectTo(w, r, components.AuthorURL(userID))
	})
})

// recipeEditor is the create or update view of the recipe resource: the
// recipe fields plus the ingredient and step formsets, saved together.
func recipeEditor(creating bool) crud.View {
	return crud.ViewFunc(func(b crud.Binding) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method != http.MethodGet && r.Method != http.MethodPost {
				w.WriteHeader(http.StatusMethodNotAllowed)
				return
			}
			if unavailable(w, r) {
				return
			}

			userID, ok := currentUserID(r)
			if !ok {
				redirectToLogin(w, r)
				return
			}

			record := &models.Recipe{}
			if !creating {
				recipeID, ok := crud.IDFromRequest(r)
				if !ok {
					renderNotFound(w, r, "Recipe")
					return
				}
				loaded, err := service.Get(r.Context(), recipeID)
				if err != nil {
					renderRecipeError(w, r, err)
					return
				}
				if loaded.AuthorID != userID {
					renderRecipeError(w, r, recipes.ErrUnauthorized)
					return
				}
				record = loaded
			}

			ingredients := schemas.Ingredients(ingredientLimits)
			steps := schemas.Steps(stepLimits)
			errs := crud.FieldErrors{}
			status := http.StatusOK

			if r.Method == http.MethodPost {
				if err := r.ParseForm(); err != nil {
					applog.Debug(r.Context(), "failed to parse recipe form", "error", err)
					http.Error(w, "invalid form submission", http.StatusBadRequest)
					return
				}

				errs = b.Resource.Schema.Bind(r.Context(), r.PostForm, record)
				draft := recipes.Draft{
					Recipe:      *record,
					Ingredients: ingredients.Parse(r.Context(), r.PostForm, errs),
					Steps:       steps.Parse(r.Context(), r.PostForm, errs),
				}

				if errs.Empty() {
					saved, err := service.Save(r.Context(), userID, draft)
					if err == nil {
						applog.Info(r.Context(), "recipe submitted", "id", saved.ID, "created", creating)
						redirectTo(w, r, components.RecipeURL(saved.ID))
						return
					}
					validation, invalid := forms.AsValidation(err)
					if !invalid {
						renderRecipeError(w, r, err)
						return
					}
					errs = validation.Fields
				}
				status = http.StatusUnprocessableEntity
			}

			var submitted = r.PostForm
			if r.Method != http.MethodPost {
				submitted = nil
			}

			form, err := b.FormPage(r, record, creating, errs)
			if err != nil {
				renderRecipeError(w, r, fmt.Errorf("describe recipe form: %w", err))
				return
			}
			if !creating {
				form.CancelURL = components.RecipeURL(record.ID)
			}
			ingredientPage, err := ingredients.Page(r.Context(), record.Ingredients, submitted, errs)
			if err != nil {
				renderRecipeError(w, r, fmt.Errorf("describe ingredients: %w", err))
				return
			}
			stepPage, err := steps.Page(r.Context(), record.Steps, submitted, errs)
			if err != nil {
				renderRecipeError(w, r, fmt.Errorf("describe steps: %w", err))
				return
			}

			renderStatus(w, r, status, pages.RecipeEditorPage(pages.RecipeEditor{
				Form:        form,
				Ingredients: ingredientPage,
				Steps:       stepPage,
			}))
		})
	})
}
