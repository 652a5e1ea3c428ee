package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"cuisine/internal/recipes"
)

func TestRenderRecipeErrorStatuses(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want int
		body string
	}{
		{"not found", recipes.ErrNotFound, http.StatusNotFound, "Recipe not found."},
		{"unauthorized", recipes.ErrUnauthorized, http.StatusForbidden, "Only the author can change this recipe."},
		{"ambiguous", fmt.Errorf("%w: id 1", recipes.ErrAmbiguousReference), http.StatusInternalServerError, "We could not load this recipe."},
		{"fork failed", fmt.Errorf("%w: insert steps", recipes.ErrForkFailed), http.StatusInternalServerError, "Nothing was saved."},
		{"unexpected", errors.New("disk full"), http.StatusInternalServerError, "Please try again later."},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			rr := httptest.NewRecorder()
			renderRecipeError(rr, httptest.NewRequest(http.MethodGet, "/recipe/1/detail/", nil), tt.err)

			if rr.Code != tt.want {
				t.Fatalf("expected status %d, got %d", tt.want, rr.Code)
			}
			if !strings.Contains(rr.Body.String(), tt.body) {
				t.Fatalf("expected body to contain %q", tt.body)
			}
		})
	}
}
