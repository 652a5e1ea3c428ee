package recipes

import "errors"

var (
	// ErrNotFound is returned when no recipe has the requested id.
	ErrNotFound = errors.New("recipes: recipe not found")
	// ErrAmbiguousReference is returned when a lookup by id matches more than
	// one recipe. It signals a data-integrity defect.
	ErrAmbiguousReference = errors.New("recipes: recipe reference matches more than one record")
	// ErrUnauthorized is returned when the actor does not own the recipe.
	ErrUnauthorized = errors.New("recipes: actor is not the recipe author")
	// ErrForkFailed wraps any storage failure while writing a fork. Nothing
	// of the fork is persisted when it is returned.
	ErrForkFailed = errors.New("recipes: fork failed")
)
