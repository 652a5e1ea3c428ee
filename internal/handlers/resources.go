package handlers

import (
	"errors"
	"net/http"

	"cuisine/internal/crud"
	"cuisine/internal/views/pages"
)

// Resources describes every entity served through generated CRUD routes.
// The recipe resource swaps in its own views; the catalogue entities use
// the generic ones.
func Resources() []crud.Resource {
	return []crud.Resource{
		{
			Schema: schemas.Recipe(),
			Options: crud.Options{
				ListView:   crud.ViewFunc(func(crud.Binding) http.Handler { return http.HandlerFunc(Browse) }),
				CreateView: recipeEditor(true),
				UpdateView: recipeEditor(false),
				DeleteView: recipeDelete,
			},
		},
		{Schema: schemas.Wine()},
		{Schema: schemas.GrapeType()},
		{Schema: schemas.Category()},
		{Schema: schemas.Food()},
		{Schema: schemas.FoodType()},
		{Schema: schemas.Unit()},
		{Schema: schemas.Country()},
		{Schema: schemas.Region()},
	}
}

// Routes binds Resources against the configured store. Mutating routes
// require a signed-in user.
func Routes() (*crud.Table, error) {
	if store == nil {
		return nil, errors.New("handlers: database not configured")
	}
	binder := crud.Binder{
		Store: store,
		Pages: pages.Catalogue{},
		Guard: RequireAuthentication,
	}
	return binder.Bind(Resources()...)
}
