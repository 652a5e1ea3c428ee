package server

import (
	"context"
	"net/http"

	"cuisine/internal/crud"
	"cuisine/internal/handlers"
	applog "cuisine/internal/log"
)

// newRouter registers the fixed pages and, when a database is configured,
// the generated resource routes.
func newRouter(table *crud.Table) http.Handler {
	ctx := context.Background()
	mux := http.NewServeMux()
	applog.Debug(ctx, "registering http routes")

	mux.HandleFunc("/healthz", handlers.Health)
	mux.HandleFunc("/login", handlers.Login)
	mux.HandleFunc("/signup", handlers.Signup)
	mux.HandleFunc("/logout", handlers.Logout)

	mux.HandleFunc("/{$}", handlers.Home)
	mux.HandleFunc("/recipes/{$}", handlers.Browse)
	mux.HandleFunc("/recipe/{id}/detail/{$}", handlers.RecipeDetail)
	mux.Handle("/recipe/{id}/fork/{$}", handlers.RequireAuthentication(http.HandlerFunc(handlers.RecipeFork)))
	mux.Handle("/recipe/import/{$}", handlers.RequireAuthentication(http.HandlerFunc(handlers.RecipeImport)))
	mux.HandleFunc("/author/{id}/{$}", handlers.AuthorRecipes)
	mux.HandleFunc("/category/{id}/recipes/{$}", handlers.CategoryRecipes)

	if table != nil {
		table.Register(mux)
		for _, route := range table.Routes() {
			applog.Debug(ctx, "route registered", "name", route.Name, "path", route.Pattern)
		}
	} else {
		applog.Debug(ctx, "no resource routes registered")
	}
	return mux
}
