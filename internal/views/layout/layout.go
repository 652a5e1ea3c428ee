package layout

import (
	"context"
	"fmt"

	"github.com/a-h/templ"

	"cuisine/internal/views/components"
)

// Nav describes the signed-in visitor for the navigation bar.
type Nav struct {
	UserID   uint
	UserName string
}

// Authenticated reports whether a user is signed in.
func (n Nav) Authenticated() bool {
	return n.UserID > 0
}

type navKey struct{}

// WithNav stores the navigation state in ctx.
func WithNav(ctx context.Context, nav Nav) context.Context {
	return context.WithValue(ctx, navKey{}, nav)
}

// NavFrom returns the navigation state stored by WithNav.
func NavFrom(ctx context.Context) Nav {
	nav, _ := ctx.Value(navKey{}).(Nav)
	return nav
}

// Link is one entry of the navigation bar.
type Link struct {
	Label string
	Path  string
}

// Catalogue lists the browsable sections shown in the navigation bar.
var Catalogue = []Link{
	{Label: "Recipes", Path: "/recipes/"},
	{Label: "Vegan", Path: "/recipes/?diet=vegan"},
	{Label: "Vegetarian", Path: "/recipes/?diet=vegetarian"},
	{Label: "Wines", Path: "/wine/"},
	{Label: "Grapes", Path: "/grapetype/"},
	{Label: "Categories", Path: "/category/"},
}

// Layout renders the HTML document around content.
func Layout(title string, content templ.Component) templ.Component {
	return components.Func(func(ctx context.Context, h *components.HTML) {
		nav := NavFrom(ctx)

		h.Raw(`<!DOCTYPE html><html lang="en"><head><meta charset="utf-8">`)
		h.Raw(`<meta name="viewport" content="width=device-width, initial-scale=1">`)
		h.Raw("<title>")
		h.Text(title)
		h.Raw("</title>")
		h.Raw(`<script src="https://unpkg.com/htmx.org@1.9.12" defer></script>`)
		h.Raw(`</head><body hx-boost="true"><header class="site-header"><nav>`)
		h.Link("/", "brand", "Cuisine")
		for _, link := range Catalogue {
			h.Link(link.Path, "nav-link", link.Label)
		}
		h.Raw(`<span class="account">`)
		if nav.Authenticated() {
			h.Link("/recipe/add/", "nav-link", "New recipe")
			h.Link("/recipe/import/", "nav-link", "Import")
			h.Link(fmt.Sprintf("/author/%d/", nav.UserID), "nav-link", nav.UserName)
			h.Raw(`<form method="post" action="/logout" class="inline"><button type="submit">Sign out</button></form>`)
		} else {
			h.Link("/login", "nav-link", "Sign in")
			h.Link("/signup", "nav-link", "Create account")
		}
		h.Raw(`</span></nav></header><main id="content">`)
		h.Render(ctx, content)
		h.Raw(`</main></body></html>`)
	})
}
