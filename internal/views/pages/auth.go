package pages

import (
	"context"

	"github.com/a-h/templ"

	"cuisine/internal/views/components"
	"cuisine/internal/views/layout"
)

// Login renders the full sign-in page.
func Login(message, email string) templ.Component {
	return layout.Layout("Sign in", LoginPartial(message, email))
}

// LoginPartial renders the sign-in form alone, for HTMX swaps.
func LoginPartial(message, email string) templ.Component {
	return components.Func(func(ctx context.Context, h *components.HTML) {
		h.Raw(`<section class="auth" id="login"><h1>Sign in</h1>`)
		alert(h, message)
		h.Raw(`<form method="post" action="/login" hx-post="/login" hx-target="#login" hx-swap="outerHTML">`)
		h.Raw(`<label for="email">Email</label><input type="email" id="email" name="email" required`)
		h.Attr("value", email)
		h.Raw(`><label for="password">Password</label><input type="password" id="password" name="password" required>`)
		h.Raw(`<button type="submit">Sign in</button></form><p>No account yet? `)
		h.Link("/signup", "", "Create one")
		h.Raw(`</p></section>`)
	})
}

// Signup renders the full account creation page.
func Signup(message, name, email string) templ.Component {
	return layout.Layout("Create account", SignupPartial(message, name, email))
}

// SignupPartial renders the account creation form alone, for HTMX swaps.
func SignupPartial(message, name, email string) templ.Component {
	return components.Func(func(ctx context.Context, h *components.HTML) {
		h.Raw(`<section class="auth" id="signup"><h1>Create account</h1>`)
		alert(h, message)
		h.Raw(`<form method="post" action="/signup" hx-post="/signup" hx-target="#signup" hx-swap="outerHTML">`)
		h.Raw(`<label for="name">Name</label><input type="text" id="name" name="name"`)
		h.Attr("value", name)
		h.Raw(`><label for="email">Email</label><input type="email" id="email" name="email" required`)
		h.Attr("value", email)
		h.Raw(`><label for="password">Password</label><input type="password" id="password" name="password" minlength="8" required>`)
		h.Raw(`<label for="confirm_password">Confirm password</label><input type="password" id="confirm_password" name="confirm_password" required>`)
		h.Raw(`<button type="submit">Create account</button></form><p>Already registered? `)
		h.Link("/login", "", "Sign in")
		h.Raw(`</p></section>`)
	})
}

func alert(h *components.HTML, message string) {
	if message != "" {
		h.Raw(`<p class="alert" role="alert">`)
		h.Text(message)
		h.Raw(`</p>`)
	}
}
