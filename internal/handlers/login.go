package handlers

import (
	"net/http"
	"strings"

	"github.com/a-h/templ"

	applog "cuisine/internal/log"
	"cuisine/internal/views/pages"
)

// Login renders the sign-in form and processes submitted credentials. A
// successful sign-in returns the cook to the page that required it.
func Login(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet, http.MethodHead:
		if ActiveSession(r) {
			redirectToApp(w, r)
			return
		}
		message := ""
		if sessionManager != nil {
			message = sessionManager.PopString(r.Context(), sessionLoginMessageKey)
		}
		renderLogin(w, r, http.StatusOK, message, "")
	case http.MethodPost:
		if sessionManager == nil || database == nil {
			applog.Debug(r.Context(), "authentication dependencies unavailable", "hasSession", sessionManager != nil, "hasDatabase", database != nil)
			http.Error(w, "authentication not available", http.StatusServiceUnavailable)
			return
		}
		if err := r.ParseForm(); err != nil {
			applog.Debug(r.Context(), "failed to parse login form", "error", err)
			http.Error(w, "invalid form submission", http.StatusBadRequest)
			return
		}
		email := strings.TrimSpace(r.PostFormValue("email"))
		password := r.PostFormValue("password")

		if email == "" || password == "" {
			renderLogin(w, r, http.StatusUnprocessableEntity, "Email and password are required.", email)
			return
		}

		if !authenticate(w, r, email, password) {
			applog.Info(r.Context(), "sign in rejected", "email", strings.ToLower(email))
			message := sessionManager.PopString(r.Context(), sessionLoginMessageKey)
			if message == "" {
				message = "We were unable to sign you in. Please try again."
			}
			renderLogin(w, r, http.StatusUnauthorized, message, email)
			return
		}

		applog.Info(r.Context(), "cook signed in", "email", strings.ToLower(email))
		redirectToApp(w, r)
	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

func renderLogin(w http.ResponseWriter, r *http.Request, status int, message, email string) {
	var component templ.Component
	if isHTMX(r) {
		component = pages.LoginPartial(message, email)
	} else {
		component = pages.Login(message, email)
	}
	renderStatus(w, r, status, component)
}
