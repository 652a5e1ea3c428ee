package handlers

import (
	"errors"
	"net/http"
	"strings"
	"unicode/utf8"

	"github.com/a-h/templ"
	"gorm.io/gorm"

	applog "cuisine/internal/log"
	"cuisine/internal/views/pages"
)

const (
	minPasswordLength = 8
	maxNameLength     = 150
)

// Signup displays the account form and registers new cooks. The new account
// is signed in straight away.
func Signup(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet, http.MethodHead:
		if ActiveSession(r) {
			redirectToApp(w, r)
			return
		}
		renderSignup(w, r, http.StatusOK, "", "", "")
	case http.MethodPost:
		if sessionManager == nil || database == nil {
			applog.Debug(r.Context(), "registration dependencies unavailable", "hasSession", sessionManager != nil, "hasDatabase", database != nil)
			http.Error(w, "registration not available", http.StatusServiceUnavailable)
			return
		}
		if err := r.ParseForm(); err != nil {
			applog.Debug(r.Context(), "failed to parse signup form", "error", err)
			http.Error(w, "invalid form submission", http.StatusBadRequest)
			return
		}

		name := strings.TrimSpace(r.PostFormValue("name"))
		email := strings.TrimSpace(r.PostFormValue("email"))
		password := r.PostFormValue("password")
		confirm := r.PostFormValue("confirm_password")

		if message := signupProblem(name, email, password, confirm); message != "" {
			renderSignup(w, r, http.StatusUnprocessableEntity, message, name, email)
			return
		}

		_, err := findUserByEmail(r, email)
		switch {
		case err == nil:
			renderSignup(w, r, http.StatusConflict, "An account with that email already exists.", name, email)
			return
		case !errors.Is(err, gorm.ErrRecordNotFound):
			applog.Error(r.Context(), "failed to check existing user", "error", err)
			renderSignup(w, r, http.StatusInternalServerError, "We couldn't create your account right now. Please try again.", name, email)
			return
		}

		user, err := createUser(r, email, name, password)
		if err != nil {
			applog.Error(r.Context(), "failed to create user", "error", err)
			renderSignup(w, r, http.StatusInternalServerError, "We couldn't create your account right now. Please try again.", name, email)
			return
		}
		applog.Info(r.Context(), "cook registered", "userID", user.ID)

		if err := establishSession(r, user); err != nil {
			applog.Error(r.Context(), "failed to establish session after signup", "error", err)
			renderSignup(w, r, http.StatusInternalServerError, "We couldn't sign you in after creating your account. Please try again.", name, email)
			return
		}
		redirectToApp(w, r)
	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

// signupProblem returns the message for the first invalid signup field.
func signupProblem(name, email, password, confirm string) string {
	switch {
	case email == "" || !strings.Contains(email, "@"):
		return "Please provide a valid email address."
	case utf8.RuneCountInString(name) > maxNameLength:
		return "Name must be at most 150 characters long."
	case len(password) < minPasswordLength:
		return "Password must be at least 8 characters long."
	case password != confirm:
		return "Passwords do not match."
	}
	return ""
}

func renderSignup(w http.ResponseWriter, r *http.Request, status int, message, name, email string) {
	var component templ.Component
	if isHTMX(r) {
		component = pages.SignupPartial(message, name, email)
	} else {
		component = pages.Signup(message, name, email)
	}
	renderStatus(w, r, status, component)
}
