package controllers

import (
	"net/http"
	"net/url"

	"github.com/estradaranch/flockherd-backend/api/flash"
	"github.com/estradaranch/flockherd-backend/api/middleware"
	"github.com/estradaranch/flockherd-backend/api/responses"
	"github.com/estradaranch/flockherd-backend/api/validators"
	"github.com/estradaranch/flockherd-backend/api/views"
	"github.com/estradaranch/flockherd-backend/internal/auth"
	"github.com/estradaranch/flockherd-backend/pkg/config"
	"github.com/estradaranch/flockherd-backend/pkg/logger"
)

type loginForm struct {
	Username string `form:"username" validate:"required"`
	Password string `form:"password" validate:"required"`
}

type registerForm struct {
	Username        string `form:"username" validate:"required,max=50"`
	Email           string `form:"email" validate:"required,email"`
	Password        string `form:"password" validate:"required"`
	ConfirmPassword string `form:"confirm_password" validate:"required"`
}

// LoginPage renders the login form, keeping the intended destination so a
// successful login can return there.
func LoginPage(renderer *views.Renderer, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		next := safeNext(r.URL.Query().Get("next"))
		data := map[string]string{"Next": ""}
		if next != "/" {
			data["Next"] = next
		}
		render(w, r, renderer, logg, http.StatusOK, "login", "Log in", data)
	}
}

// Login verifies the posted credentials and opens the session.
func Login(svc auth.Service, cfg config.SessionConfig, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		next := safeNext(r.URL.Query().Get("next"))
		backURL := "/login"
		if next != "/" {
			backURL += "?next=" + url.QueryEscape(next)
		}

		form := loginForm{
			Username: validators.FormValue(r, "username"),
			Password: r.PostFormValue("password"),
		}
		if err := validators.ValidateStruct(form); err != nil {
			responses.FormError(r.Context(), logg, w, r, err, backURL)
			return
		}

		result, err := svc.Login(r.Context(), auth.LoginInput{
			Username: form.Username,
			Password: form.Password,
		})
		if err != nil {
			responses.FormError(r.Context(), logg, w, r, err, backURL)
			return
		}

		middleware.SetSessionCookie(w, cfg, result.Token)
		responses.RedirectWithFlash(w, r, flash.Success("Logged in successfully"), next)
	}
}

// Logout revokes the session and clears the cookie.
func Logout(svc auth.Service, cfg config.SessionConfig, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sessionID := middleware.SessionIDFromContext(r.Context())
		if err := svc.Logout(r.Context(), sessionID); err != nil && logg != nil {
			logg.Error(r.Context(), "logout.revoke_failed", err)
		}
		middleware.ClearSessionCookie(w, cfg)
		responses.RedirectWithFlash(w, r, flash.Success("Logged out"), "/login")
	}
}

// RegisterPage renders the registration form.
func RegisterPage(renderer *views.Renderer, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		render(w, r, renderer, logg, http.StatusOK, "register", "Register", nil)
	}
}

// Register creates the account and sends the user to the login page.
func Register(svc auth.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		form := registerForm{
			Username:        validators.FormValue(r, "username"),
			Email:           validators.FormValue(r, "email"),
			Password:        r.PostFormValue("password"),
			ConfirmPassword: r.PostFormValue("confirm_password"),
		}
		if err := validators.ValidateStruct(form); err != nil {
			responses.FormError(r.Context(), logg, w, r, err, "/register")
			return
		}

		if _, err := svc.Register(r.Context(), auth.RegisterInput{
			Username:        form.Username,
			Email:           form.Email,
			Password:        form.Password,
			ConfirmPassword: form.ConfirmPassword,
		}); err != nil {
			responses.FormError(r.Context(), logg, w, r, err, "/register")
			return
		}

		responses.RedirectWithFlash(w, r, flash.Success("Account created, you can log in now"), "/login")
	}
}

// Profile shows the logged-in user's account details.
func Profile(svc auth.Service, renderer *views.Renderer, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, err := svc.Profile(r.Context(), middleware.UserIDFromContext(r.Context()))
		if err != nil {
			responses.RenderError(r.Context(), logg, renderer, w, r, err)
			return
		}
		render(w, r, renderer, logg, http.StatusOK, "profile", "Profile", map[string]any{"User": user})
	}
}
