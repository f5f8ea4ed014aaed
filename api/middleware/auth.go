package middleware

import (
	"net/http"
	"strconv"

	"github.com/estradaranch/flockherd-backend/api/responses"
	pkgauth "github.com/estradaranch/flockherd-backend/pkg/auth"
	"github.com/estradaranch/flockherd-backend/pkg/auth/session"
	"github.com/estradaranch/flockherd-backend/pkg/config"
	pkgerrors "github.com/estradaranch/flockherd-backend/pkg/errors"
	"github.com/estradaranch/flockherd-backend/pkg/logger"
)

// Auth validates the session cookie and seeds the request context with the
// authenticated identity. A token is only honored while its session id still
// resolves in the session store, so logout takes effect immediately.
func Auth(cfg config.SessionConfig, checker session.Checker, logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			cookie, err := r.Cookie(cfg.CookieName)
			if err != nil || cookie.Value == "" {
				responses.RenderError(r.Context(), logg, nil, w, r, pkgerrors.New(pkgerrors.CodeUnauthorized, "login required"))
				return
			}

			claims, err := pkgauth.ParseSessionToken(cfg, cookie.Value)
			if err != nil {
				ClearSessionCookie(w, cfg)
				responses.RenderError(r.Context(), logg, nil, w, r, pkgerrors.Wrap(pkgerrors.CodeUnauthorized, err, "invalid session"))
				return
			}
			if claims.ID == "" || claims.UserID == 0 {
				ClearSessionCookie(w, cfg)
				responses.RenderError(r.Context(), logg, nil, w, r, pkgerrors.New(pkgerrors.CodeUnauthorized, "invalid session"))
				return
			}

			if checker != nil {
				ok, err := checker.Has(r.Context(), claims.ID)
				if err != nil {
					responses.RenderError(r.Context(), logg, nil, w, r, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "validate session"))
					return
				}
				if !ok {
					ClearSessionCookie(w, cfg)
					responses.RenderError(r.Context(), logg, nil, w, r, pkgerrors.New(pkgerrors.CodeUnauthorized, "session expired"))
					return
				}
			}

			ctx := WithUser(r.Context(), claims.UserID, claims.Username, claims.ID)
			if logg != nil {
				ctx = logg.WithFields(ctx, map[string]any{
					"user_id":  strconv.FormatUint(uint64(claims.UserID), 10),
					"username": claims.Username,
				})
			}

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// SetSessionCookie writes the signed token as the HTTP-only session cookie.
func SetSessionCookie(w http.ResponseWriter, cfg config.SessionConfig, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     cfg.CookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(cfg.TTL().Seconds()),
		HttpOnly: true,
		Secure:   cfg.Secure,
		SameSite: http.SameSiteLaxMode,
	})
}

// ClearSessionCookie removes the session cookie, used at logout and when a
// stale token is rejected.
func ClearSessionCookie(w http.ResponseWriter, cfg config.SessionConfig) {
	http.SetCookie(w, &http.Cookie{
		Name:     cfg.CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   cfg.Secure,
		SameSite: http.SameSiteLaxMode,
	})
}
