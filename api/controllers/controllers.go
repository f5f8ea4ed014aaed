package controllers

import (
	"net/http"
	"strings"

	"github.com/estradaranch/flockherd-backend/api/flash"
	"github.com/estradaranch/flockherd-backend/api/middleware"
	"github.com/estradaranch/flockherd-backend/api/views"
	"github.com/estradaranch/flockherd-backend/pkg/logger"
)

// render executes a page with the shared envelope: the logged-in username
// from the request context and any pending flash message.
func render(w http.ResponseWriter, r *http.Request, renderer *views.Renderer, logg *logger.Logger, status int, name, title string, data any) {
	page := views.Page{
		Title:    title,
		Username: middleware.UsernameFromContext(r.Context()),
		Flash:    flash.Pop(w, r),
		Data:     data,
	}
	if err := renderer.Render(w, status, name, page); err != nil && logg != nil {
		logg.Error(r.Context(), "render.failed", err)
	}
}

// safeNext keeps the post-login redirect on-site. Anything that is not a
// local absolute path falls back to the dashboard.
func safeNext(raw string) string {
	if raw == "" || !strings.HasPrefix(raw, "/") || strings.HasPrefix(raw, "//") {
		return "/"
	}
	return raw
}
