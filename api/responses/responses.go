package responses

import (
	"context"
	"net/http"
	"net/url"

	"github.com/estradaranch/flockherd-backend/api/flash"
	"github.com/estradaranch/flockherd-backend/api/views"
	pkgerrors "github.com/estradaranch/flockherd-backend/pkg/errors"
	"github.com/estradaranch/flockherd-backend/pkg/logger"
)

// Redirect sends the post-redirect-get response used after form submissions.
func Redirect(w http.ResponseWriter, r *http.Request, target string) {
	http.Redirect(w, r, target, http.StatusSeeOther)
}

// RedirectWithFlash queues a one-shot message and redirects.
func RedirectWithFlash(w http.ResponseWriter, r *http.Request, msg flash.Message, target string) {
	flash.Set(w, msg)
	Redirect(w, r, target)
}

// RenderError logs the failure and renders the error page with the mapped
// status. Unauthorized errors bounce to the login page instead, carrying the
// original path so login can return there.
func RenderError(ctx context.Context, logg *logger.Logger, renderer *views.Renderer, w http.ResponseWriter, r *http.Request, err error) {
	typed := typedError(err)
	logError(ctx, logg, err, typed)

	if typed.Code() == pkgerrors.CodeUnauthorized {
		target := "/login"
		if r.URL.Path != "/" && r.URL.Path != "/login" {
			target += "?next=" + url.QueryEscape(r.URL.RequestURI())
		}
		RedirectWithFlash(w, r, flash.Info("Please log in to continue"), target)
		return
	}

	meta := pkgerrors.MetadataFor(typed.Code())
	page := views.Page{
		Title: http.StatusText(meta.HTTPStatus),
		Data: map[string]string{
			"Heading": http.StatusText(meta.HTTPStatus),
			"Message": publicMessage(typed),
		},
	}
	if renderer == nil || renderer.Render(w, meta.HTTPStatus, "error", page) != nil {
		http.Error(w, publicMessage(typed), meta.HTTPStatus)
	}
}

// FormError logs the failure, flashes the message and redirects back to the
// originating form. Used where a failed mutation should redisplay the page.
func FormError(ctx context.Context, logg *logger.Logger, w http.ResponseWriter, r *http.Request, err error, backURL string) {
	typed := typedError(err)
	logError(ctx, logg, err, typed)
	RedirectWithFlash(w, r, flash.Error(publicMessage(typed)), backURL)
}

func typedError(err error) *pkgerrors.Error {
	if typed := pkgerrors.As(err); typed != nil {
		return typed
	}
	return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "unexpected error")
}

// publicMessage keeps internal causes out of user-facing text; only codes the
// user can act on surface their own message.
func publicMessage(typed *pkgerrors.Error) string {
	meta := pkgerrors.MetadataFor(typed.Code())
	switch typed.Code() {
	case pkgerrors.CodeValidation,
		pkgerrors.CodeUnauthorized,
		pkgerrors.CodeNotFound,
		pkgerrors.CodeConflict:
		if m := typed.Message(); m != "" {
			return m
		}
	}
	return meta.PublicMessage
}

func logError(ctx context.Context, logg *logger.Logger, err error, typed *pkgerrors.Error) {
	if logg == nil {
		return
	}
	dump := pkgerrors.Dump(err)
	fields := map[string]any{
		"error":       dump.TopMessage,
		"error_code":  dump.Code,
		"error_chain": dump.Chain,
	}
	if details := typed.Details(); details != nil && pkgerrors.MetadataFor(typed.Code()).DetailsAllowed {
		fields["error_details"] = details
	}
	if dump.PGCode != "" {
		fields["pg_code"] = dump.PGCode
		fields["pg_detail"] = dump.PGDetail
		fields["pg_constraint"] = dump.PGConstraint
	}
	if dump.SQLiteCode != "" {
		fields["sqlite_code"] = dump.SQLiteCode
	}
	ctx = logg.WithFields(ctx, fields)
	if typed.Code() == pkgerrors.CodeInternal || typed.Code() == pkgerrors.CodeDependency {
		logg.Error(ctx, "request.error", err)
		return
	}
	logg.Warn(ctx, "request.rejected")
}
