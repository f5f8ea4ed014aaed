package views

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"net/http"
	"time"

	"github.com/estradaranch/flockherd-backend/api/flash"
	"github.com/shopspring/decimal"
)

//go:embed templates
var templateFS embed.FS

var pageFiles = []string{
	"login.html",
	"register.html",
	"profile.html",
	"index.html",
	"error.html",
	"animals/list.html",
	"animals/add.html",
	"animals/detail.html",
	"feeds/list.html",
	"feeds/add.html",
	"feeds/edit.html",
	"inventory/list.html",
	"inventory/add.html",
	"inventory/edit.html",
	"inventory/low_stock.html",
	"sales/list.html",
	"sales/register.html",
	"sales/stats.html",
}

// Page is the envelope handed to every template.
type Page struct {
	Title    string
	Username string
	Flash    *flash.Message
	Data     any
}

// Renderer holds the parsed template set, one entry per page. Each page is
// parsed together with the shared layout so blocks resolve independently.
type Renderer struct {
	pages map[string]*template.Template
}

func NewRenderer() (*Renderer, error) {
	funcs := template.FuncMap{
		"fmtdate":  formatDate,
		"money":    formatMoney,
		"str":      derefString,
		"fmtfloat": formatFloat,
	}

	pages := make(map[string]*template.Template, len(pageFiles))
	for _, file := range pageFiles {
		tpl, err := template.New("layout.html").
			Funcs(funcs).
			ParseFS(templateFS, "templates/layout.html", "templates/"+file)
		if err != nil {
			return nil, fmt.Errorf("parsing template %s: %w", file, err)
		}
		name := file[:len(file)-len(".html")]
		pages[name] = tpl
	}
	return &Renderer{pages: pages}, nil
}

// Render executes the named page into a buffer before writing so a template
// failure never produces a half-written body.
func (r *Renderer) Render(w http.ResponseWriter, status int, name string, page Page) error {
	tpl, ok := r.pages[name]
	if !ok {
		return fmt.Errorf("unknown template %q", name)
	}

	var buf bytes.Buffer
	if err := tpl.ExecuteTemplate(&buf, "layout.html", page); err != nil {
		return fmt.Errorf("rendering %s: %w", name, err)
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, err := buf.WriteTo(w)
	return err
}

func formatDate(v any) string {
	switch t := v.(type) {
	case time.Time:
		if t.IsZero() {
			return ""
		}
		return t.Format("2006-01-02")
	case *time.Time:
		if t == nil || t.IsZero() {
			return ""
		}
		return t.Format("2006-01-02")
	}
	return ""
}

func formatMoney(v any) string {
	switch d := v.(type) {
	case decimal.Decimal:
		return d.StringFixed(2)
	case *decimal.Decimal:
		if d == nil {
			return ""
		}
		return d.StringFixed(2)
	}
	return ""
}

func derefString(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func formatFloat(f *float64) string {
	if f == nil {
		return ""
	}
	return fmt.Sprintf("%g", *f)
}
