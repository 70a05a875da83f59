package handler

import (
	"fmt"
	"html/template"
	"log/slog"
	"net/http"
	"time"

	"github.com/shopspring/decimal"
)

var templateFuncs = template.FuncMap{
	"simNao": func(b bool) string {
		if b {
			return "Sim"
		}
		return "Não"
	},
	// brDate formats an ISO date string as dd/mm/yyyy; unparseable input is
	// returned unchanged.
	"brDate": func(iso string) string {
		t, err := time.Parse("2006-01-02", iso)
		if err != nil {
			return iso
		}
		return t.Format("02/01/2006")
	},
	"money": func(d decimal.Decimal) string {
		return d.StringFixed(2)
	},
}

// newTemplates parses every page and partial template with the shared
// function map.
func newTemplates() *template.Template {
	return template.Must(
		template.New("").Funcs(templateFuncs).ParseGlob("web/templates/*.html"),
	)
}

func render(w http.ResponseWriter, tmpl *template.Template, logger *slog.Logger, name string, data any) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := tmpl.ExecuteTemplate(w, name, data); err != nil {
		logger.Error("render template", "template", name, "error", err)
		http.Error(w, "template error", http.StatusInternalServerError)
	}
}

func renderPartial(w http.ResponseWriter, tmpl *template.Template, logger *slog.Logger, name string, data any) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := tmpl.ExecuteTemplate(w, name, data); err != nil {
		logger.Error("render partial", "template", name, "error", err)
		fmt.Fprint(w, `<div class="toast toast-error">Erro ao renderizar</div>`)
	}
}

// renderFormError writes an inline form error. HX-Retarget steers the swap
// into the form's error slot so the list is left untouched and the user's
// input is preserved for retry.
func renderFormError(w http.ResponseWriter, tmpl *template.Template, logger *slog.Logger, target, msg string) {
	w.Header().Set("HX-Retarget", target)
	w.Header().Set("HX-Reswap", "innerHTML")
	renderPartial(w, tmpl, logger, "form-error", map[string]string{"Error": msg})
}
