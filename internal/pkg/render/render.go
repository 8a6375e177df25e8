// Package render executes the embedded HTML page templates and provides
// the response helpers shared by all page handlers: rendered pages,
// redirect-after-post, plain-text denials and error pages.
package render

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"net/http"

	"roomhub/internal/pkg/errs"
	"roomhub/internal/pkg/logx"
)

//go:embed templates/*.html
var templateFS embed.FS

// pages lists every page template. Each is parsed together with the
// base layout so it can fill the layout's content block.
var pages = []string{
	"home",
	"topics",
	"activity",
	"login_register",
	"room",
	"room_form",
	"message_form",
	"delete",
	"profile",
	"profile_form",
	"error",
}

// Renderer holds one parsed template set per page.
type Renderer struct {
	templates map[string]*template.Template
}

// New parses the embedded templates. The template set is a build-time
// asset, so a parse failure is a programming error and panics.
func New() *Renderer {
	templates := make(map[string]*template.Template, len(pages))

	for _, page := range pages {
		t := template.Must(template.ParseFS(templateFS,
			"templates/base.html",
			"templates/"+page+".html",
		))
		templates[page] = t
	}

	return &Renderer{templates: templates}
}

// HTML renders the named page with the given status code and data. The
// page is executed into a buffer first so a template failure becomes a
// 500 instead of a half-written response.
func (rd *Renderer) HTML(w http.ResponseWriter, status int, page string, data any) {
	t, ok := rd.templates[page]
	if !ok {
		logx.Error(fmt.Errorf("template %q is not registered", page), "render failed")
		http.Error(w, "Something went wrong. Please try again.", http.StatusInternalServerError)
		return
	}

	var buf bytes.Buffer
	if err := t.ExecuteTemplate(&buf, "base", data); err != nil {
		logx.Error(err, "template execution failed", "page", page)
		http.Error(w, "Something went wrong. Please try again.", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	w.Write(buf.Bytes())
}

// Error responds to a failed request. Forbidden errors become the
// plain-text denial the ownership checks promise; everything else gets
// the error page with the mapped status.
func (rd *Renderer) Error(w http.ResponseWriter, customErr *errs.CustomError) {
	if customErr == nil {
		customErr = errs.NewError(errs.ErrUnknown)
	}

	if customErr.Status == http.StatusForbidden {
		Deny(w, customErr)
		return
	}

	rd.HTML(w, customErr.Status, "error", map[string]any{
		"status":  customErr.Status,
		"message": customErr.Message,
	})
}

// Deny writes a plain-text denial with the error's status code.
func Deny(w http.ResponseWriter, customErr *errs.CustomError) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Header().Set("X-Content-Type-Options", "nosniff")
	w.WriteHeader(customErr.Status)
	fmt.Fprintln(w, customErr.Message)
}

// Redirect sends the post-mutation redirect. 303 forces the follow-up
// request to be a GET, so refreshing the target never re-posts.
func Redirect(w http.ResponseWriter, r *http.Request, url string) {
	http.Redirect(w, r, url, http.StatusSeeOther)
}
