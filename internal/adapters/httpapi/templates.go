package httpapi

import (
	"embed"
	"errors"
	"fmt"
	"html/template"
	"net/http"
	"strings"
	"time"

	"yatube/internal/adapters/httpapi/middleware"
	"yatube/internal/core/apperr"

	"github.com/gin-gonic/gin"
)

//go:embed templates
var templateFS embed.FS

var templateFuncs = template.FuncMap{
	"date":       formatDate,
	"paragraphs": paragraphs,
	"dict":       dict,
}

func formatDate(t time.Time) string { return t.Format("02 Jan 2006") }

func paragraphs(text string) []string {
	return strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n")
}

// dict builds a map from key, value pairs so a template can pass several
// values to another one.
func dict(pairs ...any) (map[string]any, error) {
	if len(pairs)%2 != 0 {
		return nil, errors.New("dict: odd number of arguments")
	}
	m := make(map[string]any, len(pairs)/2)
	for i := 0; i < len(pairs); i += 2 {
		key, ok := pairs[i].(string)
		if !ok {
			return nil, fmt.Errorf("dict: key %v is not a string", pairs[i])
		}
		m[key] = pairs[i+1]
	}
	return m, nil
}

func mustParseTemplates() *template.Template {
	return template.Must(template.New("").Funcs(templateFuncs).ParseFS(templateFS,
		"templates/*.html",
		"templates/*/*.html",
	))
}

// render adds the current user to data, for the header.
func render(c *gin.Context, status int, name string, data gin.H) {
	data["CurrentUser"] = middleware.Username(c)
	c.HTML(status, name, data)
}

func renderError(c *gin.Context, status int, message string) {
	if strings.HasPrefix(c.Request.URL.Path, "/api/") {
		c.JSON(status, gin.H{"error": strings.ToLower(message)})
		return
	}
	render(c, status, "core/error.html", gin.H{"Status": status, "Message": message})
}

// webError renders the 404 page for a missing entity and a bare 500 for
// anything unexpected.
func webError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, apperr.ErrNotFound):
		renderError(c, http.StatusNotFound, "Page not found")
	case errors.Is(err, apperr.ErrForbidden):
		renderError(c, http.StatusForbidden, "Access denied")
	default:
		logUnexpected(c, err)
		renderError(c, http.StatusInternalServerError, "Server error")
	}
}
