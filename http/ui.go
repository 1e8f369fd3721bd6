package http

import (
	"embed"
	"fmt"
	"html/template"
	"net/http"
	"strings"

	"github.com/fwojciec/hermes"
	"github.com/labstack/echo/v4"
)

//go:embed templates/index.html
var templateFS embed.FS

var indexTemplate = template.Must(template.New("index.html").Funcs(template.FuncMap{
	"snippet":  func(text string) string { return hermes.Snippet(text, hermes.SnippetLength) },
	"distance": func(d *float32) string { return fmt.Sprintf("%.2f", *d) },
}).ParseFS(templateFS, "templates/index.html"))

// indexPage is the data rendered by the index template.
type indexPage struct {
	DirPath  string
	DirInput string
	Query    string
	Searched bool
	Results  []*hermes.SearchResult
	Error    string
}

func (s *Server) registerUIRoutes() {
	s.echo.GET("/", s.handleIndex)
	s.echo.POST("/dir", s.handleSetDirForm)
}

// handleIndex renders the directory form or the search form with results.
// Failures are shown on the page instead of an error status.
func (s *Server) handleIndex(c echo.Context) error {
	ctx := c.Request().Context()
	page := indexPage{Query: c.QueryParam("q")}

	dir, err := s.Settings.DirPath(ctx)
	switch {
	case err == nil:
		page.DirPath = dir
	case hermes.ErrorCode(err) != hermes.ENOTFOUND:
		s.Logger.Error("read dir path", "err", err)
		page.Error = hermes.ErrorMessage(err)
	}

	if page.DirPath != "" && strings.TrimSpace(page.Query) != "" {
		results, err := s.Search.Search(ctx, page.Query, hermes.SearchOptions{})
		if err != nil {
			s.Logger.Error("search", "query", page.Query, "err", err)
			page.Error = "Search failed: " + hermes.ErrorMessage(err)
		} else {
			page.Searched = true
			page.Results = results
		}
	}

	return s.render(c, http.StatusOK, page)
}

func (s *Server) handleSetDirForm(c echo.Context) error {
	input := c.FormValue("dir_path")
	if _, err := s.setDirPath(c, input); err != nil {
		return s.render(c, ErrorStatusCode(hermes.ErrorCode(err)), indexPage{
			DirInput: input,
			Error:    hermes.ErrorMessage(err),
		})
	}
	return c.Redirect(http.StatusSeeOther, "/")
}

func (s *Server) render(c echo.Context, status int, page indexPage) error {
	var b strings.Builder
	if err := indexTemplate.Execute(&b, page); err != nil {
		return err
	}
	return c.HTML(status, b.String())
}
