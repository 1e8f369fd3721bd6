package http

import (
	"net/http"
	"strings"

	"github.com/fwojciec/hermes"
	"github.com/labstack/echo/v4"
)

// DirPathRequest is the body of POST /api/dir_path.
type DirPathRequest struct {
	DirPath string `json:"dir_path"`
}

// DirPathResponse is returned by both /api/dir_path endpoints.
type DirPathResponse struct {
	DirPath string `json:"dir_path"`
}

// SearchRequest is the body of POST /api/search.
type SearchRequest struct {
	Text  string `json:"text"`
	Limit int    `json:"limit,omitempty"`
}

// AskRequest is the body of POST /api/ask.
type AskRequest struct {
	Text string `json:"text"`
}

// AskResponse is returned by POST /api/ask.
type AskResponse struct {
	Answer string `json:"answer"`
}

// StatusResponse is returned by GET /api/status.
type StatusResponse struct {
	DirPath string `json:"dir_path"`
	Files   int    `json:"files"`
	Chunks  int    `json:"chunks"`
}

func (s *Server) registerAPIRoutes(g *echo.Group) {
	g.GET("/dir_path", s.handleGetDirPath)
	g.POST("/dir_path", s.handleSetDirPath)
	g.POST("/search", s.handleSearch)
	g.POST("/ask", s.handleAsk)
	g.GET("/status", s.handleStatus)
}

// handleGetDirPath answers 204 when no directory has been chosen yet.
func (s *Server) handleGetDirPath(c echo.Context) error {
	dir, err := s.Settings.DirPath(c.Request().Context())
	if hermes.ErrorCode(err) == hermes.ENOTFOUND {
		return c.NoContent(http.StatusNoContent)
	} else if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, &DirPathResponse{DirPath: dir})
}

func (s *Server) handleSetDirPath(c echo.Context) error {
	var req DirPathRequest
	if err := c.Bind(&req); err != nil {
		return hermes.Errorf(hermes.EINVALID, "invalid JSON body")
	}

	dir, err := s.setDirPath(c, req.DirPath)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, &DirPathResponse{DirPath: dir})
}

func (s *Server) setDirPath(c echo.Context, path string) (string, error) {
	dir, err := hermes.CleanDirPath(path)
	if err != nil {
		return "", err
	}
	if err := s.Settings.SetDirPath(c.Request().Context(), dir); err != nil {
		return "", err
	}
	s.dirChanged()
	return dir, nil
}

func (s *Server) handleSearch(c echo.Context) error {
	var req SearchRequest
	if err := c.Bind(&req); err != nil {
		return hermes.Errorf(hermes.EINVALID, "invalid JSON body")
	}
	if strings.TrimSpace(req.Text) == "" {
		return hermes.Errorf(hermes.EINVALID, "search text required")
	}

	results, err := s.Search.Search(c.Request().Context(), req.Text, hermes.SearchOptions{Limit: req.Limit})
	if err != nil {
		return err
	}
	if results == nil {
		results = []*hermes.SearchResult{}
	}
	return c.JSON(http.StatusOK, results)
}

func (s *Server) handleAsk(c echo.Context) error {
	if s.Asker == nil {
		return hermes.Errorf(hermes.ENOTIMPLEMENTED, "question answering is not configured")
	}

	var req AskRequest
	if err := c.Bind(&req); err != nil {
		return hermes.Errorf(hermes.EINVALID, "invalid JSON body")
	}

	answer, err := s.Asker.Ask(c.Request().Context(), req.Text)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, &AskResponse{Answer: answer})
}

func (s *Server) handleStatus(c echo.Context) error {
	ctx := c.Request().Context()

	dir, err := s.Settings.DirPath(ctx)
	if err != nil && hermes.ErrorCode(err) != hermes.ENOTFOUND {
		return err
	}
	files, err := s.Files.FindFiles(ctx, hermes.FileFilter{})
	if err != nil {
		return err
	}
	chunks, err := s.Chunks.CountChunks(ctx)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, &StatusResponse{DirPath: dir, Files: len(files), Chunks: chunks})
}
