package http

import (
	"errors"
	"net/http"

	"github.com/fwojciec/hermes"
	"github.com/labstack/echo/v4"
)

// codes maps application error codes to HTTP status codes.
var codes = map[string]int{
	hermes.ECONFLICT:       http.StatusConflict,
	hermes.EFORBIDDEN:      http.StatusForbidden,
	hermes.EINVALID:        http.StatusBadRequest,
	hermes.ENOTFOUND:       http.StatusNotFound,
	hermes.ENOTIMPLEMENTED: http.StatusNotImplemented,
	hermes.EUNAVAILABLE:    http.StatusServiceUnavailable,
	hermes.EINTERNAL:       http.StatusInternalServerError,
}

// ErrorStatusCode returns the HTTP status code for an application error code.
func ErrorStatusCode(code string) int {
	if v, ok := codes[code]; ok {
		return v
	}
	return http.StatusInternalServerError
}

// FromErrorStatusCode returns the application error code for a status code.
func FromErrorStatusCode(code int) string {
	for k, v := range codes {
		if v == code {
			return k
		}
	}
	return hermes.EINTERNAL
}

// ErrorResponse is the JSON body of every failed API request.
type ErrorResponse struct {
	Error string `json:"error"`
}

// handleHTTPError writes application errors as JSON with a status derived
// from the error code. Internal details are logged, never returned.
func (s *Server) handleHTTPError(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	var he *echo.HTTPError
	if errors.As(err, &he) {
		msg := http.StatusText(he.Code)
		if m, ok := he.Message.(string); ok {
			msg = m
		}
		_ = c.JSON(he.Code, &ErrorResponse{Error: msg})
		return
	}

	code, message := hermes.ErrorCode(err), hermes.ErrorMessage(err)
	if code == hermes.EINTERNAL {
		s.Logger.Error("internal error", "method", c.Request().Method, "uri", c.Request().RequestURI, "err", err)
	}
	_ = c.JSON(ErrorStatusCode(code), &ErrorResponse{Error: message})
}
