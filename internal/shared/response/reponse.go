package response

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"library-catalog/internal/shared"
)

// ErrorTemplate is the view rendered for every failure that reaches the
// error dispatcher.
const ErrorTemplate = "error.html"

// Page renders a named template with a 200 status.
func Page(c *gin.Context, name string, data gin.H) {
	c.HTML(http.StatusOK, name, data)
}

// Redirect sends the client to location after a successful action.
func Redirect(c *gin.Context, location string) {
	c.Redirect(http.StatusFound, location)
}

// ErrorPage renders the generic error view.
func ErrorPage(c *gin.Context, statusCode int, message string) {
	c.HTML(statusCode, ErrorTemplate, gin.H{
		"Title":   http.StatusText(statusCode),
		"Status":  statusCode,
		"Message": message,
	})
}

// StatusFor maps an error to the HTTP status shown to the user.
func StatusFor(err error) int {
	switch {
	case errors.Is(err, shared.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, shared.ErrConflict):
		return http.StatusConflict
	case errors.Is(err, shared.ErrInvalidInput):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// MessageFor returns the user-facing text for err. Internal failures never
// leak their details.
func MessageFor(err error) string {
	switch StatusFor(err) {
	case http.StatusInternalServerError:
		return "Something went wrong. Please try again later."
	default:
		return capitalize(err.Error())
	}
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
