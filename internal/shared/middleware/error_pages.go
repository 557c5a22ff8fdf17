package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"library-catalog/internal/shared/response"
)

// ErrorPages is the single dispatcher for failures recorded with c.Error.
// Handlers that already wrote a response are left alone.
func ErrorPages() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 || c.Writer.Written() {
			return
		}

		err := c.Errors.Last().Err
		status := response.StatusFor(err)

		event := log.Warn()
		if status >= 500 {
			event = log.Error()
		}
		event.
			Str("request_id", c.GetString(RequestIDKey)).
			Str("path", c.Request.URL.Path).
			Int("status", status).
			Err(err).
			Msg("Request failed")

		response.ErrorPage(c, status, response.MessageFor(err))
	}
}
