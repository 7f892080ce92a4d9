package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/guttosm/dbostatement/internal/domain/dto"
	"github.com/guttosm/dbostatement/internal/logger"
)

// ErrorHandler writes a 500 dto.ErrorResponse for errors a handler attached
// with c.Error but did not answer itself.
func ErrorHandler(c *gin.Context) {
	c.Next()

	if len(c.Errors) == 0 || c.Writer.Written() {
		return
	}

	err := c.Errors.Last().Err
	logger.Component("http").Error().
		Str("request_id", c.GetString(RequestIDKey)).
		Err(err).
		Msg("unhandled request error")
	c.JSON(http.StatusInternalServerError, dto.NewErrorResponse("Internal server error", err))
}

// AbortWithError stops the chain and answers with status and a
// dto.ErrorResponse built from msg and err.
func AbortWithError(c *gin.Context, status int, msg string, err error) {
	if err != nil {
		_ = c.Error(err)
	}
	c.AbortWithStatusJSON(status, dto.NewErrorResponse(msg, err))
}

// BodyLimit caps the request body at maxBytes; reads past the limit fail with
// *http.MaxBytesError.
func BodyLimit(maxBytes int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		if maxBytes > 0 {
			c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
		}
		c.Next()
	}
}
