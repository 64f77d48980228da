package router

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/artofest/artofest/pkg/logger"
	"github.com/gin-gonic/gin"
)

var ErrAppStateNotInitialized = errors.New("application state not initialized")

// ServerErrorMessage is the only failure detail clients ever see.
const ServerErrorMessage = "Server Error"

// ErrorResponse is the body of every failed API request.
type ErrorResponse struct {
	Message string `json:"message"`
}

// RespondServerError logs err with the request logger and answers a flat 500.
// The cause never reaches the client.
func RespondServerError(c *gin.Context, err error) {
	logger.FromContext(c.Request.Context()).Error("Request failed",
		"method", c.Request.Method,
		"path", c.FullPath(),
		"error", err,
	)
	_ = c.Error(err)
	c.AbortWithStatusJSON(http.StatusInternalServerError, ErrorResponse{Message: ServerErrorMessage})
}

// Recovery turns a panic in any later handler into the flat 500 body.
func Recovery() gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, rec any) {
		RespondServerError(c, fmt.Errorf("panic: %v", rec))
	})
}

// ErrorHandler turns errors left on the context into the flat 500 body when
// no response was written.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()
		if c.Writer.Written() || len(c.Errors) == 0 {
			return
		}
		RespondServerError(c, c.Errors.Last().Err)
	}
}
