package response

import (
	"net/http"

	"github.com/gin-gonic/gin"

	appErrors "github.com/noah-isme/school-mgmt-api/pkg/errors"
)

// JSON sends the payload as-is. The API contract predates this server and
// returns bare records rather than an envelope.
func JSON(c *gin.Context, status int, data interface{}) {
	c.Header("Cache-Control", "no-store")
	c.JSON(status, data)
}

// Created responds with HTTP 201 Created.
func Created(c *gin.Context, data interface{}) {
	JSON(c, http.StatusCreated, data)
}

// Message sends a `{message}` body, the shape used for every recoverable
// user-facing condition (duplicate registration, not-found, invalid password).
func Message(c *gin.Context, status int, message string) {
	c.Header("Cache-Control", "no-store")
	c.JSON(status, gin.H{"message": message})
}

// Error converts the error to its observed wire shape. Recoverable conditions
// (<500) reduce to `{message}`; unexpected failures additionally serialize the
// underlying cause.
func Error(c *gin.Context, err error) {
	appErr := appErrors.FromError(err)
	c.Header("Cache-Control", "no-store")
	if appErr.Status >= http.StatusInternalServerError && appErr.Err != nil {
		c.JSON(appErr.Status, gin.H{"message": appErr.Message, "error": appErr.Err.Error()})
		return
	}
	c.JSON(appErr.Status, gin.H{"message": appErr.Message})
}
