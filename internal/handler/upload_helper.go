package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/school-mgmt-api/pkg/storage"
)

// saveOptionalFile stores an uploaded file when the field is present and
// returns its public path. A missing field is not an error.
func saveOptionalFile(c *gin.Context, store *storage.UploadStore, field string) (string, error) {
	if store == nil {
		return "", nil
	}
	file, err := c.FormFile(field)
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) || errors.Is(err, http.ErrNotMultipart) {
			return "", nil
		}
		return "", err
	}
	return store.Save(file)
}

// isMultipart reports whether the request carries form-data, the shape the
// legacy clients use when an image accompanies the payload.
func isMultipart(c *gin.Context) bool {
	return strings.HasPrefix(c.ContentType(), "multipart/form-data")
}
