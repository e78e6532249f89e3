package server

import (
	"net/http"

	"github.com/devworkshq/devworks/store"
	"github.com/devworkshq/devworks/uploader"
	. "github.com/devworkshq/devworks/utils/log"
	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
)

// writeError is the single place domain errors become status codes, keeping
// the mapping policy uniform across endpoints. Authorization failures are
// always 403, never disguised as 404, so existence information leaks the same
// way everywhere. Unexpected errors are logged with full detail and surface
// as an opaque 500.
func writeError(c *gin.Context, err error) {
	if ve, ok := store.AsValidation(err); ok {
		c.JSON(http.StatusBadRequest, gin.H{"errors": ve.Fields})
		return
	}

	switch {
	case errors.Is(err, uploader.ErrNotAnImage):
		c.JSON(http.StatusBadRequest, gin.H{"errors": []store.FieldError{
			{Field: "images", Message: "only image files are allowed"},
		}})
	case errors.Is(err, store.ErrInvalidCredentials):
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid credentials"})
	case errors.Is(err, store.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"message": "not found"})
	case errors.Is(err, store.ErrUnauthorized):
		c.JSON(http.StatusForbidden, gin.H{"message": "forbidden"})
	case errors.Is(err, store.ErrDuplicateEmail),
		errors.Is(err, store.ErrSelfFollow),
		errors.Is(err, store.ErrAlreadyFollowing),
		errors.Is(err, store.ErrNotFollowing):
		c.JSON(http.StatusConflict, gin.H{"message": err.Error()})
	case errors.Is(err, store.ErrUnavailable):
		c.JSON(http.StatusBadGateway, gin.H{"message": "external service unavailable"})
	default:
		Log.Error("unexpected error: ", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "internal server error"})
	}
}
