// Package uploader turns raw image uploads into stable URL references. The
// content store only ever sees the returned URLs, never file bytes.
package uploader

import (
	"io"
	"path"
	"strings"

	"github.com/pkg/errors"
)

// ErrNotAnImage rejects uploads whose extension is not an allowed image type.
// The gate runs before any bytes reach the backing store.
var ErrNotAnImage = errors.New("only image files are allowed")

var allowedImageExts = []string{".png", ".jpg", ".jpeg", ".gif"}

// ImageStore is the narrow contract the rest of the system depends on.
type ImageStore interface {
	Store(fileName string, body io.Reader) (url string, err error)
}

// IsAllowedImageName reports whether the file name carries an accepted image
// extension.
func IsAllowedImageName(fileName string) bool {
	ext := strings.ToLower(path.Ext(fileName))
	for _, allowed := range allowedImageExts {
		if ext == allowed {
			return true
		}
	}
	return false
}
