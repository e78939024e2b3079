package handlers

import (
	"os"
	"path/filepath"

	"github.com/gin-gonic/gin"

	"github.com/P0llen/speaker-detector/internal/api/errors"
)

const uploadField = "file"

// saveUpload spools the request's audio file into a scratch file and returns
// its path with a cleanup func. Callers must invoke cleanup on every path.
func saveUpload(c *gin.Context) (string, func(), error) {
	fileHeader, err := c.FormFile(uploadField)
	if err != nil {
		return "", nil, errors.NewBadRequestError("missing 'file' form field")
	}

	tmpDir, err := os.MkdirTemp("", "upload-")
	if err != nil {
		return "", nil, errors.NewInternalError("could not spool upload")
	}
	cleanup := func() { os.RemoveAll(tmpDir) }

	path := filepath.Join(tmpDir, filepath.Base(fileHeader.Filename))
	if err := c.SaveUploadedFile(fileHeader, path); err != nil {
		cleanup()
		return "", nil, errors.NewInternalError("could not spool upload")
	}
	return path, cleanup, nil
}

func apiBadFormat() error {
	return errors.NewBadRequestError("format must be json or xlsx")
}
