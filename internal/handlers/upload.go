package handlers

import (
	"errors"
	"io"
	"net/http"

	"github.com/SscSPs/easyledger/internal/apperrors"
	"github.com/SscSPs/easyledger/internal/core/domain"
	"github.com/gin-gonic/gin"
)

// uploadedFile is a multipart file read into memory.
type uploadedFile struct {
	Name        string
	ContentType string
	Data        []byte
}

// readUploadedFile reads the "file" part of a multipart request. Type and size
// are checked against the declared header before the body is read.
func readUploadedFile(c *gin.Context, maxBytes int64) (*uploadedFile, error) {
	fh, err := c.FormFile("file")
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) || errors.Is(err, http.ErrNotMultipart) {
			return nil, apperrors.NewBadRequestError("No file provided")
		}
		return nil, apperrors.NewBadRequestError("Invalid upload: " + err.Error())
	}

	contentType := fh.Header.Get("Content-Type")
	if _, _, err := domain.ClassifyUpload(contentType, fh.Size, maxBytes); err != nil {
		return nil, err
	}

	f, err := fh.Open()
	if err != nil {
		return nil, apperrors.NewBadRequestError("Could not read uploaded file")
	}
	defer f.Close()

	limit := maxBytes
	if limit <= 0 {
		limit = domain.MaxUploadBytes
	}
	data, err := io.ReadAll(io.LimitReader(f, limit+1))
	if err != nil {
		return nil, apperrors.NewBadRequestError("Could not read uploaded file")
	}
	return &uploadedFile{Name: fh.Filename, ContentType: contentType, Data: data}, nil
}
