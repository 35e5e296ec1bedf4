package upload

import (
	"net/http"

	"github.com/dmitrymomot/mpjsonapi/core"
)

var (
	ErrFileTooLarge       = core.NewHTTPError(http.StatusRequestEntityTooLarge, "file_too_large", "uploaded file is too large")
	ErrFileTypeNotAllowed = core.NewHTTPError(http.StatusUnsupportedMediaType, "file_type_not_allowed", "uploaded file type is not allowed")
	ErrEmptyFile          = core.NewHTTPError(http.StatusBadRequest, "empty_file", "uploaded file is empty")
)
