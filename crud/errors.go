package crud

import (
	"net/http"

	"github.com/dmitrymomot/mpjsonapi/core"
)

var (
	ErrEntityNotFound   = core.NewHTTPError(http.StatusNotFound, "entity_not_found", "entity not found")
	ErrEntityExists     = core.NewHTTPError(http.StatusConflict, "entity_exists", "entity with this id already exists")
	ErrDocumentRequired = core.NewHTTPError(http.StatusBadRequest, "document_required", "request must carry a resource document")
)
