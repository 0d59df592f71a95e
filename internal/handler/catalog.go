package handler

import (
	"net/http"

	"github.com/msomdec/tankermade/internal/domain"
	"github.com/msomdec/tankermade/internal/service"
)

// CatalogHandler serves the shared reference lists.
type CatalogHandler struct {
	catalog *service.CatalogService
}

// NewCatalogHandler creates a new CatalogHandler.
func NewCatalogHandler(catalog *service.CatalogService) *CatalogHandler {
	return &CatalogHandler{catalog: catalog}
}

// HandleList returns every item of a catalog.
// GET /api/catalog/{kind}
func (h *CatalogHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	kind := domain.CatalogKind(r.PathValue("kind"))
	if !kind.Valid() {
		writeError(w, http.StatusNotFound, "Unknown catalog.")
		return
	}

	items, err := h.catalog.List(r.Context(), kind)
	if err != nil {
		writeServiceError(w, "list catalog", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"items": toCatalogItemDTOs(items),
	})
}
