package handler

import (
	"net/http"

	"aligniq/internal/catalog"
)

// CatalogHandler serves the static questionnaire
type CatalogHandler struct {
	catalog *catalog.Catalog
}

// NewCatalogHandler creates a new catalog handler
func NewCatalogHandler(cat *catalog.Catalog) *CatalogHandler {
	return &CatalogHandler{catalog: cat}
}

// List handles GET /v1/catalog. Score vectors are excluded from the question
// JSON so clients never see the weighting.
func (h *CatalogHandler) List(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"questions": h.catalog.Questions(),
		"maxima":    h.catalog.Maxima(),
	})
}
