package api

import (
	"errors"
	"log/slog"
	"net/http"

	"trznica/internal/catalog"
	"trznica/internal/model"
)

// ItemsHandler handles the listing endpoints.
type ItemsHandler struct {
	Catalog *catalog.Catalog
}

// List handles GET /api/items. It returns the full catalog newest first;
// all filtering and sorting happens client-side.
func (h *ItemsHandler) List(w http.ResponseWriter, r *http.Request) {
	items, err := h.Catalog.Items(r.Context())
	if err != nil {
		jsonError(w, http.StatusInternalServerError, "failed to list items")
		return
	}
	if items == nil {
		items = []model.Item{}
	}
	jsonResponse(w, http.StatusOK, items)
}

// Create handles POST /api/items. Validation failures return the specific
// rule message; nothing is stored on rejection.
func (h *ItemsHandler) Create(w http.ResponseWriter, r *http.Request) {
	var sub model.Submission
	if err := decodeJSON(w, r, &sub); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid JSON data")
		return
	}

	if err := sub.Validate(); err != nil {
		var verr *model.ValidationError
		if errors.As(err, &verr) {
			jsonError(w, http.StatusBadRequest, verr.Message)
		} else {
			jsonError(w, http.StatusBadRequest, "missing required fields")
		}
		return
	}

	item, err := h.Catalog.Insert(r.Context(), sub)
	if err != nil {
		slog.Error("inserting item", "error", err)
		jsonError(w, http.StatusInternalServerError, "failed to create item")
		return
	}

	jsonResponse(w, http.StatusCreated, item)
}
