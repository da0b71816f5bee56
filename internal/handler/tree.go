package handler

import (
	"log/slog"
	"net/http"

	"docstash/internal/domain/services"
	"docstash/internal/httputil"
)

// TreeHandler handles HTTP requests for tree projections
type TreeHandler struct {
	treeService services.TreeService
	logger      *slog.Logger
}

// NewTreeHandler creates a new tree handler
func NewTreeHandler(treeService services.TreeService, logger *slog.Logger) *TreeHandler {
	return &TreeHandler{
		treeService: treeService,
		logger:      logger,
	}
}

// GetTree returns the caller's full folder/document tree
// GET /api/tree
func (h *TreeHandler) GetTree(w http.ResponseWriter, r *http.Request) {
	ownerID := httputil.GetOwnerID(r)

	tree, err := h.treeService.GetOwnerTree(r.Context(), ownerID)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, tree)
}
