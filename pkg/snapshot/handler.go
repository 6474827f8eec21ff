package snapshot

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/busanbiff/tripbudget/internal/rest"
	log "github.com/sirupsen/logrus"
)

type Handler struct {
	service Service
}

func NewSnapshotHandler(service Service) *Handler {
	return &Handler{service: service}
}

// Export godoc
// @Summary Export budget plan and expenses
// @Tags Snapshot
// @Produce json
// @Success 200 {object} Snapshot
// @Failure 403 {string} string "User not found"
// @Router /api/snapshot [get]
// @Security XUserId
func (h *Handler) Export(w http.ResponseWriter, r *http.Request) {
	log.Debug("Exporting snapshot")
	snapshot, err := h.service.Export(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	rest.WriteJSON(w, http.StatusOK, snapshot)
}

// Import godoc
// @Summary Import budget plan and expenses
// @Description Replaces the stored plan and ledger with the given snapshot
// @Tags Snapshot
// @Accept json
// @Param snapshot body Snapshot true "Snapshot"
// @Success 204 "No Content"
// @Failure 400 {object} rest.ErrorResponse "Invalid snapshot"
// @Failure 403 {string} string "User not found"
// @Router /api/snapshot [put]
// @Security XUserId
func (h *Handler) Import(w http.ResponseWriter, r *http.Request) {
	log.Debug("Importing snapshot")
	var snapshot Snapshot
	if err := json.NewDecoder(r.Body).Decode(&snapshot); err != nil {
		rest.WriteError(w, http.StatusBadRequest, "Invalid request body format", err.Error())
		return
	}
	if err := h.service.Import(r.Context(), snapshot); err != nil {
		if errors.Is(err, ErrInvalidSnapshot) {
			rest.WriteError(w, http.StatusBadRequest, "Invalid snapshot", err.Error())
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
