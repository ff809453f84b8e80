package http

import (
	"net/http"

	"github.com/MKhiriev/go-net-storage/internal/logger"
	"github.com/MKhiriev/go-net-storage/internal/utils"
	"github.com/MKhiriev/go-net-storage/models"
)

func (h *Handler) readStorageObjects(w http.ResponseWriter, r *http.Request) {
	userID, _ := utils.GetUserIDFromContext(r.Context())

	var req models.ReadStorageObjectsRequest
	if err := utils.DecodeJSON(r, &req); err != nil {
		logger.FromRequest(r).Err(err).Msg("Invalid JSON was passed")
		http.Error(w, "Invalid JSON was passed", http.StatusBadRequest)
		return
	}

	objects, err := h.services.StorageService.ReadObjects(r.Context(), userID, req.ObjectIDs)
	if err != nil {
		writeError(w, r, err, "read storage objects failed")
		return
	}
	if objects == nil {
		objects = []models.StorageObject{}
	}

	utils.WriteJSON(w, models.StorageObjects{Objects: objects}, http.StatusOK)
}

// writeStorageObjects stores the objects of the caller. A failed version
// precondition rejects the whole batch with 409 Conflict.
func (h *Handler) writeStorageObjects(w http.ResponseWriter, r *http.Request) {
	userID, _ := utils.GetUserIDFromContext(r.Context())

	var req models.WriteStorageObjectsRequest
	if err := utils.DecodeJSON(r, &req); err != nil {
		logger.FromRequest(r).Err(err).Msg("Invalid JSON was passed")
		http.Error(w, "Invalid JSON was passed", http.StatusBadRequest)
		return
	}

	acks, err := h.services.StorageService.WriteObjects(r.Context(), userID, req.Objects)
	if err != nil {
		writeError(w, r, err, "write storage objects failed")
		return
	}

	utils.WriteJSON(w, models.StorageObjectAcks{Acks: acks}, http.StatusOK)
}
