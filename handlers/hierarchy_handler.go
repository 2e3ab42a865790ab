package handlers

import (
	"context"
	"net/http"
	"time"

	service "ekinerja/services"
	"ekinerja/utils"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type HierarchyHandler struct {
	service service.HierarchyService
}

func NewHierarchyHandler(service service.HierarchyService) *HierarchyHandler {
	return &HierarchyHandler{
		service: service,
	}
}

func (h *HierarchyHandler) GetFullCode(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		utils.HandleMessageResponse(w, "Invalid sub kegiatan ID format", http.StatusBadRequest)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	fullCode, err := h.service.GetFullCode(ctx, objectID)
	if err != nil {
		utils.HandleErrorResponse(w, err)
		return
	}

	responseData := map[string]interface{}{
		"sub_kegiatan_id": objectID.Hex(),
		"full_code":       fullCode,
	}
	utils.HandleDataResponse(w, "Full code resolved successfully", responseData, http.StatusOK)
}

func (h *HierarchyHandler) ListSubKegiatan(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	items, err := h.service.ListSubKegiatan(ctx)
	if err != nil {
		utils.HandleErrorResponse(w, err)
		return
	}

	utils.HandleDataResponse(w, "Sub kegiatan retrieved successfully", items, http.StatusOK)
}
