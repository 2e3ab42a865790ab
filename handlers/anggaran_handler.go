package handlers

import (
	"context"
	"net/http"
	"strconv"
	"time"

	middleware "ekinerja/middlewares"
	service "ekinerja/services"
	"ekinerja/utils"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type AnggaranHandler struct {
	service service.AnggaranService
}

func NewAnggaranHandler(service service.AnggaranService) *AnggaranHandler {
	return &AnggaranHandler{
		service: service,
	}
}

func (h *AnggaranHandler) CreateAllocation(w http.ResponseWriter, r *http.Request) {
	var req struct {
		SubKegiatanID string                    `json:"sub_kegiatan_id" validate:"required"`
		TahunAnggaran int                       `json:"tahun_anggaran" validate:"required,min=2000,max=2100"`
		SumberDanaID  string                    `json:"sumber_dana_id"`
		Allocations   []service.AllocationInput `json:"allocations" validate:"required,min=1,dive"`
	}
	if err := utils.DecodeAndValidate(w, r, &req); err != nil {
		return
	}

	subKegiatanID, err := primitive.ObjectIDFromHex(req.SubKegiatanID)
	if err != nil {
		utils.HandleMessageResponse(w, "Invalid sub_kegiatan_id format", http.StatusBadRequest)
		return
	}

	var sumberDanaID *primitive.ObjectID
	if req.SumberDanaID != "" {
		oid, err := primitive.ObjectIDFromHex(req.SumberDanaID)
		if err != nil {
			utils.HandleMessageResponse(w, "Invalid sumber_dana_id format", http.StatusBadRequest)
			return
		}
		sumberDanaID = &oid
	}

	username := middleware.GetUsernameFromContext(r.Context())

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	anggaran, err := h.service.CreateOrUpdateAllocation(ctx, subKegiatanID, req.TahunAnggaran, sumberDanaID, req.Allocations, username)
	if err != nil {
		utils.HandleErrorResponse(w, err)
		return
	}

	utils.HandleDataResponse(w, "Allocation saved successfully", anggaran, http.StatusCreated)
}

func (h *AnggaranHandler) GetAllocation(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("subKegiatanId")
	subKegiatanID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		utils.HandleMessageResponse(w, "Invalid sub kegiatan ID format", http.StatusBadRequest)
		return
	}

	tahun, err := strconv.Atoi(r.PathValue("tahun"))
	if err != nil {
		utils.HandleMessageResponse(w, "Invalid budget year", http.StatusBadRequest)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	anggaran, err := h.service.GetAllocation(ctx, subKegiatanID, tahun)
	if err != nil {
		utils.HandleErrorResponse(w, err)
		return
	}

	utils.HandleDataResponse(w, "Allocation retrieved successfully", anggaran, http.StatusOK)
}
