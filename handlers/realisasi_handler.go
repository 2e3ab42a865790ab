package handlers

import (
	"context"
	"net/http"
	"strconv"
	"time"

	middleware "ekinerja/middlewares"
	repository "ekinerja/repositories"
	service "ekinerja/services"
	"ekinerja/utils"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type RealisasiHandler struct {
	service service.RealisasiService
}

func NewRealisasiHandler(service service.RealisasiService) *RealisasiHandler {
	return &RealisasiHandler{
		service: service,
	}
}

func (h *RealisasiHandler) RecordRealization(w http.ResponseWriter, r *http.Request) {
	var req struct {
		SubKegiatanID     string  `json:"sub_kegiatan_id" validate:"required"`
		KodeRekeningID    string  `json:"kode_rekening_id" validate:"required"`
		Month             int     `json:"month" validate:"required,min=1,max=12"`
		Year              int     `json:"year" validate:"required,min=2000,max=2100"`
		RealizationAmount float64 `json:"realization_amount" validate:"min=0"`
	}
	if err := utils.DecodeAndValidate(w, r, &req); err != nil {
		return
	}

	subKegiatanID, err := primitive.ObjectIDFromHex(req.SubKegiatanID)
	if err != nil {
		utils.HandleMessageResponse(w, "Invalid sub_kegiatan_id format", http.StatusBadRequest)
		return
	}
	kodeRekeningID, err := primitive.ObjectIDFromHex(req.KodeRekeningID)
	if err != nil {
		utils.HandleMessageResponse(w, "Invalid kode_rekening_id format", http.StatusBadRequest)
		return
	}

	username := middleware.GetUsernameFromContext(r.Context())

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	realisasi, err := h.service.RecordRealization(ctx, subKegiatanID, kodeRekeningID, req.Month, req.Year, req.RealizationAmount, username)
	if err != nil {
		utils.HandleErrorResponse(w, err)
		return
	}

	utils.HandleDataResponse(w, "Realization recorded successfully", realisasi, http.StatusCreated)
}

// GetRealization lists matching rows plus the aggregate absorption over
// exactly that row set.
func (h *RealisasiHandler) GetRealization(w http.ResponseWriter, r *http.Request) {
	var filter repository.RealisasiFilter

	if raw := r.URL.Query().Get("sub_kegiatan_id"); raw != "" {
		oid, err := primitive.ObjectIDFromHex(raw)
		if err != nil {
			utils.HandleMessageResponse(w, "Invalid sub_kegiatan_id format", http.StatusBadRequest)
			return
		}
		filter.SubKegiatanID = &oid
	}
	if raw := r.URL.Query().Get("kode_rekening_id"); raw != "" {
		oid, err := primitive.ObjectIDFromHex(raw)
		if err != nil {
			utils.HandleMessageResponse(w, "Invalid kode_rekening_id format", http.StatusBadRequest)
			return
		}
		filter.KodeRekeningID = &oid
	}
	if raw := r.URL.Query().Get("month"); raw != "" {
		month, err := strconv.Atoi(raw)
		if err != nil {
			utils.HandleMessageResponse(w, "Invalid month", http.StatusBadRequest)
			return
		}
		filter.Month = &month
	}
	if raw := r.URL.Query().Get("year"); raw != "" {
		year, err := strconv.Atoi(raw)
		if err != nil {
			utils.HandleMessageResponse(w, "Invalid year", http.StatusBadRequest)
			return
		}
		filter.Year = &year
	}

	ctx, cancel := context.WithTimeout(r.Context(), 15*time.Second)
	defer cancel()

	summary, err := h.service.GetRealization(ctx, filter)
	if err != nil {
		utils.HandleErrorResponse(w, err)
		return
	}

	utils.HandleDataResponse(w, "Realization retrieved successfully", summary, http.StatusOK)
}
