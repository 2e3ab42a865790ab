package handlers

import (
	"context"
	"net/http"
	"strconv"
	"time"

	middleware "ekinerja/middlewares"
	"ekinerja/models"
	service "ekinerja/services"
	"ekinerja/utils"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type KinerjaHandler struct {
	service service.KinerjaService
}

func NewKinerjaHandler(service service.KinerjaService) *KinerjaHandler {
	return &KinerjaHandler{
		service: service,
	}
}

func (h *KinerjaHandler) CreateKinerja(w http.ResponseWriter, r *http.Request) {
	var req struct {
		AnggaranID           string    `json:"anggaran_id" validate:"required"`
		SubPerangkatDaerahID string    `json:"sub_perangkat_daerah_id" validate:"required"`
		Indikator            string    `json:"indikator" validate:"required"`
		TargetValue          float64   `json:"target_value" validate:"required,gt=0"`
		TargetDate           time.Time `json:"target_date" validate:"required"`
		Priority             string    `json:"priority" validate:"required"`
	}
	if err := utils.DecodeAndValidate(w, r, &req); err != nil {
		return
	}

	anggaranID, err := primitive.ObjectIDFromHex(req.AnggaranID)
	if err != nil {
		utils.HandleMessageResponse(w, "Invalid anggaran_id format", http.StatusBadRequest)
		return
	}
	unitID, err := primitive.ObjectIDFromHex(req.SubPerangkatDaerahID)
	if err != nil {
		utils.HandleMessageResponse(w, "Invalid sub_perangkat_daerah_id format", http.StatusBadRequest)
		return
	}

	username := middleware.GetUsernameFromContext(r.Context())

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	kinerja, err := h.service.CreateKinerja(ctx, service.CreateKinerjaInput{
		AnggaranID:           anggaranID,
		SubPerangkatDaerahID: unitID,
		Indikator:            req.Indikator,
		TargetValue:          req.TargetValue,
		TargetDate:           req.TargetDate,
		Priority:             models.Priority(req.Priority),
	}, username)
	if err != nil {
		utils.HandleErrorResponse(w, err)
		return
	}

	utils.HandleDataResponse(w, "Kinerja created successfully", kinerja, http.StatusCreated)
}

// GetKinerja lists targets for a unit and year. The unit defaults to the
// acting unit from the token; admins can pass unit_id explicitly.
func (h *KinerjaHandler) GetKinerja(w http.ResponseWriter, r *http.Request) {
	unitID := middleware.GetUnitFromContext(r.Context())
	if raw := r.URL.Query().Get("unit_id"); raw != "" {
		oid, err := primitive.ObjectIDFromHex(raw)
		if err != nil {
			utils.HandleMessageResponse(w, "Invalid unit_id format", http.StatusBadRequest)
			return
		}
		unitID = oid
	}
	if unitID.IsZero() {
		utils.HandleMessageResponse(w, "unit_id is required", http.StatusBadRequest)
		return
	}

	tahun, err := strconv.Atoi(r.URL.Query().Get("tahun"))
	if err != nil {
		utils.HandleMessageResponse(w, "Invalid budget year", http.StatusBadRequest)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	items, err := h.service.GetKinerja(ctx, unitID, tahun)
	if err != nil {
		utils.HandleErrorResponse(w, err)
		return
	}

	utils.HandleDataResponse(w, "Kinerja retrieved successfully", items, http.StatusOK)
}

// EligibleAnggaran lists the year's allocations still open for a target.
func (h *KinerjaHandler) EligibleAnggaran(w http.ResponseWriter, r *http.Request) {
	unitID := middleware.GetUnitFromContext(r.Context())
	if raw := r.URL.Query().Get("unit_id"); raw != "" {
		oid, err := primitive.ObjectIDFromHex(raw)
		if err != nil {
			utils.HandleMessageResponse(w, "Invalid unit_id format", http.StatusBadRequest)
			return
		}
		unitID = oid
	}
	if unitID.IsZero() {
		utils.HandleMessageResponse(w, "unit_id is required", http.StatusBadRequest)
		return
	}

	tahun, err := strconv.Atoi(r.URL.Query().Get("tahun"))
	if err != nil {
		utils.HandleMessageResponse(w, "Invalid budget year", http.StatusBadRequest)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	items, err := h.service.EligibleAnggaran(ctx, unitID, tahun)
	if err != nil {
		utils.HandleErrorResponse(w, err)
		return
	}

	utils.HandleDataResponse(w, "Eligible anggaran retrieved successfully", items, http.StatusOK)
}

func (h *KinerjaHandler) UpdateActual(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		utils.HandleMessageResponse(w, "Invalid kinerja ID format", http.StatusBadRequest)
		return
	}

	var req struct {
		ActualValue float64 `json:"actual_value" validate:"min=0"`
		Status      string  `json:"status"`
	}
	if err := utils.DecodeAndValidate(w, r, &req); err != nil {
		return
	}

	var status *models.KinerjaStatus
	if req.Status != "" {
		s := models.KinerjaStatus(req.Status)
		status = &s
	}

	username := middleware.GetUsernameFromContext(r.Context())
	unitID := middleware.GetUnitFromContext(r.Context())

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	kinerja, err := h.service.UpdateActual(ctx, objectID, req.ActualValue, status, unitID, username)
	if err != nil {
		utils.HandleErrorResponse(w, err)
		return
	}

	utils.HandleDataResponse(w, "Kinerja updated successfully", kinerja, http.StatusOK)
}
