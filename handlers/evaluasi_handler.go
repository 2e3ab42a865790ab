package handlers

import (
	"context"
	"net/http"
	"time"

	middleware "ekinerja/middlewares"
	"ekinerja/models"
	repository "ekinerja/repositories"
	service "ekinerja/services"
	"ekinerja/utils"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type EvaluasiHandler struct {
	kinerjaService   service.EvaluasiKinerjaService
	realisasiService service.EvaluasiRealisasiService
}

func NewEvaluasiHandler(kinerjaService service.EvaluasiKinerjaService, realisasiService service.EvaluasiRealisasiService) *EvaluasiHandler {
	return &EvaluasiHandler{
		kinerjaService:   kinerjaService,
		realisasiService: realisasiService,
	}
}

func (h *EvaluasiHandler) CreateEvaluasiKinerja(w http.ResponseWriter, r *http.Request) {
	var req struct {
		PencapaianID       string                `json:"pencapaian_id" validate:"required"`
		AchievementScore   *float64              `json:"achievement_score" validate:"required"`
		DocumentationScore *float64              `json:"documentation_score" validate:"required"`
		Notes              string                `json:"notes"`
		Strengths          []string              `json:"strengths"`
		Improvements       []string              `json:"improvements"`
		Recommendations    []string              `json:"recommendations"`
		CriteriaChecklist  []models.CriteriaItem `json:"criteria_checklist"`
	}
	if err := utils.DecodeAndValidate(w, r, &req); err != nil {
		return
	}

	pencapaianID, err := primitive.ObjectIDFromHex(req.PencapaianID)
	if err != nil {
		utils.HandleMessageResponse(w, "Invalid pencapaian_id format", http.StatusBadRequest)
		return
	}

	username := middleware.GetUsernameFromContext(r.Context())

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	evaluasi, err := h.kinerjaService.Create(ctx, service.CreateEvaluasiKinerjaInput{
		PencapaianID:       pencapaianID,
		AchievementScore:   *req.AchievementScore,
		DocumentationScore: *req.DocumentationScore,
		Notes:              req.Notes,
		Strengths:          req.Strengths,
		Improvements:       req.Improvements,
		Recommendations:    req.Recommendations,
		CriteriaChecklist:  req.CriteriaChecklist,
	}, username)
	if err != nil {
		utils.HandleErrorResponse(w, err)
		return
	}

	utils.HandleDataResponse(w, "Evaluasi kinerja created successfully", evaluasi, http.StatusCreated)
}

func (h *EvaluasiHandler) GetEvaluasiKinerja(w http.ResponseWriter, r *http.Request) {
	var filter repository.EvaluasiKinerjaFilter

	if raw := r.URL.Query().Get("pencapaian_id"); raw != "" {
		oid, err := primitive.ObjectIDFromHex(raw)
		if err != nil {
			utils.HandleMessageResponse(w, "Invalid pencapaian_id format", http.StatusBadRequest)
			return
		}
		filter.PencapaianID = &oid
	}
	if raw := r.URL.Query().Get("kinerja_id"); raw != "" {
		oid, err := primitive.ObjectIDFromHex(raw)
		if err != nil {
			utils.HandleMessageResponse(w, "Invalid kinerja_id format", http.StatusBadRequest)
			return
		}
		filter.KinerjaID = &oid
	}
	if raw := r.URL.Query().Get("status"); raw != "" {
		status := models.EvaluationStatus(raw)
		if !status.Valid() {
			utils.HandleMessageResponse(w, "Invalid evaluation status", http.StatusBadRequest)
			return
		}
		filter.Status = &status
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	items, err := h.kinerjaService.List(ctx, filter)
	if err != nil {
		utils.HandleErrorResponse(w, err)
		return
	}

	utils.HandleDataResponse(w, "Evaluasi kinerja retrieved successfully", items, http.StatusOK)
}

func (h *EvaluasiHandler) GetEvaluasiKinerjaByID(w http.ResponseWriter, r *http.Request) {
	objectID, err := primitive.ObjectIDFromHex(r.PathValue("id"))
	if err != nil {
		utils.HandleMessageResponse(w, "Invalid evaluasi ID format", http.StatusBadRequest)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	evaluasi, err := h.kinerjaService.GetByID(ctx, objectID)
	if err != nil {
		utils.HandleErrorResponse(w, err)
		return
	}

	utils.HandleDataResponse(w, "Evaluasi kinerja retrieved successfully", evaluasi, http.StatusOK)
}

func (h *EvaluasiHandler) BeginReview(w http.ResponseWriter, r *http.Request) {
	h.runTransition(w, r, func(ctx context.Context, id primitive.ObjectID, actor string) (*models.EvaluasiKinerja, error) {
		return h.kinerjaService.BeginReview(ctx, id, actor)
	}, "Evaluasi kinerja moved to review")
}

func (h *EvaluasiHandler) Approve(w http.ResponseWriter, r *http.Request) {
	objectID, err := primitive.ObjectIDFromHex(r.PathValue("id"))
	if err != nil {
		utils.HandleMessageResponse(w, "Invalid evaluasi ID format", http.StatusBadRequest)
		return
	}

	var req struct {
		Notes string `json:"notes"`
	}
	if err := utils.DecodeAndValidate(w, r, &req); err != nil {
		return
	}

	username := middleware.GetUsernameFromContext(r.Context())

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	evaluasi, err := h.kinerjaService.Approve(ctx, objectID, req.Notes, username)
	if err != nil {
		utils.HandleErrorResponse(w, err)
		return
	}

	utils.HandleDataResponse(w, "Evaluasi kinerja approved", evaluasi, http.StatusOK)
}

func (h *EvaluasiHandler) Reject(w http.ResponseWriter, r *http.Request) {
	objectID, err := primitive.ObjectIDFromHex(r.PathValue("id"))
	if err != nil {
		utils.HandleMessageResponse(w, "Invalid evaluasi ID format", http.StatusBadRequest)
		return
	}

	var req struct {
		Reason string `json:"reason" validate:"required"`
	}
	if err := utils.DecodeAndValidate(w, r, &req); err != nil {
		return
	}

	username := middleware.GetUsernameFromContext(r.Context())

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	evaluasi, err := h.kinerjaService.Reject(ctx, objectID, req.Reason, username)
	if err != nil {
		utils.HandleErrorResponse(w, err)
		return
	}

	utils.HandleDataResponse(w, "Evaluasi kinerja rejected", evaluasi, http.StatusOK)
}

func (h *EvaluasiHandler) RequestRevision(w http.ResponseWriter, r *http.Request) {
	objectID, err := primitive.ObjectIDFromHex(r.PathValue("id"))
	if err != nil {
		utils.HandleMessageResponse(w, "Invalid evaluasi ID format", http.StatusBadRequest)
		return
	}

	var req struct {
		Requirements []string `json:"requirements" validate:"required,min=1"`
		Notes        string   `json:"notes"`
	}
	if err := utils.DecodeAndValidate(w, r, &req); err != nil {
		return
	}

	username := middleware.GetUsernameFromContext(r.Context())

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	evaluasi, err := h.kinerjaService.RequestRevision(ctx, objectID, req.Requirements, req.Notes, username)
	if err != nil {
		utils.HandleErrorResponse(w, err)
		return
	}

	utils.HandleDataResponse(w, "Revision requested", evaluasi, http.StatusOK)
}

func (h *EvaluasiHandler) Resubmit(w http.ResponseWriter, r *http.Request) {
	h.runTransition(w, r, func(ctx context.Context, id primitive.ObjectID, actor string) (*models.EvaluasiKinerja, error) {
		return h.kinerjaService.Resubmit(ctx, id, actor)
	}, "Evaluasi kinerja resubmitted for review")
}

func (h *EvaluasiHandler) runTransition(w http.ResponseWriter, r *http.Request, fn func(context.Context, primitive.ObjectID, string) (*models.EvaluasiKinerja, error), message string) {
	objectID, err := primitive.ObjectIDFromHex(r.PathValue("id"))
	if err != nil {
		utils.HandleMessageResponse(w, "Invalid evaluasi ID format", http.StatusBadRequest)
		return
	}

	username := middleware.GetUsernameFromContext(r.Context())

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	evaluasi, err := fn(ctx, objectID, username)
	if err != nil {
		utils.HandleErrorResponse(w, err)
		return
	}

	utils.HandleDataResponse(w, message, evaluasi, http.StatusOK)
}

type evaluasiRealisasiRequest struct {
	EvaluationStatus         string   `json:"evaluation_status" validate:"required"`
	SpeedOfExecution         string   `json:"speed_of_execution" validate:"required"`
	FundAbsorptionEfficiency string   `json:"fund_absorption_efficiency" validate:"required"`
	ProcurementCapability    string   `json:"procurement_capability" validate:"required"`
	Constraints              []string `json:"constraints" validate:"required,min=1"`
	Problems                 []string `json:"problems" validate:"required,min=1"`
	Solutions                []string `json:"solutions" validate:"required,min=1"`
	Recommendations          []string `json:"recommendations" validate:"required,min=1"`
	GeneralNotes             string   `json:"general_notes"`
}

func (req *evaluasiRealisasiRequest) toInput() service.EvaluasiRealisasiInput {
	return service.EvaluasiRealisasiInput{
		EvaluationStatus:         models.RealizationRating(req.EvaluationStatus),
		SpeedOfExecution:         models.RealizationRating(req.SpeedOfExecution),
		FundAbsorptionEfficiency: models.RealizationRating(req.FundAbsorptionEfficiency),
		ProcurementCapability:    models.RealizationRating(req.ProcurementCapability),
		Constraints:              req.Constraints,
		Problems:                 req.Problems,
		Solutions:                req.Solutions,
		Recommendations:          req.Recommendations,
		GeneralNotes:             req.GeneralNotes,
	}
}

func (h *EvaluasiHandler) CreateEvaluasiRealisasi(w http.ResponseWriter, r *http.Request) {
	var req struct {
		RealisasiID string `json:"realisasi_id" validate:"required"`
		evaluasiRealisasiRequest
	}
	if err := utils.DecodeAndValidate(w, r, &req); err != nil {
		return
	}

	realisasiID, err := primitive.ObjectIDFromHex(req.RealisasiID)
	if err != nil {
		utils.HandleMessageResponse(w, "Invalid realisasi_id format", http.StatusBadRequest)
		return
	}

	username := middleware.GetUsernameFromContext(r.Context())

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	evaluasi, err := h.realisasiService.Create(ctx, realisasiID, req.toInput(), username)
	if err != nil {
		utils.HandleErrorResponse(w, err)
		return
	}

	utils.HandleDataResponse(w, "Evaluasi realisasi created successfully", evaluasi, http.StatusCreated)
}

func (h *EvaluasiHandler) UpdateEvaluasiRealisasi(w http.ResponseWriter, r *http.Request) {
	objectID, err := primitive.ObjectIDFromHex(r.PathValue("id"))
	if err != nil {
		utils.HandleMessageResponse(w, "Invalid evaluasi ID format", http.StatusBadRequest)
		return
	}

	var req evaluasiRealisasiRequest
	if err := utils.DecodeAndValidate(w, r, &req); err != nil {
		return
	}

	username := middleware.GetUsernameFromContext(r.Context())

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	evaluasi, err := h.realisasiService.Update(ctx, objectID, req.toInput(), username)
	if err != nil {
		utils.HandleErrorResponse(w, err)
		return
	}

	utils.HandleDataResponse(w, "Evaluasi realisasi updated successfully", evaluasi, http.StatusOK)
}

func (h *EvaluasiHandler) GetEvaluasiRealisasi(w http.ResponseWriter, r *http.Request) {
	var filter repository.EvaluasiRealisasiFilter

	if raw := r.URL.Query().Get("realisasi_id"); raw != "" {
		oid, err := primitive.ObjectIDFromHex(raw)
		if err != nil {
			utils.HandleMessageResponse(w, "Invalid realisasi_id format", http.StatusBadRequest)
			return
		}
		filter.RealisasiID = &oid
	}
	if raw := r.URL.Query().Get("status"); raw != "" {
		status := models.RealizationRating(raw)
		if !status.Valid() {
			utils.HandleMessageResponse(w, "Invalid evaluation status", http.StatusBadRequest)
			return
		}
		filter.Status = &status
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	items, err := h.realisasiService.List(ctx, filter)
	if err != nil {
		utils.HandleErrorResponse(w, err)
		return
	}

	utils.HandleDataResponse(w, "Evaluasi realisasi retrieved successfully", items, http.StatusOK)
}

func (h *EvaluasiHandler) GetEvaluasiRealisasiByID(w http.ResponseWriter, r *http.Request) {
	objectID, err := primitive.ObjectIDFromHex(r.PathValue("id"))
	if err != nil {
		utils.HandleMessageResponse(w, "Invalid evaluasi ID format", http.StatusBadRequest)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	evaluasi, err := h.realisasiService.GetByID(ctx, objectID)
	if err != nil {
		utils.HandleErrorResponse(w, err)
		return
	}

	utils.HandleDataResponse(w, "Evaluasi realisasi retrieved successfully", evaluasi, http.StatusOK)
}
