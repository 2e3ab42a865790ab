package handlers

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	middleware "ekinerja/middlewares"
	"ekinerja/models"
	repository "ekinerja/repositories"
	service "ekinerja/services"
	"ekinerja/utils"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type PencapaianHandler struct {
	service service.PencapaianService
}

func NewPencapaianHandler(service service.PencapaianService) *PencapaianHandler {
	return &PencapaianHandler{
		service: service,
	}
}

type pencapaianRequest struct {
	KinerjaID        string  `json:"kinerja_id" validate:"required"`
	PeriodMonth      int     `json:"period_month" validate:"required,min=1,max=12"`
	PeriodYear       int     `json:"period_year" validate:"required,min=2000,max=2100"`
	AchievementValue float64 `json:"achievement_value"`
	AchievementType  string  `json:"achievement_type" validate:"required"`
	Description      string  `json:"description"`
}

func (req *pencapaianRequest) toInput() (service.CreatePencapaianInput, error) {
	kinerjaID, err := primitive.ObjectIDFromHex(req.KinerjaID)
	if err != nil {
		return service.CreatePencapaianInput{}, err
	}
	return service.CreatePencapaianInput{
		KinerjaID:        kinerjaID,
		PeriodMonth:      req.PeriodMonth,
		PeriodYear:       req.PeriodYear,
		AchievementValue: req.AchievementValue,
		AchievementType:  models.AchievementType(req.AchievementType),
		Description:      req.Description,
	}, nil
}

func (h *PencapaianHandler) CreatePencapaian(w http.ResponseWriter, r *http.Request) {
	var req pencapaianRequest
	if err := utils.DecodeAndValidate(w, r, &req); err != nil {
		return
	}

	input, err := req.toInput()
	if err != nil {
		utils.HandleMessageResponse(w, "Invalid kinerja_id format", http.StatusBadRequest)
		return
	}

	username := middleware.GetUsernameFromContext(r.Context())
	unitID := middleware.GetUnitFromContext(r.Context())

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	pencapaian, err := h.service.CreatePencapaian(ctx, input, unitID, username)
	if err != nil {
		utils.HandleErrorResponse(w, err)
		return
	}

	utils.HandleDataResponse(w, "Pencapaian created successfully", pencapaian, http.StatusCreated)
}

func (h *PencapaianHandler) GetPencapaian(w http.ResponseWriter, r *http.Request) {
	var filter repository.PencapaianFilter

	if raw := r.URL.Query().Get("kinerja_id"); raw != "" {
		oid, err := primitive.ObjectIDFromHex(raw)
		if err != nil {
			utils.HandleMessageResponse(w, "Invalid kinerja_id format", http.StatusBadRequest)
			return
		}
		filter.KinerjaID = &oid
	}
	if raw := r.URL.Query().Get("month"); raw != "" {
		month, err := strconv.Atoi(raw)
		if err != nil {
			utils.HandleMessageResponse(w, "Invalid month", http.StatusBadRequest)
			return
		}
		filter.PeriodMonth = &month
	}
	if raw := r.URL.Query().Get("year"); raw != "" {
		year, err := strconv.Atoi(raw)
		if err != nil {
			utils.HandleMessageResponse(w, "Invalid year", http.StatusBadRequest)
			return
		}
		filter.PeriodYear = &year
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	items, err := h.service.GetPencapaian(ctx, filter)
	if err != nil {
		utils.HandleErrorResponse(w, err)
		return
	}

	utils.HandleDataResponse(w, "Pencapaian retrieved successfully", items, http.StatusOK)
}

func (h *PencapaianHandler) GetPencapaianByID(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		utils.HandleMessageResponse(w, "Invalid pencapaian ID format", http.StatusBadRequest)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	pencapaian, err := h.service.GetPencapaianByID(ctx, objectID)
	if err != nil {
		utils.HandleErrorResponse(w, err)
		return
	}

	utils.HandleDataResponse(w, "Pencapaian retrieved successfully", pencapaian, http.StatusOK)
}

func (h *PencapaianHandler) UpdatePencapaian(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		utils.HandleMessageResponse(w, "Invalid pencapaian ID format", http.StatusBadRequest)
		return
	}

	var req pencapaianRequest
	if err := utils.DecodeAndValidate(w, r, &req); err != nil {
		return
	}

	input, err := req.toInput()
	if err != nil {
		utils.HandleMessageResponse(w, "Invalid kinerja_id format", http.StatusBadRequest)
		return
	}

	username := middleware.GetUsernameFromContext(r.Context())
	unitID := middleware.GetUnitFromContext(r.Context())

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	pencapaian, err := h.service.UpdatePencapaian(ctx, objectID, input, unitID, username)
	if err != nil {
		utils.HandleErrorResponse(w, err)
		return
	}

	utils.HandleDataResponse(w, "Pencapaian updated successfully", pencapaian, http.StatusOK)
}

func (h *PencapaianHandler) DeletePencapaian(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		utils.HandleMessageResponse(w, "Invalid pencapaian ID format", http.StatusBadRequest)
		return
	}

	unitID := middleware.GetUnitFromContext(r.Context())

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	if err := h.service.DeletePencapaian(ctx, objectID, unitID); err != nil {
		utils.HandleErrorResponse(w, err)
		return
	}

	utils.HandleMessageResponse(w, "Pencapaian deleted successfully", http.StatusOK)
}

func (h *PencapaianHandler) AttachEvidence(w http.ResponseWriter, r *http.Request) {
	err := r.ParseMultipartForm(2 << 20)
	if err != nil {
		utils.HandleMessageResponse(w, "Failed to parse multipart form", http.StatusBadRequest)
		return
	}

	id := r.PathValue("id")
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		utils.HandleMessageResponse(w, "Invalid pencapaian ID format", http.StatusBadRequest)
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		utils.HandleMessageResponse(w, "Failed to get file from form", http.StatusBadRequest)
		return
	}
	defer file.Close()

	contentType := header.Header.Get("Content-Type")

	username := middleware.GetUsernameFromContext(r.Context())
	unitID := middleware.GetUnitFromContext(r.Context())

	ctx, cancel := context.WithTimeout(r.Context(), 30*time.Second)
	defer cancel()

	evidence, err := h.service.AttachEvidence(ctx, objectID, header.Filename, header.Size, contentType, file, unitID, username)
	if err != nil {
		utils.HandleErrorResponse(w, err)
		return
	}

	utils.HandleDataResponse(w, "Evidence uploaded successfully", evidence, http.StatusOK)
}

func (h *PencapaianHandler) RemoveEvidence(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		utils.HandleMessageResponse(w, "Invalid pencapaian ID format", http.StatusBadRequest)
		return
	}

	fileID, err := primitive.ObjectIDFromHex(r.PathValue("fileId"))
	if err != nil {
		utils.HandleMessageResponse(w, "Invalid file ID format", http.StatusBadRequest)
		return
	}

	username := middleware.GetUsernameFromContext(r.Context())
	unitID := middleware.GetUnitFromContext(r.Context())

	ctx, cancel := context.WithTimeout(r.Context(), 30*time.Second)
	defer cancel()

	if err := h.service.RemoveEvidence(ctx, objectID, fileID, unitID, username); err != nil {
		utils.HandleErrorResponse(w, err)
		return
	}

	utils.HandleMessageResponse(w, "Evidence removed successfully", http.StatusOK)
}

func (h *PencapaianHandler) DownloadEvidence(w http.ResponseWriter, r *http.Request) {
	fileID, err := primitive.ObjectIDFromHex(r.PathValue("fileId"))
	if err != nil {
		utils.HandleMessageResponse(w, "Invalid file ID format", http.StatusBadRequest)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 30*time.Second)
	defer cancel()

	downloadStream, err := h.service.DownloadEvidence(ctx, fileID)
	if err != nil {
		utils.HandleMessageResponse(w, "File not found", http.StatusNotFound)
		return
	}
	defer downloadStream.Close()

	fileInfo := downloadStream.GetFile()

	contentType := "application/pdf"
	if fileInfo.Metadata != nil && len(fileInfo.Metadata) > 0 {
		var metaMap map[string]interface{}
		if err := bson.Unmarshal(fileInfo.Metadata, &metaMap); err == nil {
			if ctRaw, exists := metaMap["contentType"]; exists {
				if contentTypeStr, ok := ctRaw.(string); ok && contentTypeStr != "" {
					contentType = contentTypeStr
				}
			}
		}
	}

	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=\"%s\"", fileInfo.Name))
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Length", strconv.FormatInt(fileInfo.Length, 10))

	_, err = io.Copy(w, downloadStream)
	if err != nil {
		utils.HandleMessageResponse(w, "Failed to download file", http.StatusInternalServerError)
		return
	}
}
