package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"ekinerja/apperrors"
	"ekinerja/models"
	repository "ekinerja/repositories"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/gridfs"
)

const (
	evidenceContentType = "application/pdf"
	evidenceMaxSize     = 1 << 20 // 1 MB
)

// Notifier dispatches an outbound notification. Implementations must not
// block request handling; failures are logged, never surfaced.
type Notifier interface {
	Notify(subject, body string)
}

// CreatePencapaianInput carries a unit's periodic achievement report.
type CreatePencapaianInput struct {
	KinerjaID        primitive.ObjectID
	PeriodMonth      int
	PeriodYear       int
	AchievementValue float64
	AchievementType  models.AchievementType
	Description      string
}

type PencapaianService interface {
	CreatePencapaian(ctx context.Context, input CreatePencapaianInput, unitID primitive.ObjectID, actor string) (*models.Pencapaian, error)
	GetPencapaian(ctx context.Context, filter repository.PencapaianFilter) ([]models.Pencapaian, error)
	GetPencapaianByID(ctx context.Context, id primitive.ObjectID) (*models.Pencapaian, error)
	UpdatePencapaian(ctx context.Context, id primitive.ObjectID, input CreatePencapaianInput, unitID primitive.ObjectID, actor string) (*models.Pencapaian, error)
	DeletePencapaian(ctx context.Context, id primitive.ObjectID, unitID primitive.ObjectID) error
	AttachEvidence(ctx context.Context, id primitive.ObjectID, originalName string, size int64, contentType string, data io.Reader, unitID primitive.ObjectID, actor string) (*models.EvidenceFile, error)
	RemoveEvidence(ctx context.Context, id, fileID primitive.ObjectID, unitID primitive.ObjectID, actor string) error
	DownloadEvidence(ctx context.Context, fileID primitive.ObjectID) (*gridfs.DownloadStream, error)
}

type pencapaianService struct {
	repo     repository.PencapaianRepository
	kinerja  repository.KinerjaRepository
	notifier Notifier
}

func NewPencapaianService(repo repository.PencapaianRepository, kinerja repository.KinerjaRepository, notifier Notifier) PencapaianService {
	return &pencapaianService{
		repo:     repo,
		kinerja:  kinerja,
		notifier: notifier,
	}
}

// CreatePencapaian records a report against the acting unit's own target.
// The percentage is computed only for numeric reports. Duplicate reports
// for the same period are allowed.
func (s *pencapaianService) CreatePencapaian(ctx context.Context, input CreatePencapaianInput, unitID primitive.ObjectID, actor string) (*models.Pencapaian, error) {
	kinerja, err := s.ownedKinerja(ctx, input.KinerjaID, unitID)
	if err != nil {
		return nil, err
	}
	if err := validatePencapaianInput(input); err != nil {
		return nil, err
	}

	now := time.Now()
	pencapaian := &models.Pencapaian{
		KinerjaID:        kinerja.ID,
		PeriodMonth:      input.PeriodMonth,
		PeriodYear:       input.PeriodYear,
		AchievementValue: input.AchievementValue,
		AchievementType:  input.AchievementType,
		Description:      input.Description,
		EvidenceFiles:    []models.EvidenceFile{},
		Metadata: models.Metadata{
			CreatedBy: actor,
			UpdatedBy: actor,
			CreatedAt: now,
			UpdatedAt: now,
		},
	}
	if input.AchievementType == models.AchievementNumeric {
		pencapaian.AchievementPercentage = AchievementPercentage(kinerja.TargetValue, input.AchievementValue)
	}

	if err := s.repo.Create(ctx, pencapaian); err != nil {
		return nil, err
	}

	if s.notifier != nil {
		s.notifier.Notify(
			"Laporan pencapaian baru",
			fmt.Sprintf("Pencapaian %s dilaporkan untuk kinerja %s periode %d/%d",
				pencapaian.ID.Hex(), kinerja.ID.Hex(), input.PeriodMonth, input.PeriodYear),
		)
	}

	return pencapaian, nil
}

func (s *pencapaianService) GetPencapaian(ctx context.Context, filter repository.PencapaianFilter) ([]models.Pencapaian, error) {
	return s.repo.List(ctx, filter)
}

func (s *pencapaianService) GetPencapaianByID(ctx context.Context, id primitive.ObjectID) (*models.Pencapaian, error) {
	pencapaian, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperrors.NotFoundf("pencapaian %s not found", id.Hex())
		}
		return nil, err
	}
	return pencapaian, nil
}

func (s *pencapaianService) UpdatePencapaian(ctx context.Context, id primitive.ObjectID, input CreatePencapaianInput, unitID primitive.ObjectID, actor string) (*models.Pencapaian, error) {
	existing, err := s.GetPencapaianByID(ctx, id)
	if err != nil {
		return nil, err
	}

	kinerja, err := s.ownedKinerja(ctx, existing.KinerjaID, unitID)
	if err != nil {
		return nil, err
	}
	if err := validatePencapaianInput(input); err != nil {
		return nil, err
	}

	existing.PeriodMonth = input.PeriodMonth
	existing.PeriodYear = input.PeriodYear
	existing.AchievementValue = input.AchievementValue
	existing.AchievementType = input.AchievementType
	existing.Description = input.Description
	existing.AchievementPercentage = 0
	if input.AchievementType == models.AchievementNumeric {
		existing.AchievementPercentage = AchievementPercentage(kinerja.TargetValue, input.AchievementValue)
	}
	existing.Metadata.UpdatedBy = actor
	existing.Metadata.UpdatedAt = time.Now()

	if err := s.repo.Update(ctx, id, existing); err != nil {
		return nil, err
	}
	return existing, nil
}

// DeletePencapaian removes the report and its evidence blobs. Blob deletion
// failures after the document is gone are not fatal; orphaned files are
// only logged by the repository caller.
func (s *pencapaianService) DeletePencapaian(ctx context.Context, id primitive.ObjectID, unitID primitive.ObjectID) error {
	existing, err := s.GetPencapaianByID(ctx, id)
	if err != nil {
		return err
	}
	if _, err := s.ownedKinerja(ctx, existing.KinerjaID, unitID); err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	for _, evidence := range existing.EvidenceFiles {
		if err := s.repo.DeleteFile(ctx, evidence.FileID); err != nil {
			fmt.Printf("Failed to delete evidence file %s: %v\n", evidence.FileID.Hex(), err)
		}
	}
	return nil
}

// AttachEvidence validates, uploads to GridFS under a generated name, then
// appends the embedded entry. The uploaded blob is removed again when the
// document update fails, so no orphan is left behind.
func (s *pencapaianService) AttachEvidence(ctx context.Context, id primitive.ObjectID, originalName string, size int64, contentType string, data io.Reader, unitID primitive.ObjectID, actor string) (*models.EvidenceFile, error) {
	existing, err := s.GetPencapaianByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if _, err := s.ownedKinerja(ctx, existing.KinerjaID, unitID); err != nil {
		return nil, err
	}

	if err := ValidateEvidence(originalName, size, contentType); err != nil {
		return nil, err
	}

	storedName := uuid.New().String() + ".pdf"
	fileID, err := s.repo.UploadFile(ctx, storedName, data, actor, contentType)
	if err != nil {
		return nil, err
	}

	evidence := models.EvidenceFile{
		FileID:       fileID,
		Filename:     storedName,
		OriginalName: originalName,
		FileSize:     size,
		UploadedAt:   time.Now(),
	}

	if err := s.repo.AddEvidence(ctx, id, evidence, actor); err != nil {
		// CLEANUP: the document update failed, drop the uploaded blob.
		if cleanupErr := s.repo.DeleteFile(context.Background(), fileID); cleanupErr != nil {
			fmt.Printf("Failed to cleanup uploaded file %s: %v\n", fileID.Hex(), cleanupErr)
		}
		return nil, err
	}

	return &evidence, nil
}

func (s *pencapaianService) RemoveEvidence(ctx context.Context, id, fileID primitive.ObjectID, unitID primitive.ObjectID, actor string) error {
	existing, err := s.GetPencapaianByID(ctx, id)
	if err != nil {
		return err
	}
	if _, err := s.ownedKinerja(ctx, existing.KinerjaID, unitID); err != nil {
		return err
	}

	var found bool
	for _, evidence := range existing.EvidenceFiles {
		if evidence.FileID == fileID {
			found = true
			break
		}
	}
	if !found {
		return apperrors.NotFoundf("evidence %s not found in pencapaian %s", fileID.Hex(), id.Hex())
	}

	if err := s.repo.RemoveEvidence(ctx, id, fileID, actor); err != nil {
		return err
	}

	if err := s.repo.DeleteFile(ctx, fileID); err != nil {
		fmt.Printf("Failed to delete evidence file %s: %v\n", fileID.Hex(), err)
	}
	return nil
}

func (s *pencapaianService) DownloadEvidence(ctx context.Context, fileID primitive.ObjectID) (*gridfs.DownloadStream, error) {
	return s.repo.DownloadFile(ctx, fileID)
}

// ownedKinerja loads the target and checks it belongs to the acting unit.
func (s *pencapaianService) ownedKinerja(ctx context.Context, kinerjaID, unitID primitive.ObjectID) (*models.Kinerja, error) {
	kinerja, err := s.kinerja.GetByID(ctx, kinerjaID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperrors.NotFoundf("kinerja %s not found", kinerjaID.Hex())
		}
		return nil, err
	}
	if kinerja.SubPerangkatDaerahID != unitID {
		return nil, apperrors.Authorizationf("kinerja %s does not belong to the acting unit", kinerjaID.Hex())
	}
	return kinerja, nil
}

func validatePencapaianInput(input CreatePencapaianInput) error {
	if input.PeriodMonth < 1 || input.PeriodMonth > 12 {
		return apperrors.Validationf("period month must be between 1 and 12")
	}
	if input.PeriodYear < 2000 || input.PeriodYear > 2100 {
		return apperrors.Validationf("period year %d out of range", input.PeriodYear)
	}
	if !input.AchievementType.Valid() {
		return apperrors.Validationf("invalid achievement type %q", input.AchievementType)
	}
	if input.AchievementType == models.AchievementNumeric && input.AchievementValue < 0 {
		return apperrors.Validationf("achievement value must not be negative")
	}
	if input.AchievementType == models.AchievementDescriptive && input.Description == "" {
		return apperrors.Validationf("description is required for descriptive reports")
	}
	return nil
}

// ValidateEvidence enforces the evidence file constraints: PDF content type
// and at most 1 MB.
func ValidateEvidence(originalName string, size int64, contentType string) error {
	if originalName == "" {
		return apperrors.Validationf("filename is required")
	}
	if contentType != evidenceContentType {
		return apperrors.Validationf("evidence must be %s, got %q", evidenceContentType, contentType)
	}
	if size <= 0 {
		return apperrors.Validationf("evidence file is empty")
	}
	if size > evidenceMaxSize {
		return apperrors.Validationf("evidence file exceeds 1MB limit")
	}
	return nil
}
