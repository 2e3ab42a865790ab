package services

import (
	"context"
	"errors"
	"time"

	"ekinerja/apperrors"
	"ekinerja/models"
	repository "ekinerja/repositories"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// CreateKinerjaInput carries the admin-authored target definition.
type CreateKinerjaInput struct {
	AnggaranID           primitive.ObjectID
	SubPerangkatDaerahID primitive.ObjectID
	Indikator            string
	TargetValue          float64
	TargetDate           time.Time
	Priority             models.Priority
}

type KinerjaService interface {
	CreateKinerja(ctx context.Context, input CreateKinerjaInput, actor string) (*models.Kinerja, error)
	GetKinerja(ctx context.Context, unitID primitive.ObjectID, tahun int) ([]models.Kinerja, error)
	GetKinerjaByID(ctx context.Context, id primitive.ObjectID) (*models.Kinerja, error)
	EligibleAnggaran(ctx context.Context, unitID primitive.ObjectID, tahun int) ([]models.Anggaran, error)
	UpdateActual(ctx context.Context, id primitive.ObjectID, actualValue float64, status *models.KinerjaStatus, unitID primitive.ObjectID, actor string) (*models.Kinerja, error)
}

type kinerjaService struct {
	repo     repository.KinerjaRepository
	anggaran repository.AnggaranRepository
}

func NewKinerjaService(repo repository.KinerjaRepository, anggaran repository.AnggaranRepository) KinerjaService {
	return &kinerjaService{
		repo:     repo,
		anggaran: anggaran,
	}
}

// CreateKinerja binds a target to an allocation for the unit and year. An
// anggaran already bound to a kinerja for that unit and year is a conflict,
// so each allocation carries at most one active target per year.
func (s *kinerjaService) CreateKinerja(ctx context.Context, input CreateKinerjaInput, actor string) (*models.Kinerja, error) {
	if input.TargetValue <= 0 {
		return nil, apperrors.Validationf("target value must be positive")
	}
	if !input.Priority.Valid() {
		return nil, apperrors.Validationf("invalid priority %q", input.Priority)
	}
	if input.Indikator == "" {
		return nil, apperrors.Validationf("indikator is required")
	}

	anggaran, err := s.anggaran.GetByID(ctx, input.AnggaranID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperrors.NotFoundf("anggaran %s not found", input.AnggaranID.Hex())
		}
		return nil, err
	}

	bound, err := s.repo.CountByUnitAnggaranYear(ctx, input.SubPerangkatDaerahID, input.AnggaranID, anggaran.TahunAnggaran)
	if err != nil {
		return nil, err
	}
	if bound > 0 {
		return nil, apperrors.Conflictf("anggaran %s already has a kinerja for this unit in %d", input.AnggaranID.Hex(), anggaran.TahunAnggaran)
	}

	now := time.Now()
	kinerja := &models.Kinerja{
		SubKegiatanID:        anggaran.SubKegiatanID,
		AnggaranID:           anggaran.ID,
		SubPerangkatDaerahID: input.SubPerangkatDaerahID,
		TahunAnggaran:        anggaran.TahunAnggaran,
		Indikator:            input.Indikator,
		TargetValue:          input.TargetValue,
		TargetDate:           input.TargetDate,
		Priority:             input.Priority,
		Status:               models.KinerjaPlanning,
		Metadata: models.Metadata{
			CreatedBy: actor,
			UpdatedBy: actor,
			CreatedAt: now,
			UpdatedAt: now,
		},
	}

	if err := s.repo.Create(ctx, kinerja); err != nil {
		return nil, err
	}
	return kinerja, nil
}

func (s *kinerjaService) GetKinerja(ctx context.Context, unitID primitive.ObjectID, tahun int) ([]models.Kinerja, error) {
	return s.repo.ListByUnitYear(ctx, unitID, tahun)
}

func (s *kinerjaService) GetKinerjaByID(ctx context.Context, id primitive.ObjectID) (*models.Kinerja, error) {
	kinerja, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperrors.NotFoundf("kinerja %s not found", id.Hex())
		}
		return nil, err
	}
	return kinerja, nil
}

// EligibleAnggaran lists the year's allocations not yet bound to a kinerja
// for the unit.
func (s *kinerjaService) EligibleAnggaran(ctx context.Context, unitID primitive.ObjectID, tahun int) ([]models.Anggaran, error) {
	all, err := s.anggaran.ListByYear(ctx, tahun)
	if err != nil {
		return nil, err
	}

	boundIDs, err := s.repo.BoundAnggaranIDs(ctx, unitID, tahun)
	if err != nil {
		return nil, err
	}
	bound := make(map[primitive.ObjectID]struct{}, len(boundIDs))
	for _, id := range boundIDs {
		bound[id] = struct{}{}
	}

	eligible := make([]models.Anggaran, 0, len(all))
	for _, anggaran := range all {
		if _, taken := bound[anggaran.ID]; !taken {
			eligible = append(eligible, anggaran)
		}
	}
	return eligible, nil
}

// UpdateActual records the unit's actual value and recomputes the
// achievement percentage. Only the owning unit may update its target.
func (s *kinerjaService) UpdateActual(ctx context.Context, id primitive.ObjectID, actualValue float64, status *models.KinerjaStatus, unitID primitive.ObjectID, actor string) (*models.Kinerja, error) {
	if actualValue < 0 {
		return nil, apperrors.Validationf("actual value must not be negative")
	}

	kinerja, err := s.GetKinerjaByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if kinerja.SubPerangkatDaerahID != unitID {
		return nil, apperrors.Authorizationf("kinerja %s does not belong to the acting unit", id.Hex())
	}

	newStatus := kinerja.Status
	if status != nil {
		if !status.Valid() {
			return nil, apperrors.Validationf("invalid status %q", *status)
		}
		newStatus = *status
	}

	percentage := AchievementPercentage(kinerja.TargetValue, actualValue)
	if err := s.repo.UpdateActual(ctx, id, actualValue, percentage, newStatus, actor); err != nil {
		return nil, err
	}

	kinerja.ActualValue = actualValue
	kinerja.AchievementPercentage = percentage
	kinerja.Status = newStatus
	kinerja.Metadata.UpdatedBy = actor
	kinerja.Metadata.UpdatedAt = time.Now()
	return kinerja, nil
}

// AchievementPercentage guards the zero-target case to 0.
func AchievementPercentage(target, actual float64) float64 {
	if target <= 0 {
		return 0
	}
	return actual / target * 100
}
