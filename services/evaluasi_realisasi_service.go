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

// EvaluasiRealisasiInput carries the reviewer's judgment of one realization
// row. All four ratings and all four lists are required.
type EvaluasiRealisasiInput struct {
	EvaluationStatus         models.RealizationRating
	SpeedOfExecution         models.RealizationRating
	FundAbsorptionEfficiency models.RealizationRating
	ProcurementCapability    models.RealizationRating
	Constraints              []string
	Problems                 []string
	Solutions                []string
	Recommendations          []string
	GeneralNotes             string
}

type EvaluasiRealisasiService interface {
	Create(ctx context.Context, realisasiID primitive.ObjectID, input EvaluasiRealisasiInput, actor string) (*models.EvaluasiRealisasi, error)
	Update(ctx context.Context, id primitive.ObjectID, input EvaluasiRealisasiInput, actor string) (*models.EvaluasiRealisasi, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.EvaluasiRealisasi, error)
	List(ctx context.Context, filter repository.EvaluasiRealisasiFilter) ([]models.EvaluasiRealisasi, error)
}

type evaluasiRealisasiService struct {
	repo      repository.EvaluasiRealisasiRepository
	realisasi repository.RealisasiRepository
}

func NewEvaluasiRealisasiService(repo repository.EvaluasiRealisasiRepository, realisasi repository.RealisasiRepository) EvaluasiRealisasiService {
	return &evaluasiRealisasiService{
		repo:      repo,
		realisasi: realisasi,
	}
}

// Create snapshots the row's budget, realization and absorption rate, then
// stores the reviewer's judgment beside them. The overall status is the
// reviewer's manual choice and is never derived from the absorption rate.
func (s *evaluasiRealisasiService) Create(ctx context.Context, realisasiID primitive.ObjectID, input EvaluasiRealisasiInput, actor string) (*models.EvaluasiRealisasi, error) {
	if err := validateEvaluasiRealisasiInput(&input); err != nil {
		return nil, err
	}

	realisasi, err := s.realisasi.GetByID(ctx, realisasiID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperrors.NotFoundf("realisasi %s not found", realisasiID.Hex())
		}
		return nil, err
	}

	existing, err := s.repo.GetByRealisasiID(ctx, realisasiID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperrors.Conflictf("realisasi %s already has an evaluation", realisasiID.Hex())
	}

	now := time.Now()
	evaluasi := &models.EvaluasiRealisasi{
		RealisasiID:              realisasi.ID,
		BudgetAmount:             realisasi.BudgetAmount,
		RealizationAmount:        realisasi.RealizationAmount,
		AbsorptionRate:           RealizationPercentage(realisasi.BudgetAmount, realisasi.RealizationAmount),
		EvaluationStatus:         input.EvaluationStatus,
		SpeedOfExecution:         input.SpeedOfExecution,
		FundAbsorptionEfficiency: input.FundAbsorptionEfficiency,
		ProcurementCapability:    input.ProcurementCapability,
		Constraints:              input.Constraints,
		Problems:                 input.Problems,
		Solutions:                input.Solutions,
		Recommendations:          input.Recommendations,
		GeneralNotes:             input.GeneralNotes,
		Metadata: models.Metadata{
			CreatedBy: actor,
			UpdatedBy: actor,
			CreatedAt: now,
			UpdatedAt: now,
		},
	}

	if err := s.repo.Create(ctx, evaluasi); err != nil {
		return nil, err
	}
	return evaluasi, nil
}

// Update replaces the reviewer's judgment. The snapshotted amounts and
// absorption rate stay as written at creation.
func (s *evaluasiRealisasiService) Update(ctx context.Context, id primitive.ObjectID, input EvaluasiRealisasiInput, actor string) (*models.EvaluasiRealisasi, error) {
	if err := validateEvaluasiRealisasiInput(&input); err != nil {
		return nil, err
	}

	evaluasi, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	evaluasi.EvaluationStatus = input.EvaluationStatus
	evaluasi.SpeedOfExecution = input.SpeedOfExecution
	evaluasi.FundAbsorptionEfficiency = input.FundAbsorptionEfficiency
	evaluasi.ProcurementCapability = input.ProcurementCapability
	evaluasi.Constraints = input.Constraints
	evaluasi.Problems = input.Problems
	evaluasi.Solutions = input.Solutions
	evaluasi.Recommendations = input.Recommendations
	evaluasi.GeneralNotes = input.GeneralNotes
	evaluasi.Metadata.UpdatedBy = actor
	evaluasi.Metadata.UpdatedAt = time.Now()

	if err := s.repo.Update(ctx, id, evaluasi); err != nil {
		return nil, err
	}
	return evaluasi, nil
}

func (s *evaluasiRealisasiService) GetByID(ctx context.Context, id primitive.ObjectID) (*models.EvaluasiRealisasi, error) {
	evaluasi, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperrors.NotFoundf("evaluasi realisasi %s not found", id.Hex())
		}
		return nil, err
	}
	return evaluasi, nil
}

func (s *evaluasiRealisasiService) List(ctx context.Context, filter repository.EvaluasiRealisasiFilter) ([]models.EvaluasiRealisasi, error) {
	return s.repo.List(ctx, filter)
}

func validateEvaluasiRealisasiInput(input *EvaluasiRealisasiInput) error {
	ratings := map[string]models.RealizationRating{
		"evaluation_status":          input.EvaluationStatus,
		"speed_of_execution":         input.SpeedOfExecution,
		"fund_absorption_efficiency": input.FundAbsorptionEfficiency,
		"procurement_capability":     input.ProcurementCapability,
	}
	for field, rating := range ratings {
		if !rating.Valid() {
			return apperrors.Validationf("invalid rating %q for %s", rating, field)
		}
	}

	input.Constraints = DropBlank(input.Constraints)
	input.Problems = DropBlank(input.Problems)
	input.Solutions = DropBlank(input.Solutions)
	input.Recommendations = DropBlank(input.Recommendations)

	lists := map[string][]string{
		"constraints":     input.Constraints,
		"problems":        input.Problems,
		"solutions":       input.Solutions,
		"recommendations": input.Recommendations,
	}
	for field, list := range lists {
		if len(list) == 0 {
			return apperrors.Validationf("%s must not be empty", field)
		}
	}
	return nil
}
