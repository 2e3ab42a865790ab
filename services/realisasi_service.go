package services

import (
	"context"
	"math"
	"time"

	"ekinerja/apperrors"
	"ekinerja/models"
	repository "ekinerja/repositories"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// RealizationSummary is the aggregate over one consistently-read row set.
type RealizationSummary struct {
	Rows            []models.Realisasi `json:"rows"`
	TotalBudget     float64            `json:"total_budget"`
	TotalRealized   float64            `json:"total_realized"`
	AbsorptionRate  float64            `json:"absorption_rate"`
	RemainingBudget float64            `json:"remaining_budget"`
}

type RealisasiService interface {
	RecordRealization(ctx context.Context, subKegiatanID, kodeRekeningID primitive.ObjectID, month, year int, amount float64, actor string) (*models.Realisasi, error)
	GetRealization(ctx context.Context, filter repository.RealisasiFilter) (*RealizationSummary, error)
}

type realisasiService struct {
	repo     repository.RealisasiRepository
	anggaran repository.AnggaranRepository
}

func NewRealisasiService(repo repository.RealisasiRepository, anggaran repository.AnggaranRepository) RealisasiService {
	return &realisasiService{
		repo:     repo,
		anggaran: anggaran,
	}
}

// RecordRealization writes one realization row. The budget amount is a
// snapshot of the matching allocation line at write time; later allocation
// edits never change rows already written. Over-realization is surfaced
// through a negative remaining amount, not blocked.
func (s *realisasiService) RecordRealization(ctx context.Context, subKegiatanID, kodeRekeningID primitive.ObjectID, month, year int, amount float64, actor string) (*models.Realisasi, error) {
	if month < 1 || month > 12 {
		return nil, apperrors.Validationf("month must be between 1 and 12")
	}
	if amount < 0 {
		return nil, apperrors.Validationf("realization amount must not be negative")
	}

	anggaran, err := s.anggaran.GetBySubKegiatanYear(ctx, subKegiatanID, year)
	if err != nil {
		return nil, err
	}
	if anggaran == nil {
		return nil, apperrors.NotFoundf("no allocation for sub kegiatan %s in %d", subKegiatanID.Hex(), year)
	}

	budget, found := allocationAmountFor(anggaran, kodeRekeningID)
	if !found {
		return nil, apperrors.NotFoundf("kode rekening %s has no allocation line in %d", kodeRekeningID.Hex(), year)
	}

	now := time.Now()
	realisasi := &models.Realisasi{
		SubKegiatanID:     subKegiatanID,
		KodeRekeningID:    kodeRekeningID,
		Month:             month,
		Year:              year,
		BudgetAmount:      budget,
		RealizationAmount: amount,
		Metadata: models.Metadata{
			CreatedBy: actor,
			UpdatedBy: actor,
			CreatedAt: now,
			UpdatedAt: now,
		},
	}
	realisasi.RemainingAmount = budget - amount
	realisasi.RealizationPercentage = RealizationPercentage(budget, amount)

	if err := s.repo.Create(ctx, realisasi); err != nil {
		return nil, err
	}
	return realisasi, nil
}

// GetRealization lists the matching rows and computes the aggregate from
// that single result set.
func (s *realisasiService) GetRealization(ctx context.Context, filter repository.RealisasiFilter) (*RealizationSummary, error) {
	rows, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	summary := &RealizationSummary{Rows: rows}
	for _, row := range rows {
		summary.TotalBudget += row.BudgetAmount
		summary.TotalRealized += row.RealizationAmount
	}
	summary.AbsorptionRate = AggregateAbsorption(rows)
	summary.RemainingBudget = summary.TotalBudget - summary.TotalRealized
	return summary, nil
}

// RealizationPercentage guards the zero-budget case to 0.
func RealizationPercentage(budget, realized float64) float64 {
	if budget <= 0 {
		return 0
	}
	return realized / budget * 100
}

// AggregateAbsorption is the ratio of sums over the row set, never the mean
// of per-row percentages.
func AggregateAbsorption(rows []models.Realisasi) float64 {
	var totalBudget, totalRealized float64
	for _, row := range rows {
		totalBudget += row.BudgetAmount
		totalRealized += row.RealizationAmount
	}
	if totalBudget <= 0 {
		return 0
	}
	return totalRealized / totalBudget * 100
}

// RoundRate trims an absorption rate to two decimals for display fields.
func RoundRate(rate float64) float64 {
	return math.Round(rate*100) / 100
}

func allocationAmountFor(anggaran *models.Anggaran, kodeRekeningID primitive.ObjectID) (float64, bool) {
	for _, item := range anggaran.Allocations {
		if item.KodeRekeningID == kodeRekeningID {
			return item.Amount, true
		}
	}
	return 0, false
}
