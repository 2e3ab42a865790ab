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

// AllocationInput is one requested budget line.
type AllocationInput struct {
	KodeRekeningID string  `json:"kode_rekening_id" validate:"required"`
	Amount         float64 `json:"amount" validate:"min=0"`
	Description    string  `json:"description"`
}

type AnggaranService interface {
	CreateOrUpdateAllocation(ctx context.Context, subKegiatanID primitive.ObjectID, tahun int, sumberDanaID *primitive.ObjectID, allocations []AllocationInput, actor string) (*models.Anggaran, error)
	GetAllocation(ctx context.Context, subKegiatanID primitive.ObjectID, tahun int) (*models.Anggaran, error)
}

type anggaranService struct {
	repo      repository.AnggaranRepository
	hierarchy repository.HierarchyRepository
}

func NewAnggaranService(repo repository.AnggaranRepository, hierarchy repository.HierarchyRepository) AnggaranService {
	return &anggaranService{
		repo:      repo,
		hierarchy: hierarchy,
	}
}

// CreateOrUpdateAllocation writes the allocation list for one activity and
// year. The total is recomputed from the list in the same document write;
// concurrent edits to the same record are last-write-wins.
func (s *anggaranService) CreateOrUpdateAllocation(ctx context.Context, subKegiatanID primitive.ObjectID, tahun int, sumberDanaID *primitive.ObjectID, allocations []AllocationInput, actor string) (*models.Anggaran, error) {
	if len(allocations) == 0 {
		return nil, apperrors.Validationf("allocations must not be empty")
	}

	if _, err := s.hierarchy.GetSubKegiatan(ctx, subKegiatanID); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperrors.NotFoundf("sub kegiatan %s not found", subKegiatanID.Hex())
		}
		return nil, err
	}

	items := make([]models.AllocationItem, 0, len(allocations))
	for _, in := range allocations {
		kodeID, err := primitive.ObjectIDFromHex(in.KodeRekeningID)
		if err != nil {
			return nil, apperrors.Validationf("invalid kode_rekening_id %q", in.KodeRekeningID)
		}
		if in.Amount < 0 {
			return nil, apperrors.Validationf("allocation amount must not be negative")
		}
		if _, err := s.hierarchy.GetKodeRekening(ctx, kodeID); err != nil {
			if errors.Is(err, mongo.ErrNoDocuments) {
				return nil, apperrors.NotFoundf("kode rekening %s not found", kodeID.Hex())
			}
			return nil, err
		}
		items = append(items, models.AllocationItem{
			KodeRekeningID: kodeID,
			Amount:         in.Amount,
			Description:    in.Description,
		})
	}

	now := time.Now()

	existing, err := s.repo.GetBySubKegiatanYear(ctx, subKegiatanID, tahun)
	if err != nil {
		return nil, err
	}

	if existing == nil {
		anggaran := &models.Anggaran{
			SubKegiatanID: subKegiatanID,
			TahunAnggaran: tahun,
			SumberDanaID:  sumberDanaID,
			Allocations:   items,
			Metadata: models.Metadata{
				CreatedBy: actor,
				UpdatedBy: actor,
				CreatedAt: now,
				UpdatedAt: now,
			},
		}
		anggaran.TotalAmount = anggaran.TotalFromAllocations()

		if err := s.repo.Create(ctx, anggaran); err != nil {
			return nil, err
		}
		return anggaran, nil
	}

	existing.Allocations = items
	if sumberDanaID != nil {
		existing.SumberDanaID = sumberDanaID
	}
	existing.TotalAmount = existing.TotalFromAllocations()
	existing.Metadata.UpdatedBy = actor
	existing.Metadata.UpdatedAt = now

	if err := s.repo.Replace(ctx, existing.ID, existing); err != nil {
		return nil, err
	}
	return existing, nil
}

func (s *anggaranService) GetAllocation(ctx context.Context, subKegiatanID primitive.ObjectID, tahun int) (*models.Anggaran, error) {
	anggaran, err := s.repo.GetBySubKegiatanYear(ctx, subKegiatanID, tahun)
	if err != nil {
		return nil, err
	}
	if anggaran == nil {
		return nil, apperrors.NotFoundf("no allocation for sub kegiatan %s in %d", subKegiatanID.Hex(), tahun)
	}
	return anggaran, nil
}
