package services

import (
	"context"
	"errors"

	"ekinerja/apperrors"
	"ekinerja/models"
	repository "ekinerja/repositories"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// SubKegiatanWithCode pairs an activity with its resolved hierarchical code.
type SubKegiatanWithCode struct {
	models.SubKegiatan
	FullCode string `json:"full_code"`
}

type HierarchyService interface {
	GetFullCode(ctx context.Context, subKegiatanID primitive.ObjectID) (string, error)
	ListSubKegiatan(ctx context.Context) ([]SubKegiatanWithCode, error)
}

type hierarchyService struct {
	repo repository.HierarchyRepository
}

func NewHierarchyService(repo repository.HierarchyRepository) HierarchyService {
	return &hierarchyService{
		repo: repo,
	}
}

// GetFullCode resolves the dotted code for one activity. An empty string is
// a valid outcome (the activity has no resolvable kode); only a missing
// activity is an error.
func (s *hierarchyService) GetFullCode(ctx context.Context, subKegiatanID primitive.ObjectID) (string, error) {
	sub, err := s.repo.GetSubKegiatan(ctx, subKegiatanID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return "", apperrors.NotFoundf("sub kegiatan %s not found", subKegiatanID.Hex())
		}
		return "", err
	}

	idx, err := BuildHierarchyIndex(ctx, s.repo)
	if err != nil {
		return "", err
	}

	return ResolveFullCode(sub, idx), nil
}

// ListSubKegiatan returns every activity with its full code, resolved
// against one index built for the whole response.
func (s *hierarchyService) ListSubKegiatan(ctx context.Context) ([]SubKegiatanWithCode, error) {
	subs, err := s.repo.ListSubKegiatan(ctx)
	if err != nil {
		return nil, err
	}

	idx, err := BuildHierarchyIndex(ctx, s.repo)
	if err != nil {
		return nil, err
	}

	items := make([]SubKegiatanWithCode, 0, len(subs))
	for i := range subs {
		items = append(items, SubKegiatanWithCode{
			SubKegiatan: subs[i],
			FullCode:    ResolveFullCode(&subs[i], idx),
		})
	}
	return items, nil
}
