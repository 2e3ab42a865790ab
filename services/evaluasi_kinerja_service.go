package services

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"ekinerja/apperrors"
	"ekinerja/models"
	repository "ekinerja/repositories"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// kinerjaTransitions is the single transition table for the evaluation
// workflow. Any move not listed here is rejected.
var kinerjaTransitions = map[models.EvaluationStatus][]models.EvaluationStatus{
	models.EvaluationPending:          {models.EvaluationInReview, models.EvaluationApproved, models.EvaluationRejected},
	models.EvaluationInReview:         {models.EvaluationApproved, models.EvaluationRejected, models.EvaluationRevisionRequired},
	models.EvaluationRevisionRequired: {models.EvaluationInReview},
}

// CanTransition reports whether the workflow allows moving from one state
// to another.
func CanTransition(from, to models.EvaluationStatus) bool {
	for _, allowed := range kinerjaTransitions[from] {
		if allowed == to {
			return true
		}
	}
	return false
}

// GradeForScore maps an overall score to a performance grade. The
// thresholds are a documented design choice, centralized here.
func GradeForScore(score int) models.PerformanceGrade {
	switch {
	case score >= 90:
		return models.GradeA
	case score >= 75:
		return models.GradeB
	case score >= 60:
		return models.GradeC
	case score >= 40:
		return models.GradeD
	default:
		return models.GradeE
	}
}

// OverallScore is the rounded mean of the two reviewer scores.
func OverallScore(achievementScore, documentationScore float64) int {
	return int(math.Round((achievementScore + documentationScore) / 2))
}

// DropBlank removes empty and whitespace-only entries from a free-text list.
func DropBlank(items []string) []string {
	kept := make([]string, 0, len(items))
	for _, item := range items {
		if strings.TrimSpace(item) != "" {
			kept = append(kept, item)
		}
	}
	return kept
}

// CreateEvaluasiKinerjaInput carries a reviewer's scored assessment.
type CreateEvaluasiKinerjaInput struct {
	PencapaianID       primitive.ObjectID
	AchievementScore   float64
	DocumentationScore float64
	Notes              string
	Strengths          []string
	Improvements       []string
	Recommendations    []string
	CriteriaChecklist  []models.CriteriaItem
}

type EvaluasiKinerjaService interface {
	Create(ctx context.Context, input CreateEvaluasiKinerjaInput, actor string) (*models.EvaluasiKinerja, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.EvaluasiKinerja, error)
	List(ctx context.Context, filter repository.EvaluasiKinerjaFilter) ([]models.EvaluasiKinerja, error)
	BeginReview(ctx context.Context, id primitive.ObjectID, actor string) (*models.EvaluasiKinerja, error)
	Approve(ctx context.Context, id primitive.ObjectID, notes string, actor string) (*models.EvaluasiKinerja, error)
	Reject(ctx context.Context, id primitive.ObjectID, reason string, actor string) (*models.EvaluasiKinerja, error)
	RequestRevision(ctx context.Context, id primitive.ObjectID, requirements []string, notes string, actor string) (*models.EvaluasiKinerja, error)
	Resubmit(ctx context.Context, id primitive.ObjectID, actor string) (*models.EvaluasiKinerja, error)
}

type evaluasiKinerjaService struct {
	repo       repository.EvaluasiKinerjaRepository
	pencapaian repository.PencapaianRepository
	notifier   Notifier
}

func NewEvaluasiKinerjaService(repo repository.EvaluasiKinerjaRepository, pencapaian repository.PencapaianRepository, notifier Notifier) EvaluasiKinerjaService {
	return &evaluasiKinerjaService{
		repo:       repo,
		pencapaian: pencapaian,
		notifier:   notifier,
	}
}

// Create scores a pencapaian. Both scores are required in [0,100]; the
// overall score and grade are derived, the workflow starts at pending, and
// blank entries are dropped from the free-text lists.
func (s *evaluasiKinerjaService) Create(ctx context.Context, input CreateEvaluasiKinerjaInput, actor string) (*models.EvaluasiKinerja, error) {
	if input.AchievementScore < 0 || input.AchievementScore > 100 {
		return nil, apperrors.Validationf("achievement score must be between 0 and 100")
	}
	if input.DocumentationScore < 0 || input.DocumentationScore > 100 {
		return nil, apperrors.Validationf("documentation score must be between 0 and 100")
	}

	pencapaian, err := s.pencapaian.GetByID(ctx, input.PencapaianID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperrors.NotFoundf("pencapaian %s not found", input.PencapaianID.Hex())
		}
		return nil, err
	}

	existing, err := s.repo.GetByPencapaianID(ctx, pencapaian.ID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperrors.Conflictf("pencapaian %s already has an evaluation", pencapaian.ID.Hex())
	}

	overall := OverallScore(input.AchievementScore, input.DocumentationScore)
	now := time.Now()
	evaluasi := &models.EvaluasiKinerja{
		PencapaianID:       pencapaian.ID,
		KinerjaID:          pencapaian.KinerjaID,
		AchievementScore:   input.AchievementScore,
		DocumentationScore: input.DocumentationScore,
		OverallScore:       overall,
		PerformanceGrade:   GradeForScore(overall),
		EvaluationStatus:   models.EvaluationPending,
		Notes:              input.Notes,
		Strengths:          DropBlank(input.Strengths),
		Improvements:       DropBlank(input.Improvements),
		Recommendations:    DropBlank(input.Recommendations),
		CriteriaChecklist:  input.CriteriaChecklist,
		RevisionNotes:      []string{},
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

func (s *evaluasiKinerjaService) GetByID(ctx context.Context, id primitive.ObjectID) (*models.EvaluasiKinerja, error) {
	evaluasi, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperrors.NotFoundf("evaluasi kinerja %s not found", id.Hex())
		}
		return nil, err
	}
	return evaluasi, nil
}

func (s *evaluasiKinerjaService) List(ctx context.Context, filter repository.EvaluasiKinerjaFilter) ([]models.EvaluasiKinerja, error) {
	return s.repo.List(ctx, filter)
}

func (s *evaluasiKinerjaService) BeginReview(ctx context.Context, id primitive.ObjectID, actor string) (*models.EvaluasiKinerja, error) {
	return s.transition(ctx, id, models.EvaluationInReview, nil, actor, "")
}

func (s *evaluasiKinerjaService) Approve(ctx context.Context, id primitive.ObjectID, notes string, actor string) (*models.EvaluasiKinerja, error) {
	fields := bson.M{}
	if notes != "" {
		fields["notes"] = notes
	}
	return s.transition(ctx, id, models.EvaluationApproved, fields, actor, "Evaluasi kinerja disetujui")
}

func (s *evaluasiKinerjaService) Reject(ctx context.Context, id primitive.ObjectID, reason string, actor string) (*models.EvaluasiKinerja, error) {
	if strings.TrimSpace(reason) == "" {
		return nil, apperrors.Validationf("rejection reason is required")
	}
	return s.transition(ctx, id, models.EvaluationRejected, bson.M{"notes": reason}, actor, "Evaluasi kinerja ditolak")
}

func (s *evaluasiKinerjaService) RequestRevision(ctx context.Context, id primitive.ObjectID, requirements []string, notes string, actor string) (*models.EvaluasiKinerja, error) {
	requirements = DropBlank(requirements)
	if len(requirements) == 0 {
		return nil, apperrors.Validationf("revision requirements must not be empty")
	}

	fields := bson.M{"revision_notes": requirements}
	if notes != "" {
		fields["notes"] = notes
	}
	return s.transition(ctx, id, models.EvaluationRevisionRequired, fields, actor, "Evaluasi kinerja memerlukan revisi")
}

// Resubmit moves a revision_required evaluation back into review once the
// unit has reworked its report.
func (s *evaluasiKinerjaService) Resubmit(ctx context.Context, id primitive.ObjectID, actor string) (*models.EvaluasiKinerja, error) {
	return s.transition(ctx, id, models.EvaluationInReview, nil, actor, "")
}

// transition is the one chokepoint applying the workflow table.
func (s *evaluasiKinerjaService) transition(ctx context.Context, id primitive.ObjectID, to models.EvaluationStatus, fields bson.M, actor, notifySubject string) (*models.EvaluasiKinerja, error) {
	evaluasi, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if !CanTransition(evaluasi.EvaluationStatus, to) {
		return nil, apperrors.Validationf("cannot move evaluation from %s to %s", evaluasi.EvaluationStatus, to)
	}

	if err := s.repo.UpdateStatus(ctx, id, to, fields, actor); err != nil {
		return nil, err
	}

	evaluasi.EvaluationStatus = to
	if notes, ok := fields["notes"].(string); ok {
		evaluasi.Notes = notes
	}
	if requirements, ok := fields["revision_notes"].([]string); ok {
		evaluasi.RevisionNotes = requirements
	}
	evaluasi.Metadata.UpdatedBy = actor
	evaluasi.Metadata.UpdatedAt = time.Now()

	if s.notifier != nil && notifySubject != "" {
		s.notifier.Notify(notifySubject,
			fmt.Sprintf("Evaluasi %s untuk pencapaian %s: %s", id.Hex(), evaluasi.PencapaianID.Hex(), to))
	}

	return evaluasi, nil
}
