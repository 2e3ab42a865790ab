package services

import (
	"context"
	"reflect"
	"testing"

	"ekinerja/apperrors"
	"ekinerja/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestOverallScore(t *testing.T) {
	tests := []struct {
		name          string
		achievement   float64
		documentation float64
		want          int
	}{
		{name: "plain mean", achievement: 80, documentation: 90, want: 85},
		{name: "rounds half up", achievement: 80, documentation: 91, want: 86},
		{name: "rounds down", achievement: 80, documentation: 90.8, want: 85},
		{name: "both zero", achievement: 0, documentation: 0, want: 0},
		{name: "both max", achievement: 100, documentation: 100, want: 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := OverallScore(tt.achievement, tt.documentation); got != tt.want {
				t.Errorf("OverallScore(%v, %v) = %d, want %d", tt.achievement, tt.documentation, got, tt.want)
			}
		})
	}
}

func TestGradeForScore(t *testing.T) {
	tests := []struct {
		score int
		want  models.PerformanceGrade
	}{
		{score: 100, want: models.GradeA},
		{score: 90, want: models.GradeA},
		{score: 89, want: models.GradeB},
		{score: 75, want: models.GradeB},
		{score: 74, want: models.GradeC},
		{score: 60, want: models.GradeC},
		{score: 59, want: models.GradeD},
		{score: 40, want: models.GradeD},
		{score: 39, want: models.GradeE},
		{score: 0, want: models.GradeE},
	}

	for _, tt := range tests {
		if got := GradeForScore(tt.score); got != tt.want {
			t.Errorf("GradeForScore(%d) = %q, want %q", tt.score, got, tt.want)
		}
	}
}

func TestCanTransition(t *testing.T) {
	tests := []struct {
		name string
		from models.EvaluationStatus
		to   models.EvaluationStatus
		want bool
	}{
		{name: "pending to in_review", from: models.EvaluationPending, to: models.EvaluationInReview, want: true},
		{name: "pending straight to approved", from: models.EvaluationPending, to: models.EvaluationApproved, want: true},
		{name: "pending straight to rejected", from: models.EvaluationPending, to: models.EvaluationRejected, want: true},
		{name: "pending to revision_required", from: models.EvaluationPending, to: models.EvaluationRevisionRequired, want: false},
		{name: "in_review to approved", from: models.EvaluationInReview, to: models.EvaluationApproved, want: true},
		{name: "in_review to revision_required", from: models.EvaluationInReview, to: models.EvaluationRevisionRequired, want: true},
		{name: "revision_required back to in_review", from: models.EvaluationRevisionRequired, to: models.EvaluationInReview, want: true},
		{name: "revision_required to approved", from: models.EvaluationRevisionRequired, to: models.EvaluationApproved, want: false},
		{name: "approved is terminal", from: models.EvaluationApproved, to: models.EvaluationInReview, want: false},
		{name: "rejected is terminal", from: models.EvaluationRejected, to: models.EvaluationInReview, want: false},
		{name: "no self transition", from: models.EvaluationPending, to: models.EvaluationPending, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CanTransition(tt.from, tt.to); got != tt.want {
				t.Errorf("CanTransition(%s, %s) = %v, want %v", tt.from, tt.to, got, tt.want)
			}
		})
	}
}

func TestDropBlank(t *testing.T) {
	tests := []struct {
		name  string
		items []string
		want  []string
	}{
		{name: "keeps non blank", items: []string{"a", "", "  ", "b"}, want: []string{"a", "b"}},
		{name: "all blank", items: []string{"", "\t", " "}, want: []string{}},
		{name: "nil input", items: nil, want: []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DropBlank(tt.items); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("DropBlank(%v) = %v, want %v", tt.items, got, tt.want)
			}
		})
	}
}

func newEvaluasiFixture(t *testing.T) (EvaluasiKinerjaService, *fakeEvaluasiKinerjaRepo, *captureNotifier, primitive.ObjectID) {
	t.Helper()

	kinerjaID := primitive.NewObjectID()
	pencapaianRepo := newFakePencapaianRepo()
	pencapaian := &models.Pencapaian{KinerjaID: kinerjaID, PeriodMonth: 3, PeriodYear: 2026}
	pencapaianRepo.Create(context.Background(), pencapaian)

	repo := &fakeEvaluasiKinerjaRepo{}
	notifier := &captureNotifier{}
	svc := NewEvaluasiKinerjaService(repo, pencapaianRepo, notifier)
	return svc, repo, notifier, pencapaian.ID
}

func TestEvaluasiKinerjaCreate(t *testing.T) {
	t.Run("derives score, grade and pending status", func(t *testing.T) {
		svc, _, _, pencapaianID := newEvaluasiFixture(t)

		evaluasi, err := svc.Create(context.Background(), CreateEvaluasiKinerjaInput{
			PencapaianID:       pencapaianID,
			AchievementScore:   80,
			DocumentationScore: 90,
			Strengths:          []string{"Laporan lengkap", ""},
		}, "evaluator")
		if err != nil {
			t.Fatalf("Create() error = %v", err)
		}
		if evaluasi.OverallScore != 85 {
			t.Errorf("OverallScore = %d, want 85", evaluasi.OverallScore)
		}
		if evaluasi.PerformanceGrade != models.GradeB {
			t.Errorf("PerformanceGrade = %q, want %q", evaluasi.PerformanceGrade, models.GradeB)
		}
		if evaluasi.EvaluationStatus != models.EvaluationPending {
			t.Errorf("EvaluationStatus = %q, want %q", evaluasi.EvaluationStatus, models.EvaluationPending)
		}
		if len(evaluasi.Strengths) != 1 {
			t.Errorf("Strengths = %v, blank entries should be dropped", evaluasi.Strengths)
		}
	})

	t.Run("second evaluation for same pencapaian conflicts", func(t *testing.T) {
		svc, _, _, pencapaianID := newEvaluasiFixture(t)

		ctx := context.Background()
		input := CreateEvaluasiKinerjaInput{PencapaianID: pencapaianID, AchievementScore: 50, DocumentationScore: 50}
		if _, err := svc.Create(ctx, input, "evaluator"); err != nil {
			t.Fatalf("first create: %v", err)
		}
		_, err := svc.Create(ctx, input, "evaluator")
		if apperrors.KindOf(err) != apperrors.KindConflict {
			t.Errorf("error kind = %q, want %q", apperrors.KindOf(err), apperrors.KindConflict)
		}
	})

	t.Run("failures", func(t *testing.T) {
		svc, _, _, pencapaianID := newEvaluasiFixture(t)

		tests := []struct {
			name     string
			input    CreateEvaluasiKinerjaInput
			wantKind apperrors.Kind
		}{
			{
				name:     "achievement score above 100",
				input:    CreateEvaluasiKinerjaInput{PencapaianID: pencapaianID, AchievementScore: 101, DocumentationScore: 50},
				wantKind: apperrors.KindValidation,
			},
			{
				name:     "negative documentation score",
				input:    CreateEvaluasiKinerjaInput{PencapaianID: pencapaianID, AchievementScore: 50, DocumentationScore: -1},
				wantKind: apperrors.KindValidation,
			},
			{
				name:     "unknown pencapaian",
				input:    CreateEvaluasiKinerjaInput{PencapaianID: primitive.NewObjectID(), AchievementScore: 50, DocumentationScore: 50},
				wantKind: apperrors.KindNotFound,
			},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				_, err := svc.Create(context.Background(), tt.input, "evaluator")
				if apperrors.KindOf(err) != tt.wantKind {
					t.Errorf("error kind = %q, want %q", apperrors.KindOf(err), tt.wantKind)
				}
			})
		}
	})
}

func TestEvaluasiKinerjaWorkflow(t *testing.T) {
	create := func(t *testing.T, svc EvaluasiKinerjaService, pencapaianID primitive.ObjectID) *models.EvaluasiKinerja {
		t.Helper()
		evaluasi, err := svc.Create(context.Background(), CreateEvaluasiKinerjaInput{
			PencapaianID:       pencapaianID,
			AchievementScore:   80,
			DocumentationScore: 90,
		}, "evaluator")
		if err != nil {
			t.Fatalf("Create() error = %v", err)
		}
		return evaluasi
	}

	t.Run("review then approve notifies", func(t *testing.T) {
		svc, repo, notifier, pencapaianID := newEvaluasiFixture(t)
		evaluasi := create(t, svc, pencapaianID)
		ctx := context.Background()

		if _, err := svc.BeginReview(ctx, evaluasi.ID, "evaluator"); err != nil {
			t.Fatalf("BeginReview() error = %v", err)
		}
		approved, err := svc.Approve(ctx, evaluasi.ID, "Capaian sesuai target", "evaluator")
		if err != nil {
			t.Fatalf("Approve() error = %v", err)
		}
		if approved.EvaluationStatus != models.EvaluationApproved {
			t.Errorf("status = %q, want %q", approved.EvaluationStatus, models.EvaluationApproved)
		}
		if approved.Notes != "Capaian sesuai target" {
			t.Errorf("Notes = %q, want the approval note", approved.Notes)
		}
		if repo.items[0].EvaluationStatus != models.EvaluationApproved {
			t.Errorf("stored status = %q, want %q", repo.items[0].EvaluationStatus, models.EvaluationApproved)
		}
		if notifier.count() != 1 {
			t.Errorf("notifications = %d, want 1", notifier.count())
		}
	})

	t.Run("reject requires a reason", func(t *testing.T) {
		svc, _, _, pencapaianID := newEvaluasiFixture(t)
		evaluasi := create(t, svc, pencapaianID)

		_, err := svc.Reject(context.Background(), evaluasi.ID, "   ", "evaluator")
		if apperrors.KindOf(err) != apperrors.KindValidation {
			t.Fatalf("error kind = %q, want %q", apperrors.KindOf(err), apperrors.KindValidation)
		}

		rejected, err := svc.Reject(context.Background(), evaluasi.ID, "Bukti tidak memadai", "evaluator")
		if err != nil {
			t.Fatalf("Reject() error = %v", err)
		}
		if rejected.EvaluationStatus != models.EvaluationRejected {
			t.Errorf("status = %q, want %q", rejected.EvaluationStatus, models.EvaluationRejected)
		}
		if rejected.Notes != "Bukti tidak memadai" {
			t.Errorf("Notes = %q, want the rejection reason", rejected.Notes)
		}
	})

	t.Run("revision round trip", func(t *testing.T) {
		svc, _, _, pencapaianID := newEvaluasiFixture(t)
		evaluasi := create(t, svc, pencapaianID)
		ctx := context.Background()

		// revision can only be requested from in_review
		if _, err := svc.RequestRevision(ctx, evaluasi.ID, []string{"Lengkapi bukti"}, "", "evaluator"); apperrors.KindOf(err) != apperrors.KindValidation {
			t.Fatalf("from pending: error kind = %q, want %q", apperrors.KindOf(err), apperrors.KindValidation)
		}

		if _, err := svc.BeginReview(ctx, evaluasi.ID, "evaluator"); err != nil {
			t.Fatalf("BeginReview() error = %v", err)
		}

		if _, err := svc.RequestRevision(ctx, evaluasi.ID, []string{"", "  "}, "", "evaluator"); apperrors.KindOf(err) != apperrors.KindValidation {
			t.Fatalf("blank requirements: error kind = %q, want %q", apperrors.KindOf(err), apperrors.KindValidation)
		}

		revised, err := svc.RequestRevision(ctx, evaluasi.ID, []string{"Lengkapi bukti", ""}, "Perlu dokumen pendukung", "evaluator")
		if err != nil {
			t.Fatalf("RequestRevision() error = %v", err)
		}
		if revised.EvaluationStatus != models.EvaluationRevisionRequired {
			t.Errorf("status = %q, want %q", revised.EvaluationStatus, models.EvaluationRevisionRequired)
		}
		if len(revised.RevisionNotes) != 1 || revised.RevisionNotes[0] != "Lengkapi bukti" {
			t.Errorf("RevisionNotes = %v, want the single non-blank requirement", revised.RevisionNotes)
		}

		resubmitted, err := svc.Resubmit(ctx, evaluasi.ID, "unit-user")
		if err != nil {
			t.Fatalf("Resubmit() error = %v", err)
		}
		if resubmitted.EvaluationStatus != models.EvaluationInReview {
			t.Errorf("status after resubmit = %q, want %q", resubmitted.EvaluationStatus, models.EvaluationInReview)
		}

		if _, err := svc.Approve(ctx, evaluasi.ID, "", "evaluator"); err != nil {
			t.Errorf("Approve() after resubmit error = %v", err)
		}
	})

	t.Run("terminal states reject further moves", func(t *testing.T) {
		svc, _, _, pencapaianID := newEvaluasiFixture(t)
		evaluasi := create(t, svc, pencapaianID)
		ctx := context.Background()

		if _, err := svc.Approve(ctx, evaluasi.ID, "", "evaluator"); err != nil {
			t.Fatalf("Approve() error = %v", err)
		}
		if _, err := svc.BeginReview(ctx, evaluasi.ID, "evaluator"); apperrors.KindOf(err) != apperrors.KindValidation {
			t.Errorf("error kind = %q, want %q", apperrors.KindOf(err), apperrors.KindValidation)
		}
	})

	t.Run("unknown evaluation", func(t *testing.T) {
		svc, _, _, _ := newEvaluasiFixture(t)
		_, err := svc.BeginReview(context.Background(), primitive.NewObjectID(), "evaluator")
		if apperrors.KindOf(err) != apperrors.KindNotFound {
			t.Errorf("error kind = %q, want %q", apperrors.KindOf(err), apperrors.KindNotFound)
		}
	})
}
