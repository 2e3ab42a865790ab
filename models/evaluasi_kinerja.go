package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type EvaluationStatus string

const (
	EvaluationPending          EvaluationStatus = "pending"
	EvaluationInReview         EvaluationStatus = "in_review"
	EvaluationApproved         EvaluationStatus = "approved"
	EvaluationRejected         EvaluationStatus = "rejected"
	EvaluationRevisionRequired EvaluationStatus = "revision_required"
)

func (s EvaluationStatus) Valid() bool {
	switch s {
	case EvaluationPending, EvaluationInReview, EvaluationApproved,
		EvaluationRejected, EvaluationRevisionRequired:
		return true
	}
	return false
}

type PerformanceGrade string

const (
	GradeA PerformanceGrade = "A"
	GradeB PerformanceGrade = "B"
	GradeC PerformanceGrade = "C"
	GradeD PerformanceGrade = "D"
	GradeE PerformanceGrade = "E"
)

// CriteriaItem is one entry of a reviewer's evaluation checklist.
type CriteriaItem struct {
	Criterion string `json:"criterion" bson:"criterion"`
	Met       bool   `json:"met" bson:"met"`
	Note      string `json:"note" bson:"note"`
}

// EvaluasiKinerja is a reviewer's scored assessment of one Pencapaian,
// driven through the pending/in_review/decision workflow.
type EvaluasiKinerja struct {
	ID                 primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	PencapaianID       primitive.ObjectID `json:"pencapaian_id" bson:"pencapaian_id" validate:"required"`
	KinerjaID          primitive.ObjectID `json:"kinerja_id" bson:"kinerja_id"`
	AchievementScore   float64            `json:"achievement_score" bson:"achievement_score" validate:"min=0,max=100"`
	DocumentationScore float64            `json:"documentation_score" bson:"documentation_score" validate:"min=0,max=100"`
	OverallScore       int                `json:"overall_score" bson:"overall_score"`
	PerformanceGrade   PerformanceGrade   `json:"performance_grade" bson:"performance_grade"`
	EvaluationStatus   EvaluationStatus   `json:"evaluation_status" bson:"evaluation_status"`
	Notes              string             `json:"notes" bson:"notes"`
	Strengths          []string           `json:"strengths" bson:"strengths"`
	Improvements       []string           `json:"improvements" bson:"improvements"`
	Recommendations    []string           `json:"recommendations" bson:"recommendations"`
	CriteriaChecklist  []CriteriaItem     `json:"criteria_checklist" bson:"criteria_checklist"`
	RevisionNotes      []string           `json:"revision_notes" bson:"revision_notes"`
	Metadata           Metadata           `json:"metadata" bson:"metadata"`
}
