package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// RealizationRating is the five-step scale used for the overall judgment and
// the three qualitative ratings. It is a manual reviewer choice, never
// derived from the computed absorption rate.
type RealizationRating string

const (
	RatingExcellent    RealizationRating = "excellent"
	RatingGood         RealizationRating = "good"
	RatingSatisfactory RealizationRating = "satisfactory"
	RatingPoor         RealizationRating = "poor"
	RatingVeryPoor     RealizationRating = "very_poor"
)

func (r RealizationRating) Valid() bool {
	switch r {
	case RatingExcellent, RatingGood, RatingSatisfactory, RatingPoor, RatingVeryPoor:
		return true
	}
	return false
}

// EvaluasiRealisasi is a reviewer's assessment of one Realisasi row.
// BudgetAmount, RealizationAmount and AbsorptionRate are copied from the
// realization row when the evaluation is created; the four ratings and the
// four list fields are the reviewer's own judgment.
type EvaluasiRealisasi struct {
	ID                       primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	RealisasiID              primitive.ObjectID `json:"realisasi_id" bson:"realisasi_id" validate:"required"`
	BudgetAmount             float64            `json:"budget_amount" bson:"budget_amount"`
	RealizationAmount        float64            `json:"realization_amount" bson:"realization_amount"`
	AbsorptionRate           float64            `json:"absorption_rate" bson:"absorption_rate"`
	EvaluationStatus         RealizationRating  `json:"evaluation_status" bson:"evaluation_status" validate:"required"`
	SpeedOfExecution         RealizationRating  `json:"speed_of_execution" bson:"speed_of_execution" validate:"required"`
	FundAbsorptionEfficiency RealizationRating  `json:"fund_absorption_efficiency" bson:"fund_absorption_efficiency" validate:"required"`
	ProcurementCapability    RealizationRating  `json:"procurement_capability" bson:"procurement_capability" validate:"required"`
	Constraints              []string           `json:"constraints" bson:"constraints" validate:"required,min=1"`
	Problems                 []string           `json:"problems" bson:"problems" validate:"required,min=1"`
	Solutions                []string           `json:"solutions" bson:"solutions" validate:"required,min=1"`
	Recommendations          []string           `json:"recommendations" bson:"recommendations" validate:"required,min=1"`
	GeneralNotes             string             `json:"general_notes" bson:"general_notes"`
	Metadata                 Metadata           `json:"metadata" bson:"metadata"`
}
