package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Realisasi records actual expenditure against an allocation line for one
// period. BudgetAmount is a snapshot of the matching allocation at write
// time; later allocation edits never change historical rows.
type Realisasi struct {
	ID                    primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	SubKegiatanID         primitive.ObjectID `json:"sub_kegiatan_id" bson:"sub_kegiatan_id" validate:"required"`
	KodeRekeningID        primitive.ObjectID `json:"kode_rekening_id" bson:"kode_rekening_id" validate:"required"`
	Month                 int                `json:"month" bson:"month" validate:"required,min=1,max=12"`
	Year                  int                `json:"year" bson:"year" validate:"required,min=2000,max=2100"`
	BudgetAmount          float64            `json:"budget_amount" bson:"budget_amount"`
	RealizationAmount     float64            `json:"realization_amount" bson:"realization_amount" validate:"min=0"`
	RemainingAmount       float64            `json:"remaining_amount" bson:"remaining_amount"`
	RealizationPercentage float64            `json:"realization_percentage" bson:"realization_percentage"`
	Metadata              Metadata           `json:"metadata" bson:"metadata"`
}
