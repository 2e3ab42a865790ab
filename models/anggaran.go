package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// AllocationItem is one budget line within an Anggaran, keyed by account code.
type AllocationItem struct {
	KodeRekeningID primitive.ObjectID `json:"kode_rekening_id" bson:"kode_rekening_id" validate:"required"`
	Amount         float64            `json:"amount" bson:"amount" validate:"min=0"`
	Description    string             `json:"description" bson:"description"`
}

// Anggaran is the budget allocation for one activity in one budget year.
// The embedded allocation list is the source of truth; TotalAmount is
// recomputed from it on every write and never trusted as input.
type Anggaran struct {
	ID            primitive.ObjectID  `json:"id" bson:"_id,omitempty"`
	SubKegiatanID primitive.ObjectID  `json:"sub_kegiatan_id" bson:"sub_kegiatan_id" validate:"required"`
	TahunAnggaran int                 `json:"tahun_anggaran" bson:"tahun_anggaran" validate:"required,min=2000,max=2100"`
	SumberDanaID  *primitive.ObjectID `json:"sumber_dana_id,omitempty" bson:"sumber_dana_id,omitempty"`
	Allocations   []AllocationItem    `json:"allocations" bson:"allocations" validate:"required,min=1,dive"`
	TotalAmount   float64             `json:"total_amount" bson:"total_amount"`
	Metadata      Metadata            `json:"metadata" bson:"metadata"`
}

// TotalFromAllocations sums the embedded allocation amounts.
func (a *Anggaran) TotalFromAllocations() float64 {
	var total float64
	for _, item := range a.Allocations {
		total += item.Amount
	}
	return total
}
