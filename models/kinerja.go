package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Priority string

const (
	PriorityLow      Priority = "low"
	PriorityMedium   Priority = "medium"
	PriorityHigh     Priority = "high"
	PriorityCritical Priority = "critical"
)

func (p Priority) Valid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh, PriorityCritical:
		return true
	}
	return false
}

type KinerjaStatus string

const (
	KinerjaPlanning   KinerjaStatus = "planning"
	KinerjaInProgress KinerjaStatus = "in_progress"
	KinerjaCompleted  KinerjaStatus = "completed"
	KinerjaCancelled  KinerjaStatus = "cancelled"
)

func (s KinerjaStatus) Valid() bool {
	switch s {
	case KinerjaPlanning, KinerjaInProgress, KinerjaCompleted, KinerjaCancelled:
		return true
	}
	return false
}

// Kinerja is a numeric performance target bound to one allocation for one
// budget year. At most one exists per (unit, anggaran, tahun).
type Kinerja struct {
	ID                    primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	SubKegiatanID         primitive.ObjectID `json:"sub_kegiatan_id" bson:"sub_kegiatan_id" validate:"required"`
	AnggaranID            primitive.ObjectID `json:"anggaran_id" bson:"anggaran_id" validate:"required"`
	SubPerangkatDaerahID  primitive.ObjectID `json:"sub_perangkat_daerah_id" bson:"sub_perangkat_daerah_id" validate:"required"`
	TahunAnggaran         int                `json:"tahun_anggaran" bson:"tahun_anggaran" validate:"required,min=2000,max=2100"`
	Indikator             string             `json:"indikator" bson:"indikator" validate:"required"`
	TargetValue           float64            `json:"target_value" bson:"target_value" validate:"required,gt=0"`
	TargetDate            time.Time          `json:"target_date" bson:"target_date" validate:"required"`
	Priority              Priority           `json:"priority" bson:"priority" validate:"required"`
	Status                KinerjaStatus      `json:"status" bson:"status"`
	ActualValue           float64            `json:"actual_value" bson:"actual_value"`
	AchievementPercentage float64            `json:"achievement_percentage" bson:"achievement_percentage"`
	Metadata              Metadata           `json:"metadata" bson:"metadata"`
}
