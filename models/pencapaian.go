package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type AchievementType string

const (
	AchievementNumeric     AchievementType = "numeric"
	AchievementDescriptive AchievementType = "descriptive"
)

func (t AchievementType) Valid() bool {
	return t == AchievementNumeric || t == AchievementDescriptive
}

// EvidenceFile is one uploaded proof document embedded in a Pencapaian.
// Filename is the stored GridFS name, OriginalName the name as uploaded.
type EvidenceFile struct {
	FileID       primitive.ObjectID `json:"file_id" bson:"file_id"`
	Filename     string             `json:"filename" bson:"filename"`
	OriginalName string             `json:"original_name" bson:"original_name"`
	FileSize     int64              `json:"file_size" bson:"file_size"`
	UploadedAt   time.Time          `json:"uploaded_at" bson:"uploaded_at"`
}

// Pencapaian is a periodic achievement report submitted by a unit against
// its Kinerja target. Multiple reports for the same period are allowed.
type Pencapaian struct {
	ID                    primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	KinerjaID             primitive.ObjectID `json:"kinerja_id" bson:"kinerja_id" validate:"required"`
	PeriodMonth           int                `json:"period_month" bson:"period_month" validate:"required,min=1,max=12"`
	PeriodYear            int                `json:"period_year" bson:"period_year" validate:"required,min=2000,max=2100"`
	AchievementValue      float64            `json:"achievement_value" bson:"achievement_value"`
	AchievementType       AchievementType    `json:"achievement_type" bson:"achievement_type" validate:"required"`
	Description           string             `json:"description" bson:"description"`
	AchievementPercentage float64            `json:"achievement_percentage" bson:"achievement_percentage"`
	EvidenceFiles         []EvidenceFile     `json:"evidence_files" bson:"evidence_files"`
	Metadata              Metadata           `json:"metadata" bson:"metadata"`
}
