package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Administrative hierarchy reference data:
// Urusan -> Bidang -> Program -> Kegiatan -> SubKegiatan.
//
// Parent references are declared as interface{} because legacy documents
// carry them in mixed shapes (ObjectID, hex string, {_id: ...} subdocument,
// extended-JSON {$oid: ...}). All comparisons go through utils.ExtractID.

type Urusan struct {
	ID   primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Kode string             `json:"kode" bson:"kode" validate:"required"`
	Nama string             `json:"nama" bson:"nama" validate:"required"`
}

type Bidang struct {
	ID       primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Kode     string             `json:"kode" bson:"kode" validate:"required"`
	Nama     string             `json:"nama" bson:"nama" validate:"required"`
	UrusanID interface{}        `json:"urusan_id" bson:"urusan_id"`
}

type Program struct {
	ID       primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Kode     string             `json:"kode" bson:"kode" validate:"required"`
	Nama     string             `json:"nama" bson:"nama" validate:"required"`
	BidangID interface{}        `json:"bidang_id" bson:"bidang_id"`
}

type Kegiatan struct {
	ID        primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Kode      string             `json:"kode" bson:"kode" validate:"required"`
	Nama      string             `json:"nama" bson:"nama" validate:"required"`
	ProgramID interface{}        `json:"program_id" bson:"program_id"`
}

type SubKegiatan struct {
	ID         primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Kode       string             `json:"kode" bson:"kode" validate:"required"`
	Nama       string             `json:"nama" bson:"nama" validate:"required"`
	KegiatanID interface{}        `json:"kegiatan_id" bson:"kegiatan_id"`
}

// SubPerangkatDaerah is the administrative unit that owns performance
// targets and authors achievement reports.
type SubPerangkatDaerah struct {
	ID                primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Nama              string             `json:"nama" bson:"nama" validate:"required"`
	PerangkatDaerahID interface{}        `json:"perangkat_daerah_id" bson:"perangkat_daerah_id"`
}

type KodeRekening struct {
	ID   primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Kode string             `json:"kode" bson:"kode" validate:"required"`
	Nama string             `json:"nama" bson:"nama" validate:"required"`
}

type SumberDana struct {
	ID   primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Nama string             `json:"nama" bson:"nama" validate:"required"`
}
