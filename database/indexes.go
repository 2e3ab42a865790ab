package database

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// CreateIndexes builds the indexes every collection relies on, including the
// unique indexes backing the one-allocation-per-activity-year and
// one-target-per-unit-allocation-year constraints.
func CreateIndexes(db *mongo.Database) error {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	anggaranIndexes := []mongo.IndexModel{
		// LOOKUP + CONSTRAINT: one allocation document per activity and year
		// Used by: GetBySubKegiatanYear, CreateOrUpdateAllocation
		{
			Keys: bson.D{
				{Key: "sub_kegiatan_id", Value: 1},
				{Key: "tahun_anggaran", Value: 1},
			},
			Options: options.Index().SetName("idx_sub_kegiatan_tahun").SetUnique(true),
		},
	}
	if _, err := db.Collection("anggaran").Indexes().CreateMany(ctx, anggaranIndexes); err != nil {
		return fmt.Errorf("failed to create anggaran indexes: %v", err)
	}

	kinerjaIndexes := []mongo.IndexModel{
		// CONSTRAINT: one target per unit, allocation and year
		// Used by: CreateKinerja conflict check, BoundAnggaranIDs
		{
			Keys: bson.D{
				{Key: "sub_perangkat_daerah_id", Value: 1},
				{Key: "anggaran_id", Value: 1},
				{Key: "tahun_anggaran", Value: 1},
			},
			Options: options.Index().SetName("idx_unit_anggaran_tahun").SetUnique(true),
		},
		// LISTING: per-unit target lists
		// Used by: ListByUnitYear
		{
			Keys: bson.D{
				{Key: "sub_perangkat_daerah_id", Value: 1},
				{Key: "tahun_anggaran", Value: 1},
			},
			Options: options.Index().SetName("idx_unit_tahun"),
		},
	}
	if _, err := db.Collection("kinerja").Indexes().CreateMany(ctx, kinerjaIndexes); err != nil {
		return fmt.Errorf("failed to create kinerja indexes: %v", err)
	}

	pencapaianIndexes := []mongo.IndexModel{
		// LISTING: reports per target and period; not unique, duplicate
		// reports for one period are allowed
		{
			Keys: bson.D{
				{Key: "kinerja_id", Value: 1},
				{Key: "period_year", Value: 1},
				{Key: "period_month", Value: 1},
			},
			Options: options.Index().SetName("idx_kinerja_period"),
		},
	}
	if _, err := db.Collection("pencapaian").Indexes().CreateMany(ctx, pencapaianIndexes); err != nil {
		return fmt.Errorf("failed to create pencapaian indexes: %v", err)
	}

	realisasiIndexes := []mongo.IndexModel{
		// LISTING + AGGREGATION: rows per activity and period
		// Used by: List, aggregate absorption
		{
			Keys: bson.D{
				{Key: "sub_kegiatan_id", Value: 1},
				{Key: "year", Value: 1},
				{Key: "month", Value: 1},
			},
			Options: options.Index().SetName("idx_sub_kegiatan_period"),
		},
		{
			Keys: bson.D{
				{Key: "kode_rekening_id", Value: 1},
				{Key: "year", Value: 1},
			},
			Options: options.Index().SetName("idx_kode_rekening_year"),
		},
	}
	if _, err := db.Collection("realisasi").Indexes().CreateMany(ctx, realisasiIndexes); err != nil {
		return fmt.Errorf("failed to create realisasi indexes: %v", err)
	}

	evaluasiKinerjaIndexes := []mongo.IndexModel{
		// CONSTRAINT: one evaluation per achievement report
		{
			Keys:    bson.D{{Key: "pencapaian_id", Value: 1}},
			Options: options.Index().SetName("idx_pencapaian").SetUnique(true),
		},
		// LISTING: review queue by workflow state
		{
			Keys:    bson.D{{Key: "evaluation_status", Value: 1}},
			Options: options.Index().SetName("idx_evaluation_status"),
		},
	}
	if _, err := db.Collection("evaluasi_kinerja").Indexes().CreateMany(ctx, evaluasiKinerjaIndexes); err != nil {
		return fmt.Errorf("failed to create evaluasi_kinerja indexes: %v", err)
	}

	evaluasiRealisasiIndexes := []mongo.IndexModel{
		// CONSTRAINT: one evaluation per realization row
		{
			Keys:    bson.D{{Key: "realisasi_id", Value: 1}},
			Options: options.Index().SetName("idx_realisasi").SetUnique(true),
		},
	}
	if _, err := db.Collection("evaluasi_realisasi").Indexes().CreateMany(ctx, evaluasiRealisasiIndexes); err != nil {
		return fmt.Errorf("failed to create evaluasi_realisasi indexes: %v", err)
	}

	fmt.Println("Database indexes created successfully")
	return nil
}
