package repository

import (
	"context"

	"ekinerja/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// RealisasiFilter narrows the list query. Nil fields are ignored.
type RealisasiFilter struct {
	SubKegiatanID  *primitive.ObjectID
	KodeRekeningID *primitive.ObjectID
	Month          *int
	Year           *int
}

type RealisasiRepository interface {
	Create(ctx context.Context, realisasi *models.Realisasi) error
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.Realisasi, error)
	List(ctx context.Context, filter RealisasiFilter) ([]models.Realisasi, error)
}

type realisasiRepository struct {
	collection *mongo.Collection
}

func NewRealisasiRepository(db *mongo.Database) RealisasiRepository {
	return &realisasiRepository{
		collection: db.Collection("realisasi"),
	}
}

func (r *realisasiRepository) Create(ctx context.Context, realisasi *models.Realisasi) error {
	realisasi.ID = primitive.NewObjectID()

	_, err := r.collection.InsertOne(ctx, realisasi)
	return err
}

func (r *realisasiRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Realisasi, error) {
	var realisasi models.Realisasi
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&realisasi)
	if err != nil {
		return nil, err
	}

	return &realisasi, nil
}

// List returns all matching rows from a single Find, so an aggregate over
// the result never mixes read snapshots.
func (r *realisasiRepository) List(ctx context.Context, filter RealisasiFilter) ([]models.Realisasi, error) {
	query := bson.M{}
	if filter.SubKegiatanID != nil {
		query["sub_kegiatan_id"] = *filter.SubKegiatanID
	}
	if filter.KodeRekeningID != nil {
		query["kode_rekening_id"] = *filter.KodeRekeningID
	}
	if filter.Month != nil {
		query["month"] = *filter.Month
	}
	if filter.Year != nil {
		query["year"] = *filter.Year
	}

	opts := options.Find().SetSort(bson.D{
		{Key: "year", Value: 1},
		{Key: "month", Value: 1},
	})

	cursor, err := r.collection.Find(ctx, query, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var items []models.Realisasi
	if err = cursor.All(ctx, &items); err != nil {
		return nil, err
	}
	return items, nil
}
