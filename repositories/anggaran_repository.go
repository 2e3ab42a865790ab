package repository

import (
	"context"
	"errors"
	"fmt"

	"ekinerja/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type AnggaranRepository interface {
	Create(ctx context.Context, anggaran *models.Anggaran) error
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.Anggaran, error)
	GetBySubKegiatanYear(ctx context.Context, subKegiatanID primitive.ObjectID, tahun int) (*models.Anggaran, error)
	ListByYear(ctx context.Context, tahun int) ([]models.Anggaran, error)
	Replace(ctx context.Context, id primitive.ObjectID, anggaran *models.Anggaran) error
}

type anggaranRepository struct {
	collection *mongo.Collection
}

func NewAnggaranRepository(db *mongo.Database) AnggaranRepository {
	return &anggaranRepository{
		collection: db.Collection("anggaran"),
	}
}

func (r *anggaranRepository) Create(ctx context.Context, anggaran *models.Anggaran) error {
	anggaran.ID = primitive.NewObjectID()

	_, err := r.collection.InsertOne(ctx, anggaran)
	return err
}

func (r *anggaranRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Anggaran, error) {
	var anggaran models.Anggaran
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&anggaran)
	if err != nil {
		return nil, err
	}

	return &anggaran, nil
}

// GetBySubKegiatanYear returns (nil, nil) when no allocation exists yet, so
// callers can distinguish "not created" from a store failure.
func (r *anggaranRepository) GetBySubKegiatanYear(ctx context.Context, subKegiatanID primitive.ObjectID, tahun int) (*models.Anggaran, error) {
	filter := bson.M{"sub_kegiatan_id": subKegiatanID, "tahun_anggaran": tahun}

	var anggaran models.Anggaran
	err := r.collection.FindOne(ctx, filter).Decode(&anggaran)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return &anggaran, nil
}

func (r *anggaranRepository) ListByYear(ctx context.Context, tahun int) ([]models.Anggaran, error) {
	cursor, err := r.collection.Find(ctx, bson.M{"tahun_anggaran": tahun})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var items []models.Anggaran
	if err = cursor.All(ctx, &items); err != nil {
		return nil, err
	}
	return items, nil
}

// Replace writes the whole document in one operation so the allocation list
// and its recomputed total can never diverge mid-write.
func (r *anggaranRepository) Replace(ctx context.Context, id primitive.ObjectID, anggaran *models.Anggaran) error {
	result, err := r.collection.ReplaceOne(ctx, bson.M{"_id": id}, anggaran)
	if err != nil {
		return err
	}

	if result.MatchedCount == 0 {
		return fmt.Errorf("no document found with id %s", id.Hex())
	}

	return nil
}
