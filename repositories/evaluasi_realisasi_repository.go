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

// EvaluasiRealisasiFilter narrows the list query. Nil fields are ignored.
type EvaluasiRealisasiFilter struct {
	RealisasiID *primitive.ObjectID
	Status      *models.RealizationRating
}

type EvaluasiRealisasiRepository interface {
	Create(ctx context.Context, evaluasi *models.EvaluasiRealisasi) error
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.EvaluasiRealisasi, error)
	GetByRealisasiID(ctx context.Context, realisasiID primitive.ObjectID) (*models.EvaluasiRealisasi, error)
	List(ctx context.Context, filter EvaluasiRealisasiFilter) ([]models.EvaluasiRealisasi, error)
	Update(ctx context.Context, id primitive.ObjectID, evaluasi *models.EvaluasiRealisasi) error
}

type evaluasiRealisasiRepository struct {
	collection *mongo.Collection
}

func NewEvaluasiRealisasiRepository(db *mongo.Database) EvaluasiRealisasiRepository {
	return &evaluasiRealisasiRepository{
		collection: db.Collection("evaluasi_realisasi"),
	}
}

func (r *evaluasiRealisasiRepository) Create(ctx context.Context, evaluasi *models.EvaluasiRealisasi) error {
	evaluasi.ID = primitive.NewObjectID()

	_, err := r.collection.InsertOne(ctx, evaluasi)
	return err
}

func (r *evaluasiRealisasiRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*models.EvaluasiRealisasi, error) {
	var evaluasi models.EvaluasiRealisasi
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&evaluasi)
	if err != nil {
		return nil, err
	}

	return &evaluasi, nil
}

// GetByRealisasiID returns (nil, nil) when the row has no evaluation yet.
func (r *evaluasiRealisasiRepository) GetByRealisasiID(ctx context.Context, realisasiID primitive.ObjectID) (*models.EvaluasiRealisasi, error) {
	var evaluasi models.EvaluasiRealisasi
	err := r.collection.FindOne(ctx, bson.M{"realisasi_id": realisasiID}).Decode(&evaluasi)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return &evaluasi, nil
}

func (r *evaluasiRealisasiRepository) List(ctx context.Context, filter EvaluasiRealisasiFilter) ([]models.EvaluasiRealisasi, error) {
	query := bson.M{}
	if filter.RealisasiID != nil {
		query["realisasi_id"] = *filter.RealisasiID
	}
	if filter.Status != nil {
		query["evaluation_status"] = *filter.Status
	}

	cursor, err := r.collection.Find(ctx, query)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var items []models.EvaluasiRealisasi
	if err = cursor.All(ctx, &items); err != nil {
		return nil, err
	}
	return items, nil
}

func (r *evaluasiRealisasiRepository) Update(ctx context.Context, id primitive.ObjectID, evaluasi *models.EvaluasiRealisasi) error {
	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": evaluasi})
	if err != nil {
		return err
	}

	if result.MatchedCount == 0 {
		return fmt.Errorf("no document found with id %s", id.Hex())
	}

	return nil
}
