package repository

import (
	"context"
	"fmt"
	"time"

	"ekinerja/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type KinerjaRepository interface {
	Create(ctx context.Context, kinerja *models.Kinerja) error
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.Kinerja, error)
	ListByUnitYear(ctx context.Context, unitID primitive.ObjectID, tahun int) ([]models.Kinerja, error)
	CountByUnitAnggaranYear(ctx context.Context, unitID, anggaranID primitive.ObjectID, tahun int) (int64, error)
	BoundAnggaranIDs(ctx context.Context, unitID primitive.ObjectID, tahun int) ([]primitive.ObjectID, error)
	UpdateActual(ctx context.Context, id primitive.ObjectID, actualValue, achievementPercentage float64, status models.KinerjaStatus, updatedBy string) error
}

type kinerjaRepository struct {
	collection *mongo.Collection
}

func NewKinerjaRepository(db *mongo.Database) KinerjaRepository {
	return &kinerjaRepository{
		collection: db.Collection("kinerja"),
	}
}

func (r *kinerjaRepository) Create(ctx context.Context, kinerja *models.Kinerja) error {
	kinerja.ID = primitive.NewObjectID()

	_, err := r.collection.InsertOne(ctx, kinerja)
	return err
}

func (r *kinerjaRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Kinerja, error) {
	var kinerja models.Kinerja
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&kinerja)
	if err != nil {
		return nil, err
	}

	return &kinerja, nil
}

func (r *kinerjaRepository) ListByUnitYear(ctx context.Context, unitID primitive.ObjectID, tahun int) ([]models.Kinerja, error) {
	filter := bson.M{"sub_perangkat_daerah_id": unitID, "tahun_anggaran": tahun}

	cursor, err := r.collection.Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var items []models.Kinerja
	if err = cursor.All(ctx, &items); err != nil {
		return nil, err
	}
	return items, nil
}

func (r *kinerjaRepository) CountByUnitAnggaranYear(ctx context.Context, unitID, anggaranID primitive.ObjectID, tahun int) (int64, error) {
	filter := bson.M{
		"sub_perangkat_daerah_id": unitID,
		"anggaran_id":             anggaranID,
		"tahun_anggaran":          tahun,
	}
	return r.collection.CountDocuments(ctx, filter)
}

// BoundAnggaranIDs lists the anggaran ids already tied to a kinerja for the
// unit and year, used to exclude them from the eligible set.
func (r *kinerjaRepository) BoundAnggaranIDs(ctx context.Context, unitID primitive.ObjectID, tahun int) ([]primitive.ObjectID, error) {
	filter := bson.M{"sub_perangkat_daerah_id": unitID, "tahun_anggaran": tahun}

	values, err := r.collection.Distinct(ctx, "anggaran_id", filter)
	if err != nil {
		return nil, err
	}

	ids := make([]primitive.ObjectID, 0, len(values))
	for _, v := range values {
		if oid, ok := v.(primitive.ObjectID); ok {
			ids = append(ids, oid)
		}
	}
	return ids, nil
}

func (r *kinerjaRepository) UpdateActual(ctx context.Context, id primitive.ObjectID, actualValue, achievementPercentage float64, status models.KinerjaStatus, updatedBy string) error {
	update := bson.M{
		"$set": bson.M{
			"actual_value":           actualValue,
			"achievement_percentage": achievementPercentage,
			"status":                 status,
			"metadata.updated_at":    time.Now(),
			"metadata.updated_by":    updatedBy,
		},
	}

	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, update)
	if err != nil {
		return err
	}

	if result.MatchedCount == 0 {
		return fmt.Errorf("no document found with id %s", id.Hex())
	}

	return nil
}
