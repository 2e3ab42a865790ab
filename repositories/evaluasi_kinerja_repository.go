package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"ekinerja/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// EvaluasiKinerjaFilter narrows the list query. Nil fields are ignored.
type EvaluasiKinerjaFilter struct {
	PencapaianID *primitive.ObjectID
	KinerjaID    *primitive.ObjectID
	Status       *models.EvaluationStatus
}

type EvaluasiKinerjaRepository interface {
	Create(ctx context.Context, evaluasi *models.EvaluasiKinerja) error
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.EvaluasiKinerja, error)
	GetByPencapaianID(ctx context.Context, pencapaianID primitive.ObjectID) (*models.EvaluasiKinerja, error)
	List(ctx context.Context, filter EvaluasiKinerjaFilter) ([]models.EvaluasiKinerja, error)
	UpdateStatus(ctx context.Context, id primitive.ObjectID, status models.EvaluationStatus, fields bson.M, updatedBy string) error
}

type evaluasiKinerjaRepository struct {
	collection *mongo.Collection
}

func NewEvaluasiKinerjaRepository(db *mongo.Database) EvaluasiKinerjaRepository {
	return &evaluasiKinerjaRepository{
		collection: db.Collection("evaluasi_kinerja"),
	}
}

func (r *evaluasiKinerjaRepository) Create(ctx context.Context, evaluasi *models.EvaluasiKinerja) error {
	evaluasi.ID = primitive.NewObjectID()

	_, err := r.collection.InsertOne(ctx, evaluasi)
	return err
}

func (r *evaluasiKinerjaRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*models.EvaluasiKinerja, error) {
	var evaluasi models.EvaluasiKinerja
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&evaluasi)
	if err != nil {
		return nil, err
	}

	return &evaluasi, nil
}

// GetByPencapaianID returns (nil, nil) when the report has no evaluation yet.
func (r *evaluasiKinerjaRepository) GetByPencapaianID(ctx context.Context, pencapaianID primitive.ObjectID) (*models.EvaluasiKinerja, error) {
	var evaluasi models.EvaluasiKinerja
	err := r.collection.FindOne(ctx, bson.M{"pencapaian_id": pencapaianID}).Decode(&evaluasi)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return &evaluasi, nil
}

func (r *evaluasiKinerjaRepository) List(ctx context.Context, filter EvaluasiKinerjaFilter) ([]models.EvaluasiKinerja, error) {
	query := bson.M{}
	if filter.PencapaianID != nil {
		query["pencapaian_id"] = *filter.PencapaianID
	}
	if filter.KinerjaID != nil {
		query["kinerja_id"] = *filter.KinerjaID
	}
	if filter.Status != nil {
		query["evaluation_status"] = *filter.Status
	}

	cursor, err := r.collection.Find(ctx, query)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var items []models.EvaluasiKinerja
	if err = cursor.All(ctx, &items); err != nil {
		return nil, err
	}
	return items, nil
}

// UpdateStatus writes the new workflow state plus any transition-specific
// fields in one document update.
func (r *evaluasiKinerjaRepository) UpdateStatus(ctx context.Context, id primitive.ObjectID, status models.EvaluationStatus, fields bson.M, updatedBy string) error {
	set := bson.M{
		"evaluation_status":   status,
		"metadata.updated_at": time.Now(),
		"metadata.updated_by": updatedBy,
	}
	for k, v := range fields {
		set[k] = v
	}

	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": set})
	if err != nil {
		return err
	}

	if result.MatchedCount == 0 {
		return fmt.Errorf("no document found with id %s", id.Hex())
	}

	return nil
}
