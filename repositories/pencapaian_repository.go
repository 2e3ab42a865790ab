package repository

import (
	"context"
	"fmt"
	"io"
	"time"

	"ekinerja/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/gridfs"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// PencapaianFilter narrows the list query. Nil fields are ignored.
type PencapaianFilter struct {
	KinerjaID   *primitive.ObjectID
	PeriodMonth *int
	PeriodYear  *int
}

type PencapaianRepository interface {
	Create(ctx context.Context, pencapaian *models.Pencapaian) error
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.Pencapaian, error)
	List(ctx context.Context, filter PencapaianFilter) ([]models.Pencapaian, error)
	Update(ctx context.Context, id primitive.ObjectID, pencapaian *models.Pencapaian) error
	Delete(ctx context.Context, id primitive.ObjectID) error
	// Evidence file methods
	AddEvidence(ctx context.Context, id primitive.ObjectID, evidence models.EvidenceFile, updatedBy string) error
	RemoveEvidence(ctx context.Context, id, fileID primitive.ObjectID, updatedBy string) error
	// GridFS methods
	UploadFile(ctx context.Context, filename string, fileData io.Reader, uploadedBy string, contentType string) (primitive.ObjectID, error)
	DownloadFile(ctx context.Context, fileID primitive.ObjectID) (*gridfs.DownloadStream, error)
	DeleteFile(ctx context.Context, fileID primitive.ObjectID) error
}

type pencapaianRepository struct {
	collection *mongo.Collection
	bucket     *gridfs.Bucket
}

func NewPencapaianRepository(db *mongo.Database) PencapaianRepository {
	bucket, err := gridfs.NewBucket(db)
	if err != nil {
		panic(fmt.Sprintf("Failed to create GridFS bucket: %v", err))
	}

	return &pencapaianRepository{
		collection: db.Collection("pencapaian"),
		bucket:     bucket,
	}
}

func (r *pencapaianRepository) Create(ctx context.Context, pencapaian *models.Pencapaian) error {
	pencapaian.ID = primitive.NewObjectID()

	_, err := r.collection.InsertOne(ctx, pencapaian)
	return err
}

func (r *pencapaianRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Pencapaian, error) {
	var pencapaian models.Pencapaian
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&pencapaian)
	if err != nil {
		return nil, err
	}

	return &pencapaian, nil
}

func (r *pencapaianRepository) List(ctx context.Context, filter PencapaianFilter) ([]models.Pencapaian, error) {
	query := bson.M{}
	if filter.KinerjaID != nil {
		query["kinerja_id"] = *filter.KinerjaID
	}
	if filter.PeriodMonth != nil {
		query["period_month"] = *filter.PeriodMonth
	}
	if filter.PeriodYear != nil {
		query["period_year"] = *filter.PeriodYear
	}

	// Duplicates per period are possible; the sort keeps them adjacent.
	opts := options.Find().SetSort(bson.D{
		{Key: "period_year", Value: 1},
		{Key: "period_month", Value: 1},
		{Key: "metadata.created_at", Value: 1},
	})

	cursor, err := r.collection.Find(ctx, query, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var items []models.Pencapaian
	if err = cursor.All(ctx, &items); err != nil {
		return nil, err
	}
	return items, nil
}

func (r *pencapaianRepository) Update(ctx context.Context, id primitive.ObjectID, pencapaian *models.Pencapaian) error {
	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": pencapaian})
	if err != nil {
		return err
	}

	if result.MatchedCount == 0 {
		return fmt.Errorf("no document found with id %s", id.Hex())
	}

	return nil
}

func (r *pencapaianRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}

	if result.DeletedCount == 0 {
		return fmt.Errorf("no document found with id %s", id.Hex())
	}

	return nil
}

func (r *pencapaianRepository) AddEvidence(ctx context.Context, id primitive.ObjectID, evidence models.EvidenceFile, updatedBy string) error {
	update := bson.M{
		"$push": bson.M{
			"evidence_files": evidence,
		},
		"$set": bson.M{
			"metadata.updated_at": time.Now(),
			"metadata.updated_by": updatedBy,
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

func (r *pencapaianRepository) RemoveEvidence(ctx context.Context, id, fileID primitive.ObjectID, updatedBy string) error {
	update := bson.M{
		"$pull": bson.M{
			"evidence_files": bson.M{"file_id": fileID},
		},
		"$set": bson.M{
			"metadata.updated_at": time.Now(),
			"metadata.updated_by": updatedBy,
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

func (r *pencapaianRepository) UploadFile(ctx context.Context, filename string, fileData io.Reader, uploadedBy string, contentType string) (primitive.ObjectID, error) {
	uploadOpts := options.GridFSUpload().SetMetadata(bson.M{
		"uploadedBy":  uploadedBy,
		"uploadedAt":  time.Now(),
		"contentType": contentType,
	})

	fileID, err := r.bucket.UploadFromStream(filename, fileData, uploadOpts)
	if err != nil {
		return primitive.NilObjectID, fmt.Errorf("failed to upload file to GridFS: %v", err)
	}

	return fileID, nil
}

func (r *pencapaianRepository) DownloadFile(ctx context.Context, fileID primitive.ObjectID) (*gridfs.DownloadStream, error) {
	downloadStream, err := r.bucket.OpenDownloadStream(fileID)
	if err != nil {
		return nil, fmt.Errorf("failed to download file from GridFS: %v", err)
	}

	return downloadStream, nil
}

func (r *pencapaianRepository) DeleteFile(ctx context.Context, fileID primitive.ObjectID) error {
	return r.bucket.Delete(fileID)
}
