package repository

import (
	"context"
	"fmt"

	"ekinerja/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// HierarchyRepository reads the administrative reference collections. They
// are admin-authored and rarely change, so only lookups and full lists are
// exposed.
type HierarchyRepository interface {
	ListUrusan(ctx context.Context) ([]models.Urusan, error)
	ListBidang(ctx context.Context) ([]models.Bidang, error)
	ListProgram(ctx context.Context) ([]models.Program, error)
	ListKegiatan(ctx context.Context) ([]models.Kegiatan, error)
	ListSubKegiatan(ctx context.Context) ([]models.SubKegiatan, error)
	GetSubKegiatan(ctx context.Context, id primitive.ObjectID) (*models.SubKegiatan, error)
	GetKodeRekening(ctx context.Context, id primitive.ObjectID) (*models.KodeRekening, error)
	GetSubPerangkatDaerah(ctx context.Context, id primitive.ObjectID) (*models.SubPerangkatDaerah, error)
}

type hierarchyRepository struct {
	urusan             *mongo.Collection
	bidang             *mongo.Collection
	program            *mongo.Collection
	kegiatan           *mongo.Collection
	subKegiatan        *mongo.Collection
	kodeRekening       *mongo.Collection
	subPerangkatDaerah *mongo.Collection
}

func NewHierarchyRepository(db *mongo.Database) HierarchyRepository {
	return &hierarchyRepository{
		urusan:             db.Collection("urusan"),
		bidang:             db.Collection("bidang"),
		program:            db.Collection("program"),
		kegiatan:           db.Collection("kegiatan"),
		subKegiatan:        db.Collection("sub_kegiatan"),
		kodeRekening:       db.Collection("kode_rekening"),
		subPerangkatDaerah: db.Collection("sub_perangkat_daerah"),
	}
}

func (r *hierarchyRepository) ListUrusan(ctx context.Context) ([]models.Urusan, error) {
	cursor, err := r.urusan.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var items []models.Urusan
	if err = cursor.All(ctx, &items); err != nil {
		return nil, err
	}
	return items, nil
}

func (r *hierarchyRepository) ListBidang(ctx context.Context) ([]models.Bidang, error) {
	cursor, err := r.bidang.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var items []models.Bidang
	if err = cursor.All(ctx, &items); err != nil {
		return nil, err
	}
	return items, nil
}

func (r *hierarchyRepository) ListProgram(ctx context.Context) ([]models.Program, error) {
	cursor, err := r.program.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var items []models.Program
	if err = cursor.All(ctx, &items); err != nil {
		return nil, err
	}
	return items, nil
}

func (r *hierarchyRepository) ListKegiatan(ctx context.Context) ([]models.Kegiatan, error) {
	cursor, err := r.kegiatan.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var items []models.Kegiatan
	if err = cursor.All(ctx, &items); err != nil {
		return nil, err
	}
	return items, nil
}

func (r *hierarchyRepository) ListSubKegiatan(ctx context.Context) ([]models.SubKegiatan, error) {
	cursor, err := r.subKegiatan.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var items []models.SubKegiatan
	if err = cursor.All(ctx, &items); err != nil {
		return nil, err
	}
	return items, nil
}

func (r *hierarchyRepository) GetSubKegiatan(ctx context.Context, id primitive.ObjectID) (*models.SubKegiatan, error) {
	var sub models.SubKegiatan
	err := r.subKegiatan.FindOne(ctx, bson.M{"_id": id}).Decode(&sub)
	if err != nil {
		return nil, fmt.Errorf("sub kegiatan %s: %w", id.Hex(), err)
	}
	return &sub, nil
}

func (r *hierarchyRepository) GetKodeRekening(ctx context.Context, id primitive.ObjectID) (*models.KodeRekening, error) {
	var kode models.KodeRekening
	err := r.kodeRekening.FindOne(ctx, bson.M{"_id": id}).Decode(&kode)
	if err != nil {
		return nil, fmt.Errorf("kode rekening %s: %w", id.Hex(), err)
	}
	return &kode, nil
}

func (r *hierarchyRepository) GetSubPerangkatDaerah(ctx context.Context, id primitive.ObjectID) (*models.SubPerangkatDaerah, error) {
	var unit models.SubPerangkatDaerah
	err := r.subPerangkatDaerah.FindOne(ctx, bson.M{"_id": id}).Decode(&unit)
	if err != nil {
		return nil, fmt.Errorf("sub perangkat daerah %s: %w", id.Hex(), err)
	}
	return &unit, nil
}
