package services

import (
	"context"
	"testing"

	"ekinerja/apperrors"
	"ekinerja/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func newHierarchyServiceFixture() (*fakeHierarchyRepo, primitive.ObjectID, primitive.ObjectID) {
	urusanID := primitive.NewObjectID()
	bidangID := primitive.NewObjectID()
	programID := primitive.NewObjectID()
	kegiatanID := primitive.NewObjectID()
	subID := primitive.NewObjectID()

	repo := &fakeHierarchyRepo{
		urusan:   []models.Urusan{{ID: urusanID, Kode: "1", Nama: "Pendidikan"}},
		bidang:   []models.Bidang{{ID: bidangID, Kode: "01", UrusanID: urusanID}},
		program:  []models.Program{{ID: programID, Kode: "02", BidangID: bidangID.Hex()}},
		kegiatan: []models.Kegiatan{{ID: kegiatanID, Kode: "2.01", ProgramID: bson.M{"$oid": programID.Hex()}}},
		subKegiatan: []models.SubKegiatan{
			{ID: subID, Kode: "0001", Nama: "Penyusunan Dokumen", KegiatanID: kegiatanID},
			{ID: primitive.NewObjectID(), Kode: "0002", Nama: "Yatim", KegiatanID: primitive.NewObjectID()},
		},
	}
	return repo, subID, kegiatanID
}

func TestGetFullCode(t *testing.T) {
	repo, subID, _ := newHierarchyServiceFixture()
	svc := NewHierarchyService(repo)

	code, err := svc.GetFullCode(context.Background(), subID)
	if err != nil {
		t.Fatalf("GetFullCode() error = %v", err)
	}
	if code != "1.01.02.2.01.0001" {
		t.Errorf("GetFullCode() = %q, want %q", code, "1.01.02.2.01.0001")
	}

	_, err = svc.GetFullCode(context.Background(), primitive.NewObjectID())
	if apperrors.KindOf(err) != apperrors.KindNotFound {
		t.Errorf("error kind = %q, want %q", apperrors.KindOf(err), apperrors.KindNotFound)
	}
}

func TestListSubKegiatanWithCodes(t *testing.T) {
	repo, _, _ := newHierarchyServiceFixture()
	svc := NewHierarchyService(repo)

	items, err := svc.ListSubKegiatan(context.Background())
	if err != nil {
		t.Fatalf("ListSubKegiatan() error = %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("expected 2 items, got %d", len(items))
	}
	if items[0].FullCode != "1.01.02.2.01.0001" {
		t.Errorf("items[0].FullCode = %q, want full chain", items[0].FullCode)
	}
	// broken parent chain still yields the activity's own kode
	if items[1].FullCode != "0002" {
		t.Errorf("items[1].FullCode = %q, want %q", items[1].FullCode, "0002")
	}
}
