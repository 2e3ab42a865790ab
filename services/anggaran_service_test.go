package services

import (
	"context"
	"testing"

	"ekinerja/apperrors"
	"ekinerja/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestCreateOrUpdateAllocation(t *testing.T) {
	subKegiatanID := primitive.NewObjectID()
	kodeA := primitive.NewObjectID()
	kodeB := primitive.NewObjectID()

	newHierarchy := func() *fakeHierarchyRepo {
		return &fakeHierarchyRepo{
			subKegiatan: []models.SubKegiatan{{ID: subKegiatanID, Kode: "0001", Nama: "Penyusunan Dokumen"}},
			kodeRekening: []models.KodeRekening{
				{ID: kodeA, Kode: "5.1.02.01", Nama: "Belanja Barang"},
				{ID: kodeB, Kode: "5.1.02.02", Nama: "Belanja Jasa"},
			},
		}
	}

	t.Run("create sums allocations", func(t *testing.T) {
		repo := &fakeAnggaranRepo{}
		svc := NewAnggaranService(repo, newHierarchy())

		anggaran, err := svc.CreateOrUpdateAllocation(context.Background(), subKegiatanID, 2026, nil, []AllocationInput{
			{KodeRekeningID: kodeA.Hex(), Amount: 1_000_000},
			{KodeRekeningID: kodeB.Hex(), Amount: 500_000},
		}, "admin")
		if err != nil {
			t.Fatalf("CreateOrUpdateAllocation() error = %v", err)
		}
		if anggaran.TotalAmount != 1_500_000 {
			t.Errorf("TotalAmount = %v, want 1500000", anggaran.TotalAmount)
		}
		if len(repo.items) != 1 {
			t.Fatalf("expected 1 stored anggaran, got %d", len(repo.items))
		}
	})

	t.Run("update replaces lines and recomputes total", func(t *testing.T) {
		repo := &fakeAnggaranRepo{}
		svc := NewAnggaranService(repo, newHierarchy())

		ctx := context.Background()
		if _, err := svc.CreateOrUpdateAllocation(ctx, subKegiatanID, 2026, nil, []AllocationInput{
			{KodeRekeningID: kodeA.Hex(), Amount: 1_000_000},
			{KodeRekeningID: kodeB.Hex(), Amount: 500_000},
		}, "admin"); err != nil {
			t.Fatalf("create: %v", err)
		}

		anggaran, err := svc.CreateOrUpdateAllocation(ctx, subKegiatanID, 2026, nil, []AllocationInput{
			{KodeRekeningID: kodeA.Hex(), Amount: 750_000},
		}, "admin")
		if err != nil {
			t.Fatalf("update: %v", err)
		}
		if anggaran.TotalAmount != 750_000 {
			t.Errorf("TotalAmount = %v, want 750000", anggaran.TotalAmount)
		}
		if len(anggaran.Allocations) != 1 {
			t.Errorf("expected 1 allocation line after update, got %d", len(anggaran.Allocations))
		}
		if len(repo.items) != 1 {
			t.Errorf("expected update in place, got %d stored documents", len(repo.items))
		}
	})

	t.Run("zero amount line is allowed", func(t *testing.T) {
		svc := NewAnggaranService(&fakeAnggaranRepo{}, newHierarchy())

		anggaran, err := svc.CreateOrUpdateAllocation(context.Background(), subKegiatanID, 2026, nil, []AllocationInput{
			{KodeRekeningID: kodeA.Hex(), Amount: 0},
		}, "admin")
		if err != nil {
			t.Fatalf("CreateOrUpdateAllocation() error = %v", err)
		}
		if anggaran.TotalAmount != 0 {
			t.Errorf("TotalAmount = %v, want 0", anggaran.TotalAmount)
		}
	})

	t.Run("validation and lookup failures", func(t *testing.T) {
		tests := []struct {
			name          string
			subKegiatanID primitive.ObjectID
			allocations   []AllocationInput
			wantKind      apperrors.Kind
		}{
			{
				name:          "empty allocations",
				subKegiatanID: subKegiatanID,
				allocations:   nil,
				wantKind:      apperrors.KindValidation,
			},
			{
				name:          "unknown sub kegiatan",
				subKegiatanID: primitive.NewObjectID(),
				allocations:   []AllocationInput{{KodeRekeningID: kodeA.Hex(), Amount: 100}},
				wantKind:      apperrors.KindNotFound,
			},
			{
				name:          "malformed kode rekening id",
				subKegiatanID: subKegiatanID,
				allocations:   []AllocationInput{{KodeRekeningID: "zzz", Amount: 100}},
				wantKind:      apperrors.KindValidation,
			},
			{
				name:          "unknown kode rekening",
				subKegiatanID: subKegiatanID,
				allocations:   []AllocationInput{{KodeRekeningID: primitive.NewObjectID().Hex(), Amount: 100}},
				wantKind:      apperrors.KindNotFound,
			},
			{
				name:          "negative amount",
				subKegiatanID: subKegiatanID,
				allocations:   []AllocationInput{{KodeRekeningID: kodeA.Hex(), Amount: -1}},
				wantKind:      apperrors.KindValidation,
			},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				svc := NewAnggaranService(&fakeAnggaranRepo{}, newHierarchy())
				_, err := svc.CreateOrUpdateAllocation(context.Background(), tt.subKegiatanID, 2026, nil, tt.allocations, "admin")
				if err == nil {
					t.Fatal("expected error, got nil")
				}
				if got := apperrors.KindOf(err); got != tt.wantKind {
					t.Errorf("error kind = %q, want %q", got, tt.wantKind)
				}
			})
		}
	})
}

func TestGetAllocation(t *testing.T) {
	subKegiatanID := primitive.NewObjectID()
	repo := &fakeAnggaranRepo{}
	svc := NewAnggaranService(repo, &fakeHierarchyRepo{})

	_, err := svc.GetAllocation(context.Background(), subKegiatanID, 2026)
	if apperrors.KindOf(err) != apperrors.KindNotFound {
		t.Errorf("error kind = %q, want %q", apperrors.KindOf(err), apperrors.KindNotFound)
	}

	stored := &models.Anggaran{SubKegiatanID: subKegiatanID, TahunAnggaran: 2026}
	repo.Create(context.Background(), stored)

	got, err := svc.GetAllocation(context.Background(), subKegiatanID, 2026)
	if err != nil {
		t.Fatalf("GetAllocation() error = %v", err)
	}
	if got.ID != stored.ID {
		t.Errorf("GetAllocation() returned wrong document")
	}
}
