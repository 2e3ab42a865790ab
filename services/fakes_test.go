package services

import (
	"context"
	"io"

	"ekinerja/models"
	repository "ekinerja/repositories"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/gridfs"
)

// In-memory repository fakes. Lookups that miss return
// mongo.ErrNoDocuments, matching the driver.

type fakeHierarchyRepo struct {
	urusan       []models.Urusan
	bidang       []models.Bidang
	program      []models.Program
	kegiatan     []models.Kegiatan
	subKegiatan  []models.SubKegiatan
	kodeRekening []models.KodeRekening
	units        []models.SubPerangkatDaerah
}

func (f *fakeHierarchyRepo) ListUrusan(ctx context.Context) ([]models.Urusan, error) {
	return f.urusan, nil
}

func (f *fakeHierarchyRepo) ListBidang(ctx context.Context) ([]models.Bidang, error) {
	return f.bidang, nil
}

func (f *fakeHierarchyRepo) ListProgram(ctx context.Context) ([]models.Program, error) {
	return f.program, nil
}

func (f *fakeHierarchyRepo) ListKegiatan(ctx context.Context) ([]models.Kegiatan, error) {
	return f.kegiatan, nil
}

func (f *fakeHierarchyRepo) ListSubKegiatan(ctx context.Context) ([]models.SubKegiatan, error) {
	return f.subKegiatan, nil
}

func (f *fakeHierarchyRepo) GetSubKegiatan(ctx context.Context, id primitive.ObjectID) (*models.SubKegiatan, error) {
	for i := range f.subKegiatan {
		if f.subKegiatan[i].ID == id {
			return &f.subKegiatan[i], nil
		}
	}
	return nil, mongo.ErrNoDocuments
}

func (f *fakeHierarchyRepo) GetKodeRekening(ctx context.Context, id primitive.ObjectID) (*models.KodeRekening, error) {
	for i := range f.kodeRekening {
		if f.kodeRekening[i].ID == id {
			return &f.kodeRekening[i], nil
		}
	}
	return nil, mongo.ErrNoDocuments
}

func (f *fakeHierarchyRepo) GetSubPerangkatDaerah(ctx context.Context, id primitive.ObjectID) (*models.SubPerangkatDaerah, error) {
	for i := range f.units {
		if f.units[i].ID == id {
			return &f.units[i], nil
		}
	}
	return nil, mongo.ErrNoDocuments
}

type fakeAnggaranRepo struct {
	items []*models.Anggaran
}

func (f *fakeAnggaranRepo) Create(ctx context.Context, anggaran *models.Anggaran) error {
	anggaran.ID = primitive.NewObjectID()
	f.items = append(f.items, anggaran)
	return nil
}

func (f *fakeAnggaranRepo) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Anggaran, error) {
	for _, item := range f.items {
		if item.ID == id {
			return item, nil
		}
	}
	return nil, mongo.ErrNoDocuments
}

func (f *fakeAnggaranRepo) GetBySubKegiatanYear(ctx context.Context, subKegiatanID primitive.ObjectID, tahun int) (*models.Anggaran, error) {
	for _, item := range f.items {
		if item.SubKegiatanID == subKegiatanID && item.TahunAnggaran == tahun {
			return item, nil
		}
	}
	return nil, nil
}

func (f *fakeAnggaranRepo) ListByYear(ctx context.Context, tahun int) ([]models.Anggaran, error) {
	var out []models.Anggaran
	for _, item := range f.items {
		if item.TahunAnggaran == tahun {
			out = append(out, *item)
		}
	}
	return out, nil
}

func (f *fakeAnggaranRepo) Replace(ctx context.Context, id primitive.ObjectID, anggaran *models.Anggaran) error {
	for i, item := range f.items {
		if item.ID == id {
			f.items[i] = anggaran
			return nil
		}
	}
	return mongo.ErrNoDocuments
}

type fakeKinerjaRepo struct {
	items []*models.Kinerja
}

func (f *fakeKinerjaRepo) Create(ctx context.Context, kinerja *models.Kinerja) error {
	kinerja.ID = primitive.NewObjectID()
	f.items = append(f.items, kinerja)
	return nil
}

func (f *fakeKinerjaRepo) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Kinerja, error) {
	for _, item := range f.items {
		if item.ID == id {
			return item, nil
		}
	}
	return nil, mongo.ErrNoDocuments
}

func (f *fakeKinerjaRepo) ListByUnitYear(ctx context.Context, unitID primitive.ObjectID, tahun int) ([]models.Kinerja, error) {
	var out []models.Kinerja
	for _, item := range f.items {
		if item.SubPerangkatDaerahID == unitID && item.TahunAnggaran == tahun {
			out = append(out, *item)
		}
	}
	return out, nil
}

func (f *fakeKinerjaRepo) CountByUnitAnggaranYear(ctx context.Context, unitID, anggaranID primitive.ObjectID, tahun int) (int64, error) {
	var count int64
	for _, item := range f.items {
		if item.SubPerangkatDaerahID == unitID && item.AnggaranID == anggaranID && item.TahunAnggaran == tahun {
			count++
		}
	}
	return count, nil
}

func (f *fakeKinerjaRepo) BoundAnggaranIDs(ctx context.Context, unitID primitive.ObjectID, tahun int) ([]primitive.ObjectID, error) {
	var ids []primitive.ObjectID
	for _, item := range f.items {
		if item.SubPerangkatDaerahID == unitID && item.TahunAnggaran == tahun {
			ids = append(ids, item.AnggaranID)
		}
	}
	return ids, nil
}

func (f *fakeKinerjaRepo) UpdateActual(ctx context.Context, id primitive.ObjectID, actualValue, achievementPercentage float64, status models.KinerjaStatus, updatedBy string) error {
	for _, item := range f.items {
		if item.ID == id {
			item.ActualValue = actualValue
			item.AchievementPercentage = achievementPercentage
			item.Status = status
			item.Metadata.UpdatedBy = updatedBy
			return nil
		}
	}
	return mongo.ErrNoDocuments
}

type fakePencapaianRepo struct {
	items    []*models.Pencapaian
	files    map[primitive.ObjectID]string
	uploads  int
	deletes  int
	failAdds bool
}

func newFakePencapaianRepo() *fakePencapaianRepo {
	return &fakePencapaianRepo{files: make(map[primitive.ObjectID]string)}
}

func (f *fakePencapaianRepo) Create(ctx context.Context, pencapaian *models.Pencapaian) error {
	pencapaian.ID = primitive.NewObjectID()
	f.items = append(f.items, pencapaian)
	return nil
}

func (f *fakePencapaianRepo) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Pencapaian, error) {
	for _, item := range f.items {
		if item.ID == id {
			return item, nil
		}
	}
	return nil, mongo.ErrNoDocuments
}

func (f *fakePencapaianRepo) List(ctx context.Context, filter repository.PencapaianFilter) ([]models.Pencapaian, error) {
	var out []models.Pencapaian
	for _, item := range f.items {
		if filter.KinerjaID != nil && item.KinerjaID != *filter.KinerjaID {
			continue
		}
		if filter.PeriodMonth != nil && item.PeriodMonth != *filter.PeriodMonth {
			continue
		}
		if filter.PeriodYear != nil && item.PeriodYear != *filter.PeriodYear {
			continue
		}
		out = append(out, *item)
	}
	return out, nil
}

func (f *fakePencapaianRepo) Update(ctx context.Context, id primitive.ObjectID, pencapaian *models.Pencapaian) error {
	for i, item := range f.items {
		if item.ID == id {
			f.items[i] = pencapaian
			return nil
		}
	}
	return mongo.ErrNoDocuments
}

func (f *fakePencapaianRepo) Delete(ctx context.Context, id primitive.ObjectID) error {
	for i, item := range f.items {
		if item.ID == id {
			f.items = append(f.items[:i], f.items[i+1:]...)
			return nil
		}
	}
	return mongo.ErrNoDocuments
}

func (f *fakePencapaianRepo) AddEvidence(ctx context.Context, id primitive.ObjectID, evidence models.EvidenceFile, updatedBy string) error {
	if f.failAdds {
		return mongo.ErrNoDocuments
	}
	for _, item := range f.items {
		if item.ID == id {
			item.EvidenceFiles = append(item.EvidenceFiles, evidence)
			return nil
		}
	}
	return mongo.ErrNoDocuments
}

func (f *fakePencapaianRepo) RemoveEvidence(ctx context.Context, id, fileID primitive.ObjectID, updatedBy string) error {
	for _, item := range f.items {
		if item.ID == id {
			kept := item.EvidenceFiles[:0]
			for _, evidence := range item.EvidenceFiles {
				if evidence.FileID != fileID {
					kept = append(kept, evidence)
				}
			}
			item.EvidenceFiles = kept
			return nil
		}
	}
	return mongo.ErrNoDocuments
}

func (f *fakePencapaianRepo) UploadFile(ctx context.Context, filename string, fileData io.Reader, uploadedBy string, contentType string) (primitive.ObjectID, error) {
	fileID := primitive.NewObjectID()
	f.files[fileID] = filename
	f.uploads++
	return fileID, nil
}

func (f *fakePencapaianRepo) DownloadFile(ctx context.Context, fileID primitive.ObjectID) (*gridfs.DownloadStream, error) {
	return nil, mongo.ErrNoDocuments
}

func (f *fakePencapaianRepo) DeleteFile(ctx context.Context, fileID primitive.ObjectID) error {
	delete(f.files, fileID)
	f.deletes++
	return nil
}

type fakeRealisasiRepo struct {
	items []*models.Realisasi
}

func (f *fakeRealisasiRepo) Create(ctx context.Context, realisasi *models.Realisasi) error {
	realisasi.ID = primitive.NewObjectID()
	f.items = append(f.items, realisasi)
	return nil
}

func (f *fakeRealisasiRepo) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Realisasi, error) {
	for _, item := range f.items {
		if item.ID == id {
			return item, nil
		}
	}
	return nil, mongo.ErrNoDocuments
}

func (f *fakeRealisasiRepo) List(ctx context.Context, filter repository.RealisasiFilter) ([]models.Realisasi, error) {
	var out []models.Realisasi
	for _, item := range f.items {
		if filter.SubKegiatanID != nil && item.SubKegiatanID != *filter.SubKegiatanID {
			continue
		}
		if filter.KodeRekeningID != nil && item.KodeRekeningID != *filter.KodeRekeningID {
			continue
		}
		if filter.Month != nil && item.Month != *filter.Month {
			continue
		}
		if filter.Year != nil && item.Year != *filter.Year {
			continue
		}
		out = append(out, *item)
	}
	return out, nil
}

type fakeEvaluasiKinerjaRepo struct {
	items []*models.EvaluasiKinerja
}

func (f *fakeEvaluasiKinerjaRepo) Create(ctx context.Context, evaluasi *models.EvaluasiKinerja) error {
	evaluasi.ID = primitive.NewObjectID()
	f.items = append(f.items, evaluasi)
	return nil
}

func (f *fakeEvaluasiKinerjaRepo) GetByID(ctx context.Context, id primitive.ObjectID) (*models.EvaluasiKinerja, error) {
	for _, item := range f.items {
		if item.ID == id {
			return item, nil
		}
	}
	return nil, mongo.ErrNoDocuments
}

func (f *fakeEvaluasiKinerjaRepo) GetByPencapaianID(ctx context.Context, pencapaianID primitive.ObjectID) (*models.EvaluasiKinerja, error) {
	for _, item := range f.items {
		if item.PencapaianID == pencapaianID {
			return item, nil
		}
	}
	return nil, nil
}

func (f *fakeEvaluasiKinerjaRepo) List(ctx context.Context, filter repository.EvaluasiKinerjaFilter) ([]models.EvaluasiKinerja, error) {
	var out []models.EvaluasiKinerja
	for _, item := range f.items {
		if filter.PencapaianID != nil && item.PencapaianID != *filter.PencapaianID {
			continue
		}
		if filter.KinerjaID != nil && item.KinerjaID != *filter.KinerjaID {
			continue
		}
		if filter.Status != nil && item.EvaluationStatus != *filter.Status {
			continue
		}
		out = append(out, *item)
	}
	return out, nil
}

func (f *fakeEvaluasiKinerjaRepo) UpdateStatus(ctx context.Context, id primitive.ObjectID, status models.EvaluationStatus, fields bson.M, updatedBy string) error {
	for _, item := range f.items {
		if item.ID == id {
			item.EvaluationStatus = status
			if notes, ok := fields["notes"].(string); ok {
				item.Notes = notes
			}
			if requirements, ok := fields["revision_notes"].([]string); ok {
				item.RevisionNotes = requirements
			}
			item.Metadata.UpdatedBy = updatedBy
			return nil
		}
	}
	return mongo.ErrNoDocuments
}

type fakeEvaluasiRealisasiRepo struct {
	items []*models.EvaluasiRealisasi
}

func (f *fakeEvaluasiRealisasiRepo) Create(ctx context.Context, evaluasi *models.EvaluasiRealisasi) error {
	evaluasi.ID = primitive.NewObjectID()
	f.items = append(f.items, evaluasi)
	return nil
}

func (f *fakeEvaluasiRealisasiRepo) GetByID(ctx context.Context, id primitive.ObjectID) (*models.EvaluasiRealisasi, error) {
	for _, item := range f.items {
		if item.ID == id {
			return item, nil
		}
	}
	return nil, mongo.ErrNoDocuments
}

func (f *fakeEvaluasiRealisasiRepo) GetByRealisasiID(ctx context.Context, realisasiID primitive.ObjectID) (*models.EvaluasiRealisasi, error) {
	for _, item := range f.items {
		if item.RealisasiID == realisasiID {
			return item, nil
		}
	}
	return nil, nil
}

func (f *fakeEvaluasiRealisasiRepo) List(ctx context.Context, filter repository.EvaluasiRealisasiFilter) ([]models.EvaluasiRealisasi, error) {
	var out []models.EvaluasiRealisasi
	for _, item := range f.items {
		if filter.RealisasiID != nil && item.RealisasiID != *filter.RealisasiID {
			continue
		}
		if filter.Status != nil && item.EvaluationStatus != *filter.Status {
			continue
		}
		out = append(out, *item)
	}
	return out, nil
}

func (f *fakeEvaluasiRealisasiRepo) Update(ctx context.Context, id primitive.ObjectID, evaluasi *models.EvaluasiRealisasi) error {
	for i, item := range f.items {
		if item.ID == id {
			f.items[i] = evaluasi
			return nil
		}
	}
	return mongo.ErrNoDocuments
}
