package routes

import (
	"net/http"

	"ekinerja/handlers"
	"ekinerja/middlewares"
)

// SetupRoutes wires every API route behind the JWT middleware.
func SetupRoutes(
	hierarchyHandler *handlers.HierarchyHandler,
	anggaranHandler *handlers.AnggaranHandler,
	kinerjaHandler *handlers.KinerjaHandler,
	pencapaianHandler *handlers.PencapaianHandler,
	realisasiHandler *handlers.RealisasiHandler,
	evaluasiHandler *handlers.EvaluasiHandler,
	jwtSecret string,
) *http.ServeMux {
	mux := http.NewServeMux()

	jwtMiddleware := middlewares.JWTMiddleware(jwtSecret)

	// Hierarchy routes
	mux.Handle("GET /api/sub-kegiatan", jwtMiddleware(http.HandlerFunc(hierarchyHandler.ListSubKegiatan)))
	mux.Handle("GET /api/sub-kegiatan/{id}/full-code", jwtMiddleware(http.HandlerFunc(hierarchyHandler.GetFullCode)))

	// Anggaran routes
	mux.Handle("POST /api/anggaran", jwtMiddleware(http.HandlerFunc(anggaranHandler.CreateAllocation)))
	mux.Handle("GET /api/anggaran/{subKegiatanId}/{tahun}", jwtMiddleware(http.HandlerFunc(anggaranHandler.GetAllocation)))

	// Kinerja routes
	mux.Handle("POST /api/kinerja", jwtMiddleware(http.HandlerFunc(kinerjaHandler.CreateKinerja)))
	mux.Handle("GET /api/kinerja", jwtMiddleware(http.HandlerFunc(kinerjaHandler.GetKinerja)))
	mux.Handle("GET /api/kinerja/eligible-anggaran", jwtMiddleware(http.HandlerFunc(kinerjaHandler.EligibleAnggaran)))
	mux.Handle("PUT /api/kinerja/{id}/actual", jwtMiddleware(http.HandlerFunc(kinerjaHandler.UpdateActual)))

	// Pencapaian routes
	mux.Handle("POST /api/pencapaian", jwtMiddleware(http.HandlerFunc(pencapaianHandler.CreatePencapaian)))
	mux.Handle("GET /api/pencapaian", jwtMiddleware(http.HandlerFunc(pencapaianHandler.GetPencapaian)))
	mux.Handle("GET /api/pencapaian/{id}", jwtMiddleware(http.HandlerFunc(pencapaianHandler.GetPencapaianByID)))
	mux.Handle("PUT /api/pencapaian/{id}", jwtMiddleware(http.HandlerFunc(pencapaianHandler.UpdatePencapaian)))
	mux.Handle("DELETE /api/pencapaian/{id}", jwtMiddleware(http.HandlerFunc(pencapaianHandler.DeletePencapaian)))
	// Evidence file routes
	mux.Handle("POST /api/pencapaian/{id}/evidence", jwtMiddleware(http.HandlerFunc(pencapaianHandler.AttachEvidence)))
	mux.Handle("DELETE /api/pencapaian/{id}/evidence/{fileId}", jwtMiddleware(http.HandlerFunc(pencapaianHandler.RemoveEvidence)))
	mux.Handle("GET /api/pencapaian/evidence/{fileId}/download", jwtMiddleware(http.HandlerFunc(pencapaianHandler.DownloadEvidence)))

	// Realisasi routes
	mux.Handle("POST /api/realisasi", jwtMiddleware(http.HandlerFunc(realisasiHandler.RecordRealization)))
	mux.Handle("GET /api/realisasi", jwtMiddleware(http.HandlerFunc(realisasiHandler.GetRealization)))

	// Evaluasi kinerja workflow routes
	mux.Handle("POST /api/evaluasi/kinerja", jwtMiddleware(http.HandlerFunc(evaluasiHandler.CreateEvaluasiKinerja)))
	mux.Handle("GET /api/evaluasi/kinerja", jwtMiddleware(http.HandlerFunc(evaluasiHandler.GetEvaluasiKinerja)))
	mux.Handle("GET /api/evaluasi/kinerja/{id}", jwtMiddleware(http.HandlerFunc(evaluasiHandler.GetEvaluasiKinerjaByID)))
	mux.Handle("POST /api/evaluasi/kinerja/{id}/review", jwtMiddleware(http.HandlerFunc(evaluasiHandler.BeginReview)))
	mux.Handle("POST /api/evaluasi/kinerja/{id}/approve", jwtMiddleware(http.HandlerFunc(evaluasiHandler.Approve)))
	mux.Handle("POST /api/evaluasi/kinerja/{id}/reject", jwtMiddleware(http.HandlerFunc(evaluasiHandler.Reject)))
	mux.Handle("POST /api/evaluasi/kinerja/{id}/request-revision", jwtMiddleware(http.HandlerFunc(evaluasiHandler.RequestRevision)))
	mux.Handle("POST /api/evaluasi/kinerja/{id}/resubmit", jwtMiddleware(http.HandlerFunc(evaluasiHandler.Resubmit)))

	// Evaluasi realisasi routes
	mux.Handle("POST /api/evaluasi/realisasi", jwtMiddleware(http.HandlerFunc(evaluasiHandler.CreateEvaluasiRealisasi)))
	mux.Handle("GET /api/evaluasi/realisasi", jwtMiddleware(http.HandlerFunc(evaluasiHandler.GetEvaluasiRealisasi)))
	mux.Handle("GET /api/evaluasi/realisasi/{id}", jwtMiddleware(http.HandlerFunc(evaluasiHandler.GetEvaluasiRealisasiByID)))
	mux.Handle("PUT /api/evaluasi/realisasi/{id}", jwtMiddleware(http.HandlerFunc(evaluasiHandler.UpdateEvaluasiRealisasi)))

	return mux
}
