package services

import (
	"context"
	"strings"

	"ekinerja/models"
	repository "ekinerja/repositories"
	"ekinerja/utils"
)

// HierarchyIndex holds the administrative reference data as maps keyed by
// normalized hex id, built once per request instead of rescanning flat lists
// for every lookup.
type HierarchyIndex struct {
	Urusan   map[string]models.Urusan
	Bidang   map[string]models.Bidang
	Program  map[string]models.Program
	Kegiatan map[string]models.Kegiatan
}

// BuildHierarchyIndex loads all four ancestor collections and indexes them.
func BuildHierarchyIndex(ctx context.Context, repo repository.HierarchyRepository) (*HierarchyIndex, error) {
	urusan, err := repo.ListUrusan(ctx)
	if err != nil {
		return nil, err
	}
	bidang, err := repo.ListBidang(ctx)
	if err != nil {
		return nil, err
	}
	program, err := repo.ListProgram(ctx)
	if err != nil {
		return nil, err
	}
	kegiatan, err := repo.ListKegiatan(ctx)
	if err != nil {
		return nil, err
	}

	idx := &HierarchyIndex{
		Urusan:   make(map[string]models.Urusan, len(urusan)),
		Bidang:   make(map[string]models.Bidang, len(bidang)),
		Program:  make(map[string]models.Program, len(program)),
		Kegiatan: make(map[string]models.Kegiatan, len(kegiatan)),
	}
	for _, u := range urusan {
		idx.Urusan[u.ID.Hex()] = u
	}
	for _, b := range bidang {
		idx.Bidang[b.ID.Hex()] = b
	}
	for _, p := range program {
		idx.Program[p.ID.Hex()] = p
	}
	for _, k := range kegiatan {
		idx.Kegiatan[k.ID.Hex()] = k
	}
	return idx, nil
}

// ResolveFullCode builds the dotted hierarchical code for an activity by
// walking sub kegiatan -> kegiatan -> program -> bidang -> urusan. Missing
// ancestors are skipped, never an error; the result is empty when the
// activity's own kode is unresolvable. Parent references may arrive in any
// of the legacy shapes handled by utils.ExtractID.
func ResolveFullCode(sub *models.SubKegiatan, idx *HierarchyIndex) string {
	if sub == nil || sub.Kode == "" {
		return ""
	}
	if idx == nil {
		return sub.Kode
	}

	var urusanKode, bidangKode, programKode, kegiatanKode string
	if kegiatan, ok := idx.Kegiatan[utils.IDKey(sub.KegiatanID)]; ok {
		kegiatanKode = kegiatan.Kode
		if program, ok := idx.Program[utils.IDKey(kegiatan.ProgramID)]; ok {
			programKode = program.Kode
			if bidang, ok := idx.Bidang[utils.IDKey(program.BidangID)]; ok {
				bidangKode = bidang.Kode
				if urusan, ok := idx.Urusan[utils.IDKey(bidang.UrusanID)]; ok {
					urusanKode = urusan.Kode
				}
			}
		}
	}

	segments := make([]string, 0, 5)
	for _, kode := range []string{urusanKode, bidangKode, programKode, kegiatanKode, sub.Kode} {
		if kode != "" {
			segments = append(segments, kode)
		}
	}
	return strings.Join(segments, ".")
}
