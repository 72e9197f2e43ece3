package store

import (
	"context"
	"log"
	"strings"
	"sync"

	"rental-dashboard-backend/internal/backend"
)

// TransaksiForm is the booking draft for a new rental. The total price
// is never entered here; the backend computes it.
type TransaksiForm struct {
	NamaPenyewa    string `json:"namaPenyewa"`
	NoWhatsapp     string `json:"noWhatsapp"`
	Alamat         string `json:"alamat"`
	UnitID         string `json:"unitId"`
	TanggalMulai   string `json:"tanggalMulai"`
	JamMulai       string `json:"jamMulai"`
	TanggalSelesai string `json:"tanggalSelesai"`
	JamSelesai     string `json:"jamSelesai"`
	Helm           int    `json:"helm"`
	JasHujan       int    `json:"jasHujan"`
}

// TransaksiSnapshot is a copy of the store's state for rendering.
type TransaksiSnapshot struct {
	Data             []backend.Transaksi           `json:"data"`
	Detail           *backend.Transaksi            `json:"detail,omitempty"`
	LaporanDenda     []backend.LaporanDendaRow     `json:"laporanDenda,omitempty"`
	LaporanFasilitas []backend.LaporanFasilitasRow `json:"laporanFasilitas,omitempty"`
	Loading          bool                          `json:"loading"`
	Submitting       bool                          `json:"submitting"`
	Error            string                        `json:"error"`
	Success          string                        `json:"success"`
	SearchQuery      string                        `json:"searchQuery"`
	StatusFilter     string                        `json:"statusFilter"`
	StartDate        string                        `json:"startDate"`
	EndDate          string                        `json:"endDate"`
	CurrentPage      int                           `json:"currentPage"`
	TotalPages       int                           `json:"totalPages"`
	TotalData        int                           `json:"totalData"`
	Limit            int                           `json:"limit"`
}

// TransaksiStore owns the rental-transaction slice of remote state,
// including the two report views. Status transitions stay with the
// backend: completing a rental is a request, not a local mutation.
type TransaksiStore struct {
	mu  sync.Mutex
	api *backend.TransaksiAPI

	listState
	statusFilter string
	startDate    string
	endDate      string

	data             []backend.Transaksi
	detail           *backend.Transaksi
	laporanDenda     []backend.LaporanDendaRow
	laporanFasilitas []backend.LaporanFasilitasRow
	form             TransaksiForm
}

// NewTransaksiStore creates a transaksi store.
func NewTransaksiStore(api *backend.TransaksiAPI) *TransaksiStore {
	return &TransaksiStore{api: api, listState: newListState()}
}

// Fetch loads the current page with the current filters.
func (s *TransaksiStore) Fetch(ctx context.Context) error {
	s.mu.Lock()
	seq := s.beginFetch()
	filter := backend.TransaksiFilter{
		Status:    s.statusFilter,
		Search:    s.searchQuery,
		StartDate: s.startDate,
		EndDate:   s.endDate,
		Page:      s.currentPage,
		Limit:     s.limit,
	}
	s.mu.Unlock()

	list, err := s.api.List(ctx, filter)

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.stale(seq) {
		return nil
	}
	s.loading = false
	if err != nil {
		s.errMsg = err.Error()
		log.Printf("transaksi: fetch failed: %v", err)
		return err
	}
	s.data = list.Data
	s.applyMeta(list.Meta)
	return nil
}

// SetView applies every list filter in one step without fetching. A
// page below 1 keeps the current cursor.
func (s *TransaksiStore) SetView(status, query, startDate, endDate string, page int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.statusFilter = status
	s.searchQuery = query
	s.startDate = startDate
	s.endDate = endDate
	if page >= 1 {
		s.currentPage = page
	}
}

// SetPage moves the cursor and re-fetches immediately.
func (s *TransaksiStore) SetPage(ctx context.Context, page int) error {
	if page < 1 {
		page = 1
	}
	s.mu.Lock()
	s.currentPage = page
	s.mu.Unlock()
	return s.Fetch(ctx)
}

// SetStatusFilter swaps the status filter and re-fetches from page 1.
func (s *TransaksiStore) SetStatusFilter(ctx context.Context, status string) error {
	s.mu.Lock()
	s.statusFilter = status
	s.currentPage = 1
	s.mu.Unlock()
	return s.Fetch(ctx)
}

// SetDateRange applies a calendar range and re-fetches from page 1.
func (s *TransaksiStore) SetDateRange(ctx context.Context, startDate, endDate string) error {
	s.mu.Lock()
	s.startDate = startDate
	s.endDate = endDate
	s.currentPage = 1
	s.mu.Unlock()
	return s.Fetch(ctx)
}

// SubmitSearch applies a text query.
func (s *TransaksiStore) SubmitSearch(ctx context.Context, query string) error {
	s.mu.Lock()
	s.searchQuery = query
	s.currentPage = 1
	s.mu.Unlock()
	return s.Fetch(ctx)
}

// ResetFilter clears every filter and re-fetches page 1. Idempotent.
func (s *TransaksiStore) ResetFilter(ctx context.Context) error {
	s.mu.Lock()
	s.searchQuery = ""
	s.statusFilter = ""
	s.startDate = ""
	s.endDate = ""
	s.currentPage = 1
	s.mu.Unlock()
	return s.Fetch(ctx)
}

// FetchDetail loads one transaction into the detail slot.
func (s *TransaksiStore) FetchDetail(ctx context.Context, id string) error {
	s.mu.Lock()
	s.loading = true
	s.errMsg = ""
	s.mu.Unlock()

	detail, err := s.api.Detail(ctx, id)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.loading = false
	if err != nil {
		s.errMsg = err.Error()
		log.Printf("transaksi: detail fetch failed: %v", err)
		return err
	}
	s.detail = detail
	return nil
}

// Selesaikan asks the backend to complete a transaction, then re-fetches
// the current page so the list reflects whatever the backend decided.
func (s *TransaksiStore) Selesaikan(ctx context.Context, id string) error {
	s.mu.Lock()
	s.loading = true
	s.errMsg = ""
	s.successMsg = ""
	s.mu.Unlock()

	_, err := s.api.Selesai(ctx, id)

	s.mu.Lock()
	s.loading = false
	if err != nil {
		s.errMsg = err.Error()
		s.mu.Unlock()
		log.Printf("transaksi: selesai failed: %v", err)
		return err
	}
	s.mu.Unlock()

	ferr := s.Fetch(ctx)
	if ferr == nil {
		s.mu.Lock()
		s.successMsg = "transaksi berhasil diselesaikan"
		s.mu.Unlock()
	}
	return ferr
}

// FetchLaporanDenda loads the late-fee report for the current range.
func (s *TransaksiStore) FetchLaporanDenda(ctx context.Context) error {
	s.mu.Lock()
	startDate, endDate := s.startDate, s.endDate
	s.loading = true
	s.errMsg = ""
	s.mu.Unlock()

	rows, err := s.api.LaporanDenda(ctx, startDate, endDate)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.loading = false
	if err != nil {
		s.errMsg = err.Error()
		log.Printf("transaksi: laporan denda failed: %v", err)
		return err
	}
	s.laporanDenda = rows
	return nil
}

// FetchLaporanFasilitas loads the facility-usage report for the current
// range.
func (s *TransaksiStore) FetchLaporanFasilitas(ctx context.Context) error {
	s.mu.Lock()
	startDate, endDate := s.startDate, s.endDate
	s.loading = true
	s.errMsg = ""
	s.mu.Unlock()

	rows, err := s.api.LaporanFasilitas(ctx, startDate, endDate)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.loading = false
	if err != nil {
		s.errMsg = err.Error()
		log.Printf("transaksi: laporan fasilitas failed: %v", err)
		return err
	}
	s.laporanFasilitas = rows
	return nil
}

// SetForm replaces the booking draft.
func (s *TransaksiStore) SetForm(f TransaksiForm) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.form = f
}

// SubmitCreate validates the booking draft locally and books the rental.
func (s *TransaksiStore) SubmitCreate(ctx context.Context) bool {
	s.mu.Lock()
	form := s.form
	if msg := validateTransaksiForm(form); msg != "" {
		s.errMsg = msg
		s.mu.Unlock()
		return false
	}
	s.submitting = true
	s.errMsg = ""
	s.successMsg = ""
	s.mu.Unlock()

	payload := backend.TransaksiPayload{
		NamaPenyewa:    form.NamaPenyewa,
		NoWhatsapp:     form.NoWhatsapp,
		Alamat:         form.Alamat,
		UnitID:         form.UnitID,
		TanggalMulai:   form.TanggalMulai,
		JamMulai:       form.JamMulai,
		TanggalSelesai: form.TanggalSelesai,
		JamSelesai:     form.JamSelesai,
		Helm:           form.Helm,
		JasHujan:       form.JasHujan,
	}
	_, err := s.api.Create(ctx, payload)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.submitting = false
	if err != nil {
		s.errMsg = err.Error()
		log.Printf("transaksi: submit failed: %v", err)
		return false
	}
	s.successMsg = "transaksi berhasil dibuat"
	s.form = TransaksiForm{}
	return true
}

func validateTransaksiForm(f TransaksiForm) string {
	switch {
	case strings.TrimSpace(f.NamaPenyewa) == "":
		return "nama penyewa wajib diisi"
	case strings.TrimSpace(f.NoWhatsapp) == "":
		return "nomor whatsapp wajib diisi"
	case strings.TrimSpace(f.Alamat) == "":
		return "alamat wajib diisi"
	case f.UnitID == "":
		return "unit motor wajib dipilih"
	case f.TanggalMulai == "" || f.JamMulai == "":
		return "waktu mulai wajib diisi"
	case f.TanggalSelesai == "" || f.JamSelesai == "":
		return "waktu selesai wajib diisi"
	case f.Helm < 0 || f.JasHujan < 0:
		return "jumlah fasilitas tidak boleh negatif"
	}
	return ""
}

// Snapshot returns a render-ready copy of the store state.
func (s *TransaksiStore) Snapshot() TransaksiSnapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	data := make([]backend.Transaksi, len(s.data))
	copy(data, s.data)

	return TransaksiSnapshot{
		Data:             data,
		Detail:           s.detail,
		LaporanDenda:     s.laporanDenda,
		LaporanFasilitas: s.laporanFasilitas,
		Loading:          s.loading,
		Submitting:       s.submitting,
		Error:            s.errMsg,
		Success:          s.successMsg,
		SearchQuery:      s.searchQuery,
		StatusFilter:     s.statusFilter,
		StartDate:        s.startDate,
		EndDate:          s.endDate,
		CurrentPage:      s.currentPage,
		TotalPages:       s.totalPages,
		TotalData:        s.totalData,
		Limit:            s.limit,
	}
}
