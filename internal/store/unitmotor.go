package store

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"rental-dashboard-backend/internal/backend"
)

// UnitMotorForm is the create/edit draft for a vehicle unit. It lives
// apart from the list state; submitting never mutates the list in place.
type UnitMotorForm struct {
	PlatNomor      string  `json:"platNomor"`
	TahunPembuatan int     `json:"tahunPembuatan"`
	HargaSewa      float64 `json:"hargaSewa"`
	JenisID        string  `json:"jenisId"`
}

// UnitMotorSnapshot is a copy of the store's state for rendering.
type UnitMotorSnapshot struct {
	Data             []backend.UnitMotor `json:"data"`
	Detail           *backend.UnitMotor  `json:"detail,omitempty"`
	Loading          bool                `json:"loading"`
	Submitting       bool                `json:"submitting"`
	Error            string              `json:"error"`
	Success          string              `json:"success"`
	SearchQuery      string              `json:"searchQuery"`
	StatusFilter     string              `json:"statusFilter"`
	CurrentPage      int                 `json:"currentPage"`
	TotalPages       int                 `json:"totalPages"`
	TotalData        int                 `json:"totalData"`
	Limit            int                 `json:"limit"`
	ShowDeleteDialog bool                `json:"showDeleteDialog"`
	DeleteTargetID   string              `json:"deleteTargetId,omitempty"`
}

// UnitMotorStore owns the vehicle-unit slice of remote state. Filtering
// and search are server-side for this resource.
type UnitMotorStore struct {
	mu  sync.Mutex
	api *backend.UnitMotorAPI

	listState
	statusFilter string
	data         []backend.UnitMotor
	detail       *backend.UnitMotor
	form         UnitMotorForm
}

// NewUnitMotorStore creates a unit-motor store.
func NewUnitMotorStore(api *backend.UnitMotorAPI) *UnitMotorStore {
	return &UnitMotorStore{api: api, listState: newListState()}
}

// Fetch loads the current page with the current filters. On failure the
// previously loaded data stays in place so the UI never flashes empty.
func (s *UnitMotorStore) Fetch(ctx context.Context) error {
	s.mu.Lock()
	seq := s.beginFetch()
	filter := backend.UnitMotorFilter{
		Status: s.statusFilter,
		Search: s.searchQuery,
		Page:   s.currentPage,
		Limit:  s.limit,
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
		log.Printf("unit-motor: fetch failed: %v", err)
		return err
	}
	s.data = list.Data
	s.applyMeta(list.Meta)
	return nil
}

// SetView applies status, query and page in one step without fetching.
// A page below 1 keeps the current cursor.
func (s *UnitMotorStore) SetView(status, query string, page int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.statusFilter = status
	s.searchQuery = query
	if page >= 1 {
		s.currentPage = page
	}
}

// SetPage moves the cursor and re-fetches immediately.
func (s *UnitMotorStore) SetPage(ctx context.Context, page int) error {
	if page < 1 {
		page = 1
	}
	s.mu.Lock()
	s.currentPage = page
	s.mu.Unlock()
	return s.Fetch(ctx)
}

// SetStatusFilter swaps the status filter and re-fetches from page 1.
func (s *UnitMotorStore) SetStatusFilter(ctx context.Context, status string) error {
	s.mu.Lock()
	s.statusFilter = status
	s.currentPage = 1
	s.mu.Unlock()
	return s.Fetch(ctx)
}

// SubmitSearch applies a text query. Search is submit-driven, not
// per-keystroke.
func (s *UnitMotorStore) SubmitSearch(ctx context.Context, query string) error {
	s.mu.Lock()
	s.searchQuery = query
	s.currentPage = 1
	s.mu.Unlock()
	return s.Fetch(ctx)
}

// ResetSearch clears query and filter and re-fetches page 1. Calling it
// twice lands in the same state as calling it once.
func (s *UnitMotorStore) ResetSearch(ctx context.Context) error {
	s.mu.Lock()
	s.searchQuery = ""
	s.statusFilter = ""
	s.currentPage = 1
	s.mu.Unlock()
	return s.Fetch(ctx)
}

// FetchDetail loads one unit into the detail slot.
func (s *UnitMotorStore) FetchDetail(ctx context.Context, id string) error {
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
		log.Printf("unit-motor: detail fetch failed: %v", err)
		return err
	}
	s.detail = detail
	return nil
}

// ConfirmDelete opens the delete dialog for the given unit.
func (s *UnitMotorStore) ConfirmDelete(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.confirmDelete(id)
}

// CancelDelete closes the dialog without any network call.
func (s *UnitMotorStore) CancelDelete() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cancelDelete()
}

// DeleteConfirmed deletes the pending unit. Success re-fetches the
// current page; failure leaves the list untouched. The dialog closes
// either way.
func (s *UnitMotorStore) DeleteConfirmed(ctx context.Context) error {
	s.mu.Lock()
	id := s.deleteTargetID
	if id == "" {
		s.mu.Unlock()
		return nil
	}
	s.loading = true
	s.mu.Unlock()

	err := s.api.Delete(ctx, id)

	s.mu.Lock()
	s.loading = false
	s.cancelDelete()
	if err != nil {
		s.errMsg = err.Error()
		s.mu.Unlock()
		log.Printf("unit-motor: delete failed: %v", err)
		return err
	}
	s.mu.Unlock()

	// The banner goes up only after a clean refresh; a failed refresh
	// already set the error and the two never show together.
	ferr := s.Fetch(ctx)
	if ferr == nil {
		s.mu.Lock()
		s.successMsg = "unit motor berhasil dihapus"
		s.mu.Unlock()
	}
	return ferr
}

// SetForm replaces the form draft.
func (s *UnitMotorStore) SetForm(f UnitMotorForm) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.form = f
}

// SubmitCreate validates the draft locally and creates the unit. A false
// return means the draft never left the client.
func (s *UnitMotorStore) SubmitCreate(ctx context.Context) bool {
	return s.submit(ctx, "")
}

// SubmitUpdate validates the draft locally and patches the unit.
func (s *UnitMotorStore) SubmitUpdate(ctx context.Context, id string) bool {
	return s.submit(ctx, id)
}

func (s *UnitMotorStore) submit(ctx context.Context, id string) bool {
	s.mu.Lock()
	form := s.form
	if msg := validateUnitForm(form); msg != "" {
		s.errMsg = msg
		s.mu.Unlock()
		return false
	}
	s.submitting = true
	s.errMsg = ""
	s.successMsg = ""
	s.mu.Unlock()

	payload := backend.UnitMotorPayload{
		PlatNomor:      form.PlatNomor,
		TahunPembuatan: form.TahunPembuatan,
		HargaSewa:      form.HargaSewa,
		JenisID:        form.JenisID,
	}

	var err error
	if id == "" {
		_, err = s.api.Create(ctx, payload)
	} else {
		_, err = s.api.Update(ctx, id, payload)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.submitting = false
	if err != nil {
		s.errMsg = err.Error()
		log.Printf("unit-motor: submit failed: %v", err)
		return false
	}
	if id == "" {
		s.successMsg = "unit motor berhasil ditambahkan"
	} else {
		s.successMsg = "unit motor berhasil diperbarui"
	}
	s.form = UnitMotorForm{}
	return true
}

func validateUnitForm(f UnitMotorForm) string {
	if f.PlatNomor == "" {
		return "plat nomor wajib diisi"
	}
	if f.JenisID == "" {
		return "jenis motor wajib dipilih"
	}
	maxTahun := time.Now().Year() + 1
	if f.TahunPembuatan < 1990 || f.TahunPembuatan > maxTahun {
		return fmt.Sprintf("tahun pembuatan harus antara 1990 dan %d", maxTahun)
	}
	if f.HargaSewa <= 0 {
		return "harga sewa harus lebih dari 0"
	}
	return ""
}

// Snapshot returns a render-ready copy of the store state.
func (s *UnitMotorStore) Snapshot() UnitMotorSnapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	data := make([]backend.UnitMotor, len(s.data))
	copy(data, s.data)

	return UnitMotorSnapshot{
		Data:             data,
		Detail:           s.detail,
		Loading:          s.loading,
		Submitting:       s.submitting,
		Error:            s.errMsg,
		Success:          s.successMsg,
		SearchQuery:      s.searchQuery,
		StatusFilter:     s.statusFilter,
		CurrentPage:      s.currentPage,
		TotalPages:       s.totalPages,
		TotalData:        s.totalData,
		Limit:            s.limit,
		ShowDeleteDialog: s.showDeleteDialog,
		DeleteTargetID:   s.deleteTargetID,
	}
}
