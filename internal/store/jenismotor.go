package store

import (
	"context"
	"log"
	"strings"
	"sync"

	"rental-dashboard-backend/internal/backend"
	"rental-dashboard-backend/internal/format"
)

// Engine displacement floor accepted by the vehicle-type form.
const minCC = 50

// JenisMotorForm is the create/edit draft for a vehicle type.
type JenisMotorForm struct {
	Merk   string              `json:"merk"`
	Model  string              `json:"model"`
	CC     int                 `json:"cc"`
	Gambar *backend.FileUpload `json:"-"`
}

// JenisMotorSnapshot is a copy of the store's state for rendering. Data
// holds the visible (search-filtered) rows.
type JenisMotorSnapshot struct {
	Data             []backend.JenisMotor `json:"data"`
	TotalData        int                  `json:"totalData"`
	Detail           *backend.JenisMotor  `json:"detail,omitempty"`
	Loading          bool                 `json:"loading"`
	Submitting       bool                 `json:"submitting"`
	Error            string               `json:"error"`
	Success          string               `json:"success"`
	SearchQuery      string               `json:"searchQuery"`
	ShowDeleteDialog bool                 `json:"showDeleteDialog"`
	DeleteTargetID   string               `json:"deleteTargetId,omitempty"`
}

// JenisMotorStore owns the vehicle-type slice of remote state. Unlike
// the other list stores this one filters the already-loaded list in
// memory: the backend list is small and un-paginated, so a search never
// re-queries.
type JenisMotorStore struct {
	mu  sync.Mutex
	api *backend.JenisMotorAPI

	listState
	data   []backend.JenisMotor
	detail *backend.JenisMotor
	form   JenisMotorForm
}

// NewJenisMotorStore creates a jenis-motor store.
func NewJenisMotorStore(api *backend.JenisMotorAPI) *JenisMotorStore {
	return &JenisMotorStore{api: api, listState: newListState()}
}

// Fetch loads the full vehicle-type list. Rows missing a slug get one
// derived from merk+model.
func (s *JenisMotorStore) Fetch(ctx context.Context) error {
	s.mu.Lock()
	seq := s.beginFetch()
	s.mu.Unlock()

	list, err := s.api.List(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.stale(seq) {
		return nil
	}
	s.loading = false
	if err != nil {
		s.errMsg = err.Error()
		log.Printf("jenis-motor: fetch failed: %v", err)
		return err
	}
	for i := range list {
		if list[i].Slug == "" {
			list[i].Slug = format.Slug(list[i].Merk, list[i].Model)
		}
	}
	s.data = list
	s.totalData = len(list)
	return nil
}

// SetSearch updates the in-memory filter query. No network call.
func (s *JenisMotorStore) SetSearch(query string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.searchQuery = query
}

// ResetSearch clears the filter query. Idempotent, no network call.
func (s *JenisMotorStore) ResetSearch() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.searchQuery = ""
}

// Visible returns the loaded rows matching the current query against
// merk, model, or slug.
func (s *JenisMotorStore) Visible() []backend.JenisMotor {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.visibleLocked()
}

func (s *JenisMotorStore) visibleLocked() []backend.JenisMotor {
	if s.searchQuery == "" {
		out := make([]backend.JenisMotor, len(s.data))
		copy(out, s.data)
		return out
	}
	q := strings.ToLower(s.searchQuery)
	out := make([]backend.JenisMotor, 0, len(s.data))
	for _, jm := range s.data {
		if strings.Contains(strings.ToLower(jm.Merk), q) ||
			strings.Contains(strings.ToLower(jm.Model), q) ||
			strings.Contains(jm.Slug, q) {
			out = append(out, jm)
		}
	}
	return out
}

// FetchDetail loads one vehicle type by id.
func (s *JenisMotorStore) FetchDetail(ctx context.Context, id string) error {
	return s.fetchDetail(func(ctx context.Context) (*backend.JenisMotor, error) {
		return s.api.Detail(ctx, id)
	}, ctx)
}

// FetchDetailBySlug loads one vehicle type by slug.
func (s *JenisMotorStore) FetchDetailBySlug(ctx context.Context, slug string) error {
	return s.fetchDetail(func(ctx context.Context) (*backend.JenisMotor, error) {
		return s.api.DetailBySlug(ctx, slug)
	}, ctx)
}

func (s *JenisMotorStore) fetchDetail(get func(context.Context) (*backend.JenisMotor, error), ctx context.Context) error {
	s.mu.Lock()
	s.loading = true
	s.errMsg = ""
	s.mu.Unlock()

	detail, err := get(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.loading = false
	if err != nil {
		s.errMsg = err.Error()
		log.Printf("jenis-motor: detail fetch failed: %v", err)
		return err
	}
	if detail.Slug == "" {
		detail.Slug = format.Slug(detail.Merk, detail.Model)
	}
	s.detail = detail
	return nil
}

// ConfirmDelete opens the delete dialog for the given vehicle type.
func (s *JenisMotorStore) ConfirmDelete(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.confirmDelete(id)
}

// CancelDelete closes the dialog without any network call.
func (s *JenisMotorStore) CancelDelete() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cancelDelete()
}

// DeleteConfirmed deletes the pending vehicle type, then re-fetches on
// success. The dialog closes in both outcomes.
func (s *JenisMotorStore) DeleteConfirmed(ctx context.Context) error {
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
		log.Printf("jenis-motor: delete failed: %v", err)
		return err
	}
	s.mu.Unlock()

	ferr := s.Fetch(ctx)
	if ferr == nil {
		s.mu.Lock()
		s.successMsg = "jenis motor berhasil dihapus"
		s.mu.Unlock()
	}
	return ferr
}

// SetForm replaces the form draft.
func (s *JenisMotorStore) SetForm(f JenisMotorForm) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.form = f
}

// SubmitCreate validates the draft locally and creates the vehicle type.
// Validation failures set the error and never reach the network.
func (s *JenisMotorStore) SubmitCreate(ctx context.Context) bool {
	return s.submit(ctx, "")
}

// SubmitUpdate validates the draft locally and patches the vehicle type.
func (s *JenisMotorStore) SubmitUpdate(ctx context.Context, id string) bool {
	return s.submit(ctx, id)
}

func (s *JenisMotorStore) submit(ctx context.Context, id string) bool {
	s.mu.Lock()
	form := s.form
	if msg := validateJenisForm(form); msg != "" {
		s.errMsg = msg
		s.mu.Unlock()
		return false
	}
	s.submitting = true
	s.errMsg = ""
	s.successMsg = ""
	s.mu.Unlock()

	payload := backend.JenisMotorPayload{
		Merk:   form.Merk,
		Model:  form.Model,
		CC:     form.CC,
		Gambar: form.Gambar,
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
		log.Printf("jenis-motor: submit failed: %v", err)
		return false
	}
	if id == "" {
		s.successMsg = "jenis motor berhasil ditambahkan"
	} else {
		s.successMsg = "jenis motor berhasil diperbarui"
	}
	s.form = JenisMotorForm{}
	return true
}

func validateJenisForm(f JenisMotorForm) string {
	if strings.TrimSpace(f.Merk) == "" {
		return "merk wajib diisi"
	}
	if strings.TrimSpace(f.Model) == "" {
		return "model wajib diisi"
	}
	if f.CC < minCC {
		return "kapasitas mesin minimal 50 cc"
	}
	return ""
}

// Snapshot returns a render-ready copy of the store state. Data is the
// filtered view; TotalData counts the full loaded list.
func (s *JenisMotorStore) Snapshot() JenisMotorSnapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	return JenisMotorSnapshot{
		Data:             s.visibleLocked(),
		TotalData:        s.totalData,
		Detail:           s.detail,
		Loading:          s.loading,
		Submitting:       s.submitting,
		Error:            s.errMsg,
		Success:          s.successMsg,
		SearchQuery:      s.searchQuery,
		ShowDeleteDialog: s.showDeleteDialog,
		DeleteTargetID:   s.deleteTargetID,
	}
}
