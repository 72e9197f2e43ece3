package store

import (
	"context"
	"log"
	"strings"
	"sync"

	"rental-dashboard-backend/internal/backend"
)

// AdminForm is the create/edit draft for an admin account. Password is
// required on create and optional on edit.
type AdminForm struct {
	Username string `json:"username"`
	Nama     string `json:"nama"`
	Password string `json:"password,omitempty"`
}

// AdminSnapshot is a copy of the store's state for rendering.
type AdminSnapshot struct {
	Data             []backend.Admin `json:"data"`
	Loading          bool            `json:"loading"`
	Submitting       bool            `json:"submitting"`
	Error            string          `json:"error"`
	Success          string          `json:"success"`
	ShowDeleteDialog bool            `json:"showDeleteDialog"`
	DeleteTargetID   string          `json:"deleteTargetId,omitempty"`
}

// AdminStore owns the admin-account slice of remote state. The backend
// returns the full list in one response, so there is no pagination
// cursor here.
type AdminStore struct {
	mu  sync.Mutex
	api *backend.AdminAPI

	listState
	data []backend.Admin
	form AdminForm
}

// NewAdminStore creates an admin store.
func NewAdminStore(api *backend.AdminAPI) *AdminStore {
	return &AdminStore{api: api, listState: newListState()}
}

// Fetch loads the admin list. Failures leave the previous data in place.
func (s *AdminStore) Fetch(ctx context.Context) error {
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
		log.Printf("admin: fetch failed: %v", err)
		return err
	}
	s.data = list
	s.totalData = len(list)
	return nil
}

// ConfirmDelete opens the delete dialog for the given account.
func (s *AdminStore) ConfirmDelete(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.confirmDelete(id)
}

// CancelDelete closes the dialog without any network call.
func (s *AdminStore) CancelDelete() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cancelDelete()
}

// DeleteConfirmed deletes the pending account, then re-fetches on
// success. The dialog closes in both outcomes.
func (s *AdminStore) DeleteConfirmed(ctx context.Context) error {
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
		log.Printf("admin: delete failed: %v", err)
		return err
	}
	s.mu.Unlock()

	ferr := s.Fetch(ctx)
	if ferr == nil {
		s.mu.Lock()
		s.successMsg = "admin berhasil dihapus"
		s.mu.Unlock()
	}
	return ferr
}

// SetForm replaces the form draft.
func (s *AdminStore) SetForm(f AdminForm) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.form = f
}

// SubmitCreate validates the draft locally and registers the account.
func (s *AdminStore) SubmitCreate(ctx context.Context) bool {
	return s.submit(ctx, "")
}

// SubmitUpdate validates the draft locally and updates the account.
func (s *AdminStore) SubmitUpdate(ctx context.Context, id string) bool {
	return s.submit(ctx, id)
}

func (s *AdminStore) submit(ctx context.Context, id string) bool {
	s.mu.Lock()
	form := s.form
	if msg := validateAdminForm(form, id == ""); msg != "" {
		s.errMsg = msg
		s.mu.Unlock()
		return false
	}
	s.submitting = true
	s.errMsg = ""
	s.successMsg = ""
	s.mu.Unlock()

	payload := backend.AdminPayload{
		Username: form.Username,
		Nama:     form.Nama,
		Password: form.Password,
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
		log.Printf("admin: submit failed: %v", err)
		return false
	}
	if id == "" {
		s.successMsg = "admin berhasil ditambahkan"
	} else {
		s.successMsg = "admin berhasil diperbarui"
	}
	s.form = AdminForm{}
	return true
}

func validateAdminForm(f AdminForm, isCreate bool) string {
	if strings.TrimSpace(f.Username) == "" {
		return "username wajib diisi"
	}
	if strings.TrimSpace(f.Nama) == "" {
		return "nama wajib diisi"
	}
	if isCreate && len(f.Password) < 6 {
		return "password minimal 6 karakter"
	}
	return ""
}

// Snapshot returns a render-ready copy of the store state.
func (s *AdminStore) Snapshot() AdminSnapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	data := make([]backend.Admin, len(s.data))
	copy(data, s.data)

	return AdminSnapshot{
		Data:             data,
		Loading:          s.loading,
		Submitting:       s.submitting,
		Error:            s.errMsg,
		Success:          s.successMsg,
		ShowDeleteDialog: s.showDeleteDialog,
		DeleteTargetID:   s.deleteTargetID,
	}
}
