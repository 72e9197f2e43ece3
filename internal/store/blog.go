package store

import (
	"context"
	"log"
	"strings"
	"sync"

	"rental-dashboard-backend/internal/backend"
)

// BlogForm is the create/edit draft for a post.
type BlogForm struct {
	Judul     string              `json:"judul"`
	Konten    string              `json:"konten"`
	Status    string              `json:"status"`
	Kategori  string              `json:"kategori,omitempty"`
	Tags      []string            `json:"tags,omitempty"`
	Thumbnail *backend.FileUpload `json:"-"`
}

// BlogSnapshot is a copy of the store's state for rendering.
type BlogSnapshot struct {
	Data             []backend.BlogPost `json:"data"`
	Detail           *backend.BlogPost  `json:"detail,omitempty"`
	Loading          bool               `json:"loading"`
	Submitting       bool               `json:"submitting"`
	Error            string             `json:"error"`
	Success          string             `json:"success"`
	SearchQuery      string             `json:"searchQuery"`
	StatusFilter     string             `json:"statusFilter"`
	KategoriFilter   string             `json:"kategoriFilter"`
	CurrentPage      int                `json:"currentPage"`
	TotalPages       int                `json:"totalPages"`
	TotalData        int                `json:"totalData"`
	Limit            int                `json:"limit"`
	ShowDeleteDialog bool               `json:"showDeleteDialog"`
	DeleteTargetID   string             `json:"deleteTargetId,omitempty"`
}

// BlogStore owns the blog slice of remote state. Search and filters are
// server-side for this resource.
type BlogStore struct {
	mu  sync.Mutex
	api *backend.BlogAPI

	listState
	statusFilter   string
	kategoriFilter string
	data           []backend.BlogPost
	detail         *backend.BlogPost
	form           BlogForm
}

// NewBlogStore creates a blog store.
func NewBlogStore(api *backend.BlogAPI) *BlogStore {
	return &BlogStore{api: api, listState: newListState()}
}

// Fetch loads the current page with the current filters.
func (s *BlogStore) Fetch(ctx context.Context) error {
	s.mu.Lock()
	seq := s.beginFetch()
	filter := backend.BlogFilter{
		Search:   s.searchQuery,
		Status:   s.statusFilter,
		Kategori: s.kategoriFilter,
		Page:     s.currentPage,
		Limit:    s.limit,
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
		log.Printf("blog: fetch failed: %v", err)
		return err
	}
	s.data = list.Data
	s.applyMeta(list.Meta)
	return nil
}

// SetView applies query, status, kategori and page in one step without
// fetching. A page below 1 keeps the current cursor.
func (s *BlogStore) SetView(query, status, kategori string, page int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.searchQuery = query
	s.statusFilter = status
	s.kategoriFilter = kategori
	if page >= 1 {
		s.currentPage = page
	}
}

// SetPage moves the cursor and re-fetches immediately.
func (s *BlogStore) SetPage(ctx context.Context, page int) error {
	if page < 1 {
		page = 1
	}
	s.mu.Lock()
	s.currentPage = page
	s.mu.Unlock()
	return s.Fetch(ctx)
}

// SetStatusFilter swaps the publish-status filter and re-fetches from
// page 1.
func (s *BlogStore) SetStatusFilter(ctx context.Context, status string) error {
	s.mu.Lock()
	s.statusFilter = status
	s.currentPage = 1
	s.mu.Unlock()
	return s.Fetch(ctx)
}

// SetKategoriFilter swaps the category filter and re-fetches from page 1.
func (s *BlogStore) SetKategoriFilter(ctx context.Context, kategori string) error {
	s.mu.Lock()
	s.kategoriFilter = kategori
	s.currentPage = 1
	s.mu.Unlock()
	return s.Fetch(ctx)
}

// SubmitSearch applies a text query. Submit-driven, not per-keystroke.
func (s *BlogStore) SubmitSearch(ctx context.Context, query string) error {
	s.mu.Lock()
	s.searchQuery = query
	s.currentPage = 1
	s.mu.Unlock()
	return s.Fetch(ctx)
}

// ResetSearch clears query and filters and re-fetches page 1. Idempotent.
func (s *BlogStore) ResetSearch(ctx context.Context) error {
	s.mu.Lock()
	s.searchQuery = ""
	s.statusFilter = ""
	s.kategoriFilter = ""
	s.currentPage = 1
	s.mu.Unlock()
	return s.Fetch(ctx)
}

// FetchDetail loads one post by id.
func (s *BlogStore) FetchDetail(ctx context.Context, id string) error {
	return s.fetchDetail(func(ctx context.Context) (*backend.BlogPost, error) {
		return s.api.Detail(ctx, id)
	}, ctx)
}

// FetchDetailBySlug loads one post by slug.
func (s *BlogStore) FetchDetailBySlug(ctx context.Context, slug string) error {
	return s.fetchDetail(func(ctx context.Context) (*backend.BlogPost, error) {
		return s.api.DetailBySlug(ctx, slug)
	}, ctx)
}

func (s *BlogStore) fetchDetail(get func(context.Context) (*backend.BlogPost, error), ctx context.Context) error {
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
		log.Printf("blog: detail fetch failed: %v", err)
		return err
	}
	s.detail = detail
	return nil
}

// ConfirmDelete opens the delete dialog for the given post.
func (s *BlogStore) ConfirmDelete(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.confirmDelete(id)
}

// CancelDelete closes the dialog without any network call.
func (s *BlogStore) CancelDelete() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cancelDelete()
}

// DeleteConfirmed deletes the pending post, then re-fetches on success.
// The dialog closes in both outcomes.
func (s *BlogStore) DeleteConfirmed(ctx context.Context) error {
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
		log.Printf("blog: delete failed: %v", err)
		return err
	}
	s.mu.Unlock()

	ferr := s.Fetch(ctx)
	if ferr == nil {
		s.mu.Lock()
		s.successMsg = "artikel berhasil dihapus"
		s.mu.Unlock()
	}
	return ferr
}

// SetForm replaces the form draft.
func (s *BlogStore) SetForm(f BlogForm) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.form = f
}

// SubmitCreate validates the draft locally and creates the post.
func (s *BlogStore) SubmitCreate(ctx context.Context) bool {
	return s.submit(ctx, "")
}

// SubmitUpdate validates the draft locally and patches the post.
func (s *BlogStore) SubmitUpdate(ctx context.Context, id string) bool {
	return s.submit(ctx, id)
}

func (s *BlogStore) submit(ctx context.Context, id string) bool {
	s.mu.Lock()
	form := s.form
	if msg := validateBlogForm(form); msg != "" {
		s.errMsg = msg
		s.mu.Unlock()
		return false
	}
	s.submitting = true
	s.errMsg = ""
	s.successMsg = ""
	s.mu.Unlock()

	payload := backend.BlogPayload{
		Judul:     form.Judul,
		Konten:    form.Konten,
		Status:    form.Status,
		Kategori:  form.Kategori,
		Tags:      form.Tags,
		Thumbnail: form.Thumbnail,
	}
	if payload.Status == "" {
		payload.Status = backend.BlogDraft
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
		log.Printf("blog: submit failed: %v", err)
		return false
	}
	if id == "" {
		s.successMsg = "artikel berhasil ditambahkan"
	} else {
		s.successMsg = "artikel berhasil diperbarui"
	}
	s.form = BlogForm{}
	return true
}

func validateBlogForm(f BlogForm) string {
	if strings.TrimSpace(f.Judul) == "" {
		return "judul wajib diisi"
	}
	if strings.TrimSpace(f.Konten) == "" {
		return "konten wajib diisi"
	}
	if f.Status != "" && f.Status != backend.BlogDraft && f.Status != backend.BlogPublished {
		return "status artikel tidak dikenal"
	}
	return ""
}

// Snapshot returns a render-ready copy of the store state.
func (s *BlogStore) Snapshot() BlogSnapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	data := make([]backend.BlogPost, len(s.data))
	copy(data, s.data)

	return BlogSnapshot{
		Data:             data,
		Detail:           s.detail,
		Loading:          s.loading,
		Submitting:       s.submitting,
		Error:            s.errMsg,
		Success:          s.successMsg,
		SearchQuery:      s.searchQuery,
		StatusFilter:     s.statusFilter,
		KategoriFilter:   s.kategoriFilter,
		CurrentPage:      s.currentPage,
		TotalPages:       s.totalPages,
		TotalData:        s.totalData,
		Limit:            s.limit,
		ShowDeleteDialog: s.showDeleteDialog,
		DeleteTargetID:   s.deleteTargetID,
	}
}
