package backend

import (
	"context"
	"net/url"
	"strconv"
)

// BlogFilter is the server-side filter for the blog list.
type BlogFilter struct {
	Search   string
	Status   string
	Kategori string
	Page     int
	Limit    int
}

// BlogList is the paginated blog list response.
type BlogList struct {
	Data []BlogPost `json:"data"`
	Meta Meta       `json:"meta"`
}

// BlogPayload is the create/update body for a post. When Thumbnail is set
// the request goes out as multipart with tags as repeated form fields.
type BlogPayload struct {
	Judul     string      `json:"judul"`
	Konten    string      `json:"konten"`
	Status    string      `json:"status"`
	Kategori  string      `json:"kategori,omitempty"`
	Tags      []string    `json:"tags,omitempty"`
	Thumbnail *FileUpload `json:"-"`
}

// BlogAPI maps to the backend's blog endpoints.
type BlogAPI struct {
	c *Client
}

// NewBlogAPI creates the blog endpoint mapping.
func NewBlogAPI(c *Client) *BlogAPI {
	return &BlogAPI{c: c}
}

// List retrieves one page of posts.
func (a *BlogAPI) List(ctx context.Context, f BlogFilter) (*BlogList, error) {
	q := url.Values{}
	if f.Search != "" {
		q.Set("search", f.Search)
	}
	if f.Status != "" {
		q.Set("status", f.Status)
	}
	if f.Kategori != "" {
		q.Set("kategori", f.Kategori)
	}
	if f.Page > 0 {
		q.Set("page", strconv.Itoa(f.Page))
	}
	if f.Limit > 0 {
		q.Set("limit", strconv.Itoa(f.Limit))
	}

	var resp BlogList
	if err := a.c.Get(ctx, "/blog", q, &resp); err != nil {
		return nil, fallback(err, "gagal mengambil daftar artikel")
	}
	return &resp, nil
}

// Detail retrieves one post by id.
func (a *BlogAPI) Detail(ctx context.Context, id string) (*BlogPost, error) {
	var resp struct {
		Data BlogPost `json:"data"`
	}
	if err := a.c.Get(ctx, "/blog/"+id, nil, &resp); err != nil {
		return nil, fallback(err, "gagal mengambil detail artikel")
	}
	return &resp.Data, nil
}

// DetailBySlug retrieves one post by its slug.
func (a *BlogAPI) DetailBySlug(ctx context.Context, slug string) (*BlogPost, error) {
	var resp struct {
		Data BlogPost `json:"data"`
	}
	if err := a.c.Get(ctx, "/blog/by-slug/"+slug, nil, &resp); err != nil {
		return nil, fallback(err, "gagal mengambil detail artikel")
	}
	return &resp.Data, nil
}

// Create adds a post.
func (a *BlogAPI) Create(ctx context.Context, p BlogPayload) (*BlogPost, error) {
	var resp struct {
		Data BlogPost `json:"data"`
	}

	var err error
	if p.Thumbnail != nil {
		err = a.c.PostForm(ctx, "/blog", p.form(), &resp)
	} else {
		err = a.c.Post(ctx, "/blog", p, &resp)
	}
	if err != nil {
		return nil, fallback(err, "gagal menambahkan artikel")
	}
	return &resp.Data, nil
}

// Update patches a post.
func (a *BlogAPI) Update(ctx context.Context, id string, p BlogPayload) (*BlogPost, error) {
	var resp struct {
		Data BlogPost `json:"data"`
	}

	var err error
	if p.Thumbnail != nil {
		err = a.c.PatchForm(ctx, "/blog/"+id, p.form(), &resp)
	} else {
		err = a.c.Patch(ctx, "/blog/"+id, p, &resp)
	}
	if err != nil {
		return nil, fallback(err, "gagal memperbarui artikel")
	}
	return &resp.Data, nil
}

// Delete removes a post.
func (a *BlogAPI) Delete(ctx context.Context, id string) error {
	if err := a.c.Delete(ctx, "/blog/"+id, nil); err != nil {
		return fallback(err, "gagal menghapus artikel")
	}
	return nil
}

func (p BlogPayload) form() *Form {
	f := NewForm()
	f.Add("judul", p.Judul)
	f.Add("konten", p.Konten)
	f.Add("status", p.Status)
	if p.Kategori != "" {
		f.Add("kategori", p.Kategori)
	}
	for _, tag := range p.Tags {
		f.Add("tags", tag)
	}
	if p.Thumbnail != nil {
		f.AddFile("thumbnail", p.Thumbnail.Name, p.Thumbnail.Content)
	}
	return f
}
