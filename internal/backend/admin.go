package backend

import "context"

// AdminPayload is the create/update body for an admin account.
type AdminPayload struct {
	Username string `json:"username"`
	Nama     string `json:"nama"`
	Password string `json:"password,omitempty"`
}

// AdminAPI maps to the backend's admin endpoints.
type AdminAPI struct {
	c *Client
}

// NewAdminAPI creates the admin endpoint mapping.
func NewAdminAPI(c *Client) *AdminAPI {
	return &AdminAPI{c: c}
}

// List retrieves every admin account.
func (a *AdminAPI) List(ctx context.Context) ([]Admin, error) {
	var resp struct {
		Data []Admin `json:"data"`
	}
	if err := a.c.Get(ctx, "/admin/debug", nil, &resp); err != nil {
		return nil, fallback(err, "gagal mengambil daftar admin")
	}
	return resp.Data, nil
}

// Create registers a new admin account.
func (a *AdminAPI) Create(ctx context.Context, p AdminPayload) (*Admin, error) {
	var resp struct {
		Data Admin `json:"data"`
	}
	if err := a.c.Post(ctx, "/admin", p, &resp); err != nil {
		return nil, fallback(err, "gagal menambahkan admin")
	}
	return &resp.Data, nil
}

// Update replaces an admin account's profile. An empty password leaves the
// stored one untouched.
func (a *AdminAPI) Update(ctx context.Context, id string, p AdminPayload) (*Admin, error) {
	var resp struct {
		Data Admin `json:"data"`
	}
	if err := a.c.Put(ctx, "/admin/"+id, p, &resp); err != nil {
		return nil, fallback(err, "gagal memperbarui admin")
	}
	return &resp.Data, nil
}

// Delete removes an admin account.
func (a *AdminAPI) Delete(ctx context.Context, id string) error {
	if err := a.c.Delete(ctx, "/admin/"+id, nil); err != nil {
		return fallback(err, "gagal menghapus admin")
	}
	return nil
}
