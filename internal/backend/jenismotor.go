package backend

import (
	"context"
	"strconv"
)

// FileUpload is an in-memory file attached to a multipart request.
type FileUpload struct {
	Name    string
	Content []byte
}

// JenisMotorPayload is the create/update body for a vehicle type. When
// Gambar is set the request goes out as multipart, otherwise as JSON.
type JenisMotorPayload struct {
	Merk   string      `json:"merk"`
	Model  string      `json:"model"`
	CC     int         `json:"cc"`
	Gambar *FileUpload `json:"-"`
}

// JenisMotorAPI maps to the backend's jenis-motor endpoints.
type JenisMotorAPI struct {
	c *Client
}

// NewJenisMotorAPI creates the jenis-motor endpoint mapping.
func NewJenisMotorAPI(c *Client) *JenisMotorAPI {
	return &JenisMotorAPI{c: c}
}

// List retrieves every vehicle type. Text search over this resource is
// done client-side, so there are no filter parameters.
func (a *JenisMotorAPI) List(ctx context.Context) ([]JenisMotor, error) {
	var resp struct {
		Data []JenisMotor `json:"data"`
	}
	if err := a.c.Get(ctx, "/jenis-motor", nil, &resp); err != nil {
		return nil, fallback(err, "gagal mengambil daftar jenis motor")
	}
	return resp.Data, nil
}

// Detail retrieves one vehicle type by id.
func (a *JenisMotorAPI) Detail(ctx context.Context, id string) (*JenisMotor, error) {
	var resp struct {
		Data JenisMotor `json:"data"`
	}
	if err := a.c.Get(ctx, "/jenis-motor/"+id, nil, &resp); err != nil {
		return nil, fallback(err, "gagal mengambil detail jenis motor")
	}
	return &resp.Data, nil
}

// DetailBySlug retrieves one vehicle type by its slug.
func (a *JenisMotorAPI) DetailBySlug(ctx context.Context, slug string) (*JenisMotor, error) {
	var resp struct {
		Data JenisMotor `json:"data"`
	}
	if err := a.c.Get(ctx, "/jenis-motor/slug/"+slug, nil, &resp); err != nil {
		return nil, fallback(err, "gagal mengambil detail jenis motor")
	}
	return &resp.Data, nil
}

// Create adds a vehicle type.
func (a *JenisMotorAPI) Create(ctx context.Context, p JenisMotorPayload) (*JenisMotor, error) {
	var resp struct {
		Data JenisMotor `json:"data"`
	}

	var err error
	if p.Gambar != nil {
		err = a.c.PostForm(ctx, "/jenis-motor", p.form(), &resp)
	} else {
		err = a.c.Post(ctx, "/jenis-motor", p, &resp)
	}
	if err != nil {
		return nil, fallback(err, "gagal menambahkan jenis motor")
	}
	return &resp.Data, nil
}

// Update patches a vehicle type.
func (a *JenisMotorAPI) Update(ctx context.Context, id string, p JenisMotorPayload) (*JenisMotor, error) {
	var resp struct {
		Data JenisMotor `json:"data"`
	}

	var err error
	if p.Gambar != nil {
		err = a.c.PatchForm(ctx, "/jenis-motor/"+id, p.form(), &resp)
	} else {
		err = a.c.Patch(ctx, "/jenis-motor/"+id, p, &resp)
	}
	if err != nil {
		return nil, fallback(err, "gagal memperbarui jenis motor")
	}
	return &resp.Data, nil
}

// Delete removes a vehicle type.
func (a *JenisMotorAPI) Delete(ctx context.Context, id string) error {
	if err := a.c.Delete(ctx, "/jenis-motor/"+id, nil); err != nil {
		return fallback(err, "gagal menghapus jenis motor")
	}
	return nil
}

func (p JenisMotorPayload) form() *Form {
	f := NewForm()
	f.Add("merk", p.Merk)
	f.Add("model", p.Model)
	f.Add("cc", strconv.Itoa(p.CC))
	if p.Gambar != nil {
		f.AddFile("gambar", p.Gambar.Name, p.Gambar.Content)
	}
	return f
}
