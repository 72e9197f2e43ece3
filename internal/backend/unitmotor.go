package backend

import (
	"context"
	"net/url"
	"strconv"
)

// UnitMotorFilter is the server-side filter for the unit list. Zero
// values are dropped from the query string.
type UnitMotorFilter struct {
	Status string
	Search string
	Page   int
	Limit  int
}

// UnitMotorList is the paginated unit list response.
type UnitMotorList struct {
	Data []UnitMotor `json:"data"`
	Meta Meta        `json:"meta"`
}

// UnitMotorPayload is the create/update body for a vehicle unit. Status is
// intentionally absent: unit status transitions belong to the backend.
type UnitMotorPayload struct {
	PlatNomor      string  `json:"platNomor"`
	TahunPembuatan int     `json:"tahunPembuatan"`
	HargaSewa      float64 `json:"hargaSewa"`
	JenisID        string  `json:"jenisId"`
}

// UnitMotorAPI maps to the backend's unit-motor endpoints.
type UnitMotorAPI struct {
	c *Client
}

// NewUnitMotorAPI creates the unit-motor endpoint mapping.
func NewUnitMotorAPI(c *Client) *UnitMotorAPI {
	return &UnitMotorAPI{c: c}
}

// List retrieves one page of vehicle units.
func (a *UnitMotorAPI) List(ctx context.Context, f UnitMotorFilter) (*UnitMotorList, error) {
	q := url.Values{}
	if f.Status != "" {
		q.Set("status", f.Status)
	}
	if f.Search != "" {
		q.Set("search", f.Search)
	}
	if f.Page > 0 {
		q.Set("page", strconv.Itoa(f.Page))
	}
	if f.Limit > 0 {
		q.Set("limit", strconv.Itoa(f.Limit))
	}

	var resp UnitMotorList
	if err := a.c.Get(ctx, "/unit-motor", q, &resp); err != nil {
		return nil, fallback(err, "gagal mengambil daftar unit motor")
	}
	return &resp, nil
}

// Detail retrieves one vehicle unit by id.
func (a *UnitMotorAPI) Detail(ctx context.Context, id string) (*UnitMotor, error) {
	var resp struct {
		Data UnitMotor `json:"data"`
	}
	if err := a.c.Get(ctx, "/unit-motor/"+id, nil, &resp); err != nil {
		return nil, fallback(err, "gagal mengambil detail unit motor")
	}
	return &resp.Data, nil
}

// Create adds a vehicle unit.
func (a *UnitMotorAPI) Create(ctx context.Context, p UnitMotorPayload) (*UnitMotor, error) {
	var resp struct {
		Data UnitMotor `json:"data"`
	}
	if err := a.c.Post(ctx, "/unit-motor", p, &resp); err != nil {
		return nil, fallback(err, "gagal menambahkan unit motor")
	}
	return &resp.Data, nil
}

// Update patches a vehicle unit.
func (a *UnitMotorAPI) Update(ctx context.Context, id string, p UnitMotorPayload) (*UnitMotor, error) {
	var resp struct {
		Data UnitMotor `json:"data"`
	}
	if err := a.c.Patch(ctx, "/unit-motor/"+id, p, &resp); err != nil {
		return nil, fallback(err, "gagal memperbarui unit motor")
	}
	return &resp.Data, nil
}

// Delete removes a vehicle unit.
func (a *UnitMotorAPI) Delete(ctx context.Context, id string) error {
	if err := a.c.Delete(ctx, "/unit-motor/"+id, nil); err != nil {
		return fallback(err, "gagal menghapus unit motor")
	}
	return nil
}
