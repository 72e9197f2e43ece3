package backend

import (
	"context"
	"net/url"
	"strconv"
)

// TransaksiFilter is the server-side filter for the transaction list.
type TransaksiFilter struct {
	Status    string
	Search    string
	StartDate string
	EndDate   string
	Page      int
	Limit     int
}

// TransaksiList is the paginated transaction list response.
type TransaksiList struct {
	Data []Transaksi `json:"data"`
	Meta Meta        `json:"meta"`
}

// TransaksiPayload is the booking body for a new rental.
type TransaksiPayload struct {
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

// LaporanDendaRow is one row of the late-fee report.
type LaporanDendaRow struct {
	TransaksiID string  `json:"transaksiId"`
	NamaPenyewa string  `json:"namaPenyewa"`
	PlatNomor   string  `json:"platNomor"`
	Denda       float64 `json:"denda"`
}

// LaporanFasilitasRow is one row of the facility-usage report.
type LaporanFasilitasRow struct {
	TransaksiID   string  `json:"transaksiId"`
	NamaPenyewa   string  `json:"namaPenyewa"`
	Helm          int     `json:"helm"`
	JasHujan      int     `json:"jasHujan"`
	BiayaTambahan float64 `json:"biayaTambahan"`
}

// TransaksiAPI maps to the backend's transaksi endpoints.
type TransaksiAPI struct {
	c *Client
}

// NewTransaksiAPI creates the transaksi endpoint mapping.
func NewTransaksiAPI(c *Client) *TransaksiAPI {
	return &TransaksiAPI{c: c}
}

// List retrieves one page of transactions.
func (a *TransaksiAPI) List(ctx context.Context, f TransaksiFilter) (*TransaksiList, error) {
	var resp TransaksiList
	if err := a.c.Get(ctx, "/transaksi", f.query(), &resp); err != nil {
		return nil, fallback(err, "gagal mengambil daftar transaksi")
	}
	return &resp, nil
}

// Detail retrieves one transaction by id.
func (a *TransaksiAPI) Detail(ctx context.Context, id string) (*Transaksi, error) {
	var resp struct {
		Data Transaksi `json:"data"`
	}
	if err := a.c.Get(ctx, "/transaksi/"+id, nil, &resp); err != nil {
		return nil, fallback(err, "gagal mengambil detail transaksi")
	}
	return &resp.Data, nil
}

// Create books a new rental. Pricing is computed by the backend.
func (a *TransaksiAPI) Create(ctx context.Context, p TransaksiPayload) (*Transaksi, error) {
	var resp struct {
		Data Transaksi `json:"data"`
	}
	if err := a.c.Post(ctx, "/transaksi", p, &resp); err != nil {
		return nil, fallback(err, "gagal membuat transaksi")
	}
	return &resp.Data, nil
}

// Selesai asks the backend to complete a running transaction. The status
// change itself is decided server-side.
func (a *TransaksiAPI) Selesai(ctx context.Context, id string) (*Transaksi, error) {
	var resp struct {
		Data Transaksi `json:"data"`
	}
	if err := a.c.Post(ctx, "/transaksi/"+id+"/selesai", nil, &resp); err != nil {
		return nil, fallback(err, "gagal menyelesaikan transaksi")
	}
	return &resp.Data, nil
}

// LaporanDenda retrieves the late-fee report for a date range.
func (a *TransaksiAPI) LaporanDenda(ctx context.Context, startDate, endDate string) ([]LaporanDendaRow, error) {
	var resp struct {
		Data []LaporanDendaRow `json:"data"`
	}
	if err := a.c.Get(ctx, "/transaksi/laporan/denda", dateRange(startDate, endDate), &resp); err != nil {
		return nil, fallback(err, "gagal mengambil laporan denda")
	}
	return resp.Data, nil
}

// LaporanFasilitas retrieves the facility-usage report for a date range.
func (a *TransaksiAPI) LaporanFasilitas(ctx context.Context, startDate, endDate string) ([]LaporanFasilitasRow, error) {
	var resp struct {
		Data []LaporanFasilitasRow `json:"data"`
	}
	if err := a.c.Get(ctx, "/transaksi/laporan/fasilitas", dateRange(startDate, endDate), &resp); err != nil {
		return nil, fallback(err, "gagal mengambil laporan fasilitas")
	}
	return resp.Data, nil
}

func (f TransaksiFilter) query() url.Values {
	q := url.Values{}
	if f.Status != "" {
		q.Set("status", f.Status)
	}
	if f.Search != "" {
		q.Set("search", f.Search)
	}
	if f.StartDate != "" {
		q.Set("startDate", f.StartDate)
	}
	if f.EndDate != "" {
		q.Set("endDate", f.EndDate)
	}
	if f.Page > 0 {
		q.Set("page", strconv.Itoa(f.Page))
	}
	if f.Limit > 0 {
		q.Set("limit", strconv.Itoa(f.Limit))
	}
	return q
}

func dateRange(startDate, endDate string) url.Values {
	q := url.Values{}
	if startDate != "" {
		q.Set("startDate", startDate)
	}
	if endDate != "" {
		q.Set("endDate", endDate)
	}
	return q
}
