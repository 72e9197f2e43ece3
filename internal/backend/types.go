package backend

import "time"

// Admin is a back-office user of the dashboard. The password never
// round-trips back from the server.
type Admin struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	Nama      string    `json:"nama"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// JenisMotor is a vehicle type/model, e.g. "Honda Vario 125".
type JenisMotor struct {
	ID        string    `json:"id"`
	Merk      string    `json:"merk"`
	Model     string    `json:"model"`
	CC        int       `json:"cc"`
	Gambar    *string   `json:"gambar,omitempty"`
	Slug      string    `json:"slug"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Recognized unit statuses. Transitions are server-authoritative; the
// client only displays them and requests changes.
const (
	UnitTersedia  = "TERSEDIA"
	UnitDisewa    = "DISEWA"
	UnitDipesan   = "DIPESAN"
	UnitPerbaikan = "PERBAIKAN"
)

// UnitMotor is a physical rentable vehicle instance, identified by its
// license plate.
type UnitMotor struct {
	ID             string      `json:"id"`
	PlatNomor      string      `json:"platNomor"`
	TahunPembuatan int         `json:"tahunPembuatan"`
	HargaSewa      float64     `json:"hargaSewa"`
	Status         string      `json:"status"`
	Jenis          *JenisMotor `json:"jenis,omitempty"`
	CreatedAt      time.Time   `json:"createdAt"`
	UpdatedAt      time.Time   `json:"updatedAt"`
}

// Recognized transaction statuses.
const (
	TransaksiBooking  = "BOOKING"
	TransaksiBerjalan = "BERJALAN"
	TransaksiAktif    = "AKTIF"
	TransaksiSelesai  = "SELESAI"
	TransaksiBatal    = "BATAL"
	TransaksiOverdue  = "OVERDUE"
)

// Transaksi is a rental transaction/booking.
type Transaksi struct {
	ID             string     `json:"id"`
	NamaPenyewa    string     `json:"namaPenyewa"`
	NoWhatsapp     string     `json:"noWhatsapp"`
	Alamat         string     `json:"alamat"`
	UnitMotor      *UnitMotor `json:"unitMotor,omitempty"`
	TanggalMulai   string     `json:"tanggalMulai"`
	JamMulai       string     `json:"jamMulai"`
	TanggalSelesai string     `json:"tanggalSelesai"`
	JamSelesai     string     `json:"jamSelesai"`
	Helm           int        `json:"helm"`
	JasHujan       int        `json:"jasHujan"`
	TotalBiaya     float64    `json:"totalBiaya"`
	Status         string     `json:"status"`
	CreatedAt      time.Time  `json:"createdAt"`
	UpdatedAt      time.Time  `json:"updatedAt"`
}

// Blog post statuses.
const (
	BlogDraft     = "DRAFT"
	BlogPublished = "PUBLISHED"
)

// Tag is a blog tag.
type Tag struct {
	ID   string `json:"id"`
	Nama string `json:"nama"`
}

// BlogTag is the join shape the backend nests tags under.
type BlogTag struct {
	Tag Tag `json:"tag"`
}

// BlogPost is an article; Konten is raw HTML.
type BlogPost struct {
	ID        string    `json:"id"`
	Judul     string    `json:"judul"`
	Konten    string    `json:"konten"`
	Slug      string    `json:"slug"`
	Thumbnail *string   `json:"thumbnail,omitempty"`
	Status    string    `json:"status"`
	Kategori  *string   `json:"kategori,omitempty"`
	Tags      []BlogTag `json:"tags"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Meta is the pagination envelope the backend attaches to list responses.
type Meta struct {
	TotalItems   int `json:"totalItems"`
	TotalPages   int `json:"totalPages"`
	CurrentPage  int `json:"currentPage"`
	ItemsPerPage int `json:"itemsPerPage"`
}
