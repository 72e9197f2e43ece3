package format

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRupiah(t *testing.T) {
	testCases := []struct {
		name     string
		value    float64
		expected string
	}{
		{"zero", 0, "Rp0"},
		{"under a thousand", 950, "Rp950"},
		{"exactly a thousand", 1000, "Rp1.000"},
		{"one million", 1000000, "Rp1.000.000"},
		{"rounds fractions", 1499.5, "Rp1.500"},
		{"negative", -75000, "-Rp75.000"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, Rupiah(tc.value))
		})
	}
}

func TestRupiahPtr(t *testing.T) {
	assert.Equal(t, "Rp0", RupiahPtr(nil))

	v := 250000.0
	assert.Equal(t, "Rp250.000", RupiahPtr(&v))
}

func TestSlug(t *testing.T) {
	testCases := []struct {
		name     string
		parts    []string
		expected string
	}{
		{"merk and model", []string{"Honda", "Vario 125"}, "honda-vario-125"},
		{"single part", []string{"Yamaha NMAX"}, "yamaha-nmax"},
		{"strips punctuation", []string{"Honda", "PCX 160 (ABS)"}, "honda-pcx-160-abs"},
		{"collapses repeats", []string{"Honda  -  Beat"}, "honda-beat"},
		{"no leading or trailing hyphen", []string{" Vespa ", " "}, "vespa"},
		{"empty", []string{""}, ""},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, Slug(tc.parts...))
		})
	}
}

func TestTanggal(t *testing.T) {
	loc, err := time.LoadLocation("Asia/Jakarta")
	assert.NoError(t, err)

	at := time.Date(2026, time.January, 2, 14, 5, 0, 0, loc)
	assert.Equal(t, "2 Januari 2026", Tanggal(at))
	assert.Equal(t, "2 Januari 2026 14.05", TanggalWaktu(at))
}

func TestParseTanggal(t *testing.T) {
	d, err := ParseTanggal("2026-08-17")
	assert.NoError(t, err)
	assert.Equal(t, 17, d.Day())
	assert.Equal(t, time.August, d.Month())

	d, err = ParseTanggal("2026-08-17T09:30:00Z")
	assert.NoError(t, err)
	assert.Equal(t, 9, d.Hour())

	_, err = ParseTanggal("17/08/2026")
	assert.Error(t, err)
}
