package format

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

var (
	nonWordRe   = regexp.MustCompile(`[^a-z0-9\s-]+`)
	spaceRe     = regexp.MustCompile(`\s+`)
	multiDashRe = regexp.MustCompile(`-+`)
)

// bulanIndonesia maps a month number to its Indonesian name.
var bulanIndonesia = [...]string{
	"Januari", "Februari", "Maret", "April", "Mei", "Juni",
	"Juli", "Agustus", "September", "Oktober", "November", "Desember",
}

// Rupiah renders an amount as Indonesian-locale currency with no fraction
// digits, e.g. 1000000 -> "Rp1.000.000". Fractions are rounded half away
// from zero, matching Intl.NumberFormat("id-ID").
func Rupiah(v float64) string {
	neg := v < 0
	if neg {
		v = -v
	}
	n := int64(v + 0.5)

	s := strconv.FormatInt(n, 10)
	var b strings.Builder
	for i, d := range s {
		if i > 0 && (len(s)-i)%3 == 0 {
			b.WriteByte('.')
		}
		b.WriteRune(d)
	}

	if neg {
		return "-Rp" + b.String()
	}
	return "Rp" + b.String()
}

// RupiahPtr is Rupiah for optional amounts; a nil pointer renders as the
// zero-value currency string "Rp0".
func RupiahPtr(v *float64) string {
	if v == nil {
		return Rupiah(0)
	}
	return Rupiah(*v)
}

// Tanggal renders a timestamp as an Indonesian date, e.g. "2 Januari 2026".
func Tanggal(t time.Time) string {
	return fmt.Sprintf("%d %s %d", t.Day(), bulanIndonesia[t.Month()-1], t.Year())
}

// TanggalWaktu renders a timestamp as an Indonesian date plus a 24-hour
// clock, e.g. "2 Januari 2026 14.05".
func TanggalWaktu(t time.Time) string {
	return fmt.Sprintf("%s %02d.%02d", Tanggal(t), t.Hour(), t.Minute())
}

// ParseTanggal parses the date strings the backend emits: either a plain
// "2006-01-02" or a full RFC3339 timestamp.
func ParseTanggal(s string) (time.Time, error) {
	if t, err := time.Parse("2006-01-02", s); err == nil {
		return t, nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("unrecognized date %q: %w", s, err)
	}
	return t, nil
}

// Slug builds a URL slug from the given parts: lowercase, non-word
// characters stripped, whitespace collapsed to single hyphens, no repeated
// or leading/trailing hyphens. Slug("Honda", "Vario 125") == "honda-vario-125".
func Slug(parts ...string) string {
	s := strings.ToLower(strings.Join(parts, " "))
	s = nonWordRe.ReplaceAllString(s, "")
	s = spaceRe.ReplaceAllString(strings.TrimSpace(s), "-")
	s = multiDashRe.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}
