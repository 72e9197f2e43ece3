package store

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rental-dashboard-backend/internal/backend"
)

func newJenisStore(url string) *JenisMotorStore {
	client := backend.NewClient(url, 5*time.Second, 1000, 1000, noTokens{})
	return NewJenisMotorStore(backend.NewJenisMotorAPI(client))
}

const jenisList = `{"data":[
	{"id":"j1","merk":"Honda","model":"Vario 125","cc":125,"slug":"honda-vario-125"},
	{"id":"j2","merk":"Yamaha","model":"NMAX","cc":155,"slug":""},
	{"id":"j3","merk":"Honda","model":"Beat","cc":110,"slug":"honda-beat"}
]}`

func TestJenisMotorSearchIsClientSide(t *testing.T) {
	var requests atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests.Add(1)
		w.Write([]byte(jenisList))
	}))
	defer server.Close()

	s := newJenisStore(server.URL)
	require.NoError(t, s.Fetch(context.Background()))
	require.Equal(t, int32(1), requests.Load())

	// Searching filters the loaded list without re-querying.
	s.SetSearch("honda")
	snap := s.Snapshot()
	assert.Len(t, snap.Data, 2)
	assert.Equal(t, 3, snap.TotalData, "the full count stays visible behind the filter")
	assert.Equal(t, int32(1), requests.Load())

	// Slug matches count too.
	s.SetSearch("honda-beat")
	assert.Len(t, s.Visible(), 1)

	// Reset is idempotent and silent on the network.
	s.ResetSearch()
	s.ResetSearch()
	assert.Len(t, s.Visible(), 3)
	assert.Equal(t, int32(1), requests.Load())
}

func TestJenisMotorDerivesMissingSlug(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(jenisList))
	}))
	defer server.Close()

	s := newJenisStore(server.URL)
	require.NoError(t, s.Fetch(context.Background()))

	s.SetSearch("yamaha-nmax")
	visible := s.Visible()
	require.Len(t, visible, 1)
	assert.Equal(t, "yamaha-nmax", visible[0].Slug)
}

func TestJenisMotorEngineFloor(t *testing.T) {
	var requests atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests.Add(1)
		w.Write([]byte(`{"data":{"id":"j9","merk":"Honda","model":"Beat","cc":125}}`))
	}))
	defer server.Close()

	s := newJenisStore(server.URL)

	// Below the 50 cc floor nothing leaves the client.
	s.SetForm(JenisMotorForm{Merk: "Honda", Model: "Beat", CC: 40})
	assert.False(t, s.SubmitCreate(context.Background()))
	assert.Equal(t, "kapasitas mesin minimal 50 cc", s.Snapshot().Error)
	assert.Zero(t, requests.Load())

	// At a sensible displacement the create goes through.
	s.SetForm(JenisMotorForm{Merk: "Honda", Model: "Beat", CC: 125})
	assert.True(t, s.SubmitCreate(context.Background()))
	assert.Equal(t, int32(1), requests.Load())
	assert.Equal(t, "jenis motor berhasil ditambahkan", s.Snapshot().Success)
}
