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

func newUnitStore(url string) *UnitMotorStore {
	client := backend.NewClient(url, 5*time.Second, 1000, 1000, noTokens{})
	return NewUnitMotorStore(backend.NewUnitMotorAPI(client))
}

// noTokens is a TokenSource for unauthenticated test traffic.
type noTokens struct{}

func (noTokens) Token() (string, bool) { return "", false }

const unitPage = `{
	"data": [{"id":"u1","platNomor":"AB 1234 CD","status":"TERSEDIA"}],
	"meta": {"totalItems":14,"totalPages":2,"currentPage":1,"itemsPerPage":10}
}`

func TestUnitMotorFetchAppliesDataAndMeta(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(unitPage))
	}))
	defer server.Close()

	s := newUnitStore(server.URL)
	require.NoError(t, s.Fetch(context.Background()))

	snap := s.Snapshot()
	require.Len(t, snap.Data, 1)
	assert.Equal(t, "AB 1234 CD", snap.Data[0].PlatNomor)
	assert.Equal(t, 14, snap.TotalData)
	assert.Equal(t, 2, snap.TotalPages)
	assert.False(t, snap.Loading)
	assert.Empty(t, snap.Error)
}

func TestUnitMotorFetchFailurePreservesData(t *testing.T) {
	var fail atomic.Bool
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if fail.Load() {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		w.Write([]byte(unitPage))
	}))
	defer server.Close()

	s := newUnitStore(server.URL)
	require.NoError(t, s.Fetch(context.Background()))

	fail.Store(true)
	require.Error(t, s.Fetch(context.Background()))

	snap := s.Snapshot()
	assert.Len(t, snap.Data, 1, "a failed refresh must not blank the list")
	assert.NotEmpty(t, snap.Error)
	assert.False(t, snap.Loading)
}

func TestUnitMotorStaleResponseDiscarded(t *testing.T) {
	firstStarted := make(chan struct{})
	releaseFirst := make(chan struct{})

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("search") == "lambat" {
			close(firstStarted)
			<-releaseFirst
			w.Write([]byte(`{"data":[{"id":"old","platNomor":"OLD 1"}],"meta":{"totalItems":1,"totalPages":1,"currentPage":1,"itemsPerPage":10}}`))
			return
		}
		w.Write([]byte(`{"data":[{"id":"new","platNomor":"NEW 1"}],"meta":{"totalItems":1,"totalPages":1,"currentPage":1,"itemsPerPage":10}}`))
	}))
	defer server.Close()

	s := newUnitStore(server.URL)

	done := make(chan error, 1)
	go func() {
		done <- s.SubmitSearch(context.Background(), "lambat")
	}()
	<-firstStarted

	// A newer search completes while the first is still hanging.
	require.NoError(t, s.SubmitSearch(context.Background(), "cepat"))

	close(releaseFirst)
	require.NoError(t, <-done)

	snap := s.Snapshot()
	require.Len(t, snap.Data, 1)
	assert.Equal(t, "NEW 1", snap.Data[0].PlatNomor, "the slow early response must not overwrite the newer one")
}

func TestUnitMotorMetaAbsentKeepsCursor(t *testing.T) {
	var withMeta atomic.Bool
	withMeta.Store(true)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if withMeta.Load() {
			w.Write([]byte(`{"data":[{"id":"u1","platNomor":"AB 1234 CD"}],"meta":{"totalItems":14,"totalPages":2,"currentPage":2,"itemsPerPage":10}}`))
			return
		}
		w.Write([]byte(`{"data":[{"id":"u2","platNomor":"AB 5678 EF"}]}`))
	}))
	defer server.Close()

	s := newUnitStore(server.URL)
	require.NoError(t, s.SetPage(context.Background(), 2))
	require.Equal(t, 2, s.Snapshot().CurrentPage)

	// A successful response without meta replaces the data but must not
	// reset the cursor.
	withMeta.Store(false)
	require.NoError(t, s.Fetch(context.Background()))

	snap := s.Snapshot()
	require.Len(t, snap.Data, 1)
	assert.Equal(t, "AB 5678 EF", snap.Data[0].PlatNomor)
	assert.Equal(t, 2, snap.CurrentPage)
	assert.Equal(t, 2, snap.TotalPages)
	assert.Equal(t, 14, snap.TotalData)
	assert.Equal(t, 10, snap.Limit)
}

func TestUnitMotorDeleteFlow(t *testing.T) {
	var deletes, fetches atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodDelete {
			deletes.Add(1)
			w.Write([]byte(`{}`))
			return
		}
		fetches.Add(1)
		w.Write([]byte(unitPage))
	}))
	defer server.Close()

	s := newUnitStore(server.URL)

	s.ConfirmDelete("u1")
	snap := s.Snapshot()
	assert.True(t, snap.ShowDeleteDialog)
	assert.Equal(t, "u1", snap.DeleteTargetID)

	// Cancel must be a pure state change.
	s.CancelDelete()
	snap = s.Snapshot()
	assert.False(t, snap.ShowDeleteDialog)
	assert.Empty(t, snap.DeleteTargetID)
	assert.Zero(t, deletes.Load())
	assert.Zero(t, fetches.Load())

	// Confirmed delete hits the backend, re-fetches, and keeps the
	// success banner on top of the refreshed list.
	s.ConfirmDelete("u1")
	require.NoError(t, s.DeleteConfirmed(context.Background()))
	snap = s.Snapshot()
	assert.Equal(t, int32(1), deletes.Load())
	assert.Equal(t, int32(1), fetches.Load())
	assert.Equal(t, "unit motor berhasil dihapus", snap.Success)
	assert.False(t, snap.ShowDeleteDialog)
}

func TestUnitMotorDeleteFailureSkipsRefetch(t *testing.T) {
	var fetches atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodDelete {
			w.WriteHeader(http.StatusConflict)
			w.Write([]byte(`{"message":"unit sedang disewa"}`))
			return
		}
		fetches.Add(1)
		w.Write([]byte(unitPage))
	}))
	defer server.Close()

	s := newUnitStore(server.URL)
	s.ConfirmDelete("u1")
	require.Error(t, s.DeleteConfirmed(context.Background()))

	snap := s.Snapshot()
	assert.Equal(t, "unit sedang disewa", snap.Error)
	assert.False(t, snap.ShowDeleteDialog, "the dialog closes on failure too")
	assert.Zero(t, fetches.Load(), "a failed delete must not trigger a refresh")
}

func TestUnitMotorDeleteSuccessBannerNeedsCleanRefresh(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodDelete {
			w.Write([]byte(`{}`))
			return
		}
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	s := newUnitStore(server.URL)
	s.ConfirmDelete("u1")
	require.Error(t, s.DeleteConfirmed(context.Background()))

	// The delete went through but the refresh failed: error only, the
	// success banner must not show next to it.
	snap := s.Snapshot()
	assert.NotEmpty(t, snap.Error)
	assert.Empty(t, snap.Success)
}

func TestUnitMotorSubmitValidationNeverReachesNetwork(t *testing.T) {
	var requests atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests.Add(1)
		w.Write([]byte(`{}`))
	}))
	defer server.Close()

	s := newUnitStore(server.URL)

	tests := []struct {
		name    string
		form    UnitMotorForm
		wantMsg string
	}{
		{
			name:    "missing plat nomor",
			form:    UnitMotorForm{JenisID: "j1", TahunPembuatan: 2022, HargaSewa: 75000},
			wantMsg: "plat nomor wajib diisi",
		},
		{
			name:    "year too old",
			form:    UnitMotorForm{PlatNomor: "AB 1 CD", JenisID: "j1", TahunPembuatan: 1985, HargaSewa: 75000},
			wantMsg: "tahun pembuatan harus antara 1990 dan",
		},
		{
			name:    "non-positive price",
			form:    UnitMotorForm{PlatNomor: "AB 1 CD", JenisID: "j1", TahunPembuatan: 2022},
			wantMsg: "harga sewa harus lebih dari 0",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s.SetForm(tt.form)
			assert.False(t, s.SubmitCreate(context.Background()))
			assert.Contains(t, s.Snapshot().Error, tt.wantMsg)
			assert.Zero(t, requests.Load())
		})
	}

	// A valid draft does go out.
	s.SetForm(UnitMotorForm{PlatNomor: "AB 1 CD", JenisID: "j1", TahunPembuatan: 2022, HargaSewa: 75000})
	assert.True(t, s.SubmitCreate(context.Background()))
	assert.Equal(t, int32(1), requests.Load())
	assert.Equal(t, "unit motor berhasil ditambahkan", s.Snapshot().Success)
}
