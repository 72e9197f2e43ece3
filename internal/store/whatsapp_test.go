package store

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rental-dashboard-backend/internal/backend"
)

func newWhatsAppStore(url string, interval time.Duration, attempts int) *WhatsAppStore {
	client := backend.NewClient(url, 5*time.Second, 1000, 1000, noTokens{})
	return NewWhatsAppStore(backend.NewWhatsAppAPI(client), interval, attempts)
}

func TestWhatsAppDisconnectedChasesQR(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/whatsapp/status":
			w.Write([]byte(`{"connected":false,"state":"DISCONNECTED"}`))
		case "/whatsapp/qr-code":
			w.Write([]byte(`{"qrCode":"data:image/png;base64,AAA"}`))
		}
	}))
	defer server.Close()

	s := newWhatsAppStore(server.URL, DefaultPollInterval, DefaultPollAttempts)
	require.NoError(t, s.FetchStatus(context.Background()))

	snap := s.Snapshot()
	assert.False(t, snap.Connected)
	assert.Equal(t, "data:image/png;base64,AAA", snap.QR)
	assert.Empty(t, snap.QRError)
}

func TestWhatsAppConnectedDropsQR(t *testing.T) {
	var connected atomic.Bool
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/whatsapp/status":
			if connected.Load() {
				w.Write([]byte(`{"connected":true,"state":"CONNECTED"}`))
			} else {
				w.Write([]byte(`{"connected":false,"state":"DISCONNECTED"}`))
			}
		case "/whatsapp/qr-code":
			w.Write([]byte(`{"qrCode":"data:image/png;base64,AAA"}`))
		}
	}))
	defer server.Close()

	s := newWhatsAppStore(server.URL, DefaultPollInterval, DefaultPollAttempts)
	require.NoError(t, s.FetchStatus(context.Background()))
	require.NotEmpty(t, s.Snapshot().QR)

	connected.Store(true)
	require.NoError(t, s.FetchStatus(context.Background()))

	snap := s.Snapshot()
	assert.True(t, snap.Connected)
	assert.Empty(t, snap.QR, "a stale QR must not survive reconnection")
	assert.Empty(t, snap.QRError)
}

func TestWhatsAppQRSingleFlight(t *testing.T) {
	var qrRequests atomic.Int32
	entered := make(chan struct{})
	release := make(chan struct{})

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		qrRequests.Add(1)
		close(entered)
		<-release
		w.Write([]byte(`{"qrCode":"data:image/png;base64,AAA"}`))
	}))
	defer server.Close()

	s := newWhatsAppStore(server.URL, DefaultPollInterval, DefaultPollAttempts)

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		s.FetchQR(context.Background())
	}()
	<-entered

	// The overlapping call returns immediately without a second request.
	require.NoError(t, s.FetchQR(context.Background()))
	assert.Equal(t, int32(1), qrRequests.Load())

	close(release)
	wg.Wait()
	assert.Equal(t, "data:image/png;base64,AAA", s.Snapshot().QR)
}

func TestWhatsAppPollIsBounded(t *testing.T) {
	var statusRequests atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/whatsapp/reset":
			w.Write([]byte(`{}`))
		case "/whatsapp/status":
			statusRequests.Add(1)
			w.Write([]byte(`{"connected":false,"state":"DISCONNECTED"}`))
		case "/whatsapp/qr-code":
			w.Write([]byte(`{"message":"sedang menghubungkan"}`))
		}
	}))
	defer server.Close()

	s := newWhatsAppStore(server.URL, 5*time.Millisecond, 3)
	require.NoError(t, s.Refresh(context.Background()))

	// One status check per attempt, never more.
	assert.Equal(t, int32(3), statusRequests.Load())
	assert.Equal(t, "sedang menghubungkan", s.Snapshot().QRError)
}

func TestWhatsAppPollStopsWhenConnected(t *testing.T) {
	var statusRequests atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/whatsapp/reset":
			w.Write([]byte(`{}`))
		case "/whatsapp/status":
			statusRequests.Add(1)
			w.Write([]byte(`{"connected":true,"state":"CONNECTED"}`))
		}
	}))
	defer server.Close()

	s := newWhatsAppStore(server.URL, 5*time.Millisecond, 5)
	require.NoError(t, s.Refresh(context.Background()))

	assert.Equal(t, int32(1), statusRequests.Load(), "polling ends on the first connected answer")
	assert.True(t, s.Connected())
}

func TestWhatsAppPollCancellation(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/whatsapp/reset":
			w.Write([]byte(`{}`))
		case "/whatsapp/status":
			w.Write([]byte(`{"connected":false,"state":"DISCONNECTED"}`))
		case "/whatsapp/qr-code":
			w.Write([]byte(`{"message":"sedang menghubungkan"}`))
		}
	}))
	defer server.Close()

	s := newWhatsAppStore(server.URL, time.Hour, 5)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- s.Refresh(ctx)
	}()

	cancel()
	select {
	case err := <-done:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(2 * time.Second):
		t.Fatal("poll did not stop after context cancellation")
	}
}
