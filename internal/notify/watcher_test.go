package notify

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/SherClockHolmes/webpush-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rental-dashboard-backend/internal/backend"
	"rental-dashboard-backend/internal/model"
)

// capturingPool wires a real pool to a sender that records every alert.
func capturingPool(t *testing.T) (*WorkerPool, func() []string) {
	db := newTestDB(t)
	require.NoError(t, db.Create(&model.PushSubscription{
		Endpoint: "https://example.com/push", P256DH: "k", Auth: "a",
	}).Error)

	wp := NewWorkerPool(1, db, &webpush.Options{})

	var mu sync.Mutex
	var sent []string
	wp.sender = &mockSender{
		SendFunc: func(payload []byte, sub *webpush.Subscription, options *webpush.Options) (*http.Response, error) {
			mu.Lock()
			sent = append(sent, string(payload))
			mu.Unlock()
			return pushResponse(http.StatusCreated), nil
		},
	}

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	wp.Start(ctx)

	return wp, func() []string {
		mu.Lock()
		defer mu.Unlock()
		out := make([]string, len(sent))
		copy(out, sent)
		return out
	}
}

type fakeBackend struct {
	mu        sync.Mutex
	overdue   string
	connected bool
}

func (f *fakeBackend) handler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		defer f.mu.Unlock()
		switch r.URL.Path {
		case "/transaksi":
			w.Write([]byte(f.overdue))
		case "/whatsapp/status":
			if f.connected {
				w.Write([]byte(`{"connected":true,"state":"CONNECTED"}`))
			} else {
				w.Write([]byte(`{"connected":false,"state":"DISCONNECTED"}`))
			}
		}
	})
}

func (f *fakeBackend) set(overdue string, connected bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.overdue = overdue
	f.connected = connected
}

const emptyList = `{"data":[],"meta":{"totalItems":0,"totalPages":0,"currentPage":1,"itemsPerPage":10}}`

const oneOverdue = `{"data":[{
	"id":"t1","namaPenyewa":"Budi","totalBiaya":150000,"status":"OVERDUE",
	"unitMotor":{"id":"u1","platNomor":"AB 1234 CD"}
}],"meta":{"totalItems":1,"totalPages":1,"currentPage":1,"itemsPerPage":10}}`

func newTestWatcher(t *testing.T, fb *fakeBackend) (*Watcher, func() []string) {
	server := httptest.NewServer(fb.handler())
	t.Cleanup(server.Close)

	client := backend.NewClient(server.URL, 5*time.Second, 1000, 1000, noTokens{})
	pool, sent := capturingPool(t)
	w := NewWatcher(backend.NewTransaksiAPI(client), backend.NewWhatsAppAPI(client), pool, time.Minute)
	return w, sent
}

// noTokens is a TokenSource for unauthenticated test traffic.
type noTokens struct{}

func (noTokens) Token() (string, bool) { return "", false }

// waitForAlerts blocks until the pool has delivered n alerts, then gives
// the worker a beat to prove no extra ones follow.
func waitForAlerts(t *testing.T, sent func() []string, n int) []string {
	t.Helper()
	require.Eventually(t, func() bool {
		return len(sent()) >= n
	}, 2*time.Second, 10*time.Millisecond)
	time.Sleep(100 * time.Millisecond)
	got := sent()
	require.Len(t, got, n)
	return got
}

func TestWatcherAlertsOncePerOverdueTransaction(t *testing.T) {
	fb := &fakeBackend{overdue: oneOverdue, connected: true}
	w, sent := newTestWatcher(t, fb)

	ctx := context.Background()
	w.checkOverdue(ctx)
	w.checkOverdue(ctx)

	got := waitForAlerts(t, sent, 1)
	assert.Contains(t, got[0], "Transaksi terlambat")
	assert.Contains(t, got[0], "AB 1234 CD")
	assert.Contains(t, got[0], "Budi")
}

func TestWatcherReAlertsAfterListClears(t *testing.T) {
	fb := &fakeBackend{overdue: oneOverdue, connected: true}
	w, sent := newTestWatcher(t, fb)

	ctx := context.Background()
	w.checkOverdue(ctx)

	// The rental gets resolved, then slips overdue again later.
	fb.set(emptyList, true)
	w.checkOverdue(ctx)
	fb.set(oneOverdue, true)
	w.checkOverdue(ctx)

	waitForAlerts(t, sent, 2)
}

func TestWatcherAlertsOnDisconnectEdgeOnly(t *testing.T) {
	fb := &fakeBackend{overdue: emptyList, connected: true}
	w, sent := newTestWatcher(t, fb)

	ctx := context.Background()

	// First observation is just a baseline.
	w.checkSession(ctx)

	// Connected -> disconnected fires exactly once; staying down is
	// silent.
	fb.set(emptyList, false)
	w.checkSession(ctx)
	w.checkSession(ctx)
	got := waitForAlerts(t, sent, 1)
	assert.Contains(t, got[0], "WhatsApp terputus")

	// Reconnect and drop again fires again.
	fb.set(emptyList, true)
	w.checkSession(ctx)
	fb.set(emptyList, false)
	w.checkSession(ctx)
	waitForAlerts(t, sent, 2)
}
