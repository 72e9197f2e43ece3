package notify

import (
	"context"
	"fmt"
	"log"
	"time"

	"rental-dashboard-backend/internal/backend"
	"rental-dashboard-backend/internal/format"
)

// Watcher periodically checks the backend for overdue rentals and a
// dropped messaging session, and dispatches an alert on each transition
// it observes. The backend pushes nothing, so polling is the only
// option here.
type Watcher struct {
	transaksi *backend.TransaksiAPI
	whatsapp  *backend.WhatsAppAPI
	pool      *WorkerPool
	interval  time.Duration

	seenOverdue  map[string]bool
	wasConnected bool
	statusKnown  bool
}

// NewWatcher creates a watcher over the given APIs.
func NewWatcher(transaksi *backend.TransaksiAPI, whatsapp *backend.WhatsAppAPI, pool *WorkerPool, interval time.Duration) *Watcher {
	return &Watcher{
		transaksi:   transaksi,
		whatsapp:    whatsapp,
		pool:        pool,
		interval:    interval,
		seenOverdue: make(map[string]bool),
	}
}

// Run starts the watch loop. It checks once immediately, then on every
// tick until the context is cancelled.
func (w *Watcher) Run(ctx context.Context) {
	log.Println("Starting notification watcher...")
	w.checkOnce(ctx)

	timer := time.NewTimer(w.interval)
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Println("Notification watcher shutting down.")
			return
		case <-timer.C:
			w.checkOnce(ctx)
			timer.Reset(w.interval)
		}
	}
}

func (w *Watcher) checkOnce(ctx context.Context) {
	w.checkOverdue(ctx)
	w.checkSession(ctx)
}

// checkOverdue alerts once per transaction that newly shows up overdue.
func (w *Watcher) checkOverdue(ctx context.Context) {
	list, err := w.transaksi.List(ctx, backend.TransaksiFilter{Status: backend.TransaksiOverdue})
	if err != nil {
		log.Printf("Watcher: overdue check failed: %v", err)
		return
	}

	current := make(map[string]bool, len(list.Data))
	for _, trx := range list.Data {
		current[trx.ID] = true
		if w.seenOverdue[trx.ID] {
			continue
		}
		plat := "?"
		if trx.UnitMotor != nil {
			plat = trx.UnitMotor.PlatNomor
		}
		w.pool.Dispatch(Alert{
			Title: "Transaksi terlambat",
			Body: fmt.Sprintf("Sewa %s oleh %s (%s) melewati batas waktu.",
				plat, trx.NamaPenyewa, format.Rupiah(trx.TotalBiaya)),
		})
	}
	w.seenOverdue = current
}

// checkSession alerts on the connected -> disconnected edge only.
func (w *Watcher) checkSession(ctx context.Context) {
	status, err := w.whatsapp.Status(ctx)
	if err != nil {
		log.Printf("Watcher: session check failed: %v", err)
		return
	}

	if w.statusKnown && w.wasConnected && !status.Connected {
		w.pool.Dispatch(Alert{
			Title: "WhatsApp terputus",
			Body:  "Sesi WhatsApp terputus, buka panel untuk memindai ulang QR.",
		})
	}
	w.wasConnected = status.Connected
	w.statusKnown = true
}
