package store

import (
	"context"
	"log"
	"sync"
	"time"

	"rental-dashboard-backend/internal/backend"
)

// Polling cadence after a mutating session action. The backend exposes
// no event stream, so the store re-checks on a fixed, bounded schedule.
const (
	DefaultPollInterval = 2 * time.Second
	DefaultPollAttempts = 5
)

// WhatsAppSnapshot is a copy of the store's state for rendering. QR and
// QRError are never both populated.
type WhatsAppSnapshot struct {
	Connected bool   `json:"connected"`
	State     string `json:"state"`
	Message   string `json:"message"`
	QR        string `json:"qrCode,omitempty"`
	QRError   string `json:"qrError,omitempty"`
	Loading   bool   `json:"loading"`
	Error     string `json:"error"`
}

// WhatsAppStore models the messaging session's connection state machine
// plus the ephemeral pairing QR code.
type WhatsAppStore struct {
	mu  sync.Mutex
	api *backend.WhatsAppAPI

	status  backend.WhatsAppStatus
	qr      string
	qrError string
	loading bool
	errMsg  string

	// qrInFlight guards FetchQR against overlapping invocation.
	qrInFlight bool

	pollInterval time.Duration
	pollAttempts int
}

// NewWhatsAppStore creates a whatsapp store with the given polling
// schedule; zero values fall back to the defaults.
func NewWhatsAppStore(api *backend.WhatsAppAPI, pollInterval time.Duration, pollAttempts int) *WhatsAppStore {
	if pollInterval <= 0 {
		pollInterval = DefaultPollInterval
	}
	if pollAttempts <= 0 {
		pollAttempts = DefaultPollAttempts
	}
	return &WhatsAppStore{
		api:          api,
		pollInterval: pollInterval,
		pollAttempts: pollAttempts,
	}
}

// FetchStatus retrieves the connection status. While disconnected it
// immediately chases the pairing QR code; once connected any cached QR
// is dropped.
func (s *WhatsAppStore) FetchStatus(ctx context.Context) error {
	s.mu.Lock()
	s.loading = true
	s.errMsg = ""
	s.mu.Unlock()

	status, err := s.api.Status(ctx)

	s.mu.Lock()
	s.loading = false
	if err != nil {
		s.errMsg = err.Error()
		s.mu.Unlock()
		log.Printf("whatsapp: status fetch failed: %v", err)
		return err
	}
	s.status = *status
	if status.Connected {
		s.qr = ""
		s.qrError = ""
		s.mu.Unlock()
		return nil
	}
	s.mu.Unlock()

	return s.FetchQR(ctx)
}

// FetchQR retrieves the pairing QR code. A second call while one is in
// flight is a no-op.
func (s *WhatsAppStore) FetchQR(ctx context.Context) error {
	s.mu.Lock()
	if s.qrInFlight {
		s.mu.Unlock()
		return nil
	}
	s.qrInFlight = true
	s.mu.Unlock()

	result, err := s.api.QRCode(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.qrInFlight = false
	if err != nil {
		s.qr = ""
		s.qrError = err.Error()
		log.Printf("whatsapp: qr fetch failed: %v", err)
		return err
	}
	if result.QR != "" {
		s.qr = result.QR
		s.qrError = ""
	} else {
		s.qr = ""
		s.qrError = result.Info
	}
	return nil
}

// Refresh restarts the session and polls until it settles or the
// attempt budget runs out.
func (s *WhatsAppStore) Refresh(ctx context.Context) error {
	if err := s.mutate(ctx, s.api.Reset); err != nil {
		return err
	}
	return s.poll(ctx)
}

// Logout terminates the session; the subsequent poll picks up the fresh
// pairing QR code.
func (s *WhatsAppStore) Logout(ctx context.Context) error {
	if err := s.mutate(ctx, s.api.Logout); err != nil {
		return err
	}
	s.mu.Lock()
	s.status = backend.WhatsAppStatus{}
	s.qr = ""
	s.qrError = ""
	s.mu.Unlock()
	return s.poll(ctx)
}

// StartAll boots every configured session and polls for the outcome.
func (s *WhatsAppStore) StartAll(ctx context.Context) error {
	if err := s.mutate(ctx, s.api.StartAll); err != nil {
		return err
	}
	return s.poll(ctx)
}

func (s *WhatsAppStore) mutate(ctx context.Context, call func(context.Context) error) error {
	s.mu.Lock()
	s.loading = true
	s.errMsg = ""
	s.mu.Unlock()

	err := call(ctx)

	s.mu.Lock()
	s.loading = false
	if err != nil {
		s.errMsg = err.Error()
	}
	s.mu.Unlock()
	if err != nil {
		log.Printf("whatsapp: session action failed: %v", err)
	}
	return err
}

// poll re-checks status and QR on a fixed cadence. It is bounded by the
// attempt budget, stops early once connected, and is cancelled with the
// caller's context so navigating away kills the timer.
func (s *WhatsAppStore) poll(ctx context.Context) error {
	ticker := time.NewTicker(s.pollInterval)
	defer ticker.Stop()

	for attempt := 1; attempt <= s.pollAttempts; attempt++ {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			if err := s.FetchStatus(ctx); err != nil {
				continue
			}
			if s.Connected() {
				return nil
			}
		}
	}
	return nil
}

// Connected reports the last observed connection state.
func (s *WhatsAppStore) Connected() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.status.Connected
}

// Snapshot returns a render-ready copy of the store state.
func (s *WhatsAppStore) Snapshot() WhatsAppSnapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return WhatsAppSnapshot{
		Connected: s.status.Connected,
		State:     s.status.State,
		Message:   s.status.Message,
		QR:        s.qr,
		QRError:   s.qrError,
		Loading:   s.loading,
		Error:     s.errMsg,
	}
}
