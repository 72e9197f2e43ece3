package backend

import (
	"context"
	"encoding/json"
	"strings"
)

// WhatsAppStatus is the connection state of the messaging session.
type WhatsAppStatus struct {
	Connected bool   `json:"connected"`
	State     string `json:"state"`
	Message   string `json:"message"`
}

// WhatsAppSession is one entry of the all-sessions listing.
type WhatsAppSession struct {
	ID    string `json:"id"`
	State string `json:"state"`
}

// WhatsAppChat is one conversation in the chat listing.
type WhatsAppChat struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	LastMessage string `json:"lastMessage"`
}

// WhatsAppMessage is one message of a conversation.
type WhatsAppMessage struct {
	ID        string `json:"id"`
	FromMe    bool   `json:"fromMe"`
	Body      string `json:"body"`
	Timestamp int64  `json:"timestamp"`
}

// WhatsAppContact is the contact card for a phone number.
type WhatsAppContact struct {
	Phone    string `json:"phone"`
	Name     string `json:"name"`
	PushName string `json:"pushName"`
}

// QRResult is the normalized outcome of a QR code request. Exactly one of
// QR and Info is meaningful: QR carries a data-URL image when pairing is
// possible, Info carries the backend's explanation when it is not.
type QRResult struct {
	QR   string
	Info string
}

// WhatsAppAPI maps to the backend's whatsapp endpoints.
type WhatsAppAPI struct {
	c *Client
}

// NewWhatsAppAPI creates the whatsapp endpoint mapping.
func NewWhatsAppAPI(c *Client) *WhatsAppAPI {
	return &WhatsAppAPI{c: c}
}

// Status retrieves the connection status.
func (a *WhatsAppAPI) Status(ctx context.Context) (*WhatsAppStatus, error) {
	raw := json.RawMessage{}
	if err := a.c.Get(ctx, "/whatsapp/status", nil, &raw); err != nil {
		return nil, fallback(err, "gagal mengambil status whatsapp")
	}
	return parseStatusResponse(raw), nil
}

// SessionStatus retrieves the session-level status, which shares the
// status envelope quirks.
func (a *WhatsAppAPI) SessionStatus(ctx context.Context) (*WhatsAppStatus, error) {
	raw := json.RawMessage{}
	if err := a.c.Get(ctx, "/whatsapp/session-status", nil, &raw); err != nil {
		return nil, fallback(err, "gagal mengambil status sesi whatsapp")
	}
	return parseStatusResponse(raw), nil
}

// QRCode retrieves the pairing QR code, normalized through
// parseQRResponse.
func (a *WhatsAppAPI) QRCode(ctx context.Context) (*QRResult, error) {
	raw := json.RawMessage{}
	if err := a.c.Get(ctx, "/whatsapp/qr-code", nil, &raw); err != nil {
		return nil, fallback(err, "gagal mengambil kode QR")
	}
	return parseQRResponse(raw), nil
}

// AllSessions lists every session the backend tracks.
func (a *WhatsAppAPI) AllSessions(ctx context.Context) ([]WhatsAppSession, error) {
	var resp struct {
		Data []WhatsAppSession `json:"data"`
	}
	if err := a.c.Get(ctx, "/whatsapp/all-sessions", nil, &resp); err != nil {
		return nil, fallback(err, "gagal mengambil daftar sesi whatsapp")
	}
	return resp.Data, nil
}

// Chats lists recent conversations.
func (a *WhatsAppAPI) Chats(ctx context.Context) ([]WhatsAppChat, error) {
	var resp struct {
		Data []WhatsAppChat `json:"data"`
	}
	if err := a.c.Get(ctx, "/whatsapp/chats", nil, &resp); err != nil {
		return nil, fallback(err, "gagal mengambil daftar percakapan")
	}
	return resp.Data, nil
}

// Messages lists the messages exchanged with a phone number.
func (a *WhatsAppAPI) Messages(ctx context.Context, phone string) ([]WhatsAppMessage, error) {
	var resp struct {
		Data []WhatsAppMessage `json:"data"`
	}
	if err := a.c.Get(ctx, "/whatsapp/messages/"+phone, nil, &resp); err != nil {
		return nil, fallback(err, "gagal mengambil pesan")
	}
	return resp.Data, nil
}

// Contact retrieves the contact card for a phone number.
func (a *WhatsAppAPI) Contact(ctx context.Context, phone string) (*WhatsAppContact, error) {
	var resp struct {
		Data WhatsAppContact `json:"data"`
	}
	if err := a.c.Get(ctx, "/whatsapp/contact/"+phone, nil, &resp); err != nil {
		return nil, fallback(err, "gagal mengambil kontak")
	}
	return &resp.Data, nil
}

// Reset restarts the messaging session.
func (a *WhatsAppAPI) Reset(ctx context.Context) error {
	if err := a.c.Post(ctx, "/whatsapp/reset", nil, nil); err != nil {
		return fallback(err, "gagal mereset sesi whatsapp")
	}
	return nil
}

// Logout terminates the messaging session.
func (a *WhatsAppAPI) Logout(ctx context.Context) error {
	if err := a.c.Post(ctx, "/whatsapp/logout", nil, nil); err != nil {
		return fallback(err, "gagal logout dari whatsapp")
	}
	return nil
}

// StartAll boots every configured session.
func (a *WhatsAppAPI) StartAll(ctx context.Context) error {
	if err := a.c.Post(ctx, "/whatsapp/start-all", nil, nil); err != nil {
		return fallback(err, "gagal memulai sesi whatsapp")
	}
	return nil
}

// Send sends a message to a phone number.
func (a *WhatsAppAPI) Send(ctx context.Context, phone, message string) error {
	body := map[string]string{"phone": phone, "message": message}
	if err := a.c.Post(ctx, "/whatsapp/send", body, nil); err != nil {
		return fallback(err, "gagal mengirim pesan")
	}
	return nil
}

// SendAdmin sends a message to the configured admin number.
func (a *WhatsAppAPI) SendAdmin(ctx context.Context, message string) error {
	body := map[string]string{"message": message}
	if err := a.c.Post(ctx, "/whatsapp/send-admin", body, nil); err != nil {
		return fallback(err, "gagal mengirim pesan ke admin")
	}
	return nil
}

// qrEnvelope covers every response shape the qr-code endpoint has been
// observed to produce.
type qrEnvelope struct {
	Status  string          `json:"status"`
	Message string          `json:"message"`
	QRCode  string          `json:"qrCode"`
	Data    json.RawMessage `json:"data"`
}

// parseQRResponse normalizes the qr-code endpoint's inconsistent envelope.
// The known shapes, in probing order:
//
//  1. {"qrCode": "<data-url>"}: dedicated field.
//  2. {"status": "success", "data": "<base64 or data-url>"}: image inside
//     the generic data field. A success payload with an image wins even if
//     a contradictory message claims unavailability.
//  3. {"data": {"qrCode": "<data-url>"}}: nested under data.
//  4. {"message": "..."} with no image: informational, meaning already
//     connected, still connecting, or genuinely unavailable.
//
// The probing order means QR and Info are never both set.
func parseQRResponse(raw json.RawMessage) *QRResult {
	var env qrEnvelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return &QRResult{Info: "kode QR tidak tersedia, coba lagi"}
	}

	if env.QRCode != "" {
		return &QRResult{QR: toDataURL(env.QRCode)}
	}

	if len(env.Data) > 0 {
		var asString string
		if err := json.Unmarshal(env.Data, &asString); err == nil && asString != "" {
			return &QRResult{QR: toDataURL(asString)}
		}

		var nested struct {
			QRCode string `json:"qrCode"`
		}
		if err := json.Unmarshal(env.Data, &nested); err == nil && nested.QRCode != "" {
			return &QRResult{QR: toDataURL(nested.QRCode)}
		}
	}

	if env.Message != "" {
		return &QRResult{Info: env.Message}
	}
	return &QRResult{Info: "kode QR tidak tersedia, coba lagi"}
}

// parseStatusResponse tolerates both the flat status shape and the same
// payload nested under data.
func parseStatusResponse(raw json.RawMessage) *WhatsAppStatus {
	var flat WhatsAppStatus
	if err := json.Unmarshal(raw, &flat); err == nil && (flat.State != "" || flat.Message != "" || flat.Connected) {
		return &flat
	}

	var wrapped struct {
		Data WhatsAppStatus `json:"data"`
	}
	if err := json.Unmarshal(raw, &wrapped); err == nil {
		return &wrapped.Data
	}
	return &WhatsAppStatus{}
}

func toDataURL(s string) string {
	if strings.HasPrefix(s, "data:") {
		return s
	}
	return "data:image/png;base64," + s
}
