// Package web is the HTTP facade the dashboard UI talks to. Handlers
// translate requests into store actions and reply with store snapshots;
// they carry no business logic of their own.
package web

import (
	"fmt"
	"io"
	"net/http"

	"github.com/SherClockHolmes/webpush-go"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"rental-dashboard-backend/internal/backend"
	"rental-dashboard-backend/internal/session"
	"rental-dashboard-backend/internal/store"
)

// Handler holds shared dependencies for API handlers.
type Handler struct {
	sessions *session.Store
	auth     *backend.AuthAPI
	waAPI    *backend.WhatsAppAPI

	admins    *store.AdminStore
	jenis     *store.JenisMotorStore
	units     *store.UnitMotorStore
	transaksi *store.TransaksiStore
	blog      *store.BlogStore
	whatsapp  *store.WhatsAppStore

	db      *gorm.DB // nil when push notifications are disabled
	webpush *webpush.Options
}

// NewHandler creates a new API handler.
func NewHandler(
	sessions *session.Store,
	auth *backend.AuthAPI,
	waAPI *backend.WhatsAppAPI,
	admins *store.AdminStore,
	jenis *store.JenisMotorStore,
	units *store.UnitMotorStore,
	transaksi *store.TransaksiStore,
	blog *store.BlogStore,
	whatsapp *store.WhatsAppStore,
	db *gorm.DB,
	webpushOptions *webpush.Options,
) *Handler {
	return &Handler{
		sessions:  sessions,
		auth:      auth,
		waAPI:     waAPI,
		admins:    admins,
		jenis:     jenis,
		units:     units,
		transaksi: transaksi,
		blog:      blog,
		whatsapp:  whatsapp,
		db:        db,
		webpush:   webpushOptions,
	}
}

// RequireAuth is the route guard: unauthenticated visitors get a 401
// with a login redirect hint instead of the requested state.
func (h *Handler) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !h.sessions.IsAuthenticated() {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error":    "sesi tidak ditemukan, silakan login",
				"redirect": "/login",
			})
			return
		}
		c.Next()
	}
}

// formUpload pulls an optional uploaded file out of a multipart request.
// A missing field is not an error.
func formUpload(c *gin.Context, field string) (*backend.FileUpload, error) {
	fh, err := c.FormFile(field)
	if err == http.ErrMissingFile {
		return nil, nil
	}
	if err != nil {
		// No multipart body at all means no upload either.
		return nil, nil
	}

	f, err := fh.Open()
	if err != nil {
		return nil, fmt.Errorf("failed to open upload %q: %w", field, err)
	}
	defer f.Close()

	content, err := io.ReadAll(f)
	if err != nil {
		return nil, fmt.Errorf("failed to read upload %q: %w", field, err)
	}
	return &backend.FileUpload{Name: fh.Filename, Content: content}, nil
}

func isMultipart(c *gin.Context) bool {
	return c.ContentType() == "multipart/form-data"
}
