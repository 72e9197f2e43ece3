package web

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// WhatsAppStatus checks the session state. While disconnected the store
// chases the pairing QR code on its own, so the snapshot carries
// whichever of QR or QRError applies.
func (h *Handler) WhatsAppStatus(c *gin.Context) {
	h.whatsapp.FetchStatus(c.Request.Context())
	c.JSON(http.StatusOK, h.whatsapp.Snapshot())
}

// WhatsAppQR retrieves the pairing QR code.
func (h *Handler) WhatsAppQR(c *gin.Context) {
	h.whatsapp.FetchQR(c.Request.Context())
	c.JSON(http.StatusOK, h.whatsapp.Snapshot())
}

// WhatsAppRefresh restarts the session. The handler blocks through the
// bounded settle poll, so the response reflects the post-restart state.
func (h *Handler) WhatsAppRefresh(c *gin.Context) {
	h.whatsapp.Refresh(c.Request.Context())
	c.JSON(http.StatusOK, h.whatsapp.Snapshot())
}

// WhatsAppLogout terminates the session and polls for the fresh QR.
func (h *Handler) WhatsAppLogout(c *gin.Context) {
	h.whatsapp.Logout(c.Request.Context())
	c.JSON(http.StatusOK, h.whatsapp.Snapshot())
}

// WhatsAppStartAll boots every configured session.
func (h *Handler) WhatsAppStartAll(c *gin.Context) {
	h.whatsapp.StartAll(c.Request.Context())
	c.JSON(http.StatusOK, h.whatsapp.Snapshot())
}

// WhatsAppSessionStatus reads the session-level status without touching
// the store's state machine.
func (h *Handler) WhatsAppSessionStatus(c *gin.Context) {
	status, err := h.waAPI.SessionStatus(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, status)
}

// WhatsAppSessions lists every session the backend tracks.
func (h *Handler) WhatsAppSessions(c *gin.Context) {
	sessions, err := h.waAPI.AllSessions(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": sessions})
}

// WhatsAppChats lists recent conversations.
func (h *Handler) WhatsAppChats(c *gin.Context) {
	chats, err := h.waAPI.Chats(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": chats})
}

// WhatsAppMessages lists the messages exchanged with a phone number.
func (h *Handler) WhatsAppMessages(c *gin.Context) {
	messages, err := h.waAPI.Messages(c.Request.Context(), c.Param("phone"))
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": messages})
}

// WhatsAppContact retrieves the contact card for a phone number.
func (h *Handler) WhatsAppContact(c *gin.Context) {
	contact, err := h.waAPI.Contact(c.Request.Context(), c.Param("phone"))
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": contact})
}

type sendMessageRequest struct {
	Phone   string `json:"phone"`
	Message string `json:"message" binding:"required"`
}

// WhatsAppSend sends a message to a phone number.
func (h *Handler) WhatsAppSend(c *gin.Context) {
	var req sendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Phone == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "phone dan message wajib diisi"})
		return
	}
	if err := h.waAPI.Send(c.Request.Context(), req.Phone, req.Message); err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "pesan terkirim"})
}

// WhatsAppSendAdmin sends a message to the configured admin number.
func (h *Handler) WhatsAppSendAdmin(c *gin.Context) {
	var req sendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "message wajib diisi"})
		return
	}
	if err := h.waAPI.SendAdmin(c.Request.Context(), req.Message); err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "pesan terkirim"})
}
