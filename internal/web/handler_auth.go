package web

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type loginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// Login exchanges credentials for a backend token and persists the
// session.
func (h *Handler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "username dan password wajib diisi"})
		return
	}

	resp, err := h.auth.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		return
	}
	if err := h.sessions.SetSession(resp.AccessToken, &resp.Admin); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "gagal menyimpan sesi"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"admin": resp.Admin})
}

// Logout clears the persisted session.
func (h *Handler) Logout(c *gin.Context) {
	if err := h.sessions.Clear(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "gagal menghapus sesi"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "berhasil logout"})
}

// Me returns the profile of the currently persisted session.
func (h *Handler) Me(c *gin.Context) {
	admin, ok := h.sessions.AdminProfile()
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{
			"error":    "sesi tidak ditemukan, silakan login",
			"redirect": "/login",
		})
		return
	}
	c.JSON(http.StatusOK, gin.H{"admin": admin})
}
