package web

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"rental-dashboard-backend/internal/store"
)

// ListAdmin loads the admin list and returns the store snapshot.
func (h *Handler) ListAdmin(c *gin.Context) {
	h.admins.Fetch(c.Request.Context())
	c.JSON(http.StatusOK, h.admins.Snapshot())
}

// CreateAdmin registers a new admin account.
func (h *Handler) CreateAdmin(c *gin.Context) {
	var form store.AdminForm
	if err := c.ShouldBindJSON(&form); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "body tidak valid"})
		return
	}
	h.admins.SetForm(form)
	if !h.admins.SubmitCreate(c.Request.Context()) {
		c.JSON(http.StatusUnprocessableEntity, h.admins.Snapshot())
		return
	}
	c.JSON(http.StatusCreated, h.admins.Snapshot())
}

// UpdateAdmin updates an existing admin account.
func (h *Handler) UpdateAdmin(c *gin.Context) {
	var form store.AdminForm
	if err := c.ShouldBindJSON(&form); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "body tidak valid"})
		return
	}
	h.admins.SetForm(form)
	if !h.admins.SubmitUpdate(c.Request.Context(), c.Param("id")) {
		c.JSON(http.StatusUnprocessableEntity, h.admins.Snapshot())
		return
	}
	c.JSON(http.StatusOK, h.admins.Snapshot())
}

// DeleteAdmin removes an admin account after the confirm step.
func (h *Handler) DeleteAdmin(c *gin.Context) {
	h.admins.ConfirmDelete(c.Param("id"))
	h.admins.DeleteConfirmed(c.Request.Context())
	c.JSON(http.StatusOK, h.admins.Snapshot())
}
