package web

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"rental-dashboard-backend/internal/store"
)

// ListUnitMotor applies the incoming view parameters, loads the page,
// and returns the store snapshot. Fetch failures still produce a
// snapshot; the error rides inside it.
func (h *Handler) ListUnitMotor(c *gin.Context) {
	page, _ := strconv.Atoi(c.Query("page"))
	h.units.SetView(c.Query("status"), c.Query("search"), page)
	h.units.Fetch(c.Request.Context())
	c.JSON(http.StatusOK, h.units.Snapshot())
}

// UnitMotorDetail loads one unit into the detail slot.
func (h *Handler) UnitMotorDetail(c *gin.Context) {
	h.units.FetchDetail(c.Request.Context(), c.Param("id"))
	c.JSON(http.StatusOK, h.units.Snapshot())
}

// CreateUnitMotor creates a vehicle unit.
func (h *Handler) CreateUnitMotor(c *gin.Context) {
	var form store.UnitMotorForm
	if err := c.ShouldBindJSON(&form); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "body tidak valid"})
		return
	}
	h.units.SetForm(form)
	if !h.units.SubmitCreate(c.Request.Context()) {
		c.JSON(http.StatusUnprocessableEntity, h.units.Snapshot())
		return
	}
	c.JSON(http.StatusCreated, h.units.Snapshot())
}

// UpdateUnitMotor updates a vehicle unit.
func (h *Handler) UpdateUnitMotor(c *gin.Context) {
	var form store.UnitMotorForm
	if err := c.ShouldBindJSON(&form); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "body tidak valid"})
		return
	}
	h.units.SetForm(form)
	if !h.units.SubmitUpdate(c.Request.Context(), c.Param("id")) {
		c.JSON(http.StatusUnprocessableEntity, h.units.Snapshot())
		return
	}
	c.JSON(http.StatusOK, h.units.Snapshot())
}

// DeleteUnitMotor removes a vehicle unit after the confirm step.
func (h *Handler) DeleteUnitMotor(c *gin.Context) {
	h.units.ConfirmDelete(c.Param("id"))
	h.units.DeleteConfirmed(c.Request.Context())
	c.JSON(http.StatusOK, h.units.Snapshot())
}
