package web

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"rental-dashboard-backend/internal/store"
)

// ListJenisMotor loads the vehicle-type list, applies the in-memory
// search, and returns the filtered snapshot.
func (h *Handler) ListJenisMotor(c *gin.Context) {
	h.jenis.SetSearch(c.Query("search"))
	h.jenis.Fetch(c.Request.Context())
	c.JSON(http.StatusOK, h.jenis.Snapshot())
}

// JenisMotorDetail loads one vehicle type by id.
func (h *Handler) JenisMotorDetail(c *gin.Context) {
	h.jenis.FetchDetail(c.Request.Context(), c.Param("id"))
	c.JSON(http.StatusOK, h.jenis.Snapshot())
}

// JenisMotorDetailBySlug loads one vehicle type by slug.
func (h *Handler) JenisMotorDetailBySlug(c *gin.Context) {
	h.jenis.FetchDetailBySlug(c.Request.Context(), c.Param("slug"))
	c.JSON(http.StatusOK, h.jenis.Snapshot())
}

// CreateJenisMotor creates a vehicle type. Requests with an image arrive
// as multipart, plain edits as JSON.
func (h *Handler) CreateJenisMotor(c *gin.Context) {
	form, ok := h.bindJenisForm(c)
	if !ok {
		return
	}
	h.jenis.SetForm(form)
	if !h.jenis.SubmitCreate(c.Request.Context()) {
		c.JSON(http.StatusUnprocessableEntity, h.jenis.Snapshot())
		return
	}
	c.JSON(http.StatusCreated, h.jenis.Snapshot())
}

// UpdateJenisMotor updates a vehicle type.
func (h *Handler) UpdateJenisMotor(c *gin.Context) {
	form, ok := h.bindJenisForm(c)
	if !ok {
		return
	}
	h.jenis.SetForm(form)
	if !h.jenis.SubmitUpdate(c.Request.Context(), c.Param("id")) {
		c.JSON(http.StatusUnprocessableEntity, h.jenis.Snapshot())
		return
	}
	c.JSON(http.StatusOK, h.jenis.Snapshot())
}

// DeleteJenisMotor removes a vehicle type after the confirm step.
func (h *Handler) DeleteJenisMotor(c *gin.Context) {
	h.jenis.ConfirmDelete(c.Param("id"))
	h.jenis.DeleteConfirmed(c.Request.Context())
	c.JSON(http.StatusOK, h.jenis.Snapshot())
}

func (h *Handler) bindJenisForm(c *gin.Context) (store.JenisMotorForm, bool) {
	var form store.JenisMotorForm
	if isMultipart(c) {
		cc, _ := strconv.Atoi(c.PostForm("cc"))
		form.Merk = c.PostForm("merk")
		form.Model = c.PostForm("model")
		form.CC = cc

		upload, err := formUpload(c, "gambar")
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "gambar tidak dapat dibaca"})
			return form, false
		}
		form.Gambar = upload
		return form, true
	}

	if err := c.ShouldBindJSON(&form); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "body tidak valid"})
		return form, false
	}
	return form, true
}
