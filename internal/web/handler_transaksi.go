package web

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"rental-dashboard-backend/internal/store"
)

// ListTransaksi applies the incoming view parameters, loads the page,
// and returns the store snapshot.
func (h *Handler) ListTransaksi(c *gin.Context) {
	page, _ := strconv.Atoi(c.Query("page"))
	h.transaksi.SetView(
		c.Query("status"),
		c.Query("search"),
		c.Query("startDate"),
		c.Query("endDate"),
		page,
	)
	h.transaksi.Fetch(c.Request.Context())
	c.JSON(http.StatusOK, h.transaksi.Snapshot())
}

// TransaksiDetail loads one transaction into the detail slot.
func (h *Handler) TransaksiDetail(c *gin.Context) {
	h.transaksi.FetchDetail(c.Request.Context(), c.Param("id"))
	c.JSON(http.StatusOK, h.transaksi.Snapshot())
}

// CreateTransaksi books a new rental.
func (h *Handler) CreateTransaksi(c *gin.Context) {
	var form store.TransaksiForm
	if err := c.ShouldBindJSON(&form); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "body tidak valid"})
		return
	}
	h.transaksi.SetForm(form)
	if !h.transaksi.SubmitCreate(c.Request.Context()) {
		c.JSON(http.StatusUnprocessableEntity, h.transaksi.Snapshot())
		return
	}
	c.JSON(http.StatusCreated, h.transaksi.Snapshot())
}

// SelesaikanTransaksi asks the backend to complete a rental and returns
// the re-fetched list.
func (h *Handler) SelesaikanTransaksi(c *gin.Context) {
	h.transaksi.Selesaikan(c.Request.Context(), c.Param("id"))
	c.JSON(http.StatusOK, h.transaksi.Snapshot())
}

// LaporanDenda loads the late-fee report for the requested range.
func (h *Handler) LaporanDenda(c *gin.Context) {
	h.transaksi.SetView("", "", c.Query("startDate"), c.Query("endDate"), 0)
	h.transaksi.FetchLaporanDenda(c.Request.Context())
	c.JSON(http.StatusOK, h.transaksi.Snapshot())
}

// LaporanFasilitas loads the facility-usage report for the requested
// range.
func (h *Handler) LaporanFasilitas(c *gin.Context) {
	h.transaksi.SetView("", "", c.Query("startDate"), c.Query("endDate"), 0)
	h.transaksi.FetchLaporanFasilitas(c.Request.Context())
	c.JSON(http.StatusOK, h.transaksi.Snapshot())
}
