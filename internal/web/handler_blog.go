package web

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"rental-dashboard-backend/internal/store"
)

// ListBlog applies the incoming view parameters, loads the page, and
// returns the store snapshot.
func (h *Handler) ListBlog(c *gin.Context) {
	page, _ := strconv.Atoi(c.Query("page"))
	h.blog.SetView(c.Query("search"), c.Query("status"), c.Query("kategori"), page)
	h.blog.Fetch(c.Request.Context())
	c.JSON(http.StatusOK, h.blog.Snapshot())
}

// BlogDetail loads one post by id.
func (h *Handler) BlogDetail(c *gin.Context) {
	h.blog.FetchDetail(c.Request.Context(), c.Param("id"))
	c.JSON(http.StatusOK, h.blog.Snapshot())
}

// BlogDetailBySlug loads one post by slug.
func (h *Handler) BlogDetailBySlug(c *gin.Context) {
	h.blog.FetchDetailBySlug(c.Request.Context(), c.Param("slug"))
	c.JSON(http.StatusOK, h.blog.Snapshot())
}

// CreateBlog creates a post. Requests carrying a thumbnail arrive as
// multipart, plain edits as JSON.
func (h *Handler) CreateBlog(c *gin.Context) {
	form, ok := h.bindBlogForm(c)
	if !ok {
		return
	}
	h.blog.SetForm(form)
	if !h.blog.SubmitCreate(c.Request.Context()) {
		c.JSON(http.StatusUnprocessableEntity, h.blog.Snapshot())
		return
	}
	c.JSON(http.StatusCreated, h.blog.Snapshot())
}

// UpdateBlog updates a post.
func (h *Handler) UpdateBlog(c *gin.Context) {
	form, ok := h.bindBlogForm(c)
	if !ok {
		return
	}
	h.blog.SetForm(form)
	if !h.blog.SubmitUpdate(c.Request.Context(), c.Param("id")) {
		c.JSON(http.StatusUnprocessableEntity, h.blog.Snapshot())
		return
	}
	c.JSON(http.StatusOK, h.blog.Snapshot())
}

// DeleteBlog removes a post after the confirm step.
func (h *Handler) DeleteBlog(c *gin.Context) {
	h.blog.ConfirmDelete(c.Param("id"))
	h.blog.DeleteConfirmed(c.Request.Context())
	c.JSON(http.StatusOK, h.blog.Snapshot())
}

func (h *Handler) bindBlogForm(c *gin.Context) (store.BlogForm, bool) {
	var form store.BlogForm
	if isMultipart(c) {
		form.Judul = c.PostForm("judul")
		form.Konten = c.PostForm("konten")
		form.Status = c.PostForm("status")
		form.Kategori = c.PostForm("kategori")
		if tags := c.PostForm("tags"); tags != "" {
			for _, t := range strings.Split(tags, ",") {
				if t = strings.TrimSpace(t); t != "" {
					form.Tags = append(form.Tags, t)
				}
			}
		}

		upload, err := formUpload(c, "thumbnail")
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "thumbnail tidak dapat dibaca"})
			return form, false
		}
		form.Thumbnail = upload
		return form, true
	}

	if err := c.ShouldBindJSON(&form); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "body tidak valid"})
		return form, false
	}
	return form, true
}
