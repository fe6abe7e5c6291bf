package handlers

import (
	"errors"
	"net/http"
	"net/url"
	"strconv"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"

	"careers-portal-backend/internal/auth"
	"careers-portal-backend/internal/dtos"
	"careers-portal-backend/internal/services"
	"careers-portal-backend/internal/storage"
)

type ApplicationHandler struct {
	Apps  *services.ApplicationService
	Sync  *services.SyncService
	Store *storage.Store
}

func NewApplicationHandler(apps *services.ApplicationService, sync *services.SyncService, store *storage.Store) *ApplicationHandler {
	return &ApplicationHandler{Apps: apps, Sync: sync, Store: store}
}

// Create is the POST /api/applications endpoint. Order matters:
// validate everything, store the resume, insert the row, respond, and
// only then mirror to the CRM in the background. Sync failures never
// reach the applicant.
func (h *ApplicationHandler) Create(c *gin.Context) {
	userID, ok := auth.CurrentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"ok": false, "error": "Unauthorized"})
		return
	}

	mf, err := c.MultipartForm()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "multipart/form-data body required"})
		return
	}

	form := dtos.NormalizeApplication(url.Values(mf.Value))
	if err := form.Validate(); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": err.Error()})
		return
	}

	files := mf.File["resume"]
	if len(files) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "resume file is required"})
		return
	}

	filename, err := h.Store.SaveResume(files[0])
	if err != nil {
		if errors.Is(err, storage.ErrFileType) || errors.Is(err, storage.ErrFileSize) {
			c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": err.Error()})
			return
		}
		log.WithError(err).Error("resume write failed")
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": "failed to store resume"})
		return
	}
	// The stored filename always wins over any client-supplied path.
	form.ResumePath = filename

	app, err := h.Apps.Create(userID, form)
	if err != nil {
		log.WithError(err).Error("application insert failed")
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": "failed to save application"})
		return
	}

	// Best-effort CRM mirror, off the request path.
	go h.Sync.Run(app)

	c.JSON(http.StatusCreated, gin.H{
		"ok":      true,
		"id":      app.ID,
		"message": "Application saved",
	})
}

// List is the GET /api/applications endpoint, always scoped to the
// authenticated user.
func (h *ApplicationHandler) List(c *gin.Context) {
	userID, ok := auth.CurrentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"ok": false, "error": "Unauthorized"})
		return
	}

	page := services.ClampPage(atoiDefault(c.Query("page"), 1))
	limit := services.ClampLimit(atoiDefault(c.Query("limit"), 20))
	sort := c.DefaultQuery("sort", "created_at:desc")

	items, err := h.Apps.ListByUser(userID, services.ListOptions{Page: page, Limit: limit, Sort: sort})
	if err != nil {
		log.WithError(err).Error("application list failed")
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": "failed to list applications"})
		return
	}

	total, err := h.Apps.CountByUser(userID)
	if err != nil {
		log.WithError(err).Error("application count failed")
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": "failed to count applications"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"ok":    true,
		"items": items,
		"page":  page,
		"limit": limit,
		"total": total,
	})
}

// DownloadResume serves a stored resume, but only to the user whose
// application references it.
func (h *ApplicationHandler) DownloadResume(c *gin.Context) {
	userID, ok := auth.CurrentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"ok": false, "error": "Unauthorized"})
		return
	}

	filename := c.Param("filename")
	owns, err := h.Apps.OwnsResume(userID, filename)
	if err != nil {
		log.WithError(err).Error("resume ownership check failed")
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": "failed to check resume"})
		return
	}
	if !owns {
		c.JSON(http.StatusNotFound, gin.H{"ok": false, "error": "resume not found"})
		return
	}

	abs, err := h.Store.Resolve(filename)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"ok": false, "error": "resume not found"})
		return
	}
	c.File(abs)
}

func atoiDefault(v string, fallback int) int {
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}
