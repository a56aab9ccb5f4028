package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"brightpath/site/internal/models"
	"brightpath/site/internal/repository"
	"brightpath/site/internal/security"
)

type applicationResponse struct {
	ID        string    `json:"id"`
	PostingID string    `json:"postingId"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
	CoverNote string    `json:"coverNote"`
	Format    string    `json:"resumeFormat"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"createdAt"`
}

func pagination(c *gin.Context) (limit, offset int) {
	limit = 50
	offset = 0

	if perPage := c.Query("perPage"); perPage != "" {
		if v, err := strconv.Atoi(perPage); err == nil && v > 0 && v <= 200 {
			limit = v
		}
	}
	if page := c.Query("page"); page != "" {
		if v, err := strconv.Atoi(page); err == nil && v > 1 {
			offset = (v - 1) * limit
		}
	}
	return limit, offset
}

func (h HandlerSet) AdminListApplications(c *gin.Context) {
	limit, offset := pagination(c)

	applications, err := h.applications.List(c.Request.Context(), limit, offset)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal_error"})
		return
	}

	items := make([]applicationResponse, 0, len(applications))
	for _, application := range applications {
		items = append(items, applicationResponse{
			ID:        application.ID,
			PostingID: application.PostingID,
			Name:      application.Name,
			Email:     application.Email,
			Phone:     application.Phone,
			CoverNote: application.CoverNote,
			Format:    application.ResumeFormat,
			Status:    string(application.Status),
			CreatedAt: application.CreatedAt,
		})
	}
	c.JSON(http.StatusOK, gin.H{"applications": items})
}

func (h HandlerSet) AdminUpdateApplicationStatus(c *gin.Context) {
	var req statusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	status := models.ApplicationStatus(req.Status)
	switch status {
	case models.ApplicationStatusPending, models.ApplicationStatusReviewed, models.ApplicationStatusRejected:
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_status"})
		return
	}

	if err := h.applications.UpdateStatus(c.Request.Context(), c.Param("id"), status); err != nil {
		if errors.Is(err, repository.ErrApplicationNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "not_found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal_error"})
		return
	}
	c.Status(http.StatusNoContent)
}

func (h HandlerSet) AdminDeleteApplication(c *gin.Context) {
	application, err := h.applications.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, repository.ErrApplicationNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "not_found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal_error"})
		return
	}

	if err := h.applications.Delete(c.Request.Context(), application.ID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal_error"})
		return
	}

	// The row is gone either way; an orphaned object on a flaky remove is
	// harmless and only costs bucket space.
	if err := h.store.Remove(c.Request.Context(), application.ResumeBucket, application.ResumeKey); err != nil {
		h.log.Warn().Err(err).Str("object_key", application.ResumeKey).Msg("resume remove failed")
	}

	c.Status(http.StatusNoContent)
}

// AdminResumeLink mints a short-lived signed download link for an
// application's resume.
func (h HandlerSet) AdminResumeLink(c *gin.Context) {
	application, err := h.applications.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, repository.ErrApplicationNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "not_found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal_error"})
		return
	}

	token, err := security.GenerateDownloadToken(
		h.cfg.Forms.DownloadSecret,
		application.ID,
		application.ResumeBucket,
		application.ResumeKey,
		h.cfg.Forms.DownloadTTL,
	)
	if err != nil {
		h.log.Error().Err(err).Msg("download token failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal_error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"url":       "/files/resume?token=" + token,
		"expiresIn": h.cfg.Forms.DownloadTTL.String(),
	})
}
