package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"brightpath/site/internal/models"
	"brightpath/site/internal/repository"
)

type contactResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Company   string    `json:"company"`
	Message   string    `json:"message"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"createdAt"`
}

func (h HandlerSet) AdminListMessages(c *gin.Context) {
	limit, offset := pagination(c)

	submissions, err := h.contacts.List(c.Request.Context(), limit, offset)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal_error"})
		return
	}

	items := make([]contactResponse, 0, len(submissions))
	for _, submission := range submissions {
		items = append(items, contactResponse{
			ID:        submission.ID,
			Name:      submission.Name,
			Email:     submission.Email,
			Company:   submission.Company,
			Message:   submission.Message,
			Status:    string(submission.Status),
			CreatedAt: submission.CreatedAt,
		})
	}
	c.JSON(http.StatusOK, gin.H{"messages": items})
}

type statusRequest struct {
	Status string `json:"status" binding:"required"`
}

func (h HandlerSet) AdminUpdateMessageStatus(c *gin.Context) {
	var req statusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	status := models.ContactStatus(req.Status)
	switch status {
	case models.ContactStatusUnread, models.ContactStatusRead, models.ContactStatusReplied:
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_status"})
		return
	}

	if err := h.contacts.UpdateStatus(c.Request.Context(), c.Param("id"), status); err != nil {
		if errors.Is(err, repository.ErrContactNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "not_found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal_error"})
		return
	}
	c.Status(http.StatusNoContent)
}

func (h HandlerSet) AdminDeleteMessage(c *gin.Context) {
	if err := h.contacts.Delete(c.Request.Context(), c.Param("id")); err != nil {
		if errors.Is(err, repository.ErrContactNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "not_found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal_error"})
		return
	}
	c.Status(http.StatusNoContent)
}
