package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"brightpath/site/internal/ids"
	"brightpath/site/internal/models"
	"brightpath/site/internal/repository"
)

type postingRequest struct {
	Title          string     `json:"title" binding:"required"`
	Slug           string     `json:"slug" binding:"required"`
	Department     string     `json:"department"`
	Location       string     `json:"location"`
	EmploymentType string     `json:"employmentType"`
	Description    string     `json:"description"`
	Status         string     `json:"status"`
	ClosesAt       *time.Time `json:"closesAt"`
}

func (h HandlerSet) AdminListPostings(c *gin.Context) {
	postings, err := h.postings.List(c.Request.Context(), false)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal_error"})
		return
	}

	items := make([]postingResponse, 0, len(postings))
	for _, posting := range postings {
		items = append(items, toPostingResponse(posting))
	}
	c.JSON(http.StatusOK, gin.H{"postings": items})
}

func (h HandlerSet) AdminGetPosting(c *gin.Context) {
	posting, err := h.postings.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, repository.ErrPostingNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "not_found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal_error"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"posting": toPostingResponse(posting)})
}

func (h HandlerSet) AdminCreatePosting(c *gin.Context) {
	var req postingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	posting := models.JobPosting{
		ID:             ids.New(),
		Title:          req.Title,
		Slug:           req.Slug,
		Department:     req.Department,
		Location:       req.Location,
		EmploymentType: req.EmploymentType,
		Description:    req.Description,
		Status:         postingStatusOrDefault(req.Status),
		ClosesAt:       req.ClosesAt,
	}

	if err := h.postings.Create(c.Request.Context(), posting); err != nil {
		h.log.Error().Err(err).Msg("posting create failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal_error"})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"posting": toPostingResponse(posting)})
}

func (h HandlerSet) AdminUpdatePosting(c *gin.Context) {
	var req postingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	posting := models.JobPosting{
		ID:             c.Param("id"),
		Title:          req.Title,
		Slug:           req.Slug,
		Department:     req.Department,
		Location:       req.Location,
		EmploymentType: req.EmploymentType,
		Description:    req.Description,
		Status:         postingStatusOrDefault(req.Status),
		ClosesAt:       req.ClosesAt,
	}

	if err := h.postings.Update(c.Request.Context(), posting); err != nil {
		if errors.Is(err, repository.ErrPostingNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "not_found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal_error"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"posting": toPostingResponse(posting)})
}

func (h HandlerSet) AdminDeletePosting(c *gin.Context) {
	if err := h.postings.Delete(c.Request.Context(), c.Param("id")); err != nil {
		if errors.Is(err, repository.ErrPostingNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "not_found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal_error"})
		return
	}
	c.Status(http.StatusNoContent)
}

func postingStatusOrDefault(status string) models.PostingStatus {
	switch models.PostingStatus(status) {
	case models.PostingStatusActive, models.PostingStatusInactive:
		return models.PostingStatus(status)
	default:
		return models.PostingStatusActive
	}
}
