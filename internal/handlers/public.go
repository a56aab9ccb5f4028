package handlers

import (
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"brightpath/site/internal/auth"
	"brightpath/site/internal/ids"
	"brightpath/site/internal/models"
	"brightpath/site/internal/repository"
	"brightpath/site/internal/security"
	"brightpath/site/internal/upload"
)

type postingResponse struct {
	ID             string     `json:"id"`
	Title          string     `json:"title"`
	Slug           string     `json:"slug"`
	Department     string     `json:"department"`
	Location       string     `json:"location"`
	EmploymentType string     `json:"employmentType"`
	Description    string     `json:"description"`
	Status         string     `json:"status"`
	ClosesAt       *time.Time `json:"closesAt,omitempty"`
	CreatedAt      time.Time  `json:"createdAt"`
}

func toPostingResponse(posting models.JobPosting) postingResponse {
	return postingResponse{
		ID:             posting.ID,
		Title:          posting.Title,
		Slug:           posting.Slug,
		Department:     posting.Department,
		Location:       posting.Location,
		EmploymentType: posting.EmploymentType,
		Description:    posting.Description,
		Status:         string(posting.Status),
		ClosesAt:       posting.ClosesAt,
		CreatedAt:      posting.CreatedAt,
	}
}

func (h HandlerSet) ListCareers(c *gin.Context) {
	postings, err := h.postings.List(c.Request.Context(), true)
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

func (h HandlerSet) GetCareer(c *gin.Context) {
	posting, err := h.postings.GetBySlug(c.Request.Context(), c.Param("slug"))
	if err != nil || posting.Status != models.PostingStatusActive {
		c.JSON(http.StatusNotFound, gin.H{"error": "not_found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"posting": toPostingResponse(posting)})
}

type contactRequest struct {
	Name    string `json:"name" binding:"required"`
	Email   string `json:"email" binding:"required,email"`
	Company string `json:"company"`
	Message string `json:"message" binding:"required"`
}

func (h HandlerSet) SubmitContact(c *gin.Context) {
	var req contactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	email := auth.NormalizeEmail(req.Email)
	if !h.allowSubmission(c, "contact:"+email) {
		return
	}

	submission := models.ContactSubmission{
		ID:      ids.New(),
		Name:    req.Name,
		Email:   email,
		Company: req.Company,
		Message: req.Message,
		Status:  models.ContactStatusUnread,
	}

	if err := h.contacts.Create(c.Request.Context(), submission); err != nil {
		h.log.Error().Err(err).Msg("contact create failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal_error"})
		return
	}

	h.notifier.ContactReceived(c.Request.Context(), submission.ID, submission.Email)

	c.JSON(http.StatusCreated, gin.H{"id": submission.ID})
}

func (h HandlerSet) SubmitApplication(c *gin.Context) {
	posting, err := h.postings.GetBySlug(c.Request.Context(), c.Param("slug"))
	if err != nil || posting.Status != models.PostingStatusActive {
		c.JSON(http.StatusNotFound, gin.H{"error": "not_found"})
		return
	}

	name := c.PostForm("name")
	email := auth.NormalizeEmail(c.PostForm("email"))
	if name == "" || email == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "name_and_email_required"})
		return
	}

	if !h.allowSubmission(c, "apply:"+email) {
		return
	}

	file, header, err := c.Request.FormFile("resume")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "resume_required"})
		return
	}
	defer file.Close()

	stored, err := h.resumes.Store(c.Request.Context(), file, header)
	if err != nil {
		status := http.StatusBadRequest
		if !errors.Is(err, upload.ErrUnknownType) &&
			!errors.Is(err, upload.ErrEmptyFile) &&
			!errors.Is(err, upload.ErrFileTooLarge) {
			status = http.StatusInternalServerError
			h.log.Error().Err(err).Msg("resume store failed")
		}
		c.JSON(status, gin.H{"error": "resume_rejected"})
		return
	}

	application := models.CareerApplication{
		ID:           ids.New(),
		PostingID:    posting.ID,
		Name:         name,
		Email:        email,
		Phone:        c.PostForm("phone"),
		CoverNote:    c.PostForm("coverNote"),
		ResumeBucket: stored.Bucket,
		ResumeKey:    stored.ObjectKey,
		ResumeFormat: stored.Format,
		Status:       models.ApplicationStatusPending,
	}

	if err := h.applications.Create(c.Request.Context(), application); err != nil {
		h.log.Error().Err(err).Msg("application create failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal_error"})
		return
	}

	h.notifier.ApplicationReceived(c.Request.Context(), application.ID, posting.ID)

	c.JSON(http.StatusCreated, gin.H{"id": application.ID})
}

// allowSubmission applies the cooldown window. Store errors fail open: this
// is spam control, not access control, and a dead redis must not take the
// contact form down with it.
func (h HandlerSet) allowSubmission(c *gin.Context, key string) bool {
	allowed, err := h.cooldown.Hit(c.Request.Context(), key, h.cfg.Forms.CooldownWindow)
	if err != nil {
		h.log.Warn().Err(err).Msg("cooldown store error")
		return true
	}
	if !allowed {
		c.JSON(http.StatusTooManyRequests, gin.H{"error": "too_many_requests"})
		return false
	}
	return true
}

// DownloadResume streams a stored resume for a link token minted by
// AdminResumeLink. The token is self-contained, so the path stays outside the
// gated prefix.
func (h HandlerSet) DownloadResume(c *gin.Context) {
	tokenStr := c.Query("token")
	if tokenStr == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "token_required"})
		return
	}

	claims, err := security.ParseDownloadToken(tokenStr, h.cfg.Forms.DownloadSecret)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid_token"})
		return
	}

	application, err := h.applications.GetByID(c.Request.Context(), claims.ApplicationID)
	if err != nil {
		if errors.Is(err, repository.ErrApplicationNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "not_found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal_error"})
		return
	}
	if application.ResumeBucket != claims.Bucket || application.ResumeKey != claims.ObjectKey {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid_token"})
		return
	}

	object, err := h.store.Get(c.Request.Context(), claims.Bucket, claims.ObjectKey)
	if err != nil {
		h.log.Error().Err(err).Str("object_key", claims.ObjectKey).Msg("resume fetch failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal_error"})
		return
	}
	defer object.Close()

	c.Header("Content-Disposition", `attachment; filename="resume.`+application.ResumeFormat+`"`)
	c.Status(http.StatusOK)
	if _, err := io.Copy(c.Writer, object); err != nil {
		h.log.Warn().Err(err).Msg("resume stream interrupted")
	}
}
