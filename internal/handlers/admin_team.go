package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"brightpath/site/internal/auth"
	"brightpath/site/internal/ids"
	"brightpath/site/internal/models"
	"brightpath/site/internal/repository"
	"brightpath/site/internal/security"
)

func (h HandlerSet) AdminListTeam(c *gin.Context) {
	users, err := h.users.List(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal_error"})
		return
	}

	items := make([]userResponse, 0, len(users))
	for _, user := range users {
		items = append(items, userResponse{
			ID:          user.ID,
			Email:       user.Email,
			DisplayName: user.DisplayName,
			Role:        string(user.Role),
			Status:      string(user.Status),
		})
	}
	c.JSON(http.StatusOK, gin.H{"team": items})
}

type createTeamMemberRequest struct {
	Email       string `json:"email" binding:"required,email"`
	Password    string `json:"password" binding:"required,min=8"`
	DisplayName string `json:"displayName" binding:"required"`
	Role        string `json:"role"`
}

// AdminCreateTeamMember provisions a user together with their password
// credential account so the sign-in invariant holds from the first write.
func (h HandlerSet) AdminCreateTeamMember(c *gin.Context) {
	var req createTeamMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	// Stored and looked up in normalized form; sign-in lowercases before its
	// account lookup, so a verbatim mixed-case write would be unreachable.
	email := auth.NormalizeEmail(req.Email)

	if _, err := h.users.FindByEmail(c.Request.Context(), email); err == nil {
		c.JSON(http.StatusConflict, gin.H{"error": "email_taken"})
		return
	} else if !errors.Is(err, repository.ErrUserNotFound) {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal_error"})
		return
	}

	role := models.UserRoleEditor
	if models.UserRole(req.Role) == models.UserRoleAdmin {
		role = models.UserRoleAdmin
	}

	hash, err := security.HashPassword(req.Password)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal_error"})
		return
	}

	user := models.User{
		ID:            ids.New(),
		Email:         email,
		DisplayName:   req.DisplayName,
		EmailVerified: true,
		Role:          role,
		Status:        models.UserStatusActive,
	}
	if err := h.users.Create(c.Request.Context(), user); err != nil {
		h.log.Error().Err(err).Msg("team member create failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal_error"})
		return
	}

	account := models.CredentialAccount{
		ID:           ids.New(),
		UserID:       user.ID,
		ProviderID:   models.ProviderCredential,
		AccountID:    user.Email,
		PasswordHash: hash,
	}
	if err := h.accounts.Create(c.Request.Context(), account); err != nil {
		h.log.Error().Err(err).Msg("credential account create failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal_error"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"user": userResponse{
			ID:          user.ID,
			Email:       user.Email,
			DisplayName: user.DisplayName,
			Role:        string(user.Role),
			Status:      string(user.Status),
		},
	})
}

func (h HandlerSet) AdminUpdateTeamMemberStatus(c *gin.Context) {
	var req statusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	status := models.UserStatus(req.Status)
	switch status {
	case models.UserStatusActive, models.UserStatusSuspended:
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_status"})
		return
	}

	id := c.Param("id")
	if err := h.users.UpdateStatus(c.Request.Context(), id, status); err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "not_found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal_error"})
		return
	}

	// A suspension takes effect immediately, not at next session expiry.
	if status == models.UserStatusSuspended {
		if err := h.sessions.DeleteByUser(c.Request.Context(), id); err != nil {
			h.log.Warn().Err(err).Str("user_id", id).Msg("session revoke failed")
		}
	}

	c.Status(http.StatusNoContent)
}
