package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"gstrecon/internal/service"
)

// ProfileHandler serves the signed-in user's own profile.
type ProfileHandler struct {
	profileService service.ProfileService
}

// NewProfileHandler creates a new ProfileHandler.
func NewProfileHandler(profileService service.ProfileService) *ProfileHandler {
	return &ProfileHandler{profileService: profileService}
}

// Me handles GET /api/v1/profile/me
// @Summary Current user
// @Tags profile
// @Produce json
// @Success 200 {object} Response{data=domain.User} "Current user"
// @Failure 401 {object} ErrorResponseBody "Unauthorized"
// @Security BearerAuth
// @Router /profile/me [get]
func (h *ProfileHandler) Me(c *gin.Context) {
	userID, ok := extractUserID(c)
	if !ok {
		return
	}

	user, err := h.profileService.Get(c.Request.Context(), userID)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, user)
}

// UpdateGSTIN handles POST /api/v1/profile/gstin
// @Summary Set own GSTIN
// @Description The GSTIN decides which side of each invoice the user is on.
// @Tags profile
// @Accept json
// @Produce json
// @Param request body service.UpdateGSTINInput true "GSTIN"
// @Success 200 {object} Response{data=domain.User} "Updated user"
// @Failure 400 {object} ErrorResponseBody "Invalid GSTIN"
// @Security BearerAuth
// @Router /profile/gstin [post]
func (h *ProfileHandler) UpdateGSTIN(c *gin.Context) {
	userID, ok := extractUserID(c)
	if !ok {
		return
	}

	var input service.UpdateGSTINInput
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	user, err := h.profileService.UpdateGSTIN(c.Request.Context(), userID, input.GSTIN)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, user)
}
