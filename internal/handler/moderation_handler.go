package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/helpfurr/adopt-api/internal/models"
	"github.com/helpfurr/adopt-api/internal/service"
	"github.com/helpfurr/adopt-api/pkg/response"
)

// ModerationHandler exposes the admin listing actions.
type ModerationHandler struct {
	service  *service.ModerationService
	identity *service.IdentityService
}

// NewModerationHandler constructs the handler.
func NewModerationHandler(svc *service.ModerationService, identity *service.IdentityService) *ModerationHandler {
	return &ModerationHandler{service: svc, identity: identity}
}

// Approve godoc
// @Summary Approve a pending listing
// @Tags Moderation
// @Produce json
// @Param id path string true "Listing id"
// @Success 200 {object} response.Envelope
// @Failure 502 {object} response.Envelope
// @Router /listings/{id}/approve [put]
func (h *ModerationHandler) Approve(c *gin.Context) {
	moderator := claimsFromContext(c).AsUser()
	if moderator == nil || moderator.ID == "" {
		// The original admin table stamped approvals with the upstream
		// user record; keep that fallback for token-less deployments.
		fallback, err := h.identity.DefaultModerator(c.Request.Context())
		if err != nil {
			response.Error(c, err)
			return
		}
		moderator = fallback
	}

	result, err := h.service.Approve(c.Request.Context(), c.Param("id"), moderator)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, statusForOutcome(result.Outcome), result)
}

// Reject godoc
// @Summary Reject and delete a listing
// @Description Cascades over the listing's pending applications before deleting the listing itself. Safe to retry.
// @Tags Moderation
// @Produce json
// @Param id path string true "Listing id"
// @Success 200 {object} response.Envelope
// @Failure 502 {object} response.Envelope
// @Router /listings/{id} [delete]
func (h *ModerationHandler) Reject(c *gin.Context) {
	result, err := h.service.Reject(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, statusForOutcome(result.Outcome), result)
}

func statusForOutcome(outcome models.ActionOutcome) int {
	if outcome == models.OutcomeConnectionError {
		return http.StatusBadGateway
	}
	return http.StatusOK
}
