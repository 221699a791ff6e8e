package handler

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"basegraph.app/roster/internal/http/dto"
	"basegraph.app/roster/internal/model"
	"basegraph.app/roster/internal/service"
)

const invitationActionResend = "resend"

type InvitationHandler struct {
	invitations service.InvitationService
}

func NewInvitationHandler(invitations service.InvitationService) *InvitationHandler {
	return &InvitationHandler{invitations: invitations}
}

// Create issues an invitation. Requires ADMIN on the org.
// orgId may be a JSON string or number.
func (h *InvitationHandler) Create(c *gin.Context) {
	identity, ok := requireIdentity(c)
	if !ok {
		return
	}

	var req dto.CreateInvitationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "orgId and email are required")
		return
	}

	issued, err := h.invitations.Create(c.Request.Context(), identity.UserID, req.OrgID.Int64(), req.Email, model.Role(strings.TrimSpace(req.Role)))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToIssuedInvitationResponse(issued))
}

func (h *InvitationHandler) List(c *gin.Context) {
	identity, ok := requireIdentity(c)
	if !ok {
		return
	}

	orgID, ok := parseIDQuery(c, "orgId")
	if !ok {
		return
	}

	invitations, err := h.invitations.List(c.Request.Context(), identity.UserID, orgID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToInvitationListResponse(invitations))
}

// Info is public: anyone holding the link may read its summary.
func (h *InvitationHandler) Info(c *gin.Context) {
	inv, err := h.invitations.GetInfo(c.Request.Context(), c.Query("token"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToInvitationInfoResponse(inv))
}

// Act accepts the invitation unless action is "decline".
func (h *InvitationHandler) Act(c *gin.Context) {
	identity, ok := requireIdentity(c)
	if !ok {
		return
	}

	var req dto.InvitationActionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, service.ErrInvitationTokenRequired)
		return
	}

	ctx := c.Request.Context()
	action := service.ParseInvitationAction(req.Action)

	if action == service.InvitationActionDecline {
		if err := h.invitations.Decline(ctx, req.Token); err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, dto.InvitationActionResponse{Action: string(action)})
		return
	}

	membership, err := h.invitations.Accept(ctx, req.Token, identity.UserID, identity.Email)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.InvitationActionResponse{
		Action:     string(action),
		Membership: dto.ToMembershipResponse(membership),
	})
}

// Update supports the resend action only.
func (h *InvitationHandler) Update(c *gin.Context) {
	identity, ok := requireIdentity(c)
	if !ok {
		return
	}

	invitationID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req dto.UpdateInvitationRequest
	if err := c.ShouldBindJSON(&req); err != nil || !strings.EqualFold(strings.TrimSpace(req.Action), invitationActionResend) {
		respondError(c, service.ErrInvalidInvitationAction)
		return
	}

	issued, err := h.invitations.Resend(c.Request.Context(), identity.UserID, invitationID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToIssuedInvitationResponse(issued))
}

func (h *InvitationHandler) Revoke(c *gin.Context) {
	identity, ok := requireIdentity(c)
	if !ok {
		return
	}

	invitationID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	inv, err := h.invitations.Revoke(c.Request.Context(), identity.UserID, invitationID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToInvitationResponse(inv))
}
