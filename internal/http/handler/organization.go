package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"basegraph.app/roster/internal/http/dto"
	"basegraph.app/roster/internal/service"
)

type OrganizationHandler struct {
	orgs        service.OrganizationService
	memberships service.MembershipService
}

func NewOrganizationHandler(orgs service.OrganizationService, memberships service.MembershipService) *OrganizationHandler {
	return &OrganizationHandler{orgs: orgs, memberships: memberships}
}

func (h *OrganizationHandler) List(c *gin.Context) {
	identity, ok := requireIdentity(c)
	if !ok {
		return
	}

	list, err := h.orgs.ListForUser(c.Request.Context(), identity.UserID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToOrganizationListResponse(list.Organizations, list.ActiveOrgID))
}

func (h *OrganizationHandler) Create(c *gin.Context) {
	identity, ok := requireIdentity(c)
	if !ok {
		return
	}

	var req dto.CreateOrganizationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, service.ErrInvalidOrganizationName)
		return
	}

	org, err := h.orgs.Create(c.Request.Context(), identity.UserID, identity.Email, req.Name)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToOrganizationResponse(org))
}

func (h *OrganizationHandler) Get(c *gin.Context) {
	identity, ok := requireIdentity(c)
	if !ok {
		return
	}
	orgID, ok := parseIDParam(c, "orgId")
	if !ok {
		return
	}

	org, err := h.orgs.Get(c.Request.Context(), identity.UserID, orgID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToOrganizationWithRoleResponse(org))
}

func (h *OrganizationHandler) Rename(c *gin.Context) {
	identity, ok := requireIdentity(c)
	if !ok {
		return
	}
	orgID, ok := parseIDParam(c, "orgId")
	if !ok {
		return
	}

	var req dto.RenameOrganizationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, service.ErrInvalidOrganizationName)
		return
	}

	org, err := h.orgs.Rename(c.Request.Context(), identity.UserID, orgID, req.Name)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToOrganizationResponse(org))
}

func (h *OrganizationHandler) Switch(c *gin.Context) {
	identity, ok := requireIdentity(c)
	if !ok {
		return
	}

	var req dto.SwitchOrganizationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "orgId is required")
		return
	}

	if err := h.orgs.Switch(c.Request.Context(), identity.UserID, req.OrgID.Int64()); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"activeOrgId": formatID(req.OrgID.Int64())})
}

func (h *OrganizationHandler) ListMembers(c *gin.Context) {
	identity, ok := requireIdentity(c)
	if !ok {
		return
	}
	orgID, ok := parseIDParam(c, "orgId")
	if !ok {
		return
	}

	members, err := h.memberships.ListMembers(c.Request.Context(), orgID, identity.UserID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToMemberListResponse(members))
}

func (h *OrganizationHandler) RemoveMember(c *gin.Context) {
	identity, ok := requireIdentity(c)
	if !ok {
		return
	}
	orgID, ok := parseIDParam(c, "orgId")
	if !ok {
		return
	}
	userID, ok := parseIDParam(c, "userId")
	if !ok {
		return
	}

	if err := h.memberships.Remove(c.Request.Context(), orgID, userID, identity.UserID); err != nil {
		respondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *OrganizationHandler) Leave(c *gin.Context) {
	identity, ok := requireIdentity(c)
	if !ok {
		return
	}
	orgID, ok := parseIDParam(c, "orgId")
	if !ok {
		return
	}

	if err := h.memberships.Leave(c.Request.Context(), orgID, identity.UserID); err != nil {
		respondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
