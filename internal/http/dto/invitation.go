package dto

import (
	"strconv"

	"basegraph.app/roster/internal/model"
	"basegraph.app/roster/internal/service"
)

type CreateInvitationRequest struct {
	OrgID ID     `json:"orgId" binding:"required"`
	Email string `json:"email" binding:"required"`
	Role  string `json:"role"`
}

type InvitationActionRequest struct {
	Token  string `json:"token" binding:"required"`
	Action string `json:"action"`
}

type UpdateInvitationRequest struct {
	Action string `json:"action" binding:"required"`
}

type InvitationResponse struct {
	ID         string  `json:"id"`
	OrgID      string  `json:"orgId"`
	OrgName    string  `json:"orgName,omitempty"`
	Email      string  `json:"email"`
	Role       string  `json:"role"`
	Status     string  `json:"status"`
	InvitedBy  *string `json:"invitedBy,omitempty"`
	AcceptedBy *string `json:"acceptedBy,omitempty"`
	AcceptedAt *string `json:"acceptedAt,omitempty"`
	ExpiresAt  string  `json:"expiresAt"`
	CreatedAt  string  `json:"createdAt"`
	InviteURL  string  `json:"inviteUrl,omitempty"`
}

type InvitationListResponse struct {
	Invitations []InvitationResponse `json:"invitations"`
}

// InvitationInfoResponse is the public summary behind an invite link.
type InvitationInfoResponse struct {
	OrgName   string `json:"orgName"`
	Role      string `json:"role"`
	RoleLabel string `json:"roleLabel"`
	Status    string `json:"status"`
	ExpiresAt string `json:"expiresAt"`
}

type InvitationActionResponse struct {
	Action     string              `json:"action"`
	Membership *MembershipResponse `json:"membership,omitempty"`
}

type MembershipResponse struct {
	ID     string `json:"id"`
	UserID string `json:"userId"`
	OrgID  string `json:"orgId"`
	Role   string `json:"role"`
}

func ToInvitationResponse(inv *model.Invitation) InvitationResponse {
	return InvitationResponse{
		ID:         formatID(inv.ID),
		OrgID:      formatID(inv.OrgID),
		Email:      inv.Email,
		Role:       string(inv.Role),
		Status:     string(inv.Status),
		InvitedBy:  formatOptionalID(inv.InvitedBy),
		AcceptedBy: formatOptionalID(inv.AcceptedBy),
		AcceptedAt: formatOptionalTime(inv.AcceptedAt),
		ExpiresAt:  formatTime(inv.ExpiresAt),
		CreatedAt:  formatTime(inv.CreatedAt),
	}
}

func ToIssuedInvitationResponse(issued *service.IssuedInvitation) InvitationResponse {
	resp := ToInvitationResponse(issued.Invitation)
	resp.OrgName = issued.OrgName
	resp.InviteURL = issued.InviteURL
	return resp
}

func ToInvitationListResponse(invitations []model.InvitationWithOrg) InvitationListResponse {
	resp := InvitationListResponse{Invitations: make([]InvitationResponse, len(invitations))}
	for i := range invitations {
		r := ToInvitationResponse(&invitations[i].Invitation)
		r.OrgName = invitations[i].OrgName
		resp.Invitations[i] = r
	}
	return resp
}

func ToInvitationInfoResponse(inv *model.InvitationWithOrg) InvitationInfoResponse {
	return InvitationInfoResponse{
		OrgName:   inv.OrgName,
		Role:      string(inv.Role),
		RoleLabel: inv.Role.Label(),
		Status:    string(inv.Status),
		ExpiresAt: formatTime(inv.ExpiresAt),
	}
}

func ToMembershipResponse(m *model.Membership) *MembershipResponse {
	return &MembershipResponse{
		ID:     formatID(m.ID),
		UserID: formatID(m.UserID),
		OrgID:  formatID(m.OrgID),
		Role:   string(m.Role),
	}
}

func formatID(id int64) string {
	return strconv.FormatInt(id, 10)
}
