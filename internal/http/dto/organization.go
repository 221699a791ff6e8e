package dto

import "basegraph.app/roster/internal/model"

type CreateOrganizationRequest struct {
	Name string `json:"name" binding:"required"`
}

type RenameOrganizationRequest struct {
	Name string `json:"name" binding:"required"`
}

type SwitchOrganizationRequest struct {
	OrgID ID `json:"orgId" binding:"required"`
}

type OrganizationResponse struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Slug      string `json:"slug"`
	OwnerID   string `json:"ownerId"`
	Role      string `json:"role,omitempty"`
	JoinedAt  string `json:"joinedAt,omitempty"`
	CreatedAt string `json:"createdAt"`
	UpdatedAt string `json:"updatedAt"`
}

type OrganizationListResponse struct {
	Organizations []OrganizationResponse `json:"organizations"`
	ActiveOrgID   *string                `json:"activeOrgId"`
}

type MemberResponse struct {
	UserID   string `json:"userId"`
	FullName string `json:"fullName"`
	Email    string `json:"email"`
	Role     string `json:"role"`
	JoinedAt string `json:"joinedAt"`
}

type MemberListResponse struct {
	Members []MemberResponse `json:"members"`
}

func ToOrganizationResponse(org *model.Organization) OrganizationResponse {
	return OrganizationResponse{
		ID:        formatID(org.ID),
		Name:      org.Name,
		Slug:      org.Slug,
		OwnerID:   formatID(org.OwnerID),
		CreatedAt: formatTime(org.CreatedAt),
		UpdatedAt: formatTime(org.UpdatedAt),
	}
}

func ToOrganizationWithRoleResponse(org *model.OrganizationWithRole) OrganizationResponse {
	resp := ToOrganizationResponse(&org.Organization)
	resp.Role = string(org.Role)
	if !org.JoinedAt.IsZero() {
		resp.JoinedAt = formatTime(org.JoinedAt)
	}
	return resp
}

func ToOrganizationListResponse(orgs []model.OrganizationWithRole, activeOrgID *int64) OrganizationListResponse {
	resp := OrganizationListResponse{
		Organizations: make([]OrganizationResponse, len(orgs)),
		ActiveOrgID:   formatOptionalID(activeOrgID),
	}
	for i := range orgs {
		resp.Organizations[i] = ToOrganizationWithRoleResponse(&orgs[i])
	}
	return resp
}

func ToMemberListResponse(members []model.Member) MemberListResponse {
	resp := MemberListResponse{Members: make([]MemberResponse, len(members))}
	for i, m := range members {
		resp.Members[i] = MemberResponse{
			UserID:   formatID(m.UserID),
			FullName: m.FullName,
			Email:    m.Email,
			Role:     string(m.Role),
			JoinedAt: formatTime(m.CreatedAt),
		}
	}
	return resp
}
