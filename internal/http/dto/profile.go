package dto

import "basegraph.app/roster/internal/model"

// UpdateProfileRequest fields are optional; blank strings keep the stored value.
type UpdateProfileRequest struct {
	DisplayName *string `json:"displayName"`
	AvatarURL   *string `json:"avatarUrl"`
	Locale      *string `json:"locale"`
}

type ProfileResponse struct {
	UserID      string  `json:"userId"`
	FullName    string  `json:"fullName"`
	Email       string  `json:"email"`
	DisplayName *string `json:"displayName"`
	AvatarURL   *string `json:"avatarUrl"`
	Locale      *string `json:"locale"`
	ActiveOrgID *string `json:"activeOrgId"`
	UpdatedAt   string  `json:"updatedAt"`
}

type MarkOnboardingStepRequest struct {
	Step  string `json:"step" binding:"required"`
	Value *bool  `json:"value"`
}

func (r UpdateProfileRequest) ToModel() model.ProfileUpdate {
	return model.ProfileUpdate{
		DisplayName: r.DisplayName,
		AvatarURL:   r.AvatarURL,
		Locale:      r.Locale,
	}
}

// Done defaults to true when value is omitted.
func (r MarkOnboardingStepRequest) Done() bool {
	return r.Value == nil || *r.Value
}

func ToProfileResponse(p *model.Profile) ProfileResponse {
	return ProfileResponse{
		UserID:      formatID(p.UserID),
		FullName:    p.FullName,
		Email:       p.Email,
		DisplayName: p.DisplayName,
		AvatarURL:   p.AvatarURL,
		Locale:      p.Locale,
		ActiveOrgID: formatOptionalID(p.ActiveOrgID),
		UpdatedAt:   formatTime(p.UpdatedAt),
	}
}
