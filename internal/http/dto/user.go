package dto

import (
	"time"

	"basegraph.app/roster/internal/model"
	"basegraph.app/roster/internal/service"
)

type UserResponse struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	Email     string  `json:"email"`
	AvatarURL *string `json:"avatarUrl,omitempty"`
}

type TokenResponse struct {
	AccessToken string `json:"accessToken"`
	TokenType   string `json:"tokenType"`
	ExpiresAt   string `json:"expiresAt"`
}

type TrackEventRequest struct {
	Event      string         `json:"event" binding:"required"`
	Properties map[string]any `json:"properties"`
}

type OnboardingResponse struct {
	State    model.OnboardingState `json:"state"`
	Progress int                   `json:"progress"`
}

func ToUserResponse(u *model.User) UserResponse {
	return UserResponse{
		ID:        formatID(u.ID),
		Name:      u.Name,
		Email:     u.Email,
		AvatarURL: u.AvatarURL,
	}
}

func ToTokenResponse(token string, expiresAt time.Time) TokenResponse {
	return TokenResponse{
		AccessToken: token,
		TokenType:   "Bearer",
		ExpiresAt:   formatTime(expiresAt),
	}
}

func ToOnboardingResponse(s *service.OnboardingStatus) OnboardingResponse {
	return OnboardingResponse{State: s.State, Progress: s.Progress}
}
