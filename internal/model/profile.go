package model

import (
	"strings"
	"time"
)

const defaultProfileName = "User"

type Profile struct {
	UserID          int64           `json:"user_id"`
	FullName        string          `json:"full_name"`
	Email           string          `json:"email"`
	DisplayName     *string         `json:"display_name,omitempty"`
	AvatarURL       *string         `json:"avatar_url,omitempty"`
	Locale          *string         `json:"locale,omitempty"`
	ActiveOrgID     *int64          `json:"active_org_id,omitempty"`
	OnboardingState OnboardingState `json:"onboarding_state"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}

// DefaultProfileName derives a display name from the email local part.
func DefaultProfileName(email string) string {
	local, _, _ := strings.Cut(strings.TrimSpace(email), "@")
	if local == "" {
		return defaultProfileName
	}
	return local
}

// ProfileUpdate carries user-editable settings. Nil fields are left unchanged.
type ProfileUpdate struct {
	DisplayName *string
	AvatarURL   *string
	Locale      *string
}

func (u ProfileUpdate) IsEmpty() bool {
	return u.DisplayName == nil && u.AvatarURL == nil && u.Locale == nil
}

type OnboardingStep string

const (
	OnboardingCreatedOrg           OnboardingStep = "created_org"
	OnboardingCompletedProfile     OnboardingStep = "completed_profile"
	OnboardingInvitedMember        OnboardingStep = "invited_member"
	OnboardingViewedDashboard      OnboardingStep = "viewed_dashboard"
	OnboardingConnectedIntegration OnboardingStep = "connected_integration"
	OnboardingViewedDemoData       OnboardingStep = "viewed_demo_data"
)

func (s OnboardingStep) IsValid() bool {
	switch s {
	case OnboardingCreatedOrg, OnboardingCompletedProfile, OnboardingInvitedMember,
		OnboardingViewedDashboard, OnboardingConnectedIntegration, OnboardingViewedDemoData:
		return true
	}
	return false
}

type OnboardingState struct {
	CreatedOrg           bool `json:"created_org"`
	CompletedProfile     bool `json:"completed_profile"`
	InvitedMember        bool `json:"invited_member"`
	ViewedDashboard      bool `json:"viewed_dashboard"`
	ConnectedIntegration bool `json:"connected_integration"`
	ViewedDemoData       bool `json:"viewed_demo_data"`
}

// Set records done for step. Unknown steps are ignored.
func (s *OnboardingState) Set(step OnboardingStep, done bool) {
	switch step {
	case OnboardingCreatedOrg:
		s.CreatedOrg = done
	case OnboardingCompletedProfile:
		s.CompletedProfile = done
	case OnboardingInvitedMember:
		s.InvitedMember = done
	case OnboardingViewedDashboard:
		s.ViewedDashboard = done
	case OnboardingConnectedIntegration:
		s.ConnectedIntegration = done
	case OnboardingViewedDemoData:
		s.ViewedDemoData = done
	}
}

// Progress returns the share of completed steps as a whole percentage.
func (s OnboardingState) Progress() int {
	steps := []bool{
		s.CreatedOrg,
		s.CompletedProfile,
		s.InvitedMember,
		s.ViewedDashboard,
		s.ConnectedIntegration,
		s.ViewedDemoData,
	}
	done := 0
	for _, ok := range steps {
		if ok {
			done++
		}
	}
	return (done*100 + len(steps)/2) / len(steps)
}
