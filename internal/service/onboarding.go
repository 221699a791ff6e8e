package service

import (
	"context"
	"errors"
	"fmt"

	"basegraph.app/roster/internal/model"
	"basegraph.app/roster/internal/store"
)

const EventOnboardingStepCompleted = "onboarding_step_completed"

type OnboardingStatus struct {
	State    model.OnboardingState
	Progress int
}

type OnboardingService interface {
	GetStatus(ctx context.Context, userID int64) (*OnboardingStatus, error)
	// MarkStep stores done for step and returns the resulting status.
	MarkStep(ctx context.Context, userID int64, step model.OnboardingStep, done bool) (*OnboardingStatus, error)
}

type onboardingService struct {
	profiles  store.ProfileStore
	analytics AnalyticsService
}

func NewOnboardingService(profiles store.ProfileStore, analytics AnalyticsService) OnboardingService {
	return &onboardingService{profiles: profiles, analytics: analytics}
}

// GetStatus reports stored progress. A user without a profile has done nothing yet.
func (s *onboardingService) GetStatus(ctx context.Context, userID int64) (*OnboardingStatus, error) {
	profile, err := s.profiles.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return &OnboardingStatus{}, nil
		}
		return nil, fmt.Errorf("getting profile: %w", err)
	}

	return &OnboardingStatus{
		State:    profile.OnboardingState,
		Progress: profile.OnboardingState.Progress(),
	}, nil
}

func (s *onboardingService) MarkStep(ctx context.Context, userID int64, step model.OnboardingStep, done bool) (*OnboardingStatus, error) {
	if !step.IsValid() {
		return nil, ErrInvalidOnboardingStep
	}

	if err := s.profiles.SetOnboardingStep(ctx, userID, step, done); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrProfileNotFound
		}
		return nil, fmt.Errorf("setting onboarding step: %w", err)
	}

	status, err := s.GetStatus(ctx, userID)
	if err != nil {
		return nil, err
	}

	if s.analytics != nil {
		_ = s.analytics.Track(ctx, TrackEvent{
			UserID: &userID,
			Name:   EventOnboardingStepCompleted,
			Properties: map[string]any{
				"step":     string(step),
				"value":    done,
				"progress": status.Progress,
			},
		})
	}
	return status, nil
}
