package store

import (
	"context"
	"encoding/json"
	"fmt"

	"basegraph.app/roster/core/db/sqlc"
	"basegraph.app/roster/internal/model"
)

type profileStore struct {
	queries *sqlc.Queries
}

func newProfileStore(queries *sqlc.Queries) ProfileStore {
	return &profileStore{queries: queries}
}

func (s *profileStore) Ensure(ctx context.Context, userID int64, fullName, email string) (*model.Profile, error) {
	row, err := s.queries.EnsureProfile(ctx, sqlc.EnsureProfileParams{
		UserID:   userID,
		FullName: fullName,
		Email:    email,
	})
	if err != nil {
		return nil, mapError(err)
	}
	return toProfileModel(row)
}

func (s *profileStore) GetByUserID(ctx context.Context, userID int64) (*model.Profile, error) {
	row, err := s.queries.GetProfile(ctx, userID)
	if err != nil {
		return nil, mapError(err)
	}
	return toProfileModel(row)
}

func (s *profileStore) SetActiveOrg(ctx context.Context, userID int64, orgID *int64) error {
	n, err := s.queries.SetActiveOrg(ctx, sqlc.SetActiveOrgParams{
		UserID:      userID,
		ActiveOrgID: orgID,
	})
	if err != nil {
		return mapError(err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *profileStore) UpdateSettings(ctx context.Context, userID int64, upd model.ProfileUpdate) (*model.Profile, error) {
	row, err := s.queries.UpdateProfileSettings(ctx, sqlc.UpdateProfileSettingsParams{
		DisplayName: upd.DisplayName,
		AvatarUrl:   upd.AvatarURL,
		Locale:      upd.Locale,
		UserID:      userID,
	})
	if err != nil {
		return nil, mapError(err)
	}
	return toProfileModel(row)
}

func (s *profileStore) SetOnboardingStep(ctx context.Context, userID int64, step model.OnboardingStep, done bool) error {
	n, err := s.queries.SetOnboardingStep(ctx, sqlc.SetOnboardingStepParams{
		Step:   string(step),
		Done:   done,
		UserID: userID,
	})
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func toProfileModel(row sqlc.Profile) (*model.Profile, error) {
	p := &model.Profile{
		UserID:      row.UserID,
		FullName:    row.FullName,
		Email:       row.Email,
		DisplayName: row.DisplayName,
		AvatarURL:   row.AvatarUrl,
		Locale:      row.Locale,
		ActiveOrgID: row.ActiveOrgID,
		CreatedAt:   row.CreatedAt.Time,
		UpdatedAt:   row.UpdatedAt.Time,
	}
	if len(row.OnboardingState) > 0 {
		if err := json.Unmarshal(row.OnboardingState, &p.OnboardingState); err != nil {
			return nil, fmt.Errorf("decoding onboarding state: %w", err)
		}
	}
	return p, nil
}
