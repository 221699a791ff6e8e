package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/language"

	"basegraph.app/roster/common/logger"
	"basegraph.app/roster/internal/model"
	"basegraph.app/roster/internal/store"
)

const (
	maxDisplayNameLength = 100
	maxAvatarURLLength   = 2048
)

type ProfileService interface {
	// Get returns the caller's profile, creating the default row on first use.
	Get(ctx context.Context, userID int64, email string) (*model.Profile, error)
	Update(ctx context.Context, userID int64, email string, upd model.ProfileUpdate) (*model.Profile, error)
}

type profileService struct {
	profiles store.ProfileStore
}

func NewProfileService(profiles store.ProfileStore) ProfileService {
	return &profileService{profiles: profiles}
}

func (s *profileService) Get(ctx context.Context, userID int64, email string) (*model.Profile, error) {
	return ensureProfile(ctx, s.profiles, userID, email)
}

// Update trims every field. Blank values leave the stored setting unchanged.
func (s *profileService) Update(ctx context.Context, userID int64, email string, upd model.ProfileUpdate) (*model.Profile, error) {
	upd, err := normalizeProfileUpdate(upd)
	if err != nil {
		return nil, err
	}

	profile, err := ensureProfile(ctx, s.profiles, userID, email)
	if err != nil {
		return nil, err
	}
	if upd.IsEmpty() {
		return profile, nil
	}

	updated, err := s.profiles.UpdateSettings(ctx, userID, upd)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrProfileNotFound
		}
		return nil, fmt.Errorf("updating profile: %w", err)
	}

	ctx = logger.WithLogFields(ctx, logger.LogFields{UserID: &userID})
	slog.InfoContext(ctx, "profile updated",
		"display_name_set", upd.DisplayName != nil,
		"avatar_set", upd.AvatarURL != nil,
		"locale_set", upd.Locale != nil,
	)
	return updated, nil
}

func normalizeProfileUpdate(upd model.ProfileUpdate) (model.ProfileUpdate, error) {
	var out model.ProfileUpdate

	if name := trimmedOrNil(upd.DisplayName); name != nil {
		if utf8.RuneCountInString(*name) > maxDisplayNameLength {
			return out, ErrInvalidDisplayName
		}
		out.DisplayName = name
	}

	if raw := trimmedOrNil(upd.AvatarURL); raw != nil {
		u, err := url.Parse(*raw)
		if err != nil || len(*raw) > maxAvatarURLLength || u.Host == "" || (u.Scheme != "http" && u.Scheme != "https") {
			return out, ErrInvalidAvatarURL
		}
		out.AvatarURL = raw
	}

	if raw := trimmedOrNil(upd.Locale); raw != nil {
		tag, err := language.Parse(*raw)
		if err != nil {
			return out, ErrInvalidLocale
		}
		canonical := tag.String()
		out.Locale = &canonical
	}

	return out, nil
}

func trimmedOrNil(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	if v == "" {
		return nil
	}
	return &v
}
