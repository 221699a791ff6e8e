package service

import (
	"basegraph.app/roster/core/config"
	"basegraph.app/roster/internal/store"
)

type Services struct {
	stores     *store.Stores
	txRunner   TxRunner
	dispatcher NotificationDispatcher
	cfg        config.Config
}

func NewServices(stores *store.Stores, txRunner TxRunner, dispatcher NotificationDispatcher, cfg config.Config) *Services {
	return &Services{
		stores:     stores,
		txRunner:   txRunner,
		dispatcher: dispatcher,
		cfg:        cfg,
	}
}

func (s *Services) Access() AccessGuard {
	return NewAccessGuard(s.stores.Memberships())
}

func (s *Services) Analytics() AnalyticsService {
	return NewAnalyticsService(s.stores.AnalyticsEvents())
}

func (s *Services) Invitations() InvitationService {
	return NewInvitationService(
		s.stores.Invitations(),
		s.stores.Organizations(),
		s.stores.Profiles(),
		s.Access(),
		s.txRunner,
		s.dispatcher,
		s.Analytics(),
		s.cfg.SiteURL,
	)
}

func (s *Services) Memberships() MembershipService {
	return NewMembershipService(s.stores.Profiles(), s.stores.Memberships(), s.Access())
}

func (s *Services) Organizations() OrganizationService {
	return NewOrganizationService(
		s.stores.Organizations(),
		s.stores.Profiles(),
		s.stores.Memberships(),
		s.Access(),
		s.txRunner,
	)
}

func (s *Services) Onboarding() OnboardingService {
	return NewOnboardingService(s.stores.Profiles(), s.Analytics())
}

func (s *Services) Profiles() ProfileService {
	return NewProfileService(s.stores.Profiles())
}

func (s *Services) Auth() AuthService {
	return NewAuthService(
		s.stores.Users(),
		s.stores.Sessions(),
		s.stores.Profiles(),
		s.cfg.WorkOS,
		s.cfg.Auth.SessionTTL,
	)
}

// Tokens returns nil when JWT_SECRET is unset; bearer auth is then disabled.
func (s *Services) Tokens() TokenIssuer {
	if !s.cfg.Auth.TokensEnabled() {
		return nil
	}
	return NewTokenIssuer(s.cfg.Auth)
}
