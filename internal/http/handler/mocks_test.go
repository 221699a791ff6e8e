package handler_test

import (
	"context"
	"time"

	"basegraph.app/roster/internal/model"
	"basegraph.app/roster/internal/service"
)

type mockInvitationService struct {
	createFn  func(ctx context.Context, actorID, orgID int64, email string, role model.Role) (*service.IssuedInvitation, error)
	listFn    func(ctx context.Context, actorID, orgID int64) ([]model.InvitationWithOrg, error)
	getInfoFn func(ctx context.Context, token string) (*model.InvitationWithOrg, error)
	acceptFn  func(ctx context.Context, token string, actorID int64, email string) (*model.Membership, error)
	declineFn func(ctx context.Context, token string) error
	revokeFn  func(ctx context.Context, actorID, invitationID int64) (*model.Invitation, error)
	resendFn  func(ctx context.Context, actorID, invitationID int64) (*service.IssuedInvitation, error)
}

func (m *mockInvitationService) Create(ctx context.Context, actorID, orgID int64, email string, role model.Role) (*service.IssuedInvitation, error) {
	if m.createFn != nil {
		return m.createFn(ctx, actorID, orgID, email, role)
	}
	return nil, nil
}

func (m *mockInvitationService) List(ctx context.Context, actorID, orgID int64) ([]model.InvitationWithOrg, error) {
	if m.listFn != nil {
		return m.listFn(ctx, actorID, orgID)
	}
	return nil, nil
}

func (m *mockInvitationService) GetInfo(ctx context.Context, token string) (*model.InvitationWithOrg, error) {
	if m.getInfoFn != nil {
		return m.getInfoFn(ctx, token)
	}
	return nil, service.ErrInvitationNotFound
}

func (m *mockInvitationService) Accept(ctx context.Context, token string, actorID int64, email string) (*model.Membership, error) {
	if m.acceptFn != nil {
		return m.acceptFn(ctx, token, actorID, email)
	}
	return nil, nil
}

func (m *mockInvitationService) Decline(ctx context.Context, token string) error {
	if m.declineFn != nil {
		return m.declineFn(ctx, token)
	}
	return nil
}

func (m *mockInvitationService) Revoke(ctx context.Context, actorID, invitationID int64) (*model.Invitation, error) {
	if m.revokeFn != nil {
		return m.revokeFn(ctx, actorID, invitationID)
	}
	return nil, nil
}

func (m *mockInvitationService) Resend(ctx context.Context, actorID, invitationID int64) (*service.IssuedInvitation, error) {
	if m.resendFn != nil {
		return m.resendFn(ctx, actorID, invitationID)
	}
	return nil, nil
}

type mockOrganizationService struct {
	createFn      func(ctx context.Context, actorID int64, email, name string) (*model.Organization, error)
	listForUserFn func(ctx context.Context, actorID int64) (*service.OrganizationList, error)
	getFn         func(ctx context.Context, actorID, orgID int64) (*model.OrganizationWithRole, error)
	renameFn      func(ctx context.Context, actorID, orgID int64, name string) (*model.Organization, error)
	switchFn      func(ctx context.Context, actorID, orgID int64) error
}

func (m *mockOrganizationService) Create(ctx context.Context, actorID int64, email, name string) (*model.Organization, error) {
	if m.createFn != nil {
		return m.createFn(ctx, actorID, email, name)
	}
	return nil, nil
}

func (m *mockOrganizationService) ListForUser(ctx context.Context, actorID int64) (*service.OrganizationList, error) {
	if m.listForUserFn != nil {
		return m.listForUserFn(ctx, actorID)
	}
	return &service.OrganizationList{}, nil
}

func (m *mockOrganizationService) Get(ctx context.Context, actorID, orgID int64) (*model.OrganizationWithRole, error) {
	if m.getFn != nil {
		return m.getFn(ctx, actorID, orgID)
	}
	return nil, service.ErrForbidden
}

func (m *mockOrganizationService) Rename(ctx context.Context, actorID, orgID int64, name string) (*model.Organization, error) {
	if m.renameFn != nil {
		return m.renameFn(ctx, actorID, orgID, name)
	}
	return nil, nil
}

func (m *mockOrganizationService) Switch(ctx context.Context, actorID, orgID int64) error {
	if m.switchFn != nil {
		return m.switchFn(ctx, actorID, orgID)
	}
	return nil
}

type mockMembershipService struct {
	listMembersFn func(ctx context.Context, orgID, actorID int64) ([]model.Member, error)
	leaveFn       func(ctx context.Context, orgID, actorID int64) error
	removeFn      func(ctx context.Context, orgID, userID, actorID int64) error
}

func (m *mockMembershipService) EnsureProfile(_ context.Context, userID int64, email string) (*model.Profile, error) {
	return &model.Profile{UserID: userID, Email: email}, nil
}

func (m *mockMembershipService) CreateMembership(_ context.Context, userID, orgID int64, role model.Role) (*model.Membership, error) {
	return &model.Membership{UserID: userID, OrgID: orgID, Role: role}, nil
}

func (m *mockMembershipService) ListMembers(ctx context.Context, orgID, actorID int64) ([]model.Member, error) {
	if m.listMembersFn != nil {
		return m.listMembersFn(ctx, orgID, actorID)
	}
	return nil, nil
}

func (m *mockMembershipService) Leave(ctx context.Context, orgID, actorID int64) error {
	if m.leaveFn != nil {
		return m.leaveFn(ctx, orgID, actorID)
	}
	return nil
}

func (m *mockMembershipService) Remove(ctx context.Context, orgID, userID, actorID int64) error {
	if m.removeFn != nil {
		return m.removeFn(ctx, orgID, userID, actorID)
	}
	return nil
}

type mockAnalyticsService struct {
	tracked []service.TrackEvent
}

func (m *mockAnalyticsService) Track(_ context.Context, ev service.TrackEvent) error {
	if ev.Name == "" {
		return service.ErrInvalidAnalyticsEvent
	}
	m.tracked = append(m.tracked, ev)
	return nil
}

type mockAuthService struct {
	getAuthURLFn      func(state string) (string, error)
	handleCallbackFn  func(ctx context.Context, code string) (*model.User, *model.Session, error)
	validateSessionFn func(ctx context.Context, sessionID int64) (*model.User, error)
	logoutFn          func(ctx context.Context, sessionID int64) error
}

func (m *mockAuthService) GetAuthorizationURL(state string) (string, error) {
	if m.getAuthURLFn != nil {
		return m.getAuthURLFn(state)
	}
	return "https://auth.example.com/authorize?state=" + state, nil
}

func (m *mockAuthService) HandleCallback(ctx context.Context, code string) (*model.User, *model.Session, error) {
	if m.handleCallbackFn != nil {
		return m.handleCallbackFn(ctx, code)
	}
	return nil, nil, service.ErrInvalidCode
}

func (m *mockAuthService) ValidateSession(ctx context.Context, sessionID int64) (*model.User, error) {
	if m.validateSessionFn != nil {
		return m.validateSessionFn(ctx, sessionID)
	}
	return nil, service.ErrSessionExpired
}

func (m *mockAuthService) Logout(ctx context.Context, sessionID int64) error {
	if m.logoutFn != nil {
		return m.logoutFn(ctx, sessionID)
	}
	return nil
}

type mockTokenIssuer struct {
	issued []int64
}

func (m *mockTokenIssuer) Issue(userID int64, _ string) (string, time.Time, error) {
	m.issued = append(m.issued, userID)
	return "signed-token", time.Date(2026, 1, 1, 0, 15, 0, 0, time.UTC), nil
}

func (m *mockTokenIssuer) Parse(string) (*service.AccessClaims, error) {
	return nil, service.ErrInvalidToken
}

type mockOnboardingService struct {
	getStatusFn func(ctx context.Context, userID int64) (*service.OnboardingStatus, error)
	markStepFn  func(ctx context.Context, userID int64, step model.OnboardingStep, done bool) (*service.OnboardingStatus, error)
}

func (m *mockOnboardingService) MarkStep(ctx context.Context, userID int64, step model.OnboardingStep, done bool) (*service.OnboardingStatus, error) {
	if m.markStepFn != nil {
		return m.markStepFn(ctx, userID, step, done)
	}
	return &service.OnboardingStatus{}, nil
}

func (m *mockOnboardingService) GetStatus(ctx context.Context, userID int64) (*service.OnboardingStatus, error) {
	if m.getStatusFn != nil {
		return m.getStatusFn(ctx, userID)
	}
	return &service.OnboardingStatus{Progress: 0}, nil
}

type mockProfileService struct {
	getFn    func(ctx context.Context, userID int64, email string) (*model.Profile, error)
	updateFn func(ctx context.Context, userID int64, email string, upd model.ProfileUpdate) (*model.Profile, error)
}

func (m *mockProfileService) Get(ctx context.Context, userID int64, email string) (*model.Profile, error) {
	if m.getFn != nil {
		return m.getFn(ctx, userID, email)
	}
	return &model.Profile{UserID: userID, Email: email}, nil
}

func (m *mockProfileService) Update(ctx context.Context, userID int64, email string, upd model.ProfileUpdate) (*model.Profile, error) {
	if m.updateFn != nil {
		return m.updateFn(ctx, userID, email, upd)
	}
	return &model.Profile{UserID: userID, Email: email, DisplayName: upd.DisplayName, AvatarURL: upd.AvatarURL, Locale: upd.Locale}, nil
}
