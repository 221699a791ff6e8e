package service_test

import (
	"context"
	"encoding/base64"
	"errors"
	"net/url"
	"sync"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"basegraph.app/roster/internal/model"
	"basegraph.app/roster/internal/service"
	"basegraph.app/roster/internal/store"
)

const siteURL = "https://roster.test"

var _ = Describe("InvitationService", func() {
	var (
		ctx         context.Context
		invitations *mockInvitationStore
		orgs        *mockOrganizationStore
		profiles    *mockProfileStore
		memberships *mockMembershipStore
		events      *mockAnalyticsEventStore
		dispatcher  *mockDispatcher
		txRunner    *mockTxRunner
		svc         service.InvitationService
	)

	const (
		orgID   = int64(100)
		ownerID = int64(1)
		adminID = int64(2)
		userID  = int64(3)
	)

	BeforeEach(func() {
		ctx = context.Background()
		invitations = &mockInvitationStore{}
		orgs = &mockOrganizationStore{}
		profiles = &mockProfileStore{}
		memberships = &mockMembershipStore{getFn: membershipRoles(map[int64]model.Role{
			ownerID: model.RoleOwner,
			adminID: model.RoleAdmin,
			userID:  model.RoleMember,
		})}
		events = &mockAnalyticsEventStore{}
		dispatcher = &mockDispatcher{}
		txRunner = &mockTxRunner{stores: &mockStoreProvider{
			orgs:        orgs,
			profiles:    profiles,
			memberships: memberships,
			invitations: invitations,
		}}
		svc = service.NewInvitationService(
			invitations,
			orgs,
			profiles,
			service.NewAccessGuard(memberships),
			txRunner,
			dispatcher,
			service.NewAnalyticsService(events),
			siteURL,
		)
	})

	Describe("Create", func() {
		It("creates a pending invitation with a random token and 7 day expiry", func() {
			var created *model.Invitation
			invitations.createFn = func(_ context.Context, inv *model.Invitation) error {
				created = inv
				return nil
			}

			res, err := svc.Create(ctx, adminID, orgID, "  Bob@Example.COM ", model.RoleViewer)
			Expect(err).NotTo(HaveOccurred())

			Expect(created).NotTo(BeNil())
			Expect(created.ID).NotTo(BeZero())
			Expect(created.OrgID).To(Equal(orgID))
			Expect(created.Email).To(Equal("bob@example.com"))
			Expect(created.Role).To(Equal(model.RoleViewer))
			Expect(created.Status).To(Equal(model.InvitationStatusPending))
			Expect(*created.InvitedBy).To(Equal(adminID))
			Expect(created.ExpiresAt).To(BeTemporally("~", time.Now().Add(7*24*time.Hour), time.Minute))

			raw, err := base64.URLEncoding.DecodeString(created.Token)
			Expect(err).NotTo(HaveOccurred())
			Expect(len(raw)).To(BeNumerically(">=", 16))

			Expect(res.OrgName).To(Equal("Acme"))
			Expect(res.InviteURL).To(Equal(siteURL + "/invite?token=" + url.QueryEscape(created.Token)))
		})

		It("defaults the role to MEMBER", func() {
			res, err := svc.Create(ctx, adminID, orgID, "bob@example.com", "")
			Expect(err).NotTo(HaveOccurred())
			Expect(res.Invitation.Role).To(Equal(model.RoleMember))
		})

		It("dispatches the email, records analytics and the onboarding step", func() {
			_, err := svc.Create(ctx, ownerID, orgID, "bob@example.com", model.RoleAdmin)
			Expect(err).NotTo(HaveOccurred())

			Expect(dispatcher.dispatched).To(HaveLen(1))
			Expect(events.names()).To(ConsistOf(service.EventInvitationCreated))
			Expect(profiles.markedSteps).To(ConsistOf(model.OnboardingInvitedMember))
		})

		It("still succeeds when the email cannot be delivered", func() {
			dispatcher.dispatchFn = func(context.Context, *model.Invitation, string) error {
				return errors.New("smtp down")
			}
			events.createFn = func(context.Context, *model.AnalyticsEvent) error {
				return errors.New("analytics down")
			}

			res, err := svc.Create(ctx, adminID, orgID, "bob@example.com", model.RoleMember)
			Expect(err).NotTo(HaveOccurred())
			Expect(res.Invitation.Status).To(Equal(model.InvitationStatusPending))
		})

		DescribeTable("rejects invalid input before touching the store",
			func(email string, role model.Role, want *service.Error) {
				_, err := svc.Create(ctx, adminID, orgID, email, role)
				Expect(err).To(MatchError(want))
				Expect(service.KindOf(err)).To(Equal(service.KindValidation))
				Expect(invitations.createCalls).To(BeZero())
			},
			Entry("empty email", "", model.RoleMember, service.ErrInvalidEmail),
			Entry("malformed email", "not-an-email", model.RoleMember, service.ErrInvalidEmail),
			Entry("display-name form", "Bob <bob@example.com>", model.RoleMember, service.ErrInvalidEmail),
			Entry("owner role", "bob@example.com", model.RoleOwner, service.ErrInvalidRole),
			Entry("unknown role", "bob@example.com", model.Role("SUPERUSER"), service.ErrInvalidRole),
		)

		It("requires ADMIN", func() {
			_, err := svc.Create(ctx, userID, orgID, "bob@example.com", model.RoleMember)
			Expect(err).To(MatchError(service.ErrForbidden))
			Expect(invitations.createCalls).To(BeZero())
		})

		It("returns Conflict when a pending invitation exists", func() {
			invitations.getByOrgAndEmailFn = func(context.Context, int64, string) (*model.Invitation, error) {
				return &model.Invitation{ID: 9, Status: model.InvitationStatusPending}, nil
			}

			_, err := svc.Create(ctx, adminID, orgID, "bob@example.com", model.RoleMember)
			Expect(err).To(MatchError(service.ErrInvitationExists))
			Expect(service.KindOf(err)).To(Equal(service.KindConflict))
			Expect(invitations.createCalls).To(BeZero())
			Expect(invitations.rotateCalls).To(BeZero())
			Expect(dispatcher.dispatched).To(BeEmpty())
		})

		It("reissues a resolved invitation with a new token, expiry and role", func() {
			invitations.getByOrgAndEmailFn = func(context.Context, int64, string) (*model.Invitation, error) {
				return &model.Invitation{ID: 9, OrgID: orgID, Token: "old", Role: model.RoleViewer, Status: model.InvitationStatusDeclined}, nil
			}
			invitations.reissueFn = func(_ context.Context, id int64, token string, role model.Role, expiresAt time.Time, invitedBy int64) (*model.Invitation, error) {
				Expect(id).To(Equal(int64(9)))
				Expect(token).NotTo(Equal("old"))
				Expect(role).To(Equal(model.RoleAdmin))
				Expect(expiresAt).To(BeTemporally("~", time.Now().Add(7*24*time.Hour), time.Minute))
				Expect(invitedBy).To(Equal(adminID))
				return &model.Invitation{ID: id, OrgID: orgID, Token: token, Role: role, Status: model.InvitationStatusPending, ExpiresAt: expiresAt}, nil
			}

			res, err := svc.Create(ctx, adminID, orgID, "bob@example.com", model.RoleAdmin)
			Expect(err).NotTo(HaveOccurred())
			Expect(res.Invitation.ID).To(Equal(int64(9)))
			Expect(res.Invitation.Status).To(Equal(model.InvitationStatusPending))
			Expect(invitations.createCalls).To(BeZero())
			Expect(invitations.rotateCalls).To(BeZero())
		})

		It("returns Conflict when another create reopened the invitation first", func() {
			// Both callers read the same DECLINED row before either update lands.
			snapshot := model.Invitation{ID: 9, OrgID: orgID, Token: "old", Role: model.RoleMember, Status: model.InvitationStatusDeclined}
			invitations.getByOrgAndEmailFn = func(context.Context, int64, string) (*model.Invitation, error) {
				inv := snapshot
				return &inv, nil
			}
			var (
				status    = model.InvitationStatusDeclined
				liveToken string
			)
			invitations.reissueFn = func(_ context.Context, id int64, token string, role model.Role, expiresAt time.Time, _ int64) (*model.Invitation, error) {
				if status == model.InvitationStatusPending {
					return nil, store.ErrNotFound
				}
				status, liveToken = model.InvitationStatusPending, token
				return &model.Invitation{ID: id, OrgID: orgID, Token: token, Role: role, Status: status, ExpiresAt: expiresAt}, nil
			}

			first, err := svc.Create(ctx, adminID, orgID, "bob@example.com", model.RoleMember)
			Expect(err).NotTo(HaveOccurred())

			_, err = svc.Create(ctx, ownerID, orgID, "bob@example.com", model.RoleMember)
			Expect(err).To(MatchError(service.ErrInvitationExists))
			Expect(service.KindOf(err)).To(Equal(service.KindConflict))

			Expect(liveToken).To(Equal(first.Invitation.Token))
			Expect(dispatcher.dispatched).To(HaveLen(1))
			Expect(invitations.reissueCalls).To(Equal(2))
		})

		It("maps a unique violation from a concurrent insert to Conflict", func() {
			invitations.createFn = func(context.Context, *model.Invitation) error {
				return store.ErrAlreadyExists
			}

			_, err := svc.Create(ctx, adminID, orgID, "bob@example.com", model.RoleMember)
			Expect(err).To(MatchError(service.ErrInvitationExists))
		})

		It("returns NotFound for a missing organization", func() {
			orgs.getByIDFn = func(context.Context, int64) (*model.Organization, error) {
				return nil, store.ErrNotFound
			}

			_, err := svc.Create(ctx, adminID, orgID, "bob@example.com", model.RoleMember)
			Expect(err).To(MatchError(service.ErrOrganizationNotFound))
		})
	})

	Describe("List", func() {
		It("requires ADMIN", func() {
			_, err := svc.List(ctx, userID, orgID)
			Expect(err).To(MatchError(service.ErrForbidden))
		})

		It("returns the store's rows", func() {
			invitations.listByOrgFn = func(_ context.Context, id int64) ([]model.InvitationWithOrg, error) {
				Expect(id).To(Equal(orgID))
				return []model.InvitationWithOrg{{OrgName: "Acme"}}, nil
			}

			list, err := svc.List(ctx, adminID, orgID)
			Expect(err).NotTo(HaveOccurred())
			Expect(list).To(HaveLen(1))
		})
	})

	Describe("GetInfo", func() {
		It("requires a token", func() {
			_, err := svc.GetInfo(ctx, " ")
			Expect(err).To(MatchError(service.ErrInvitationTokenRequired))
		})

		It("returns NotFound for an unknown token", func() {
			_, err := svc.GetInfo(ctx, "nope")
			Expect(err).To(MatchError(service.ErrInvitationNotFound))
		})

		It("returns Gone for an expired pending invitation", func() {
			invitations.getWithOrgByTokenFn = func(context.Context, string) (*model.InvitationWithOrg, error) {
				return &model.InvitationWithOrg{Invitation: model.Invitation{
					Status:    model.InvitationStatusPending,
					ExpiresAt: time.Now().Add(-time.Hour),
				}}, nil
			}

			_, err := svc.GetInfo(ctx, "tok")
			Expect(err).To(MatchError(service.ErrInvitationExpired))
			Expect(service.KindOf(err)).To(Equal(service.KindGone))
		})

		It("still describes an invitation that was already resolved", func() {
			invitations.getWithOrgByTokenFn = func(context.Context, string) (*model.InvitationWithOrg, error) {
				return &model.InvitationWithOrg{OrgName: "Acme", Invitation: model.Invitation{
					Status:    model.InvitationStatusAccepted,
					ExpiresAt: time.Now().Add(-time.Hour),
				}}, nil
			}

			info, err := svc.GetInfo(ctx, "tok")
			Expect(err).NotTo(HaveOccurred())
			Expect(info.OrgName).To(Equal("Acme"))
		})
	})

	Describe("Accept", func() {
		var pending *model.Invitation

		BeforeEach(func() {
			pending = &model.Invitation{
				ID:        9,
				OrgID:     orgID,
				Email:     "new@example.com",
				Role:      model.RoleViewer,
				Token:     "tok",
				Status:    model.InvitationStatusPending,
				ExpiresAt: time.Now().Add(time.Hour),
			}
			invitations.getByTokenForUpdateFn = func(_ context.Context, token string) (*model.Invitation, error) {
				Expect(token).To(Equal("tok"))
				return pending, nil
			}
		})

		It("materializes the profile and membership inside one transaction", func() {
			var ensured []string
			profiles.ensureFn = func(_ context.Context, id int64, fullName, email string) (*model.Profile, error) {
				ensured = append(ensured, fullName, email)
				return &model.Profile{UserID: id}, nil
			}

			m, err := svc.Accept(ctx, "tok", 50, "New@Example.com")
			Expect(err).NotTo(HaveOccurred())
			Expect(m.UserID).To(Equal(int64(50)))
			Expect(m.OrgID).To(Equal(orgID))
			Expect(m.Role).To(Equal(model.RoleViewer))
			Expect(ensured).To(Equal([]string{"new", "new@example.com"}))
			Expect(memberships.createCalls).To(Equal(1))
			Expect(txRunner.calls).To(Equal(1))
			Expect(events.names()).To(ConsistOf(service.EventInvitationAccepted))
		})

		It("returns NotFound for an unknown token", func() {
			invitations.getByTokenForUpdateFn = nil
			_, err := svc.Accept(ctx, "tok", 50, "")
			Expect(err).To(MatchError(service.ErrInvitationNotFound))
		})

		It("returns Conflict when the invitation was already processed", func() {
			pending.Status = model.InvitationStatusDeclined
			_, err := svc.Accept(ctx, "tok", 50, "")
			Expect(err).To(MatchError(service.ErrInvitationProcessed))
			Expect(memberships.createCalls).To(BeZero())
		})

		It("checks status before expiry", func() {
			pending.Status = model.InvitationStatusAccepted
			pending.ExpiresAt = time.Now().Add(-time.Hour)
			_, err := svc.Accept(ctx, "tok", 50, "")
			Expect(err).To(MatchError(service.ErrInvitationProcessed))
		})

		It("returns Gone once expired", func() {
			pending.ExpiresAt = time.Now().Add(-time.Second)
			_, err := svc.Accept(ctx, "tok", 50, "")
			Expect(err).To(MatchError(service.ErrInvitationExpired))
			Expect(memberships.createCalls).To(BeZero())
		})

		It("returns Conflict for an existing member", func() {
			_, err := svc.Accept(ctx, "tok", userID, "")
			Expect(err).To(MatchError(service.ErrAlreadyMember))
			Expect(memberships.createCalls).To(BeZero())
		})

		It("maps a membership unique violation to Conflict", func() {
			memberships.createFn = func(context.Context, *model.Membership) error {
				return store.ErrAlreadyExists
			}
			_, err := svc.Accept(ctx, "tok", 50, "")
			Expect(err).To(MatchError(service.ErrAlreadyMember))
		})

		It("returns Conflict when the status update loses a race", func() {
			invitations.acceptFn = func(context.Context, int64, int64) (*model.Invitation, error) {
				return nil, store.ErrNotFound
			}
			_, err := svc.Accept(ctx, "tok", 50, "")
			Expect(err).To(MatchError(service.ErrInvitationProcessed))
		})
	})

	Describe("Decline", func() {
		It("is a no-op for a resolved invitation", func() {
			invitations.getByTokenFn = func(context.Context, string) (*model.Invitation, error) {
				return &model.Invitation{ID: 9, Status: model.InvitationStatusAccepted}, nil
			}
			Expect(svc.Decline(ctx, "tok")).To(Succeed())
			Expect(events.events).To(BeEmpty())
		})

		It("returns NotFound for an unknown token", func() {
			Expect(svc.Decline(ctx, "tok")).To(MatchError(service.ErrInvitationNotFound))
		})

		It("records the decline", func() {
			invitations.declineByTokenFn = func(context.Context, string) (bool, error) { return true, nil }
			invitations.getByTokenFn = func(context.Context, string) (*model.Invitation, error) {
				return &model.Invitation{ID: 9, Status: model.InvitationStatusDeclined}, nil
			}
			Expect(svc.Decline(ctx, "tok")).To(Succeed())
			Expect(events.names()).To(ConsistOf(service.EventInvitationDeclined))
		})
	})

	Describe("Revoke", func() {
		It("returns NotFound for an unknown invitation", func() {
			_, err := svc.Revoke(ctx, adminID, 9)
			Expect(err).To(MatchError(service.ErrInvitationNotFound))
		})

		It("requires ADMIN on the invitation's org", func() {
			invitations.getByIDFn = func(context.Context, int64) (*model.Invitation, error) {
				return &model.Invitation{ID: 9, OrgID: orgID}, nil
			}
			_, err := svc.Revoke(ctx, userID, 9)
			Expect(err).To(MatchError(service.ErrForbidden))
		})
	})

	Describe("Resend", func() {
		It("requires ADMIN", func() {
			invitations.getByIDFn = func(context.Context, int64) (*model.Invitation, error) {
				return &model.Invitation{ID: 9, OrgID: orgID}, nil
			}
			_, err := svc.Resend(ctx, userID, 9)
			Expect(err).To(MatchError(service.ErrForbidden))
			Expect(invitations.rotateCalls).To(BeZero())
		})

		It("rotates the token, keeps the role and dispatches again", func() {
			invitations.getByIDFn = func(context.Context, int64) (*model.Invitation, error) {
				return &model.Invitation{ID: 9, OrgID: orgID, Token: "old", Role: model.RoleAdmin, Status: model.InvitationStatusDeclined}, nil
			}

			res, err := svc.Resend(ctx, adminID, 9)
			Expect(err).NotTo(HaveOccurred())
			Expect(res.Invitation.Token).NotTo(Equal("old"))
			Expect(res.Invitation.Role).To(Equal(model.RoleAdmin))
			Expect(res.Invitation.Status).To(Equal(model.InvitationStatusPending))
			Expect(res.InviteURL).To(HavePrefix(siteURL + "/invite?token="))
			Expect(dispatcher.dispatched).To(HaveLen(1))
			Expect(events.names()).To(ConsistOf(service.EventInvitationResent))
		})
	})
})

var _ = Describe("Invitation lifecycle", func() {
	var (
		ctx     context.Context
		db      *memDB
		orgSvc  service.OrganizationService
		invSvc  service.InvitationService
		ownerID int64
		bobID   int64
	)

	BeforeEach(func() {
		ctx = context.Background()
		db = newMemDB()
		tx := &memTxRunner{db: db}
		guard := service.NewAccessGuard(db.Memberships())
		orgSvc = service.NewOrganizationService(db.Organizations(), db.Profiles(), db.Memberships(), guard, tx)
		invSvc = service.NewInvitationService(
			db.Invitations(),
			db.Organizations(),
			db.Profiles(),
			guard,
			tx,
			&mockDispatcher{},
			nil,
			siteURL,
		)
		ownerID, bobID = 1, 2
	})

	tokenOf := func(res *service.IssuedInvitation) string {
		return res.Invitation.Token
	}

	It("runs the Acme scenario: create, invite, accept, re-accept conflicts", func() {
		org, err := orgSvc.Create(ctx, ownerID, "owner@acme.test", "Acme")
		Expect(err).NotTo(HaveOccurred())

		invite, err := invSvc.Create(ctx, ownerID, org.ID, "bob@acme.test", model.RoleMember)
		Expect(err).NotTo(HaveOccurred())

		m, err := invSvc.Accept(ctx, tokenOf(invite), bobID, "bob@acme.test")
		Expect(err).NotTo(HaveOccurred())
		Expect(m.Role).To(Equal(model.RoleMember))

		_, err = invSvc.Accept(ctx, tokenOf(invite), bobID, "bob@acme.test")
		Expect(err).To(MatchError(service.ErrInvitationProcessed))
		Expect(service.KindOf(err)).To(Equal(service.KindConflict))

		Expect(db.membershipCount(org.ID)).To(Equal(2))
		ok, err := service.NewAccessGuard(db.Memberships()).HasRole(ctx, bobID, org.ID, model.RoleMember)
		Expect(err).NotTo(HaveOccurred())
		Expect(ok).To(BeTrue())
	})

	It("keeps at most one pending invitation per org and email", func() {
		org, err := orgSvc.Create(ctx, ownerID, "owner@acme.test", "Acme")
		Expect(err).NotTo(HaveOccurred())

		first, err := invSvc.Create(ctx, ownerID, org.ID, "bob@acme.test", model.RoleMember)
		Expect(err).NotTo(HaveOccurred())

		_, err = invSvc.Create(ctx, ownerID, org.ID, "BOB@acme.test", model.RoleAdmin)
		Expect(err).To(MatchError(service.ErrInvitationExists))

		Expect(invSvc.Decline(ctx, tokenOf(first))).To(Succeed())

		again, err := invSvc.Create(ctx, ownerID, org.ID, "bob@acme.test", model.RoleAdmin)
		Expect(err).NotTo(HaveOccurred())
		Expect(again.Invitation.ID).To(Equal(first.Invitation.ID))
		Expect(again.Invitation.Role).To(Equal(model.RoleAdmin))
		Expect(tokenOf(again)).NotTo(Equal(tokenOf(first)))
		Expect(db.invitationCount()).To(Equal(1))

		_, err = invSvc.Accept(ctx, tokenOf(first), bobID, "")
		Expect(err).To(MatchError(service.ErrInvitationNotFound))
	})

	It("treats a second decline as a no-op and then rejects acceptance", func() {
		org, _ := orgSvc.Create(ctx, ownerID, "owner@acme.test", "Acme")
		invite, err := invSvc.Create(ctx, ownerID, org.ID, "bob@acme.test", "")
		Expect(err).NotTo(HaveOccurred())

		Expect(invSvc.Decline(ctx, tokenOf(invite))).To(Succeed())
		Expect(invSvc.Decline(ctx, tokenOf(invite))).To(Succeed())

		info, err := invSvc.GetInfo(ctx, tokenOf(invite))
		Expect(err).NotTo(HaveOccurred())
		Expect(info.Status).To(Equal(model.InvitationStatusDeclined))

		_, err = invSvc.Accept(ctx, tokenOf(invite), bobID, "")
		Expect(err).To(MatchError(service.ErrInvitationProcessed))
		Expect(db.membershipCount(org.ID)).To(Equal(1))
	})

	It("revokes an accepted invitation and resend reopens it", func() {
		org, _ := orgSvc.Create(ctx, ownerID, "owner@acme.test", "Acme")
		invite, _ := invSvc.Create(ctx, ownerID, org.ID, "bob@acme.test", model.RoleViewer)
		_, err := invSvc.Accept(ctx, tokenOf(invite), bobID, "bob@acme.test")
		Expect(err).NotTo(HaveOccurred())

		revoked, err := invSvc.Revoke(ctx, ownerID, invite.Invitation.ID)
		Expect(err).NotTo(HaveOccurred())
		Expect(revoked.Status).To(Equal(model.InvitationStatusDeclined))

		resent, err := invSvc.Resend(ctx, ownerID, invite.Invitation.ID)
		Expect(err).NotTo(HaveOccurred())
		Expect(resent.Invitation.Status).To(Equal(model.InvitationStatusPending))
		Expect(resent.Invitation.Role).To(Equal(model.RoleViewer))

		_, err = invSvc.Accept(ctx, tokenOf(resent), bobID, "")
		Expect(err).To(MatchError(service.ErrAlreadyMember))
	})

	It("rolls back the membership when acceptance fails late", func() {
		org, _ := orgSvc.Create(ctx, ownerID, "owner@acme.test", "Acme")
		invite, _ := invSvc.Create(ctx, ownerID, org.ID, "bob@acme.test", model.RoleMember)

		failing := &failingAcceptStore{InvitationStore: db.Invitations()}
		tx := &memTxRunner{db: db}
		svc := service.NewInvitationService(failing, db.Organizations(), db.Profiles(),
			service.NewAccessGuard(db.Memberships()), &overrideTx{inner: tx, invitations: failing}, nil, nil, siteURL)

		_, err := svc.Accept(ctx, tokenOf(invite), bobID, "")
		Expect(err).To(HaveOccurred())
		Expect(db.membershipCount(org.ID)).To(Equal(1))
	})

	It("lets exactly one of many concurrent accepts win", func() {
		org, _ := orgSvc.Create(ctx, ownerID, "owner@acme.test", "Acme")
		invite, _ := invSvc.Create(ctx, ownerID, org.ID, "bob@acme.test", model.RoleMember)

		const racers = 8
		var (
			wg        sync.WaitGroup
			mu        sync.Mutex
			successes int
			conflicts int
		)
		for i := 0; i < racers; i++ {
			wg.Add(1)
			go func() {
				defer GinkgoRecover()
				defer wg.Done()
				_, err := invSvc.Accept(ctx, tokenOf(invite), bobID, "bob@acme.test")
				mu.Lock()
				defer mu.Unlock()
				if err == nil {
					successes++
				} else if service.KindOf(err) == service.KindConflict {
					conflicts++
				}
			}()
		}
		wg.Wait()

		Expect(successes).To(Equal(1))
		Expect(conflicts).To(Equal(racers - 1))
		Expect(db.membershipCount(org.ID)).To(Equal(2))
	})
})

// failingAcceptStore fails the final status update so the transaction must roll back.
type failingAcceptStore struct {
	store.InvitationStore
}

func (f *failingAcceptStore) Accept(context.Context, int64, int64) (*model.Invitation, error) {
	return nil, errors.New("connection reset")
}

type overrideTx struct {
	inner       *memTxRunner
	invitations store.InvitationStore
}

func (o *overrideTx) WithTx(ctx context.Context, fn func(stores service.StoreProvider) error) error {
	return o.inner.WithTx(ctx, func(sp service.StoreProvider) error {
		return fn(&mockStoreProvider{
			orgs:        sp.Organizations(),
			profiles:    sp.Profiles(),
			memberships: sp.Memberships(),
			invitations: o.invitations,
		})
	})
}
