package handler_test

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"basegraph.app/roster/internal/http/handler"
	"basegraph.app/roster/internal/http/middleware"
	"basegraph.app/roster/internal/model"
	"basegraph.app/roster/internal/service"
)

var _ = Describe("InvitationHandler", func() {
	var (
		router *gin.Engine
		svc    *mockInvitationService
		caller *middleware.Identity
	)

	expiresAt := time.Date(2026, 3, 8, 12, 0, 0, 0, time.UTC)

	BeforeEach(func() {
		svc = &mockInvitationService{}
		caller = &middleware.Identity{UserID: 1234567890123456789, Email: "admin@acme.test"}
	})

	JustBeforeEach(func() {
		h := handler.NewInvitationHandler(svc)
		router = gin.New()
		authed := router.Group("", withCaller(caller))
		authed.GET("/invitation-info", h.Info)
		authed.POST("/invitations", h.Create)
		authed.GET("/invitations", h.List)
		authed.PATCH("/invitations/:id", h.Update)
		authed.DELETE("/invitations/:id", h.Revoke)
		authed.POST("/invitation-actions", h.Act)
	})

	Describe("Create", func() {
		It("returns 201 with string ids and the invite link", func() {
			var gotActor, gotOrg int64
			var gotRole model.Role
			svc.createFn = func(_ context.Context, actorID, orgID int64, email string, role model.Role) (*service.IssuedInvitation, error) {
				gotActor, gotOrg, gotRole = actorID, orgID, role
				return &service.IssuedInvitation{
					Invitation: &model.Invitation{
						ID:        9007199254740993,
						OrgID:     orgID,
						Email:     email,
						Role:      role,
						Status:    model.InvitationStatusPending,
						ExpiresAt: expiresAt,
						CreatedAt: expiresAt.Add(-7 * 24 * time.Hour),
					},
					OrgName:   "Acme",
					InviteURL: "https://roster.test/invite?token=abc",
				}, nil
			}

			w := doJSON(router, http.MethodPost, "/invitations", `{"orgId":"9007199254740995","email":"carol@acme.test","role":"MEMBER"}`)
			Expect(w.Code).To(Equal(http.StatusCreated))
			Expect(gotActor).To(Equal(caller.UserID))
			Expect(gotOrg).To(Equal(int64(9007199254740995)))
			Expect(gotRole).To(Equal(model.RoleMember))

			body := decode(w)
			Expect(body["id"]).To(Equal("9007199254740993"))
			Expect(body["orgId"]).To(Equal("9007199254740995"))
			Expect(body["orgName"]).To(Equal("Acme"))
			Expect(body["status"]).To(Equal("PENDING"))
			Expect(body["expiresAt"]).To(Equal("2026-03-08T12:00:00Z"))
			Expect(body["inviteUrl"]).To(Equal("https://roster.test/invite?token=abc"))
			Expect(body).NotTo(HaveKey("token"))
		})

		It("accepts a numeric orgId", func() {
			var gotOrg int64
			svc.createFn = func(_ context.Context, _, orgID int64, email string, role model.Role) (*service.IssuedInvitation, error) {
				gotOrg = orgID
				return &service.IssuedInvitation{
					Invitation: &model.Invitation{ID: 1, OrgID: orgID, Email: email, Role: role, Status: model.InvitationStatusPending, ExpiresAt: expiresAt},
				}, nil
			}

			w := doJSON(router, http.MethodPost, "/invitations", `{"orgId":123,"email":"carol@acme.test"}`)
			Expect(w.Code).To(Equal(http.StatusCreated))
			Expect(gotOrg).To(Equal(int64(123)))
		})

		It("rejects a body without orgId", func() {
			w := doJSON(router, http.MethodPost, "/invitations", `{"email":"carol@acme.test"}`)
			Expect(w.Code).To(Equal(http.StatusBadRequest))
			Expect(decode(w)["code"]).To(Equal("invalid_request"))
		})

		Context("without a caller", func() {
			BeforeEach(func() {
				caller = nil
			})

			It("returns 401 before reaching the service", func() {
				called := false
				svc.createFn = func(context.Context, int64, int64, string, model.Role) (*service.IssuedInvitation, error) {
					called = true
					return nil, errors.New("unreachable")
				}
				w := doJSON(router, http.MethodPost, "/invitations", `{"orgId":"1","email":"carol@acme.test"}`)
				Expect(w.Code).To(Equal(http.StatusUnauthorized))
				Expect(called).To(BeFalse())
			})
		})

		DescribeTable("maps service errors to statuses",
			func(err error, status int) {
				svc.createFn = func(context.Context, int64, int64, string, model.Role) (*service.IssuedInvitation, error) {
					return nil, err
				}
				w := doJSON(router, http.MethodPost, "/invitations", `{"orgId":"1","email":"carol@acme.test"}`)
				Expect(w.Code).To(Equal(status))
			},
			Entry("invalid email", service.ErrInvalidEmail, http.StatusBadRequest),
			Entry("forbidden", service.ErrForbidden, http.StatusForbidden),
			Entry("org missing", service.ErrOrganizationNotFound, http.StatusNotFound),
			Entry("already member", service.ErrAlreadyMember, http.StatusConflict),
			Entry("pending exists", service.ErrInvitationExists, http.StatusConflict),
			Entry("untyped failure", errors.New("db down"), http.StatusInternalServerError),
		)

		It("hides internal error details", func() {
			svc.createFn = func(context.Context, int64, int64, string, model.Role) (*service.IssuedInvitation, error) {
				return nil, errors.New("pq: connection refused")
			}
			w := doJSON(router, http.MethodPost, "/invitations", `{"orgId":"1","email":"carol@acme.test"}`)
			Expect(w.Body.String()).NotTo(ContainSubstring("pq"))
		})
	})

	Describe("List", func() {
		It("requires orgId", func() {
			w := doJSON(router, http.MethodGet, "/invitations", nil)
			Expect(w.Code).To(Equal(http.StatusBadRequest))
		})

		It("returns the pending invitations", func() {
			svc.listFn = func(_ context.Context, _ int64, orgID int64) ([]model.InvitationWithOrg, error) {
				Expect(orgID).To(Equal(int64(77)))
				return []model.InvitationWithOrg{
					{Invitation: model.Invitation{ID: 1, OrgID: 77, Email: "a@acme.test", Role: model.RoleViewer, Status: model.InvitationStatusPending, ExpiresAt: expiresAt}, OrgName: "Acme"},
				}, nil
			}

			w := doJSON(router, http.MethodGet, "/invitations?orgId=77", nil)
			Expect(w.Code).To(Equal(http.StatusOK))
			items := decode(w)["invitations"].([]any)
			Expect(items).To(HaveLen(1))
			Expect(items[0].(map[string]any)["orgName"]).To(Equal("Acme"))
		})
	})

	Describe("Info", func() {
		BeforeEach(func() {
			caller = nil
		})

		It("is public and exposes only the summary", func() {
			svc.getInfoFn = func(_ context.Context, token string) (*model.InvitationWithOrg, error) {
				Expect(token).To(Equal("tok"))
				return &model.InvitationWithOrg{
					Invitation: model.Invitation{Email: "carol@acme.test", Role: model.RoleAdmin, Status: model.InvitationStatusPending, ExpiresAt: expiresAt},
					OrgName:    "Acme",
				}, nil
			}

			w := doJSON(router, http.MethodGet, "/invitation-info?token=tok", nil)
			Expect(w.Code).To(Equal(http.StatusOK))
			body := decode(w)
			Expect(body["orgName"]).To(Equal("Acme"))
			Expect(body["roleLabel"]).To(Equal("Administrator"))
			Expect(body).NotTo(HaveKey("email"))
		})

		It("returns 404 for an unknown token", func() {
			w := doJSON(router, http.MethodGet, "/invitation-info?token=nope", nil)
			Expect(w.Code).To(Equal(http.StatusNotFound))
		})
	})

	Describe("Act", func() {
		It("accepts by default", func() {
			var gotEmail string
			svc.acceptFn = func(_ context.Context, token string, actorID int64, email string) (*model.Membership, error) {
				gotEmail = email
				return &model.Membership{ID: 5, UserID: actorID, OrgID: 77, Role: model.RoleMember}, nil
			}

			w := doJSON(router, http.MethodPost, "/invitation-actions", `{"token":"tok"}`)
			Expect(w.Code).To(Equal(http.StatusOK))
			Expect(gotEmail).To(Equal("admin@acme.test"))
			body := decode(w)
			Expect(body["action"]).To(Equal("accept"))
			Expect(body["membership"].(map[string]any)["orgId"]).To(Equal("77"))
		})

		It("declines without creating a membership", func() {
			declined := false
			svc.declineFn = func(context.Context, string) error {
				declined = true
				return nil
			}
			svc.acceptFn = func(context.Context, string, int64, string) (*model.Membership, error) {
				Fail("accept must not be called")
				return nil, nil
			}

			w := doJSON(router, http.MethodPost, "/invitation-actions", `{"token":"tok","action":"DECLINE"}`)
			Expect(w.Code).To(Equal(http.StatusOK))
			Expect(declined).To(BeTrue())
			Expect(decode(w)).NotTo(HaveKey("membership"))
		})

		It("requires a token", func() {
			w := doJSON(router, http.MethodPost, "/invitation-actions", `{}`)
			Expect(w.Code).To(Equal(http.StatusBadRequest))
		})

		DescribeTable("maps accept failures",
			func(err error, status int) {
				svc.acceptFn = func(context.Context, string, int64, string) (*model.Membership, error) {
					return nil, err
				}
				w := doJSON(router, http.MethodPost, "/invitation-actions", `{"token":"tok"}`)
				Expect(w.Code).To(Equal(status))
			},
			Entry("unknown", service.ErrInvitationNotFound, http.StatusNotFound),
			Entry("processed", service.ErrInvitationProcessed, http.StatusConflict),
			Entry("expired", service.ErrInvitationExpired, http.StatusGone),
			Entry("already member", service.ErrAlreadyMember, http.StatusConflict),
		)
	})

	Describe("Update", func() {
		It("only supports resend", func() {
			w := doJSON(router, http.MethodPatch, "/invitations/12", `{"action":"accept"}`)
			Expect(w.Code).To(Equal(http.StatusBadRequest))
		})

		It("resends with a fresh invite link", func() {
			svc.resendFn = func(_ context.Context, _ int64, id int64) (*service.IssuedInvitation, error) {
				return &service.IssuedInvitation{
					Invitation: &model.Invitation{ID: id, OrgID: 77, Status: model.InvitationStatusPending, ExpiresAt: expiresAt},
					InviteURL:  "https://roster.test/invite?token=fresh",
				}, nil
			}

			w := doJSON(router, http.MethodPatch, "/invitations/12", `{"action":"resend"}`)
			Expect(w.Code).To(Equal(http.StatusOK))
			Expect(decode(w)["inviteUrl"]).To(Equal("https://roster.test/invite?token=fresh"))
		})

		It("rejects a malformed id", func() {
			w := doJSON(router, http.MethodPatch, "/invitations/abc", `{"action":"resend"}`)
			Expect(w.Code).To(Equal(http.StatusBadRequest))
		})
	})

	Describe("Revoke", func() {
		It("returns the declined invitation", func() {
			svc.revokeFn = func(_ context.Context, _ int64, id int64) (*model.Invitation, error) {
				return &model.Invitation{ID: id, OrgID: 77, Status: model.InvitationStatusDeclined, ExpiresAt: expiresAt}, nil
			}

			w := doJSON(router, http.MethodDelete, "/invitations/12", nil)
			Expect(w.Code).To(Equal(http.StatusOK))
			Expect(decode(w)["status"]).To(Equal("DECLINED"))
		})

		It("returns 403 for a non-admin", func() {
			svc.revokeFn = func(context.Context, int64, int64) (*model.Invitation, error) {
				return nil, service.ErrForbidden
			}
			w := doJSON(router, http.MethodDelete, "/invitations/12", nil)
			Expect(w.Code).To(Equal(http.StatusForbidden))
		})
	})
})
