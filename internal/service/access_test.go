package service_test

import (
	"context"
	"errors"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"basegraph.app/roster/internal/model"
	"basegraph.app/roster/internal/service"
)

var _ = Describe("AccessGuard", func() {
	var (
		ctx         context.Context
		memberships *mockMembershipStore
		guard       service.AccessGuard
	)

	const orgID = int64(100)

	BeforeEach(func() {
		ctx = context.Background()
		memberships = &mockMembershipStore{getFn: membershipRoles(map[int64]model.Role{
			1: model.RoleOwner,
			2: model.RoleAdmin,
			3: model.RoleMember,
			4: model.RoleViewer,
		})}
		guard = service.NewAccessGuard(memberships)
	})

	Describe("GetRole", func() {
		It("returns the stored role", func() {
			role, ok, err := guard.GetRole(ctx, 2, orgID)
			Expect(err).NotTo(HaveOccurred())
			Expect(ok).To(BeTrue())
			Expect(role).To(Equal(model.RoleAdmin))
		})

		It("reports absence without an error", func() {
			role, ok, err := guard.GetRole(ctx, 99, orgID)
			Expect(err).NotTo(HaveOccurred())
			Expect(ok).To(BeFalse())
			Expect(role).To(BeEmpty())
		})

		It("propagates store failures", func() {
			memberships.getFn = func(context.Context, int64, int64) (*model.Membership, error) {
				return nil, errors.New("db down")
			}
			_, _, err := guard.GetRole(ctx, 1, orgID)
			Expect(err).To(MatchError(ContainSubstring("db down")))
		})
	})

	DescribeTable("HasRole with MEMBER minimum holds iff rank >= 2",
		func(userID int64, want bool) {
			ok, err := guard.HasRole(ctx, userID, orgID, model.RoleMember)
			Expect(err).NotTo(HaveOccurred())
			Expect(ok).To(Equal(want))
		},
		Entry("owner", int64(1), true),
		Entry("admin", int64(2), true),
		Entry("member", int64(3), true),
		Entry("viewer", int64(4), false),
		Entry("not a member", int64(99), false),
	)

	Describe("AssertMember", func() {
		It("returns the caller's role when sufficient", func() {
			role, err := guard.AssertMember(ctx, 1, orgID, model.RoleAdmin)
			Expect(err).NotTo(HaveOccurred())
			Expect(role).To(Equal(model.RoleOwner))
		})

		It("denies an insufficient role with Forbidden", func() {
			_, err := guard.AssertMember(ctx, 3, orgID, model.RoleAdmin)
			Expect(err).To(MatchError(service.ErrForbidden))
			Expect(service.KindOf(err)).To(Equal(service.KindForbidden))
		})

		It("denies non-members with Forbidden", func() {
			_, err := guard.AssertMember(ctx, 99, orgID, model.RoleViewer)
			Expect(err).To(MatchError(service.ErrForbidden))
		})

		It("never writes", func() {
			_, _ = guard.AssertMember(ctx, 1, orgID, model.RoleViewer)
			Expect(memberships.createCalls).To(BeZero())
			Expect(memberships.deleteCalls).To(BeZero())
		})
	})
})
