package service_test

import (
	"context"
	"errors"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"basegraph.app/roster/internal/model"
	"basegraph.app/roster/internal/notification"
	"basegraph.app/roster/internal/queue"
	"basegraph.app/roster/internal/service"
)

type recordingTransport struct {
	sendErr error
	sent    []notification.Message
}

func (r *recordingTransport) Send(_ context.Context, msg notification.Message) error {
	if r.sendErr != nil {
		return r.sendErr
	}
	r.sent = append(r.sent, msg)
	return nil
}

var _ = Describe("NotificationDispatcher", func() {
	var (
		ctx context.Context
		inv *model.Invitation
	)

	BeforeEach(func() {
		ctx = context.Background()
		inv = &model.Invitation{
			ID:        9,
			OrgID:     100,
			Email:     "bob@acme.test",
			Role:      model.RoleAdmin,
			Token:     "raw-token",
			Status:    model.InvitationStatusPending,
			ExpiresAt: time.Now().Add(time.Hour),
		}
	})

	Describe("sync", func() {
		It("renders and sends the invitation", func() {
			transport := &recordingTransport{}
			d := service.NewSyncDispatcher(notification.NewRenderer(siteURL), transport)

			Expect(d.DispatchInvitation(ctx, inv, "Acme")).To(Succeed())
			Expect(transport.sent).To(HaveLen(1))
			msg := transport.sent[0]
			Expect(msg.To).To(Equal("bob@acme.test"))
			Expect(msg.Subject).To(ContainSubstring("Acme"))
			Expect(msg.Text).To(ContainSubstring(notification.InviteURL(siteURL, "raw-token")))
		})

		It("surfaces transport errors", func() {
			transport := &recordingTransport{sendErr: errors.New("relay refused")}
			d := service.NewSyncDispatcher(notification.NewRenderer(siteURL), transport)

			Expect(d.DispatchInvitation(ctx, inv, "Acme")).To(MatchError(ContainSubstring("relay refused")))
		})
	})

	Describe("queued", func() {
		It("enqueues a digest of the token, never the token", func() {
			producer := &mockProducer{}
			d := service.NewQueuedDispatcher(producer)

			Expect(d.DispatchInvitation(ctx, inv, "Acme")).To(Succeed())
			Expect(producer.tasks).To(HaveLen(1))
			task := producer.tasks[0]
			Expect(task.TaskType).To(Equal(queue.TaskTypeInvitationEmail))
			Expect(task.InvitationID).To(Equal(int64(9)))
			Expect(task.TokenDigest).To(Equal(queue.TokenDigest("raw-token")))
			Expect(task.TokenDigest).NotTo(ContainSubstring("raw-token"))
		})

		It("surfaces enqueue errors", func() {
			producer := &mockProducer{enqueueFn: func(context.Context, queue.Task) error {
				return errors.New("redis down")
			}}
			d := service.NewQueuedDispatcher(producer)

			Expect(d.DispatchInvitation(ctx, inv, "Acme")).To(MatchError(ContainSubstring("redis down")))
		})
	})
})
