package router_test

import (
	"net/http"
	"net/http/httptest"

	"github.com/gin-gonic/gin"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"basegraph.app/roster/core/config"
	"basegraph.app/roster/internal/http/handler"
	"basegraph.app/roster/internal/http/router"
	"basegraph.app/roster/internal/ratelimit"
)

var _ = Describe("InvitationRouter", func() {
	var (
		engine    *gin.Engine
		authCalls int
	)

	BeforeEach(func() {
		authCalls = 0
		requireAuth := func(c *gin.Context) {
			authCalls++
			c.AbortWithStatus(http.StatusUnauthorized)
		}
		limiter := ratelimit.NewLimiter(ratelimit.NewMemoryStore(nil), config.RateLimitConfig{})

		engine = gin.New()
		router.InvitationRouter(engine.Group("/api/v1"), handler.NewInvitationHandler(nil), requireAuth, limiter)
	})

	hit := func(method string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(method, "/api/v1/invitations", nil)
		req.RemoteAddr = "10.0.0.9:40000"
		w := httptest.NewRecorder()
		engine.ServeHTTP(w, req)
		return w
	}

	It("throttles unauthenticated creates before the session lookup", func() {
		for range 5 {
			Expect(hit(http.MethodPost).Code).To(Equal(http.StatusUnauthorized))
		}

		w := hit(http.MethodPost)
		Expect(w.Code).To(Equal(http.StatusTooManyRequests))
		Expect(authCalls).To(Equal(5))
	})

	It("counts list requests against the normal tier", func() {
		w := hit(http.MethodGet)
		Expect(w.Code).To(Equal(http.StatusUnauthorized))
		Expect(w.Header().Get("X-RateLimit-Limit")).To(Equal("100"))
		Expect(authCalls).To(Equal(1))
	})
})
