package middleware_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"basegraph.app/roster/core/config"
	"basegraph.app/roster/internal/http/dto"
	"basegraph.app/roster/internal/http/middleware"
	"basegraph.app/roster/internal/ratelimit"
)

type failingStore struct{}

func (failingStore) Increment(context.Context, string, time.Duration) (ratelimit.Result, error) {
	return ratelimit.Result{}, errors.New("redis: connection refused")
}

var _ = Describe("RateLimit", func() {
	newRouter := func(limiter *ratelimit.Limiter, tier ratelimit.Tier) *gin.Engine {
		r := gin.New()
		r.POST("/invitations", middleware.RateLimit(limiter, tier), func(c *gin.Context) {
			c.Status(http.StatusCreated)
		})
		return r
	}

	hit := func(r *gin.Engine, ip string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/invitations", nil)
		req.RemoteAddr = ip + ":40000"
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		return w
	}

	It("rejects the sixth strict request in a window", func() {
		limiter := ratelimit.NewLimiter(ratelimit.NewMemoryStore(nil), config.RateLimitConfig{})
		r := newRouter(limiter, ratelimit.TierStrict)

		for i := range 5 {
			w := hit(r, "10.0.0.1")
			Expect(w.Code).To(Equal(http.StatusCreated))
			Expect(w.Header().Get("X-RateLimit-Limit")).To(Equal("5"))
			Expect(w.Header().Get("X-RateLimit-Remaining")).To(Equal(strconv.Itoa(4 - i)))
		}

		w := hit(r, "10.0.0.1")
		Expect(w.Code).To(Equal(http.StatusTooManyRequests))
		Expect(w.Header().Get("X-RateLimit-Remaining")).To(Equal("0"))

		retryAfter, err := strconv.Atoi(w.Header().Get("Retry-After"))
		Expect(err).NotTo(HaveOccurred())
		Expect(retryAfter).To(BeNumerically(">=", 1))
		Expect(retryAfter).To(BeNumerically("<=", 60))

		var body dto.ErrorResponse
		Expect(json.Unmarshal(w.Body.Bytes(), &body)).To(Succeed())
		Expect(body.Code).To(Equal("rate_limited"))
		Expect(*body.RetryAfter).To(Equal(retryAfter))

		_, err = time.Parse(time.RFC3339, w.Header().Get("X-RateLimit-Reset"))
		Expect(err).NotTo(HaveOccurred())
	})

	It("counts clients separately", func() {
		limiter := ratelimit.NewLimiter(ratelimit.NewMemoryStore(nil), config.RateLimitConfig{Strict: 1})
		r := newRouter(limiter, ratelimit.TierStrict)

		Expect(hit(r, "10.0.0.1").Code).To(Equal(http.StatusCreated))
		Expect(hit(r, "10.0.0.1").Code).To(Equal(http.StatusTooManyRequests))
		Expect(hit(r, "10.0.0.2").Code).To(Equal(http.StatusCreated))
	})

	It("lets requests through when the store fails", func() {
		limiter := ratelimit.NewLimiter(failingStore{}, config.RateLimitConfig{})
		w := hit(newRouter(limiter, ratelimit.TierStrict), "10.0.0.1")
		Expect(w.Code).To(Equal(http.StatusCreated))
		Expect(w.Header().Get("X-RateLimit-Limit")).To(BeEmpty())
	})

	It("is a no-op without a limiter", func() {
		Expect(hit(newRouter(nil, ratelimit.TierStrict), "10.0.0.1").Code).To(Equal(http.StatusCreated))
	})
})
