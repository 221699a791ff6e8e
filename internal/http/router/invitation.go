package router

import (
	"github.com/gin-gonic/gin"

	"basegraph.app/roster/internal/http/handler"
	"basegraph.app/roster/internal/http/middleware"
	"basegraph.app/roster/internal/ratelimit"
)

// InvitationRouter mounts the invitation routes.
// - /invitation-info is public so the invite page can render before sign-in
// - everything else requires an authenticated caller
// - rate-limited routes count the request before the session lookup
func InvitationRouter(rg *gin.RouterGroup, h *handler.InvitationHandler, requireAuth gin.HandlerFunc, limiter *ratelimit.Limiter) {
	rg.GET("/invitation-info", middleware.RateLimit(limiter, ratelimit.TierLiberal), h.Info)

	rg.POST("/invitations", middleware.RateLimit(limiter, ratelimit.TierStrict), requireAuth, h.Create)
	rg.GET("/invitations", middleware.RateLimit(limiter, ratelimit.TierNormal), requireAuth, h.List)

	authed := rg.Group("", requireAuth)
	{
		authed.PATCH("/invitations/:id", h.Update)
		authed.DELETE("/invitations/:id", h.Revoke)
		authed.POST("/invitation-actions", h.Act)
	}
}
