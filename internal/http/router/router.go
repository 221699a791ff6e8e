package router

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"basegraph.app/roster/internal/http/handler"
	"basegraph.app/roster/internal/http/middleware"
	"basegraph.app/roster/internal/ratelimit"
	"basegraph.app/roster/internal/service"
)

type RouterConfig struct {
	Version       string
	DashboardURL  string
	CookieDomain  string
	SecureCookies bool
	SessionTTL    time.Duration
}

func SetupRoutes(router *gin.Engine, services *service.Services, limiter *ratelimit.Limiter, cfg RouterConfig) {
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "version": cfg.Version})
	})

	auth := services.Auth()
	tokens := services.Tokens()
	requireAuth := middleware.RequireAuth(auth, tokens)
	optionalAuth := middleware.OptionalAuth(auth, tokens)

	authHandler := handler.NewAuthHandler(auth, tokens, handler.AuthHandlerConfig{
		DashboardURL:  cfg.DashboardURL,
		CookieDomain:  cfg.CookieDomain,
		SecureCookies: cfg.SecureCookies,
		SessionTTL:    cfg.SessionTTL,
	})
	AuthRouter(router.Group("/auth"), authHandler, requireAuth)

	v1 := router.Group("/api/v1")
	{
		invitationHandler := handler.NewInvitationHandler(services.Invitations())
		InvitationRouter(v1, invitationHandler, requireAuth, limiter)

		orgHandler := handler.NewOrganizationHandler(services.Organizations(), services.Memberships())
		OrganizationRouter(v1.Group("/orgs", requireAuth), orgHandler)

		analyticsHandler := handler.NewAnalyticsHandler(services.Analytics())
		v1.POST("/analytics/events", optionalAuth, middleware.RateLimit(limiter, ratelimit.TierLiberal), analyticsHandler.Track)

		onboardingHandler := handler.NewOnboardingHandler(services.Onboarding())
		v1.GET("/onboarding", requireAuth, onboardingHandler.Get)
		v1.POST("/onboarding", requireAuth, onboardingHandler.Mark)

		profileHandler := handler.NewProfileHandler(services.Profiles())
		v1.GET("/profile", requireAuth, profileHandler.Get)
		v1.PATCH("/profile", requireAuth, profileHandler.Update)
	}
}
