package router

import (
	"github.com/gin-gonic/gin"

	"basegraph.app/roster/internal/http/handler"
)

func OrganizationRouter(rg *gin.RouterGroup, h *handler.OrganizationHandler) {
	rg.GET("", h.List)
	rg.POST("", h.Create)
	rg.POST("/switch", h.Switch)
	rg.GET("/:orgId", h.Get)
	rg.PATCH("/:orgId", h.Rename)
	rg.GET("/:orgId/members", h.ListMembers)
	rg.DELETE("/:orgId/members/:userId", h.RemoveMember)
	rg.DELETE("/:orgId/membership", h.Leave)
}
