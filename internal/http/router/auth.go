package router

import (
	"github.com/gin-gonic/gin"

	"basegraph.app/roster/internal/http/handler"
)

func AuthRouter(rg *gin.RouterGroup, h *handler.AuthHandler, requireAuth gin.HandlerFunc) {
	rg.GET("/login", h.Login)
	rg.GET("/callback", h.Callback)
	rg.POST("/logout", h.Logout)
	rg.GET("/me", requireAuth, h.Me)
	rg.POST("/token", requireAuth, h.Token)
}
