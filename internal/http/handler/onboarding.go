package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"basegraph.app/roster/internal/http/dto"
	"basegraph.app/roster/internal/model"
	"basegraph.app/roster/internal/service"
)

type OnboardingHandler struct {
	onboarding service.OnboardingService
}

func NewOnboardingHandler(onboarding service.OnboardingService) *OnboardingHandler {
	return &OnboardingHandler{onboarding: onboarding}
}

func (h *OnboardingHandler) Get(c *gin.Context) {
	identity, ok := requireIdentity(c)
	if !ok {
		return
	}

	status, err := h.onboarding.GetStatus(c.Request.Context(), identity.UserID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToOnboardingResponse(status))
}

// Mark records one step. value defaults to true.
func (h *OnboardingHandler) Mark(c *gin.Context) {
	identity, ok := requireIdentity(c)
	if !ok {
		return
	}

	var req dto.MarkOnboardingStepRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "step is required")
		return
	}

	status, err := h.onboarding.MarkStep(c.Request.Context(), identity.UserID, model.OnboardingStep(req.Step), req.Done())
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToOnboardingResponse(status))
}
