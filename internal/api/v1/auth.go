package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/jurisflow/jurisflow/internal/api/dto"
	ierr "github.com/jurisflow/jurisflow/internal/errors"
	"github.com/jurisflow/jurisflow/internal/logger"
	"github.com/jurisflow/jurisflow/internal/service"
)

type AuthHandler struct {
	onboarding service.OnboardingService
	log        *logger.Logger
}

func NewAuthHandler(onboarding service.OnboardingService, log *logger.Logger) *AuthHandler {
	return &AuthHandler{
		onboarding: onboarding,
		log:        log,
	}
}

func (h *AuthHandler) SignUp(c *gin.Context) {
	var req dto.SignUpRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(ierr.WithError(err).
			WithHint("Invalid request format").
			Mark(ierr.ErrValidation))
		return
	}

	resp, err := h.onboarding.SignUp(c.Request.Context(), &req)
	if err != nil {
		c.Error(err)
		return
	}

	status := http.StatusCreated
	if !resp.IsNewUser {
		status = http.StatusOK
	}
	c.JSON(status, resp)
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(ierr.WithError(err).
			WithHint("Invalid request format").
			Mark(ierr.ErrValidation))
		return
	}

	resp, err := h.onboarding.Login(c.Request.Context(), &req)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}
