package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	contactUC "github.com/khoahotran/portfolio/internal/application/usecase/contact"
	"github.com/khoahotran/portfolio/pkg/apperror"
	"github.com/khoahotran/portfolio/pkg/logger"
)

const contactSubmittedMessage = "Contact form submitted successfully"

type ContactHandler struct {
	submitContactUseCase *contactUC.SubmitContactUseCase
	logger               logger.Logger
}

func NewContactHandler(uc *contactUC.SubmitContactUseCase, log logger.Logger) *ContactHandler {
	return &ContactHandler{
		submitContactUseCase: uc,
		logger:               log,
	}
}

func (h *ContactHandler) SubmitContact(c *gin.Context) {
	var req ContactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		appErr := apperror.NewInvalidInput("invalid JSON body for contact form", err)
		c.Error(appErr)
		return
	}

	output, err := h.submitContactUseCase.Execute(c.Request.Context(), req.ToInput())
	if err != nil {
		c.Error(err)
		return
	}

	h.logger.Info("Contact form submitted", zap.String("contact_id", output.ID))
	c.JSON(http.StatusOK, ContactResponse{
		Message: contactSubmittedMessage,
		ID:      output.ID,
	})
}
