package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	portfolioUC "github.com/khoahotran/portfolio/internal/application/usecase/portfolio"
	"github.com/khoahotran/portfolio/pkg/logger"
)

const jsonContentType = "application/json; charset=utf-8"

type PortfolioHandler struct {
	portfolioUseCase *portfolioUC.PortfolioUseCase
	logger           logger.Logger
}

func NewPortfolioHandler(uc *portfolioUC.PortfolioUseCase, log logger.Logger) *PortfolioHandler {
	return &PortfolioHandler{
		portfolioUseCase: uc,
		logger:           log,
	}
}

func (h *PortfolioHandler) GetPortfolio(c *gin.Context) {
	output, err := h.portfolioUseCase.ExecuteGetPortfolio(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, output.Portfolio)
}

// GetResume replays the stored document byte for byte.
func (h *PortfolioHandler) GetResume(c *gin.Context) {
	output, err := h.portfolioUseCase.ExecuteGetResume(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}

	c.Data(http.StatusOK, jsonContentType, output.Resume.Raw)
}
