// internal/api/handlers/optimize_handler.go
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ternaklab/farmstock/internal/service"
)

type OptimizationHandler struct {
	service *service.OptimizationService
}

func NewOptimizationHandler(service *service.OptimizationService) *OptimizationHandler {
	return &OptimizationHandler{service: service}
}

func (h *OptimizationHandler) GetOptimization(c *gin.Context) {
	report, err := h.service.Run(c.Request.Context())
	if err != nil {
		respondEngineError(c, err)
		return
	}

	c.JSON(http.StatusOK, report)
}

func (h *OptimizationHandler) GetClassification(c *gin.Context) {
	entries, err := h.service.GetClassification(c.Request.Context())
	if err != nil {
		respondEngineError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"items": entries})
}
