// internal/api/handlers/forecast_handler.go
package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/ternaklab/farmstock/internal/domain"
	"github.com/ternaklab/farmstock/internal/service"
)

type ForecastHandler struct {
	service *service.ForecastService
}

func NewForecastHandler(service *service.ForecastService) *ForecastHandler {
	return &ForecastHandler{service: service}
}

func (h *ForecastHandler) GetForecast(c *gin.Context) {
	itemID, ok := parseItemID(c)
	if !ok {
		return
	}

	horizon := 0
	if v, err := strconv.Atoi(c.DefaultQuery("horizon", "0")); err == nil && v > 0 {
		horizon = v
	}

	report, err := h.service.GetForecast(c.Request.Context(), itemID, horizon)
	if err != nil {
		respondEngineError(c, err)
		return
	}

	c.JSON(http.StatusOK, report)
}

func (h *ForecastHandler) GetReplenishment(c *gin.Context) {
	itemID, ok := parseItemID(c)
	if !ok {
		return
	}

	report, err := h.service.GetReplenishment(c.Request.Context(), itemID)
	if err != nil {
		respondEngineError(c, err)
		return
	}

	c.JSON(http.StatusOK, report)
}

func parseItemID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid item id"})
		return 0, false
	}
	return id, true
}

// respondEngineError maps the engine error taxonomy onto HTTP statuses.
// "Unavailable" results are 422, never a zero-valued 200.
func respondEngineError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrItemNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, domain.ErrInsufficientHistory),
		errors.Is(err, domain.ErrNoCommonPeriods),
		errors.Is(err, domain.ErrInvalidDemand):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
	default:
		log.Error().Err(err).Msg("request failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}
