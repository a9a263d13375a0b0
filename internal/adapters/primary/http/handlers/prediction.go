package handlers

import (
	"fmt"
	"net/http"
	"strconv"

	"prediction-service/internal/adapters/primary/http/dto"
	"prediction-service/internal/core/domain"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
)

func (h *Handler) PredictFromDB(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("product_id"), 10, 64)
	if err != nil {
		mapDomainError(c, fmt.Errorf("%w: product_id must be an integer", domain.ErrInvalidInput))
		return
	}

	result, err := h.classificationSvc.PredictFromRecord(c.Request.Context(), id)
	if err != nil {
		mapDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToCategoryPredictionResponse(result))
}

func (h *Handler) PredictCropYield(c *gin.Context) {
	var req dto.CropYieldRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.WithError(err).Warn("invalid crop payload")
		mapDomainError(c, fmt.Errorf("%w: %v", domain.ErrInvalidInput, err))
		return
	}

	row, err := dto.ToFeatureRow(&req)
	if err != nil {
		log.WithError(err).Warn("invalid crop payload")
		mapDomainError(c, err)
		return
	}

	result, err := h.regressionSvc.Predict(c.Request.Context(), row)
	if err != nil {
		mapDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToYieldPredictionResponse(result))
}
