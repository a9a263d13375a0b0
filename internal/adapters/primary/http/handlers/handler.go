package handlers

import (
	"prediction-service/internal/core/services"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	classificationSvc *services.ClassificationService
	regressionSvc     *services.RegressionService
	healthSvc         *services.HealthService
}

func New(
	classificationSvc *services.ClassificationService,
	regressionSvc *services.RegressionService,
	healthSvc *services.HealthService,
) *Handler {
	return &Handler{
		classificationSvc: classificationSvc,
		regressionSvc:     regressionSvc,
		healthSvc:         healthSvc,
	}
}

func (h *Handler) RegisterRoutes(r gin.IRouter) {
	r.GET("/", h.Root)
	r.GET("/healthz", h.Health)

	// Predictions
	r.GET("/predict-from-db/:product_id", h.PredictFromDB)
	r.POST("/predict", h.PredictCropYield)
}
