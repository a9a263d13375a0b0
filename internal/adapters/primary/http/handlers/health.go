package handlers

import (
	"net/http"

	"prediction-service/internal/adapters/primary/http/dto"

	"github.com/gin-gonic/gin"
)

const rootMessage = "Prediction API is running: POST /predict (crop yield), GET /predict-from-db/:product_id (product demand)"

func (h *Handler) Root(c *gin.Context) {
	c.JSON(http.StatusOK, dto.RootResponse{Message: rootMessage})
}

// Health pings the record store and reports artifact availability. Missing
// artifacts degrade the service but do not make it unhealthy.
func (h *Handler) Health(c *gin.Context) {
	report := h.healthSvc.Check(c.Request.Context())

	status := http.StatusOK
	if report.DatabaseErr != nil {
		status = http.StatusServiceUnavailable
	}
	c.JSON(status, dto.ToHealthResponse(report))
}
