package v1

import (
	"net/http"

	"nymble-website/internal/delivery/http/response"
	"nymble-website/internal/usecase"

	"github.com/gin-gonic/gin"
)

type HealthHandler struct {
	healthUC usecase.HealthUsecase
}

func NewHealthHandler(public *gin.RouterGroup, healthUC usecase.HealthUsecase) {
	handler := &HealthHandler{healthUC: healthUC}
	public.GET("/health", handler.Health)
}

// Health godoc
// @Summary      Health check
// @Description  Reports the service and its optional dependencies. Always 200 while the process serves requests.
// @Tags         system
// @Produce      json
// @Success      200  {object}  response.Response{data=map[string]string}
// @Router       /health [get]
func (h *HealthHandler) Health(c *gin.Context) {
	response.Success(c, http.StatusOK, "System operational", h.healthUC.Check(c.Request.Context()))
}
