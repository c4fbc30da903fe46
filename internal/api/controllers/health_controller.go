package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"jetsetgo/internal/models/response_models"
	"jetsetgo/internal/services"
)

type HealthController struct {
	tripService services.TripServiceInterface
}

func NewHealthController(tripService services.TripServiceInterface) *HealthController {
	return &HealthController{tripService: tripService}
}

func (h *HealthController) WelcomeHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": "Welcome to the JetSetGo travel planner API"})
}

func (h *HealthController) HealthHandler(c *gin.Context) {
	engine := "engine"
	if h.tripService.Mode() == services.ModePlaceholder {
		engine = "placeholder"
	}
	c.JSON(http.StatusOK, response_models.HealthResponse{
		Status:  "ok",
		Engine:  engine,
		Storage: h.tripService.StorageBackend(),
	})
}
