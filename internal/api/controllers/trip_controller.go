package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"jetsetgo/internal/models/request_models"
	"jetsetgo/internal/services"
	"jetsetgo/pkg/utils"
)

type TripController struct {
	tripService services.TripServiceInterface
}

func NewTripController(tripService services.TripServiceInterface) *TripController {
	return &TripController{
		tripService: tripService,
	}
}

// PlanTripHandler godoc
// @Summary Generate a travel plan
// @Description Validates the trip and asks the itinerary engine for a plan
// @Tags Trips
// @Accept json
// @Produce json
// @Param request body request_models.TripRequest true "Trip request"
// @Success 200 {object} response_models.TripPlanResponse
// @Failure 400 {object} utils.APIResponse
// @Failure 500 {object} utils.APIResponse
// @Failure 504 {object} utils.APIResponse
// @Router /plan_trip [post]
func (t *TripController) PlanTripHandler(c *gin.Context) {
	var req request_models.TripRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request format")
		return
	}

	resp, err := t.tripService.PlanTrip(c.Request.Context(), req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	resp.TraceID = c.GetString("trace_id")
	c.JSON(http.StatusOK, resp)
}

// GetPlanHandler godoc
// @Summary Get a stored travel plan
// @Tags Trips
// @Produce json
// @Param id path string true "Plan ID"
// @Success 200 {object} utils.APIResponse
// @Failure 404 {object} utils.APIResponse
// @Router /plan_trip/{id} [get]
func (t *TripController) GetPlanHandler(c *gin.Context) {
	planID := c.Param("id")

	plan, err := t.tripService.GetPlan(c.Request.Context(), planID)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, plan, "Trip plan retrieved successfully")
}

// ListPlansHandler godoc
// @Summary List recent travel plans
// @Tags Trips
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param pageSize query int false "Page size" default(20)
// @Success 200 {object} utils.APIResponse
// @Router /plans [get]
func (t *TripController) ListPlansHandler(c *gin.Context) {
	pageStr := c.DefaultQuery("page", "1")
	pageSizeStr := c.DefaultQuery("pageSize", "20")

	page, err := strconv.Atoi(pageStr)
	if err != nil || page < 1 {
		utils.RespondError(c, http.StatusBadRequest, "Invalid page number")
		return
	}

	pageSize, err := strconv.Atoi(pageSizeStr)
	if err != nil || pageSize < 1 || pageSize > 100 {
		utils.RespondError(c, http.StatusBadRequest, "Invalid page size (must be 1-100)")
		return
	}

	plans, err := t.tripService.ListPlans(c.Request.Context(), page, pageSize)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, plans, "Trip plans retrieved successfully")
}
