package controllers

import "github.com/gin-gonic/gin"

func RegisterRoutes(r *gin.Engine, trips *TripController, health *HealthController) {
	r.GET("/", health.WelcomeHandler)
	r.GET("/health", health.HealthHandler)

	r.POST("/plan_trip", trips.PlanTripHandler)
	r.GET("/plan_trip/:id", trips.GetPlanHandler)
	r.GET("/plans", trips.ListPlansHandler)
}
