package response_models

// TripPlanResponse is returned by POST /plan_trip.
type TripPlanResponse struct {
	Success    bool   `json:"success"`
	TravelPlan string `json:"travel_plan"`
	Degraded   bool   `json:"degraded"`
	PlanID     string `json:"plan_id,omitempty"`
	TraceID    string `json:"trace_id,omitempty"`
}

// TripPlanRecord is a stored plan as exposed by the history endpoints.
type TripPlanRecord struct {
	ID          string  `json:"id"`
	Origin      string  `json:"origin"`
	Destination string  `json:"destination"`
	Budget      float64 `json:"budget"`
	NumPeople   int     `json:"num_people"`
	Days        int     `json:"days"`
	StartDate   string  `json:"start_date"`
	TravelPlan  string  `json:"travel_plan,omitempty"`
	Degraded    bool    `json:"degraded"`
	Provider    string  `json:"provider"`
	DurationMs  int64   `json:"duration_ms"`
	CreatedAt   string  `json:"created_at"`
}

type HealthResponse struct {
	Status  string `json:"status"`
	Engine  string `json:"engine"`
	Storage string `json:"storage"`
}
