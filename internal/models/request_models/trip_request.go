package request_models

import (
	"math"
	"strconv"
	"strings"
	"time"

	"jetsetgo/pkg/utils"
)

// MaxBudget bounds the budget so amounts in cents stay well inside int64.
const MaxBudget = 1e12

// TripRequest is the body of POST /plan_trip.
type TripRequest struct {
	Origin      string  `json:"origin"`
	Destination string  `json:"destination"`
	Budget      float64 `json:"budget"`
	NumPeople   int     `json:"num_people"`
	Days        int     `json:"days"`
	StartDate   string  `json:"start_date"` // YYYY-MM-DD
}

// ValidTrip is a TripRequest that passed Validate, with trimmed strings and a parsed date.
type ValidTrip struct {
	Origin      string
	Destination string
	Budget      float64
	NumPeople   int
	Days        int
	StartDate   time.Time
}

// Validate checks every field and reports the first failure as a *utils.ValidationError.
// maxDays <= 0 disables the upper bound on stay length.
func (r TripRequest) Validate(maxDays int) (ValidTrip, error) {
	origin := strings.TrimSpace(r.Origin)
	if origin == "" {
		return ValidTrip{}, utils.NewValidationError("origin", "must not be empty")
	}
	destination := strings.TrimSpace(r.Destination)
	if destination == "" {
		return ValidTrip{}, utils.NewValidationError("destination", "must not be empty")
	}
	if math.IsNaN(r.Budget) || math.IsInf(r.Budget, 0) || r.Budget <= 0 {
		return ValidTrip{}, utils.NewValidationError("budget", "must be greater than 0")
	}
	if r.Budget > MaxBudget {
		return ValidTrip{}, utils.NewValidationError("budget", "must not exceed "+strconv.FormatFloat(MaxBudget, 'f', 0, 64))
	}
	if r.NumPeople <= 0 {
		return ValidTrip{}, utils.NewValidationError("num_people", "must be greater than 0")
	}
	if r.Days <= 0 {
		return ValidTrip{}, utils.NewValidationError("days", "must be greater than 0")
	}
	if maxDays > 0 && r.Days > maxDays {
		return ValidTrip{}, utils.NewValidationError("days", "must not exceed "+strconv.Itoa(maxDays))
	}
	start, err := utils.ParseISODate(r.StartDate)
	if err != nil {
		return ValidTrip{}, utils.NewDateFormatError("start_date", "must be a valid ISO calendar date (YYYY-MM-DD)")
	}

	return ValidTrip{
		Origin:      origin,
		Destination: destination,
		Budget:      r.Budget,
		NumPeople:   r.NumPeople,
		Days:        r.Days,
		StartDate:   start,
	}, nil
}
