package request_models

import (
	"errors"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jetsetgo/pkg/utils"
)

func validRequest() TripRequest {
	return TripRequest{
		Origin:      "NYC",
		Destination: "Paris",
		Budget:      2000,
		NumPeople:   2,
		Days:        5,
		StartDate:   "2024-06-01",
	}
}

func TestValidateAcceptsAndNormalizes(t *testing.T) {
	req := validRequest()
	req.Origin = "  NYC "

	trip, err := req.Validate(60)
	require.NoError(t, err)
	assert.Equal(t, "NYC", trip.Origin)
	assert.Equal(t, time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC), trip.StartDate)
}

func TestValidateRejectsFields(t *testing.T) {
	cases := []struct {
		name  string
		edit  func(*TripRequest)
		field string
	}{
		{"empty origin", func(r *TripRequest) { r.Origin = "" }, "origin"},
		{"blank origin", func(r *TripRequest) { r.Origin = " \t" }, "origin"},
		{"blank destination", func(r *TripRequest) { r.Destination = "   " }, "destination"},
		{"zero budget", func(r *TripRequest) { r.Budget = 0 }, "budget"},
		{"negative budget", func(r *TripRequest) { r.Budget = -10 }, "budget"},
		{"nan budget", func(r *TripRequest) { r.Budget = math.NaN() }, "budget"},
		{"infinite budget", func(r *TripRequest) { r.Budget = math.Inf(1) }, "budget"},
		{"budget above cap", func(r *TripRequest) { r.Budget = MaxBudget + 0.01 }, "budget"},
		{"huge budget", func(r *TripRequest) { r.Budget = 1e17 }, "budget"},
		{"zero people", func(r *TripRequest) { r.NumPeople = 0 }, "num_people"},
		{"negative people", func(r *TripRequest) { r.NumPeople = -1 }, "num_people"},
		{"zero days", func(r *TripRequest) { r.Days = 0 }, "days"},
		{"too many days", func(r *TripRequest) { r.Days = 61 }, "days"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := validRequest()
			tc.edit(&req)

			_, err := req.Validate(60)
			var verr *utils.ValidationError
			require.True(t, errors.As(err, &verr))
			assert.Equal(t, tc.field, verr.Field)
			assert.ErrorIs(t, err, utils.ErrInvalidInput)
			assert.Contains(t, err.Error(), tc.field)
		})
	}
}

func TestValidateAcceptsBudgetAtCap(t *testing.T) {
	req := validRequest()
	req.Budget = MaxBudget

	trip, err := req.Validate(60)
	require.NoError(t, err)
	assert.Equal(t, MaxBudget, trip.Budget)
}

func TestValidateRejectsDateFormats(t *testing.T) {
	for _, date := range []string{"", "06/01/2024", "2024-6-1", "2024-02-30", "tomorrow"} {
		req := validRequest()
		req.StartDate = date

		_, err := req.Validate(60)
		assert.ErrorIs(t, err, utils.ErrInvalidDateFormat, date)
		assert.NotErrorIs(t, err, utils.ErrInvalidInput, date)
		assert.Contains(t, err.Error(), "YYYY-MM-DD")
	}
}

func TestValidateWithoutDayLimit(t *testing.T) {
	req := validRequest()
	req.Days = 365
	_, err := req.Validate(0)
	assert.NoError(t, err)
}
