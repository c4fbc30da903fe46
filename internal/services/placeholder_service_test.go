package services

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jetsetgo/internal/models/request_models"
)

func parisTrip(t *testing.T) request_models.ValidTrip {
	t.Helper()
	trip, err := request_models.TripRequest{
		Origin:      "NYC",
		Destination: "Paris",
		Budget:      2000,
		NumPeople:   2,
		Days:        5,
		StartDate:   "2024-06-01",
	}.Validate(60)
	require.NoError(t, err)
	return trip
}

func TestSplitBudgetExample(t *testing.T) {
	b := SplitBudget(2000)
	assert.Equal(t, "800.00", FormatCents(b.Lodging))
	assert.Equal(t, "600.00", FormatCents(b.Food))
	assert.Equal(t, "400.00", FormatCents(b.Activities))
	assert.Equal(t, "200.00", FormatCents(b.Transport))
}

func TestSplitBudgetAlwaysSumsToTotal(t *testing.T) {
	for _, budget := range []float64{0.01, 0.07, 1, 99.99, 123.45, 1000.01, 2000, 33333.33, 987654.32} {
		b := SplitBudget(budget)
		assert.Equal(t, b.Total, b.Lodging+b.Food+b.Activities+b.Transport, "budget %v", budget)
		assert.Equal(t, fmt.Sprintf("%.2f", budget), FormatCents(b.Total))
	}
}

func TestSplitBudgetAtMaxBudget(t *testing.T) {
	b := SplitBudget(request_models.MaxBudget)
	assert.Equal(t, "1000000000000.00", FormatCents(b.Total))
	assert.Equal(t, "400000000000.00", FormatCents(b.Lodging))
	assert.Equal(t, "300000000000.00", FormatCents(b.Food))
	assert.Equal(t, "200000000000.00", FormatCents(b.Activities))
	assert.Equal(t, "100000000000.00", FormatCents(b.Transport))
}

func TestPlaceholderItineraryExample(t *testing.T) {
	out := PlaceholderItinerary(parisTrip(t))

	assert.True(t, strings.HasPrefix(out, PlaceholderLabel))
	assert.Contains(t, out, "Lodging (40%): 800.00")
	assert.Contains(t, out, "Food (30%): 600.00")
	assert.Contains(t, out, "Activities (20%): 400.00")
	assert.Contains(t, out, "Transport (10%): 200.00")
	assert.Contains(t, out, "Day 1 - Sat, 01 Jun 2024")
	assert.Contains(t, out, "Day 5 - Wed, 05 Jun 2024")
	assert.NotContains(t, out, "Day 6")
	assert.Contains(t, out, "Travel from Paris back to NYC")
}

func TestPlaceholderItineraryDayCount(t *testing.T) {
	for _, days := range []int{1, 2, 7, 30} {
		trip := parisTrip(t)
		trip.Days = days

		out := PlaceholderItinerary(trip)
		for day := 1; day <= days; day++ {
			assert.Equal(t, 1, strings.Count(out, fmt.Sprintf("\nDay %d - ", day)), "days=%d day=%d", days, day)
		}
		assert.Equal(t, days, strings.Count(out, "\nDay "))
	}
}

func TestPlaceholderItineraryIsDeterministic(t *testing.T) {
	trip := parisTrip(t)
	first := PlaceholderItinerary(trip)
	time.Sleep(time.Millisecond)
	assert.Equal(t, first, PlaceholderItinerary(trip))
}
