package services

import (
	"fmt"
	"math"
	"strings"

	"jetsetgo/internal/models/request_models"
	"jetsetgo/pkg/utils"
)

const PlaceholderLabel = "[PLACEHOLDER ITINERARY]"

// BudgetBreakdown splits a budget, in cents, into fixed buckets. Transport absorbs rounding so
// the buckets always add up to the total.
type BudgetBreakdown struct {
	Total      int64
	Lodging    int64
	Food       int64
	Activities int64
	Transport  int64
}

func SplitBudget(budget float64) BudgetBreakdown {
	total := int64(math.Round(budget * 100))
	b := BudgetBreakdown{
		Total:      total,
		Lodging:    total * 40 / 100,
		Food:       total * 30 / 100,
		Activities: total * 20 / 100,
	}
	b.Transport = total - b.Lodging - b.Food - b.Activities
	return b
}

// FormatCents renders cents as a decimal amount with two places, e.g. 80000 -> "800.00".
func FormatCents(cents int64) string {
	sign := ""
	if cents < 0 {
		sign = "-"
		cents = -cents
	}
	return fmt.Sprintf("%s%d.%02d", sign, cents/100, cents%100)
}

// PlaceholderItinerary renders a deterministic itinerary skeleton from the request alone. It
// is served when the planning engine is unavailable.
func PlaceholderItinerary(trip request_models.ValidTrip) string {
	budget := SplitBudget(trip.Budget)
	end := trip.StartDate.AddDate(0, 0, trip.Days-1)

	var b strings.Builder
	fmt.Fprintf(&b, "%s The AI planning engine is unavailable. This is a template built from your request, not a researched plan.\n\n", PlaceholderLabel)
	fmt.Fprintf(&b, "Trip: %s to %s\n", trip.Origin, trip.Destination)
	fmt.Fprintf(&b, "Travelers: %d\n", trip.NumPeople)
	fmt.Fprintf(&b, "Duration: %d day(s), %s to %s\n", trip.Days,
		utils.FormatDisplayDate(trip.StartDate), utils.FormatDisplayDate(end))
	fmt.Fprintf(&b, "Total budget: %s (%s per person)\n\n", FormatCents(budget.Total),
		FormatCents(budget.Total/int64(trip.NumPeople)))

	b.WriteString("Budget breakdown:\n")
	fmt.Fprintf(&b, "- Lodging (40%%): %s\n", FormatCents(budget.Lodging))
	fmt.Fprintf(&b, "- Food (30%%): %s\n", FormatCents(budget.Food))
	fmt.Fprintf(&b, "- Activities (20%%): %s\n", FormatCents(budget.Activities))
	fmt.Fprintf(&b, "- Transport (10%%): %s\n", FormatCents(budget.Transport))
	fmt.Fprintf(&b, "Daily allowance for food and activities: %s\n",
		FormatCents((budget.Food+budget.Activities)/int64(trip.Days)))

	for day := 1; day <= trip.Days; day++ {
		date := trip.StartDate.AddDate(0, 0, day-1)
		fmt.Fprintf(&b, "\nDay %d - %s\n", day, utils.FormatDisplayDate(date))

		switch {
		case trip.Days == 1:
			fmt.Fprintf(&b, "  Morning: Travel from %s to %s.\n", trip.Origin, trip.Destination)
			fmt.Fprintf(&b, "  Afternoon: Short walking tour of central %s.\n", trip.Destination)
			fmt.Fprintf(&b, "  Evening: Dinner, then return to %s.\n", trip.Origin)
		case day == 1:
			fmt.Fprintf(&b, "  Morning: Travel from %s to %s.\n", trip.Origin, trip.Destination)
			b.WriteString("  Afternoon: Check in to your lodging and explore the neighborhood.\n")
			fmt.Fprintf(&b, "  Evening: Welcome dinner featuring local %s cuisine.\n", trip.Destination)
		case day == trip.Days:
			b.WriteString("  Morning: Check out and pick up last souvenirs.\n")
			fmt.Fprintf(&b, "  Afternoon: Travel from %s back to %s.\n", trip.Destination, trip.Origin)
			b.WriteString("  Evening: Arrive home.\n")
		default:
			fmt.Fprintf(&b, "  Morning: Sightseeing in %s (landmark visit %d).\n", trip.Destination, day-1)
			b.WriteString("  Afternoon: Museum, market or outdoor activity.\n")
			b.WriteString("  Evening: Dinner and a local evening experience.\n")
		}
	}

	return b.String()
}
