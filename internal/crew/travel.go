package crew

import (
	"go.uber.org/zap"

	"jetsetgo/pkg/llm"
	"jetsetgo/pkg/tools"
)

// Canonical input names bound into the travel task templates.
const (
	InputOrigin      = "origin"
	InputDestination = "destination"
	InputBudget      = "budget"
	InputNumPeople   = "num_people"
	InputDays        = "days"
	InputStartDate   = "start_date"
)

var TravelInputs = []string{InputOrigin, InputDestination, InputBudget, InputNumPeople, InputDays, InputStartDate}

const (
	bookingTaskDescription = `Find the best way to travel from {origin} to {destination} for {num_people} people, departing on {start_date} and returning after {days} days.
Compare flights and trains (whichever is best for this route) and pick options that fit within a total trip budget of {budget} USD for the whole group, leaving enough money for lodging, food and activities.
Also shortlist lodging in {destination} for {num_people} people for {days} nights.
Use the search tool to find current prices and the scraper to read booking pages when useful.`

	bookingTaskExpectedOutput = `A booking summary with: the recommended outbound and return transport (mode, carrier, times, price per person and total), one or two alternatives, two or three lodging options with nightly and total price, and the remaining budget out of {budget} USD after transport and lodging.`

	itineraryTaskDescription = `Using the booking summary, create a complete day-by-day travel plan for {num_people} people visiting {destination} from {origin} for {days} days starting on {start_date}.
Schedule each day from morning to night: arrival and departure logistics, sightseeing, local food, and evening activities, with approximate costs.
Keep the whole trip, including transport and lodging, within {budget} USD.`

	itineraryTaskExpectedOutput = `A full itinerary with exactly {days} sections titled "Day 1" to "Day {days}", each with morning, afternoon and evening plans and estimated costs, followed by a budget breakdown (transport, lodging, food, activities) that totals no more than {budget} USD and a short list of practical tips for {destination}.`
)

// TravelOptions tunes the travel agents.
type TravelOptions struct {
	Temperature   float64
	MaxIterations int
}

// NewTravelAgents builds the Booking Specialist and Travel Planner roles.
func NewTravelAgents(provider llm.Provider, toolset []tools.Tool, opts TravelOptions) (booking, planner *Agent) {
	booking = &Agent{
		Role:            "Booking Specialist",
		Goal:            "Secure the best flights or trains for the trip, whichever suits the route, within the budget.",
		Backstory:       "You are skilled at finding the best deals and securing bookings quickly at the lowest price.",
		AllowDelegation: true,
		Tools:           toolset,
		LLM:             provider,
		Temperature:     opts.Temperature,
		MaxIterations:   opts.MaxIterations,
	}
	planner = &Agent{
		Role:            "Travel Planner",
		Goal:            "Schedule the complete trip plan from morning to night for every day of the stay.",
		Backstory:       "An expert in travel planning who knows the best destinations and experiences for every type of traveler.",
		AllowDelegation: true,
		Tools:           toolset,
		LLM:             provider,
		Temperature:     opts.Temperature,
		MaxIterations:   opts.MaxIterations,
	}
	return booking, planner
}

// NewTravelCrew assembles the two-step sequential pipeline: booking first, then the full
// itinerary built on the booking result.
func NewTravelCrew(provider llm.Provider, toolset []tools.Tool, opts TravelOptions, log *zap.Logger) (*Crew, error) {
	booking, planner := NewTravelAgents(provider, toolset, opts)

	tasks := []*Task{
		{
			Name:           "booking",
			Description:    bookingTaskDescription,
			ExpectedOutput: bookingTaskExpectedOutput,
			Agent:          booking,
		},
		{
			Name:           "itinerary",
			Description:    itineraryTaskDescription,
			ExpectedOutput: itineraryTaskExpectedOutput,
			Agent:          planner,
		},
	}

	return New([]*Agent{booking, planner}, tasks, WithLogger(log))
}
