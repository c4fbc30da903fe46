package crew

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jetsetgo/pkg/llm"
	"jetsetgo/pkg/tools"
)

func travelInputs() map[string]string {
	return map[string]string{
		InputOrigin:      "NYC",
		InputDestination: "Paris",
		InputBudget:      "2000.00",
		InputNumPeople:   "2",
		InputDays:        "5",
		InputStartDate:   "2024-06-01",
	}
}

func answer(text string) *llm.ChatResponse {
	return &llm.ChatResponse{Content: text, Usage: llm.Usage{TotalTokens: 5}}
}

func callTool(name, args string) *llm.ChatResponse {
	return &llm.ChatResponse{ToolCalls: []llm.ToolCall{{ID: name + "-1", Name: name, Arguments: args}}}
}

func lastUserMessage(req llm.ChatRequest) string {
	for i := len(req.Messages) - 1; i >= 0; i-- {
		if req.Messages[i].Role == llm.RoleUser {
			return req.Messages[i].Content
		}
	}
	return ""
}

func TestInterpolate(t *testing.T) {
	out, err := Interpolate("From {origin} to {destination}, {origin} again", map[string]string{
		"origin": "NYC", "destination": "Paris",
	})
	require.NoError(t, err)
	assert.Equal(t, "From NYC to Paris, NYC again", out)

	_, err = Interpolate("{Budget} for {people}", map[string]string{"budget": "1"})
	require.ErrorIs(t, err, ErrMissingInput)
	assert.Contains(t, err.Error(), "Budget, people")
}

func TestTravelCrewPlaceholdersMatchCanonicalInputs(t *testing.T) {
	c, err := NewTravelCrew(&llm.MockProvider{}, nil, TravelOptions{}, nil)
	require.NoError(t, err)
	assert.ElementsMatch(t, TravelInputs, c.Placeholders())
	assert.Equal(t, "mock", c.Name())
}

func TestKickoffRejectsMismatchedInputsBeforeCallingLLM(t *testing.T) {
	provider := llm.NewScriptedProvider(answer("unused"))
	c, err := NewTravelCrew(provider, nil, TravelOptions{}, nil)
	require.NoError(t, err)

	legacy := map[string]string{
		"start_trip": "NYC", "destination": "Paris", "Budget": "2000",
		"people": "2", "day": "5", "start_date": "2024-06-01",
	}
	_, err = c.Kickoff(context.Background(), legacy)
	require.ErrorIs(t, err, ErrMissingInput)
	assert.Empty(t, provider.Calls())
}

func TestKickoffRunsTasksSequentiallyWithContext(t *testing.T) {
	provider := llm.NewScriptedProvider(answer("BOOKING-RESULT"), answer("ITINERARY"))
	c, err := NewTravelCrew(provider, nil, TravelOptions{Temperature: 0.7}, nil)
	require.NoError(t, err)

	out, err := c.Kickoff(context.Background(), travelInputs())
	require.NoError(t, err)

	assert.Equal(t, "ITINERARY", out.Raw)
	assert.Equal(t, "ITINERARY", out.Text())
	require.Len(t, out.TasksOutput, 2)
	assert.Equal(t, "booking", out.TasksOutput[0].Name)
	assert.Equal(t, "Booking Specialist", out.TasksOutput[0].Agent)
	assert.Equal(t, "itinerary", out.TasksOutput[1].Name)
	assert.Equal(t, 10, out.Usage.TotalTokens)

	calls := provider.Calls()
	require.Len(t, calls, 2)
	assert.Contains(t, calls[0].Messages[0].Content, "Booking Specialist")
	assert.Contains(t, lastUserMessage(calls[0]), "from NYC to Paris for 2 people")
	assert.NotContains(t, lastUserMessage(calls[0]), "BOOKING-RESULT")

	assert.Contains(t, calls[1].Messages[0].Content, "Travel Planner")
	assert.Contains(t, lastUserMessage(calls[1]), "BOOKING-RESULT")
	assert.Contains(t, lastUserMessage(calls[1]), `"Day 1" to "Day 5"`)
	assert.InDelta(t, 0.7, calls[1].Temperature, 1e-9)
}

type echoTool struct{}

func (echoTool) Spec() llm.ToolSpec {
	return llm.ToolSpec{Name: "echo", Params: []llm.ToolParam{{Name: "text", Required: true}}}
}

func (echoTool) Call(_ context.Context, args map[string]string) (string, error) {
	return "echo:" + args["text"], nil
}

func TestAgentExecutesToolCalls(t *testing.T) {
	provider := llm.NewScriptedProvider(
		callTool("echo", `{"text":"flights"}`),
		callTool("echo", `{}`),
		answer("final"),
	)
	agent := &Agent{Role: "Booking Specialist", LLM: provider, Tools: []tools.Tool{echoTool{}}}

	out, _, err := agent.Execute(context.Background(), "find flights", nil)
	require.NoError(t, err)
	assert.Equal(t, "final", out)

	calls := provider.Calls()
	require.Len(t, calls, 3)
	require.Len(t, calls[0].Tools, 1)

	second := calls[1].Messages
	assert.Equal(t, llm.RoleTool, second[len(second)-1].Role)
	assert.Equal(t, "echo:flights", second[len(second)-1].Content)

	third := calls[2].Messages
	assert.True(t, strings.HasPrefix(third[len(third)-1].Content, "Error: "))
}

func TestAgentStopsAtMaxIterations(t *testing.T) {
	provider := llm.NewScriptedProvider(
		callTool("echo", `{"text":"a"}`),
		callTool("echo", `{"text":"b"}`),
	)
	agent := &Agent{Role: "Travel Planner", LLM: provider, Tools: []tools.Tool{echoTool{}}, MaxIterations: 2}

	_, _, err := agent.Execute(context.Background(), "plan", nil)
	require.ErrorIs(t, err, ErrMaxIterations)

	calls := provider.Calls()
	require.Len(t, calls, 2)
	assert.NotEmpty(t, calls[0].Tools)
	assert.Empty(t, calls[1].Tools)
}

func TestAgentRejectsEmptyAnswer(t *testing.T) {
	agent := &Agent{Role: "Travel Planner", LLM: llm.NewScriptedProvider(answer("   "))}
	_, _, err := agent.Execute(context.Background(), "plan", nil)
	assert.ErrorIs(t, err, ErrEmptyResponse)
}

func TestDelegationToCoworker(t *testing.T) {
	provider := llm.NewScriptedProvider(
		callTool("delegate_work", `{"coworker":"travel planner","task":"Which area to stay in?","context":"Paris, 5 days"}`),
		answer("Le Marais"),
		answer("BOOKED near Le Marais"),
		answer("ITINERARY"),
	)
	c, err := NewTravelCrew(provider, nil, TravelOptions{}, nil)
	require.NoError(t, err)

	out, err := c.Kickoff(context.Background(), travelInputs())
	require.NoError(t, err)
	assert.Equal(t, "BOOKED near Le Marais", out.TasksOutput[0].Raw)

	calls := provider.Calls()
	require.Len(t, calls, 4)
	require.Len(t, calls[0].Tools, 1)
	assert.Equal(t, "delegate_work", calls[0].Tools[0].Name)

	assert.Contains(t, calls[1].Messages[0].Content, "Travel Planner")
	assert.Contains(t, lastUserMessage(calls[1]), "Paris, 5 days")
	assert.Empty(t, calls[1].Tools)

	tail := calls[2].Messages[len(calls[2].Messages)-1]
	assert.Equal(t, "Le Marais", tail.Content)

	// booking turn + coworker answer, then the itinerary turn
	assert.Equal(t, 10, out.TasksOutput[0].Usage.TotalTokens)
	assert.Equal(t, 15, out.Usage.TotalTokens)
}

func TestKickoffWrapsProviderErrors(t *testing.T) {
	boom := errors.New("quota exceeded")
	c, err := NewTravelCrew(&llm.MockProvider{Err: boom}, nil, TravelOptions{}, nil)
	require.NoError(t, err)

	_, err = c.Kickoff(context.Background(), travelInputs())
	require.ErrorIs(t, err, boom)
	assert.Contains(t, err.Error(), "task booking")
}

func TestNewValidatesTasks(t *testing.T) {
	_, err := New(nil, nil)
	assert.ErrorIs(t, err, ErrNoTasks)

	_, err = New(nil, []*Task{{Name: "x"}})
	assert.ErrorIs(t, err, ErrNoAgent)

	_, err = New(nil, []*Task{{Name: "x", Agent: &Agent{Role: "r"}}})
	assert.ErrorIs(t, err, ErrNoLLM)
}

func TestCrewOutputText(t *testing.T) {
	var nilOut *CrewOutput
	assert.Equal(t, "", nilOut.Text())

	out := &CrewOutput{Raw: "  ", TasksOutput: []TaskOutput{{Raw: "booking"}, {Raw: " "}}}
	assert.Equal(t, "booking", out.Text())
}
