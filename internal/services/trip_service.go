package services

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strconv"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"jetsetgo/internal/crew"
	"jetsetgo/internal/models/db_models"
	"jetsetgo/internal/models/request_models"
	"jetsetgo/internal/models/response_models"
	"jetsetgo/internal/repositories"
	"jetsetgo/pkg/telemetry"
	"jetsetgo/pkg/utils"
)

const (
	ModeCrew        = "crew"
	ModePlaceholder = "placeholder"
)

// ItineraryEngine produces an itinerary from the canonical trip inputs.
type ItineraryEngine interface {
	Name() string
	Kickoff(ctx context.Context, inputs map[string]string) (*crew.CrewOutput, error)
}

type TripServiceInterface interface {
	PlanTrip(ctx context.Context, req request_models.TripRequest) (*response_models.TripPlanResponse, error)
	GetPlan(ctx context.Context, planID string) (*response_models.TripPlanRecord, error)
	ListPlans(ctx context.Context, page int, pageSize int) ([]response_models.TripPlanRecord, error)
	Mode() string
	StorageBackend() string
}

type TripServiceConfig struct {
	// Timeout bounds one engine call; zero means no limit.
	Timeout time.Duration
	MaxDays int
}

type TripService struct {
	engine  ItineraryEngine
	repo    repositories.TripPlanRepositoryInterface
	cfg     TripServiceConfig
	log     *zap.Logger
	metrics *telemetry.PlanMetrics
	tracer  trace.Tracer
}

// NewTripService wires the service. A nil engine puts the service in placeholder mode.
func NewTripService(
	engine ItineraryEngine,
	repo repositories.TripPlanRepositoryInterface,
	cfg TripServiceConfig,
	log *zap.Logger,
	metrics *telemetry.PlanMetrics,
) TripServiceInterface {
	if log == nil {
		log = zap.NewNop()
	}
	return &TripService{
		engine:  engine,
		repo:    repo,
		cfg:     cfg,
		log:     log,
		metrics: metrics,
		tracer:  otel.Tracer("jetsetgo/services"),
	}
}

func (s *TripService) Mode() string {
	if s.engine == nil {
		return ModePlaceholder
	}
	return ModeCrew
}

func (s *TripService) StorageBackend() string {
	return s.repo.Backend()
}

// TripInputs maps a validated trip onto the canonical input names of the travel crew.
func TripInputs(trip request_models.ValidTrip) map[string]string {
	return map[string]string{
		crew.InputOrigin:      trip.Origin,
		crew.InputDestination: trip.Destination,
		crew.InputBudget:      strconv.FormatFloat(trip.Budget, 'f', 2, 64),
		crew.InputNumPeople:   strconv.Itoa(trip.NumPeople),
		crew.InputDays:        strconv.Itoa(trip.Days),
		crew.InputStartDate:   trip.StartDate.Format(utils.ISODate),
	}
}

func (s *TripService) PlanTrip(ctx context.Context, req request_models.TripRequest) (*response_models.TripPlanResponse, error) {
	trip, err := req.Validate(s.cfg.MaxDays)
	if err != nil {
		return nil, err
	}

	mode := s.Mode()
	ctx, span := s.tracer.Start(ctx, "trip.plan", trace.WithAttributes(
		attribute.String("trip.mode", mode),
		attribute.String("trip.destination", trip.Destination),
		attribute.Int("trip.days", trip.Days),
	))
	defer span.End()

	start := time.Now()
	var text, provider string
	if s.engine == nil {
		text = PlaceholderItinerary(trip)
		provider = ModePlaceholder
	} else {
		out, err := s.kickoff(ctx, TripInputs(trip))
		if err != nil {
			outcome := "error"
			if errors.Is(err, utils.ErrEngineTimeout) {
				outcome = "timeout"
			}
			s.metrics.Record(ctx, mode, outcome, time.Since(start))
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
			return nil, err
		}
		text = out.Text()
		provider = s.engine.Name()
	}
	elapsed := time.Since(start)
	s.metrics.Record(ctx, mode, "success", elapsed)

	record := &db_models.TripPlan{
		Origin:      trip.Origin,
		Destination: trip.Destination,
		Budget:      trip.Budget,
		NumPeople:   trip.NumPeople,
		Days:        trip.Days,
		StartDate:   trip.StartDate.Format(utils.ISODate),
		TravelPlan:  text,
		Degraded:    s.engine == nil,
		Provider:    provider,
		DurationMs:  elapsed.Milliseconds(),
		TraceID:     utils.TraceIDFromContext(ctx),
	}
	if err := s.repo.CreatePlan(ctx, record); err != nil {
		s.log.Warn("failed to store trip plan", zap.Error(err), zap.String("storage", s.repo.Backend()))
	}

	s.log.Info("trip planned",
		zap.String("mode", mode),
		zap.String("provider", provider),
		zap.String("destination", trip.Destination),
		zap.Int("days", trip.Days),
		zap.Duration("duration", elapsed))

	resp := &response_models.TripPlanResponse{
		Success:    true,
		TravelPlan: text,
		Degraded:   s.engine == nil,
	}
	if record.ID != uuid.Nil {
		resp.PlanID = record.ID.String()
	}
	return resp, nil
}

// kickoff runs the engine against ctx and the configured timeout. The engine call is raced in
// its own goroutine so a call that ignores cancellation cannot hold the request past the limit.
func (s *TripService) kickoff(ctx context.Context, inputs map[string]string) (*crew.CrewOutput, error) {
	if s.cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.cfg.Timeout)
		defer cancel()
	}

	type result struct {
		out *crew.CrewOutput
		err error
	}
	done := make(chan result, 1)
	go func() {
		out, err := s.engine.Kickoff(ctx, inputs)
		done <- result{out: out, err: err}
	}()

	select {
	case <-ctx.Done():
		return nil, s.engineError(ctx.Err())
	case r := <-done:
		if r.err != nil {
			return nil, s.engineError(r.err)
		}
		if r.out == nil {
			return nil, &utils.EngineError{Err: errors.New("engine returned no output")}
		}
		return r.out, nil
	}
}

func (s *TripService) engineError(err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return &utils.EngineError{
			Err:     fmt.Errorf("itinerary engine did not respond within %s", s.cfg.Timeout),
			Timeout: true,
		}
	}
	return &utils.EngineError{Err: err}
}

func (s *TripService) GetPlan(ctx context.Context, planID string) (*response_models.TripPlanRecord, error) {
	if _, err := uuid.Parse(planID); err != nil {
		return nil, utils.NewValidationError("id", "must be a valid UUID")
	}

	plan, err := s.repo.GetPlanByID(ctx, planID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", utils.ErrDatabaseError, err)
	}
	if plan == nil {
		return nil, utils.ErrPlanNotFound
	}

	record := toRecord(*plan, true)
	return &record, nil
}

func (s *TripService) ListPlans(ctx context.Context, page int, pageSize int) ([]response_models.TripPlanRecord, error) {
	if page < 1 {
		return nil, utils.ErrInvalidPage
	}
	if pageSize < 1 || pageSize > 100 {
		return nil, utils.ErrInvalidPageSize
	}

	if page-1 > math.MaxInt32/pageSize {
		return []response_models.TripPlanRecord{}, nil
	}

	plans, err := s.repo.ListPlans(ctx, page, pageSize)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", utils.ErrDatabaseError, err)
	}

	records := make([]response_models.TripPlanRecord, 0, len(plans))
	for _, p := range plans {
		records = append(records, toRecord(p, false))
	}
	return records, nil
}

func toRecord(p db_models.TripPlan, withPlan bool) response_models.TripPlanRecord {
	r := response_models.TripPlanRecord{
		ID:          p.ID.String(),
		Origin:      p.Origin,
		Destination: p.Destination,
		Budget:      p.Budget,
		NumPeople:   p.NumPeople,
		Days:        p.Days,
		StartDate:   p.StartDate,
		Degraded:    p.Degraded,
		Provider:    p.Provider,
		DurationMs:  p.DurationMs,
		CreatedAt:   utils.FormatRFC3339(utils.FromUnixSeconds(p.CreatedAt)),
	}
	if withPlan {
		r.TravelPlan = p.TravelPlan
	}
	return r
}
