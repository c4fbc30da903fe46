package repositories

import (
	"context"
	"time"

	"github.com/google/uuid"

	"jetsetgo/internal/models/db_models"
	mem "jetsetgo/pkg/memcache"
	"jetsetgo/pkg/utils"
)

// MemoryTripPlanRepository keeps plans in process memory for ttl. It backs the history
// endpoints when no database is configured.
type MemoryTripPlanRepository struct {
	store mem.Store[db_models.TripPlan]
	ttl   time.Duration
}

func NewMemoryTripPlanRepository(store mem.Store[db_models.TripPlan], ttl time.Duration) TripPlanRepositoryInterface {
	return &MemoryTripPlanRepository{store: store, ttl: ttl}
}

func (m *MemoryTripPlanRepository) Backend() string { return "memory" }

func (m *MemoryTripPlanRepository) CreatePlan(_ context.Context, plan *db_models.TripPlan) error {
	if plan.ID == uuid.Nil {
		plan.ID = uuid.New()
	}
	now := utils.NowUnixSeconds()
	plan.CreatedAt = now
	plan.UpdatedAt = now

	m.store.Set(plan.ID.String(), *plan, m.ttl)
	return nil
}

func (m *MemoryTripPlanRepository) GetPlanByID(_ context.Context, planID string) (*db_models.TripPlan, error) {
	plan, ok := m.store.Get(planID)
	if !ok {
		return nil, nil
	}
	return &plan, nil
}

// ListPlans pages through plans newest first.
func (m *MemoryTripPlanRepository) ListPlans(_ context.Context, page int, pageSize int) ([]db_models.TripPlan, error) {
	all := m.store.Values()

	// compare before multiplying so a huge page cannot overflow the offset
	if page < 1 || pageSize < 1 || page-1 >= (len(all)+pageSize-1)/pageSize {
		return []db_models.TripPlan{}, nil
	}
	offset := (page - 1) * pageSize

	plans := make([]db_models.TripPlan, 0, pageSize)
	for i := len(all) - 1 - offset; i >= 0 && len(plans) < pageSize; i-- {
		plans = append(plans, all[i])
	}
	return plans, nil
}
