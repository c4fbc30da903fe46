package repositories

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"jetsetgo/internal/models/db_models"
)

type TripPlanRepositoryInterface interface {
	CreatePlan(ctx context.Context, plan *db_models.TripPlan) error
	GetPlanByID(ctx context.Context, planID string) (*db_models.TripPlan, error)
	ListPlans(ctx context.Context, page int, pageSize int) ([]db_models.TripPlan, error)
	// Backend names the storage, "postgres" or "memory".
	Backend() string
}

func NewTripPlanRepository(db *gorm.DB) TripPlanRepositoryInterface {
	return &TripPlanRepository{db: db}
}

type TripPlanRepository struct {
	db *gorm.DB
}

func (t *TripPlanRepository) Backend() string { return "postgres" }

func (t *TripPlanRepository) CreatePlan(ctx context.Context, plan *db_models.TripPlan) error {

	return t.db.Transaction(func(tx *gorm.DB) error {
		return tx.WithContext(ctx).Create(plan).Error
	})

}

// GetPlanByID returns nil, nil when the plan does not exist.
func (t *TripPlanRepository) GetPlanByID(ctx context.Context, planID string) (*db_models.TripPlan, error) {

	var plan db_models.TripPlan
	err := t.db.WithContext(ctx).First(&plan, "id = ?", planID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &plan, nil
}

func (t *TripPlanRepository) ListPlans(ctx context.Context, page int, pageSize int) ([]db_models.TripPlan, error) {

	var plans []db_models.TripPlan
	err := listPlansQuery(t.db.WithContext(ctx), page, pageSize).Find(&plans).Error
	if err != nil {
		return nil, err
	}
	return plans, nil
}

// listPlansQuery pages newest first; created_at has second resolution so id breaks ties.
func listPlansQuery(db *gorm.DB, page int, pageSize int) *gorm.DB {
	return db.Scopes(func(db *gorm.DB) *gorm.DB {
		offset := (page - 1) * pageSize
		return db.Offset(offset).Limit(pageSize)
	}).Order("created_at DESC").Order("id DESC")
}
