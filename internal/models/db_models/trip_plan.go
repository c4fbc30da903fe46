package db_models

type TripPlan struct {
	BaseModel
	Origin      string  `gorm:"not null"`
	Destination string  `gorm:"not null;index"`
	Budget      float64 `gorm:"not null"`
	NumPeople   int     `gorm:"not null"`
	Days        int     `gorm:"not null"`
	StartDate   string  `gorm:"size:10;not null"`
	TravelPlan  string  `gorm:"type:text"`
	Degraded    bool    `gorm:"default:false"`
	Provider    string
	DurationMs  int64
	TraceID     string `gorm:"index"`
}

func (TripPlan) TableName() string { return "trip_plans" }
