package database

import (
	"fmt"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Camp represents the camps table
type Camp struct {
	ID          string         `gorm:"primaryKey;size:64" json:"id"`
	Name        string         `gorm:"not null;index" json:"name"`
	Location    string         `json:"location"`
	Description string         `json:"description"`
	WebsiteURL  string         `json:"website_url"`
	ZipcodeID   *string        `gorm:"size:64" json:"zipcode_id"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	Sessions    []CampSession  `gorm:"foreignKey:CampID;constraint:OnDelete:CASCADE" json:"camp_sessions"`
	Interests   []CampInterest `gorm:"foreignKey:CampID;constraint:OnDelete:CASCADE" json:"camp_interests"`
}

// CampSession represents the camp_sessions table
type CampSession struct {
	ID         string    `gorm:"primaryKey;size:64" json:"id"`
	CampID     string    `gorm:"not null;index;size:64" json:"camp_id"`
	Camp       *Camp     `gorm:"foreignKey:CampID" json:"-"`
	Name       string    `json:"name"`
	Label      string    `json:"label"`
	StartDate  string    `gorm:"size:10;index" json:"start_date"`
	EndDate    string    `gorm:"size:10" json:"end_date"`
	StartTime  *string   `gorm:"size:8" json:"start_time"`
	EndTime    *string   `gorm:"size:8" json:"end_time"`
	DaysOfWeek []string  `gorm:"serializer:json" json:"days_of_week"`
	MinAge     *int      `json:"min_age"`
	MaxAge     *int      `json:"max_age"`
	Price      *float64  `json:"price"`
	Capacity   *int      `json:"capacity"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// CampInterest represents the camp_interests table. Tag and InterestName
// are legacy aliases of one another.
type CampInterest struct {
	ID           string    `gorm:"primaryKey;size:64" json:"id"`
	CampID       string    `gorm:"not null;index;size:64" json:"camp_id"`
	Tag          *string   `json:"tag"`
	InterestName *string   `gorm:"index" json:"interest_name"`
	CreatedAt    time.Time `json:"created_at"`
}

// SearchUsage represents the search_usages table, one row per day
type SearchUsage struct {
	ID           uint   `gorm:"primaryKey" json:"id"`
	Date         string `gorm:"uniqueIndex;not null" json:"date"`
	RequestCount int    `gorm:"default:0" json:"request_count"`
	TotalMatched int    `gorm:"default:0" json:"total_matched"`
}

// Open connects to postgres when dsn is set and to the sqlite file at
// dataPath otherwise, then migrates the schema
func Open(dsn, dataPath string) (*gorm.DB, error) {
	var db *gorm.DB
	var err error

	cfg := &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)}
	if dsn != "" {
		db, err = gorm.Open(postgres.New(postgres.Config{
			DSN:                  dsn,
			PreferSimpleProtocol: true,
		}), cfg)
	} else {
		if dataPath == "" {
			dataPath = "camps.db"
		}
		db, err = gorm.Open(sqlite.Open(dataPath), cfg)
	}
	if err != nil {
		return nil, fmt.Errorf("connect database: %w", err)
	}

	if err := db.AutoMigrate(&Camp{}, &CampSession{}, &CampInterest{}, &SearchUsage{}); err != nil {
		return nil, fmt.Errorf("migrate schema: %w", err)
	}
	return db, nil
}
