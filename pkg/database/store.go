package database

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/arnavshah/campfinder-api/pkg/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ErrNotFound is returned when a camp or session does not exist
var ErrNotFound = errors.New("record not found")

// Store reads the camp catalog and records search usage
type Store struct {
	db  *gorm.DB
	now func() time.Time
}

// NewStore wraps an open database
func NewStore(db *gorm.DB) *Store {
	return &Store{db: db, now: time.Now}
}

// DB exposes the underlying connection
func (s *Store) DB() *gorm.DB {
	return s.db
}

func orderSessions(db *gorm.DB) *gorm.DB {
	return db.Order("start_date ASC")
}

func (s *Store) campQuery(ctx context.Context) *gorm.DB {
	return s.db.WithContext(ctx).
		Preload("Sessions", orderSessions).
		Preload("Interests")
}

// ListCamps returns every camp ordered by name. A non-empty query keeps camps
// whose name or description contains it, ignoring case.
func (s *Store) ListCamps(ctx context.Context, query string) ([]models.Camp, error) {
	q := s.campQuery(ctx).Order("name ASC")
	if query = strings.TrimSpace(query); query != "" {
		like := "%" + strings.ToLower(query) + "%"
		q = q.Where("LOWER(name) LIKE ? OR LOWER(description) LIKE ?", like, like)
	}

	var rows []Camp
	if err := q.Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("list camps: %w", err)
	}
	return campsToModels(rows), nil
}

// CampsByIDs returns the given camps ordered by name
func (s *Store) CampsByIDs(ctx context.Context, ids []string) ([]models.Camp, error) {
	if len(ids) == 0 {
		return []models.Camp{}, nil
	}
	var rows []Camp
	if err := s.campQuery(ctx).Where("id IN ?", ids).Order("name ASC").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("camps by id: %w", err)
	}
	return campsToModels(rows), nil
}

// GetCamp returns one camp with its sessions and interests
func (s *Store) GetCamp(ctx context.Context, id string) (models.Camp, error) {
	var row Camp
	err := s.campQuery(ctx).Where("id = ?", id).First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.Camp{}, ErrNotFound
	}
	if err != nil {
		return models.Camp{}, fmt.Errorf("get camp %s: %w", id, err)
	}
	return campToModel(row), nil
}

// CampExists checks a camp id
func (s *Store) CampExists(ctx context.Context, id string) (bool, error) {
	return s.exists(ctx, &Camp{}, id)
}

// SessionExists checks a session id
func (s *Store) SessionExists(ctx context.Context, id string) (bool, error) {
	return s.exists(ctx, &CampSession{}, id)
}

func (s *Store) exists(ctx context.Context, model any, id string) (bool, error) {
	var count int64
	if err := s.db.WithContext(ctx).Model(model).Where("id = ?", id).Count(&count).Error; err != nil {
		return false, fmt.Errorf("lookup %s: %w", id, err)
	}
	return count > 0, nil
}

// SessionsByIDs returns the given sessions with their camp, ordered by start date
func (s *Store) SessionsByIDs(ctx context.Context, ids []string) ([]models.Session, error) {
	if len(ids) == 0 {
		return []models.Session{}, nil
	}
	var rows []CampSession
	err := s.db.WithContext(ctx).
		Preload("Camp").
		Where("id IN ?", ids).
		Order("start_date ASC").
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("sessions by id: %w", err)
	}
	return sessionsToModels(rows), nil
}

// SessionsByDateRange returns sessions starting on or after from and ending on
// or before to. Blank bounds are ignored.
func (s *Store) SessionsByDateRange(ctx context.Context, from, to string) ([]models.Session, error) {
	q := s.db.WithContext(ctx).Preload("Camp").Order("start_date ASC")
	if from != "" {
		q = q.Where("start_date >= ?", from)
	}
	if to != "" {
		q = q.Where("end_date <= ?", to)
	}
	var rows []CampSession
	if err := q.Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("sessions by date range: %w", err)
	}
	return sessionsToModels(rows), nil
}

// Interests returns every interest row ordered by interest name
func (s *Store) Interests(ctx context.Context) ([]models.InterestTag, error) {
	var rows []CampInterest
	if err := s.db.WithContext(ctx).Order("interest_name ASC").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("list interests: %w", err)
	}
	out := make([]models.InterestTag, 0, len(rows))
	for _, r := range rows {
		out = append(out, interestToModel(r))
	}
	return out, nil
}

// RecordSearch bumps today's search counters using a single upsert
func (s *Store) RecordSearch(ctx context.Context, matched int) error {
	today := s.now().Format("2006-01-02")
	err := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "date"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"request_count": gorm.Expr("request_count + ?", 1),
			"total_matched": gorm.Expr("total_matched + ?", matched),
		}),
	}).Create(&SearchUsage{
		Date:         today,
		RequestCount: 1,
		TotalMatched: matched,
	}).Error
	if err != nil {
		return fmt.Errorf("record search: %w", err)
	}
	return nil
}

// Usage returns the most recent days of search usage, newest first
func (s *Store) Usage(ctx context.Context, days int) ([]SearchUsage, error) {
	var usage []SearchUsage
	if err := s.db.WithContext(ctx).Order("date desc").Limit(days).Find(&usage).Error; err != nil {
		return nil, fmt.Errorf("usage: %w", err)
	}
	return usage, nil
}

// TableStatus is the outcome of probing one table
type TableStatus struct {
	Accessible bool   `json:"accessible"`
	Count      int    `json:"count"`
	Error      string `json:"error,omitempty"`
}

// Probe checks that each catalog table can be read
func (s *Store) Probe(ctx context.Context) map[string]TableStatus {
	out := make(map[string]TableStatus, 3)
	for name, model := range map[string]any{
		"camps":          &Camp{},
		"camp_sessions":  &CampSession{},
		"camp_interests": &CampInterest{},
	} {
		var ids []string
		err := s.db.WithContext(ctx).Model(model).Limit(1).Pluck("id", &ids).Error
		if err != nil {
			out[name] = TableStatus{Error: err.Error()}
			continue
		}
		out[name] = TableStatus{Accessible: true, Count: len(ids)}
	}
	return out
}

// ImportCamps upserts camps with their sessions and interests in one transaction
func (s *Store) ImportCamps(ctx context.Context, camps []models.Camp) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, c := range camps {
			row := campFromModel(c)
			sessions, interests := row.Sessions, row.Interests
			row.Sessions, row.Interests = nil, nil

			if err := tx.Clauses(clause.OnConflict{UpdateAll: true}).Create(&row).Error; err != nil {
				return fmt.Errorf("import camp %s: %w", c.ID, err)
			}
			if len(sessions) > 0 {
				if err := tx.Clauses(clause.OnConflict{UpdateAll: true}).Create(&sessions).Error; err != nil {
					return fmt.Errorf("import sessions of %s: %w", c.ID, err)
				}
			}
			if len(interests) > 0 {
				if err := tx.Clauses(clause.OnConflict{UpdateAll: true}).Create(&interests).Error; err != nil {
					return fmt.Errorf("import interests of %s: %w", c.ID, err)
				}
			}
		}
		return nil
	})
}
