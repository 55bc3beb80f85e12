package database

import (
	"github.com/arnavshah/campfinder-api/pkg/models"
)

func campsToModels(rows []Camp) []models.Camp {
	out := make([]models.Camp, 0, len(rows))
	for _, r := range rows {
		out = append(out, campToModel(r))
	}
	return out
}

func campToModel(r Camp) models.Camp {
	c := models.Camp{
		ID:          r.ID,
		Name:        r.Name,
		Location:    r.Location,
		Description: r.Description,
		WebsiteURL:  r.WebsiteURL,
		ZipcodeID:   r.ZipcodeID,
		Sessions:    make([]models.Session, 0, len(r.Sessions)),
		Interests:   make([]models.InterestTag, 0, len(r.Interests)),
	}
	if !r.CreatedAt.IsZero() {
		created := r.CreatedAt
		c.CreatedAt = &created
	}
	if !r.UpdatedAt.IsZero() {
		updated := r.UpdatedAt
		c.UpdatedAt = &updated
	}
	for _, s := range r.Sessions {
		c.Sessions = append(c.Sessions, sessionToModel(s))
	}
	for _, i := range r.Interests {
		c.Interests = append(c.Interests, interestToModel(i))
	}
	return c
}

func sessionsToModels(rows []CampSession) []models.Session {
	out := make([]models.Session, 0, len(rows))
	for _, r := range rows {
		out = append(out, sessionToModel(r))
	}
	return out
}

func sessionToModel(r CampSession) models.Session {
	s := models.Session{
		ID:         r.ID,
		CampID:     r.CampID,
		Name:       r.Name,
		Label:      r.Label,
		StartDate:  r.StartDate,
		EndDate:    r.EndDate,
		StartTime:  r.StartTime,
		EndTime:    r.EndTime,
		DaysOfWeek: r.DaysOfWeek,
		MinAge:     r.MinAge,
		MaxAge:     r.MaxAge,
		Price:      r.Price,
		Capacity:   r.Capacity,
	}
	if r.Camp != nil {
		s.Camp = &models.CampSummary{ID: r.Camp.ID, Name: r.Camp.Name, Location: r.Camp.Location}
	}
	return s
}

func interestToModel(r CampInterest) models.InterestTag {
	return models.NewInterestTag(r.ID, r.Tag, r.InterestName)
}

func campFromModel(c models.Camp) Camp {
	row := Camp{
		ID:          c.ID,
		Name:        c.Name,
		Location:    c.Location,
		Description: c.Description,
		WebsiteURL:  c.WebsiteURL,
		ZipcodeID:   c.ZipcodeID,
	}
	for _, s := range c.Sessions {
		row.Sessions = append(row.Sessions, CampSession{
			ID:         s.ID,
			CampID:     c.ID,
			Name:       s.Name,
			Label:      s.Label,
			StartDate:  s.StartDate,
			EndDate:    s.EndDate,
			StartTime:  s.StartTime,
			EndTime:    s.EndTime,
			DaysOfWeek: s.DaysOfWeek,
			MinAge:     s.MinAge,
			MaxAge:     s.MaxAge,
			Price:      s.Price,
			Capacity:   s.Capacity,
		})
	}
	for _, i := range c.Interests {
		row.Interests = append(row.Interests, CampInterest{
			ID:           i.ID,
			CampID:       c.ID,
			Tag:          i.Tag,
			InterestName: i.InterestName,
		})
	}
	return row
}
