package handlers

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/arnavshah/campfinder-api/pkg/database"
	"github.com/arnavshah/campfinder-api/pkg/filter"
	"github.com/arnavshah/campfinder-api/pkg/logging"
	"github.com/arnavshah/campfinder-api/pkg/models"
	"github.com/arnavshah/campfinder-api/pkg/savedset"
	"github.com/gin-gonic/gin"
)

// Version is reported on the root route
const Version = "1.0.0"

// SavedSetHeader carries the signed saved set snapshot
const SavedSetHeader = "X-Saved-Set"

// Catalog is the read side of the camp database plus usage bookkeeping
type Catalog interface {
	ListCamps(ctx context.Context, query string) ([]models.Camp, error)
	CampsByIDs(ctx context.Context, ids []string) ([]models.Camp, error)
	GetCamp(ctx context.Context, id string) (models.Camp, error)
	CampExists(ctx context.Context, id string) (bool, error)
	SessionExists(ctx context.Context, id string) (bool, error)
	SessionsByIDs(ctx context.Context, ids []string) ([]models.Session, error)
	SessionsByDateRange(ctx context.Context, from, to string) ([]models.Session, error)
	Interests(ctx context.Context) ([]models.InterestTag, error)
	RecordSearch(ctx context.Context, matched int) error
	Usage(ctx context.Context, days int) ([]database.SearchUsage, error)
	Probe(ctx context.Context) map[string]database.TableStatus
}

// Handler contains dependencies for the route handlers
type Handler struct {
	Catalog Catalog
	Tokens  *savedset.Codec
	Log     *slog.Logger
}

// NewRouter wires every route onto a fresh gin engine
func NewRouter(h *Handler) *gin.Engine {
	r := gin.New()
	r.Use(logging.GinMiddleware(h.Log), gin.Recovery())

	r.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "Camp Finder API",
			"version": Version,
		})
	})

	api := r.Group("/api")
	{
		api.GET("/camps", h.ListCamps)
		api.GET("/camps/:id", h.GetCamp)
		api.POST("/camps/:id/save", h.SaveCamp)
		api.DELETE("/camps/:id/save", h.UnsaveCamp)
		api.PATCH("/camps/:id/save", h.ToggleCamp)

		api.GET("/sessions", h.ListSessions)
		api.POST("/sessions/:id/save", h.SaveSession)
		api.DELETE("/sessions/:id/save", h.UnsaveSession)
		api.PATCH("/sessions/:id/save", h.ToggleSession)

		api.GET("/saved", h.GetSaved)
		api.GET("/interests", h.ListInterests)
		api.GET("/usage", h.GetUsage)
		api.GET("/test-connection", h.TestConnection)
	}

	return r
}

// ListCamps filters the catalog by the query parameters
func (h *Handler) ListCamps(c *gin.Context) {
	criteria := ParseCriteria(c.Request.URL.Query())
	ctx := c.Request.Context()

	camps, err := h.Catalog.ListCamps(ctx, criteria.Query)
	if err != nil {
		h.Log.Error("list camps", slog.Any("error", err))
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Unable to load camps at this time.",
			"camps": []models.Camp{},
		})
		return
	}

	saved := h.savedSessions(c, criteria)
	matched := filter.Camps(camps, criteria, saved)

	if err := h.Catalog.RecordSearch(ctx, len(matched)); err != nil {
		h.Log.Warn("record search usage", slog.Any("error", err))
	}

	c.JSON(http.StatusOK, models.CampsResponse{Camps: matched})
}

// savedSessions resolves the caller's saved sessions for conflict hiding.
// Any failure disables the conflict check instead of failing the request.
func (h *Handler) savedSessions(c *gin.Context, criteria models.Criteria) []models.Session {
	if !criteria.HideConflicts {
		return nil
	}

	set, err := h.Tokens.DecodeFor(savedSetToken(c), criteria.ChildID)
	if err != nil {
		h.Log.Warn("conflict check disabled", slog.String("reason", "saved set"), slog.Any("error", err))
		return nil
	}
	if len(set.SessionIDs) == 0 {
		return nil
	}

	sessions, err := h.Catalog.SessionsByIDs(c.Request.Context(), set.SessionIDs)
	if err != nil {
		h.Log.Warn("conflict check disabled", slog.String("reason", "session lookup"), slog.Any("error", err))
		return nil
	}
	return sessions
}

// GetCamp returns a single camp. When the caller sends a saved set the
// response also lists which sessions clash with saved ones.
func (h *Handler) GetCamp(c *gin.Context) {
	id := c.Param("id")
	camp, err := h.Catalog.GetCamp(c.Request.Context(), id)
	if errors.Is(err, database.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Camp not found"})
		return
	}
	if err != nil {
		h.Log.Error("get camp", slog.String("camp_id", id), slog.Any("error", err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Unable to load camp details"})
		return
	}

	resp := gin.H{"camp": camp}
	if token := savedSetToken(c); token != "" {
		set, err := h.Tokens.DecodeFor(token, c.Query("childId"))
		if err == nil {
			resp["saved"] = savedset.Contains(set.CampIDs, camp.ID)
			resp["conflicts"] = h.conflictReports(c, camp, set)
		}
	}
	c.JSON(http.StatusOK, resp)
}

func (h *Handler) conflictReports(c *gin.Context, camp models.Camp, set models.SavedSet) []models.ConflictReport {
	reports := []models.ConflictReport{}
	if len(set.SessionIDs) == 0 {
		return reports
	}
	saved, err := h.Catalog.SessionsByIDs(c.Request.Context(), set.SessionIDs)
	if err != nil {
		h.Log.Warn("conflict report skipped", slog.Any("error", err))
		return reports
	}
	return append(reports, filter.ConflictReports(camp, saved)...)
}

// ListSessions returns sessions by id, or by date range when no ids are given
func (h *Handler) ListSessions(c *gin.Context) {
	ctx := c.Request.Context()
	ids := multiValue(c.QueryArray("id"), false)

	var sessions []models.Session
	var err error
	switch {
	case len(ids) > 0:
		sessions, err = h.Catalog.SessionsByIDs(ctx, ids)
	default:
		from, to := dateParam(c, "from"), dateParam(c, "to")
		if from == "" && to == "" {
			c.JSON(http.StatusOK, gin.H{"sessions": []models.Session{}})
			return
		}
		sessions, err = h.Catalog.SessionsByDateRange(ctx, from, to)
	}
	if err != nil {
		h.Log.Error("list sessions", slog.Any("error", err))
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":    "Unable to load sessions",
			"sessions": []models.Session{},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{"sessions": sessions})
}

// dateParam returns a normalized date query value or "" when unparseable
func dateParam(c *gin.Context, key string) string {
	t, ok := filter.ParseDate(c.Query(key))
	if !ok {
		return ""
	}
	return t.Format("2006-01-02")
}

// ListInterests returns the deduplicated interest vocabulary
func (h *Handler) ListInterests(c *gin.Context) {
	tags, err := h.Catalog.Interests(c.Request.Context())
	if err != nil {
		h.Log.Error("list interests", slog.Any("error", err))
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":     "Unable to load interests",
			"interests": []string{},
		})
		return
	}
	c.JSON(http.StatusOK, gin.H{"interests": filter.Vocabulary(tags)})
}

// savedSetToken reads the snapshot from the header, falling back to the query
func savedSetToken(c *gin.Context) string {
	if token := c.GetHeader(SavedSetHeader); token != "" {
		return token
	}
	return c.Query("saved_set")
}
