package handlers

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/arnavshah/campfinder-api/pkg/models"
	"github.com/arnavshah/campfinder-api/pkg/savedset"
	"github.com/gin-gonic/gin"
)

type saveAction int

const (
	actionSave saveAction = iota
	actionUnsave
	actionToggle
)

// savedKind describes one of the two bookmarkable collections
type savedKind struct {
	noun   string
	exists func(ctx context.Context, id string) (bool, error)
	ids    func(set *models.SavedSet) *[]string
	fill   func(resp *models.SaveResponse, id string)
}

func (h *Handler) campKind() savedKind {
	return savedKind{
		noun:   "Camp",
		exists: h.Catalog.CampExists,
		ids:    func(set *models.SavedSet) *[]string { return &set.CampIDs },
		fill:   func(resp *models.SaveResponse, id string) { resp.CampID = id },
	}
}

func (h *Handler) sessionKind() savedKind {
	return savedKind{
		noun:   "Session",
		exists: h.Catalog.SessionExists,
		ids:    func(set *models.SavedSet) *[]string { return &set.SessionIDs },
		fill:   func(resp *models.SaveResponse, id string) { resp.SessionID = id },
	}
}

// SaveCamp bookmarks a camp
func (h *Handler) SaveCamp(c *gin.Context) { h.updateSaved(c, h.campKind(), actionSave) }

// UnsaveCamp removes a camp bookmark
func (h *Handler) UnsaveCamp(c *gin.Context) { h.updateSaved(c, h.campKind(), actionUnsave) }

// ToggleCamp flips a camp bookmark
func (h *Handler) ToggleCamp(c *gin.Context) { h.updateSaved(c, h.campKind(), actionToggle) }

// SaveSession bookmarks a session
func (h *Handler) SaveSession(c *gin.Context) { h.updateSaved(c, h.sessionKind(), actionSave) }

// UnsaveSession removes a session bookmark
func (h *Handler) UnsaveSession(c *gin.Context) { h.updateSaved(c, h.sessionKind(), actionUnsave) }

// ToggleSession flips a session bookmark
func (h *Handler) ToggleSession(c *gin.Context) { h.updateSaved(c, h.sessionKind(), actionToggle) }

// updateSaved validates the id and returns the re-signed snapshot. The server
// never stores the set.
func (h *Handler) updateSaved(c *gin.Context, kind savedKind, action saveAction) {
	id := c.Param("id")

	ok, err := kind.exists(c.Request.Context(), id)
	if err != nil {
		h.Log.Error("save lookup", slog.String("kind", kind.noun), slog.String("id", id), slog.Any("error", err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "An error occurred while saving the " + strings.ToLower(kind.noun)})
		return
	}
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": kind.noun + " not found"})
		return
	}

	set, err := h.Tokens.DecodeFor(savedSetToken(c), c.Query("childId"))
	if err != nil {
		status := http.StatusBadRequest
		if errors.Is(err, savedset.ErrChildMismatch) {
			status = http.StatusForbidden
		}
		c.JSON(status, gin.H{"error": err.Error()})
		return
	}

	ids := kind.ids(&set)
	var saved bool
	switch action {
	case actionSave:
		*ids, saved = savedset.Set(*ids, id, true), true
	case actionUnsave:
		*ids, saved = savedset.Set(*ids, id, false), false
	default:
		*ids, saved = savedset.Toggle(*ids, id)
	}

	token, err := h.Tokens.Encode(set)
	if err != nil {
		h.Log.Error("encode saved set", slog.Any("error", err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "An error occurred while saving the " + strings.ToLower(kind.noun)})
		return
	}

	message := kind.noun + " saved"
	if !saved {
		message = kind.noun + " unsaved"
	}
	resp := models.SaveResponse{
		Success:  true,
		Message:  message,
		Saved:    saved,
		SavedSet: token,
	}
	kind.fill(&resp, id)

	c.Header(SavedSetHeader, token)
	c.JSON(http.StatusOK, resp)
}

// GetSaved expands the caller's saved set into full camp and session records
func (h *Handler) GetSaved(c *gin.Context) {
	set, err := h.Tokens.DecodeFor(savedSetToken(c), c.Query("childId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx := c.Request.Context()
	camps, err := h.Catalog.CampsByIDs(ctx, set.CampIDs)
	if err != nil {
		h.Log.Error("saved camps", slog.Any("error", err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Unable to load saved camps."})
		return
	}
	sessions, err := h.Catalog.SessionsByIDs(ctx, set.SessionIDs)
	if err != nil {
		h.Log.Error("saved sessions", slog.Any("error", err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Unable to load saved sessions."})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"camps":    camps,
		"sessions": sessions,
		"savedSet": set,
	})
}
