package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/HariSeldon343/NexioSolution-sub000/internal/authz"
	"github.com/HariSeldon343/NexioSolution-sub000/internal/schedule"
	"github.com/HariSeldon343/NexioSolution-sub000/internal/services"
)

// tolerant to the types gin context values come back as (int / int64 /
// float64 / string)
func getInt64FromCtx(c *gin.Context, key string) (int64, bool) {
	v, ok := c.Get(key)
	if !ok {
		return 0, false
	}
	switch t := v.(type) {
	case int64:
		return t, true
	case int:
		return int64(t), true
	case float64:
		return int64(t), true
	case string:
		if n, err := strconv.ParseInt(t, 10, 64); err == nil {
			return n, true
		}
	}
	return 0, false
}

// actorFromCtx rebuilds the explicit Actor value every core call receives.
func actorFromCtx(c *gin.Context) authz.Actor {
	var actor authz.Actor
	if id, ok := getInt64FromCtx(c, "user_id"); ok {
		actor.ID = id
	}
	if role, ok := getInt64FromCtx(c, "role_id"); ok {
		actor.RoleID = int(role)
	}
	if company, ok := getInt64FromCtx(c, "company_id"); ok {
		actor.CompanyID = &company
	}
	return actor
}

// viewParams parses the calendar query: view mode (defaults handled by the
// window calculator) and anchor date (today when absent).
func viewParams(c *gin.Context) (schedule.ViewMode, time.Time, error) {
	mode := schedule.ViewMode(c.DefaultQuery("view", string(schedule.ViewList)))
	anchor := time.Now()
	if raw := c.Query("date"); raw != "" {
		d, err := time.Parse("2006-01-02", raw)
		if err != nil {
			return mode, anchor, errors.New("invalid date (2006-01-02)")
		}
		anchor = d
	}
	return mode, anchor, nil
}

// writeCoreError maps core errors onto the boundary: validation and
// authorization failures become user-visible 4xx, everything else an
// opaque 500 (the caller logs the cause).
func writeCoreError(c *gin.Context, err error) bool {
	switch {
	case err == nil:
		return false
	case services.IsValidation(err):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, services.ErrForbidden):
		c.JSON(http.StatusForbidden, gin.H{"error": "forbidden"})
	case errors.Is(err, services.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
	case errors.Is(err, authz.ErrNoCompanySelected):
		// redirect-equivalent precondition: pick a company first
		c.JSON(http.StatusConflict, gin.H{"error": "select a company first"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
	return true
}

func parseIDParam(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return 0, false
	}
	return id, true
}
