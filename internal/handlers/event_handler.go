package handlers

import (
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/HariSeldon343/NexioSolution-sub000/internal/models"
	"github.com/HariSeldon343/NexioSolution-sub000/internal/services"
)

type EventHandler struct {
	service services.EventService
}

func NewEventHandler(service services.EventService) *EventHandler {
	return &EventHandler{service: service}
}

// @Summary      Create event
// @Tags         Events
// @Accept       json
// @Produce      json
// @Param        event  body      models.EventInput  true  "Event"
// @Success      201    {object}  models.Event
// @Failure      400    {object}  map[string]string
// @Router       /events [post]
func (h *EventHandler) Create(c *gin.Context) {
	actor := actorFromCtx(c)
	log.Printf("[event][create] call by user=%d role=%d", actor.ID, actor.RoleID)

	var input models.EventInput
	if err := c.ShouldBindJSON(&input); err != nil {
		log.Printf("[event][create][bind][err] %v", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	input.ID = 0

	event, err := h.service.Save(c.Request.Context(), actor, input)
	if err != nil {
		log.Printf("[event][create][err] %v", err)
		writeCoreError(c, err)
		return
	}
	log.Printf("[event][create][ok] id=%d participants=%d", event.ID, len(event.Participants))
	c.JSON(http.StatusCreated, event)
}

// @Summary      Update event
// @Tags         Events
// @Accept       json
// @Produce      json
// @Param        id     path      int                true  "Event ID"
// @Param        event  body      models.EventInput  true  "Event"
// @Success      200    {object}  models.Event
// @Router       /events/{id} [put]
func (h *EventHandler) Update(c *gin.Context) {
	actor := actorFromCtx(c)
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	var input models.EventInput
	if err := c.ShouldBindJSON(&input); err != nil {
		log.Printf("[event][update][bind][err] %v", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	input.ID = id

	event, err := h.service.Save(c.Request.Context(), actor, input)
	if err != nil {
		log.Printf("[event][update][err] id=%d: %v", id, err)
		writeCoreError(c, err)
		return
	}
	log.Printf("[event][update][ok] id=%d", id)
	c.JSON(http.StatusOK, event)
}

// @Summary      Get event
// @Tags         Events
// @Produce      json
// @Param        id  path      int  true  "Event ID"
// @Success      200 {object}  models.Event
// @Router       /events/{id} [get]
func (h *EventHandler) GetByID(c *gin.Context) {
	actor := actorFromCtx(c)
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	event, err := h.service.GetByID(c.Request.Context(), actor, id)
	if err != nil {
		log.Printf("[event][getByID][err] id=%d: %v", id, err)
		writeCoreError(c, err)
		return
	}
	c.JSON(http.StatusOK, event)
}

// @Summary      Calendar events
// @Tags         Events
// @Produce      json
// @Param        view        query     string  false  "day|week|month|list"
// @Param        date        query     string  false  "anchor date 2006-01-02"
// @Param        company_id  query     int     false  "narrow by company (super only)"
// @Success      200         {array}   models.Event
// @Router       /events [get]
func (h *EventHandler) List(c *gin.Context) {
	actor := actorFromCtx(c)
	mode, anchor, err := viewParams(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var filter models.EventFilter
	if v, ok := c.GetQuery("company_id"); ok {
		if id, err := strconv.ParseInt(v, 10, 64); err == nil {
			filter.CompanyID = &id
		}
	}
	if v, ok := c.GetQuery("category"); ok {
		filter.Category = &v
	}

	events, err := h.service.Calendar(c.Request.Context(), actor, mode, anchor, filter)
	if err != nil {
		log.Printf("[event][list][err] %v", err)
		writeCoreError(c, err)
		return
	}
	log.Printf("[event][list][ok] view=%s count=%d", mode, len(events))
	c.JSON(http.StatusOK, events)
}

// @Summary      Delete event
// @Tags         Events
// @Param        id  path  int  true  "Event ID"
// @Success      204
// @Router       /events/{id} [delete]
func (h *EventHandler) Delete(c *gin.Context) {
	actor := actorFromCtx(c)
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	if err := h.service.Delete(c.Request.Context(), actor, id); err != nil {
		log.Printf("[event][delete][err] id=%d: %v", id, err)
		writeCoreError(c, err)
		return
	}
	log.Printf("[event][delete][ok] id=%d", id)
	c.Status(http.StatusNoContent)
}
