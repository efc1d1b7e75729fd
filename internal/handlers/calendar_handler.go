package handlers

import (
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/HariSeldon343/NexioSolution-sub000/internal/authz"
	"github.com/HariSeldon343/NexioSolution-sub000/internal/models"
	"github.com/HariSeldon343/NexioSolution-sub000/internal/pdf"
	"github.com/HariSeldon343/NexioSolution-sub000/internal/schedule"
	"github.com/HariSeldon343/NexioSolution-sub000/internal/services"
)

// CalendarHandler serves the combined calendar: events plus, for elevated
// roles, the tasks touching the same window.
type CalendarHandler struct {
	events services.EventService
	tasks  services.TaskService
	agenda pdf.Generator
}

func NewCalendarHandler(events services.EventService, tasks services.TaskService, agenda pdf.Generator) *CalendarHandler {
	return &CalendarHandler{events: events, tasks: tasks, agenda: agenda}
}

type calendarResponse struct {
	View   schedule.ViewMode `json:"view"`
	From   string            `json:"from"`
	To     string            `json:"to,omitempty"`
	Events []models.Event    `json:"events"`
	Tasks  []models.Task     `json:"tasks,omitempty"`
}

// @Summary      Calendar
// @Description  Events and tasks for the requested view window
// @Tags         Calendar
// @Produce      json
// @Param        view  query     string  false  "day|week|month|list"
// @Param        date  query     string  false  "anchor date 2006-01-02"
// @Success      200   {object}  calendarResponse
// @Router       /calendar [get]
func (h *CalendarHandler) Get(c *gin.Context) {
	actor := actorFromCtx(c)
	mode, anchor, err := viewParams(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	events, tasks, win, err := h.collect(c, actor, mode, anchor)
	if err != nil {
		log.Printf("[calendar][get][err] %v", err)
		writeCoreError(c, err)
		return
	}

	resp := calendarResponse{
		View:   mode,
		From:   win.From.Format("2006-01-02"),
		Events: events,
		Tasks:  tasks,
	}
	if !win.OpenEnded {
		resp.To = win.To.Format("2006-01-02")
	}
	log.Printf("[calendar][get][ok] view=%s events=%d tasks=%d", mode, len(events), len(tasks))
	c.JSON(http.StatusOK, resp)
}

// @Summary      Export agenda PDF
// @Tags         Calendar
// @Produce      application/pdf
// @Param        view  query  string  false  "day|week|month"
// @Param        date  query  string  false  "anchor date 2006-01-02"
// @Router       /calendar/export [get]
func (h *CalendarHandler) Export(c *gin.Context) {
	actor := actorFromCtx(c)
	mode, anchor, err := viewParams(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if mode == schedule.ViewList {
		// the export needs a bounded range
		mode = schedule.ViewMonth
	}

	events, tasks, win, err := h.collect(c, actor, mode, anchor)
	if err != nil {
		log.Printf("[calendar][export][err] %v", err)
		writeCoreError(c, err)
		return
	}

	path, err := h.agenda.GenerateAgenda(pdf.AgendaData{
		From:   win.From,
		To:     win.To,
		Events: events,
		Tasks:  tasks,
	})
	if err != nil {
		log.Printf("[calendar][export][err] pdf: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to generate agenda"})
		return
	}
	log.Printf("[calendar][export][ok] view=%s file=%s", mode, path)
	c.FileAttachment(path, "agenda.pdf")
}

func (h *CalendarHandler) collect(c *gin.Context, actor authz.Actor, mode schedule.ViewMode, anchor time.Time) ([]models.Event, []models.Task, schedule.Window, error) {
	win := schedule.ComputeWindow(mode, anchor)

	events, err := h.events.Calendar(c.Request.Context(), actor, mode, anchor, models.EventFilter{})
	if err != nil {
		return nil, nil, win, err
	}

	var tasks []models.Task
	if authz.CanViewTasks(actor.RoleID) {
		tasks, err = h.tasks.Calendar(c.Request.Context(), actor, mode, anchor, models.TaskFilter{})
		if err != nil {
			return nil, nil, win, err
		}
	}
	return events, tasks, win, nil
}
