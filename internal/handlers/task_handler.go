package handlers

import (
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/HariSeldon343/NexioSolution-sub000/internal/models"
	"github.com/HariSeldon343/NexioSolution-sub000/internal/services"
)

type TaskHandler struct {
	service services.TaskService
}

func NewTaskHandler(service services.TaskService) *TaskHandler {
	return &TaskHandler{service: service}
}

// @Summary      Create task
// @Tags         Tasks
// @Accept       json
// @Produce      json
// @Param        task  body      models.TaskInput  true  "Task"
// @Success      201   {object}  models.Task
// @Failure      400   {object}  map[string]string
// @Failure      403   {object}  map[string]string
// @Router       /tasks [post]
func (h *TaskHandler) Create(c *gin.Context) {
	actor := actorFromCtx(c)
	log.Printf("[task][create] call by user=%d role=%d", actor.ID, actor.RoleID)

	var input models.TaskInput
	if err := c.ShouldBindJSON(&input); err != nil {
		log.Printf("[task][create][bind][err] %v", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	input.ID = 0

	task, err := h.service.Save(c.Request.Context(), actor, input)
	if err != nil {
		log.Printf("[task][create][err] %v", err)
		writeCoreError(c, err)
		return
	}
	log.Printf("[task][create][ok] id=%d assignees=%d", task.ID, len(task.Assignments))
	c.JSON(http.StatusCreated, task)
}

// @Summary      Update task
// @Tags         Tasks
// @Accept       json
// @Produce      json
// @Param        id    path      int               true  "Task ID"
// @Param        task  body      models.TaskInput  true  "Task"
// @Success      200   {object}  models.Task
// @Failure      400   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Router       /tasks/{id} [put]
func (h *TaskHandler) Update(c *gin.Context) {
	actor := actorFromCtx(c)
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	log.Printf("[task][update] call by user=%d role=%d id=%d", actor.ID, actor.RoleID, id)

	var input models.TaskInput
	if err := c.ShouldBindJSON(&input); err != nil {
		log.Printf("[task][update][bind][err] %v", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	input.ID = id

	task, err := h.service.Save(c.Request.Context(), actor, input)
	if err != nil {
		log.Printf("[task][update][err] id=%d: %v", id, err)
		writeCoreError(c, err)
		return
	}
	log.Printf("[task][update][ok] id=%d", id)
	c.JSON(http.StatusOK, task)
}

// @Summary      Get task
// @Tags         Tasks
// @Produce      json
// @Param        id  path      int  true  "Task ID"
// @Success      200 {object}  models.Task
// @Failure      404 {object}  map[string]string
// @Router       /tasks/{id} [get]
func (h *TaskHandler) GetByID(c *gin.Context) {
	actor := actorFromCtx(c)
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	task, err := h.service.GetByID(c.Request.Context(), actor, id)
	if err != nil {
		log.Printf("[task][getByID][err] id=%d: %v", id, err)
		writeCoreError(c, err)
		return
	}
	c.JSON(http.StatusOK, task)
}

// @Summary      Calendar tasks
// @Description  Tasks touching the window of the requested view mode
// @Tags         Tasks
// @Produce      json
// @Param        view     query     string  false  "day|week|month|list"
// @Param        date     query     string  false  "anchor date 2006-01-02"
// @Param        user_id  query     int     false  "narrow by assignee (super only)"
// @Success      200      {array}   models.Task
// @Router       /tasks [get]
func (h *TaskHandler) List(c *gin.Context) {
	actor := actorFromCtx(c)
	mode, anchor, err := viewParams(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var filter models.TaskFilter
	if v, ok := c.GetQuery("user_id"); ok {
		if id, err := strconv.ParseInt(v, 10, 64); err == nil {
			filter.UserID = &id
		} else {
			log.Printf("[task][list][warn] bad user_id=%q: %v", v, err)
		}
	}
	if v, ok := c.GetQuery("company_id"); ok {
		if id, err := strconv.ParseInt(v, 10, 64); err == nil {
			filter.CompanyID = &id
		}
	}
	if v, ok := c.GetQuery("status"); ok {
		st := models.TaskStatus(v)
		filter.Status = &st
	}

	tasks, err := h.service.Calendar(c.Request.Context(), actor, mode, anchor, filter)
	if err != nil {
		log.Printf("[task][list][err] %v", err)
		writeCoreError(c, err)
		return
	}
	log.Printf("[task][list][ok] view=%s count=%d", mode, len(tasks))
	c.JSON(http.StatusOK, tasks)
}

// @Summary      Change task status
// @Tags         Tasks
// @Accept       json
// @Produce      json
// @Param        id    path      int  true  "Task ID"
// @Success      200   {object}  models.Task
// @Failure      409   {object}  map[string]string
// @Router       /tasks/{id}/status [post]
func (h *TaskHandler) ChangeStatus(c *gin.Context) {
	actor := actorFromCtx(c)
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var body struct {
		To models.TaskStatus `json:"to" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	task, err := h.service.ChangeStatus(c.Request.Context(), actor, id, body.To)
	if err != nil {
		if services.IsValidation(err) {
			log.Printf("[task][status][deny] id=%d to=%q: %v", id, body.To, err)
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
			return
		}
		log.Printf("[task][status][err] id=%d: %v", id, err)
		writeCoreError(c, err)
		return
	}
	log.Printf("[task][status][ok] id=%d new=%q", id, body.To)
	c.JSON(http.StatusOK, task)
}

// @Summary      Delete task
// @Tags         Tasks
// @Param        id  path  int  true  "Task ID"
// @Success      204
// @Router       /tasks/{id} [delete]
func (h *TaskHandler) Delete(c *gin.Context) {
	actor := actorFromCtx(c)
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	if err := h.service.Delete(c.Request.Context(), actor, id); err != nil {
		log.Printf("[task][delete][err] id=%d: %v", id, err)
		writeCoreError(c, err)
		return
	}
	log.Printf("[task][delete][ok] id=%d", id)
	c.Status(http.StatusNoContent)
}
