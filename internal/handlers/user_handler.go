package handlers

import (
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/HariSeldon343/NexioSolution-sub000/internal/services"
)

type UserHandler struct {
	service services.UserService
}

func NewUserHandler(service services.UserService) *UserHandler {
	return &UserHandler{service: service}
}

// @Summary      Assignable users
// @Description  Users the caller may pick as task assignees or event participants
// @Tags         Users
// @Produce      json
// @Param        company_id  query     int  false  "company (super only)"
// @Success      200         {array}   models.User
// @Router       /users/assignable [get]
func (h *UserHandler) ListAssignable(c *gin.Context) {
	actor := actorFromCtx(c)

	var companyID int64
	if v, ok := c.GetQuery("company_id"); ok {
		if id, err := strconv.ParseInt(v, 10, 64); err == nil {
			companyID = id
		}
	}

	users, err := h.service.ListAssignable(c.Request.Context(), actor, companyID)
	if err != nil {
		log.Printf("[user][assignable][err] %v", err)
		writeCoreError(c, err)
		return
	}
	c.JSON(http.StatusOK, users)
}
