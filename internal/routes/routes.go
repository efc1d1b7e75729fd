package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/HariSeldon343/NexioSolution-sub000/internal/authz"
	"github.com/HariSeldon343/NexioSolution-sub000/internal/handlers"
	"github.com/HariSeldon343/NexioSolution-sub000/internal/middleware"
)

func SetupRoutes(
	r *gin.Engine,
	authHandler *handlers.AuthHandler,
	userHandler *handlers.UserHandler,
	companyHandler *handlers.CompanyHandler,
	calendarHandler *handlers.CalendarHandler,
	eventHandler *handlers.EventHandler,
	taskHandler *handlers.TaskHandler,
) *gin.Engine {

	// ---- public
	r.POST("/login", authHandler.Login)

	// ---- protected
	r.Use(middleware.AuthMiddleware())

	r.GET("/users/assignable", userHandler.ListAssignable)
	r.GET("/companies", companyHandler.List)

	// CALENDAR (all authenticated roles; tasks appear only for elevated)
	cal := r.Group("/calendar")
	{
		cal.GET("", calendarHandler.Get)
		cal.GET("/export", calendarHandler.Export)
	}

	// EVENTS
	events := r.Group("/events")
	{
		events.GET("", eventHandler.List)
		events.GET("/:id", eventHandler.GetByID)
		events.POST("", middleware.RequireRoles(authz.RoleManager, authz.RoleSpecial, authz.RoleSuperAdmin), eventHandler.Create)
		events.PUT("/:id", middleware.RequireRoles(authz.RoleManager, authz.RoleSpecial, authz.RoleSuperAdmin), eventHandler.Update)
		events.DELETE("/:id", middleware.RequireRoles(authz.RoleManager, authz.RoleSpecial, authz.RoleSuperAdmin), eventHandler.Delete)
	}

	// TASKS (special + super only)
	tasks := r.Group("/tasks", middleware.RequireRoles(authz.RoleSpecial, authz.RoleSuperAdmin))
	{
		tasks.POST("", taskHandler.Create)
		tasks.GET("", taskHandler.List)
		tasks.GET("/:id", taskHandler.GetByID)
		tasks.PUT("/:id", taskHandler.Update)
		tasks.DELETE("/:id", taskHandler.Delete)
		tasks.POST("/:id/status", taskHandler.ChangeStatus)
	}

	return r
}
