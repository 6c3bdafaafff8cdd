package routes

import (
	"route_editor/internal/controllers"
	"route_editor/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RouteRoutes(r *gin.Engine, deps Dependencies) {
	rc := controllers.NewRouteController(deps.Store)

	update := []gin.HandlerFunc{rc.UpdateRoute}
	if len(deps.JWTSecret) > 0 {
		update = append([]gin.HandlerFunc{middleware.RequireAuthWithRole(deps.JWTSecret, middleware.RoleEditor)}, update...)
	}

	api := r.Group("/api")
	{
		api.GET("/routes", rc.ListRoutes)
		api.POST("/routes/update", update...)
	}
}
