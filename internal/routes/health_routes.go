package routes

import (
	"route_editor/internal/controllers"

	"github.com/gin-gonic/gin"
)

func HealthRoutes(r *gin.Engine, deps Dependencies) {
	r.GET("/healthz", controllers.Health(deps.Store))
}
