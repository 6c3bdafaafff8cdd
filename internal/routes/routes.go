package routes

import (
	"io"

	ginlog "github.com/gin-contrib/logger"
	"github.com/gin-gonic/gin"

	"route_editor/internal/store"
)

// Dependencies are the collaborators the router hands to controllers.
type Dependencies struct {
	Store store.RouteStore
	// JWTSecret protects route updates when non-empty.
	JWTSecret []byte
	// LogWriter receives the access log; nil discards it.
	LogWriter io.Writer
}

func SetupRouter(deps Dependencies) *gin.Engine {
	out := deps.LogWriter
	if out == nil {
		out = io.Discard
	}

	r := gin.New()
	r.Use(
		ginlog.SetLogger(ginlog.WithWriter(out), ginlog.WithSkipPath([]string{"/healthz"})),
		gin.Recovery(),
	)

	HealthRoutes(r, deps)
	RouteRoutes(r, deps)

	return r
}
