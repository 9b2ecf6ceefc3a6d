package routes

import (
	"github.com/dtan16/health-tracker/controllers"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func SetupRouter(lc *controllers.LogController) *gin.Engine {
	r := gin.Default()

	// browser SPA lives on another origin
	r.Use(cors.Default())

	api := r.Group("/api")
	{
		api.GET("/health", lc.Health)
		api.GET("/logs", lc.ListLogs)
		api.POST("/logs", lc.CreateLog)
		api.GET("/logs/stream", lc.StreamLogs)
	}

	return r
}
