package routes

import (
	"cleancity-be/controllers"

	"github.com/gin-gonic/gin"
)

// WorkerRoutes sets up the roster admin routes.
func WorkerRoutes(r *gin.Engine, wc *controllers.WorkerController) {
	worker := r.Group("/api/worker")
	{
		worker.GET("/", wc.ListWorkers)
		worker.POST("/", wc.CreateWorker)
		worker.PUT("/:id/active", wc.SetWorkerActive)
	}
}
