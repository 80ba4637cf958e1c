package routes

import (
	"cleancity-be/controllers"

	"github.com/gin-gonic/gin"
)

// ReportRoutes sets up the export, SLA, and analytics routes.
func ReportRoutes(r *gin.Engine, rc *controllers.ReportController) {
	report := r.Group("/api/report")
	{
		report.GET("/export.csv", rc.ExportCSV)
		report.GET("/export.json", rc.ExportJSON)
		report.GET("/overdue", rc.OverdueIssues)
		report.GET("/analytics", rc.GetAnalytics)
	}
}
