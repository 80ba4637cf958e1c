package routes

import (
	"cleancity-be/controllers"
	"cleancity-be/middlewares"

	"github.com/gin-gonic/gin"
)

// IssueRoutes sets up the issue routes.
func IssueRoutes(r *gin.Engine, ic *controllers.IssueController, rateLimit int) {
	issue := r.Group("/api/issue")
	{
		issue.POST("/create", middlewares.IssueRateLimiter(rateLimit), ic.CreateIssue)
		issue.GET("/", ic.GetAllIssues)
		issue.GET("/recent", ic.RecentIssues)
		issue.GET("/:id", ic.GetIssue)
		issue.PUT("/:id", ic.UpdateIssue)
		issue.PUT("/:id/status", ic.UpdateIssueStatus)
		issue.POST("/:id/assign", ic.AssignIssue)
		issue.POST("/:id/proof", ic.UploadProof)
	}
}
