package controllers

import (
	"net/http"
	"time"

	"cleancity-be/dispatch"
	"cleancity-be/export"
	"cleancity-be/models"
	"cleancity-be/repository"

	"github.com/gin-gonic/gin"
	"github.com/montanaflynn/stats"
)

// ReportController serves exports, the SLA poll surface, and analytics.
type ReportController struct {
	issues repository.IssueRepository
	engine *dispatch.Engine
}

func NewReportController(issues repository.IssueRepository, engine *dispatch.Engine) *ReportController {
	return &ReportController{issues: issues, engine: engine}
}

func (rc *ReportController) filteredSnapshot(c *gin.Context) ([]models.Issue, bool) {
	filter := repository.IssueFilter{
		Category: c.Query("category"),
		Status:   c.Query("status"),
		Search:   c.Query("search"),
		Sort:     c.DefaultQuery("sort", "newest"),
	}

	issues, err := rc.issues.List(c.Request.Context(), filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve issues"})
		return nil, false
	}
	return issues, true
}

// ExportCSV downloads the filtered issue snapshot as delimited text.
func (rc *ReportController) ExportCSV(c *gin.Context) {
	issues, ok := rc.filteredSnapshot(c)
	if !ok {
		return
	}

	c.Header("Content-Disposition", `attachment; filename="issues.csv"`)
	c.Data(http.StatusOK, "text/csv; charset=utf-8", []byte(export.ToCSV(issues)))
}

// ExportJSON downloads the filtered issue snapshot as indented JSON.
func (rc *ReportController) ExportJSON(c *gin.Context) {
	issues, ok := rc.filteredSnapshot(c)
	if !ok {
		return
	}

	out, err := export.ToJSON(issues)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to serialize issues"})
		return
	}

	c.Header("Content-Disposition", `attachment; filename="issues.json"`)
	c.Data(http.StatusOK, "application/json", []byte(out))
}

// OverdueIssues is the poll surface for SLA breaches. External notifiers call
// it; nothing escalates automatically.
func (rc *ReportController) OverdueIssues(c *gin.Context) {
	now := time.Now()

	overdue, err := rc.engine.OverdueIssues(c.Request.Context(), now)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve overdue issues"})
		return
	}

	views := make([]issueView, 0, len(overdue))
	for _, issue := range overdue {
		views = append(views, viewOf(issue, now))
	}

	c.JSON(http.StatusOK, gin.H{
		"overdueIssues": views,
		"count":         len(views),
		"checkedAt":     now.UnixMilli(),
	})
}

// GetAnalytics returns issue totals, per-category counts, and resolution-time
// statistics for the dashboard.
func (rc *ReportController) GetAnalytics(c *gin.Context) {
	issues, err := rc.issues.List(c.Request.Context(), repository.IssueFilter{})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve issues"})
		return
	}

	now := time.Now()
	byCategory := map[models.IssueCategory]int{}
	openCount := 0
	overdueCount := 0
	resolutionHours := []float64{}

	for _, issue := range issues {
		byCategory[issue.Category]++
		if issue.Status != models.Completed {
			openCount++
		}
		if dispatch.IsOverdue(issue, now) {
			overdueCount++
		}
		if issue.Status == models.Completed {
			resolutionHours = append(resolutionHours, float64(issue.UpdatedAt-issue.CreatedAt)/float64(time.Hour.Milliseconds()))
		}
	}

	categories := []gin.H{}
	for cat, count := range byCategory {
		categories = append(categories, gin.H{"name": cat, "value": count})
	}

	meanHours, medianHours := 0.0, 0.0
	if len(resolutionHours) > 0 {
		meanHours, _ = stats.Mean(resolutionHours)
		medianHours, _ = stats.Median(resolutionHours)
	}

	c.JSON(http.StatusOK, gin.H{
		"totalIssues":           len(issues),
		"openIssues":            openCount,
		"overdueIssues":         overdueCount,
		"issuesByCategory":      categories,
		"completedIssues":       len(resolutionHours),
		"meanResolutionHours":   meanHours,
		"medianResolutionHours": medianHours,
	})
}
