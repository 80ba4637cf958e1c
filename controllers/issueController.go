package controllers

import (
	"errors"
	"log"
	"net/http"
	"strconv"
	"time"

	"cleancity-be/dispatch"
	"cleancity-be/models"
	"cleancity-be/notify"
	"cleancity-be/repository"
	"cleancity-be/storage"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// IssueController handles citizen submissions and admin triage of issues.
type IssueController struct {
	issues  repository.IssueRepository
	workers repository.WorkerRepository
	engine  *dispatch.Engine
	events  notify.Publisher
	photos  *storage.PhotoStore
}

// NewIssueController wires the issue endpoints. photos may be nil when no
// object storage is configured.
func NewIssueController(
	issues repository.IssueRepository,
	workers repository.WorkerRepository,
	engine *dispatch.Engine,
	events notify.Publisher,
	photos *storage.PhotoStore,
) *IssueController {
	return &IssueController{
		issues:  issues,
		workers: workers,
		engine:  engine,
		events:  events,
		photos:  photos,
	}
}

// issueView is an issue enriched with the SLA fields the dashboard shows.
type issueView struct {
	models.Issue
	Overdue        bool `json:"overdue"`
	HoursRemaining int  `json:"hoursRemaining"`
}

func viewOf(issue models.Issue, now time.Time) issueView {
	return issueView{
		Issue:          issue,
		Overdue:        dispatch.IsOverdue(issue, now),
		HoursRemaining: dispatch.HoursRemaining(issue, now),
	}
}

// CreateIssue handles a citizen submission. The issue gets a fixed 24h due
// date and an immediate best-effort assignment attempt.
func (ic *IssueController) CreateIssue(c *gin.Context) {
	var input struct {
		Title        string   `json:"title" binding:"required,max=200"`
		Description  string   `json:"description" binding:"required,max=1000"`
		Category     string   `json:"category" binding:"required"`
		ImageDataURL string   `json:"imageDataUrl,omitempty"`
		Latitude     *float64 `json:"latitude,omitempty"`
		Longitude    *float64 `json:"longitude,omitempty"`
		Address      string   `json:"address,omitempty"`
		CreatedBy    string   `json:"createdBy,omitempty"`
	}

	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if !models.ValidCategory(models.IssueCategory(input.Category)) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid category"})
		return
	}

	var location *models.GeoPoint
	if input.Latitude != nil && input.Longitude != nil {
		location = &models.GeoPoint{Lat: *input.Latitude, Lng: *input.Longitude}
	}

	now := time.Now().UnixMilli()
	issue := models.Issue{
		ID:           uuid.NewString(),
		Title:        input.Title,
		Description:  input.Description,
		Category:     models.IssueCategory(input.Category),
		ImageDataURL: input.ImageDataURL,
		Location:     location,
		Address:      input.Address,
		Status:       models.Pending,
		CreatedAt:    now,
		UpdatedAt:    now,
		DueAt:        models.DueAt(now),
		CreatedBy:    input.CreatedBy,
	}

	// Offload the citizen photo to object storage when available; on failure
	// the raw data-URL stays on the record.
	if issue.ImageDataURL != "" && ic.photos != nil {
		url, err := ic.photos.StoreDataURL(c.Request.Context(), issue.ID, "photo", issue.ImageDataURL)
		if err != nil {
			log.Printf("Failed to offload citizen photo for issue %s: %v", issue.ID, err)
		} else {
			issue.ImageDataURL = url
		}
	}

	if err := ic.issues.Insert(c.Request.Context(), issue); err != nil {
		log.Println("Error inserting issue:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create issue"})
		return
	}

	ic.publish(c, notify.Event{Type: notify.IssueCreated, IssueID: issue.ID, At: now})

	out, err := ic.engine.AssignIssueToNearest(c.Request.Context(), issue.ID)
	if err != nil {
		log.Printf("Assignment failed for issue %s: %v", issue.ID, err)
		out = dispatch.Outcome{Kind: dispatch.NoEligibleWorker}
	}
	if out.Kind == dispatch.Assigned {
		issue.AssignedToWorkerID = out.Worker.ID
		ic.publish(c, notify.Event{
			Type:     notify.IssueAssigned,
			IssueID:  issue.ID,
			WorkerID: out.Worker.ID,
			At:       time.Now().UnixMilli(),
		})
	}

	c.JSON(http.StatusCreated, gin.H{
		"issue":      viewOf(issue, time.Now()),
		"assignment": out,
	})
}

// GetAllIssues retrieves issues with filtering, sorting, and pagination.
func (ic *IssueController) GetAllIssues(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))

	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 10
	}

	filter := repository.IssueFilter{
		Category: c.Query("category"),
		Status:   c.Query("status"),
		Search:   c.Query("search"),
		Sort:     c.DefaultQuery("sort", "newest"),
		Skip:     int64((page - 1) * limit),
		Limit:    int64(limit),
	}

	totalCount, err := ic.issues.Count(c.Request.Context(), filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to count issues"})
		return
	}

	issues, err := ic.issues.List(c.Request.Context(), filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve issues"})
		return
	}

	now := time.Now()
	views := make([]issueView, 0, len(issues))
	for _, issue := range issues {
		views = append(views, viewOf(issue, now))
	}

	totalPages := int((totalCount + int64(limit) - 1) / int64(limit))

	c.JSON(http.StatusOK, gin.H{
		"issues":      views,
		"totalIssues": totalCount,
		"totalPages":  totalPages,
		"currentPage": page,
	})
}

// GetIssue retrieves an issue by id, with SLA state and assigned worker.
func (ic *IssueController) GetIssue(c *gin.Context) {
	issue, err := ic.issues.Get(c.Request.Context(), c.Param("id"))
	if errors.Is(err, repository.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Issue not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve issue"})
		return
	}

	response := gin.H{"issue": viewOf(issue, time.Now())}

	if issue.AssignedToWorkerID != "" {
		worker, err := ic.workers.Get(c.Request.Context(), issue.AssignedToWorkerID)
		if err == nil {
			response["assignedWorker"] = worker
		}
	}

	c.JSON(http.StatusOK, response)
}

// UpdateIssue applies an admin patch to an issue's details.
func (ic *IssueController) UpdateIssue(c *gin.Context) {
	var input struct {
		Title        *string  `json:"title,omitempty"`
		Description  *string  `json:"description,omitempty"`
		Category     *string  `json:"category,omitempty"`
		ImageDataURL *string  `json:"imageDataUrl,omitempty"`
		Latitude     *float64 `json:"latitude,omitempty"`
		Longitude    *float64 `json:"longitude,omitempty"`
		Address      *string  `json:"address,omitempty"`
	}

	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	patch := repository.IssuePatch{
		Title:        input.Title,
		Description:  input.Description,
		ImageDataURL: input.ImageDataURL,
		Address:      input.Address,
	}

	if input.Category != nil {
		cat := models.IssueCategory(*input.Category)
		if !models.ValidCategory(cat) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid category"})
			return
		}
		patch.Category = &cat
	}

	if input.Latitude != nil && input.Longitude != nil {
		patch.Location = &models.GeoPoint{Lat: *input.Latitude, Lng: *input.Longitude}
	}

	updated, err := ic.issues.Update(c.Request.Context(), c.Param("id"), patch)
	if errors.Is(err, repository.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Issue not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update issue"})
		return
	}

	ic.publish(c, notify.Event{Type: notify.IssueUpdated, IssueID: updated.ID, At: updated.UpdatedAt})

	c.JSON(http.StatusOK, gin.H{"issue": viewOf(updated, time.Now())})
}

// UpdateIssueStatus transitions an issue's lifecycle status. Marking an issue
// Completed requires a proof image reference, supplied here or already on the
// record. Admins may move an issue back to any earlier status.
func (ic *IssueController) UpdateIssueStatus(c *gin.Context) {
	var input struct {
		Status        string `json:"status" binding:"required"`
		ProofImageURL string `json:"proofImageUrl,omitempty"`
	}

	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	status := models.IssueStatus(input.Status)
	if !models.ValidStatus(status) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid status"})
		return
	}

	issue, err := ic.issues.Get(c.Request.Context(), c.Param("id"))
	if errors.Is(err, repository.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Issue not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve issue"})
		return
	}

	if status == models.Completed && input.ProofImageURL == "" && issue.ProofImageURL == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Completion requires a proof image"})
		return
	}

	patch := repository.IssuePatch{Status: &status}
	if input.ProofImageURL != "" {
		patch.ProofImageURL = &input.ProofImageURL
	}

	updated, err := ic.issues.Update(c.Request.Context(), issue.ID, patch)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update issue"})
		return
	}

	ic.publish(c, notify.Event{
		Type:    notify.IssueStatusChanged,
		IssueID: updated.ID,
		Status:  string(status),
		At:      updated.UpdatedAt,
	})

	c.JSON(http.StatusOK, gin.H{"issue": viewOf(updated, time.Now())})
}

// AssignIssue runs nearest-worker assignment for an issue and reports the
// tagged outcome so callers can tell a missing issue, a missing location, and
// an empty candidate pool apart.
func (ic *IssueController) AssignIssue(c *gin.Context) {
	out, err := ic.engine.AssignIssueToNearest(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to assign issue"})
		return
	}

	switch out.Kind {
	case dispatch.Assigned:
		ic.publish(c, notify.Event{
			Type:     notify.IssueAssigned,
			IssueID:  c.Param("id"),
			WorkerID: out.Worker.ID,
			At:       time.Now().UnixMilli(),
		})
		c.JSON(http.StatusOK, out)
	case dispatch.IssueNotFound:
		c.JSON(http.StatusNotFound, gin.H{"error": "Issue not found", "outcome": out.Kind})
	default:
		// missing_location / no_eligible_worker: valid issue, nothing to assign.
		c.JSON(http.StatusConflict, gin.H{"error": "No worker assigned", "outcome": out.Kind})
	}
}

// UploadProof stores a completion proof photo and records its URL.
func (ic *IssueController) UploadProof(c *gin.Context) {
	if ic.photos == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Photo storage is not configured"})
		return
	}

	var input struct {
		ImageDataURL string `json:"imageDataUrl" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	issue, err := ic.issues.Get(c.Request.Context(), c.Param("id"))
	if errors.Is(err, repository.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Issue not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve issue"})
		return
	}

	url, err := ic.photos.StoreDataURL(c.Request.Context(), issue.ID, "proof", input.ImageDataURL)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	updated, err := ic.issues.Update(c.Request.Context(), issue.ID, repository.IssuePatch{ProofImageURL: &url})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update issue"})
		return
	}

	ic.publish(c, notify.Event{Type: notify.IssueUpdated, IssueID: updated.ID, At: updated.UpdatedAt})

	c.JSON(http.StatusOK, gin.H{"proofImageUrl": url})
}

// RecentIssues returns the most recent geolocated issues for the map view.
func (ic *IssueController) RecentIssues(c *gin.Context) {
	const limit = 19

	issues, err := ic.issues.List(c.Request.Context(), repository.IssueFilter{Sort: "newest", Limit: 100})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve recent issues"})
		return
	}

	type pin struct {
		ID        string               `json:"id"`
		Title     string               `json:"title"`
		Category  models.IssueCategory `json:"category"`
		Status    models.IssueStatus   `json:"status"`
		Latitude  float64              `json:"latitude"`
		Longitude float64              `json:"longitude"`
		Address   string               `json:"address,omitempty"`
		CreatedAt int64                `json:"createdAt"`
	}

	pins := []pin{}
	for _, issue := range issues {
		if issue.Location == nil {
			continue
		}
		pins = append(pins, pin{
			ID:        issue.ID,
			Title:     issue.Title,
			Category:  issue.Category,
			Status:    issue.Status,
			Latitude:  issue.Location.Lat,
			Longitude: issue.Location.Lng,
			Address:   issue.Address,
			CreatedAt: issue.CreatedAt,
		})
		if len(pins) == limit {
			break
		}
	}

	c.JSON(http.StatusOK, pins)
}

func (ic *IssueController) publish(c *gin.Context, ev notify.Event) {
	if err := ic.events.Publish(c.Request.Context(), ev); err != nil {
		log.Printf("Failed to publish %s event: %v", ev.Type, err)
	}
}
