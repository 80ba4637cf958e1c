package controllers

import (
	"errors"
	"log"
	"net/http"

	"cleancity-be/models"
	"cleancity-be/repository"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// WorkerController manages the field-worker roster.
type WorkerController struct {
	workers repository.WorkerRepository
}

func NewWorkerController(workers repository.WorkerRepository) *WorkerController {
	return &WorkerController{workers: workers}
}

// ListWorkers returns the full roster, active and inactive.
func (wc *WorkerController) ListWorkers(c *gin.Context) {
	workers, err := wc.workers.List(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve workers"})
		return
	}
	c.JSON(http.StatusOK, workers)
}

// CreateWorker adds a field worker to the roster.
func (wc *WorkerController) CreateWorker(c *gin.Context) {
	var input struct {
		Name      string  `json:"name" binding:"required,max=100"`
		Role      string  `json:"role" binding:"required"`
		Latitude  float64 `json:"latitude" binding:"required"`
		Longitude float64 `json:"longitude" binding:"required"`
		Phone     string  `json:"phone,omitempty"`
		Email     string  `json:"email,omitempty"`
	}

	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	role := models.WorkerRole(input.Role)
	if !models.ValidRole(role) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid role"})
		return
	}

	worker := models.Worker{
		ID:       uuid.NewString(),
		Name:     input.Name,
		Role:     role,
		Location: models.GeoPoint{Lat: input.Latitude, Lng: input.Longitude},
		Phone:    input.Phone,
		Email:    input.Email,
		Active:   true,
	}

	if err := wc.workers.Insert(c.Request.Context(), worker); err != nil {
		log.Println("Error inserting worker:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create worker"})
		return
	}

	c.JSON(http.StatusCreated, worker)
}

// SetWorkerActive toggles a worker's availability for assignment. Workers are
// never deleted; deactivation is how they leave the candidate pool.
func (wc *WorkerController) SetWorkerActive(c *gin.Context) {
	var input struct {
		Active *bool `json:"active" binding:"required"`
	}

	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	worker, err := wc.workers.SetActive(c.Request.Context(), c.Param("id"), *input.Active)
	if errors.Is(err, repository.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Worker not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update worker"})
		return
	}

	c.JSON(http.StatusOK, worker)
}
