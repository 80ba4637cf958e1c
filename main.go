package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"strconv"

	"cleancity-be/config"
	"cleancity-be/controllers"
	"cleancity-be/dispatch"
	"cleancity-be/models"
	"cleancity-be/notify"
	"cleancity-be/repository"
	"cleancity-be/routes"
	"cleancity-be/storage"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}

	var issues repository.IssueRepository
	var workers repository.WorkerRepository

	if os.Getenv("STORE") == "memory" {
		log.Println("Using in-memory stores")
		issues = repository.NewMemoryIssues()
		workers = repository.NewMemoryWorkers()
	} else {
		db := config.ConnectDB()
		if db == nil {
			log.Fatal("Failed to connect to MongoDB")
		}
		issues = repository.NewMongoIssues(db)
		workers = repository.NewMongoWorkers(db)
	}

	if err := workers.EnsureSeed(context.Background(), models.DefaultWorkers()); err != nil {
		log.Fatalf("Failed to seed worker roster: %v", err)
	}

	publishers := notify.Multi{}
	if os.Getenv("REDIS_ADDRESS") != "" {
		config.ConnectRedis()
		publishers = append(publishers, notify.NewRedisPublisher(config.RedisClient))
	}
	if broker := os.Getenv("KAFKA_BROKER"); broker != "" {
		publishers = append(publishers, notify.NewKafkaPublisher(broker, notify.IssueEventsTopic))
		log.Println("Publishing issue events to Kafka broker", broker)
	}

	var events notify.Publisher = publishers
	if len(publishers) == 0 {
		events = notify.Nop{}
	}
	defer events.Close()

	var photos *storage.PhotoStore
	if os.Getenv("MINIO_ENDPOINT") != "" {
		ps, err := storage.NewPhotoStore()
		if err != nil {
			log.Printf("Photo storage disabled: %v", err)
		} else if err := ps.EnsureBucket(context.Background()); err != nil {
			log.Printf("Photo storage disabled: %v", err)
		} else {
			photos = ps
		}
	}

	engine := dispatch.NewEngine(issues, workers)

	rateLimit := 5
	if v := os.Getenv("ISSUE_RATE_LIMIT"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			rateLimit = n
		}
	}

	r := gin.Default()

	corsConfig := cors.DefaultConfig()
	if origin := os.Getenv("FRONTEND_ORIGIN"); origin != "" {
		corsConfig.AllowOrigins = []string{origin}
		corsConfig.AllowCredentials = true
	} else {
		corsConfig.AllowAllOrigins = true
	}
	r.Use(cors.New(corsConfig))

	ic := controllers.NewIssueController(issues, workers, engine, events, photos)
	wc := controllers.NewWorkerController(workers)
	rc := controllers.NewReportController(issues, engine)

	routes.IssueRoutes(r, ic, rateLimit)
	routes.WorkerRoutes(r, wc)
	routes.ReportRoutes(r, rc)

	r.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	if err := r.Run(":" + port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
