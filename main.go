package main

import (
	"log"
	"net/http"
	"os"

	"footy_server/routes"
	"footy_server/services"
	"footy_server/utils"

	"github.com/gorilla/mux"
	"github.com/joho/godotenv"
	"github.com/rs/cors"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	// Pick the storage backend. DynamoDB in production, in-memory for
	// local development and tests.
	var store services.DocumentStore
	if os.Getenv("STORE_BACKEND") == "memory" {
		log.Println("Using in-memory document store")
		store = services.NewMemoryStore()
	} else {
		log.Println("Initializing DynamoDB client...")
		dynamoClient := services.InitializeDynamoDBClient()
		store = services.NewDynamoStore(&services.DynamoService{Client: dynamoClient})
		log.Println("DynamoDB client initialized.")
	}

	services.InitializeS3Client()

	// Initialize Services
	userService := services.NewUserService(store)
	matchService := services.NewMatchService(store)
	postService := services.NewPostService(store)
	wellnessService := services.NewWellnessService(store)
	injuryService := services.NewInjuryService(store)
	coachingService := services.NewCoachingService(store)
	performanceService := services.NewPerformanceService(store)
	healthService := services.NewHealthService(os.Getenv("ML_BASE_URL"))

	auth := utils.RequireAuth(userService.GetByID)

	// Set up the server port
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	log.Printf("Using server port: %s\n", port)

	// Initialize the router
	r := mux.NewRouter()

	// Register routes
	routes.RegisterRoutes(r)
	routes.RegisterAuthRoutes(r, userService, auth)
	routes.RegisterUserRoutes(r, userService, postService, auth)
	routes.RegisterMatchRoutes(r, matchService, auth)
	routes.RegisterPostRoutes(r, postService, auth)
	routes.RegisterWellnessRoutes(r, wellnessService, auth)
	routes.RegisterInjuryRoutes(r, injuryService, auth)
	routes.RegisterCoachingRoutes(r, coachingService, auth)
	routes.RegisterPerformanceRoutes(r, performanceService, auth)
	routes.RegisterHealthRoutes(r, healthService, auth)
	routes.RegisterS3Routes(r)

	// Add CORS middleware
	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   []string{"*"}, // Adjust for specific domains if needed
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type", "Authorization"},
		AllowCredentials: true,
	}).Handler(r)

	// Start the HTTP server
	log.Printf("Starting server on port %s...\n", port)
	log.Fatal(http.ListenAndServe(":"+port, corsHandler))
}
