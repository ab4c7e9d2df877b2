package routes

import (
	"footy_server/controllers"
	"footy_server/services"

	"github.com/gorilla/mux"
)

// RegisterPerformanceRoutes sets up routes for video analysis under /performance
func RegisterPerformanceRoutes(r *mux.Router, performanceService *services.PerformanceService, auth mux.MiddlewareFunc) {
	controller := controllers.NewPerformanceController(performanceService)

	performanceRouter := r.PathPrefix("/performance").Subrouter()
	performanceRouter.Use(auth)

	performanceRouter.HandleFunc("/upload-url", controller.GetUploadURL).Methods("POST")
	performanceRouter.HandleFunc("/upload", controller.UploadVideo).Methods("POST")
	performanceRouter.HandleFunc("/analysis/{performanceId}", controller.GetAnalysis).Methods("GET")
	performanceRouter.HandleFunc("/player-card", controller.GeneratePlayerCard).Methods("POST")
	performanceRouter.HandleFunc("/user/{userId}", controller.GetUserHistory).Methods("GET")
	performanceRouter.HandleFunc("/ml-process", controller.SubmitToML).Methods("POST")
	performanceRouter.HandleFunc("/ml-status/{jobId}", controller.GetMLStatus).Methods("GET")
}
