package routes

import (
	"footy_server/controllers"
	"footy_server/services"

	"github.com/gorilla/mux"
)

// RegisterHealthRoutes sets up the ML metric proxy endpoints under /health
func RegisterHealthRoutes(r *mux.Router, healthService *services.HealthService, auth mux.MiddlewareFunc) {
	controller := controllers.NewHealthController(healthService)

	healthRouter := r.PathPrefix("/health").Subrouter()
	healthRouter.Use(auth)

	for _, metric := range controllers.MetricPaths {
		healthRouter.HandleFunc("/"+metric, controller.PredictHandler(metric)).Methods("POST")
	}
}
