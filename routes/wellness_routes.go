package routes

import (
	"footy_server/controllers"
	"footy_server/services"

	"github.com/gorilla/mux"
)

// RegisterWellnessRoutes sets up routes for daily wellness logging under /wellness
func RegisterWellnessRoutes(r *mux.Router, wellnessService *services.WellnessService, auth mux.MiddlewareFunc) {
	controller := controllers.NewWellnessController(wellnessService)

	wellnessRouter := r.PathPrefix("/wellness").Subrouter()
	wellnessRouter.Use(auth)

	wellnessRouter.HandleFunc("/log", controller.LogWellness).Methods("POST")
	wellnessRouter.HandleFunc("/today", controller.GetToday).Methods("GET")
	wellnessRouter.HandleFunc("/history", controller.GetHistory).Methods("GET")
}
