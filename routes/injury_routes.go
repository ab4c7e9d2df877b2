package routes

import (
	"footy_server/controllers"
	"footy_server/services"

	"github.com/gorilla/mux"
)

// RegisterInjuryRoutes sets up routes for injury tracking and recovery under /injury
func RegisterInjuryRoutes(r *mux.Router, injuryService *services.InjuryService, auth mux.MiddlewareFunc) {
	controller := controllers.NewInjuryController(injuryService)

	injuryRouter := r.PathPrefix("/injury").Subrouter()
	injuryRouter.Use(auth)

	injuryRouter.HandleFunc("/log", controller.LogInjury).Methods("POST")
	injuryRouter.HandleFunc("/recovery-plan/{injuryId}", controller.GetRecoveryPlan).Methods("GET")
	injuryRouter.HandleFunc("/exercises", controller.GetRehabExercises).Methods("GET")
	injuryRouter.HandleFunc("/timeline/{injuryId}", controller.GetRecoveryTimeline).Methods("GET")
	injuryRouter.HandleFunc("/progress/{injuryId}", controller.UpdateProgress).Methods("PUT")
	injuryRouter.HandleFunc("/resolve/{injuryId}", controller.ResolveInjury).Methods("PUT")
	injuryRouter.HandleFunc("/history", controller.GetHistory).Methods("GET")
	injuryRouter.HandleFunc("/active", controller.GetActive).Methods("GET")
}
