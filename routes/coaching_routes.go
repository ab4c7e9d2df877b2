package routes

import (
	"footy_server/controllers"
	"footy_server/services"

	"github.com/gorilla/mux"
)

// RegisterCoachingRoutes sets up routes for coaching insights under /coaching
func RegisterCoachingRoutes(r *mux.Router, coachingService *services.CoachingService, auth mux.MiddlewareFunc) {
	controller := controllers.NewCoachingController(coachingService)

	coachingRouter := r.PathPrefix("/coaching").Subrouter()
	coachingRouter.Use(auth)

	coachingRouter.HandleFunc("/plan", controller.GetPlan).Methods("GET")
	coachingRouter.HandleFunc("/position", controller.GetPosition).Methods("GET")
	coachingRouter.HandleFunc("/strengths", controller.GetStrengths).Methods("GET")
	coachingRouter.HandleFunc("/weaknesses", controller.GetWeaknesses).Methods("GET")
	coachingRouter.HandleFunc("/training-plan", controller.GetTrainingPlan).Methods("GET")
	coachingRouter.HandleFunc("/motivation", controller.GetMotivation).Methods("GET")
	coachingRouter.HandleFunc("/save-achievement", controller.SaveAchievement).Methods("POST")
	coachingRouter.HandleFunc("/history", controller.GetHistory).Methods("GET")
}
