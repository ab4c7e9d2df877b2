package routes

import (
	"footy_server/controllers"
	"footy_server/services"

	"github.com/gorilla/mux"
)

// RegisterMatchRoutes sets up routes for match-related operations under /matches
func RegisterMatchRoutes(r *mux.Router, matchService *services.MatchService, auth mux.MiddlewareFunc) {
	controller := controllers.NewMatchController(matchService)

	matchRouter := r.PathPrefix("/matches").Subrouter()
	matchRouter.Use(auth)

	matchRouter.HandleFunc("/create", controller.CreateMatch).Methods("POST")
	matchRouter.HandleFunc("/all", controller.GetAllMatches).Methods("GET")
	matchRouter.HandleFunc("/history/summary", controller.GetHistorySummary).Methods("GET")
	matchRouter.HandleFunc("/history/user", controller.GetUserHistory).Methods("GET")
	matchRouter.HandleFunc("/{matchId}", controller.GetMatchDetails).Methods("GET")
	matchRouter.HandleFunc("/{matchId}/join", controller.JoinMatch).Methods("POST")
	matchRouter.HandleFunc("/{matchId}/leave", controller.LeaveMatch).Methods("POST")
	matchRouter.HandleFunc("/{matchId}/participants/add", controller.AddParticipant).Methods("POST")
	matchRouter.HandleFunc("/{matchId}/participants/remove", controller.RemoveParticipant).Methods("POST")
	matchRouter.HandleFunc("/{matchId}/participants", controller.GetParticipants).Methods("GET")
	matchRouter.HandleFunc("/{matchId}/video", controller.UploadMatchVideo).Methods("POST")
	matchRouter.HandleFunc("/{matchId}/score", controller.UpdateScore).Methods("PUT")
	matchRouter.HandleFunc("/{matchId}", controller.DeleteMatch).Methods("DELETE")
}
