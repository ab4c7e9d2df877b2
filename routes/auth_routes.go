package routes

import (
	"footy_server/controllers"
	"footy_server/services"

	"github.com/gorilla/mux"
)

// RegisterAuthRoutes sets up signup/login under /auth plus the authed /auth/me
func RegisterAuthRoutes(r *mux.Router, userService *services.UserService, auth mux.MiddlewareFunc) {
	controller := controllers.NewAuthController(userService)

	authRouter := r.PathPrefix("/auth").Subrouter()
	authRouter.HandleFunc("/signup", controller.Signup).Methods("POST")
	authRouter.HandleFunc("/login", controller.Login).Methods("POST")

	meRouter := r.PathPrefix("/auth/me").Subrouter()
	meRouter.Use(auth)
	meRouter.HandleFunc("", controller.Me).Methods("GET")
}
