package routes

import (
	"footy_server/controllers"
	"footy_server/services"

	"github.com/gorilla/mux"
)

// RegisterUserRoutes sets up routes for user profile operations under /users
func RegisterUserRoutes(r *mux.Router, userService *services.UserService, postService *services.PostService, auth mux.MiddlewareFunc) {
	controller := controllers.NewUserController(userService, postService)

	userRouter := r.PathPrefix("/users").Subrouter()
	userRouter.Use(auth)

	userRouter.HandleFunc("/me", controller.GetMe).Methods("GET")
	userRouter.HandleFunc("/me/profile", controller.UpdateProfile).Methods("PUT")
	userRouter.HandleFunc("/me/stats", controller.UpdateStats).Methods("PUT")
	userRouter.HandleFunc("/all", controller.ListUsers).Methods("GET")
	userRouter.HandleFunc("/{userId}", controller.GetProfile).Methods("GET")
	userRouter.HandleFunc("/{userId}/posts", controller.GetUserPosts).Methods("GET")
}
