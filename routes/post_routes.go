package routes

import (
	"footy_server/controllers"
	"footy_server/services"

	"github.com/gorilla/mux"
)

// RegisterPostRoutes sets up routes for post and feed operations under /posts
func RegisterPostRoutes(r *mux.Router, postService *services.PostService, auth mux.MiddlewareFunc) {
	controller := controllers.NewPostController(postService)

	postRouter := r.PathPrefix("/posts").Subrouter()
	postRouter.Use(auth)

	postRouter.HandleFunc("/create", controller.CreatePost).Methods("POST")
	postRouter.HandleFunc("/feed", controller.GetFeed).Methods("GET")
	postRouter.HandleFunc("/mine", controller.GetMyPosts).Methods("GET")
	postRouter.HandleFunc("/user/{userId}", controller.GetUserPosts).Methods("GET")
	postRouter.HandleFunc("/{postId}", controller.GetPost).Methods("GET")
	postRouter.HandleFunc("/{postId}", controller.UpdatePost).Methods("PUT")
	postRouter.HandleFunc("/{postId}", controller.DeletePost).Methods("DELETE")
	postRouter.HandleFunc("/{postId}/like", controller.LikePost).Methods("POST")
	postRouter.HandleFunc("/{postId}/unlike", controller.UnlikePost).Methods("POST")
	postRouter.HandleFunc("/{postId}/comment", controller.AddComment).Methods("POST")
}
