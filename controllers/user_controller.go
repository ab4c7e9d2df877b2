package controllers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"footy_server/services"
	"footy_server/utils"
)

// UserController handles profile reads and updates
type UserController struct {
	UserService *services.UserService
	PostService *services.PostService
}

// NewUserController creates a new UserController instance
func NewUserController(userService *services.UserService, postService *services.PostService) *UserController {
	return &UserController{UserService: userService, PostService: postService}
}

// GetMe handles returning the caller's own profile
func (uc *UserController) GetMe(w http.ResponseWriter, r *http.Request) {
	utils.WriteSuccess(w, map[string]interface{}{"user": utils.CurrentUser(r)})
}

// GetProfile handles a public profile lookup by user id
func (uc *UserController) GetProfile(w http.ResponseWriter, r *http.Request) {
	user, err := uc.UserService.GetByID(r.Context(), mux.Vars(r)["userId"])
	if err != nil {
		respondServiceError(w, err)
		return
	}
	utils.WriteSuccess(w, map[string]interface{}{"user": user})
}

// GetUserPosts handles listing a user's posts
func (uc *UserController) GetUserPosts(w http.ResponseWriter, r *http.Request) {
	posts, err := uc.PostService.ByOwner(r.Context(), mux.Vars(r)["userId"])
	if err != nil {
		respondServiceError(w, err)
		return
	}
	utils.WriteSuccess(w, map[string]interface{}{"posts": posts})
}

// UpdateProfile handles a partial profile update for the caller
func (uc *UserController) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	var input services.ProfileUpdateInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		utils.WriteError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	if err := uc.UserService.UpdateProfile(r.Context(), utils.CurrentUser(r).ID, input); err != nil {
		respondServiceError(w, err)
		return
	}
	utils.WriteSuccess(w, map[string]interface{}{"message": "Profile updated"})
}

// UpdateStats handles a partial football-stats update for the caller
func (uc *UserController) UpdateStats(w http.ResponseWriter, r *http.Request) {
	var input services.StatsUpdateInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		utils.WriteError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	if err := uc.UserService.UpdateStats(r.Context(), utils.CurrentUser(r).ID, input); err != nil {
		respondServiceError(w, err)
		return
	}
	utils.WriteSuccess(w, map[string]interface{}{"message": "Stats updated"})
}

// ListUsers handles the explore-users listing
func (uc *UserController) ListUsers(w http.ResponseWriter, r *http.Request) {
	skip, _ := strconv.Atoi(r.URL.Query().Get("skip"))
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))

	users, err := uc.UserService.List(r.Context(), skip, limit)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	utils.WriteSuccess(w, map[string]interface{}{"users": users})
}
