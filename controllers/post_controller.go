package controllers

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"footy_server/services"
	"footy_server/utils"
)

// PostController handles HTTP requests for the feed
type PostController struct {
	PostService *services.PostService
}

// NewPostController creates a new PostController instance
func NewPostController(postService *services.PostService) *PostController {
	return &PostController{PostService: postService}
}

type postPayload struct {
	Content  string `json:"content"`
	ImageURL string `json:"image_url"`
}

// CreatePost handles creating a post owned by the caller
func (pc *PostController) CreatePost(w http.ResponseWriter, r *http.Request) {
	var payload postPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		utils.WriteError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	postID, err := pc.PostService.Create(r.Context(), utils.CurrentUser(r), payload.Content, payload.ImageURL)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	utils.WriteSuccess(w, map[string]interface{}{"post_id": postID})
}

// GetFeed handles the global feed
func (pc *PostController) GetFeed(w http.ResponseWriter, r *http.Request) {
	posts, err := pc.PostService.Feed(r.Context())
	if err != nil {
		respondServiceError(w, err)
		return
	}
	utils.WriteSuccess(w, map[string]interface{}{"posts": posts})
}

// GetMyPosts handles listing the caller's own posts
func (pc *PostController) GetMyPosts(w http.ResponseWriter, r *http.Request) {
	posts, err := pc.PostService.ByOwner(r.Context(), utils.CurrentUser(r).ID)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	utils.WriteSuccess(w, map[string]interface{}{"posts": posts})
}

// GetUserPosts handles listing another user's posts
func (pc *PostController) GetUserPosts(w http.ResponseWriter, r *http.Request) {
	posts, err := pc.PostService.ByOwner(r.Context(), mux.Vars(r)["userId"])
	if err != nil {
		respondServiceError(w, err)
		return
	}
	utils.WriteSuccess(w, map[string]interface{}{"posts": posts})
}

// GetPost handles fetching a single post
func (pc *PostController) GetPost(w http.ResponseWriter, r *http.Request) {
	post, err := pc.PostService.GetByID(r.Context(), mux.Vars(r)["postId"])
	if err != nil {
		respondServiceError(w, err)
		return
	}
	utils.WriteSuccess(w, map[string]interface{}{"post": post})
}

// UpdatePost handles the owner rewriting a post
func (pc *PostController) UpdatePost(w http.ResponseWriter, r *http.Request) {
	var payload postPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		utils.WriteError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	err := pc.PostService.Update(r.Context(), utils.CurrentUser(r), mux.Vars(r)["postId"], payload.Content, payload.ImageURL)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	utils.WriteSuccess(w, map[string]interface{}{"message": "Post updated"})
}

// DeletePost handles the owner deleting a post
func (pc *PostController) DeletePost(w http.ResponseWriter, r *http.Request) {
	err := pc.PostService.Delete(r.Context(), utils.CurrentUser(r), mux.Vars(r)["postId"])
	if err != nil {
		respondServiceError(w, err)
		return
	}
	utils.WriteSuccess(w, map[string]interface{}{"message": "Post deleted"})
}

// LikePost handles recording the caller's like
func (pc *PostController) LikePost(w http.ResponseWriter, r *http.Request) {
	err := pc.PostService.Like(r.Context(), utils.CurrentUser(r), mux.Vars(r)["postId"])
	if err != nil {
		respondServiceError(w, err)
		return
	}
	utils.WriteSuccess(w, map[string]interface{}{"message": "Post liked"})
}

// UnlikePost handles removing the caller's like
func (pc *PostController) UnlikePost(w http.ResponseWriter, r *http.Request) {
	err := pc.PostService.Unlike(r.Context(), utils.CurrentUser(r), mux.Vars(r)["postId"])
	if err != nil {
		respondServiceError(w, err)
		return
	}
	utils.WriteSuccess(w, map[string]interface{}{"message": "Post unliked"})
}

// AddComment handles appending a comment to a post
func (pc *PostController) AddComment(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Comment string `json:"comment"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		utils.WriteError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	comment, err := pc.PostService.AddComment(r.Context(), utils.CurrentUser(r), mux.Vars(r)["postId"], payload.Comment)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	utils.WriteSuccess(w, map[string]interface{}{"comment": comment})
}
