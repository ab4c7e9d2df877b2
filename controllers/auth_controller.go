package controllers

import (
	"encoding/json"
	"net/http"

	"footy_server/services"
	"footy_server/utils"
)

// AuthController handles signup, login and the current-account endpoint
type AuthController struct {
	UserService *services.UserService
}

// NewAuthController creates a new AuthController instance
func NewAuthController(userService *services.UserService) *AuthController {
	return &AuthController{UserService: userService}
}

// Signup handles account creation and auto-login
func (ac *AuthController) Signup(w http.ResponseWriter, r *http.Request) {
	var input services.SignupInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		utils.WriteError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	if err := utils.Validate.Struct(input); err != nil {
		utils.WriteError(w, http.StatusBadRequest, "email, password, username and full_name are required")
		return
	}

	user, err := ac.UserService.Signup(r.Context(), input)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	token, err := utils.CreateAccessToken(user.ID)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	utils.WriteSuccess(w, map[string]interface{}{
		"message":      "User created",
		"access_token": token,
		"token_type":   "bearer",
		"user_id":      user.ID,
		"name":         user.FullName,
	})
}

// Login handles credential verification and token issuance
func (ac *AuthController) Login(w http.ResponseWriter, r *http.Request) {
	var input struct {
		Email    string `json:"email" validate:"required,email"`
		Password string `json:"password" validate:"required"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		utils.WriteError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	if err := utils.Validate.Struct(input); err != nil {
		utils.WriteError(w, http.StatusBadRequest, "email and password are required")
		return
	}

	user, err := ac.UserService.Login(r.Context(), input.Email, input.Password)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	token, err := utils.CreateAccessToken(user.ID)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	utils.WriteSuccess(w, map[string]interface{}{
		"access_token": token,
		"token_type":   "bearer",
		"user_id":      user.ID,
		"name":         user.FullName,
	})
}

// Me handles returning the authenticated caller's account
func (ac *AuthController) Me(w http.ResponseWriter, r *http.Request) {
	utils.WriteSuccess(w, map[string]interface{}{"user": utils.CurrentUser(r)})
}
