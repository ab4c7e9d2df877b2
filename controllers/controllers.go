package controllers

import (
	"log"
	"net/http"

	"footy_server/services"
	"footy_server/utils"
)

// HealthCheckHandler provides a basic health check
func HealthCheckHandler(w http.ResponseWriter, r *http.Request) {
	utils.WriteSuccess(w, map[string]interface{}{"message": "Server is running!"})
}

// WelcomeHandler provides a welcome message
func WelcomeHandler(w http.ResponseWriter, r *http.Request) {
	utils.WriteSuccess(w, map[string]interface{}{"message": "API running successfully!"})
}

// respondServiceError normalizes any service failure into the uniform
// envelope. Business-rule violations surface their message with HTTP 200;
// store and other unexpected faults are logged and answered generically so
// nothing internal leaks to clients.
func respondServiceError(w http.ResponseWriter, err error) {
	if se, ok := services.AsServiceError(err); ok {
		utils.WriteError(w, http.StatusOK, se.Message)
		return
	}
	log.Printf("internal error: %v", err)
	utils.WriteError(w, http.StatusOK, "Something went wrong")
}
