package controllers

import (
	"encoding/json"
	"io"
	"log"
	"net/http"

	"footy_server/services"
	"footy_server/utils"
)

// HealthController proxies metric predictions to the ML service
type HealthController struct {
	HealthService *services.HealthService
}

// NewHealthController creates a new HealthController instance
func NewHealthController(healthService *services.HealthService) *HealthController {
	return &HealthController{HealthService: healthService}
}

// MetricPaths lists the upstream metric endpoints exposed through the proxy.
var MetricPaths = []string{
	"calorie",
	"bmi",
	"water",
	"ideal_weight",
	"recovery",
	"sleep",
	"match_fitness",
	"training_load",
	"diet",
	"predict_image_json",
}

// PredictHandler returns a handler that forwards the request body to one
// upstream metric path.
func (hc *HealthController) PredictHandler(metric string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		payload := map[string]interface{}{}
		body, err := io.ReadAll(r.Body)
		if err == nil && len(body) > 0 {
			if err := json.Unmarshal(body, &payload); err != nil {
				utils.WriteError(w, http.StatusBadRequest, "Invalid request payload")
				return
			}
		}

		result, err := hc.HealthService.Predict(r.Context(), "/"+metric, payload)
		if err != nil {
			log.Printf("ML proxy error for %s: %v", metric, err)
			utils.WriteError(w, http.StatusOK, "ML service unavailable")
			return
		}

		utils.WriteSuccess(w, map[string]interface{}{"result": result})
	}
}
