package handlers

import (
	"net/http"

	"github.com/rashtra/rashtra-api/api"
	"github.com/rashtra/rashtra-api/auditlog"
	"github.com/rashtra/rashtra-api/detection"
	"github.com/rashtra/rashtra-api/models"
)

// Admin exported for testing purposes
type Admin struct {
	Log       *auditlog.Log
	Detection *detection.Metrics
}

type sessionResponse struct {
	LogID string `json:"logId"`
	Email string `json:"email"`
}

// LoginHandler records the start of an admin console session
func (a Admin) LoginHandler(w http.ResponseWriter, r *http.Request) {
	a.session(w, r, models.ActivityLogin, "Admin Console Access")
}

// LogoutHandler records the end of an admin console session
func (a Admin) LogoutHandler(w http.ResponseWriter, r *http.Request) {
	a.session(w, r, models.ActivityLogout, "Admin Console Exit")
}

func (a Admin) session(w http.ResponseWriter, r *http.Request, activity models.AdminActivityType, details string) {
	id, _ := api.IdentityFrom(r.Context())

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	if id.Email != "" {
		details += " (" + id.Email + ")"
	}
	logID, err := a.Log.Append(ctx, activity, details)
	if err != nil {
		writeError("failed to record admin session", w, err)
		return
	}
	writeJSON(w, http.StatusCreated, sessionResponse{LogID: logID, Email: id.Email})
}

// LogsHandler returns the most recent admin log entries
func (a Admin) LogsHandler(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	logs, err := a.Log.ListRecent(ctx, queryLimit(r))
	if err != nil {
		writeError("failed to get admin logs", w, err)
		return
	}
	writeJSON(w, http.StatusOK, logs)
}

// StatsHandler returns repair order and deletion counts over the recent log window
func (a Admin) StatsHandler(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	stats, err := a.Log.Stats(ctx)
	if err != nil {
		writeError("failed to get admin stats", w, err)
		return
	}
	writeJSON(w, http.StatusOK, stats)
}

// DetectionMetricsHandler returns per model counts of remote and simulated
// detections, so operators can see when the detection service is offline
func (a Admin) DetectionMetricsHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, a.Detection.Snapshot())
}
