package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"github.com/rashtra/rashtra-api/api"
	"github.com/rashtra/rashtra-api/databases"
	"github.com/rashtra/rashtra-api/models"
	"github.com/rashtra/rashtra-api/triage"
)

// Complaint exported for testing purposes
type Complaint struct {
	DB     databases.ComplaintDatabase
	Triage *triage.Service
	// Now is used for time windows; nil means time.Now
	Now func() time.Time
}

// statusUpdate is the body of a status change request
type statusUpdate struct {
	Status string `json:"status" validate:"required"`
}

// ComplaintsHandler returns all complaints inside the requested time window
func (c Complaint) ComplaintsHandler(w http.ResponseWriter, r *http.Request) {
	since, err := windowStart(r.URL.Query().Get("window"), c.now())
	if err != nil {
		writeError("invalid window", w, err)
		return
	}

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	complaints, err := c.DB.ListAll(ctx, queryLimit(r), since)
	if err != nil {
		writeError("failed to get complaints", w, err)
		return
	}
	writeJSON(w, http.StatusOK, complaints)
}

// SummaryHandler returns the dashboard counters for the requested time window
func (c Complaint) SummaryHandler(w http.ResponseWriter, r *http.Request) {
	since, err := windowStart(r.URL.Query().Get("window"), c.now())
	if err != nil {
		writeError("invalid window", w, err)
		return
	}

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	complaints, err := c.DB.ListAll(ctx, databases.MaxListLimit, since)
	if err != nil {
		writeError("failed to get complaints", w, err)
		return
	}
	writeJSON(w, http.StatusOK, models.Summarize(complaints))
}

// UpdateStatusHandler applies an operator status transition
func (c Complaint) UpdateStatusHandler(w http.ResponseWriter, r *http.Request) {
	complaintID := mux.Vars(r)["complaint_id"]

	var body statusUpdate
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError("failed to decode request", w, fmt.Errorf("%w: %v", errBadRequest, err))
		return
	}
	if err := validate.Struct(body); err != nil {
		writeError("invalid request", w, fmt.Errorf("%w: %v", errBadRequest, err))
		return
	}
	status, ok := models.ParseComplaintStatus(body.Status)
	if !ok {
		writeError("invalid status", w, fmt.Errorf("%w: unknown status %q", errBadRequest, body.Status))
		return
	}

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	complaint, err := c.Triage.Transition(ctx, complaintID, status)
	if err != nil {
		writeError("failed to update complaint status", w, err)
		return
	}
	writeJSON(w, http.StatusOK, complaint)
}

// DeleteComplaintHandler hard deletes a complaint
func (c Complaint) DeleteComplaintHandler(w http.ResponseWriter, r *http.Request) {
	complaintID := mux.Vars(r)["complaint_id"]

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	if err := c.Triage.Delete(ctx, complaintID); err != nil {
		writeError("failed to delete complaint", w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (c Complaint) now() time.Time {
	if c.Now != nil {
		return c.Now()
	}
	return time.Now()
}

// windowStart turns a dashboard time filter into the earliest timestamp it
// includes. "all" and "" mean no lower bound.
func windowStart(window string, now time.Time) (time.Time, error) {
	now = now.UTC()
	switch window {
	case "", "all":
		return time.Time{}, nil
	case "today":
		return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC), nil
	case "week":
		return now.AddDate(0, 0, -7), nil
	case "month":
		return now.AddDate(0, 0, -30), nil
	}
	return time.Time{}, fmt.Errorf("%w: unknown window %q", errBadRequest, window)
}

// queryLimit reads the limit query parameter. Missing or invalid values fall
// back to the store maximum.
func queryLimit(r *http.Request) int64 {
	raw := r.URL.Query().Get("limit")
	if raw == "" {
		return databases.MaxListLimit
	}
	limit, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		zap.S().Warnw("limit not valid, using default", "limit", raw, "default", databases.MaxListLimit)
		return databases.MaxListLimit
	}
	return databases.BoundedLimit(limit)
}
