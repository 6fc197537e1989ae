// Package docs Rashtra road damage API.
//
// Documentation of the Rashtra road damage reporting API.
//
//     Schemes: https
//     BasePath: /
//     Version: 1.0.0
//
//     Consumes:
//     - application/json
//     - multipart/form-data
//
//     Produces:
//     - application/json
//
//     Security:
//     - bearer
//
//    SecurityDefinitions:
//    bearer:
//      type: apiKey
//      name: Authorization
//      in: header
//
// swagger:meta
package docs

import (
	"github.com/rashtra/rashtra-api/detection"
	"github.com/rashtra/rashtra-api/models"
)

// swagger:route GET /health health healthEndpointID
// Lists the healthchex of the web service api.
// responses:
//   200: healthResponse

// Shows the current health of the api. true means it is alive, false means it is not.
// swagger:response healthResponse
type healthResponseWrapper struct {
	// in:body
	Body models.HealthCheckResponse
}

// swagger:route POST /api/v1/reports reports submitReport
// Submits a photo of road damage. The photo is classified and stored as a complaint.
// responses:
//   201: complaintResponse
//   400: errorResponse
//   502: errorResponse

// swagger:parameters submitReport
type submitReportParams struct {
	// in:formData
	// swagger:file
	// required: true
	File interface{} `json:"file"`
	// in:formData
	Lat float64 `json:"lat"`
	// in:formData
	Lng float64 `json:"lng"`
	// in:formData
	Address string `json:"address"`
}

// A single complaint
// swagger:response complaintResponse
type complaintResponseWrapper struct {
	// in:body
	Body models.Complaint
}

// swagger:route GET /api/v1/reports reports communityFeed
// Lists every complaint, newest first.
// responses:
//   200: complaintsResponse

// swagger:route GET /api/v1/reports/mine reports myReports
// Lists the caller's complaints, newest first.
// responses:
//   200: complaintsResponse

// swagger:route DELETE /api/v1/reports/{complaint_id} reports withdrawReport
// Deletes one of the caller's own reports.
// responses:
//   204:
//   403: errorResponse
//   404: errorResponse

// swagger:route GET /api/v1/complaints complaints listComplaints
// Lists all complaints in a time window (today, week, month, all). Admin only.
// responses:
//   200: complaintsResponse
//   403: errorResponse

// A list of complaints, at most 200
// swagger:response complaintsResponse
type complaintsResponseWrapper struct {
	// in:body
	Body []models.Complaint
}

// swagger:route GET /api/v1/complaints/summary complaints complaintSummary
// Dashboard counters for a time window. Admin only.
// responses:
//   200: summaryResponse

// swagger:response summaryResponse
type summaryResponseWrapper struct {
	// in:body
	Body models.ComplaintSummary
}

// swagger:route PATCH /api/v1/complaints/{complaint_id}/status complaints updateStatus
// Applies a status transition. Admin only.
// responses:
//   200: complaintResponse
//   404: errorResponse
//   409: errorResponse

// swagger:route DELETE /api/v1/complaints/{complaint_id} complaints deleteComplaint
// Deletes a complaint for good. Admin only.
// responses:
//   204:
//   404: errorResponse

// swagger:route GET /api/v1/admin/stats admin adminStats
// Repair order and deletion counts over the 200 most recent admin log entries.
// responses:
//   200: statsResponse

// swagger:response statsResponse
type statsResponseWrapper struct {
	// in:body
	Body models.AdminStats
}

// swagger:route GET /api/v1/admin/detection admin detectionMetrics
// Remote versus simulated detection counts per model.
// responses:
//   200: detectionMetricsResponse

// swagger:response detectionMetricsResponse
type detectionMetricsResponseWrapper struct {
	// in:body
	Body []detection.ModelMetrics
}

// swagger:response errorResponse
type errorResponseWrapper struct {
	// in:body
	Body models.ErrorMessageResponse
}
