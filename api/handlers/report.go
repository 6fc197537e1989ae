package handlers

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"github.com/rashtra/rashtra-api/api"
	"github.com/rashtra/rashtra-api/databases"
	"github.com/rashtra/rashtra-api/intake"
	"github.com/rashtra/rashtra-api/models"
)

const (
	// MaxImageBytes is the largest photo a report may carry
	MaxImageBytes = 10 << 20
	// multipart overhead allowed on top of the image
	maxFormOverhead = 1 << 20
)

var validate = validator.New()

// reportForm holds the non-file fields of a report submission
type reportForm struct {
	Lat     *float64 `validate:"omitempty,gte=-90,lte=90"`
	Lng     *float64 `validate:"omitempty,gte=-180,lte=180"`
	Address string   `validate:"max=300"`
}

// Report exported for testing purposes
type Report struct {
	Pipeline *intake.Pipeline
	DB       databases.ComplaintDatabase
}

// SubmitReportHandler runs an uploaded photo through the intake pipeline and
// returns the created complaint
func (rp Report) SubmitReportHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := api.IdentityFrom(r.Context())
	if !ok {
		writeError("unauthorized", w, api.ErrUnauthenticated)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, MaxImageBytes+maxFormOverhead)
	if err := r.ParseMultipartForm(MaxImageBytes + maxFormOverhead); err != nil {
		writeError("failed to parse report form", w, fmt.Errorf("%w: %v", errBadRequest, err))
		return
	}

	image, err := readImage(r)
	if err != nil {
		writeError("invalid image", w, err)
		return
	}

	form, err := parseReportForm(r)
	if err != nil {
		writeError("invalid report form", w, err)
		return
	}

	report := intake.Report{
		UserID:        id.UserID,
		Image:         image,
		ManualAddress: form.Address,
	}
	if form.Lat != nil && form.Lng != nil {
		report.Location = &intake.Location{Latitude: *form.Lat, Longitude: *form.Lng}
	}

	complaint, err := rp.Pipeline.SubmitReport(r.Context(), report)
	if err != nil {
		writeError("failed to submit report", w, err)
		return
	}
	writeJSON(w, http.StatusCreated, complaint)
}

// MyReportsHandler returns the caller's own complaints, newest first
func (rp Report) MyReportsHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := api.IdentityFrom(r.Context())
	if !ok {
		writeError("unauthorized", w, api.ErrUnauthenticated)
		return
	}

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	complaints, err := rp.DB.ListByUser(ctx, id.UserID, queryLimit(r))
	if err != nil {
		writeError("failed to get reports", w, err)
		return
	}
	writeJSON(w, http.StatusOK, complaints)
}

// FeedHandler returns the community feed: every complaint, newest first
func (rp Report) FeedHandler(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	complaints, err := rp.DB.ListAll(ctx, queryLimit(r), time.Time{})
	if err != nil {
		writeError("failed to get reports", w, err)
		return
	}
	writeJSON(w, http.StatusOK, complaints)
}

// WithdrawReportHandler lets a citizen delete one of their own reports
func (rp Report) WithdrawReportHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := api.IdentityFrom(r.Context())
	if !ok {
		writeError("unauthorized", w, api.ErrUnauthenticated)
		return
	}
	complaintID := mux.Vars(r)["complaint_id"]

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	complaint, err := rp.DB.FindByID(ctx, complaintID)
	if err != nil {
		writeError("failed to get report", w, err)
		return
	}
	if complaint.UserID != id.UserID {
		writeError("not your report", w, fmt.Errorf("%w: report %s belongs to another user", errNotOwner, complaintID))
		return
	}
	if err = rp.DB.Delete(ctx, complaintID); err != nil {
		writeError("failed to delete report", w, err)
		return
	}

	zap.S().Infow("report withdrawn", "complaintId", complaintID, "user", id.UserID)
	w.WriteHeader(http.StatusNoContent)
}

func readImage(r *http.Request) (models.Image, error) {
	file, header, err := r.FormFile("file")
	if errors.Is(err, http.ErrMissingFile) {
		return models.Image{}, intake.ErrMissingImage
	}
	if err != nil {
		return models.Image{}, fmt.Errorf("%w: %v", errBadRequest, err)
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, MaxImageBytes+1))
	if err != nil {
		return models.Image{}, fmt.Errorf("%w: %v", errBadRequest, err)
	}
	if len(data) == 0 {
		return models.Image{}, intake.ErrMissingImage
	}
	if len(data) > MaxImageBytes {
		return models.Image{}, fmt.Errorf("%w: image larger than %d bytes", errBadRequest, MaxImageBytes)
	}

	contentType := http.DetectContentType(data)
	if !strings.HasPrefix(contentType, "image/") {
		return models.Image{}, fmt.Errorf("%w: unsupported content type %s", errBadRequest, contentType)
	}
	return models.Image{Data: data, Filename: header.Filename, ContentType: contentType}, nil
}

func parseReportForm(r *http.Request) (reportForm, error) {
	var form reportForm
	var err error
	if form.Lat, err = optionalFloat(r.FormValue("lat")); err != nil {
		return form, fmt.Errorf("%w: lat: %v", errBadRequest, err)
	}
	if form.Lng, err = optionalFloat(r.FormValue("lng")); err != nil {
		return form, fmt.Errorf("%w: lng: %v", errBadRequest, err)
	}
	form.Address = strings.TrimSpace(r.FormValue("address"))
	if (form.Lat == nil) != (form.Lng == nil) {
		return form, fmt.Errorf("%w: lat and lng must be sent together", errBadRequest)
	}

	if err = validate.Struct(form); err != nil {
		return form, fmt.Errorf("%w: %v", errBadRequest, err)
	}
	return form, nil
}

func optionalFloat(s string) (*float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil, err
	}
	return &f, nil
}
