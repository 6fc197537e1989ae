package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"github.com/rashtra/rashtra-api/api"
	"github.com/rashtra/rashtra-api/auditlog"
	"github.com/rashtra/rashtra-api/config"
	"github.com/rashtra/rashtra-api/databases"
	"github.com/rashtra/rashtra-api/detection"
	"github.com/rashtra/rashtra-api/intake"
	"github.com/rashtra/rashtra-api/models"
	"github.com/rashtra/rashtra-api/notify"
	"github.com/rashtra/rashtra-api/storage"
	"github.com/rashtra/rashtra-api/triage"
)

// App stores the router and its collaborators, so it can be reused
type App struct {
	Router *mux.Router
	Config config.Config

	Complaints databases.ComplaintDatabase
	AdminLogs  databases.AdminLogDatabase
	Images     storage.ImageStore
	Pothole    detection.Detector
	Damage     detection.Detector
	Notifier   notify.WorkOrderNotifier
	// DetectionMetrics is filled by the detectors built in Initialize
	DetectionMetrics *detection.Metrics
	Auth       *api.Authenticator

	client databases.ClientHelper
}

// New creates a new mux router and all the routes
func (a *App) New() *mux.Router {
	audit := auditlog.New(a.AdminLogs)
	tr := triage.New(a.Complaints, audit, a.Notifier)

	rep := Report{
		Pipeline: &intake.Pipeline{
			Pothole: a.Pothole,
			Damage:  a.Damage,
			Images:  a.Images,
			Store:   a.Complaints,
		},
		DB: a.Complaints,
	}
	c := Complaint{DB: a.Complaints, Triage: tr}
	adm := Admin{Log: audit, Detection: a.DetectionMetrics}

	user := func(h http.HandlerFunc) http.Handler {
		return a.Auth.Middleware(h)
	}
	admin := func(h http.HandlerFunc) http.Handler {
		return a.Auth.Middleware(api.RequireAdmin(h))
	}

	r := mux.NewRouter()
	r.Use(api.RequestLogger)

	// healthchex
	r.HandleFunc("/health", a.healthCheckHandler).Methods("GET")

	if mem, ok := a.Images.(*storage.MemoryStore); ok {
		r.HandleFunc("/images/{key:.+}", Images{Store: mem}.ImageHandler).Methods("GET")
	}

	apiCreate := r.PathPrefix("/api/v1").Subrouter()
	apiCreate.Use(api.TimeoutMiddleware(a.Config.RequestTimeout))

	apiCreate.Handle("/reports", user(rep.SubmitReportHandler)).Methods("POST")
	apiCreate.Handle("/reports", user(rep.FeedHandler)).Methods("GET")
	apiCreate.Handle("/reports/mine", user(rep.MyReportsHandler)).Methods("GET")
	apiCreate.Handle("/reports/{complaint_id}", user(rep.WithdrawReportHandler)).Methods("DELETE")

	apiCreate.Handle("/complaints", admin(c.ComplaintsHandler)).Methods("GET")
	apiCreate.Handle("/complaints/summary", admin(c.SummaryHandler)).Methods("GET")
	apiCreate.Handle("/complaints/{complaint_id}/status", admin(c.UpdateStatusHandler)).Methods("PATCH")
	apiCreate.Handle("/complaints/{complaint_id}", admin(c.DeleteComplaintHandler)).Methods("DELETE")

	apiCreate.Handle("/admin/session", admin(adm.LoginHandler)).Methods("POST")
	apiCreate.Handle("/admin/session", admin(adm.LogoutHandler)).Methods("DELETE")
	apiCreate.Handle("/admin/logs", admin(adm.LogsHandler)).Methods("GET")
	apiCreate.Handle("/admin/stats", admin(adm.StatsHandler)).Methods("GET")
	apiCreate.Handle("/admin/detection", admin(adm.DetectionMetricsHandler)).Methods("GET")

	return r
}

// Initialize is called when the server starts. It wires the store backend,
// image storage, detectors and notifier from the config, then builds the routes.
func (a *App) Initialize() error {
	switch a.Config.StoreBackend {
	case config.StoreMemory:
		a.Complaints = databases.NewMemoryComplaintDatabase()
		a.AdminLogs = databases.NewMemoryAdminLogDatabase()
		zap.S().Warn("using the in-memory store, nothing survives a restart")
	case config.StoreMongo:
		client, err := databases.NewClient(&a.Config)
		if err != nil {
			// if we fail to create a new database client, then kill the pod
			zap.S().Errorw("failed to create new client", "error", err)
			return err
		}

		ctx, cancel := api.WithQueryTimeout(context.Background())
		defer cancel()
		if err = client.Connect(ctx); err != nil {
			// if we fail to connect to the database, then kill the pod
			zap.S().Errorw("failed to connect to database", "error", err)
			return err
		}
		a.client = client
		db := databases.NewDatabase(&a.Config, client)
		a.Complaints = databases.NewComplaintDatabase(db)
		a.AdminLogs = databases.NewAdminLogDatabase(db)
		zap.S().Info("rashtra-api has connected to the database")
	default:
		return fmt.Errorf("unknown store backend %q", a.Config.StoreBackend)
	}

	if a.Config.CloudinaryURL != "" {
		images, err := storage.NewCloudinaryStore(a.Config.CloudinaryURL, a.Config.ImageFolder)
		if err != nil {
			zap.S().Errorw("failed to configure image storage", "error", err)
			return err
		}
		a.Images = images
	} else {
		zap.S().Warn("CLOUDINARY_URL not set, keeping images in memory")
		a.Images = storage.NewMemoryStore(a.Config.ImageFolder)
	}

	a.DetectionMetrics = detection.NewMetrics()
	a.Pothole, a.Damage = detection.FromConfig(&a.Config, a.DetectionMetrics)
	a.Notifier = notify.FromConfig(&a.Config)

	if a.Config.JWTSecret == "" {
		return fmt.Errorf("JWT_SECRET is not set")
	}
	a.Auth = api.NewAuthenticator(a.Config.JWTSecret, a.Config.AdminEmails)

	// initialize api router
	a.initializeRoutes()
	return nil
}

// Close disconnects from the database when one is in use
func (a *App) Close(ctx context.Context) error {
	if a.client == nil {
		return nil
	}
	return a.client.Disconnect(ctx)
}

func (a *App) initializeRoutes() {
	a.Router = a.New()
}

func (a *App) healthCheckHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	b, _ := json.Marshal(models.HealthCheckResponse{
		Alive: true,
		Store: a.Config.StoreBackend,
	})
	_, _ = io.WriteString(w, string(b))
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	b, err := json.Marshal(v)
	if err != nil {
		config.ErrorStatus("failed to marshal response", http.StatusInternalServerError, w, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(b)
}
