package config

import (
	"encoding/json"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/rashtra/rashtra-api/logging"
	"github.com/rashtra/rashtra-api/models"
)

// Store backends accepted in STORE_BACKEND
const (
	StoreMongo  = "mongo"
	StoreMemory = "memory"
)

// Config holds the project config values
type Config struct {
	Environment  string
	URL          string
	DatabaseName string
	BaseURL      string
	Port         string
	StoreBackend string

	DetectionURL     string
	DetectionTimeout time.Duration
	SimulationSeed   int64

	CloudinaryURL string
	ImageFolder   string

	JWTSecret   string
	AdminEmails []string

	SendGridAPIKey string
	WorkOrderFrom  string
	WorkOrderTo    string

	BacklogSchedule string
	RequestTimeout  time.Duration
}

// New sets up all config related services
func New() *Config {
	env := getEnv("ENV", "local")

	//setup zap logger and replace default logger
	logger, err := logging.New(env)
	if err != nil {
		logger = zap.NewExample()
	}
	defer logger.Sync()
	_ = zap.ReplaceGlobals(logger)

	return &Config{
		Environment:      env,
		URL:              os.Getenv("DB_URI"),
		DatabaseName:     getEnv("DB_NAME", "rashtra"),
		BaseURL:          os.Getenv("BASE_URL"),
		Port:             getEnv("PORT", "8080"),
		StoreBackend:     strings.ToLower(getEnv("STORE_BACKEND", StoreMongo)),
		DetectionURL:     getEnv("DETECTION_URL", "http://127.0.0.1:5000/api/detect/smart"),
		DetectionTimeout: getEnvDuration("DETECTION_TIMEOUT", 12*time.Second),
		SimulationSeed:   getEnvInt64("DETECTION_SIMULATION_SEED", 0),
		CloudinaryURL:    os.Getenv("CLOUDINARY_URL"),
		ImageFolder:      getEnv("IMAGE_FOLDER", "pothole-images"),
		JWTSecret:        os.Getenv("JWT_SECRET"),
		AdminEmails:      parseList(os.Getenv("ADMIN_EMAILS")),
		SendGridAPIKey:   os.Getenv("SENDGRID_API_KEY"),
		WorkOrderFrom:    os.Getenv("WORK_ORDER_FROM"),
		WorkOrderTo:      os.Getenv("WORK_ORDER_TO"),
		BacklogSchedule:  getEnv("BACKLOG_SCHEDULE", "0 6 * * *"),
		RequestTimeout:   getEnvDuration("REQUEST_TIMEOUT", 60*time.Second),
	}
}

// ErrorStatus is a useful function that will log, write http headers and body for a
// give message, status code and err
func ErrorStatus(message string, httpStatusCode int, w http.ResponseWriter, err error) {
	zap.S().Errorw(message, "error", err)

	resp := models.ErrorMessageResponse{Response: models.MessageError{Message: message}}
	if err != nil {
		resp.Response.Error = err.Error()
	}
	b, _ := json.Marshal(resp)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(httpStatusCode)
	w.Write(b)
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt64(key string, defaultValue int64) int64 {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.ParseInt(value, 10, 64); err == nil {
			return parsed
		}
		zap.S().Warnw("ignoring invalid integer", "key", key, "value", value)
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if parsed, err := time.ParseDuration(value); err == nil && parsed > 0 {
			return parsed
		}
		zap.S().Warnw("ignoring invalid duration", "key", key, "value", value)
	}
	return defaultValue
}

// parseList splits a comma separated list, lower-cases and drops blanks
func parseList(raw string) []string {
	var out []string
	for _, s := range strings.Split(raw, ",") {
		s = strings.TrimSpace(strings.ToLower(s))
		if s != "" {
			out = append(out, s)
		}
	}
	return out
}
