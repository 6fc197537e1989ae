package handlers

import (
	"errors"
	"net/http"

	"github.com/rashtra/rashtra-api/api"
	"github.com/rashtra/rashtra-api/auditlog"
	"github.com/rashtra/rashtra-api/config"
	"github.com/rashtra/rashtra-api/databases"
	"github.com/rashtra/rashtra-api/detection"
	"github.com/rashtra/rashtra-api/intake"
	"github.com/rashtra/rashtra-api/triage"
)

// errBadRequest marks request validation failures
var errBadRequest = errors.New("bad request")

// errNotOwner marks a citizen acting on someone else's report
var errNotOwner = errors.New("not the owner of this report")

// statusFor maps a domain error to its HTTP status code
func statusFor(err error) int {
	switch {
	case errors.Is(err, errBadRequest),
		errors.Is(err, intake.ErrMissingImage),
		errors.Is(err, intake.ErrMissingUser),
		errors.Is(err, auditlog.ErrUnknownActivity):
		return http.StatusBadRequest
	case errors.Is(err, api.ErrUnauthenticated):
		return http.StatusUnauthorized
	case errors.Is(err, api.ErrForbidden), errors.Is(err, errNotOwner):
		return http.StatusForbidden
	case errors.Is(err, databases.ErrComplaintNotFound):
		return http.StatusNotFound
	case errors.Is(err, triage.ErrInvalidTransition):
		return http.StatusConflict
	case errors.Is(err, detection.ErrContractViolation):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func writeError(message string, w http.ResponseWriter, err error) {
	config.ErrorStatus(message, statusFor(err), w, err)
}
