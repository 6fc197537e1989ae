package models

import (
	"strings"
	"time"
)

// ComplaintStatus is the lifecycle status of a complaint. The stored values
// are the labels shown in the citizen app and the admin console.
type ComplaintStatus string

const (
	// StatusSubmitted is reserved for records persisted before classification
	StatusSubmitted ComplaintStatus = "Uploaded"
	// StatusAutoVerified is set when a detector confirmed the damage or an
	// operator verified it manually
	StatusAutoVerified ComplaintStatus = "Verified"
	// StatusWaitingList holds complaints that need manual review
	StatusWaitingList ComplaintStatus = "Waiting List"
	// StatusAssigned means a repair crew has been dispatched
	StatusAssigned ComplaintStatus = "Workers Assigned"
	// StatusRepaired means the damage was fixed
	StatusRepaired ComplaintStatus = "Repaired"
	// StatusIgnored is reserved for a manual rejection action
	StatusIgnored ComplaintStatus = "Rejected"
)

// ComplaintStatuses lists the full status vocabulary
var ComplaintStatuses = []ComplaintStatus{
	StatusSubmitted,
	StatusAutoVerified,
	StatusWaitingList,
	StatusAssigned,
	StatusRepaired,
	StatusIgnored,
}

// Valid reports whether s is part of the status vocabulary
func (s ComplaintStatus) Valid() bool {
	for _, v := range ComplaintStatuses {
		if s == v {
			return true
		}
	}
	return false
}

// Severity grades how urgent a repair is
type Severity string

const (
	SeverityHigh   Severity = "High"
	SeverityMedium Severity = "Medium"
	SeverityLow    Severity = "Low"
)

// UnknownAddress is used when neither a manual address nor a GPS fix is available
const UnknownAddress = "Unknown Location"

// Complaint holds the structure for the complaints collection in mongo
type Complaint struct {
	ID            string          `json:"id" bson:"_id,omitempty"`
	UserID        string          `json:"userId" bson:"userId"`
	ImageURL      string          `json:"imageUrl" bson:"imageUrl"`
	Latitude      float64         `json:"latitude" bson:"latitude"`
	Longitude     float64         `json:"longitude" bson:"longitude"`
	Address       string          `json:"address" bson:"address"`
	Status        ComplaintStatus `json:"status" bson:"status"`
	Severity      Severity        `json:"severity" bson:"severity"`
	SeverityScore float64         `json:"severityScore" bson:"severityScore"`
	Description   string          `json:"description,omitempty" bson:"description,omitempty"`
	Simulated     bool            `json:"simulated" bson:"simulated"`
	Timestamp     time.Time       `json:"timestamp" bson:"timestamp"`
}

var statusNames = map[string]ComplaintStatus{
	"SUBMITTED":     StatusSubmitted,
	"AUTO_VERIFIED": StatusAutoVerified,
	"WAITING_LIST":  StatusWaitingList,
	"ASSIGNED":      StatusAssigned,
	"REPAIRED":      StatusRepaired,
	"IGNORED":       StatusIgnored,
}

// ParseComplaintStatus accepts either the stored label ("Workers Assigned")
// or the state name ("ASSIGNED")
func ParseComplaintStatus(s string) (ComplaintStatus, bool) {
	if st := ComplaintStatus(s); st.Valid() {
		return st, true
	}
	st, ok := statusNames[strings.ToUpper(strings.TrimSpace(s))]
	return st, ok
}
