package models

import "time"

// AdminActivityType is the kind of privileged action recorded in the admin log
type AdminActivityType string

const (
	ActivityLogin       AdminActivityType = "LOGIN"
	ActivityLogout      AdminActivityType = "LOGOUT"
	ActivityRepairOrder AdminActivityType = "REPAIR_ORDER"
	ActivityDeleteCase  AdminActivityType = "DELETE_CASE"
)

// Valid reports whether t is a known activity type
func (t AdminActivityType) Valid() bool {
	switch t {
	case ActivityLogin, ActivityLogout, ActivityRepairOrder, ActivityDeleteCase:
		return true
	}
	return false
}

// AdminLog holds the structure for the adminLogs collection in mongo.
// Entries are append-only.
type AdminLog struct {
	ID        string            `json:"id" bson:"_id,omitempty"`
	Type      AdminActivityType `json:"type" bson:"type"`
	Timestamp time.Time         `json:"timestamp" bson:"timestamp"`
	Details   string            `json:"details,omitempty" bson:"details,omitempty"`
}

// AdminStats is the audit view over the most recent admin log entries
type AdminStats struct {
	TotalRepairOrders int        `json:"totalRepairOrders"`
	TotalDeletedCases int        `json:"totalDeletedCases"`
	Logs              []AdminLog `json:"logs"`
}
