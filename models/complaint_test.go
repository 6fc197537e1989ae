package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseComplaintStatus(t *testing.T) {
	tests := []struct {
		in   string
		want ComplaintStatus
		ok   bool
	}{
		{"Workers Assigned", StatusAssigned, true},
		{"ASSIGNED", StatusAssigned, true},
		{"auto_verified", StatusAutoVerified, true},
		{"Waiting List", StatusWaitingList, true},
		{"Repaired", StatusRepaired, true},
		{"IGNORED", StatusIgnored, true},
		{"closed", "", false},
		{"", "", false},
	}
	for _, tt := range tests {
		got, ok := ParseComplaintStatus(tt.in)
		assert.Equal(t, tt.ok, ok, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}
}

func TestSummarize(t *testing.T) {
	s := Summarize([]Complaint{
		{Status: StatusWaitingList, Severity: SeverityLow},
		{Status: StatusAutoVerified, Severity: SeverityHigh},
		{Status: StatusRepaired, Severity: SeverityHigh},
		{Status: StatusAssigned, Severity: SeverityMedium},
	})

	assert.Equal(t, ComplaintSummary{Total: 4, Pending: 1, Critical: 2, Repaired: 1}, s)
}

func TestAdminActivityType_Valid(t *testing.T) {
	assert.True(t, ActivityRepairOrder.Valid())
	assert.False(t, AdminActivityType("PROMOTE").Valid())
}
