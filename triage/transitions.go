package triage

import "github.com/rashtra/rashtra-api/models"

// transition describes one operator action on a complaint
type transition struct {
	to models.ComplaintStatus
	// audited transitions append a REPAIR_ORDER entry
	audited bool
}

// allowedTransitions is the operator state machine. Uploaded and Rejected
// are part of the vocabulary but no action leads into or out of them.
var allowedTransitions = map[models.ComplaintStatus][]transition{
	models.StatusWaitingList:  {{to: models.StatusAutoVerified}},
	models.StatusAutoVerified: {{to: models.StatusAssigned, audited: true}},
	models.StatusAssigned:     {{to: models.StatusRepaired, audited: true}},
	models.StatusRepaired:     {},
}

func lookupTransition(from, to models.ComplaintStatus) (transition, bool) {
	for _, t := range allowedTransitions[from] {
		if t.to == to {
			return t, true
		}
	}
	return transition{}, false
}

// CanTransition reports whether an operator may move a complaint from one
// status to another
func CanTransition(from, to models.ComplaintStatus) bool {
	_, ok := lookupTransition(from, to)
	return ok
}

// InitialStatuses are the only statuses the intake pipeline produces
var InitialStatuses = []models.ComplaintStatus{models.StatusAutoVerified, models.StatusWaitingList}
