package models

// ComplaintSummary holds the dashboard counters for a set of complaints
type ComplaintSummary struct {
	Total    int `json:"total"`
	Pending  int `json:"pending"`
	Critical int `json:"critical"`
	Repaired int `json:"repaired"`
}

// Summarize counts pending, critical and repaired complaints
func Summarize(complaints []Complaint) ComplaintSummary {
	s := ComplaintSummary{Total: len(complaints)}
	for _, c := range complaints {
		if c.Status == StatusWaitingList {
			s.Pending++
		}
		if c.Severity == SeverityHigh {
			s.Critical++
		}
		if c.Status == StatusRepaired {
			s.Repaired++
		}
	}
	return s
}
