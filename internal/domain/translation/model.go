package translation

import "time"

// State is the per-day translation queue header. Remaining always equals the stored entry count.
type State struct {
	Day       string    `json:"day"`
	Built     bool      `json:"built"`
	Done      bool      `json:"done"`
	Remaining int       `json:"remaining"`
	UpdatedAt time.Time `json:"updated_at"`
}
