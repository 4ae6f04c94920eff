package projectcost

import "time"

// Entry is one append-only cost booking against a project. Updates create
// new entries; history is never rewritten.
type Entry struct {
	ID          string    `json:"id"`
	ProjectKey  string    `json:"projectKey"`
	Cost        float64   `json:"cost"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"createdAt"`
}

type ProjectTotal struct {
	ProjectKey  string    `json:"projectKey"`
	TotalCost   float64   `json:"totalCost"`
	EntryCount  int       `json:"entryCount"`
	LastUpdated time.Time `json:"lastUpdated"`
}
