package employee

import "time"

type Employee struct {
	ID                  string         `json:"id"`
	Name                string         `json:"name"`
	Email               string         `json:"email"`
	Department          string         `json:"department"`
	Role                string         `json:"role"`
	AccountID           string         `json:"accountId,omitempty"`
	PasswordHash        string         `json:"-"`
	Salary              float64        `json:"salary"`
	OverheadPercent     float64        `json:"overheadPercent"`
	MonthlyHours        float64        `json:"monthlyHours"`
	EffectiveHourlyCost float64        `json:"effectiveHourlyCost"`
	TotalPoints         int            `json:"totalPoints"`
	RolloverPoints      int            `json:"rolloverPoints"`
	MonthlyPoints       []MonthlyPoint `json:"monthlyPoints,omitempty"`
	LeaderboardEntries  []LedgerEntry  `json:"leaderboardEntries,omitempty"`
	CreatedAt           time.Time      `json:"createdAt"`
	UpdatedAt           time.Time      `json:"updatedAt"`
}

// MonthlyPoint is the balance snapshot taken by the monthly rollover,
// one entry per calendar month ("2006-01" keys).
type MonthlyPoint struct {
	Month  string `json:"month"`
	Points int    `json:"points"`
}

// LedgerEntry is one immutable point-balance change. The full sequence
// reconstructs TotalPoints from zero; entries are never edited or removed.
type LedgerEntry struct {
	Date     time.Time `json:"date"`
	Points   int       `json:"points"`
	Reason   string    `json:"reason"`
	Category string    `json:"category"`
}

type CreateInput struct {
	Name            string   `json:"name"`
	Email           string   `json:"email"`
	Department      string   `json:"department"`
	Role            string   `json:"role"`
	AccountID       string   `json:"accountId"`
	Password        string   `json:"password"`
	Salary          *float64 `json:"salary"`
	OverheadPercent *float64 `json:"overheadPercent"`
	MonthlyHours    *float64 `json:"monthlyHours"`
}

type UpdateInput struct {
	Name       *string `json:"name"`
	Department *string `json:"department"`
	Role       *string `json:"role"`
	AccountID  *string `json:"accountId"`
}

// ResourcePatch carries the cost inputs of an administrative resource
// update. Nil fields keep the employee's current value.
type ResourcePatch struct {
	Salary          *float64 `json:"salary"`
	OverheadPercent *float64 `json:"overheadPercent"`
	MonthlyHours    *float64 `json:"monthlyHours"`
}
