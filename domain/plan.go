package domain

import "time"

// Plan is the canonical stored form of a payoff plan. Its schedule is always
// recomputed from Debts and Settings.
type Plan struct {
	ID        string    `json:"id" yaml:"id"`
	Name      string    `json:"name" yaml:"name"`
	Debts     []Debt    `json:"debts" yaml:"debts"`
	Settings  Settings  `json:"settings" yaml:"settings"`
	CreatedAt time.Time `json:"createdAt" yaml:"created_at"`
	UpdatedAt time.Time `json:"updatedAt" yaml:"updated_at"`
}

// SnapshotVersion is the current PlanSnapshot layout.
const SnapshotVersion = 1

// PlanSnapshot is a cached view of a computed plan, never a source of truth.
type PlanSnapshot struct {
	Version   int        `json:"version"`
	Key       string     `json:"key"`
	CreatedAt time.Time  `json:"createdAt"`
	Debts     []Debt     `json:"debts"`
	Settings  Settings   `json:"settings"`
	Result    PlanResult `json:"result"`
}
