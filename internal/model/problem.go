package model

import "time"

// Window is the inclusive planning window.
type Window struct {
	Start time.Time `json:"start_date" validate:"required"`
	End   time.Time `json:"end_date" validate:"required"`
}

// Config carries the tunables spec §6 lists for a solve call. Zero-value
// fields are replaced with their documented defaults by ApplyDefaults.
type Config struct {
	TimeLimitSeconds       int   `json:"time_limit_seconds"`
	Seed                   int64 `json:"seed"`
	DefaultMaxDutiesPerDay int   `json:"default_max_duties_per_day"`
	PointsFirstLast        int   `json:"points_first_last"`
	PointsRegular          int   `json:"points_regular"`
}

// ApplyDefaults returns a copy of c with spec-documented defaults filled in
// for any zero-valued field (time_limit_seconds=300, default_max_duties_per_day=3,
// points_first_last=15, points_regular=10). Seed defaults to 0, which is
// already Go's zero value, so it needs no special handling.
func (c Config) ApplyDefaults() Config {
	if c.TimeLimitSeconds == 0 {
		c.TimeLimitSeconds = 300
	}
	if c.DefaultMaxDutiesPerDay == 0 {
		c.DefaultMaxDutiesPerDay = 3
	}
	if c.PointsFirstLast == 0 {
		c.PointsFirstLast = 15
	}
	if c.PointsRegular == 0 {
		c.PointsRegular = 10
	}
	return c
}

// Problem is the immutable input to a single solve call.
type Problem struct {
	Window            Window         `json:"window" validate:"required"`
	Crews             []JuryTeam     `json:"crews" validate:"required,dive"`
	Matches           []Match        `json:"matches" validate:"required,dive"`
	StaticAssignments map[string]int `json:"static_assignments,omitempty"`
	Rules             []Rule         `json:"rules,omitempty" validate:"dive"`
	Config            Config         `json:"config"`
}

// Status is the outcome of a solve call.
type Status string

const (
	StatusOptimal    Status = "Optimal"
	StatusFeasible   Status = "Feasible"
	StatusInfeasible Status = "Infeasible"
	StatusUnknown    Status = "Unknown"
)

// ConflictHint distinguishes the two ways a solve can fail to produce a
// usable solution.
type ConflictHint string

const (
	ConflictHintHardRulesContradict  ConflictHint = "hard_rules_contradict"
	ConflictHintNoFeasibleWithinTime ConflictHint = "no_feasible_within_time"
)

// SolverStats mirrors the CP-SAT response's own bookkeeping.
type SolverStats struct {
	WallTimeSeconds float64 `json:"wall_time_seconds"`
	Branches        int64   `json:"branches"`
	Conflicts       int64   `json:"conflicts"`
}

// Result is the output of a single solve call.
type Result struct {
	Status         Status         `json:"status"`
	Assignments    []Assignment   `json:"assignments"`
	PerCrewPoints  map[int]int    `json:"per_crew_points"`
	Spread         int            `json:"spread"`
	ObjectiveValue int64          `json:"objective_value"`
	SolverStats    SolverStats    `json:"solver_stats"`
	ConflictHint   ConflictHint   `json:"conflict_hint,omitempty"`
}
