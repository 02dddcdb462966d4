// Package jury is the public entry point: a single Solve call that turns a
// Problem into a Result by running the Input Normalizer, Model Builder,
// Solver Driver, and Solution Extractor in sequence (spec §7/§8).
package jury

import "github.com/svdleer/jury-planner/internal/model"

// Re-exported so callers never need to import the internal package tree
// directly, while every field keeps the JSON tags and validation rules
// defined once in internal/model.
type (
	Problem      = model.Problem
	Result       = model.Result
	Window       = model.Window
	Config       = model.Config
	JuryTeam     = model.JuryTeam
	Match        = model.Match
	Rule         = model.Rule
	RuleKind     = model.RuleKind
	Assignment   = model.Assignment
	Origin       = model.Origin
	Status       = model.Status
	ConflictHint = model.ConflictHint
	SolverStats  = model.SolverStats
)

const (
	StatusOptimal    = model.StatusOptimal
	StatusFeasible   = model.StatusFeasible
	StatusInfeasible = model.StatusInfeasible
	StatusUnknown    = model.StatusUnknown

	ConflictHintHardRulesContradict  = model.ConflictHintHardRulesContradict
	ConflictHintNoFeasibleWithinTime = model.ConflictHintNoFeasibleWithinTime
)

const (
	OriginSolver = model.OriginSolver
	OriginLocked = model.OriginLocked
	OriginStatic = model.OriginStatic
)

const (
	RuleCrewUnavailable         = model.RuleCrewUnavailable
	RuleMaxDutiesPerPeriod      = model.RuleMaxDutiesPerPeriod
	RuleRestBetweenMatches      = model.RuleRestBetweenMatches
	RuleDedicatedCrew           = model.RuleDedicatedCrew
	RulePreferredDuty           = model.RulePreferredDuty
	RuleAvoidDates              = model.RuleAvoidDates
	RulePreferDates             = model.RulePreferDates
	RuleAvoidOpponent           = model.RuleAvoidOpponent
	RuleAvoidConsecutiveMatches = model.RuleAvoidConsecutiveMatches
)
