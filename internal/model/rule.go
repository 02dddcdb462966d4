package model

import "time"

// RuleKind is the closed set of rule variants the Rule Compiler understands.
// An unrecognized kind is a load-time error, never a silently-dropped rule.
type RuleKind string

const (
	RuleCrewUnavailable         RuleKind = "crew_unavailable"
	RuleMaxDutiesPerPeriod      RuleKind = "max_duties_per_period"
	RuleRestBetweenMatches      RuleKind = "rest_between_matches"
	RuleDedicatedCrew           RuleKind = "dedicated_crew"
	RulePreferredDuty           RuleKind = "preferred_duty"
	RuleAvoidDates              RuleKind = "avoid_dates"
	RulePreferDates             RuleKind = "prefer_dates"
	RuleAvoidOpponent           RuleKind = "avoid_opponent"
	RuleAvoidConsecutiveMatches RuleKind = "avoid_consecutive_matches"
)

// ForbiddenWeight marks a rule as hard regardless of its nominal weight field,
// matching spec: "Hard if weight = FORBIDDEN else soft".
const ForbiddenWeight = 1 << 30

// Rule is a single typed rule instance. Only the parameters matching Kind are
// meaningful; the Compiler ignores the rest.
type Rule struct {
	ID     int      `json:"id" validate:"required"`
	Kind   RuleKind `json:"kind" validate:"required"`
	Weight int      `json:"weight"`
	Active bool     `json:"active"`

	CrewID  int         `json:"crew_id,omitempty"`
	CrewIDs []int       `json:"crew_ids,omitempty"`
	Dates   []time.Time `json:"dates,omitempty"`

	Max        int `json:"max,omitempty"`
	PeriodDays int `json:"period_days,omitempty"`

	MinRestDays int `json:"min_rest_days,omitempty"`

	ServesTeam         string `json:"serves_team,omitempty"`
	LastMatchException bool   `json:"last_match_exception,omitempty"`

	Duty     string  `json:"duty,omitempty"`
	Strength float64 `json:"strength,omitempty"`

	OpponentTeam string `json:"opponent_team,omitempty"`

	MaxConsecutive int `json:"max_consecutive,omitempty"`
}

// IsHard reports whether this rule must be compiled as a hard constraint.
// MaxDutiesPerPeriod is the one rule kind whose hardness is data-driven
// (spec §4.2: "Hard if weight = FORBIDDEN else soft").
func (r Rule) IsHard() bool {
	switch r.Kind {
	case RuleCrewUnavailable, RuleRestBetweenMatches, RuleDedicatedCrew:
		return true
	case RuleMaxDutiesPerPeriod:
		return r.Weight >= ForbiddenWeight
	default:
		return false
	}
}
