package builder

import (
	"github.com/google/or-tools/ortools/sat/go/cpmodel"

	"github.com/svdleer/jury-planner/internal/cpvars"
	"github.com/svdleer/jury-planner/internal/normalize"
	"github.com/svdleer/jury-planner/internal/rules"
)

// Model is everything the Solver Driver and Solution Extractor need: the
// decision variables and the materialized objective pieces.
type Model struct {
	Vars      *cpvars.Vars
	Objective Objective
}

// Build runs the full Model Builder pipeline against a normalized Input:
// decision variables, universal structural constraints (U1–U7), the Rule
// Compiler's hard constraints and soft terms, the universal soft-penalty
// terms (consecutive/two-match rewards, quiet-day heuristic, home-playing
// preference, weekend coupling, proximity), and the final weighted
// objective (spec §4.3).
func Build(in *normalize.Input) (*Model, error) {
	v := cpvars.Build(in)

	AddUniversalConstraints(v, in)

	ruleSoft, err := rules.Compile(v, in)
	if err != nil {
		return nil, err
	}

	softPenalties := append([]cpmodel.IntVar{}, ruleSoft...)
	softPenalties = append(softPenalties, ConsecutiveAndTwoMatchTerms(v, in)...)
	softPenalties = append(softPenalties, HomePlayingPreferenceTerms(v, in)...)
	softPenalties = append(softPenalties, WeekendCouplingTerms(v, in)...)
	softPenalties = append(softPenalties, QuietDayPenaltyTerms(v, in)...)

	proximity := ProximityPenaltyTerms(v, in)

	cfg := in.Problem.Config.ApplyDefaults()
	obj := AddObjective(v, in, cfg, softPenalties, proximity)

	return &Model{Vars: v, Objective: obj}, nil
}
