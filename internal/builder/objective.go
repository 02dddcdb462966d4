package builder

import (
	"math/rand"

	"github.com/google/or-tools/ortools/sat/go/cpmodel"

	"github.com/svdleer/jury-planner/internal/cpvars"
	"github.com/svdleer/jury-planner/internal/model"
	"github.com/svdleer/jury-planner/internal/normalize"
)

// Points computes the per-match point value used by the fairness objective:
// 15 for the first or last match of the full planning-window list, else 10.
// GO and non-GO matches are currently tied at the same value, kept as a
// named constant pair so the policy can change without touching callers.
func Points(in *normalize.Input, matchID int, cfg model.Config) int {
	if len(in.Matches) == 0 {
		return cfg.PointsRegular
	}
	if in.Matches[0].ID == matchID || in.Matches[len(in.Matches)-1].ID == matchID {
		return cfg.PointsFirstLast
	}
	return cfg.PointsRegular
}

// totalPoints returns the linear expression Σ_m points(m)·x[m,c] for crew c.
func totalPoints(v *cpvars.Vars, in *normalize.Input, cfg model.Config, crewID int) *cpmodel.LinearExpr {
	expr := cpmodel.NewConstant(0)
	for _, m := range in.Matches {
		if x, ok := v.CrewVar(m.ID, crewID); ok {
			expr = expr.AddTerm(x, int64(Points(in, m.ID, cfg)))
		}
	}
	return expr
}

// pointsBound is a safe upper bound for any one crew's total points: every
// match in the problem assigned to it at the richer 15-point rate.
func pointsBound(in *normalize.Input, cfg model.Config) int64 {
	return int64(len(in.Matches)) * int64(cfg.PointsFirstLast)
}

// Objective carries the materialized fairness/preference pieces the
// Solution Extractor and Solver Driver need back out of the model:
// per-crew point totals and the realized spread variable.
type Objective struct {
	PerCrewPoints map[int]cpmodel.IntVar
	Spread        cpmodel.IntVar
}

// AddObjective builds and minimizes the spec §4.3 final objective:
//
//	1·spread + 100·(soft penalties) + 1·proximity_penalty + 0.5·randomization_tiebreak
//
// CP-SAT objectives take integer coefficients, so the whole formula is
// rescaled by 2 (argmin-preserving): 2·spread + 200·soft + 2·proximity +
// 1·tiebreak. softPenalties are bounded penalty variables already carrying
// their own internal weight (e.g. the weekend-coupling var's value is
// already ×1000 per violation); proximityPenalties and tiebreakTerms follow
// the same convention.
func AddObjective(
	v *cpvars.Vars,
	in *normalize.Input,
	cfg model.Config,
	softPenalties []cpmodel.IntVar,
	proximityPenalties []cpmodel.IntVar,
) Objective {
	b := v.Builder
	bound := pointsBound(in, cfg)

	perCrew := make(map[int]cpmodel.IntVar, len(v.CrewIDs))
	for _, crewID := range v.CrewIDs {
		pv := b.NewIntVarFromDomain(cpmodel.NewDomain(0, bound))
		b.AddEquality(pv, totalPoints(v, in, cfg, crewID))
		perCrew[crewID] = pv
	}

	maxPts := b.NewIntVarFromDomain(cpmodel.NewDomain(0, bound))
	minPts := b.NewIntVarFromDomain(cpmodel.NewDomain(0, bound))
	pointVars := make([]cpmodel.IntVar, 0, len(perCrew))
	for _, crewID := range v.CrewIDs {
		pointVars = append(pointVars, perCrew[crewID])
	}
	b.AddMaxEquality(maxPts, pointVars)
	b.AddMinEquality(minPts, pointVars)

	spread := b.NewIntVarFromDomain(cpmodel.NewDomain(0, bound))
	b.AddEquality(spread, cpmodel.NewConstant(0).Add(maxPts).AddTerm(minPts, -1))

	objective := cpmodel.NewConstant(0).AddTerm(spread, 2)

	for _, pen := range softPenalties {
		objective = objective.AddTerm(pen, 200)
	}
	for _, pen := range proximityPenalties {
		objective = objective.AddTerm(pen, 2)
	}

	objective = addRandomizationTiebreak(v, in, cfg.Seed, objective)

	b.Minimize(objective)

	return Objective{PerCrewPoints: perCrew, Spread: spread}
}

// addRandomizationTiebreak adds, for every non-static decision variable, a
// uniformly random integer in [1,10] times the variable directly into expr
// with coefficient 1 (the formula's own 0.5 factor having already been
// folded into the ×2 rescale applied to every other term by AddObjective).
// The generator is seeded deterministically from cfg.Seed so identical
// input produces an identical tie-break term every run.
func addRandomizationTiebreak(v *cpvars.Vars, in *normalize.Input, seed int64, expr *cpmodel.LinearExpr) *cpmodel.LinearExpr {
	rng := rand.New(rand.NewSource(seed))
	for _, m := range in.Matches {
		for _, crewID := range v.EligibleCrews[m.ID] {
			if crewID == model.StaticCrewID {
				continue
			}
			x, ok := v.CrewVar(m.ID, crewID)
			if !ok {
				continue
			}
			coeff := int64(1 + rng.Intn(10))
			expr = expr.AddTerm(x, coeff)
		}
	}
	return expr
}
