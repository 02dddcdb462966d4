// Package extract implements the Solution Extractor: it reads the solved
// CP-SAT response back into the domain's Result shape, in match order. See
// spec §4.6.
package extract

import (
	"github.com/google/or-tools/ortools/sat/go/cpmodel"
	cmpb "github.com/google/or-tools/ortools/sat/proto/cpmodel"

	"github.com/svdleer/jury-planner/internal/builder"
	"github.com/svdleer/jury-planner/internal/cpvars"
	"github.com/svdleer/jury-planner/internal/model"
	"github.com/svdleer/jury-planner/internal/normalize"
	"github.com/svdleer/jury-planner/internal/solve"
)

// Extract walks every match in (Start, ID) order and reads off the one crew
// variable the solver set true, tagging its origin as locked, static, or
// solver-chosen. A match with zero or more than one true variable is a bug
// in the universal constraints, not a user-facing error, so it's reported
// as *model.InternalInvariantViolation.
func Extract(in *normalize.Input, m *builder.Model, outcome solve.Outcome, cfg model.Config) (model.Result, error) {
	result := model.Result{
		Status:        outcome.Status,
		ConflictHint:  outcome.ConflictHint,
		PerCrewPoints: make(map[int]int),
	}

	if outcome.Status == model.StatusInfeasible || outcome.Status == model.StatusUnknown {
		result.SolverStats = statsOf(outcome.Response)
		return result, nil
	}

	resp := outcome.Response

	for _, match := range in.Matches {
		crewID, origin, err := assignedCrew(m.Vars, resp, in, match)
		if err != nil {
			return model.Result{}, err
		}
		pts := 0
		if crewID != model.StaticCrewID {
			pts = builder.Points(in, match.ID, cfg)
		}
		result.Assignments = append(result.Assignments, model.Assignment{
			MatchID: match.ID,
			CrewID:  crewID,
			Points:  pts,
			Origin:  origin,
		})
	}

	for _, crewID := range m.Vars.CrewIDs {
		pv := m.Objective.PerCrewPoints[crewID]
		result.PerCrewPoints[crewID] = int(cpmodel.SolutionIntegerValue(resp, pv))
	}
	result.Spread = int(cpmodel.SolutionIntegerValue(resp, m.Objective.Spread))
	result.ObjectiveValue = int64(resp.GetObjectiveValue())
	result.SolverStats = statsOf(resp)

	return result, nil
}

// assignedCrew reports which crew the solver set true for match, and how
// that crew came to be eligible in the first place.
func assignedCrew(v *cpvars.Vars, resp *cmpb.CpSolverResponse, in *normalize.Input, match model.Match) (int, model.Origin, error) {
	if match.IsLocked() {
		return *match.LockedCrew, model.OriginLocked, nil
	}
	if staticCrew, ok := in.Problem.StaticAssignments[match.HomeTeam]; ok {
		return staticCrew, model.OriginStatic, nil
	}

	found := -1
	for _, crewID := range v.EligibleCrews[match.ID] {
		x, ok := v.CrewVar(match.ID, crewID)
		if !ok {
			continue
		}
		if cpmodel.SolutionBooleanValue(resp, x) {
			if found != -1 {
				return 0, "", &model.InternalInvariantViolation{
					Reason: "match has more than one crew assigned true",
				}
			}
			found = crewID
		}
	}
	if found == -1 {
		return 0, "", &model.InternalInvariantViolation{
			Reason: "match has no crew assigned true",
		}
	}
	return found, model.OriginSolver, nil
}

func statsOf(resp *cmpb.CpSolverResponse) model.SolverStats {
	if resp == nil {
		return model.SolverStats{}
	}
	return model.SolverStats{
		WallTimeSeconds: resp.GetWallTime(),
		Branches:        resp.GetNumBranches(),
		Conflicts:       resp.GetNumConflicts(),
	}
}
