// Package solve implements the Solver Driver: it hands the Model Builder's
// CP-SAT model to the solver with a wall-clock limit and a deterministic
// seed, and maps the raw response onto the spec's status vocabulary. See
// spec §4.5.
package solve

import (
	"context"

	"github.com/google/or-tools/ortools/sat/go/cpmodel"
	cmpb "github.com/google/or-tools/ortools/sat/proto/cpmodel"
	sppb "github.com/google/or-tools/ortools/sat/proto/satparameters"

	"github.com/svdleer/jury-planner/internal/builder"
	"github.com/svdleer/jury-planner/internal/model"
)

// Outcome bundles the raw solver response with the spec-level status and
// conflict classification the Solution Extractor and the public API need.
type Outcome struct {
	Response     *cmpb.CpSolverResponse
	Status       model.Status
	ConflictHint model.ConflictHint
}

// Run solves m's CP-SAT model with the given config's time limit and seed.
//
// Every soft-penalty variable the Model Builder adds is a bounded slack
// variable whose domain already spans its term's full possible range (see
// internal/builder's cpx.BoundedPenalty and the excess-slack pattern in
// internal/rules) — none of them narrow the feasible region, they only
// shape the objective. That means a solver-proven Infeasible verdict can
// only be caused by the hard constraints (U1–U7 plus any hard Rule), so
// there is nothing a soft-penalties-disabled re-solve could tell us that
// the single solve hasn't already proven: Infeasible always means the hard
// rules themselves contradict. The genuinely ambiguous case — ran out of
// time before finding or ruling out a solution — is exactly what Unknown
// already reports, so it maps to the "no affordable solution found in time"
// hint instead.
func Run(ctx context.Context, m *builder.Model, cfg model.Config) (Outcome, error) {
	proto, err := m.Vars.Builder.Model()
	if err != nil {
		return Outcome{}, err
	}

	params := &sppb.SatParameters{
		MaxTimeInSeconds: floatPtr(float64(cfg.TimeLimitSeconds)),
		RandomSeed:       int32Ptr(int32(cfg.Seed)),
	}

	// SolveCpModelWithParameters is a single blocking call with no ctx
	// parameter of its own, so cancellation is wired the way the donor's
	// job_manager.go does it elsewhere in the tree: run the call on its own
	// goroutine and race it against ctx.Done(). cfg.TimeLimitSeconds remains
	// the primary cancellation mechanism; an external ctx cancellation only
	// unblocks the caller early; the solver itself has no handle to stop and
	// keeps running in the background until its own time limit elapses.
	type solveResult struct {
		resp *cmpb.CpSolverResponse
		err  error
	}
	done := make(chan solveResult, 1)
	go func() {
		resp, err := cpmodel.SolveCpModelWithParameters(proto, params)
		done <- solveResult{resp: resp, err: err}
	}()

	select {
	case <-ctx.Done():
		return Outcome{}, ctx.Err()
	case r := <-done:
		if r.err != nil {
			return Outcome{}, r.err
		}

		status := mapStatus(r.resp.GetStatus())
		outcome := Outcome{Response: r.resp, Status: status}

		switch status {
		case model.StatusInfeasible:
			outcome.ConflictHint = model.ConflictHintHardRulesContradict
		case model.StatusUnknown:
			outcome.ConflictHint = model.ConflictHintNoFeasibleWithinTime
		}

		return outcome, nil
	}
}

func mapStatus(s cmpb.CpSolverStatus) model.Status {
	switch s {
	case cmpb.CpSolverStatus_OPTIMAL:
		return model.StatusOptimal
	case cmpb.CpSolverStatus_FEASIBLE:
		return model.StatusFeasible
	case cmpb.CpSolverStatus_INFEASIBLE:
		return model.StatusInfeasible
	default:
		return model.StatusUnknown
	}
}

func floatPtr(v float64) *float64 { return &v }
func int32Ptr(v int32) *int32     { return &v }
