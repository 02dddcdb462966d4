// Package rules implements the Rule Compiler: it expands each typed Rule
// into hard constraints and/or bounded objective penalty terms against the
// Model Builder's decision variables. Stateless given its inputs — compiling
// the same rule set against the same variables always yields the same
// constraints. See spec §4.2.
package rules

import (
	"time"

	"github.com/google/or-tools/ortools/sat/go/cpmodel"

	"github.com/svdleer/jury-planner/internal/cpvars"
	"github.com/svdleer/jury-planner/internal/model"
	"github.com/svdleer/jury-planner/internal/normalize"
)

// Compile expands in.Problem.Rules against v, adding hard constraints
// directly to v.Builder and returning the bounded penalty variables the
// Model Builder folds into the objective's "soft penalties" bucket. An
// unrecognized RuleKind or an invalid parameter combination aborts with
// *model.RuleCompilationError rather than being silently dropped.
func Compile(v *cpvars.Vars, in *normalize.Input) ([]cpmodel.IntVar, error) {
	var penalties []cpmodel.IntVar

	for _, r := range in.Problem.Rules {
		if !r.Active {
			continue
		}
		switch r.Kind {
		case model.RuleCrewUnavailable:
			if err := compileCrewUnavailable(v, in, r); err != nil {
				return nil, err
			}
		case model.RuleMaxDutiesPerPeriod:
			pv, err := compileMaxDutiesPerPeriod(v, in, r)
			if err != nil {
				return nil, err
			}
			if pv != nil {
				penalties = append(penalties, *pv)
			}
		case model.RuleRestBetweenMatches:
			if err := compileRestBetweenMatches(v, in, r); err != nil {
				return nil, err
			}
		case model.RuleDedicatedCrew:
			if err := compileDedicatedCrew(v, in, r); err != nil {
				return nil, err
			}
		case model.RulePreferredDuty:
			// No duty distinctions exist on Match in this system, so this
			// rule kind compiles to nothing — spec §4.2 explicitly scopes
			// it to inputs that carry duty metadata.
		case model.RuleAvoidDates:
			penalties = append(penalties, compileDatePreference(v, in, r, -1)...)
		case model.RulePreferDates:
			penalties = append(penalties, compileDatePreference(v, in, r, 1)...)
		case model.RuleAvoidOpponent:
			penalties = append(penalties, compileAvoidOpponent(v, in, r)...)
		case model.RuleAvoidConsecutiveMatches:
			pv, err := compileAvoidConsecutive(v, in, r)
			if err != nil {
				return nil, err
			}
			penalties = append(penalties, pv...)
		default:
			return nil, &model.RuleCompilationError{RuleID: r.ID, Reason: "unrecognized rule kind: " + string(r.Kind)}
		}
	}

	return penalties, nil
}

func sameDate(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

// compileCrewUnavailable is a hard rule: forces every (crew, match) pair on
// the given date to 0.
func compileCrewUnavailable(v *cpvars.Vars, in *normalize.Input, r model.Rule) error {
	if len(r.Dates) == 0 {
		return &model.RuleCompilationError{RuleID: r.ID, Reason: "crew_unavailable requires at least one date"}
	}
	b := v.Builder
	for _, d := range r.Dates {
		for _, m := range in.Matches {
			if !sameDate(m.Start, d) {
				continue
			}
			if x, ok := v.CrewVar(m.ID, r.CrewID); ok {
				b.AddEquality(x, cpmodel.NewConstant(0))
			}
		}
	}
	return nil
}

// windowSum returns Σ crewDaySum over the days falling within
// [start, start+period_days-1].
func windowSum(v *cpvars.Vars, in *normalize.Input, start normalize.Day, period time.Duration, crewID int) (*cpmodel.LinearExpr, int) {
	windowEnd := start.Date.Add(period)
	sum := cpmodel.NewConstant(0)
	count := 0
	for _, d := range in.Days {
		if d.Date.Before(start.Date) || d.Date.After(windowEnd) {
			continue
		}
		sum = sum.Add(v.CrewDaySum(d, crewID))
		count += len(d.Matches)
	}
	return sum, count
}

// compileMaxDutiesPerPeriod bounds the crew's assignments within every
// rolling window of period_days. Hard when the rule's weight reaches
// model.ForbiddenWeight, soft (a summed excess-count penalty) otherwise.
func compileMaxDutiesPerPeriod(v *cpvars.Vars, in *normalize.Input, r model.Rule) (*cpmodel.IntVar, error) {
	if r.PeriodDays <= 0 {
		return nil, &model.RuleCompilationError{RuleID: r.ID, Reason: "max_duties_per_period requires a positive period_days"}
	}
	if r.Max < 0 {
		return nil, &model.RuleCompilationError{RuleID: r.ID, Reason: "max_duties_per_period requires a non-negative max"}
	}

	b := v.Builder
	period := time.Duration(r.PeriodDays-1) * 24 * time.Hour

	if r.IsHard() {
		for _, start := range in.Days {
			sum, _ := windowSum(v, in, start, period, r.CrewID)
			b.AddLessOrEqual(sum, cpmodel.NewConstant(int64(r.Max)))
		}
		return nil, nil
	}

	total := cpmodel.NewConstant(0)
	var totalBound int64
	for _, start := range in.Days {
		sum, count := windowSum(v, in, start, period, r.CrewID)
		bound := int64(count)
		excess := b.NewIntVarFromDomain(cpmodel.NewDomain(0, bound))
		// excess >= sum - max, expressed without constant subtraction as
		// sum <= max + excess.
		b.AddLessOrEqual(sum, cpmodel.NewConstant(int64(r.Max)).Add(excess))
		total = total.Add(excess)
		totalBound += bound
	}

	penalty := b.NewIntVarFromDomain(cpmodel.NewDomain(0, totalBound))
	b.AddEquality(penalty, total)
	return &penalty, nil
}
