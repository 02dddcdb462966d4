package builder

import (
	"time"

	"github.com/google/or-tools/ortools/sat/go/cpmodel"

	"github.com/svdleer/jury-planner/internal/cpvars"
	"github.com/svdleer/jury-planner/internal/cpx"
	"github.com/svdleer/jury-planner/internal/normalize"
)

// AddUniversalConstraints wires the hard structural rules every crew must
// obey regardless of the problem's optional Rule list (spec §4.3, U1–U7),
// grounded on original_source/wp-juryv1.0.py's group_matches_by_day /
// group_matches_by_weekend driven constraint functions. The STATIC sentinel
// crew is excluded from every per-crew workload rule (U2–U5), matching
// apply_static_assignments there; I2 (own-match exclusion) needs no separate
// constraint because eligible() in vars.go never creates a variable for it.
func AddUniversalConstraints(v *cpvars.Vars, in *normalize.Input) {
	b := v.Builder

	for _, m := range in.Matches {
		if m.IsLocked() {
			continue
		}
		if _, ok := in.Problem.StaticAssignments[m.HomeTeam]; ok {
			continue
		}
		// U1: exactly one crew per open match.
		b.AddEquality(v.MatchSum(m.ID), cpmodel.NewConstant(1))
	}

	baseK := int64(in.Problem.Config.ApplyDefaults().DefaultMaxDutiesPerDay)

	for _, crewID := range v.CrewIDs {
		for _, day := range in.Days {
			// U2: per-day duty cap K_d, raised to 4 when exactly four GO
			// matches on the day are all assigned to this crew, and to
			// K_d+1 when the day has an odd number of matches and exactly
			// two GO matches are assigned to this crew — the
			// four_go_matches / two_go_matches reified branching in
			// add_maximum_assignments_per_day_constraint.
			goMatches := goMatchIDs(day)
			goSum := cpmodel.NewConstant(0)
			for _, mid := range goMatches {
				if x, ok := v.CrewVar(mid, crewID); ok {
					goSum = goSum.Add(x)
				}
			}

			rhs := cpmodel.NewConstant(baseK)
			if len(goMatches) == 4 {
				rhs = rhs.Add(cpx.ReifyEquals(b, goSum, 4))
			}
			if len(day.Matches)%2 == 1 && len(goMatches) >= 2 {
				rhs = rhs.Add(cpx.ReifyEquals(b, goSum, 2))
			}
			b.AddLessOrEqual(v.CrewDaySum(day, crewID), rhs)
		}
	}

	addNoBackToBackDays(v, in)
	addNoDoubleWeekend(v, in)
	addContiguityConstraint(v, in)
	addGOPairingConstraint(v, in)
}

// addContiguityConstraint is U5: within a day's sorted match sequence, a
// crew assigned to the match at position i must also be assigned to an
// immediately adjacent position — x[m_i,c] ≤ x[m_{i-1},c] + x[m_{i+1},c],
// dropping the missing term at the first/last position. Prevents a crew
// from taking an isolated single slot mid-day. STATIC is excluded, matching
// every other per-crew workload rule.
func addContiguityConstraint(v *cpvars.Vars, in *normalize.Input) {
	b := v.Builder
	for _, day := range in.Days {
		n := len(day.Matches)
		if n < 2 {
			continue
		}
		for _, crewID := range v.CrewIDs {
			for i, m := range day.Matches {
				xi, ok := v.CrewVar(m.ID, crewID)
				if !ok {
					continue
				}
				neighbors := cpmodel.NewConstant(0)
				if i > 0 {
					if xp, ok := v.CrewVar(day.Matches[i-1].ID, crewID); ok {
						neighbors = neighbors.Add(xp)
					}
				}
				if i+1 < n {
					if xn, ok := v.CrewVar(day.Matches[i+1].ID, crewID); ok {
						neighbors = neighbors.Add(xn)
					}
				}
				b.AddLessOrEqual(cpmodel.NewConstant(0).Add(xi), neighbors)
			}
		}
	}
}

// goMatchIDs returns the ids of a day's GO-series matches, in sorted order.
func goMatchIDs(day normalize.Day) []int {
	var ids []int
	for _, m := range day.Matches {
		if m.IsGO() {
			ids = append(ids, m.ID)
		}
	}
	return ids
}

func isNextCalendarDay(a, b time.Time) bool {
	return b.Sub(a) == 24*time.Hour
}

// addNoBackToBackDays forbids a crew from closing out one day and opening
// the next, grounded on
// add_no_consecutive_assignments_between_days_constraint (U3), which only
// constrains that single pair — the day's last match and the following
// day's first match — not every assignment across the two days.
func addNoBackToBackDays(v *cpvars.Vars, in *normalize.Input) {
	b := v.Builder
	for i := 0; i+1 < len(in.Days); i++ {
		d1, d2 := in.Days[i], in.Days[i+1]
		if !isNextCalendarDay(d1.Date, d2.Date) {
			continue
		}
		if len(d1.Matches) == 0 || len(d2.Matches) == 0 {
			continue
		}
		lastOfD1 := d1.Matches[len(d1.Matches)-1]
		firstOfD2 := d2.Matches[0]
		for _, crewID := range v.CrewIDs {
			xLast, okLast := v.CrewVar(lastOfD1.ID, crewID)
			xFirst, okFirst := v.CrewVar(firstOfD2.ID, crewID)
			if !okLast || !okFirst {
				continue
			}
			b.AddLessOrEqual(cpmodel.NewConstant(0).Add(xLast).Add(xFirst), cpmodel.NewConstant(1))
		}
	}
}

// addNoDoubleWeekend forbids a crew from holding duties on more than one day
// of the same ISO weekend, grounded on
// add_no_double_weekend_assignments_constraint (U4).
func addNoDoubleWeekend(v *cpvars.Vars, in *normalize.Input) {
	b := v.Builder

	byWeekend := make(map[[2]int][]normalize.Day)
	var order [][2]int
	for _, d := range in.Days {
		if _, seen := byWeekend[d.WeekendGroup]; !seen {
			order = append(order, d.WeekendGroup)
		}
		byWeekend[d.WeekendGroup] = append(byWeekend[d.WeekendGroup], d)
	}

	for _, wk := range order {
		days := byWeekend[wk]
		if len(days) < 2 {
			continue
		}
		for _, crewID := range v.CrewIDs {
			activeFlags := make([]cpmodel.BoolVar, 0, len(days))
			for _, d := range days {
				active := b.NewBoolVar()
				sum := v.CrewDaySum(d, crewID)
				b.AddGreaterThan(sum, cpmodel.NewConstant(0)).OnlyEnforceIf(active)
				b.AddEquality(sum, cpmodel.NewConstant(0)).OnlyEnforceIf(active.Not())
				activeFlags = append(activeFlags, active)
			}
			b.AddLessOrEqual(cpx.Sum(activeFlags...), cpmodel.NewConstant(1))
		}
	}
}
