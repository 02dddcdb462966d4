package builder

import (
	"github.com/google/or-tools/ortools/sat/go/cpmodel"

	"github.com/svdleer/jury-planner/internal/cpvars"
	"github.com/svdleer/jury-planner/internal/cpx"
	"github.com/svdleer/jury-planner/internal/normalize"
)

// ConsecutiveAndTwoMatchTerms builds the consecutive_reward and
// two_matches_reward soft terms (spec §4.3): a per-crew-per-day signed term
// that goes negative (a reward) when the crew covers a contiguous block of
// same-day matches — a realized pair (−1), a realized triple (−1), or, on a
// 2- or 3-match day, taking both/most of the day's matches (a further −1,
// two_matches_reward) — and positive (+2, a penalty) when the crew takes a
// single isolated slot on a day with ≥4 matches. Grounded on
// original_source/wp-juryv1.0.py's two_consecutive/three_consecutive
// reified flags. Unlike the other soft terms this one is genuinely signed,
// so its IntVar domain spans a negative lower bound rather than [0, N].
func ConsecutiveAndTwoMatchTerms(v *cpvars.Vars, in *normalize.Input) []cpmodel.IntVar {
	b := v.Builder
	var terms []cpmodel.IntVar

	for _, day := range in.Days {
		n := len(day.Matches)
		if n < 2 {
			continue
		}
		for _, crewID := range v.CrewIDs {
			dayCount := v.CrewDaySum(day, crewID)

			pairFlag := cpx.ReifyEquals(b, dayCount, 2)
			tripleFlag := cpx.ReifyEquals(b, dayCount, 3)

			expr := cpmodel.NewConstant(0).AddTerm(pairFlag, -1).AddTerm(tripleFlag, -1)
			if n == 2 || n == 3 {
				expr = expr.AddTerm(pairFlag, -1) // two_matches_reward's own additional −1
			}
			if n == 3 {
				expr = expr.AddTerm(tripleFlag, -1) // all three of a 3-match day also earns it
			}
			if n >= 4 {
				isolatedFlag := cpx.ReifyEquals(b, dayCount, 1)
				expr = expr.AddTerm(isolatedFlag, 2)
			}

			pv := b.NewIntVarFromDomain(cpmodel.NewDomain(-3, 2))
			b.AddEquality(pv, expr)
			terms = append(terms, pv)
		}
	}
	return terms
}

// HomePlayingPreferenceTerms builds the +1-per-assignment penalty applied
// whenever a crew's own team is not among that day's playing teams,
// grounded on prefer_home_playing_jury_teams_constraint.
func HomePlayingPreferenceTerms(v *cpvars.Vars, in *normalize.Input) []cpmodel.IntVar {
	b := v.Builder
	var terms []cpmodel.IntVar

	for _, day := range in.Days {
		for _, crewID := range v.CrewIDs {
			crew := in.CrewByID[crewID]
			if day.PlayingTeams[crew.Name] {
				continue
			}
			sum := v.CrewDaySum(day, crewID)
			pv := cpx.BoundedPenalty(b, int64(len(day.Matches)))
			b.AddEquality(pv, sum)
			terms = append(terms, pv)
		}
	}
	return terms
}

// WeekendCouplingTerms builds the 1000-weight weekend_home/away_coupling
// penalty: a crew assigned on a weekend day is penalized if it also has an
// away match that weekend, or if it has no home match that day and no home
// match on any other day of the same weekend. Grounded on
// add_prefer_no_jury_same_weekend_as_match.
func WeekendCouplingTerms(v *cpvars.Vars, in *normalize.Input) []cpmodel.IntVar {
	b := v.Builder
	var terms []cpmodel.IntVar

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
		for _, crewID := range v.CrewIDs {
			crew := in.CrewByID[crewID]

			homeAnyDay := false
			awayAnyDay := false
			for _, d := range days {
				for _, m := range d.Matches {
					if m.HomeTeam == crew.Name {
						homeAnyDay = true
					}
					if m.AwayTeam == crew.Name {
						awayAnyDay = true
					}
				}
			}

			for _, d := range days {
				dutyToday := b.NewBoolVar()
				sum := v.CrewDaySum(d, crewID)
				b.AddGreaterThan(sum, cpmodel.NewConstant(0)).OnlyEnforceIf(dutyToday)
				b.AddEquality(sum, cpmodel.NewConstant(0)).OnlyEnforceIf(dutyToday.Not())

				violates := awayAnyDay || !homeAnyDay
				if !violates {
					continue
				}
				pv := cpx.BoundedPenalty(b, 1000)
				b.AddEquality(pv, cpmodel.NewConstant(0).AddTerm(dutyToday, 1000))
				terms = append(terms, pv)
			}
		}
	}
	return terms
}

// ProximityPenaltyTerms builds, for each pair of same-day assignments of the
// same crew, a weight-10 penalty of |i-j|-1 (the number of matches between
// them), grounded on add_proximity_constraint.
func ProximityPenaltyTerms(v *cpvars.Vars, in *normalize.Input) []cpmodel.IntVar {
	b := v.Builder
	var terms []cpmodel.IntVar

	for _, day := range in.Days {
		n := len(day.Matches)
		if n < 2 {
			continue
		}
		for _, crewID := range v.CrewIDs {
			for i := 0; i < n; i++ {
				xi, ok := v.CrewVar(day.Matches[i].ID, crewID)
				if !ok {
					continue
				}
				for j := i + 1; j < n; j++ {
					xj, ok := v.CrewVar(day.Matches[j].ID, crewID)
					if !ok {
						continue
					}
					both := b.NewBoolVar()
					b.AddBoolAnd([]cpmodel.BoolVar{xi, xj}).OnlyEnforceIf(both)
					b.AddBoolOr([]cpmodel.BoolVar{xi.Not(), xj.Not()}).OnlyEnforceIf(both.Not())

					gap := int64(j-i-1) * 10
					pv := cpx.BoundedPenalty(b, gap)
					b.AddEquality(pv, cpmodel.NewConstant(0).AddTerm(both, gap))
					terms = append(terms, pv)
				}
			}
		}
	}
	return terms
}
