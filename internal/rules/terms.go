package rules

import (
	"github.com/google/or-tools/ortools/sat/go/cpmodel"

	"github.com/svdleer/jury-planner/internal/cpvars"
	"github.com/svdleer/jury-planner/internal/model"
	"github.com/svdleer/jury-planner/internal/normalize"
)

// crewsFor returns the crew ids a rule applies to: r.CrewID/r.CrewIDs if
// given, otherwise every crew in the problem (for rules whose "crew?" field
// is optional and unset).
func crewsFor(v *cpvars.Vars, r model.Rule) []int {
	if r.CrewID != 0 {
		return []int{r.CrewID}
	}
	if len(r.CrewIDs) > 0 {
		return r.CrewIDs
	}
	return v.CrewIDs
}

// compileRestBetweenMatches is a hard rule: for every pair of matches whose
// gap is shorter than min_rest_days, the same crew cannot serve both.
func compileRestBetweenMatches(v *cpvars.Vars, in *normalize.Input, r model.Rule) error {
	if r.MinRestDays <= 0 {
		return &model.RuleCompilationError{RuleID: r.ID, Reason: "rest_between_matches requires a positive min_rest_days"}
	}
	b := v.Builder
	minGap := float64(r.MinRestDays) * 24 * 60 * 60

	for _, crewID := range crewsFor(v, r) {
		for i, m1 := range in.Matches {
			for _, m2 := range in.Matches[i+1:] {
				gap := m2.Start.Sub(m1.Start).Seconds()
				if gap < 0 {
					gap = -gap
				}
				if gap >= minGap {
					continue
				}
				x1, ok1 := v.CrewVar(m1.ID, crewID)
				x2, ok2 := v.CrewVar(m2.ID, crewID)
				if !ok1 || !ok2 {
					continue
				}
				b.AddLessOrEqual(cpmodel.NewConstant(0).Add(x1).Add(x2), cpmodel.NewConstant(1))
			}
		}
	}
	return nil
}

// compileDedicatedCrew is a hard rule: the crew may only officiate matches
// involving serves_team, unless last_match_exception is set and the match
// is the last of its day with no other qualifying match that day.
func compileDedicatedCrew(v *cpvars.Vars, in *normalize.Input, r model.Rule) error {
	if r.ServesTeam == "" {
		return &model.RuleCompilationError{RuleID: r.ID, Reason: "dedicated_crew requires serves_team"}
	}
	b := v.Builder

	for _, day := range in.Days {
		n := len(day.Matches)
		for i, m := range day.Matches {
			if m.HasTeam(r.ServesTeam) {
				continue
			}
			x, ok := v.CrewVar(m.ID, r.CrewID)
			if !ok {
				continue
			}
			if r.LastMatchException && i == n-1 && !dayHasQualifyingMatch(day, r.ServesTeam, i) {
				continue
			}
			b.AddEquality(x, cpmodel.NewConstant(0))
		}
	}
	return nil
}

func dayHasQualifyingMatch(day normalize.Day, team string, excludeIdx int) bool {
	for i, m := range day.Matches {
		if i != excludeIdx && m.HasTeam(team) {
			return true
		}
	}
	return false
}

// compileDatePreference backs both AvoidDates (sign -1) and PreferDates
// (sign +1): each assignment on a listed date contributes sign*weight to
// the objective. The penalty variable's domain spans negative values for
// the preferred (rewarding) direction, consistent with consecutive_reward's
// own signed-term convention.
func compileDatePreference(v *cpvars.Vars, in *normalize.Input, r model.Rule, sign int64) []cpmodel.IntVar {
	b := v.Builder
	var terms []cpmodel.IntVar

	for _, crewID := range crewsFor(v, r) {
		for _, d := range r.Dates {
			expr := cpmodel.NewConstant(0)
			count := int64(0)
			for _, m := range in.Matches {
				if !sameDate(m.Start, d) {
					continue
				}
				if x, ok := v.CrewVar(m.ID, crewID); ok {
					expr = expr.AddTerm(x, sign*int64(r.Weight))
					count++
				}
			}
			if count == 0 {
				continue
			}
			bound := int64(r.Weight) * count
			if bound < 0 {
				bound = -bound
			}
			pv := b.NewIntVarFromDomain(cpmodel.NewDomain(-bound, bound))
			b.AddEquality(pv, expr)
			terms = append(terms, pv)
		}
	}
	return terms
}

// compileAvoidOpponent penalizes assignments to matches against
// opponent_team, per spec §4.2's literal "−weight per such assignment".
func compileAvoidOpponent(v *cpvars.Vars, in *normalize.Input, r model.Rule) []cpmodel.IntVar {
	b := v.Builder
	var terms []cpmodel.IntVar

	for _, crewID := range crewsFor(v, r) {
		expr := cpmodel.NewConstant(0)
		count := int64(0)
		for _, m := range in.Matches {
			if m.HomeTeam != r.OpponentTeam && m.AwayTeam != r.OpponentTeam {
				continue
			}
			if x, ok := v.CrewVar(m.ID, crewID); ok {
				expr = expr.AddTerm(x, -int64(r.Weight))
				count++
			}
		}
		if count == 0 {
			continue
		}
		bound := int64(r.Weight) * count
		if bound < 0 {
			bound = -bound
		}
		pv := b.NewIntVarFromDomain(cpmodel.NewDomain(-bound, bound))
		b.AddEquality(pv, expr)
		terms = append(terms, pv)
	}
	return terms
}

// compileAvoidConsecutive caps the crew's duties per day at max_consecutive
// softly: every duty beyond the cap on a day adds one unit to that day's
// excess penalty. No hard cap is added (U2's K_d remains the only hard
// per-day limit), and the count covers all of the crew's duties on the day,
// not only back-to-back ones.
func compileAvoidConsecutive(v *cpvars.Vars, in *normalize.Input, r model.Rule) ([]cpmodel.IntVar, error) {
	if r.MaxConsecutive <= 0 {
		return nil, &model.RuleCompilationError{RuleID: r.ID, Reason: "avoid_consecutive_matches requires a positive max_consecutive"}
	}
	b := v.Builder
	var terms []cpmodel.IntVar

	for _, crewID := range crewsFor(v, r) {
		for _, day := range in.Days {
			sum := v.CrewDaySum(day, crewID)
			bound := int64(len(day.Matches))
			excess := b.NewIntVarFromDomain(cpmodel.NewDomain(0, bound))
			b.AddLessOrEqual(sum, cpmodel.NewConstant(int64(r.MaxConsecutive)).Add(excess))
			terms = append(terms, excess)
		}
	}
	return terms, nil
}
