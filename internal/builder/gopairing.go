package builder

import (
	"time"

	"github.com/google/or-tools/ortools/sat/go/cpmodel"

	"github.com/svdleer/jury-planner/internal/cpvars"
	"github.com/svdleer/jury-planner/internal/model"
	"github.com/svdleer/jury-planner/internal/normalize"
)

// addGOPairingConstraint is U6: GO-series matches sharing a start time on
// the same day must be served by one crew, and consecutive same-start
// groups chain together so the same crew carries the whole run. Grounded on
// original_source/wp-juryv1.0.py's add_go_matches_constraint, which special
// cases 2, 3, 4, and ≥5 GO matches in a day; here every contiguous
// same-start group is equality-chained to its neighbor, and when five or
// more GO matches exist the final, otherwise-unpaired match is left out of
// the chain and forced onto a different crew than the one serving the first
// chain (mirroring "the
// crew serving the first chain differs from the crew serving the final
// unpaired GO match").
func addGOPairingConstraint(v *cpvars.Vars, in *normalize.Input) {
	b := v.Builder

	for _, day := range in.Days {
		groups := groupGOByStartTime(day)
		if len(groups) == 0 {
			continue
		}

		total := 0
		for _, g := range groups {
			total += len(g)
		}
		splitLast := total >= 5 && len(groups[len(groups)-1]) == 1
		chained := len(groups)
		if splitLast {
			chained--
		}

		for _, crewID := range v.CrewIDs {
			for _, group := range groups {
				for i := 1; i < len(group); i++ {
					equalIfBothEligible(b, v, group[0], group[i], crewID)
				}
			}
			for i := 1; i < chained; i++ {
				equalIfBothEligible(b, v, groups[i-1][0], groups[i][0], crewID)
			}
		}

		if splitLast {
			forceDifferentCrew(b, v, groups[0][0], groups[len(groups)-1][0])
		}
	}
}

// groupGOByStartTime clusters a day's GO-series matches (already sorted by
// start time within the day) into contiguous groups sharing an identical
// start timestamp.
func groupGOByStartTime(day normalize.Day) [][]int {
	var goMatches []model.Match
	for _, m := range day.Matches {
		if m.IsGO() {
			goMatches = append(goMatches, m)
		}
	}

	var groups [][]int
	var current []int
	var currentStart time.Time
	for _, m := range goMatches {
		if len(current) == 0 || !m.Start.Equal(currentStart) {
			if len(current) > 0 {
				groups = append(groups, current)
			}
			current = []int{m.ID}
			currentStart = m.Start
			continue
		}
		current = append(current, m.ID)
	}
	if len(current) > 0 {
		groups = append(groups, current)
	}
	return groups
}

// equalIfBothEligible forces x[a,crewID] == x[b,crewID] when both variables
// exist; a missing variable means that crew was never eligible for that
// match, so there is nothing to link.
func equalIfBothEligible(b *cpmodel.CpModelBuilder, v *cpvars.Vars, a, bID, crewID int) {
	xa, okA := v.CrewVar(a, crewID)
	xb, okB := v.CrewVar(bID, crewID)
	if !okA || !okB {
		return
	}
	b.AddEquality(xa, xb)
}

// forceDifferentCrew adds, for every crew eligible for both matches, the
// constraint that they cannot both be served by that crew.
func forceDifferentCrew(b *cpmodel.CpModelBuilder, v *cpvars.Vars, matchA, matchB int) {
	for _, crewID := range v.CrewIDs {
		xa, okA := v.CrewVar(matchA, crewID)
		xb, okB := v.CrewVar(matchB, crewID)
		if !okA || !okB {
			continue
		}
		b.AddLessOrEqual(cpmodel.NewConstant(0).Add(xa).Add(xb), cpmodel.NewConstant(1))
	}
}
