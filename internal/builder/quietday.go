package builder

import (
	"sort"

	"github.com/google/or-tools/ortools/sat/go/cpmodel"

	"github.com/svdleer/jury-planner/internal/cpvars"
	"github.com/svdleer/jury-planner/internal/cpx"
	"github.com/svdleer/jury-planner/internal/model"
	"github.com/svdleer/jury-planner/internal/normalize"
)

// playingCrewsOnDay returns the crew ids whose roster name appears as a
// home or away team in any of the day's matches, in ascending id order.
func playingCrewsOnDay(day normalize.Day, crewByID map[int]model.JuryTeam) []int {
	var out []int
	for id, c := range crewByID {
		if id == model.StaticCrewID {
			continue
		}
		for _, m := range day.Matches {
			if m.HomeTeam == c.Name || m.AwayTeam == c.Name {
				out = append(out, id)
				break
			}
		}
	}
	sort.Ints(out)
	return out
}

// QuietDayPenaltyTerms implements the §4.4 quiet-day heuristic: on days with
// exactly 2 matches and exactly 2 playing crews, reward the pattern where
// each crew takes one match (either orientation) with a weight-10 slack;
// on days with exactly 3 matches and exactly 2 playing crews, reward the
// pattern where the crew playing early (in either of the first two matches)
// takes only the last match, and the other crew takes the first two, with
// two independent weight-50 slacks — one per sub-assignment, mirroring
// penalty1/penalty2 rather than collapsing them into a single flag. Days
// that don't match either shape (more playing crews, different match
// counts) are left alone — grounded on quiet_match_day_constraint, with the
// "≥2 playing crews" case simplified to exactly 2, the shape the original
// source's own penalty weights (10, 50) are calibrated against.
func QuietDayPenaltyTerms(v *cpvars.Vars, in *normalize.Input) []cpmodel.IntVar {
	b := v.Builder
	var terms []cpmodel.IntVar

	for _, day := range in.Days {
		crews := playingCrewsOnDay(day, in.CrewByID)
		switch {
		case len(day.Matches) == 2 && len(crews) == 2:
			terms = append(terms, twoMatchQuietPenalty(b, v, day, crews[0], crews[1]))
		case len(day.Matches) == 3 && len(crews) == 2:
			terms = append(terms, threeMatchQuietPenalty(b, v, in, day, crews[0], crews[1])...)
		}
	}
	return terms
}

func twoMatchQuietPenalty(b *cpmodel.CpModelBuilder, v *cpvars.Vars, day normalize.Day, crewA, crewB int) cpmodel.IntVar {
	m0, m1 := day.Matches[0].ID, day.Matches[1].ID

	a0, okA0 := v.CrewVar(m0, crewA)
	b1, okB1 := v.CrewVar(m1, crewB)
	b0, okB0 := v.CrewVar(m0, crewB)
	a1, okA1 := v.CrewVar(m1, crewA)

	patternOne := b.NewBoolVar()
	patternTwo := b.NewBoolVar()
	if okA0 && okB1 {
		b.AddBoolAnd([]cpmodel.BoolVar{a0, b1}).OnlyEnforceIf(patternOne)
	} else {
		b.AddEquality(patternOne, cpmodel.NewConstant(0))
	}
	if okB0 && okA1 {
		b.AddBoolAnd([]cpmodel.BoolVar{b0, a1}).OnlyEnforceIf(patternTwo)
	} else {
		b.AddEquality(patternTwo, cpmodel.NewConstant(0))
	}

	satisfied := b.NewBoolVar()
	b.AddBoolOr([]cpmodel.BoolVar{patternOne, patternTwo}).OnlyEnforceIf(satisfied)

	pv := cpx.BoundedPenalty(b, 10)
	b.AddEquality(pv, cpmodel.NewConstant(10).AddTerm(satisfied, -10))
	return pv
}

// threeMatchQuietPenalty mirrors the original's two independent slack
// variables rather than folding the pattern into one AND-gated flag:
// penalty1 charges 50 for each of the first two matches (a slack in [0,2])
// that the other, non-early crew misses, and penalty2 charges 50 when the
// early-playing crew misses the last match (a slack in [0,1]), so a
// partially-satisfied day (one sub-assignment right, one wrong) still earns
// partial credit instead of forfeiting the full 100.
func threeMatchQuietPenalty(b *cpmodel.CpModelBuilder, v *cpvars.Vars, in *normalize.Input, day normalize.Day, crewX, crewY int) []cpmodel.IntVar {
	m0, m1, m2 := day.Matches[0].ID, day.Matches[1].ID, day.Matches[2].ID

	teamOneMatch, teamTwoMatches := identifyEarlyPlayingCrew(day, in.CrewByID, crewX, crewY)

	sumTwo := cpmodel.NewConstant(0)
	if x, ok := v.CrewVar(m0, teamTwoMatches); ok {
		sumTwo = sumTwo.Add(x)
	}
	if x, ok := v.CrewVar(m1, teamTwoMatches); ok {
		sumTwo = sumTwo.Add(x)
	}
	rawOne := b.NewIntVarFromDomain(cpmodel.NewDomain(0, 2))
	b.AddEquality(sumTwo.Add(rawOne), cpmodel.NewConstant(2))
	penalty1 := cpx.BoundedPenalty(b, 100)
	b.AddEquality(penalty1, cpmodel.NewConstant(0).AddTerm(rawOne, 50))

	sumOne := cpmodel.NewConstant(0)
	if x, ok := v.CrewVar(m2, teamOneMatch); ok {
		sumOne = sumOne.Add(x)
	}
	rawTwo := b.NewIntVarFromDomain(cpmodel.NewDomain(0, 1))
	b.AddEquality(sumOne.Add(rawTwo), cpmodel.NewConstant(1))
	penalty2 := cpx.BoundedPenalty(b, 50)
	b.AddEquality(penalty2, cpmodel.NewConstant(0).AddTerm(rawTwo, 50))

	return []cpmodel.IntVar{penalty1, penalty2}
}

// identifyEarlyPlayingCrew reports which of the two playing crews appears
// in either of the day's first two matches (team_playing_early, assigned
// only the last match) and which does not (assigned the first two),
// mirroring the original's first-two-match scan exactly, including its
// fall-through default: when neither crew plays early, crewY takes the last
// match and crewX the first two.
func identifyEarlyPlayingCrew(day normalize.Day, crewByID map[int]model.JuryTeam, crewX, crewY int) (teamOneMatch, teamTwoMatches int) {
	for _, m := range day.Matches[:2] {
		if matchInvolvesCrew(m, crewByID, crewX) {
			return crewX, crewY
		}
		if matchInvolvesCrew(m, crewByID, crewY) {
			return crewY, crewX
		}
	}
	return crewY, crewX
}

// matchInvolvesCrew reports whether crewID's roster name is the home or
// away team of m.
func matchInvolvesCrew(m model.Match, crewByID map[int]model.JuryTeam, crewID int) bool {
	name := crewByID[crewID].Name
	return m.HomeTeam == name || m.AwayTeam == name
}
