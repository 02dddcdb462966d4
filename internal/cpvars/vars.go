// Package cpvars holds the CP-SAT decision-variable layer shared by the
// Rule Compiler and the Model Builder: who may be assigned to what, and the
// handles needed to reference those variables from either package without
// the two importing each other.
package cpvars

import (
	"sort"
	"strings"

	"github.com/google/or-tools/ortools/sat/go/cpmodel"

	"github.com/svdleer/jury-planner/internal/model"
	"github.com/svdleer/jury-planner/internal/normalize"
)

// Vars holds the decision variables and the bits of bookkeeping the Rule
// Compiler, objective assembly, and Solution Extractor all need to see.
type Vars struct {
	Builder *cpmodel.CpModelBuilder

	// X[matchID][crewID] is true when crewID officiates matchID. Only
	// entries for eligible (match, crew) pairs exist.
	X map[int]map[int]cpmodel.BoolVar

	// EligibleCrews[matchID] lists the crew ids with an entry in X, in
	// ascending order, for deterministic iteration.
	EligibleCrews map[int][]int

	CrewIDs []int // every non-STATIC crew id in the problem, ascending
}

// eligible reports whether crew c may officiate match m: active, not
// excluded by the own-match rule, and honoring any dedicated-team
// restriction. Locked and statically-assigned matches are handled by the
// caller before eligibility is consulted for that match.
func eligible(c model.JuryTeam, m model.Match) bool {
	if !c.Active {
		return false
	}
	if c.Name == m.HomeTeam || c.Name == m.AwayTeam {
		return false
	}
	if c.DedicatedToTeam != nil && *c.DedicatedToTeam != m.HomeTeam && *c.DedicatedToTeam != m.AwayTeam {
		return false
	}
	// U7: a "… Da1"/"… Da2" crew of a club never officiates the sibling
	// team's match, a dedicated instance of the I2 own-match family.
	if sib := siblingClubTeam(c.Name); sib != "" && (sib == m.HomeTeam || sib == m.AwayTeam) {
		return false
	}
	return true
}

// siblingClubTeam returns the paired club team name for crews whose display
// name ends in " Da1" or " Da2" (e.g. "MNC Dordrecht Da1" pairs with
// "MNC Dordrecht Da2"), or "" if the name carries no such suffix.
func siblingClubTeam(name string) string {
	switch {
	case strings.HasSuffix(name, " Da1"):
		return strings.TrimSuffix(name, "Da1") + "Da2"
	case strings.HasSuffix(name, " Da2"):
		return strings.TrimSuffix(name, "Da2") + "Da1"
	default:
		return ""
	}
}

// Build creates one model variable per eligible (match, crew) pair. Locked
// matches get a single fixed-true variable for their pinned crew;
// statically-assigned matches (by home team name) get a single fixed-true
// variable for the STATIC sentinel crew. Both are still recorded in X so
// every downstream component treats every match uniformly.
func Build(in *normalize.Input) *Vars {
	b := cpmodel.NewCpModelBuilder()

	v := &Vars{
		Builder:       b,
		X:             make(map[int]map[int]cpmodel.BoolVar),
		EligibleCrews: make(map[int][]int),
	}

	for id := range in.CrewByID {
		if id != model.StaticCrewID {
			v.CrewIDs = append(v.CrewIDs, id)
		}
	}
	sort.Ints(v.CrewIDs)

	for _, m := range in.Matches {
		v.X[m.ID] = make(map[int]cpmodel.BoolVar)

		if m.IsLocked() {
			x := b.NewBoolVar()
			b.AddEquality(x, cpmodel.NewConstant(1))
			v.X[m.ID][*m.LockedCrew] = x
			v.EligibleCrews[m.ID] = []int{*m.LockedCrew}
			continue
		}

		if staticCrew, ok := in.Problem.StaticAssignments[m.HomeTeam]; ok {
			x := b.NewBoolVar()
			b.AddEquality(x, cpmodel.NewConstant(1))
			v.X[m.ID][staticCrew] = x
			v.EligibleCrews[m.ID] = []int{staticCrew}
			continue
		}

		var crews []int
		for _, id := range v.CrewIDs {
			if eligible(in.CrewByID[id], m) {
				crews = append(crews, id)
			}
		}
		sort.Ints(crews)
		for _, id := range crews {
			v.X[m.ID][id] = b.NewBoolVar()
		}
		v.EligibleCrews[m.ID] = crews
	}

	return v
}

// MatchSum returns the linear expression Σ_c X[matchID][c] over the
// eligible crews for that match.
func (v *Vars) MatchSum(matchID int) *cpmodel.LinearExpr {
	expr := cpmodel.NewConstant(0)
	for _, c := range v.EligibleCrews[matchID] {
		expr = expr.Add(v.X[matchID][c])
	}
	return expr
}

// CrewVar returns the decision variable for (matchID, crewID) and whether
// that pair is eligible at all.
func (v *Vars) CrewVar(matchID, crewID int) (cpmodel.BoolVar, bool) {
	x, ok := v.X[matchID][crewID]
	return x, ok
}

// CrewDaySum returns Σ X[m][crewID] over the matches played on the given day.
func (v *Vars) CrewDaySum(day normalize.Day, crewID int) *cpmodel.LinearExpr {
	expr := cpmodel.NewConstant(0)
	for _, m := range day.Matches {
		if x, ok := v.CrewVar(m.ID, crewID); ok {
			expr = expr.Add(x)
		}
	}
	return expr
}
