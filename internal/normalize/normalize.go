// Package normalize implements the Input Normalizer: validates and groups
// raw matches, teams, and rules into the internal data model; canonicalizes
// timestamps; resolves rule targets by id. See spec §4.1.
package normalize

import (
	"sort"
	"strconv"
	"time"

	"github.com/svdleer/jury-planner/internal/model"
)

// Day is one calendar day's worth of matches, sorted by start time, plus the
// derived facts the Model Builder needs per day.
type Day struct {
	Date         time.Time
	Matches      []model.Match
	WeekendGroup [2]int // ISO year, ISO week
	PlayingTeams map[string]bool
}

// Input is the normalized, validated view of a Problem that every downstream
// component (Rule Compiler, Model Builder, Solution Extractor) consumes.
type Input struct {
	Problem  model.Problem
	Days     []Day
	Matches  []model.Match // window-filtered, in (Start, ID) order — spec I6
	CrewByID map[int]model.JuryTeam
	TeamNames map[string]bool // every home/away display name seen in Matches
}

// Normalize validates the problem and builds the grouped view the rest of
// the pipeline operates on. It fails with *model.InvalidInputError if any
// rule references an unknown crew or team, or if a match lacks a timestamp,
// home team, or away team (spec §4.1).
func Normalize(p model.Problem) (*Input, error) {
	if p.Window.End.Before(p.Window.Start) {
		return nil, &model.InvalidInputError{Reason: "window end precedes window start"}
	}

	crewByID := make(map[int]model.JuryTeam, len(p.Crews))
	for _, c := range p.Crews {
		crewByID[c.ID] = c
	}

	filtered := make([]model.Match, 0, len(p.Matches))
	teamNames := make(map[string]bool)
	for _, m := range p.Matches {
		if m.Start.IsZero() {
			return nil, &model.InvalidInputError{Reason: matchErr(m.ID, "missing start timestamp")}
		}
		if m.HomeTeam == "" {
			return nil, &model.InvalidInputError{Reason: matchErr(m.ID, "missing home team")}
		}
		if m.AwayTeam == "" {
			return nil, &model.InvalidInputError{Reason: matchErr(m.ID, "missing away team")}
		}
		if m.HomeTeam == m.AwayTeam {
			return nil, &model.InvalidInputError{Reason: matchErr(m.ID, "home and away team must differ")}
		}
		if m.LockedCrew != nil {
			if _, ok := crewByID[*m.LockedCrew]; !ok {
				return nil, &model.InvalidInputError{Reason: matchErr(m.ID, "locked crew references unknown crew id")}
			}
		}
		if m.Start.Before(p.Window.Start) || m.Start.After(p.Window.End) {
			continue
		}
		filtered = append(filtered, m)
		teamNames[m.HomeTeam] = true
		teamNames[m.AwayTeam] = true
	}

	for home, crewID := range p.StaticAssignments {
		if crewID != model.StaticCrewID {
			return nil, &model.InvalidInputError{Reason: "static_assignments must map to the STATIC crew id"}
		}
		if !teamNames[home] {
			return nil, &model.InvalidInputError{Reason: "static_assignments references a team with no match in the window: " + home}
		}
	}

	if err := validateRules(p.Rules, crewByID, teamNames); err != nil {
		return nil, err
	}

	sort.Slice(filtered, func(i, j int) bool {
		if !filtered[i].Start.Equal(filtered[j].Start) {
			return filtered[i].Start.Before(filtered[j].Start)
		}
		return filtered[i].ID < filtered[j].ID
	})

	days := groupByDay(filtered)

	return &Input{
		Problem:   p,
		Days:      days,
		Matches:   filtered,
		CrewByID:  crewByID,
		TeamNames: teamNames,
	}, nil
}

func matchErr(id int, reason string) string {
	return "match " + strconv.Itoa(id) + ": " + reason
}

func groupByDay(matches []model.Match) []Day {
	byDate := make(map[string]*Day)
	var order []string

	for _, m := range matches {
		key := m.Start.Format("2006-01-02")
		d, ok := byDate[key]
		if !ok {
			year, week := m.Start.ISOWeek()
			d = &Day{
				Date:         time.Date(m.Start.Year(), m.Start.Month(), m.Start.Day(), 0, 0, 0, 0, m.Start.Location()),
				WeekendGroup: [2]int{year, week},
				PlayingTeams: make(map[string]bool),
			}
			byDate[key] = d
			order = append(order, key)
		}
		d.Matches = append(d.Matches, m)
		d.PlayingTeams[m.HomeTeam] = true
	}

	sort.Strings(order)

	days := make([]Day, 0, len(order))
	for _, key := range order {
		d := byDate[key]
		sort.Slice(d.Matches, func(i, j int) bool {
			if !d.Matches[i].Start.Equal(d.Matches[j].Start) {
				return d.Matches[i].Start.Before(d.Matches[j].Start)
			}
			return d.Matches[i].ID < d.Matches[j].ID
		})
		days = append(days, *d)
	}
	return days
}

func validateRules(rules []model.Rule, crewByID map[int]model.JuryTeam, teamNames map[string]bool) error {
	for _, r := range rules {
		if r.CrewID != 0 {
			if _, ok := crewByID[r.CrewID]; !ok {
				return &model.InvalidInputError{Reason: "rule " + strconv.Itoa(r.ID) + " references unknown crew id " + strconv.Itoa(r.CrewID)}
			}
		}
		for _, id := range r.CrewIDs {
			if _, ok := crewByID[id]; !ok {
				return &model.InvalidInputError{Reason: "rule " + strconv.Itoa(r.ID) + " references unknown crew id " + strconv.Itoa(id)}
			}
		}
		if r.ServesTeam != "" && !teamNames[r.ServesTeam] {
			return &model.InvalidInputError{Reason: "rule " + strconv.Itoa(r.ID) + " references unknown team " + r.ServesTeam}
		}
		if r.OpponentTeam != "" && !teamNames[r.OpponentTeam] {
			return &model.InvalidInputError{Reason: "rule " + strconv.Itoa(r.ID) + " references unknown team " + r.OpponentTeam}
		}
	}
	return nil
}
