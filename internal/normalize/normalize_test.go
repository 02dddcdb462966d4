package normalize

import (
	"testing"
	"time"

	"github.com/svdleer/jury-planner/internal/model"
)

func baseWindow() model.Window {
	return model.Window{
		Start: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
		End:   time.Date(2026, 1, 31, 0, 0, 0, 0, time.UTC),
	}
}

func TestNormalize_RejectsInvertedWindow(t *testing.T) {
	p := model.Problem{Window: model.Window{
		Start: time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC),
		End:   time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
	}}
	if _, err := Normalize(p); err == nil {
		t.Fatal("expected an error for a window whose end precedes its start")
	}
}

func TestNormalize_RejectsMatchMissingFields(t *testing.T) {
	cases := []struct {
		name string
		m    model.Match
	}{
		{"missing start", model.Match{ID: 1, HomeTeam: "A", AwayTeam: "B"}},
		{"missing home", model.Match{ID: 1, Start: time.Date(2026, 1, 5, 10, 0, 0, 0, time.UTC), AwayTeam: "B"}},
		{"missing away", model.Match{ID: 1, Start: time.Date(2026, 1, 5, 10, 0, 0, 0, time.UTC), HomeTeam: "A"}},
		{"home equals away", model.Match{ID: 1, Start: time.Date(2026, 1, 5, 10, 0, 0, 0, time.UTC), HomeTeam: "A", AwayTeam: "A"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			p := model.Problem{Window: baseWindow(), Matches: []model.Match{tc.m}}
			if _, err := Normalize(p); err == nil {
				t.Fatalf("expected *model.InvalidInputError, got nil")
			}
		})
	}
}

func TestNormalize_FiltersMatchesOutsideWindow(t *testing.T) {
	p := model.Problem{
		Window: baseWindow(),
		Matches: []model.Match{
			{ID: 1, Start: time.Date(2025, 12, 31, 10, 0, 0, 0, time.UTC), HomeTeam: "A", AwayTeam: "B"},
			{ID: 2, Start: time.Date(2026, 1, 10, 10, 0, 0, 0, time.UTC), HomeTeam: "A", AwayTeam: "B"},
		},
	}
	in, err := Normalize(p)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(in.Matches) != 1 || in.Matches[0].ID != 2 {
		t.Fatalf("expected only the in-window match to survive, got %+v", in.Matches)
	}
}

func TestNormalize_OrdersMatchesByStartThenID(t *testing.T) {
	p := model.Problem{
		Window: baseWindow(),
		Matches: []model.Match{
			{ID: 3, Start: time.Date(2026, 1, 5, 10, 0, 0, 0, time.UTC), HomeTeam: "A", AwayTeam: "B"},
			{ID: 1, Start: time.Date(2026, 1, 5, 10, 0, 0, 0, time.UTC), HomeTeam: "C", AwayTeam: "D"},
			{ID: 2, Start: time.Date(2026, 1, 4, 10, 0, 0, 0, time.UTC), HomeTeam: "E", AwayTeam: "F"},
		},
	}
	in, err := Normalize(p)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []int{2, 1, 3}
	for i, id := range want {
		if in.Matches[i].ID != id {
			t.Fatalf("position %d: want match %d, got %d", i, id, in.Matches[i].ID)
		}
	}
}

func TestNormalize_RejectsStaticAssignmentToNonStaticCrew(t *testing.T) {
	p := model.Problem{
		Window: baseWindow(),
		Matches: []model.Match{
			{ID: 1, Start: time.Date(2026, 1, 5, 10, 0, 0, 0, time.UTC), HomeTeam: "A", AwayTeam: "B"},
		},
		StaticAssignments: map[string]int{"A": 7},
	}
	if _, err := Normalize(p); err == nil {
		t.Fatal("expected an error when static_assignments maps to a non-STATIC crew id")
	}
}

func TestNormalize_RejectsStaticAssignmentToUnplayedTeam(t *testing.T) {
	p := model.Problem{
		Window: baseWindow(),
		Matches: []model.Match{
			{ID: 1, Start: time.Date(2026, 1, 5, 10, 0, 0, 0, time.UTC), HomeTeam: "A", AwayTeam: "B"},
		},
		StaticAssignments: map[string]int{"Z": model.StaticCrewID},
	}
	if _, err := Normalize(p); err == nil {
		t.Fatal("expected an error when static_assignments names a team absent from the window")
	}
}

func TestNormalize_RejectsRuleReferencingUnknownCrew(t *testing.T) {
	p := model.Problem{
		Window: baseWindow(),
		Matches: []model.Match{
			{ID: 1, Start: time.Date(2026, 1, 5, 10, 0, 0, 0, time.UTC), HomeTeam: "A", AwayTeam: "B"},
		},
		Rules: []model.Rule{{ID: 1, Kind: model.RuleCrewUnavailable, CrewID: 99999, Active: true}},
	}
	if _, err := Normalize(p); err == nil {
		t.Fatal("expected an error for a rule referencing an unknown crew id")
	}
}

func TestNormalize_GroupsMatchesIntoDays(t *testing.T) {
	p := model.Problem{
		Window: baseWindow(),
		Matches: []model.Match{
			{ID: 1, Start: time.Date(2026, 1, 5, 10, 0, 0, 0, time.UTC), HomeTeam: "A", AwayTeam: "B"},
			{ID: 2, Start: time.Date(2026, 1, 5, 12, 0, 0, 0, time.UTC), HomeTeam: "C", AwayTeam: "D"},
			{ID: 3, Start: time.Date(2026, 1, 6, 10, 0, 0, 0, time.UTC), HomeTeam: "E", AwayTeam: "F"},
		},
	}
	in, err := Normalize(p)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(in.Days) != 2 {
		t.Fatalf("want 2 days, got %d", len(in.Days))
	}
	if len(in.Days[0].Matches) != 2 {
		t.Fatalf("want 2 matches on the first day, got %d", len(in.Days[0].Matches))
	}
	if !in.Days[0].PlayingTeams["A"] || !in.Days[0].PlayingTeams["C"] {
		t.Fatalf("expected PlayingTeams to record home teams, got %+v", in.Days[0].PlayingTeams)
	}
}
