package jury

import (
	"context"
	"testing"
	"time"
)

func smallProblem() Problem {
	return Problem{
		Window: Window{
			Start: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
			End:   time.Date(2026, 1, 31, 0, 0, 0, 0, time.UTC),
		},
		Crews: []JuryTeam{
			{ID: 1, Name: "Crew One", Active: true},
			{ID: 2, Name: "Crew Two", Active: true},
			{ID: 3, Name: "Crew Three", Active: true},
		},
		Matches: []Match{
			{ID: 1, Start: time.Date(2026, 1, 3, 9, 0, 0, 0, time.UTC), HomeTeam: "Dolphins", AwayTeam: "Sharks"},
			{ID: 2, Start: time.Date(2026, 1, 3, 11, 0, 0, 0, time.UTC), HomeTeam: "Otters", AwayTeam: "Eels"},
			{ID: 3, Start: time.Date(2026, 1, 10, 9, 0, 0, 0, time.UTC), HomeTeam: "Dolphins", AwayTeam: "Eels"},
		},
		Config: Config{TimeLimitSeconds: 10, Seed: 42},
	}
}

func TestSolve_RejectsInvalidProblem(t *testing.T) {
	p := Problem{} // missing required Window/Crews/Matches
	if _, err := Solve(context.Background(), p); err == nil {
		t.Fatal("expected validation to reject an empty problem")
	}
}

func TestSolve_OneAssignmentPerMatch(t *testing.T) {
	result, err := Solve(context.Background(), smallProblem())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Status != StatusOptimal && result.Status != StatusFeasible {
		t.Fatalf("expected a usable solution, got status %s", result.Status)
	}
	if len(result.Assignments) != 3 {
		t.Fatalf("want 3 assignments, got %d", len(result.Assignments))
	}
}

func TestSolve_NeverAssignsCrewToItsOwnMatch(t *testing.T) {
	p := smallProblem()
	result, err := Solve(context.Background(), p)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	crewNames := map[int]string{1: "Crew One", 2: "Crew Two", 3: "Crew Three"}
	matchTeams := map[int][2]string{
		1: {"Dolphins", "Sharks"},
		2: {"Otters", "Eels"},
		3: {"Dolphins", "Eels"},
	}
	for _, a := range result.Assignments {
		name := crewNames[a.CrewID]
		teams := matchTeams[a.MatchID]
		if name == teams[0] || name == teams[1] {
			t.Fatalf("match %d was assigned to a crew playing in it: %s", a.MatchID, name)
		}
	}
}

func TestSolve_DeterministicForIdenticalSeed(t *testing.T) {
	p := smallProblem()
	r1, err := Solve(context.Background(), p)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	r2, err := Solve(context.Background(), p)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if r1.ObjectiveValue != r2.ObjectiveValue {
		t.Fatalf("same seed must reproduce the same objective value: %d vs %d", r1.ObjectiveValue, r2.ObjectiveValue)
	}
	for i := range r1.Assignments {
		if r1.Assignments[i].CrewID != r2.Assignments[i].CrewID {
			t.Fatalf("assignment %d differs across identical-seed runs: %d vs %d",
				i, r1.Assignments[i].CrewID, r2.Assignments[i].CrewID)
		}
	}
}

func TestSolve_AllNonOwnCrewsUnavailableIsHardRulesContradict(t *testing.T) {
	matchDay := time.Date(2026, 1, 3, 9, 0, 0, 0, time.UTC)
	p := Problem{
		Window: Window{
			Start: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
			End:   time.Date(2026, 1, 31, 0, 0, 0, 0, time.UTC),
		},
		Crews: []JuryTeam{
			{ID: 1, Name: "Dolphins", Active: true},
			{ID: 2, Name: "Crew Two", Active: true},
			{ID: 3, Name: "Crew Three", Active: true},
		},
		Matches: []Match{
			{ID: 1, Start: matchDay, HomeTeam: "Dolphins", AwayTeam: "Sharks"},
		},
		Rules: []Rule{
			{ID: 1, Kind: RuleCrewUnavailable, CrewID: 2, Dates: []time.Time{matchDay}, Active: true},
			{ID: 2, Kind: RuleCrewUnavailable, CrewID: 3, Dates: []time.Time{matchDay}, Active: true},
		},
		Config: Config{TimeLimitSeconds: 10, Seed: 42},
	}

	result, err := Solve(context.Background(), p)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Status != StatusInfeasible {
		t.Fatalf("want status Infeasible, got %s", result.Status)
	}
	if result.ConflictHint != ConflictHintHardRulesContradict {
		t.Fatalf("want conflict_hint hard_rules_contradict, got %s", result.ConflictHint)
	}
	if len(result.Assignments) != 0 {
		t.Fatalf("want no assignments on an infeasible result, got %d", len(result.Assignments))
	}
}

func TestSolve_LockedMatchIsRespected(t *testing.T) {
	p := smallProblem()
	locked := 2
	p.Matches[0].LockedCrew = &locked

	result, err := Solve(context.Background(), p)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, a := range result.Assignments {
		if a.MatchID == 1 {
			if a.CrewID != locked || a.Origin != OriginLocked {
				t.Fatalf("locked match must keep its pinned crew with locked origin, got crew=%d origin=%s", a.CrewID, a.Origin)
			}
		}
	}
}
