package builder

import (
	"testing"

	"github.com/svdleer/jury-planner/internal/model"
)

func TestBuild_ProducesOneObjectiveEntryPerCrew(t *testing.T) {
	in := threeMatchInput(t)
	in.Problem.Crews = []model.JuryTeam{
		{ID: 1, Name: "Crew One", Active: true},
		{ID: 2, Name: "Crew Two", Active: true},
	}
	in.CrewByID = map[int]model.JuryTeam{
		1: {ID: 1, Name: "Crew One", Active: true},
		2: {ID: 2, Name: "Crew Two", Active: true},
	}

	m, err := Build(in)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(m.Objective.PerCrewPoints) != 2 {
		t.Fatalf("want one objective point var per crew, got %d", len(m.Objective.PerCrewPoints))
	}
	if len(m.Vars.CrewIDs) != 2 {
		t.Fatalf("want 2 crews, got %d", len(m.Vars.CrewIDs))
	}
}

func TestBuild_PropagatesRuleCompilationError(t *testing.T) {
	in := threeMatchInput(t)
	in.Problem.Crews = []model.JuryTeam{{ID: 1, Name: "Crew One", Active: true}}
	in.CrewByID = map[int]model.JuryTeam{1: {ID: 1, Name: "Crew One", Active: true}}
	in.Problem.Rules = []model.Rule{{ID: 1, Kind: model.RuleCrewUnavailable, CrewID: 1, Active: true}}

	if _, err := Build(in); err == nil {
		t.Fatal("expected crew_unavailable with no dates to fail rule compilation")
	} else if _, ok := err.(*model.RuleCompilationError); !ok {
		t.Fatalf("expected *model.RuleCompilationError, got %T", err)
	}
}
