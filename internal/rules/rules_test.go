package rules

import (
	"testing"
	"time"

	"github.com/svdleer/jury-planner/internal/cpvars"
	"github.com/svdleer/jury-planner/internal/model"
	"github.com/svdleer/jury-planner/internal/normalize"
)

func smallInput(t *testing.T) *normalize.Input {
	t.Helper()
	p := model.Problem{
		Window: model.Window{
			Start: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
			End:   time.Date(2026, 1, 31, 0, 0, 0, 0, time.UTC),
		},
		Crews: []model.JuryTeam{
			{ID: 1, Name: "Crew One", Active: true},
			{ID: 2, Name: "Crew Two", Active: true},
		},
		Matches: []model.Match{
			{ID: 1, Start: time.Date(2026, 1, 5, 10, 0, 0, 0, time.UTC), HomeTeam: "A", AwayTeam: "B"},
			{ID: 2, Start: time.Date(2026, 1, 6, 10, 0, 0, 0, time.UTC), HomeTeam: "C", AwayTeam: "D"},
		},
	}
	in, err := normalize.Normalize(p)
	if err != nil {
		t.Fatalf("unexpected normalize error: %v", err)
	}
	return in
}

func TestCompile_RejectsUnknownRuleKind(t *testing.T) {
	in := smallInput(t)
	in.Problem.Rules = []model.Rule{{ID: 1, Kind: "not_a_real_kind", Active: true}}
	v := cpvars.Build(in)

	if _, err := Compile(v, in); err == nil {
		t.Fatal("expected a RuleCompilationError for an unrecognized rule kind")
	} else if _, ok := err.(*model.RuleCompilationError); !ok {
		t.Fatalf("expected *model.RuleCompilationError, got %T", err)
	}
}

func TestCompile_SkipsInactiveRules(t *testing.T) {
	in := smallInput(t)
	in.Problem.Rules = []model.Rule{{ID: 1, Kind: "not_a_real_kind", Active: false}}
	v := cpvars.Build(in)

	if _, err := Compile(v, in); err != nil {
		t.Fatalf("an inactive rule of any kind must be skipped entirely, got: %v", err)
	}
}

func TestCompileCrewUnavailable_RequiresDates(t *testing.T) {
	in := smallInput(t)
	v := cpvars.Build(in)
	r := model.Rule{ID: 1, Kind: model.RuleCrewUnavailable, CrewID: 1, Active: true}

	if err := compileCrewUnavailable(v, in, r); err == nil {
		t.Fatal("expected an error when crew_unavailable has no dates")
	}
}

func TestCompileMaxDutiesPerPeriod_RejectsNonPositivePeriod(t *testing.T) {
	in := smallInput(t)
	v := cpvars.Build(in)
	r := model.Rule{ID: 1, Kind: model.RuleMaxDutiesPerPeriod, CrewID: 1, Max: 2, PeriodDays: 0, Active: true}

	if _, err := compileMaxDutiesPerPeriod(v, in, r); err == nil {
		t.Fatal("expected an error for a non-positive period_days")
	}
}

func TestCompileMaxDutiesPerPeriod_HardWhenWeightIsForbidden(t *testing.T) {
	in := smallInput(t)
	v := cpvars.Build(in)
	r := model.Rule{
		ID: 1, Kind: model.RuleMaxDutiesPerPeriod, CrewID: 1,
		Max: 1, PeriodDays: 7, Weight: model.ForbiddenWeight, Active: true,
	}

	pv, err := compileMaxDutiesPerPeriod(v, in, r)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if pv != nil {
		t.Fatal("a hard max_duties_per_period rule must not produce a penalty variable")
	}
}

func TestCompileMaxDutiesPerPeriod_SoftProducesPenaltyVariable(t *testing.T) {
	in := smallInput(t)
	v := cpvars.Build(in)
	r := model.Rule{ID: 1, Kind: model.RuleMaxDutiesPerPeriod, CrewID: 1, Max: 1, PeriodDays: 7, Active: true}

	pv, err := compileMaxDutiesPerPeriod(v, in, r)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if pv == nil {
		t.Fatal("a soft max_duties_per_period rule must produce a penalty variable")
	}
}

func TestCompileDedicatedCrew_RequiresServesTeam(t *testing.T) {
	in := smallInput(t)
	v := cpvars.Build(in)
	r := model.Rule{ID: 1, Kind: model.RuleDedicatedCrew, CrewID: 1, Active: true}

	if err := compileDedicatedCrew(v, in, r); err == nil {
		t.Fatal("expected an error when dedicated_crew has no serves_team")
	}
}

func TestCompileAvoidConsecutive_RejectsNonPositiveMax(t *testing.T) {
	in := smallInput(t)
	v := cpvars.Build(in)
	r := model.Rule{ID: 1, Kind: model.RuleAvoidConsecutiveMatches, CrewID: 1, MaxConsecutive: 0, Active: true}

	if _, err := compileAvoidConsecutive(v, in, r); err == nil {
		t.Fatal("expected an error for a non-positive max_consecutive")
	}
}

func TestCrewsFor_FallsBackToAllCrews(t *testing.T) {
	in := smallInput(t)
	v := cpvars.Build(in)
	r := model.Rule{ID: 1, Kind: model.RuleAvoidOpponent}

	crews := crewsFor(v, r)
	if len(crews) != len(v.CrewIDs) {
		t.Fatalf("expected every crew when neither crew_id nor crew_ids is set, got %+v", crews)
	}
}
