// Package cpx collects the small set of CP-SAT modeling idioms the rule
// compiler and model builder share: reified booleans tied to equality or
// threshold facts about a sum of decision variables. The shapes mirror
// original_source/wp-juryv1.0.py's own reification style (its
// four_go_matches, two_go_matches, single_last_match, two_consecutive,
// three_consecutive boolean flags), translated onto
// github.com/google/or-tools/ortools/sat/go/cpmodel, whose primitive calls
// (NewBoolVar, NewLinearExpr/NewConstant + Add/AddTerm, Add*, OnlyEnforceIf,
// Minimize, Model, SolveCpModel) are grounded on the two retrieved samples
// under other_examples/ (ranking_sample_sat.go, no_overlap_sample_sat.go).
package cpx

import (
	"github.com/google/or-tools/ortools/sat/go/cpmodel"
)

// Sum builds a linear expression that is the unweighted sum of the given
// boolean variables, the same pattern ranking_sample_sat.go uses to link
// precedences to ranks (cpmodel.NewConstant(-1).Add(...)).
func Sum(vars ...cpmodel.BoolVar) *cpmodel.LinearExpr {
	expr := cpmodel.NewConstant(0)
	for _, v := range vars {
		expr = expr.Add(v)
	}
	return expr
}

// WeightedSum builds Σ coeff_i * var_i.
func WeightedSum(terms map[cpmodel.BoolVar]int64) *cpmodel.LinearExpr {
	expr := cpmodel.NewConstant(0)
	for v, c := range terms {
		expr = expr.AddTerm(v, c)
	}
	return expr
}

// ReifyEquals creates a boolean variable that is true exactly when sum(vars)
// == target, and false otherwise, mirroring the four_go_matches /
// two_go_matches / two_consecutive / three_consecutive pattern in
// original_source/wp-juryv1.0.py:
//
//	b := model.NewBoolVar()
//	model.Add(sum == target).OnlyEnforceIf(b)
//	model.Add(sum != target).OnlyEnforceIf(b.Not())
func ReifyEquals(b *cpmodel.CpModelBuilder, sum *cpmodel.LinearExpr, target int64) cpmodel.BoolVar {
	flag := b.NewBoolVar()
	b.AddEquality(sum, cpmodel.NewConstant(target)).OnlyEnforceIf(flag)
	b.AddNotEqual(sum, cpmodel.NewConstant(target)).OnlyEnforceIf(flag.Not())
	return flag
}

// ReifyAtMost creates a boolean variable that is true exactly when sum(vars)
// <= limit.
func ReifyAtMost(b *cpmodel.CpModelBuilder, sum *cpmodel.LinearExpr, limit int64) cpmodel.BoolVar {
	flag := b.NewBoolVar()
	b.AddLessOrEqual(sum, cpmodel.NewConstant(limit)).OnlyEnforceIf(flag)
	b.AddGreaterThan(sum, cpmodel.NewConstant(limit)).OnlyEnforceIf(flag.Not())
	return flag
}

// BoundedPenalty creates an IntVar in [0, upperBound]; the caller ties it to
// its penalty expression with AddEquality. The model builder uses it for its
// non-negative soft-penalty terms; the signed terms (consecutive/two-match
// rewards, date preferences, opponent avoidance) declare their own domains.
func BoundedPenalty(b *cpmodel.CpModelBuilder, upperBound int64) cpmodel.IntVar {
	return b.NewIntVarFromDomain(cpmodel.NewDomain(0, upperBound))
}
