package scenario

import (
	"fmt"

	"k8s.io/apimachinery/pkg/api/meta"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"

	gamev1alpha1 "github.com/anvil-platform/depgame/api/v1alpha1"
	"github.com/anvil-platform/depgame/internal/resolver"
)

func setCondition(s *gamev1alpha1.Scenario, condition metav1.Condition) {
	condition.ObservedGeneration = s.Generation
	meta.SetStatusCondition(&s.Status.Conditions, condition)
}

// Assess records on s.Status whether the scenario is valid and whether a
// bounded search finds solutions (up to maxSolutions, at least one).
//
// An invalid scenario is not an error here; it is reported through the
// Valid condition and Assess returns the validation error as well.
func Assess(s *gamev1alpha1.Scenario, maxSolutions int) error {
	g, root, err := Graph(s)
	if err != nil {
		setCondition(s, metav1.Condition{
			Type:    gamev1alpha1.ScenarioConditionValid,
			Status:  metav1.ConditionFalse,
			Reason:  "InvalidSpec",
			Message: err.Error(),
		})
		meta.RemoveStatusCondition(&s.Status.Conditions, gamev1alpha1.ScenarioConditionSolvable)
		s.Status.Solutions = 0
		return err
	}
	m, err := resolver.Build(g, root)
	if err != nil {
		return err
	}

	setCondition(s, metav1.Condition{
		Type:    gamev1alpha1.ScenarioConditionValid,
		Status:  metav1.ConditionTrue,
		Reason:  "Validated",
		Message: fmt.Sprintf("%d packages, %d dependencies, %d clauses", g.Len(), g.EdgeCount(), m.Len()),
	})

	if maxSolutions < 1 {
		maxSolutions = 1
	}
	e := m.Enumerate(maxSolutions)
	s.Status.Solutions = len(e.Solutions)
	switch {
	case len(e.Solutions) > 0:
		setCondition(s, metav1.Condition{
			Type:    gamev1alpha1.ScenarioConditionSolvable,
			Status:  metav1.ConditionTrue,
			Reason:  "SolutionFound",
			Message: fmt.Sprintf("%d solution(s) found after %d candidates", len(e.Solutions), e.Examined),
		})
	case e.Exhausted:
		setCondition(s, metav1.Condition{
			Type:    gamev1alpha1.ScenarioConditionSolvable,
			Status:  metav1.ConditionFalse,
			Reason:  "Unsatisfiable",
			Message: fmt.Sprintf("no solution among all %d candidates", e.Examined),
		})
	default:
		setCondition(s, metav1.Condition{
			Type:    gamev1alpha1.ScenarioConditionSolvable,
			Status:  metav1.ConditionUnknown,
			Reason:  "SearchBounded",
			Message: fmt.Sprintf("no solution within the first %d candidates", e.Examined),
		})
	}
	return nil
}
