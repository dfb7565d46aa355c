package v1alpha1

import (
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
)

const (
	// ScenarioConditionValid reports whether the spec describes a well-formed graph.
	ScenarioConditionValid = "Valid"
	// ScenarioConditionSolvable reports whether a bounded search found a solution.
	ScenarioConditionSolvable = "Solvable"
)

// Scenario declares one dependency puzzle: the packages on the board, the
// dependencies between them and the root package the player must install.
//
// +kubebuilder:object:root=true
// +kubebuilder:subresource:status
// +kubebuilder:resource:scope=Namespaced,shortName=sc
// +kubebuilder:printcolumn:name="Root",type=string,JSONPath=`.spec.root`
// +kubebuilder:printcolumn:name="Solutions",type=integer,JSONPath=`.status.solutions`
type Scenario struct {
	metav1.TypeMeta   `json:",inline"`
	metav1.ObjectMeta `json:"metadata,omitempty"`

	Spec   ScenarioSpec   `json:"spec"`
	Status ScenarioStatus `json:"status,omitempty"`
}

type ScenarioSpec struct {
	// DisplayName is the title shown to players.
	DisplayName string `json:"displayName,omitempty"`
	Description string `json:"description,omitempty"`

	// Root is the package token the player must make installable.
	Root string `json:"root"`

	// Packages lists every package token on the board, in display order.
	// The order also fixes clause order and solution search order.
	Packages []string `json:"packages"`

	Dependencies []ScenarioDependency `json:"dependencies,omitempty"`
}

// ScenarioDependency is either a single edge (From -> To) or a version range
// (From -> every version of Package that satisfies Constraint).
type ScenarioDependency struct {
	From string `json:"from"`
	To   string `json:"to,omitempty"`

	Package    string `json:"package,omitempty"`
	Constraint string `json:"constraint,omitempty"`
}

type ScenarioStatus struct {
	// Solutions is the number of solutions found by the last assessment.
	Solutions  int                `json:"solutions,omitempty"`
	Conditions []metav1.Condition `json:"conditions,omitempty"`
}

// +kubebuilder:object:root=true
type ScenarioList struct {
	metav1.TypeMeta `json:",inline"`
	metav1.ListMeta `json:"metadata,omitempty"`
	Items           []Scenario `json:"items"`
}

func init() {
	SchemeBuilder.Register(&Scenario{}, &ScenarioList{})
}
