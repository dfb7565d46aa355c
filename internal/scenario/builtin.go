// Package scenario loads, validates and converts dependency puzzles.
//
// Scenarios are Kubernetes-style objects (game.platform/v1alpha1, kind
// Scenario) so that they can be kept in YAML files next to other manifests.
package scenario

import (
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"

	gamev1alpha1 "github.com/anvil-platform/depgame/api/v1alpha1"
)

func edge(from, to string) gamev1alpha1.ScenarioDependency {
	return gamev1alpha1.ScenarioDependency{From: from, To: to}
}

func newScenario(name, displayName, description, root string, packages []string, deps ...gamev1alpha1.ScenarioDependency) gamev1alpha1.Scenario {
	return gamev1alpha1.Scenario{
		TypeMeta:   metav1.TypeMeta{APIVersion: gamev1alpha1.GroupVersion.String(), Kind: "Scenario"},
		ObjectMeta: metav1.ObjectMeta{Name: name},
		Spec: gamev1alpha1.ScenarioSpec{
			DisplayName:  displayName,
			Description:  description,
			Root:         root,
			Packages:     packages,
			Dependencies: deps,
		},
	}
}

// Builtin returns the bundled puzzles. Each call returns fresh objects.
func Builtin() []gamev1alpha1.Scenario {
	return []gamev1alpha1.Scenario{
		newScenario("boolean-logic", "Boolean Logic",
			"A==2.0 with complex B and G version dependencies",
			"A==2.0",
			[]string{"A==2.0", "B==1.3", "B==1.4", "G==0.5", "G==0.6", "G==0.7"},
			edge("A==2.0", "B==1.3"),
			edge("A==2.0", "B==1.4"),
			edge("A==2.0", "G==0.6"),
			edge("A==2.0", "G==0.7"),
			edge("B==1.3", "G==0.5"),
			edge("B==1.3", "G==0.6"),
			edge("B==1.4", "G==0.7"),
		),
		newScenario("simple-web-app", "Simple Web App",
			"A basic web application with Flask and requests",
			"myapp==1.0.0",
			[]string{
				"myapp==1.0.0",
				"flask==2.0.0", "flask==1.5.0",
				"req==2.25.0", "req==2.20.0",
				"jinja2==3.0.0",
				"urllib3==1.26.0",
			},
			edge("myapp==1.0.0", "flask==2.0.0"),
			edge("myapp==1.0.0", "req==2.25.0"),
			edge("flask==2.0.0", "jinja2==3.0.0"),
			edge("req==2.25.0", "urllib3==1.26.0"),
			edge("flask==1.5.0", "jinja2==3.0.0"),
			edge("req==2.20.0", "urllib3==1.26.0"),
		),
		newScenario("data-science-stack", "Data Science Stack",
			"Scientific computing with numpy, pandas, and plotly",
			"sklearn==1.0.0",
			[]string{
				"sklearn==1.0.0",
				"numpy==1.21.0", "numpy==1.20.0",
				"pandas==1.3.0", "pandas==1.2.0",
				"plotly==3.4.0",
				"scipy==1.7.0",
				"py_util==2.8.0",
			},
			edge("sklearn==1.0.0", "numpy==1.21.0"),
			edge("sklearn==1.0.0", "pandas==1.3.0"),
			edge("sklearn==1.0.0", "plotly==3.4.0"),
			edge("pandas==1.3.0", "numpy==1.21.0"),
			edge("pandas==1.3.0", "py_util==2.8.0"),
			edge("pandas==1.2.0", "numpy==1.20.0"),
			edge("pandas==1.2.0", "py_util==2.8.0"),
			edge("plotly==3.4.0", "numpy==1.21.0"),
			edge("scipy==1.7.0", "numpy==1.21.0"),
		),
		// Unsatisfiable: cuda==12.1 needs cudnn==8.7.0, but torch needs cudnn==8.9.2.
		newScenario("torch-gpu-stack", "Torch GPU Stack",
			"A moderately tough scenario with a version conflict in the torch, cuda, cudnn, and driver GPU stack.",
			"torch==2.3.1",
			[]string{
				"torch==2.3.1",
				"cuda==12.1", "cuda==11.8",
				"cudnn==8.9.2", "cudnn==8.7.0",
				"driver==35.10",
			},
			edge("torch==2.3.1", "cuda==12.1"),
			edge("torch==2.3.1", "cudnn==8.9.2"),
			edge("cuda==12.1", "cudnn==8.7.0"),
			edge("cuda==11.8", "driver==35.10"),
			edge("cudnn==8.9.2", "cuda==11.8"),
			edge("cudnn==8.7.0", "driver==35.10"),
		),
	}
}

// Lookup returns the built-in scenario with the given name.
func Lookup(name string) (*gamev1alpha1.Scenario, bool) {
	for _, s := range Builtin() {
		if s.Name == name {
			return &s, true
		}
	}
	return nil, false
}

// Custom builds a scenario from explicit packages and (from, to) pairs.
func Custom(name string, packages []string, dependencies [][2]string, root string) *gamev1alpha1.Scenario {
	deps := make([]gamev1alpha1.ScenarioDependency, len(dependencies))
	for i, d := range dependencies {
		deps[i] = edge(d[0], d[1])
	}
	s := newScenario(name, "Custom Graph", "User-defined dependency graph", root,
		append([]string(nil), packages...), deps...)
	return &s
}
