package main

import (
	"fmt"

	gamev1alpha1 "github.com/anvil-platform/depgame/api/v1alpha1"
	"github.com/anvil-platform/depgame/internal/scenario"
)

// layered generates app==1.0.0 depending on lib0, lib0 depending on lib1 and
// so on, with every version of one layer accepting every version of the next.
func layered(packages, versions int) *gamev1alpha1.Scenario {
	if versions < 1 {
		versions = 1
	}
	version := func(layer, v int) string {
		return fmt.Sprintf("lib%d==%d.0.0", layer, v+1)
	}

	root := "app==1.0.0"
	nodes := []string{root}
	var deps [][2]string
	for layer := 0; layer < packages; layer++ {
		for v := 0; v < versions; v++ {
			nodes = append(nodes, version(layer, v))
			if layer == 0 {
				deps = append(deps, [2]string{root, version(layer, v)})
				continue
			}
			for prev := 0; prev < versions; prev++ {
				deps = append(deps, [2]string{version(layer-1, prev), version(layer, v)})
			}
		}
	}
	return scenario.Custom(fmt.Sprintf("layered-%dx%d", packages, versions), nodes, deps, root)
}
