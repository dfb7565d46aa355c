package scenario

import (
	"strings"

	"k8s.io/apimachinery/pkg/util/sets"
	"k8s.io/apimachinery/pkg/util/validation/field"

	gamev1alpha1 "github.com/anvil-platform/depgame/api/v1alpha1"
	"github.com/anvil-platform/depgame/internal/graph"
	"github.com/anvil-platform/depgame/internal/semver"
)

// Validate checks that s describes a well-formed puzzle.
//
// The root must be one of the packages, every dependency endpoint must be a
// package, and a version-range dependency must match at least one package:
// a dependency with no candidates would otherwise vanish from the graph.
func Validate(s *gamev1alpha1.Scenario) field.ErrorList {
	var errs field.ErrorList
	if strings.TrimSpace(s.Name) == "" {
		errs = append(errs, field.Required(field.NewPath("metadata", "name"), ""))
	}

	specPath := field.NewPath("spec")
	packagesPath := specPath.Child("packages")
	packages := sets.New[string]()
	if len(s.Spec.Packages) == 0 {
		errs = append(errs, field.Required(packagesPath, "at least one package is required"))
	}
	for i, p := range s.Spec.Packages {
		switch {
		case strings.TrimSpace(p) == "":
			errs = append(errs, field.Required(packagesPath.Index(i), ""))
		case packages.Has(p):
			errs = append(errs, field.Duplicate(packagesPath.Index(i), p))
		default:
			packages.Insert(p)
		}
	}

	rootPath := specPath.Child("root")
	switch {
	case strings.TrimSpace(s.Spec.Root) == "":
		errs = append(errs, field.Required(rootPath, ""))
	case !packages.Has(s.Spec.Root):
		errs = append(errs, field.NotFound(rootPath, s.Spec.Root))
	}

	for i, d := range s.Spec.Dependencies {
		errs = append(errs, validateDependency(d, packages, s.Spec.Packages, specPath.Child("dependencies").Index(i))...)
	}
	return errs
}

func validateDependency(d gamev1alpha1.ScenarioDependency, packages sets.Set[string], ordered []string, path *field.Path) field.ErrorList {
	var errs field.ErrorList
	if !packages.Has(d.From) {
		errs = append(errs, field.NotFound(path.Child("from"), d.From))
	}

	ranged := d.Package != "" || d.Constraint != ""
	switch {
	case d.To != "" && ranged:
		errs = append(errs, field.Forbidden(path.Child("to"), "may not be combined with package/constraint"))
	case d.To != "":
		if !packages.Has(d.To) {
			errs = append(errs, field.NotFound(path.Child("to"), d.To))
		}
	case !ranged:
		errs = append(errs, field.Required(path.Child("to"), "either to or package/constraint is required"))
	case d.Package == "":
		errs = append(errs, field.Required(path.Child("package"), "constraint requires a package name"))
	default:
		targets, err := matchConstraint(d.Package, d.Constraint, ordered)
		if err != nil {
			errs = append(errs, field.Invalid(path.Child("constraint"), d.Constraint, err.Error()))
		} else if len(targets) == 0 {
			errs = append(errs, field.Invalid(path.Child("constraint"), d.Constraint, "matches no version of package "+d.Package))
		}
	}
	return errs
}

// matchConstraint returns the packages named name whose version satisfies
// constraint, in package order. An empty constraint matches every version.
// Versions that are not semantic versions never match a non-empty constraint.
func matchConstraint(name, constraint string, packages []string) ([]graph.Token, error) {
	raw := strings.TrimSpace(constraint)
	if raw == "" {
		raw = "*"
	}
	c, err := semver.ParseConstraint(raw)
	if err != nil {
		return nil, err
	}

	var out []graph.Token
	for _, p := range packages {
		t := graph.Token(p)
		if t.Name() != name {
			continue
		}
		v, err := semver.ParseVersion(t.Version())
		if err != nil {
			continue
		}
		if semver.Satisfies(v, c) {
			out = append(out, t)
		}
	}
	return out, nil
}
