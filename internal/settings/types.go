package settings

import (
	"slices"

	"github.com/thoreinstein/bonitahooks/internal/errors"
	"github.com/thoreinstein/bonitahooks/internal/rule"
)

// Project type names.
const (
	TypeBonitaProcess   = "bonita-process"
	TypeBonitaConnector = "bonita-connector"
	TypeJavaLibrary     = "java-library"
)

// ProjectType names the rule sets a kind of project is checked with.
type ProjectType struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Sets        []string `json:"sets"`
}

var projectTypes = []ProjectType{
	{
		Name:        TypeBonitaProcess,
		Description: "Bonita process project with integration tests",
		Sets:        []string{rule.SetIntegrationTest, rule.SetUnitTest, rule.SetJavaSource},
	},
	{
		Name:        TypeBonitaConnector,
		Description: "Bonita connector or actor filter",
		Sets:        []string{rule.SetUnitTest, rule.SetJavaSource},
	},
	{
		Name:        TypeJavaLibrary,
		Description: "Plain Java library",
		Sets:        []string{rule.SetUnitTest, rule.SetJavaSource},
	},
}

// Types returns the known project types in display order.
func Types() []ProjectType {
	out := make([]ProjectType, len(projectTypes))
	for i, pt := range projectTypes {
		pt.Sets = slices.Clone(pt.Sets)
		out[i] = pt
	}
	return out
}

// TypeNames returns the names of the known project types.
func TypeNames() []string {
	names := make([]string, len(projectTypes))
	for i, pt := range projectTypes {
		names[i] = pt.Name
	}
	return names
}

// LookupType returns the project type called name.
func LookupType(name string) (ProjectType, error) {
	for _, pt := range Types() {
		if pt.Name == name {
			return pt, nil
		}
	}
	return ProjectType{}, errors.Wrapf(errors.ErrUnknownProjectType, "%q", name)
}
