package rule

import (
	"os"
	"path/filepath"
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thoreinstein/bonitahooks/internal/errors"
)

func TestRegistry_Lookup(t *testing.T) {
	r := Builtin()

	assert.Equal(t, []string{SetIntegrationTest, SetUnitTest, SetJavaSource}, r.Names())

	_, err := r.Lookup("groovy")
	assert.True(t, errors.Is(err, errors.ErrUnknownRuleSet))
}

func TestRegistry_Register_Replaces(t *testing.T) {
	r := Builtin()
	r.Register(&Set{Name: SetUnitTest, PathPattern: regexp.MustCompile(`Spec\.java$`)})

	assert.Equal(t, []string{SetIntegrationTest, SetUnitTest, SetJavaSource}, r.Names())
	s, err := r.Lookup(SetUnitTest)
	require.NoError(t, err)
	assert.True(t, s.Matches("/a/FooSpec.java"))
}

func TestRegistry_Matching(t *testing.T) {
	r := Builtin()

	names := func(sets []*Set) []string {
		var out []string
		for _, s := range sets {
			out = append(out, s.Name)
		}
		return out
	}

	assert.Equal(t, []string{SetIntegrationTest}, names(r.Matching("/p/src/test/java/FooIT.java")))
	assert.Equal(t, []string{SetUnitTest}, names(r.Matching("/p/src/test/java/FooTest.java")))
	assert.Equal(t, []string{SetJavaSource}, names(r.Matching("/p/src/main/java/Foo.java")))
	assert.Empty(t, r.Matching("/p/pom.xml"))
}

func TestRegistry_Select(t *testing.T) {
	r := Builtin()

	all, err := r.Select()
	require.NoError(t, err)
	assert.Len(t, all, 3)

	some, err := r.Select(SetJavaSource)
	require.NoError(t, err)
	require.Len(t, some, 1)
	assert.Equal(t, SetJavaSource, some[0].Name)

	_, err = r.Select(SetJavaSource, "nope")
	assert.Error(t, err)
}

func TestRegistry_Checks(t *testing.T) {
	refs := Builtin().Checks()
	require.Len(t, refs, 8)

	byID := make(map[string][]string)
	for i, ref := range refs {
		if i > 0 {
			assert.Less(t, refs[i-1].Check.ID, ref.Check.ID, "checks should be sorted")
		}
		byID[ref.Check.ID] = ref.Sets
	}
	assert.Equal(t, []string{SetIntegrationTest, SetUnitTest}, byID[CheckNoThreadSleep])
	assert.Equal(t, []string{SetIntegrationTest}, byID[CheckExtendsAbstractProcessTest])

	_, err := Builtin().Check("missing")
	assert.True(t, errors.Is(err, errors.ErrUnknownCheck))
}

func TestRegistry_Without(t *testing.T) {
	base := Builtin()
	r := base.Without(CheckNoThreadSleep, "unknown-id")

	it, err := r.Lookup(SetIntegrationTest)
	require.NoError(t, err)
	_, ok := it.Check(CheckNoThreadSleep)
	assert.False(t, ok)
	assert.Len(t, it.Checks, 4)

	orig, err := base.Lookup(SetIntegrationTest)
	require.NoError(t, err)
	assert.Len(t, orig.Checks, 5, "original registry must be unchanged")

	src := NewSource("/src/test/java/FooIT.java", []byte("class FooIT extends AbstractProcessTest { void x() { Thread.sleep(1); } }"))
	assert.Empty(t, it.Evaluate(src))
}

func TestAssemble(t *testing.T) {
	reg, err := Assemble("", nil)
	require.NoError(t, err)
	assert.Equal(t, Builtin().Names(), reg.Names())

	path := filepath.Join(t.TempDir(), "rules.toml")
	content := `[[set]]
name = "unit-test"
path = '/src/test/java/.*Test\.java$'
use = ["no-thread-sleep", "no-wildcard-import"]

[[set]]
name = "groovy-script"
path = '\.groovy$'

  [[set.check]]
  id = "no-println"
  kind = "contains"
  pattern = "println"
  message = "Use the Bonita logger instead of println"
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	reg, err = Assemble(path, []string{CheckNoWildcardImport})
	require.NoError(t, err)
	assert.Equal(t, []string{SetIntegrationTest, SetUnitTest, SetJavaSource, "groovy-script"}, reg.Names())

	unit, err := reg.Lookup(SetUnitTest)
	require.NoError(t, err)
	require.Len(t, unit.Checks, 1)
	assert.Equal(t, CheckNoThreadSleep, unit.Checks[0].ID)

	_, err = Assemble(filepath.Join(t.TempDir(), "missing.toml"), nil)
	require.Error(t, err)
}
