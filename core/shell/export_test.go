package shell

import (
	"path/filepath"
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
)

func runExport(t *testing.T, env *Environment, args ...string) int {
	t.Helper()

	b, _ := Find("export")
	code, err := Execute("export", b, env, ExecData{Args: args})
	assert.Nil(t, err)
	return code
}

func TestExport_Assign(t *testing.T) {
	env, _, _ := testSession("")

	assert.Equal(t, 0, runExport(t, env, "FOO=bar"))

	v, ok := env.LookupVar("FOO")
	assert.True(t, ok)
	assert.Equal(t, "bar", v.Value)
	assert.True(t, v.Exported)
}

func TestExport_BareName(t *testing.T) {
	env, _, _ := testSession("")
	assert.Nil(t, env.SetVar("FOO", "existing"))

	assert.Equal(t, 0, runExport(t, env, "FOO"))

	v, _ := env.LookupVar("FOO")
	assert.Equal(t, "existing", v.Value)
	assert.True(t, v.Exported)
}

func TestExport_UnsetName(t *testing.T) {
	env, _, _ := testSession("")

	// Exporting a name with no value is legal; the flag survives until an
	// assignment gives it a value.
	assert.Equal(t, 0, runExport(t, env, "PENDING"))
	assert.Empty(t, env.Environ())

	assert.Nil(t, env.SetVar("PENDING", "now"))
	assert.Equal(t, []string{"PENDING=now"}, env.Environ())
}

func TestExport_EmptyValue(t *testing.T) {
	env, _, _ := testSession("")

	assert.Equal(t, 0, runExport(t, env, "EMPTY="))
	assert.Equal(t, []string{"EMPTY="}, env.Environ())
}

func TestExport_List(t *testing.T) {
	g := goldie.New(t,
		goldie.WithFixtureDir(filepath.Join("testdata", "golden")),
		goldie.WithTestNameForDir(true),
	)

	env, stdout, _ := testSession("")
	assert.Equal(t, 0, runExport(t, env, "B=second", "A=first"))
	assert.Equal(t, 0, runExport(t, env, "PENDING"))

	// Unexported variables stay out of the listing.
	assert.Nil(t, env.SetVar("PRIVATE", "hidden"))

	assert.Equal(t, 0, runExport(t, env, "-p"))
	g.Assert(t, "list", stdout.Bytes())
}
