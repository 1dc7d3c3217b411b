// pkg/dependencies/sequencer_test.go
// TEST TYPE: Unit Tests
// DEPENDENCIES: Scripted confirmer, recording reporter, fake catalog
// PURPOSE: Bucket ordering, confirmation policy and the platform check

package dependencies_test

import (
	"context"
	stderrors "errors"
	"testing"

	"github.com/arthur-debert/gpm/pkg/dependencies"
	"github.com/arthur-debert/gpm/pkg/errors"
	"github.com/arthur-debert/gpm/pkg/testutil"
	"github.com/arthur-debert/gpm/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type call struct {
	slug       string
	skipPrompt bool
}

type recordingProcessor struct {
	calls []call
}

func (p *recordingProcessor) Process(_ context.Context, pkg *types.Package, skipPrompt bool) types.InstallOutcome {
	if pkg == nil {
		p.calls = append(p.calls, call{"<nil>", skipPrompt})
		return types.Failed("", types.StrategyDownload, "package not found")
	}
	p.calls = append(p.calls, call{pkg.Slug, skipPrompt})
	return types.Succeeded(pkg.Slug, types.StrategyDownload)
}

func (p *recordingProcessor) slugs() []string {
	var out []string
	for _, c := range p.calls {
		out = append(out, c.slug)
	}
	return out
}

type harness struct {
	catalog   *testutil.FakeCatalog
	processor *recordingProcessor
	confirmer *testutil.ScriptedConfirmer
	reporter  *testutil.RecordingReporter
	seq       *dependencies.Sequencer
}

func newHarness(answers ...bool) *harness {
	h := &harness{
		catalog: testutil.NewFakeCatalog(
			testutil.PluginPackage("a"),
			testutil.PluginPackage("b"),
			testutil.PluginPackage("c"),
			testutil.PluginPackage("d"),
		),
		processor: &recordingProcessor{},
		confirmer: testutil.NewScriptedConfirmer(answers...),
		reporter:  &testutil.RecordingReporter{},
	}
	h.seq = dependencies.NewSequencer(h.catalog, h.processor, h.confirmer, h.reporter)
	return h
}

var mixed = types.DependencyList{
	{Name: "c", Action: types.ActionIgnore},
	{Name: "a", Action: types.ActionInstall},
	{Name: "d", Action: types.ActionUpdate},
	{Name: "b", Action: types.ActionInstall},
}

func TestRun_BucketsInOrder(t *testing.T) {
	h := newHarness(true, true, true)

	outcomes, err := h.seq.Run(context.Background(), types.Resolution{Dependencies: mixed}, "1.7.0")
	require.NoError(t, err)

	assert.Equal(t, []string{"a", "b", "d", "c"}, h.processor.slugs())
	for _, c := range h.processor.calls {
		assert.True(t, c.skipPrompt, "dependency installs never prompt per item")
	}
	assert.Len(t, outcomes, 4)
	assert.Equal(t, []string{"Install these packages?", "Update this package?", "Update this package?"}, h.confirmer.Questions)
	assert.True(t, h.reporter.Contains("Dependencies are OK"))
	assert.Less(t, h.reporter.Index(dependencies.MessageInstall), h.reporter.Index(dependencies.MessageUpdate))
	assert.Less(t, h.reporter.Index(dependencies.MessageUpdate), h.reporter.Index(dependencies.MessageIgnore))
	assert.True(t, h.reporter.Contains("  |- Package a"))
}

func TestRun_DecliningRequiredBucketAborts(t *testing.T) {
	for _, tc := range []struct {
		name      string
		answers   []bool
		installed []string
	}{
		{"install bucket", []bool{false}, nil},
		{"update bucket", []bool{true, false}, []string{"a", "b"}},
	} {
		t.Run(tc.name, func(t *testing.T) {
			h := newHarness(tc.answers...)

			outcomes, err := h.seq.Run(context.Background(), types.Resolution{Dependencies: mixed}, "1.7.0")

			require.Error(t, err)
			assert.True(t, stderrors.Is(err, dependencies.ErrRequiredDependencyDeclined))
			assert.True(t, errors.IsErrorCode(err, errors.ErrDependencyDeclined))
			assert.Equal(t, tc.installed, h.processor.slugs())
			assert.Len(t, outcomes, len(tc.installed))
			assert.True(t, h.reporter.Contains("Installation aborted"))
			assert.False(t, h.reporter.Contains("Dependencies are OK"))
			assert.False(t, h.reporter.Contains(dependencies.MessageIgnore), "optional bucket never considered")
		})
	}
}

func TestRun_DecliningOptionalBucketSkips(t *testing.T) {
	h := newHarness(true, true, false)

	_, err := h.seq.Run(context.Background(), types.Resolution{Dependencies: mixed}, "1.7.0")
	require.NoError(t, err)

	assert.Equal(t, []string{"a", "b", "d"}, h.processor.slugs())
	assert.True(t, h.reporter.Contains("Dependencies are OK"))
}

func TestRun_NoDependencies(t *testing.T) {
	h := newHarness()

	outcomes, err := h.seq.Run(context.Background(), types.Resolution{}, "1.7.0")
	require.NoError(t, err)
	assert.Nil(t, outcomes)
	assert.Empty(t, h.confirmer.Questions)
	assert.Empty(t, h.reporter.Lines)
}

func TestRun_PlatformTooOldIsFatal(t *testing.T) {
	h := newHarness(true, true, true)
	res := types.Resolution{
		Platform: &types.PlatformRequirement{
			Name:        "grav",
			Constraints: []string{">=1.7.0"},
			MinVersion:  "1.7.0",
		},
		Dependencies: mixed,
	}

	_, err := h.seq.Run(context.Background(), res, "1.6.31")

	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrPlatformVersion))
	assert.Empty(t, h.processor.calls, "no package transaction runs")
	assert.Empty(t, h.confirmer.Questions)
	assert.True(t, h.reporter.Contains("One of the package dependencies requires grav >=1.7.0. Please update grav first"))
}

func TestCheckPlatform(t *testing.T) {
	h := newHarness()
	req := &types.PlatformRequirement{Name: "grav", Constraints: []string{">=1.7.0"}, MinVersion: "1.7.0"}

	assert.NoError(t, h.seq.CheckPlatform(nil, "1.0.0"))
	assert.NoError(t, h.seq.CheckPlatform(req, "1.7.0"))
	assert.NoError(t, h.seq.CheckPlatform(req, "1.8.0"))
	assert.NoError(t, h.seq.CheckPlatform(req, ""), "unknown version skips the check")
	assert.Error(t, h.seq.CheckPlatform(req, "1.6.9"))
	assert.True(t, errors.IsErrorCode(h.seq.CheckPlatform(req, "garbage"), errors.ErrPlatformVersion))
}

func TestInstallDependencies_MissingPackage(t *testing.T) {
	h := newHarness(true)
	deps := types.DependencyList{{Name: "ghost", Action: types.ActionInstall}}

	outcomes, err := h.seq.InstallDependencies(context.Background(), deps, types.ActionInstall, dependencies.MessageInstall, true)
	require.NoError(t, err)

	require.Len(t, outcomes, 1)
	assert.Equal(t, "ghost", outcomes[0].Package)
	assert.Equal(t, types.OutcomeFailed, outcomes[0].Status)
	assert.Equal(t, "Install this package?", h.confirmer.Questions[0])
}

func TestInstallDependencies_EmptyBucketAsksNothing(t *testing.T) {
	h := newHarness()
	deps := types.DependencyList{{Name: "a", Action: types.ActionInstall}}

	outcomes, err := h.seq.InstallDependencies(context.Background(), deps, types.ActionUpdate, dependencies.MessageUpdate, true)
	require.NoError(t, err)
	assert.Nil(t, outcomes)
	assert.Empty(t, h.confirmer.Questions)
}

func TestQuestion(t *testing.T) {
	assert.Equal(t, "Install this package?", dependencies.Question(types.ActionInstall, 1))
	assert.Equal(t, "Install these packages?", dependencies.Question(types.ActionInstall, 3))
	assert.Equal(t, "Update this package?", dependencies.Question(types.ActionUpdate, 1))
	assert.Equal(t, "Update these packages?", dependencies.Question(types.ActionIgnore, 2))
}
