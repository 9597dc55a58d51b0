package upgrade

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vvka-141/pumlicons/pkg/pumlicons"
)

func TestNewEngine_BuiltInTableIsConsistent(t *testing.T) {
	e, err := NewEngine()
	require.NoError(t, err)

	assert.Equal(t, SupportedVersions, e.Versions())
	assert.Equal(t, "v19.0", e.Latest())
	assert.Equal(t, LatestVersion(), e.Latest())
}

func TestEngine_VersionsFrom(t *testing.T) {
	e := MustNewEngine()

	versions, err := e.VersionsFrom("v18.0")
	require.NoError(t, err)
	assert.Equal(t, []string{"v18.0", "v19.0"}, versions)

	versions, err = e.VersionsFrom("v13.0")
	require.NoError(t, err)
	assert.Len(t, versions, len(SupportedVersions))

	_, err = e.VersionsFrom("v20.0")
	assert.True(t, errors.Is(err, pumlicons.ErrUnsupportedVersion))
}

func TestEngine_ChangesAreNormalized(t *testing.T) {
	e := MustNewEngine()

	c, ok := e.Changes("v13.1", "GroupIcons")
	require.True(t, ok)
	assert.Equal(t, RenameTo, c.Renamed.Kind)
	assert.Equal(t, "Groups", c.Renamed.To)
	assert.NotNil(t, c.Moved)
	assert.NotNil(t, c.Replaced)
	assert.NotNil(t, c.Removed)

	c, ok = e.Changes("v16.0", "VRAR")
	require.True(t, ok)
	assert.Equal(t, RenameRemoved, c.Renamed.Kind)

	_, ok = e.Changes("v18.0", "Compute")
	assert.False(t, ok)
}

func TestNewEngineFrom_Validation(t *testing.T) {
	tests := []struct {
		name     string
		versions []string
		changes  map[string]ReleaseChanges
	}{
		{"no versions", nil, nil},
		{"version without entry", []string{"v1", "v2"}, map[string]ReleaseChanges{"v1": {}}},
		{"entry without version", []string{"v1"}, map[string]ReleaseChanges{"v1": {}, "v9": {}}},
		{"duplicate version", []string{"v1", "v1"}, map[string]ReleaseChanges{"v1": {}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewEngineFrom(tt.versions, tt.changes, nil)
			require.Error(t, err)
			assert.True(t, errors.Is(err, pumlicons.ErrInvalidConfig))
		})
	}
}

func TestFlattenRelease_ReplacementWinsOverRemoval(t *testing.T) {
	flat := flattenRelease(ReleaseChanges{
		"A": {Removed: iconSet("X")},
		"B": {Replaced: map[string]string{"X": "Y"}},
	})
	assert.Equal(t, iconChange{to: "Y"}, flat["X"])
}

func TestAlternation_LongestFirst(t *testing.T) {
	assert.Equal(t, "WorkSpacesWeb|WorkSpaces|A\\.B", alternation([]string{"WorkSpaces", "A.B", "WorkSpacesWeb"}))
}
