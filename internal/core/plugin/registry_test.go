package plugin

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testDescriptor(id string, position int, enabled bool) Descriptor {
	return Descriptor{
		ID:       id,
		Name:     "Plugin " + id,
		Category: CategoryMonitoring,
		Type:     TypeDrawer,
		Size:     SizeMedium,
		Enabled:  enabled,
		Position: position,
	}
}

// TestNewRegistry_Seed_NormalizesPositions tests seeds with gaps and ties
func TestNewRegistry_Seed_NormalizesPositions(t *testing.T) {
	reg, err := NewRegistry([]Descriptor{
		testDescriptor("c", 10, true),
		testDescriptor("a", 2, true),
		testDescriptor("b", 2, false),
	})
	require.NoError(t, err)

	descs := reg.Descriptors()
	require.Len(t, descs, 3)
	assert.Equal(t, "a", descs[0].ID, "Lowest position should come first")
	assert.Equal(t, "b", descs[1].ID, "Ties should keep seed order")
	assert.Equal(t, "c", descs[2].ID)
	for i, d := range descs {
		assert.Equal(t, i, d.Position, "Positions should be renumbered 0..N-1")
	}
}

// TestNewRegistry_Seed_CanonicalisesEnums tests mixed-case manifest values
func TestNewRegistry_Seed_CanonicalisesEnums(t *testing.T) {
	d := testDescriptor("a", 0, true)
	d.Category = "DeFi"
	d.Type = " Overlay"
	d.Size = "LG"

	reg, err := NewRegistry([]Descriptor{d})
	require.NoError(t, err)

	got, ok := reg.Find("a")
	require.True(t, ok)
	assert.Equal(t, CategoryDeFi, got.Category)
	assert.Equal(t, TypeOverlay, got.Type)
	assert.Equal(t, SizeLarge, got.Size)
	assert.Equal(t, 1, reg.Stats().EnabledByCategory[CategoryDeFi])
}

// TestNewRegistry_InvalidSeed_ShouldFail tests seed validation
func TestNewRegistry_InvalidSeed_ShouldFail(t *testing.T) {
	tests := []struct {
		name string
		seed []Descriptor
		is   error
	}{
		{
			name: "EmptyID_ShouldFail",
			seed: []Descriptor{testDescriptor("", 0, true)},
			is:   ErrEmptyPluginID,
		},
		{
			name: "DuplicateID_ShouldFail",
			seed: []Descriptor{testDescriptor("a", 0, true), testDescriptor("a", 1, true)},
			is:   ErrDuplicatePluginID,
		},
		{
			name: "BadCategory_ShouldFail",
			seed: []Descriptor{func() Descriptor {
				d := testDescriptor("a", 0, true)
				d.Category = "payments"
				return d
			}()},
		},
		{
			name: "NegativePosition_ShouldFail",
			seed: []Descriptor{testDescriptor("a", -1, true)},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewRegistry(tt.seed)
			require.Error(t, err)
			if tt.is != nil {
				assert.True(t, errors.Is(err, tt.is), "expected %v, got %v", tt.is, err)
			}
		})
	}
}

// TestRegistry_WithEnabled_DoesNotMutateReceiver tests snapshot immutability
func TestRegistry_WithEnabled_DoesNotMutateReceiver(t *testing.T) {
	reg := DefaultRegistry()

	next, err := reg.WithEnabled(IDAirdropClaimMap, true)
	require.NoError(t, err)

	assert.False(t, reg.IsEnabled(IDAirdropClaimMap), "Original snapshot should be unchanged")
	assert.True(t, next.IsEnabled(IDAirdropClaimMap))

	_, err = reg.WithEnabled("missing", true)
	assert.ErrorIs(t, err, ErrUnknownPluginID)
}

// TestRegistry_Stats_CountsEnabledPerCategory tests header counters
func TestRegistry_Stats_CountsEnabledPerCategory(t *testing.T) {
	stats := DefaultRegistry().Stats()

	assert.Equal(t, 4, stats.Total)
	assert.Equal(t, 3, stats.Enabled)
	assert.Equal(t, 2, stats.EnabledByCategory[CategoryMonitoring])
	assert.Equal(t, 1, stats.EnabledByCategory[CategoryIdentity])
	assert.Equal(t, 0, stats.EnabledByCategory[CategoryDeFi])
	assert.Equal(t, 0, stats.EnabledByCategory[CategoryGovernance])
}

// TestRegistry_Lookups tests Find, IndexOf and Enabled
func TestRegistry_Lookups(t *testing.T) {
	reg := DefaultRegistry()

	d, ok := reg.Find(IDZkIDRegistry)
	require.True(t, ok)
	assert.Equal(t, "zkID Registry", d.Name)
	assert.Equal(t, 1, reg.IndexOf(IDZkIDRegistry))
	assert.Equal(t, -1, reg.IndexOf("nope"))

	var rail []string
	for _, d := range reg.Enabled() {
		rail = append(rail, d.ID)
	}
	assert.Equal(t, []string{IDAIWatchLogs, IDZkIDRegistry, IDValidatorTracker}, rail)
}

// TestParseEnums tests enum parsing and labels
func TestParseEnums(t *testing.T) {
	c, err := ParseCategory(" DEFI ")
	require.NoError(t, err)
	assert.Equal(t, CategoryDeFi, c)
	assert.Equal(t, "DeFi", c.Label())

	_, err = ParseType("modal")
	assert.Error(t, err)

	s, err := ParseSize("lg")
	require.NoError(t, err)
	assert.Equal(t, SizeLarge, s)

	assert.Equal(t, "x", Descriptor{ID: "x"}.DisplayName())
}
