package testfixtures

import (
	"fmt"
	"math/rand"

	"socialblock.io/explorer/internal/core/plugin"
)

// DescriptorBuilder provides a builder pattern for creating test descriptors
type DescriptorBuilder struct {
	descriptor plugin.Descriptor
}

// NewDescriptorBuilder creates a new DescriptorBuilder with sensible defaults
func NewDescriptorBuilder(id string) *DescriptorBuilder {
	return &DescriptorBuilder{
		descriptor: plugin.Descriptor{
			ID:          id,
			Name:        id,
			Description: "test plugin " + id,
			Category:    plugin.CategoryMonitoring,
			Type:        plugin.TypeDrawer,
			Size:        plugin.SizeMedium,
			Enabled:     true,
		},
	}
}

// WithName sets the display name
func (b *DescriptorBuilder) WithName(name string) *DescriptorBuilder {
	b.descriptor.Name = name
	return b
}

// WithDescription sets the description
func (b *DescriptorBuilder) WithDescription(description string) *DescriptorBuilder {
	b.descriptor.Description = description
	return b
}

// WithCategory sets the category
func (b *DescriptorBuilder) WithCategory(category plugin.Category) *DescriptorBuilder {
	b.descriptor.Category = category
	return b
}

// WithType sets the mount type
func (b *DescriptorBuilder) WithType(t plugin.Type) *DescriptorBuilder {
	b.descriptor.Type = t
	return b
}

// WithSize sets the size hint
func (b *DescriptorBuilder) WithSize(size plugin.Size) *DescriptorBuilder {
	b.descriptor.Size = size
	return b
}

// Enabled marks the descriptor enabled
func (b *DescriptorBuilder) Enabled() *DescriptorBuilder {
	b.descriptor.Enabled = true
	return b
}

// Disabled marks the descriptor disabled
func (b *DescriptorBuilder) Disabled() *DescriptorBuilder {
	b.descriptor.Enabled = false
	return b
}

// AtPosition sets the declared position
func (b *DescriptorBuilder) AtPosition(position int) *DescriptorBuilder {
	b.descriptor.Position = position
	return b
}

// Build returns the descriptor
func (b *DescriptorBuilder) Build() plugin.Descriptor {
	return b.descriptor
}

// RegistryOf builds a registry from descriptors in the order given,
// overriding positions with their index
func RegistryOf(descs ...plugin.Descriptor) plugin.Registry {
	for i := range descs {
		descs[i].Position = i
	}
	return plugin.MustNewRegistry(descs)
}

// ScenarioRegistry returns A(enabled), B(enabled), C(disabled) at positions 0..2
func ScenarioRegistry() plugin.Registry {
	return RegistryOf(
		NewDescriptorBuilder("A").Build(),
		NewDescriptorBuilder("B").Build(),
		NewDescriptorBuilder("C").Disabled().Build(),
	)
}

// RandomRegistry creates a registry of n descriptors with random categories,
// enabled flags and declared positions
func RandomRegistry(rng *rand.Rand, n int) plugin.Registry {
	categories := plugin.Categories()
	descs := make([]plugin.Descriptor, n)
	for i := 0; i < n; i++ {
		id := fmt.Sprintf("plugin-%d", i)
		b := NewDescriptorBuilder(id).
			WithCategory(categories[rng.Intn(len(categories))]).
			AtPosition(rng.Intn(n * 2))
		if rng.Intn(3) == 0 {
			b.Disabled()
		}
		descs[i] = b.Build()
	}
	return plugin.MustNewRegistry(descs)
}

// AssertPositionPermutation returns an error unless positions are exactly 0..N-1
func AssertPositionPermutation(reg plugin.Registry) error {
	seen := make(map[int]bool, reg.Len())
	for _, d := range reg.Descriptors() {
		if d.Position < 0 || d.Position >= reg.Len() {
			return fmt.Errorf("position %d of %s out of range [0,%d)", d.Position, d.ID, reg.Len())
		}
		if seen[d.Position] {
			return fmt.Errorf("duplicate position %d", d.Position)
		}
		seen[d.Position] = true
	}
	return nil
}

// IDs returns the descriptor ids in order
func IDs(descs []plugin.Descriptor) []string {
	ids := make([]string, len(descs))
	for i, d := range descs {
		ids[i] = d.ID
	}
	return ids
}
