// Package ordering applies drag-and-drop moves to the plugin registry.
//
// Moves are expressed in indices of the list the user is looking at, which may
// be filtered. They are mapped back onto the full position-ordered registry so
// a move made under a category or search filter still yields one globally
// consistent ordering.
package ordering

import (
	"socialblock.io/explorer/internal/core/filtering"
	"socialblock.io/explorer/internal/core/plugin"
)

// Reorder moves the descriptor at sourceIndex of the visible list to
// destIndex and renumbers all positions 0..N-1.
// Out-of-range indices return plugin.ErrInvalidIndex and the unchanged registry.
func Reorder(reg plugin.Registry, criteria filtering.Criteria, sourceIndex, destIndex int) (plugin.Registry, error) {
	visible := filtering.Visible(reg, criteria)
	if sourceIndex < 0 || sourceIndex >= len(visible) {
		return reg, plugin.ErrIndexOutOfRange(sourceIndex, len(visible))
	}
	if destIndex < 0 || destIndex >= len(visible) {
		return reg, plugin.ErrIndexOutOfRange(destIndex, len(visible))
	}
	if sourceIndex == destIndex {
		return reg, nil
	}

	// The registry is position-ordered, so IndexOf is the absolute slot.
	from := reg.IndexOf(visible[sourceIndex].ID)
	to := reg.IndexOf(visible[destIndex].ID)

	return plugin.FromOrdered(splice(reg.Descriptors(), from, to)), nil
}

// ReorderAll is Reorder over the unfiltered list
func ReorderAll(reg plugin.Registry, sourceIndex, destIndex int) (plugin.Registry, error) {
	return Reorder(reg, filtering.DefaultCriteria(), sourceIndex, destIndex)
}

// Move shifts the descriptor id by delta slots in the unfiltered order,
// clamped to the list bounds. It is the keyboard counterpart of a drag.
func Move(reg plugin.Registry, id string, delta int) (plugin.Registry, error) {
	from := reg.IndexOf(id)
	if from < 0 {
		return reg, plugin.ErrUnknown(id)
	}
	to := from + delta
	if to < 0 {
		to = 0
	}
	if to >= reg.Len() {
		to = reg.Len() - 1
	}
	return ReorderAll(reg, from, to)
}

// splice removes descs[from] and reinserts it at index to
func splice(descs []plugin.Descriptor, from, to int) []plugin.Descriptor {
	moved := descs[from]
	out := make([]plugin.Descriptor, 0, len(descs))
	out = append(out, descs[:from]...)
	out = append(out, descs[from+1:]...)

	out = append(out, plugin.Descriptor{})
	copy(out[to+1:], out[to:])
	out[to] = moved
	return out
}
