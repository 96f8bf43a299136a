package filtering

import (
	"fmt"
	"sort"
	"strings"

	"socialblock.io/explorer/internal/core/plugin"
)

// CategoryAll is the sentinel category that bypasses category filtering
const CategoryAll = "all"

// PluginFilter decides whether a descriptor is visible in the plugin list
type PluginFilter interface {
	ShouldShow(d plugin.Descriptor) bool
	GetFilterReason(d plugin.Descriptor) string
}

// Criteria is the user's current category tab and search text
type Criteria struct {
	Category string `json:"category"`
	Query    string `json:"query"`
}

// DefaultCriteria shows every plugin
func DefaultCriteria() Criteria {
	return Criteria{Category: CategoryAll}
}

// ParseCriteria creates Criteria with validation of the category token
func ParseCriteria(category, query string) (Criteria, error) {
	category = strings.ToLower(strings.TrimSpace(category))
	if category == "" {
		category = CategoryAll
	}
	if category != CategoryAll {
		if _, err := plugin.ParseCategory(category); err != nil {
			return Criteria{}, err
		}
	}
	return Criteria{Category: category, Query: strings.TrimSpace(query)}, nil
}

// IsUnfiltered reports whether the criteria let every descriptor through
func (c Criteria) IsUnfiltered() bool {
	return (c.Category == "" || c.Category == CategoryAll) && c.Query == ""
}

// CategoryTabs returns the category tabs in display order, "all" first
func CategoryTabs() []string {
	tabs := []string{CategoryAll}
	for _, c := range plugin.Categories() {
		tabs = append(tabs, string(c))
	}
	return tabs
}

// NextCategory cycles to the tab after current (wrapping around)
func NextCategory(current string) string {
	tabs := CategoryTabs()
	for i, t := range tabs {
		if t == current {
			return tabs[(i+1)%len(tabs)]
		}
	}
	return CategoryAll
}

// CategoryFilter keeps descriptors of a single category
type CategoryFilter struct {
	category string
}

// NewCategoryFilter creates a category filter; "all" or "" matches everything
func NewCategoryFilter(category string) *CategoryFilter {
	return &CategoryFilter{category: category}
}

// ShouldShow determines if a descriptor belongs to the selected category
func (f *CategoryFilter) ShouldShow(d plugin.Descriptor) bool {
	if f.category == "" || f.category == CategoryAll {
		return true
	}
	return string(d.Category) == f.category
}

// GetFilterReason returns the reason for filtering
func (f *CategoryFilter) GetFilterReason(d plugin.Descriptor) string {
	if f.ShouldShow(d) {
		return ""
	}
	return fmt.Sprintf("category %s is not %s", d.Category, f.category)
}

// QueryFilter matches search text against name and description
type QueryFilter struct {
	needle string
}

// NewQueryFilter creates a case-insensitive substring filter
func NewQueryFilter(query string) *QueryFilter {
	return &QueryFilter{needle: strings.ToLower(query)}
}

// ShouldShow determines if the name or description contains the query
func (f *QueryFilter) ShouldShow(d plugin.Descriptor) bool {
	if f.needle == "" {
		return true
	}
	return strings.Contains(strings.ToLower(d.Name), f.needle) ||
		strings.Contains(strings.ToLower(d.Description), f.needle)
}

// GetFilterReason returns the reason for filtering
func (f *QueryFilter) GetFilterReason(d plugin.Descriptor) string {
	if f.ShouldShow(d) {
		return ""
	}
	return fmt.Sprintf("%q not found in name or description", f.needle)
}

// CompositeFilter requires every sub-filter to pass
type CompositeFilter struct {
	filters []PluginFilter
}

// NewCompositeFilter creates the filter chain for the given criteria
func NewCompositeFilter(c Criteria) *CompositeFilter {
	return &CompositeFilter{
		filters: []PluginFilter{
			NewCategoryFilter(c.Category),
			NewQueryFilter(c.Query),
		},
	}
}

// ShouldShow determines if a descriptor passes all filters
func (f *CompositeFilter) ShouldShow(d plugin.Descriptor) bool {
	for _, sub := range f.filters {
		if !sub.ShouldShow(d) {
			return false
		}
	}
	return true
}

// GetFilterReason returns the first failing filter's reason (for debugging)
func (f *CompositeFilter) GetFilterReason(d plugin.Descriptor) string {
	for _, sub := range f.filters {
		if reason := sub.GetFilterReason(d); reason != "" {
			return reason
		}
	}
	return "descriptor passed all filters"
}

// VisiblePlugins returns the descriptors passing the category and query
// filters, in ascending position order. It has no side effects.
func VisiblePlugins(descs []plugin.Descriptor, category, query string) []plugin.Descriptor {
	return Apply(descs, Criteria{Category: category, Query: query})
}

// Apply is VisiblePlugins taking Criteria
func Apply(descs []plugin.Descriptor, c Criteria) []plugin.Descriptor {
	filter := NewCompositeFilter(c)
	visible := make([]plugin.Descriptor, 0, len(descs))
	for _, d := range descs {
		if filter.ShouldShow(d) {
			visible = append(visible, d)
		}
	}
	sort.SliceStable(visible, func(i, j int) bool {
		return visible[i].Position < visible[j].Position
	})
	return visible
}

// Visible applies criteria to a registry snapshot
func Visible(reg plugin.Registry, c Criteria) []plugin.Descriptor {
	return Apply(reg.Descriptors(), c)
}
