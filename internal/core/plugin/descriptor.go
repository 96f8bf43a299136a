package plugin

import (
	"fmt"
	"strings"
)

// Category groups plugins in the panel's category tabs
type Category string

const (
	CategoryMonitoring Category = "monitoring"
	CategoryIdentity   Category = "identity"
	CategoryDeFi       Category = "defi"
	CategoryGovernance Category = "governance"
)

// Categories returns every category in tab order
func Categories() []Category {
	return []Category{CategoryMonitoring, CategoryIdentity, CategoryDeFi, CategoryGovernance}
}

// ParseCategory creates a Category with validation
func ParseCategory(value string) (Category, error) {
	switch c := Category(strings.ToLower(strings.TrimSpace(value))); c {
	case CategoryMonitoring, CategoryIdentity, CategoryDeFi, CategoryGovernance:
		return c, nil
	default:
		return "", ErrInvalidField("category", value)
	}
}

// Label returns the display label of the category
func (c Category) Label() string {
	switch c {
	case CategoryMonitoring:
		return "Monitoring"
	case CategoryIdentity:
		return "Identity"
	case CategoryDeFi:
		return "DeFi"
	case CategoryGovernance:
		return "Governance"
	default:
		return string(c)
	}
}

// String implements the Stringer interface
func (c Category) String() string {
	return string(c)
}

// Type tells the host shell how a plugin prefers to be mounted.
// The registry carries it as metadata and never branches on it.
type Type string

const (
	TypeOverlay Type = "overlay"
	TypeDrawer  Type = "drawer"
	TypeSubtab  Type = "subtab"
)

// ParseType creates a Type with validation
func ParseType(value string) (Type, error) {
	switch t := Type(strings.ToLower(strings.TrimSpace(value))); t {
	case TypeOverlay, TypeDrawer, TypeSubtab:
		return t, nil
	default:
		return "", ErrInvalidField("type", value)
	}
}

// String implements the Stringer interface
func (t Type) String() string {
	return string(t)
}

// Size is a cosmetic weight hint
type Size string

const (
	SizeSmall  Size = "sm"
	SizeMedium Size = "md"
	SizeLarge  Size = "lg"
)

// ParseSize creates a Size with validation
func ParseSize(value string) (Size, error) {
	switch s := Size(strings.ToLower(strings.TrimSpace(value))); s {
	case SizeSmall, SizeMedium, SizeLarge:
		return s, nil
	default:
		return "", ErrInvalidField("size", value)
	}
}

// String implements the Stringer interface
func (s Size) String() string {
	return string(s)
}

// Descriptor is the metadata record of one registrable plugin
type Descriptor struct {
	ID          string   `json:"id" yaml:"id"`
	Name        string   `json:"name" yaml:"name"`
	Description string   `json:"description" yaml:"description"`
	Category    Category `json:"category" yaml:"category"`
	Type        Type     `json:"type" yaml:"type"`
	Size        Size     `json:"size" yaml:"size"`
	Enabled     bool     `json:"enabled" yaml:"enabled"`
	Position    int      `json:"position" yaml:"position"`
}

// Validate checks the descriptor's identity and enum fields
func (d Descriptor) Validate() error {
	if strings.TrimSpace(d.ID) == "" {
		return ErrEmptyPluginID
	}
	if _, err := ParseCategory(string(d.Category)); err != nil {
		return fmt.Errorf("plugin %s: %w", d.ID, err)
	}
	if _, err := ParseType(string(d.Type)); err != nil {
		return fmt.Errorf("plugin %s: %w", d.ID, err)
	}
	if _, err := ParseSize(string(d.Size)); err != nil {
		return fmt.Errorf("plugin %s: %w", d.ID, err)
	}
	if d.Position < 0 {
		return fmt.Errorf("plugin %s: %w", d.ID, ErrInvalidField("position", fmt.Sprint(d.Position)))
	}
	return nil
}

// normalized returns d with its enum fields in canonical lower-case form.
// d must have passed Validate.
func (d Descriptor) normalized() Descriptor {
	d.Category, _ = ParseCategory(string(d.Category))
	d.Type, _ = ParseType(string(d.Type))
	d.Size, _ = ParseSize(string(d.Size))
	return d
}

// DisplayName returns the name, falling back to the id
func (d Descriptor) DisplayName() string {
	if d.Name != "" {
		return d.Name
	}
	return d.ID
}
