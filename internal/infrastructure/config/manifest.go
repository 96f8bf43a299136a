package configinfra

import (
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"socialblock.io/explorer/internal/core/plugin"
)

// RegistryManifest is the on-disk seed for the plugin registry
type RegistryManifest struct {
	Plugins []plugin.Descriptor `yaml:"plugins"`
}

// DecodeRegistryManifest parses a YAML manifest and builds a registry from it
func DecodeRegistryManifest(r io.Reader) (plugin.Registry, error) {
	var manifest RegistryManifest
	decoder := yaml.NewDecoder(r)
	decoder.KnownFields(true)
	if err := decoder.Decode(&manifest); err != nil {
		return plugin.Registry{}, fmt.Errorf("failed to decode registry manifest: %w", err)
	}

	reg, err := plugin.NewRegistry(manifest.Plugins)
	if err != nil {
		return plugin.Registry{}, fmt.Errorf("invalid registry manifest: %w", err)
	}
	return reg, nil
}

// LoadRegistry reads the seed manifest at path, or returns the stock
// registry when path is empty
func LoadRegistry(path string) (plugin.Registry, error) {
	if path == "" {
		return plugin.DefaultRegistry(), nil
	}

	file, err := os.Open(path)
	if err != nil {
		return plugin.Registry{}, fmt.Errorf("failed to open registry manifest: %w", err)
	}
	defer file.Close()

	return DecodeRegistryManifest(file)
}

// EncodeRegistryManifest writes reg as a YAML manifest
func EncodeRegistryManifest(w io.Writer, reg plugin.Registry) error {
	encoder := yaml.NewEncoder(w)
	encoder.SetIndent(2)
	if err := encoder.Encode(RegistryManifest{Plugins: reg.Descriptors()}); err != nil {
		return fmt.Errorf("failed to encode registry manifest: %w", err)
	}
	return encoder.Close()
}
