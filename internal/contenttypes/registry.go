package contenttypes

import (
	"embed"
	"fmt"
	"sync"

	"gopkg.in/yaml.v3"
)

//go:embed config/content_types.yaml
var configFiles embed.FS

// ContentType describes one accepted document content type
type ContentType struct {
	ID          string `yaml:"id"`
	DisplayName string `yaml:"display_name"`
	MimeType    string `yaml:"mime_type"`
}

type registryFile struct {
	Default string        `yaml:"default"`
	Types   []ContentType `yaml:"types"`
}

// Registry holds the set of content types documents may carry
type Registry struct {
	types       map[string]ContentType
	ordered     []ContentType
	defaultType string
	mu          sync.RWMutex
}

// NewRegistry creates a new registry and loads the embedded YAML file
func NewRegistry() (*Registry, error) {
	data, err := configFiles.ReadFile("config/content_types.yaml")
	if err != nil {
		return nil, fmt.Errorf("read content type config: %w", err)
	}

	var file registryFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("unmarshal content type config: %w", err)
	}

	if len(file.Types) == 0 {
		return nil, fmt.Errorf("content type config lists no types")
	}

	r := &Registry{
		types:       make(map[string]ContentType, len(file.Types)),
		ordered:     file.Types,
		defaultType: file.Default,
	}
	for _, ct := range file.Types {
		r.types[ct.ID] = ct
	}

	if _, ok := r.types[r.defaultType]; !ok {
		return nil, fmt.Errorf("default content type %q not in type list", r.defaultType)
	}

	return r, nil
}

// IsAllowed reports whether a content type ID is accepted
func (r *Registry) IsAllowed(id string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, ok := r.types[id]
	return ok
}

// Default returns the content type assigned when a request omits one
func (r *Registry) Default() string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.defaultType
}

// List returns all accepted content types (ordered as defined in the YAML)
func (r *Registry) List() []ContentType {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]ContentType, len(r.ordered))
	copy(out, r.ordered)
	return out
}
