package server

import (
	_ "embed"
	"fmt"
	"os"
	"slices"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/zoe5466/Gudiee-sub001/types"
)

//go:embed catalog.yaml
var defaultCatalog []byte

type catalogFile struct {
	Services []types.Service `yaml:"services"`
}

// Catalog is the in-memory set of bookable services. It is safe for
// concurrent use and can be reloaded from its backing file.
type Catalog struct {
	path string

	mu       sync.RWMutex
	services map[string]types.Service
}

// LoadCatalog reads services from a YAML file. An empty path loads the
// built-in sample catalog.
func LoadCatalog(path string) (*Catalog, error) {
	c := &Catalog{path: path}
	if err := c.Reload(); err != nil {
		return nil, err
	}
	return c, nil
}

// ParseCatalog decodes catalog YAML.
func ParseCatalog(data []byte) (map[string]types.Service, error) {
	var f catalogFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parsing service catalog: %w", err)
	}
	out := make(map[string]types.Service, len(f.Services))
	for i, svc := range f.Services {
		if svc.ID == "" {
			return nil, fmt.Errorf("services[%d]: id is required", i)
		}
		if svc.Price < 0 {
			return nil, fmt.Errorf("services[%d]: price must not be negative", i)
		}
		if _, dup := out[svc.ID]; dup {
			return nil, fmt.Errorf("services[%d]: duplicate id %q", i, svc.ID)
		}
		if svc.Currency == "" {
			svc.Currency = "TWD"
		}
		out[svc.ID] = svc
	}
	return out, nil
}

// Path returns the backing file, empty for the built-in catalog.
func (c *Catalog) Path() string { return c.path }

// Reload re-reads the backing file. On error the previous services stay
// in place.
func (c *Catalog) Reload() error {
	data := defaultCatalog
	if c.path != "" {
		b, err := os.ReadFile(c.path)
		if err != nil {
			return fmt.Errorf("reading service catalog %s: %w", c.path, err)
		}
		data = b
	}
	services, err := ParseCatalog(data)
	if err != nil {
		return err
	}
	c.mu.Lock()
	c.services = services
	c.mu.Unlock()
	return nil
}

// Get returns the service with the given ID.
func (c *Catalog) Get(id string) (types.Service, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	svc, ok := c.services[id]
	return svc, ok
}

// List returns all services ordered by ID.
func (c *Catalog) List() []types.Service {
	c.mu.RLock()
	out := make([]types.Service, 0, len(c.services))
	for _, svc := range c.services {
		out = append(out, svc)
	}
	c.mu.RUnlock()
	slices.SortFunc(out, func(a, b types.Service) int { return strings.Compare(a.ID, b.ID) })
	return out
}
