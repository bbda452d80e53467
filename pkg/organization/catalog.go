package organization

import (
	"fmt"
	"os"
	"sort"

	"gopkg.in/yaml.v3"
)

// Catalog is the static, read-only set of preset organizations keyed by
// catalog key. It is loaded once at process start and never mutated, so it
// needs no locking.
type Catalog struct {
	byKey map[string]Organization
}

// LoadCatalog reads a YAML catalog file mapping keys to organization
// records.
func LoadCatalog(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog file: %w", err)
	}
	return ParseCatalog(data)
}

// ParseCatalog builds a Catalog from YAML bytes.
func ParseCatalog(data []byte) (*Catalog, error) {
	byKey := map[string]Organization{}
	if err := yaml.Unmarshal(data, &byKey); err != nil {
		return nil, fmt.Errorf("parse catalog: %w", err)
	}

	for key, org := range byKey {
		if org.ID == 0 || org.Name == "" {
			return nil, fmt.Errorf("catalog entry %q: id and name are required", key)
		}
		if org.Domain == "" {
			org.Domain = DefaultDomain
			byKey[key] = org
		}
	}

	return &Catalog{byKey: byKey}, nil
}

// Lookup returns the organization for a catalog key.
func (c *Catalog) Lookup(key string) (Organization, error) {
	org, ok := c.byKey[key]
	if !ok {
		return Organization{}, fmt.Errorf("%w: %q", ErrUnknownOrganization, key)
	}
	return org, nil
}

// Keys returns all catalog keys sorted by organization name.
func (c *Catalog) Keys() []string {
	keys := make([]string, 0, len(c.byKey))
	for k := range c.byKey {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		return c.byKey[keys[i]].Name < c.byKey[keys[j]].Name
	})
	return keys
}

// List returns all organizations sorted by name.
func (c *Catalog) List() []Organization {
	orgs := make([]Organization, 0, len(c.byKey))
	for _, org := range c.byKey {
		orgs = append(orgs, org)
	}
	sort.Slice(orgs, func(i, j int) bool { return orgs[i].Name < orgs[j].Name })
	return orgs
}

// Len reports the number of catalog entries.
func (c *Catalog) Len() int { return len(c.byKey) }
