// Package organization models the educational institution used to establish
// a student's affiliation claim, including the three ways callers may
// designate one: a catalog key, a search result, or explicit fields.
package organization

import (
	"errors"
	"fmt"
	"strconv"
)

// DefaultDomain is assumed when a search result carries no email domain.
const DefaultDomain = "university.edu"

// ErrMissingOrganization is returned when a verification run is started
// without any organization designation. The organization is a required
// input; it is never defaulted.
var ErrMissingOrganization = errors.New("organization is required")

// ErrUnknownOrganization is returned for a catalog key with no entry.
var ErrUnknownOrganization = errors.New("unknown organization catalog key")

// Organization is the canonical institution record. Note that ID is numeric
// while IDExtended is a string identifier that is not necessarily the same
// value.
type Organization struct {
	ID         int64  `json:"id" yaml:"id"`
	IDExtended string `json:"idExtended" yaml:"id_extended"`
	Name       string `json:"name" yaml:"name"`
	Domain     string `json:"domain" yaml:"domain"`
	City       string `json:"city,omitempty" yaml:"city,omitempty"`
	State      string `json:"state,omitempty" yaml:"state,omitempty"`
}

type source int

const (
	sourceNone source = iota
	sourceCatalog
	sourceSearch
	sourceExplicit
)

// Descriptor designates an organization through exactly one of three
// sources. The zero Descriptor designates nothing and fails resolution.
type Descriptor struct {
	src        source
	catalogKey string
	org        Organization
}

// FromCatalog designates a catalog entry by key.
func FromCatalog(key string) Descriptor {
	return Descriptor{src: sourceCatalog, catalogKey: key}
}

// FromSearch designates an organization found through the remote search.
// The extended id becomes the string form of the numeric id, and the domain
// falls back to DefaultDomain when the result carried none.
func FromSearch(r SearchResult) Descriptor {
	domain := r.Domain
	if domain == "" {
		domain = DefaultDomain
	}
	return Descriptor{src: sourceSearch, org: Organization{
		ID:         r.ID,
		IDExtended: strconv.FormatInt(r.ID, 10),
		Name:       r.Name,
		Domain:     domain,
		City:       r.City,
		State:      r.State,
	}}
}

// FromExplicit designates an organization supplied field-by-field.
func FromExplicit(org Organization) Descriptor {
	if org.Domain == "" {
		org.Domain = DefaultDomain
	}
	return Descriptor{src: sourceExplicit, org: org}
}

// Resolve normalizes the descriptor to one canonical Organization. Catalog
// designations are looked up in cat; the other two sources already carry
// their record.
func (d Descriptor) Resolve(cat *Catalog) (Organization, error) {
	switch d.src {
	case sourceCatalog:
		if cat == nil {
			return Organization{}, fmt.Errorf("resolve catalog key %q: no catalog configured", d.catalogKey)
		}
		return cat.Lookup(d.catalogKey)
	case sourceSearch, sourceExplicit:
		return d.org, nil
	default:
		return Organization{}, ErrMissingOrganization
	}
}
