// Package verification defines the request and outcome types for a
// student verification run.
package verification

import (
	"encoding/json"
	"time"

	"github.com/edverify/sheerid-verifier/pkg/organization"
)

// PendingMessage is reported when the document has been submitted and the
// review decision is outstanding.
const PendingMessage = "Document submitted, waiting for review"

// Identity carries the personal fields submitted for verification. Empty
// fields are filled by the service from its identity generator.
type Identity struct {
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
	BirthDate time.Time `json:"-"`
	Email     string    `json:"email,omitempty"`
}

// OrganizationInput selects the school to verify against. Exactly one of
// the three forms should be used: a catalog key, a search result carried
// over from the organization search endpoint, or explicit fields.
type OrganizationInput struct {
	CatalogKey string `json:"catalog_key,omitempty"`

	FromSearch bool   `json:"from_search,omitempty"`
	ID         int64  `json:"id,omitempty"`
	IDExtended string `json:"id_extended,omitempty"`
	Name       string `json:"name,omitempty"`
	Domain     string `json:"domain,omitempty"`
}

// Descriptor converts the wire form into an organization descriptor.
func (o OrganizationInput) Descriptor() organization.Descriptor {
	switch {
	case o.CatalogKey != "":
		return organization.FromCatalog(o.CatalogKey)
	case o.FromSearch:
		return organization.FromSearch(organization.SearchResult{
			ID:     o.ID,
			Name:   o.Name,
			Domain: o.Domain,
		})
	case o.ID != 0 || o.Name != "":
		return organization.FromExplicit(organization.Organization{
			ID:         o.ID,
			IDExtended: o.IDExtended,
			Name:       o.Name,
			Domain:     o.Domain,
		})
	default:
		return organization.Descriptor{}
	}
}

// Request describes one verification run.
type Request struct {
	VerificationID string            `json:"verification_id" validate:"required"`
	Organization   OrganizationInput `json:"organization"`
	FirstName      string            `json:"first_name,omitempty"`
	LastName       string            `json:"last_name,omitempty"`
	Email          string            `json:"email,omitempty" validate:"omitempty,email"`
	BirthDate      string            `json:"birth_date,omitempty" validate:"omitempty,datetime=2006-01-02"`
}

// StudentInfo echoes the identity that was submitted, so a caller can
// correlate the run with whatever the review decides.
type StudentInfo struct {
	FirstName  string `json:"first_name"`
	LastName   string `json:"last_name"`
	BirthDate  string `json:"birth_date"`
	Email      string `json:"email"`
	SchoolName string `json:"school_name"`
}

// Outcome is the terminal state of a verification run. Success reports
// an immediate approval, Pending a submitted document awaiting review.
// Neither being set means the run failed and Message says why.
type Outcome struct {
	Success        bool            `json:"success"`
	Pending        bool            `json:"pending"`
	Message        string          `json:"message"`
	VerificationID string          `json:"verification_id"`
	RedirectURL    string          `json:"redirect_url,omitempty"`
	Status         json.RawMessage `json:"status,omitempty"`
	StudentInfo    *StudentInfo    `json:"student_info,omitempty"`
}
