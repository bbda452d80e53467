// Package document renders the supporting document submitted with a
// verification: a student-portal style PNG card.
package document

// CardData carries the fields printed on the rendered card.
type CardData struct {
	FirstName  string
	LastName   string
	SchoolName string
	SchoolID   string
}

// Renderer turns card data into an image payload. The verification engine
// treats the result as an opaque blob; only its length matters to the
// protocol.
type Renderer interface {
	Render(data CardData) ([]byte, error)
}
