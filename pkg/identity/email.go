package identity

import (
	"math/rand/v2"
	"strings"
)

const (
	emailLocalPartChars  = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	emailLocalPartLength = 8
)

// SchoolEmail derives a student email for the given school domain: an
// 8-character uppercase alphanumeric local part followed by the domain in
// uppercase, e.g. "A2B4C6D8@MIT.EDU".
//
// There is no collision avoidance; two runs may coincidentally produce the
// same address.
func SchoolEmail(domain string) string {
	var b strings.Builder
	b.Grow(emailLocalPartLength + 1 + len(domain))
	for i := 0; i < emailLocalPartLength; i++ {
		b.WriteByte(emailLocalPartChars[rand.IntN(len(emailLocalPartChars))])
	}
	b.WriteByte('@')
	b.WriteString(strings.ToUpper(domain))
	return b.String()
}
