package identity

import (
	"regexp"
	"strings"
	"testing"
	"time"
)

func TestSchoolEmail_Format(t *testing.T) {
	pattern := regexp.MustCompile(`^[A-Z0-9]{8}@MIT\.EDU$`)

	for i := 0; i < 16; i++ {
		email := SchoolEmail("mit.edu")
		if !pattern.MatchString(email) {
			t.Fatalf("email %q does not match expected shape", email)
		}
	}
}

func TestSchoolEmail_UppercasesDomain(t *testing.T) {
	email := SchoolEmail("Stanford.EDU")
	if !strings.HasSuffix(email, "@STANFORD.EDU") {
		t.Fatalf("expected uppercased domain suffix, got %q", email)
	}
}

func TestGenerateName_NonEmpty(t *testing.T) {
	gen := NewGenerator()
	first, last := gen.GenerateName()
	if first == "" || last == "" {
		t.Fatalf("expected non-empty name parts, got %q %q", first, last)
	}
}

func TestGenerateBirthDate_StudentAgeRange(t *testing.T) {
	gen := NewGenerator()
	now := time.Now()

	for i := 0; i < 32; i++ {
		bd := gen.GenerateBirthDate()

		age := now.Year() - bd.Year()
		if age < minAgeYears || age > maxAgeYears {
			t.Fatalf("birth year %d implies age %d outside [%d,%d]", bd.Year(), age, minAgeYears, maxAgeYears)
		}
		if bd.Day() < 1 || bd.Day() > 28 {
			t.Fatalf("expected day in [1,28], got %d", bd.Day())
		}
	}
}
