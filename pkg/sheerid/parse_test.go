package sheerid

import (
	"errors"
	"testing"
)

func TestParseVerificationID_Extracts(t *testing.T) {
	tests := []struct {
		name string
		url  string
		want string
	}{
		{
			name: "lowercase hex",
			url:  "https://services.sheerid.com/verify/abc123/?verificationId=68a1b2c3d4e5f6",
			want: "68a1b2c3d4e5f6",
		},
		{
			name: "mixed case value",
			url:  "https://services.sheerid.com/?verificationId=AB12cd",
			want: "AB12cd",
		},
		{
			name: "parameter name case-insensitive",
			url:  "https://services.sheerid.com/?VERIFICATIONID=deadbeef",
			want: "deadbeef",
		},
		{
			name: "other params around it",
			url:  "https://x.test/?foo=1&verificationId=0099aaff&bar=2",
			want: "0099aaff",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseVerificationID(tt.url)
			if err != nil {
				t.Fatalf("ParseVerificationID(%q) failed: %v", tt.url, err)
			}
			if got != tt.want {
				t.Fatalf("ParseVerificationID(%q) = %q, want %q", tt.url, got, tt.want)
			}
		})
	}
}

func TestParseVerificationID_Missing(t *testing.T) {
	urls := []string{
		"https://services.sheerid.com/verify/abc123/",
		"https://services.sheerid.com/?other=1",
		"",
		"not a url at all",
	}

	for _, u := range urls {
		if _, err := ParseVerificationID(u); !errors.Is(err, ErrNoVerificationID) {
			t.Fatalf("ParseVerificationID(%q): expected ErrNoVerificationID, got %v", u, err)
		}
	}
}

func TestParseVerificationID_NonHexValue(t *testing.T) {
	// The matcher is hexadecimal; "zz" never matches, and "68zz" captures
	// only the leading hex run.
	if _, err := ParseVerificationID("https://x.test/?verificationId=zz"); !errors.Is(err, ErrNoVerificationID) {
		t.Fatalf("expected ErrNoVerificationID for non-hex value, got %v", err)
	}

	got, err := ParseVerificationID("https://x.test/?verificationId=68zz")
	if err != nil {
		t.Fatalf("ParseVerificationID() failed: %v", err)
	}
	if got != "68" {
		t.Fatalf("expected leading hex run %q, got %q", "68", got)
	}
}
