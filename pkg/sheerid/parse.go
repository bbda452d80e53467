package sheerid

import "regexp"

// verificationIDPattern matches the verificationId query parameter
// case-insensitively. Verification ids are opaque hexadecimal tokens.
var verificationIDPattern = regexp.MustCompile(`(?i)verificationId=([a-f0-9]+)`)

// ParseVerificationID extracts the verification id from a verification URL.
// It returns ErrNoVerificationID when the parameter is absent or its value
// is not hexadecimal.
func ParseVerificationID(rawURL string) (string, error) {
	m := verificationIDPattern.FindStringSubmatch(rawURL)
	if m == nil {
		return "", ErrNoVerificationID
	}
	return m[1], nil
}
