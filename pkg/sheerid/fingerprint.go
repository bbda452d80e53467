package sheerid

import (
	"crypto/rand"
	"encoding/hex"
)

const fingerprintBytes = 16

// NewDeviceFingerprint produces a fresh 32-character lowercase hexadecimal
// device identifier. Each session gets its own; nothing links it to a prior
// session or to a real device.
func NewDeviceFingerprint() string {
	b := make([]byte, fingerprintBytes)
	if _, err := rand.Read(b); err != nil {
		// crypto/rand never fails on supported platforms.
		panic("sheerid: read random: " + err.Error())
	}
	return hex.EncodeToString(b)
}
