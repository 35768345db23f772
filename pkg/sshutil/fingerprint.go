package sshutil

import (
	"crypto/sha256"
	"encoding/base64"
	"fmt"
)

// Fingerprint calculates the SHA256 fingerprint of a raw SSH wire blob
// (a plain public key or a certificate).
func Fingerprint(blob []byte) string {
	hash := sha256.Sum256(blob)
	b64hash := base64.RawStdEncoding.EncodeToString(hash[:])

	return fmt.Sprintf("SHA256:%s", b64hash)
}

// FingerprintAuthorized calculates the fingerprint of a key given in
// the authorized_keys "type base64data [comment]" format.
func FingerprintAuthorized(data []byte) (string, error) {
	blob, _, err := ParseAuthorizedBlob(data)
	if err != nil {
		return "", err
	}
	return Fingerprint(blob), nil
}

// FingerprintMatches checks if two raw blobs have the same fingerprint.
func FingerprintMatches(blob1, blob2 []byte) bool {
	return Fingerprint(blob1) == Fingerprint(blob2)
}
