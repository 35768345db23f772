package models

import "time"

// CertificateSummary is the printable view of a decoded certificate.
type CertificateSummary struct {
	Algorithm       string            `json:"algorithm"`
	Fingerprint     string            `json:"fingerprint"`
	Serial          uint64            `json:"serial"`
	Type            string            `json:"type"`
	KeyID           string            `json:"key_id"`
	Principals      []string          `json:"principals,omitempty"`
	ValidAfter      time.Time         `json:"valid_after"`
	ValidBefore     time.Time         `json:"valid_before"`
	CriticalOptions map[string]string `json:"critical_options,omitempty"`
	Extensions      map[string]string `json:"extensions,omitempty"`
}
