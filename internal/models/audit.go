package models

import "time"

// AuditLog represents one recorded authentication decision.
type AuditLog struct {
	ID          int64     `json:"id"`
	Timestamp   time.Time `json:"timestamp"`
	Action      string    `json:"action"`
	Username    string    `json:"username,omitempty"`
	Fingerprint string    `json:"fingerprint,omitempty"`
	Serial      uint64    `json:"serial,omitempty"`
	KeyID       string    `json:"key_id,omitempty"`
	Success     bool      `json:"success"`
	Reason      string    `json:"reason,omitempty"`
}

// Audit action constants
const (
	ActionCertAuth  = "cert_auth"
	ActionCertCheck = "cert_check"
)
