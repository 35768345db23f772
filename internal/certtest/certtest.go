// Package certtest generates signed OpenSSH certificates for tests.
package certtest

import (
	"crypto/ed25519"
	"crypto/rand"
	"testing"

	"golang.org/x/crypto/ssh"
)

// Spec describes the certificate to generate. Zero validity bounds are
// carried through as-is, meaning an unbounded window.
type Spec struct {
	KeyID       string
	Principals  []string
	CertType    uint32
	ValidAfter  uint64
	ValidBefore uint64
	Options     map[string]string
	Extensions  map[string]string
	Serial      uint64
}

// Blob returns the wire encoding of an Ed25519 certificate signed by a
// fresh CA, together with the certified user key's signer.
func Blob(t *testing.T, spec Spec) ([]byte, ssh.Signer) {
	t.Helper()

	cert, userSigner := newCertificate(t, spec)
	return cert.Marshal(), userSigner
}

// NewSigner returns a fresh Ed25519 signer.
func NewSigner(t *testing.T) ssh.Signer {
	t.Helper()

	_, priv, err := ed25519.GenerateKey(rand.Reader)
	if err != nil {
		t.Fatalf("failed to generate ed25519 key: %v", err)
	}
	signer, err := ssh.NewSignerFromKey(priv)
	if err != nil {
		t.Fatalf("failed to create signer: %v", err)
	}
	return signer
}

func newCertificate(t *testing.T, spec Spec) (*ssh.Certificate, ssh.Signer) {
	t.Helper()

	userSigner := NewSigner(t)
	caSigner := NewSigner(t)

	certType := spec.CertType
	if certType == 0 {
		certType = ssh.UserCert
	}

	cert := &ssh.Certificate{
		Key:             userSigner.PublicKey(),
		Serial:          spec.Serial,
		CertType:        certType,
		KeyId:           spec.KeyID,
		ValidPrincipals: spec.Principals,
		ValidAfter:      spec.ValidAfter,
		ValidBefore:     spec.ValidBefore,
		Permissions: ssh.Permissions{
			CriticalOptions: spec.Options,
			Extensions:      spec.Extensions,
		},
	}

	if err := cert.SignCert(rand.Reader, caSigner); err != nil {
		t.Fatalf("failed to sign certificate: %v", err)
	}

	return cert, userSigner
}
