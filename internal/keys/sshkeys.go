package keys

import (
	"crypto/rand"
	"crypto/x509"
	"encoding/pem"
	"fmt"

	"golang.org/x/crypto/ssh"
)

// ParsePrivateKey parses an OpenSSH PEM private key into a BaseKey that
// can both sign and verify. RSA, ECDSA, Ed25519 and DSA keys are
// accepted, matching the certificate families the codec recognizes.
func ParsePrivateKey(pemBytes []byte) (BaseKey, error) {
	signer, err := ssh.ParsePrivateKey(pemBytes)
	if err != nil {
		return nil, fmt.Errorf("failed to parse private key: %w", err)
	}
	return &signerKey{signer: signer}, nil
}

// NewSignerKey wraps an existing ssh.Signer as a BaseKey.
func NewSignerKey(signer ssh.Signer) BaseKey {
	return &signerKey{signer: signer}
}

// ParsePublicKey parses a raw SSH wire blob into a verify-only BaseKey.
func ParsePublicKey(blob []byte) (BaseKey, error) {
	pub, err := ssh.ParsePublicKey(blob)
	if err != nil {
		return nil, fmt.Errorf("failed to parse public key: %w", err)
	}
	return &verifyKey{pub: pub}, nil
}

// signerKey is a BaseKey backed by a private key.
type signerKey struct {
	signer ssh.Signer
}

func (k *signerKey) Sign(data []byte, algo string) ([]byte, error) {
	var sig *ssh.Signature
	var err error

	if algo != "" {
		as, ok := k.signer.(ssh.AlgorithmSigner)
		if !ok {
			return nil, fmt.Errorf("key does not support algorithm %s", algo)
		}
		sig, err = as.SignWithAlgorithm(rand.Reader, data, algo)
	} else {
		sig, err = k.signer.Sign(rand.Reader, data)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to sign: %w", err)
	}

	return ssh.Marshal(sig), nil
}

func (k *signerKey) Verify(data, sig []byte, algo string) error {
	return verifyBlob(k.signer.PublicKey(), data, sig)
}

func (k *signerKey) IsPrivate() bool { return true }

func (k *signerKey) PublicSSH(algo string) []byte {
	return k.signer.PublicKey().Marshal()
}

func (k *signerKey) PublicPEM() ([]byte, error) {
	return publicPEM(k.signer.PublicKey())
}

// verifyKey is a BaseKey backed by a public key only.
type verifyKey struct {
	pub ssh.PublicKey
}

func (k *verifyKey) Sign(data []byte, algo string) ([]byte, error) {
	return nil, ErrNoPrivateKey
}

func (k *verifyKey) Verify(data, sig []byte, algo string) error {
	return verifyBlob(k.pub, data, sig)
}

func (k *verifyKey) IsPrivate() bool { return false }

func (k *verifyKey) PublicSSH(algo string) []byte {
	return k.pub.Marshal()
}

func (k *verifyKey) PublicPEM() ([]byte, error) {
	return publicPEM(k.pub)
}

// verifyBlob checks a wire-encoded signature against data. The signature
// algorithm travels inside the encoded signature, so no hint is needed.
func verifyBlob(pub ssh.PublicKey, data, sig []byte) error {
	var s ssh.Signature
	if err := ssh.Unmarshal(sig, &s); err != nil {
		return fmt.Errorf("malformed signature: %w", err)
	}
	return pub.Verify(data, &s)
}

func publicPEM(pub ssh.PublicKey) ([]byte, error) {
	ck, ok := pub.(ssh.CryptoPublicKey)
	if !ok {
		return nil, ErrNoPEMSupport
	}
	der, err := x509.MarshalPKIXPublicKey(ck.CryptoPublicKey())
	if err != nil {
		// crypto/x509 has no PKIX encoding for this type (DSA).
		return nil, ErrNoPEMSupport
	}
	return pem.EncodeToMemory(&pem.Block{Type: "PUBLIC KEY", Bytes: der}), nil
}
