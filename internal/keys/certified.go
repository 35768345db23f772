package keys

import (
	"errors"

	"github.com/adamscao/certauth/internal/cert"
)

var (
	// ErrNotABuffer is returned when certificate construction is handed
	// no byte data at all.
	ErrNotABuffer = errors.New("certificate buffer is not byte data")

	// ErrNotACertificate is returned when the buffer does not look like
	// an OpenSSH certificate. This is a negative classification, not a
	// decode failure.
	ErrNotACertificate = errors.New("buffer is not an OpenSSH certificate")
)

// CertifiedKey composes a BaseKey with a decoded certificate. Every
// BaseKey operation delegates unchanged: the certificate adds
// authorization metadata and never alters cryptographic behavior. The
// original certificate bytes are retained because the wire protocol
// transmits them verbatim; a re-encoded blob is not guaranteed to be
// byte-identical.
//
// A CertifiedKey lives for one authentication attempt and is never
// mutated after construction.
type CertifiedKey struct {
	base BaseKey
	cert *cert.Certificate
	raw  []byte
}

// NewCertifiedKey wraps base with the certificate decoded from
// certBlob. A nil blob fails with ErrNotABuffer, a blob the sniffer
// rejects with ErrNotACertificate, and a malformed certificate with the
// decode error unchanged. The base key is never touched on failure.
func NewCertifiedKey(base BaseKey, certBlob []byte) (*CertifiedKey, error) {
	if certBlob == nil {
		return nil, ErrNotABuffer
	}
	if !cert.IsCertificate(certBlob) {
		return nil, ErrNotACertificate
	}

	c, err := cert.Decode(certBlob)
	if err != nil {
		return nil, err
	}

	return &CertifiedKey{
		base: base,
		cert: c,
		raw:  append([]byte(nil), certBlob...),
	}, nil
}

// ExtractCertificate returns the certificate blob contained in data, or
// (nil, false) when data is not certificate-shaped. It never decodes:
// a buffer that passes the sniffer but is malformed only surfaces as an
// error inside NewCertifiedKey.
func ExtractCertificate(data []byte) ([]byte, bool) {
	if !cert.IsCertificate(data) {
		return nil, false
	}
	return append([]byte(nil), data...), true
}

// Certificate returns the decoded certificate.
func (k *CertifiedKey) Certificate() *cert.Certificate { return k.cert }

// CertificateBlob returns a copy of the original certificate bytes as
// received, suitable for retransmission on the wire.
func (k *CertifiedKey) CertificateBlob() []byte {
	return append([]byte(nil), k.raw...)
}

func (k *CertifiedKey) Sign(data []byte, algo string) ([]byte, error) {
	return k.base.Sign(data, algo)
}

func (k *CertifiedKey) Verify(data, sig []byte, algo string) error {
	return k.base.Verify(data, sig, algo)
}

func (k *CertifiedKey) IsPrivate() bool { return k.base.IsPrivate() }

func (k *CertifiedKey) PublicSSH(algo string) []byte { return k.base.PublicSSH(algo) }

func (k *CertifiedKey) PublicPEM() ([]byte, error) { return k.base.PublicPEM() }
