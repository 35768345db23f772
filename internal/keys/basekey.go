package keys

import "errors"

var (
	// ErrNoPEMSupport is returned by PublicPEM for key types that have
	// no PKIX encoding (notably ssh-dss).
	ErrNoPEMSupport = errors.New("key type does not support PEM export")

	// ErrNoPrivateKey is returned by Sign on a verify-only key.
	ErrNoPrivateKey = errors.New("private key required for signing")
)

// BaseKey is the asymmetric-key capability this subsystem composes with
// a certificate. Implementations are supplied by key parsing, not
// constructed here; the certificate layer only ever delegates to them.
//
// The algo argument is the signature algorithm hint from the SSH
// negotiation (for example "rsa-sha2-256"); an empty hint selects the
// key's default algorithm. PEM export is an optional capability, see
// ErrNoPEMSupport.
type BaseKey interface {
	Sign(data []byte, algo string) ([]byte, error)
	Verify(data, sig []byte, algo string) error
	IsPrivate() bool
	PublicSSH(algo string) []byte
	PublicPEM() ([]byte, error)
}
