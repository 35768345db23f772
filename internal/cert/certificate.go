package cert

import "sort"

// CertType distinguishes user and host certificates. Values other than
// UserCert and HostCert are carried through unchanged so a re-encoded
// certificate stays byte-identical to its input.
type CertType uint32

const (
	UserCert CertType = 1
	HostCert CertType = 2
)

// String returns a human-readable certificate type name.
func (t CertType) String() string {
	switch t {
	case UserCert:
		return "user"
	case HostCert:
		return "host"
	default:
		return "unknown"
	}
}

// Certificate is a decoded OpenSSH certificate as defined in
// PROTOCOL.certkeys. It is immutable once returned by Decode: the raw
// key-material and option byte ranges captured during decoding are kept
// so Marshal can reproduce the original blob exactly.
type Certificate struct {
	Algorithm       string
	Nonce           []byte
	Serial          uint64
	Type            CertType
	KeyID           string
	Principals      []string
	ValidAfter      uint64
	ValidBefore     uint64
	CriticalOptions map[string]string
	Extensions      map[string]string
	Reserved        []byte
	SignatureKey    []byte
	Signature       []byte

	// Byte ranges retained verbatim from the decoded blob. The reduced
	// fields above cannot reconstruct them (key material is skipped, map
	// iteration loses tuple order), so Marshal prefers these when set.
	keyMaterial   []byte
	rawOptions    []byte
	rawExtensions []byte
}

// IsUser reports whether the certificate authorizes a user identity.
func (c *Certificate) IsUser() bool { return c.Type == UserCert }

// Marshal encodes the certificate back into its wire form. For a
// certificate produced by Decode the output is byte-for-byte identical
// to the decoded input. For a hand-constructed certificate the key
// material is empty and option tuples are emitted in sorted name order,
// which is a valid but lossy encoding.
func (c *Certificate) Marshal() []byte {
	out := appendString(nil, []byte(c.Algorithm))
	out = appendString(out, c.Nonce)
	out = append(out, c.keyMaterial...)
	out = appendUint64(out, c.Serial)
	out = appendUint32(out, uint32(c.Type))
	out = appendString(out, []byte(c.KeyID))
	out = appendString(out, marshalNameList(c.Principals))
	out = appendUint64(out, c.ValidAfter)
	out = appendUint64(out, c.ValidBefore)
	out = appendString(out, marshalTuples(c.CriticalOptions, c.rawOptions))
	out = appendString(out, marshalTuples(c.Extensions, c.rawExtensions))
	out = appendString(out, c.Reserved)
	out = appendString(out, c.SignatureKey)
	out = appendString(out, c.Signature)
	return out
}

func marshalNameList(names []string) []byte {
	var out []byte
	for _, name := range names {
		out = appendString(out, []byte(name))
	}
	return out
}

func marshalTuples(tuples map[string]string, raw []byte) []byte {
	if raw != nil {
		return raw
	}
	names := make([]string, 0, len(tuples))
	for name := range tuples {
		names = append(names, name)
	}
	sort.Strings(names)

	var out []byte
	for _, name := range names {
		out = appendString(out, []byte(name))
		out = appendString(out, []byte(tuples[name]))
	}
	return out
}
