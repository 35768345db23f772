package cert

import "strings"

// keyFormat identifies the key family embedded in a certificate. The
// decoder never interprets the key material; it only needs to know how
// many wire fields each family occupies so it can skip past them.
type keyFormat int

const (
	keyFormatRSA keyFormat = iota
	keyFormatECDSA
	keyFormatEd25519
	keyFormatDSA
)

// fieldCount returns the number of length-prefixed key-material fields
// for the family: RSA carries (e, n), ECDSA (curve, point), Ed25519 the
// bare public key, and DSA (p, q, g, y).
func (f keyFormat) fieldCount() int {
	switch f {
	case keyFormatRSA:
		return 2
	case keyFormatECDSA:
		return 2
	case keyFormatEd25519:
		return 1
	case keyFormatDSA:
		return 4
	}
	panic("cert: unknown key format")
}

func algorithmFormat(algo string) (keyFormat, bool) {
	switch {
	case strings.HasPrefix(algo, "ssh-rsa"):
		return keyFormatRSA, true
	case strings.HasPrefix(algo, "ecdsa-sha2-nistp"):
		return keyFormatECDSA, true
	case strings.HasPrefix(algo, "ssh-ed25519"):
		return keyFormatEd25519, true
	case strings.HasPrefix(algo, "ssh-dss"):
		return keyFormatDSA, true
	}
	return 0, false
}

// Decode parses an OpenSSH certificate blob into a Certificate. It is a
// pure function of its input: the returned record holds copies of every
// retained byte range, so the caller may reuse the buffer afterwards.
// Truncated input fails with *InvalidCertificateError and an unknown
// algorithm identifier with *UnsupportedKeyTypeError.
func Decode(buf []byte) (*Certificate, error) {
	r := &reader{buf: buf}
	c := &Certificate{}

	algo, err := r.readString("algorithm")
	if err != nil {
		return nil, err
	}
	c.Algorithm = string(algo)

	format, ok := algorithmFormat(c.Algorithm)
	if !ok {
		return nil, &UnsupportedKeyTypeError{Algorithm: c.Algorithm}
	}

	nonce, err := r.readString("nonce")
	if err != nil {
		return nil, err
	}
	c.Nonce = clone(nonce)

	keyMaterial, err := r.skipStrings(format.fieldCount(), "key material")
	if err != nil {
		return nil, err
	}
	c.keyMaterial = clone(keyMaterial)

	if c.Serial, err = r.readUint64("serial"); err != nil {
		return nil, err
	}

	certType, err := r.readUint32("type")
	if err != nil {
		return nil, err
	}
	// 1 and 2 are user and host; anything else decodes as-is and reads
	// back as unknown rather than failing.
	c.Type = CertType(certType)

	keyID, err := r.readString("key id")
	if err != nil {
		return nil, err
	}
	c.KeyID = string(keyID)

	if c.Principals, err = parseNameList(r); err != nil {
		return nil, err
	}

	if c.ValidAfter, err = r.readUint64("valid after"); err != nil {
		return nil, err
	}
	if c.ValidBefore, err = r.readUint64("valid before"); err != nil {
		return nil, err
	}

	if c.CriticalOptions, c.rawOptions, err = parseTuples(r, "critical options"); err != nil {
		return nil, err
	}
	if c.Extensions, c.rawExtensions, err = parseTuples(r, "extensions"); err != nil {
		return nil, err
	}

	reserved, err := r.readString("reserved")
	if err != nil {
		return nil, err
	}
	c.Reserved = clone(reserved)

	sigKey, err := r.readString("signature key")
	if err != nil {
		return nil, err
	}
	c.SignatureKey = clone(sigKey)

	sig, err := r.readString("signature")
	if err != nil {
		return nil, err
	}
	c.Signature = clone(sig)

	return c, nil
}

// parseNameList reads one outer length-prefixed field containing
// back-to-back length-prefixed strings. An empty outer field yields a
// nil slice, which means "valid for any principal", not "valid for
// none".
func parseNameList(r *reader) ([]string, error) {
	outer, err := r.readString("principals")
	if err != nil {
		return nil, err
	}

	var names []string
	inner := &reader{buf: outer}
	for inner.remaining() > 0 {
		name, err := inner.readString("principals")
		if err != nil {
			return nil, err
		}
		names = append(names, string(name))
	}
	return names, nil
}

// parseTuples reads one outer length-prefixed field containing repeated
// (name, value) string pairs. The raw inner bytes are returned alongside
// the map so Marshal can reproduce the original tuple order.
func parseTuples(r *reader, field string) (map[string]string, []byte, error) {
	outer, err := r.readString(field)
	if err != nil {
		return nil, nil, err
	}

	tuples := make(map[string]string)
	inner := &reader{buf: outer}
	for inner.remaining() > 0 {
		name, err := inner.readString(field)
		if err != nil {
			return nil, nil, err
		}
		value, err := inner.readString(field)
		if err != nil {
			return nil, nil, err
		}
		tuples[string(name)] = string(value)
	}
	return tuples, clone(outer), nil
}

func clone(b []byte) []byte {
	return append([]byte(nil), b...)
}
