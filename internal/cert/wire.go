package cert

import "encoding/binary"

// reader is a bounds-checked cursor over an SSH wire buffer. Every read
// verifies the remaining length first; a shortfall produces an
// InvalidCertificateError naming the field and never touches bytes past
// the end of the buffer.
type reader struct {
	buf []byte
	off int
}

func (r *reader) remaining() int { return len(r.buf) - r.off }

func (r *reader) readUint32(field string) (uint32, error) {
	if r.remaining() < 4 {
		return 0, &InvalidCertificateError{Field: field}
	}
	v := binary.BigEndian.Uint32(r.buf[r.off:])
	r.off += 4
	return v, nil
}

func (r *reader) readUint64(field string) (uint64, error) {
	if r.remaining() < 8 {
		return 0, &InvalidCertificateError{Field: field}
	}
	v := binary.BigEndian.Uint64(r.buf[r.off:])
	r.off += 8
	return v, nil
}

// readString reads a 4-byte length prefix followed by that many bytes.
func (r *reader) readString(field string) ([]byte, error) {
	n, err := r.readUint32(field)
	if err != nil {
		return nil, err
	}
	if uint32(r.remaining()) < n {
		return nil, &InvalidCertificateError{Field: field}
	}
	v := r.buf[r.off : r.off+int(n)]
	r.off += int(n)
	return v, nil
}

// skipStrings advances past count length-prefixed fields and returns the
// raw bytes covered, length prefixes included.
func (r *reader) skipStrings(count int, field string) ([]byte, error) {
	start := r.off
	for i := 0; i < count; i++ {
		if _, err := r.readString(field); err != nil {
			return nil, err
		}
	}
	return r.buf[start:r.off], nil
}

func appendUint32(out []byte, v uint32) []byte {
	return binary.BigEndian.AppendUint32(out, v)
}

func appendUint64(out []byte, v uint64) []byte {
	return binary.BigEndian.AppendUint64(out, v)
}

func appendString(out []byte, v []byte) []byte {
	out = binary.BigEndian.AppendUint32(out, uint32(len(v)))
	return append(out, v...)
}
