package cert

import (
	"encoding/binary"
	"strings"
)

// Algorithm identifiers longer than this are not plausible certificate
// names; the sniffer gives up rather than read an attacker-sized field.
const maxAlgorithmLen = 64

// IsCertificate reports whether buf plausibly holds an OpenSSH
// certificate: its first length-prefixed field decodes to an algorithm
// identifier containing "-cert-v". Short, empty, or otherwise malformed
// buffers are a plain false, never an error. The buffer is not modified
// and nothing beyond the first field is examined.
func IsCertificate(buf []byte) bool {
	if len(buf) < 4 {
		return false
	}
	n := binary.BigEndian.Uint32(buf)
	if n > maxAlgorithmLen || uint32(len(buf)-4) < n {
		return false
	}
	return strings.Contains(string(buf[4:4+n]), "-cert-v")
}
