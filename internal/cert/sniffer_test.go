package cert

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/adamscao/certauth/internal/certtest"
)

func TestIsCertificate(t *testing.T) {
	tests := []struct {
		name string
		buf  []byte
		want bool
	}{
		{"nil buffer", nil, false},
		{"empty buffer", []byte{}, false},
		{"shorter than length prefix", []byte{0, 0, 1}, false},
		{"declared length exceeds 64", appendString(nil, make([]byte, 65)), false},
		{
			"declared length exceeds buffer",
			[]byte{0, 0, 0, 200, 's', 's', 'h'},
			false,
		},
		{
			"plain key algorithm",
			appendString(nil, []byte("ssh-ed25519")),
			false,
		},
		{
			"certificate algorithm",
			appendString(nil, []byte("ssh-ed25519-cert-v01@openssh.com")),
			true,
		},
		{
			"marker anywhere in the identifier",
			appendString(nil, []byte("x-cert-vx")),
			true,
		},
		{"garbage", []byte{0xde, 0xad, 0xbe, 0xef, 0x01}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsCertificate(tt.buf))
		})
	}
}

func TestIsCertificateRealBlobs(t *testing.T) {
	blob, signer := certtest.Blob(t, certtest.Spec{KeyID: "sniff@example.com"})

	assert.True(t, IsCertificate(blob))
	assert.False(t, IsCertificate(signer.PublicKey().Marshal()))
}

func TestIsCertificateLeavesBufferUntouched(t *testing.T) {
	blob, _ := certtest.Blob(t, certtest.Spec{KeyID: "sniff@example.com"})
	saved := append([]byte(nil), blob...)

	IsCertificate(blob)
	assert.Equal(t, saved, blob)
}
