package keys

import (
	"crypto/ed25519"
	"crypto/rand"
	"crypto/rsa"
	"encoding/pem"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/ssh"

	"github.com/adamscao/certauth/internal/certtest"
)

func marshalTestKey(t *testing.T, priv interface{}) []byte {
	t.Helper()
	block, err := ssh.MarshalPrivateKey(priv, "")
	require.NoError(t, err)
	return pem.EncodeToMemory(block)
}

func TestParsePrivateKey(t *testing.T) {
	_, priv, err := ed25519.GenerateKey(rand.Reader)
	require.NoError(t, err)

	key, err := ParsePrivateKey(marshalTestKey(t, priv))
	require.NoError(t, err)

	assert.True(t, key.IsPrivate())

	data := []byte("sign me")
	sig, err := key.Sign(data, "")
	require.NoError(t, err)
	assert.NoError(t, key.Verify(data, sig, ""))
	assert.Error(t, key.Verify([]byte("other"), sig, ""))
}

func TestParsePrivateKeyRejectsGarbage(t *testing.T) {
	_, err := ParsePrivateKey([]byte("not a pem key"))
	assert.Error(t, err)
}

func TestSignWithAlgorithmHint(t *testing.T) {
	priv, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)

	key, err := ParsePrivateKey(marshalTestKey(t, priv))
	require.NoError(t, err)

	data := []byte("negotiated algorithm")
	sig, err := key.Sign(data, ssh.KeyAlgoRSASHA256)
	require.NoError(t, err)

	// The hint selects the signature format on the wire.
	var decoded ssh.Signature
	require.NoError(t, ssh.Unmarshal(sig, &decoded))
	assert.Equal(t, ssh.KeyAlgoRSASHA256, decoded.Format)

	assert.NoError(t, key.Verify(data, sig, ssh.KeyAlgoRSASHA256))
}

func TestParsePublicKey(t *testing.T) {
	signer := certtest.NewSigner(t)

	key, err := ParsePublicKey(signer.PublicKey().Marshal())
	require.NoError(t, err)

	assert.False(t, key.IsPrivate())
	assert.Equal(t, signer.PublicKey().Marshal(), key.PublicSSH(""))

	_, err = key.Sign([]byte("nope"), "")
	assert.ErrorIs(t, err, ErrNoPrivateKey)

	// It still verifies signatures made by the matching private key.
	data := []byte("verify me")
	sig, err := NewSignerKey(signer).Sign(data, "")
	require.NoError(t, err)
	assert.NoError(t, key.Verify(data, sig, ""))
}

func TestVerifyMalformedSignature(t *testing.T) {
	key := NewSignerKey(certtest.NewSigner(t))

	err := key.Verify([]byte("data"), []byte{0x01, 0x02}, "")
	assert.Error(t, err)
}

func TestPublicPEM(t *testing.T) {
	key := NewSignerKey(certtest.NewSigner(t))

	pemBytes, err := key.PublicPEM()
	require.NoError(t, err)

	block, _ := pem.Decode(pemBytes)
	require.NotNil(t, block)
	assert.Equal(t, "PUBLIC KEY", block.Type)
}
