package crypto

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/waterscape-project/waterscape/waterscapeerr"
)

func TestSigningKeyPair(t *testing.T) {
	seed, verifying, err := GenerateSigningKeyPair()
	require.NoError(t, err)
	assert.NotEqual(t, SigningSeed{}, seed)
	assert.Equal(t, verifying, VerifyingKeyFromSeed(seed))

	msg := []byte("meet@midnight")
	sig := Sign(seed, msg)
	require.NoError(t, Verify(verifying, msg, sig))

	other, _, err := GenerateSigningKeyPair()
	require.NoError(t, err)
	assert.NotEqual(t, seed, other)
}

func TestVerifyRejectsTamperedMessage(t *testing.T) {
	seed, verifying, err := GenerateSigningKeyPair()
	require.NoError(t, err)

	sig := Sign(seed, []byte("original"))
	err = Verify(verifying, []byte("tampered"), sig)
	assert.True(t, errors.Is(err, waterscapeerr.ErrInvalidSignature))
}

func TestExchangeKeyPairAndDH(t *testing.T) {
	aSecret, aPublic, err := GenerateExchangeKeyPair()
	require.NoError(t, err)
	bSecret, bPublic, err := GenerateExchangeKeyPair()
	require.NoError(t, err)

	derived, err := ExchangePublicFromSecret(aSecret)
	require.NoError(t, err)
	assert.Equal(t, aPublic, derived)

	s1, err := DH(aSecret, bPublic)
	require.NoError(t, err)
	s2, err := DH(bSecret, aPublic)
	require.NoError(t, err)
	assert.Equal(t, s1, s2)
}

func TestDeriveKeyDeterministic(t *testing.T) {
	var shared SharedSecret
	copy(shared[:], []byte("01234567890123456789012345678901"))

	k1, err := DeriveKey(shared, []byte("waterscape-v1-encrypt"))
	require.NoError(t, err)
	k2, err := DeriveKey(shared, []byte("waterscape-v1-encrypt"))
	require.NoError(t, err)
	assert.Equal(t, k1, k2)

	k3, err := DeriveKey(shared, []byte("different-context"))
	require.NoError(t, err)
	assert.NotEqual(t, k1, k3)
}

func TestAEADRoundTrip(t *testing.T) {
	var key SessionKey
	copy(key[:], []byte("0123456789abcdef0123456789abcdef"))

	nonce, err := RandomNonce()
	require.NoError(t, err)

	plaintext := []byte("Group meeting at 3pm.")
	ciphertext, err := AEADEncrypt(key, nonce, plaintext)
	require.NoError(t, err)

	decrypted, err := AEADDecrypt(key, nonce, ciphertext)
	require.NoError(t, err)
	assert.Equal(t, plaintext, decrypted)
}

func TestAEADDecryptFailsOnTamperedCiphertext(t *testing.T) {
	var key SessionKey
	copy(key[:], []byte("0123456789abcdef0123456789abcdef"))
	nonce, err := RandomNonce()
	require.NoError(t, err)

	ciphertext, err := AEADEncrypt(key, nonce, []byte("hello"))
	require.NoError(t, err)
	ciphertext[0] ^= 0xFF

	_, err = AEADDecrypt(key, nonce, ciphertext)
	assert.True(t, errors.Is(err, waterscapeerr.ErrAuthenticationFailed))
}

func TestAEADDecryptFailsWithWrongKey(t *testing.T) {
	var key, wrongKey SessionKey
	copy(key[:], []byte("0123456789abcdef0123456789abcdef"))
	copy(wrongKey[:], []byte("ffffffffffffffffffffffffffffffff"))

	nonce, err := RandomNonce()
	require.NoError(t, err)

	ciphertext, err := AEADEncrypt(key, nonce, []byte("hello"))
	require.NoError(t, err)

	_, err = AEADDecrypt(wrongKey, nonce, ciphertext)
	assert.True(t, errors.Is(err, waterscapeerr.ErrAuthenticationFailed))
}

func TestRandomNonceIsFresh(t *testing.T) {
	n1, err := RandomNonce()
	require.NoError(t, err)
	n2, err := RandomNonce()
	require.NoError(t, err)
	assert.NotEqual(t, n1, n2)
}

func TestExchangeSecretFromSigningSeedDeterministic(t *testing.T) {
	seed, verifying, err := GenerateSigningKeyPair()
	require.NoError(t, err)

	xSecret := ExchangeSecretFromSigningSeed(seed)
	xPublicFromVerifying, err := ExchangePublicFromVerifyingKey(verifying)
	require.NoError(t, err)

	xPublicFromSecret, err := ExchangePublicFromSecret(xSecret)
	require.NoError(t, err)

	assert.Equal(t, xPublicFromVerifying, xPublicFromSecret)
}

func TestZeroize(t *testing.T) {
	var shared SharedSecret
	copy(shared[:], []byte("01234567890123456789012345678901"))
	shared.Zeroize()
	assert.Equal(t, SharedSecret{}, shared)
}
