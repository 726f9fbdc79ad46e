// Package crypto provides the pure cryptographic primitives used by
// waterscape: signing and exchange key generation, Diffie-Hellman on
// X25519, HKDF key derivation, ChaCha20-Poly1305 AEAD, and Ed25519
// signing/verification.
//
// Every function here operates on fixed-size byte arrays and returns
// errors rather than panicking; secret-bearing values should be zeroized
// with Zeroize once their owning scope is done with them.
package crypto

import (
	"crypto/ecdh"
	"crypto/ed25519"
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"io"

	"golang.org/x/crypto/chacha20poly1305"
	"golang.org/x/crypto/hkdf"

	"github.com/waterscape-project/waterscape/waterscapeerr"
)

const (
	// SeedSize is the length of an Ed25519 signing seed.
	SeedSize = ed25519.SeedSize
	// VerifyingKeySize is the length of an Ed25519 verifying key.
	VerifyingKeySize = ed25519.PublicKeySize
	// SignatureSize is the length of an Ed25519 signature.
	SignatureSize = ed25519.SignatureSize
	// ExchangeKeySize is the length of an X25519 secret or public key.
	ExchangeKeySize = 32
	// SharedSecretSize is the length of a raw Diffie-Hellman output.
	SharedSecretSize = 32
	// SessionKeySize is the length of a derived AEAD key.
	SessionKeySize = 32
	// NonceSize is the length of a ChaCha20-Poly1305 nonce.
	NonceSize = chacha20poly1305.NonceSize
)

// SigningSeed is a 32-byte Ed25519 seed; it is secret and must be
// zeroized once its owning scope is done with it.
type SigningSeed [SeedSize]byte

// VerifyingKey is a 32-byte Ed25519 public key.
type VerifyingKey [VerifyingKeySize]byte

// ExchangeSecret is a 32-byte X25519 secret scalar; it is secret and must
// be zeroized once its owning scope is done with it.
type ExchangeSecret [ExchangeKeySize]byte

// ExchangePublic is a 32-byte X25519 public key.
type ExchangePublic [ExchangeKeySize]byte

// SharedSecret is the raw 32-byte output of an X25519 Diffie-Hellman
// exchange. It is secret and must be zeroized after use.
type SharedSecret [SharedSecretSize]byte

// SessionKey is a 32-byte symmetric AEAD key derived from a SharedSecret
// (or a group hash).
type SessionKey [SessionKeySize]byte

// Nonce is a 12-byte AEAD nonce.
type Nonce [NonceSize]byte

// Signature is a 64-byte Ed25519 signature.
type Signature [SignatureSize]byte

// Zeroize overwrites b with zero bytes. It is safe to call on a nil or
// empty slice.
func Zeroize(b []byte) {
	for i := range b {
		b[i] = 0
	}
}

// Zeroize overwrites the shared secret with zero bytes.
func (s *SharedSecret) Zeroize() { Zeroize(s[:]) }

// Zeroize overwrites the session key with zero bytes.
func (k *SessionKey) Zeroize() { Zeroize(k[:]) }

// Zeroize overwrites the exchange secret with zero bytes.
func (s *ExchangeSecret) Zeroize() { Zeroize(s[:]) }

// Zeroize overwrites the signing seed with zero bytes.
func (s *SigningSeed) Zeroize() { Zeroize(s[:]) }

// GenerateSigningKeyPair returns a fresh, cryptographically random Ed25519
// seed and its deterministically derived verifying key.
func GenerateSigningKeyPair() (SigningSeed, VerifyingKey, error) {
	var seed SigningSeed
	var verifying VerifyingKey

	pub, priv, err := ed25519.GenerateKey(rand.Reader)
	if err != nil {
		return seed, verifying, waterscapeerr.Crypto("generate signing keypair: " + err.Error())
	}
	copy(seed[:], priv.Seed())
	copy(verifying[:], pub)
	return seed, verifying, nil
}

// VerifyingKeyFromSeed deterministically derives the verifying key for a
// signing seed.
func VerifyingKeyFromSeed(seed SigningSeed) VerifyingKey {
	priv := ed25519.NewKeyFromSeed(seed[:])
	var out VerifyingKey
	copy(out[:], priv.Public().(ed25519.PublicKey))
	return out
}

// GenerateExchangeKeyPair returns a fresh, cryptographically random X25519
// secret and its corresponding public key (the public key is the secret
// scalar multiplied by the curve base point).
func GenerateExchangeKeyPair() (ExchangeSecret, ExchangePublic, error) {
	var secret ExchangeSecret
	var public ExchangePublic

	priv, err := ecdh.X25519().GenerateKey(rand.Reader)
	if err != nil {
		return secret, public, waterscapeerr.Crypto("generate exchange keypair: " + err.Error())
	}
	copy(secret[:], priv.Bytes())
	copy(public[:], priv.PublicKey().Bytes())
	return secret, public, nil
}

// ExchangePublicFromSecret recovers the public key for an exchange
// secret.
func ExchangePublicFromSecret(secret ExchangeSecret) (ExchangePublic, error) {
	var public ExchangePublic
	priv, err := ecdh.X25519().NewPrivateKey(secret[:])
	if err != nil {
		return public, waterscapeerr.Crypto("invalid exchange secret: " + err.Error())
	}
	copy(public[:], priv.PublicKey().Bytes())
	return public, nil
}

// DH performs a constant-time X25519 Diffie-Hellman exchange between a
// local secret and a peer's public key, rejecting the low-order/identity
// point.
func DH(secret ExchangeSecret, peerPublic ExchangePublic) (SharedSecret, error) {
	var shared SharedSecret

	priv, err := ecdh.X25519().NewPrivateKey(secret[:])
	if err != nil {
		return shared, waterscapeerr.Crypto("invalid exchange secret: " + err.Error())
	}
	pub, err := ecdh.X25519().NewPublicKey(peerPublic[:])
	if err != nil {
		return shared, waterscapeerr.Crypto("invalid peer public key: " + err.Error())
	}
	raw, err := priv.ECDH(pub)
	if err != nil {
		return shared, waterscapeerr.Crypto("dh: " + err.Error())
	}

	var zero [SharedSecretSize]byte
	if subtle.ConstantTimeCompare(raw, zero[:]) == 1 {
		return shared, waterscapeerr.Crypto("dh: low-order or identity point")
	}
	copy(shared[:], raw)
	return shared, nil
}

// DeriveKey implements derive_key(shared32, context_bytes) -> key32:
// HKDF-SHA256 (extract with no salt, then expand) with context_bytes as
// the info parameter.
func DeriveKey(shared SharedSecret, context []byte) (SessionKey, error) {
	var key SessionKey
	h := hkdf.New(sha256.New, shared[:], nil, context)
	if _, err := io.ReadFull(h, key[:]); err != nil {
		return key, waterscapeerr.Crypto("derive key: " + err.Error())
	}
	return key, nil
}

// RandomNonce draws a uniformly random 12-byte AEAD nonce.
func RandomNonce() (Nonce, error) {
	var nonce Nonce
	if _, err := io.ReadFull(rand.Reader, nonce[:]); err != nil {
		return nonce, waterscapeerr.Crypto("random nonce: " + err.Error())
	}
	return nonce, nil
}

// AEADEncrypt seals plaintext under key and nonce using
// ChaCha20-Poly1305 with empty associated data. It fails only on
// catastrophic library error (e.g. a malformed key).
func AEADEncrypt(key SessionKey, nonce Nonce, plaintext []byte) ([]byte, error) {
	aead, err := chacha20poly1305.New(key[:])
	if err != nil {
		return nil, waterscapeerr.Crypto("aead init: " + err.Error())
	}
	return aead.Seal(nil, nonce[:], plaintext, nil), nil
}

// AEADDecrypt opens ciphertext under key and nonce. It returns
// AuthenticationFailed if the tag does not verify.
func AEADDecrypt(key SessionKey, nonce Nonce, ciphertext []byte) ([]byte, error) {
	aead, err := chacha20poly1305.New(key[:])
	if err != nil {
		return nil, waterscapeerr.Crypto("aead init: " + err.Error())
	}
	plaintext, err := aead.Open(nil, nonce[:], ciphertext, nil)
	if err != nil {
		return nil, waterscapeerr.AuthenticationFailed()
	}
	return plaintext, nil
}

// Sign produces an Ed25519 signature over msg using the signing seed.
func Sign(seed SigningSeed, msg []byte) Signature {
	priv := ed25519.NewKeyFromSeed(seed[:])
	var sig Signature
	copy(sig[:], ed25519.Sign(priv, msg))
	return sig
}

// Verify checks an Ed25519 signature over msg against a verifying key.
// It returns InvalidSignature if the signature does not verify.
func Verify(verifying VerifyingKey, msg []byte, sig Signature) error {
	if !ed25519.Verify(verifying[:], msg, sig[:]) {
		return waterscapeerr.InvalidSignature()
	}
	return nil
}
