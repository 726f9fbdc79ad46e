package crypto

import (
	"crypto/sha512"

	"filippo.io/edwards25519"

	"github.com/waterscape-project/waterscape/waterscapeerr"
)

// ExchangeSecretFromSigningSeed derives an X25519 secret scalar from an
// Ed25519 signing seed via RFC 8032 §5.1.5 clamping. It lets an identity's
// long-term signing key double as its exchange key, for callers that want
// a single keypair instead of two (the CLI's "keygen --combined" mode).
func ExchangeSecretFromSigningSeed(seed SigningSeed) ExchangeSecret {
	h := sha512.Sum512(seed[:])
	h[0] &= 248
	h[31] &= 127
	h[31] |= 64

	var out ExchangeSecret
	copy(out[:], h[:32])
	return out
}

// ExchangePublicFromVerifyingKey converts an Ed25519 verifying key (an
// Edwards point) to its Montgomery-form X25519 public key.
func ExchangePublicFromVerifyingKey(verifying VerifyingKey) (ExchangePublic, error) {
	var out ExchangePublic
	p, err := new(edwards25519.Point).SetBytes(verifying[:])
	if err != nil {
		return out, waterscapeerr.Crypto("invalid verifying key: " + err.Error())
	}
	copy(out[:], p.BytesMontgomery())
	return out, nil
}
