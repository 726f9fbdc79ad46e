// Package envelope implements the versioned wire record carrying a
// single encrypted waterscape message: nonce, sender verifying key,
// sender ephemeral exchange key, ciphertext, and a signature over the
// ciphertext. It serializes as a self-describing JSON record with
// lower-case hex string fields so it round-trips through text-only
// transports.
package envelope

import (
	"encoding/hex"
	"encoding/json"

	"github.com/waterscape-project/waterscape/crypto"
	"github.com/waterscape-project/waterscape/waterscapeerr"
)

// Version is the only envelope version this implementation recognises.
const Version uint8 = 1

// Envelope is the versioned wire record described in the package doc.
type Envelope struct {
	Version      uint8
	Nonce        crypto.Nonce
	SenderKey    crypto.VerifyingKey
	EphemeralKey crypto.ExchangePublic
	Ciphertext   []byte
	Signature    crypto.Signature
}

type wireEnvelope struct {
	Version      uint8  `json:"version"`
	Nonce        string `json:"nonce"`
	SenderKey    string `json:"sender_key"`
	EphemeralKey string `json:"ephemeral_key"`
	Ciphertext   string `json:"ciphertext"`
	Signature    string `json:"signature"`
}

// Build assembles and signs an envelope for plaintext under sessionKey.
// senderKey is the sender's long-term verifying key; ephemeralKey is the
// sender's exchange public key to embed (or the all-zero key in group
// mode).
func Build(
	senderSeed crypto.SigningSeed,
	senderKey crypto.VerifyingKey,
	ephemeralKey crypto.ExchangePublic,
	sessionKey crypto.SessionKey,
	plaintext []byte,
) (Envelope, error) {
	nonce, err := crypto.RandomNonce()
	if err != nil {
		return Envelope{}, err
	}

	ciphertext, err := crypto.AEADEncrypt(sessionKey, nonce, plaintext)
	if err != nil {
		return Envelope{}, err
	}

	sig := crypto.Sign(senderSeed, ciphertext)

	return Envelope{
		Version:      Version,
		Nonce:        nonce,
		SenderKey:    senderKey,
		EphemeralKey: ephemeralKey,
		Ciphertext:   ciphertext,
		Signature:    sig,
	}, nil
}

// Serialize renders the envelope as its canonical JSON wire form.
func (e Envelope) Serialize() ([]byte, error) {
	w := wireEnvelope{
		Version:      e.Version,
		Nonce:        hex.EncodeToString(e.Nonce[:]),
		SenderKey:    hex.EncodeToString(e.SenderKey[:]),
		EphemeralKey: hex.EncodeToString(e.EphemeralKey[:]),
		Ciphertext:   hex.EncodeToString(e.Ciphertext),
		Signature:    hex.EncodeToString(e.Signature[:]),
	}
	data, err := json.Marshal(w)
	if err != nil {
		return nil, waterscapeerr.Serialization(err.Error())
	}
	return data, nil
}

// Parse decodes the canonical JSON wire form back into an Envelope. It
// rejects any version other than 1 with VersionMismatch, and a
// signature whose decoded length isn't 64 bytes with Crypto.
func Parse(data []byte) (Envelope, error) {
	var w wireEnvelope
	if err := json.Unmarshal(data, &w); err != nil {
		return Envelope{}, waterscapeerr.Serialization("invalid envelope json: " + err.Error())
	}

	if w.Version != Version {
		return Envelope{}, waterscapeerr.VersionMismatch(Version, w.Version)
	}

	nonce, err := decodeFixed(w.Nonce, crypto.NonceSize)
	if err != nil {
		return Envelope{}, waterscapeerr.Serialization("invalid nonce: " + err.Error())
	}
	senderKey, err := decodeFixed(w.SenderKey, crypto.VerifyingKeySize)
	if err != nil {
		return Envelope{}, waterscapeerr.Serialization("invalid sender_key: " + err.Error())
	}
	ephemeralKey, err := decodeFixed(w.EphemeralKey, crypto.ExchangeKeySize)
	if err != nil {
		return Envelope{}, waterscapeerr.Serialization("invalid ephemeral_key: " + err.Error())
	}
	ciphertext, err := hex.DecodeString(w.Ciphertext)
	if err != nil {
		return Envelope{}, waterscapeerr.Serialization("invalid ciphertext: " + err.Error())
	}
	sigBytes, err := hex.DecodeString(w.Signature)
	if err != nil {
		return Envelope{}, waterscapeerr.Serialization("invalid signature: " + err.Error())
	}
	if len(sigBytes) != crypto.SignatureSize {
		return Envelope{}, waterscapeerr.Crypto("invalid signature length")
	}

	var e Envelope
	e.Version = w.Version
	copy(e.Nonce[:], nonce)
	copy(e.SenderKey[:], senderKey)
	copy(e.EphemeralKey[:], ephemeralKey)
	e.Ciphertext = ciphertext
	copy(e.Signature[:], sigBytes)
	return e, nil
}

func decodeFixed(s string, size int) ([]byte, error) {
	b, err := hex.DecodeString(s)
	if err != nil {
		return nil, err
	}
	if len(b) != size {
		return nil, waterscapeerr.Serialization("unexpected field length")
	}
	return b, nil
}
