// Package agent provides the identity and group values waterscape's
// channel layer builds envelopes from: a private AgentIdentity that
// owns key material, the PublicIdentity it can be shared as, and the
// symmetric Group value used for group messaging.
package agent

import (
	"encoding/hex"
	"encoding/json"

	"github.com/google/uuid"

	"github.com/waterscape-project/waterscape/crypto"
	"github.com/waterscape-project/waterscape/waterscapeerr"
)

// PublicIdentity is the public material of an agent: a name, a
// long-term Ed25519 verifying key, and a long-term X25519 exchange
// public key. It is immutable and safe to clone and share freely.
type PublicIdentity struct {
	Name        string
	SigningKey  crypto.VerifyingKey
	ExchangeKey crypto.ExchangePublic
}

type wirePublicIdentity struct {
	Name        string `json:"name"`
	SigningKey  string `json:"signing_key"`
	ExchangeKey string `json:"exchange_key"`
}

// Fingerprint renders the first 8 bytes of the signing key as lower-case
// hex, for human display only.
func (p PublicIdentity) Fingerprint() string {
	return hex.EncodeToString(p.SigningKey[:8])
}

// MarshalJSON serializes the public identity as a self-describing
// record: {name, signing_key, exchange_key}, both keys as lower-case
// hex strings.
func (p PublicIdentity) MarshalJSON() ([]byte, error) {
	w := wirePublicIdentity{
		Name:        p.Name,
		SigningKey:  hex.EncodeToString(p.SigningKey[:]),
		ExchangeKey: hex.EncodeToString(p.ExchangeKey[:]),
	}
	data, err := json.Marshal(w)
	if err != nil {
		return nil, waterscapeerr.Serialization(err.Error())
	}
	return data, nil
}

// UnmarshalJSON reverses MarshalJSON.
func (p *PublicIdentity) UnmarshalJSON(data []byte) error {
	var w wirePublicIdentity
	if err := json.Unmarshal(data, &w); err != nil {
		return waterscapeerr.Serialization("invalid public identity json: " + err.Error())
	}

	signingKey, err := hex.DecodeString(w.SigningKey)
	if err != nil || len(signingKey) != crypto.VerifyingKeySize {
		return waterscapeerr.Serialization("invalid signing_key")
	}
	exchangeKey, err := hex.DecodeString(w.ExchangeKey)
	if err != nil || len(exchangeKey) != crypto.ExchangeKeySize {
		return waterscapeerr.Serialization("invalid exchange_key")
	}

	p.Name = w.Name
	copy(p.SigningKey[:], signingKey)
	copy(p.ExchangeKey[:], exchangeKey)
	return nil
}

// AgentIdentity is a private identity: it owns a signing seed and an
// exchange secret in addition to the public material. It should be
// passed by reference; callers that no longer need it should call
// Zeroize.
type AgentIdentity struct {
	Name string

	SigningSeed    crypto.SigningSeed
	SigningKey     crypto.VerifyingKey
	ExchangeSecret crypto.ExchangeSecret
	ExchangeKey    crypto.ExchangePublic

	// instanceID is a random per-value id, exposed through InstanceID; it
	// is never serialized into any envelope or wire record, and no
	// package in this module writes it to the log.
	instanceID uuid.UUID
}

// New generates a fresh agent identity with independent signing and
// exchange keypairs.
func New(name string) (*AgentIdentity, error) {
	seed, verifying, err := crypto.GenerateSigningKeyPair()
	if err != nil {
		return nil, err
	}
	secret, public, err := crypto.GenerateExchangeKeyPair()
	if err != nil {
		return nil, err
	}
	return &AgentIdentity{
		Name:           name,
		SigningSeed:    seed,
		SigningKey:     verifying,
		ExchangeSecret: secret,
		ExchangeKey:    public,
		instanceID:     uuid.New(),
	}, nil
}

// NewCombined generates a fresh agent identity whose exchange keypair is
// derived from its signing seed instead of being independently random,
// for callers that want to manage a single keypair (the CLI's
// "keygen --combined" mode).
func NewCombined(name string) (*AgentIdentity, error) {
	seed, verifying, err := crypto.GenerateSigningKeyPair()
	if err != nil {
		return nil, err
	}
	secret := crypto.ExchangeSecretFromSigningSeed(seed)
	public, err := crypto.ExchangePublicFromSecret(secret)
	if err != nil {
		return nil, err
	}
	return &AgentIdentity{
		Name:           name,
		SigningSeed:    seed,
		SigningKey:     verifying,
		ExchangeSecret: secret,
		ExchangeKey:    public,
		instanceID:     uuid.New(),
	}, nil
}

// Public returns the shareable public identity for a.
func (a *AgentIdentity) Public() PublicIdentity {
	return PublicIdentity{Name: a.Name, SigningKey: a.SigningKey, ExchangeKey: a.ExchangeKey}
}

// InstanceID returns the agent's ambient, non-wire correlation id.
func (a *AgentIdentity) InstanceID() uuid.UUID {
	return a.instanceID
}

// Zeroize destroys the agent's secret material in place.
func (a *AgentIdentity) Zeroize() {
	a.SigningSeed.Zeroize()
	a.ExchangeSecret.Zeroize()
}
