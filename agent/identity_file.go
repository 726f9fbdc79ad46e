package agent

import (
	"encoding/hex"
	"encoding/json"
	"os"

	"github.com/google/uuid"

	"github.com/waterscape-project/waterscape/crypto"
	"github.com/waterscape-project/waterscape/waterscapeerr"
)

// wirePrivateIdentity is the on-disk shape of an AgentIdentity, written
// by the CLI's keygen command and read back by encode/decode. Secret
// material is hex-encoded, matching the envelope package's wire
// encoding convention.
type wirePrivateIdentity struct {
	Name           string `json:"name"`
	SigningSeed    string `json:"signing_seed"`
	ExchangeSecret string `json:"exchange_secret"`
}

// SaveIdentity writes a's private key material to path as JSON,
// with file permissions restricted to the owner.
func SaveIdentity(a *AgentIdentity, path string) error {
	w := wirePrivateIdentity{
		Name:           a.Name,
		SigningSeed:    hex.EncodeToString(a.SigningSeed[:]),
		ExchangeSecret: hex.EncodeToString(a.ExchangeSecret[:]),
	}
	data, err := json.MarshalIndent(w, "", "  ")
	if err != nil {
		return waterscapeerr.Serialization(err.Error())
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return waterscapeerr.Serialization(err.Error())
	}
	return nil
}

// LoadIdentity reads a private identity previously written by
// SaveIdentity, deriving the public signing key and exchange public
// key from the stored secrets.
func LoadIdentity(path string) (*AgentIdentity, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, waterscapeerr.Serialization(err.Error())
	}

	var w wirePrivateIdentity
	if err := json.Unmarshal(data, &w); err != nil {
		return nil, waterscapeerr.Serialization("invalid identity file: " + err.Error())
	}

	seedBytes, err := hex.DecodeString(w.SigningSeed)
	if err != nil || len(seedBytes) != crypto.SeedSize {
		return nil, waterscapeerr.Serialization("invalid signing_seed")
	}
	secretBytes, err := hex.DecodeString(w.ExchangeSecret)
	if err != nil || len(secretBytes) != crypto.ExchangeKeySize {
		return nil, waterscapeerr.Serialization("invalid exchange_secret")
	}

	var seed crypto.SigningSeed
	copy(seed[:], seedBytes)
	var secret crypto.ExchangeSecret
	copy(secret[:], secretBytes)

	exchangePublic, err := crypto.ExchangePublicFromSecret(secret)
	if err != nil {
		return nil, err
	}

	return &AgentIdentity{
		Name:           w.Name,
		SigningSeed:    seed,
		SigningKey:     crypto.VerifyingKeyFromSeed(seed),
		ExchangeSecret: secret,
		ExchangeKey:    exchangePublic,
		instanceID:     uuid.New(),
	}, nil
}
