package agent

import (
	"encoding/json"
	"os"

	"github.com/waterscape-project/waterscape/waterscapeerr"
)

// SaveRegistry writes every identity in r to path as a JSON array of
// public identities. Unlike an identity or group file, a registry holds
// no secret material, so it is written with ordinary file permissions.
func SaveRegistry(r *Registry, path string) error {
	data, err := json.MarshalIndent(r.List(), "", "  ")
	if err != nil {
		return waterscapeerr.Serialization(err.Error())
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return waterscapeerr.Serialization(err.Error())
	}
	return nil
}

// LoadRegistry reads a registry previously written by SaveRegistry. A
// missing file is treated as an empty registry rather than an error, so
// callers can unconditionally load-mutate-save across a contact's
// first "add".
func LoadRegistry(path string) (*Registry, error) {
	r := NewRegistry()

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return r, nil
	}
	if err != nil {
		return nil, waterscapeerr.Serialization(err.Error())
	}

	var identities []PublicIdentity
	if err := json.Unmarshal(data, &identities); err != nil {
		return nil, waterscapeerr.Serialization("invalid registry file: " + err.Error())
	}
	for _, identity := range identities {
		r.Register(identity)
	}
	return r, nil
}
