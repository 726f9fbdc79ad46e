package agent

import (
	"encoding/hex"
	"encoding/json"
	"os"

	"github.com/waterscape-project/waterscape/crypto"
	"github.com/waterscape-project/waterscape/waterscapeerr"
)

// wireGroup is the on-disk shape of a Group, shared out of band with
// every member once the creator has derived it with NewGroup.
type wireGroup struct {
	Name    string           `json:"name"`
	Members []PublicIdentity `json:"members"`
	Key     string           `json:"key"`
}

// SaveGroup writes g to path as JSON, including its raw symmetric key.
// Treat this file as secret material: anyone who reads it can encode
// or decode for the group.
func SaveGroup(g Group, path string) error {
	w := wireGroup{Name: g.Name, Members: g.Members, Key: hex.EncodeToString(g.Key[:])}
	data, err := json.MarshalIndent(w, "", "  ")
	if err != nil {
		return waterscapeerr.Serialization(err.Error())
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return waterscapeerr.Serialization(err.Error())
	}
	return nil
}

// LoadGroup reads a group previously written by SaveGroup.
func LoadGroup(path string) (Group, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Group{}, waterscapeerr.Serialization(err.Error())
	}

	var w wireGroup
	if err := json.Unmarshal(data, &w); err != nil {
		return Group{}, waterscapeerr.Serialization("invalid group file: " + err.Error())
	}

	keyBytes, err := hex.DecodeString(w.Key)
	if err != nil || len(keyBytes) != crypto.SessionKeySize {
		return Group{}, waterscapeerr.Serialization("invalid key")
	}
	var key crypto.SessionKey
	copy(key[:], keyBytes)

	return Group{Name: w.Name, Members: w.Members, Key: key}, nil
}
