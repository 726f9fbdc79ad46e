package agent

import (
	"crypto/sha256"

	"github.com/waterscape-project/waterscape/crypto"
)

// Group is a symmetric messaging group: its key is a pure function of
// the creator's long-term signing seed and the group name, pre-shared
// out of band. Members is advisory metadata only — it is never
// cryptographically enforced, so decode does not consult it; anyone who
// holds Key can encode or decode for the group.
type Group struct {
	Name    string
	Members []PublicIdentity
	Key     crypto.SessionKey
}

// NewGroup derives a group's symmetric key from its creator's signing
// seed and name. Two Group values built from the identical (creator
// seed, name) pair always produce the identical key.
func NewGroup(creator *AgentIdentity, name string, members ...PublicIdentity) Group {
	h := sha256.New()
	h.Write(creator.SigningSeed[:])
	h.Write([]byte(name))
	sum := h.Sum(nil)

	var key crypto.SessionKey
	copy(key[:], sum)

	return Group{Name: name, Members: members, Key: key}
}
