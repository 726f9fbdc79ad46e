package channel

import (
	"crypto/rand"

	"github.com/cloudflare/circl/hpke"

	"github.com/waterscape-project/waterscape/agent"
	"github.com/waterscape-project/waterscape/crypto"
	"github.com/waterscape-project/waterscape/waterscapeerr"
)

// groupInviteSuite is the HPKE ciphersuite used to seal a group's
// symmetric key to a new member's X25519 exchange key.
var groupInviteSuite = hpke.NewSuite(
	hpke.KEM_X25519_HKDF_SHA256,
	hpke.KDF_HKDF_SHA256,
	hpke.AEAD_ChaCha20Poly1305,
)

func groupInviteInfo(groupName string) []byte {
	return []byte("waterscape-group-invite:" + groupName)
}

// HPKESealGroupInvite seals group's symmetric key to recipientExchangeKey
// using HPKE Base mode, returning a self-contained packet the recipient
// can open with HPKEOpenGroupInvite. This supplements the group model's
// "pre-shared out of band" distribution with a concrete in-repo
// mechanism; it does not change how a Group's key is derived.
func HPKESealGroupInvite(recipientExchangeKey crypto.ExchangePublic, group agent.Group) ([]byte, error) {
	kem := hpke.KEM_X25519_HKDF_SHA256.Scheme()
	recipientPub, err := kem.UnmarshalBinaryPublicKey(recipientExchangeKey[:])
	if err != nil {
		return nil, waterscapeerr.Crypto("hpke: unmarshal recipient public key: " + err.Error())
	}

	info := groupInviteInfo(group.Name)
	sender, err := groupInviteSuite.NewSender(recipientPub, info)
	if err != nil {
		return nil, waterscapeerr.Crypto("hpke: new sender: " + err.Error())
	}

	enc, sealer, err := sender.Setup(rand.Reader)
	if err != nil {
		return nil, waterscapeerr.Crypto("hpke: setup: " + err.Error())
	}

	ciphertext, err := sealer.Seal(group.Key[:], info)
	if err != nil {
		return nil, waterscapeerr.Crypto("hpke: seal: " + err.Error())
	}

	return append(append([]byte{}, enc...), ciphertext...), nil
}

// HPKEOpenGroupInvite reverses HPKESealGroupInvite: it recovers the
// group's symmetric key using recipient's exchange secret and rebuilds
// the Group value (with no member list, since membership is never part
// of the sealed material).
func HPKEOpenGroupInvite(recipient *agent.AgentIdentity, groupName string, packet []byte) (agent.Group, error) {
	kem := hpke.KEM_X25519_HKDF_SHA256.Scheme()

	const x25519EncLen = 32
	if len(packet) < x25519EncLen {
		return agent.Group{}, waterscapeerr.Decoding("group invite packet too short")
	}
	enc := packet[:x25519EncLen]
	ciphertext := packet[x25519EncLen:]

	recipientPriv, err := kem.UnmarshalBinaryPrivateKey(recipient.ExchangeSecret[:])
	if err != nil {
		return agent.Group{}, waterscapeerr.Crypto("hpke: unmarshal recipient private key: " + err.Error())
	}

	info := groupInviteInfo(groupName)
	receiver, err := groupInviteSuite.NewReceiver(recipientPriv, info)
	if err != nil {
		return agent.Group{}, waterscapeerr.Crypto("hpke: new receiver: " + err.Error())
	}

	opener, err := receiver.Setup(enc)
	if err != nil {
		return agent.Group{}, waterscapeerr.AuthenticationFailed()
	}

	plaintext, err := opener.Open(ciphertext, info)
	if err != nil {
		return agent.Group{}, waterscapeerr.AuthenticationFailed()
	}
	if len(plaintext) != crypto.SessionKeySize {
		return agent.Group{}, waterscapeerr.Decoding("invalid sealed group key length")
	}

	var key crypto.SessionKey
	copy(key[:], plaintext)
	return agent.Group{Name: groupName, Key: key}, nil
}
