// Package main provides C-compatible library exports for waterscape,
// for embedding the codec in non-Go hosts via cgo.
package main

import "C"

import (
	"encoding/hex"

	"github.com/waterscape-project/waterscape/agent"
	"github.com/waterscape-project/waterscape/channel"
	"github.com/waterscape-project/waterscape/crypto"
)

// WaterscapeVersion returns the library version.
//
//export WaterscapeVersion
func WaterscapeVersion() *C.char {
	return C.CString("1.0.0")
}

func decodeHexKey(s string, out []byte) bool {
	b, err := hex.DecodeString(s)
	if err != nil || len(b) != len(out) {
		return false
	}
	copy(out, b)
	return true
}

func identityFromHex(signingSeedHex, exchangeSecretHex string) (*agent.AgentIdentity, bool) {
	var seed crypto.SigningSeed
	var secret crypto.ExchangeSecret
	if !decodeHexKey(signingSeedHex, seed[:]) || !decodeHexKey(exchangeSecretHex, secret[:]) {
		return nil, false
	}
	public, err := crypto.ExchangePublicFromSecret(secret)
	if err != nil {
		return nil, false
	}
	return &agent.AgentIdentity{
		SigningSeed:    seed,
		SigningKey:     crypto.VerifyingKeyFromSeed(seed),
		ExchangeSecret: secret,
		ExchangeKey:    public,
	}, true
}

func publicFromHex(signingKeyHex, exchangeKeyHex string) (agent.PublicIdentity, bool) {
	var signingKey crypto.VerifyingKey
	var exchangeKey crypto.ExchangePublic
	if !decodeHexKey(signingKeyHex, signingKey[:]) || !decodeHexKey(exchangeKeyHex, exchangeKey[:]) {
		return agent.PublicIdentity{}, false
	}
	return agent.PublicIdentity{SigningKey: signingKey, ExchangeKey: exchangeKey}, true
}

// WaterscapeEncode hides secret, encrypted from sender to recipient,
// inside cover. All key arguments are lower-case hex strings. Returns
// NULL on any error.
//
//export WaterscapeEncode
func WaterscapeEncode(senderSigningSeedHex, senderExchangeSecretHex, recipientSigningKeyHex, recipientExchangeKeyHex, cover, secret *C.char) *C.char {
	sender, ok := identityFromHex(C.GoString(senderSigningSeedHex), C.GoString(senderExchangeSecretHex))
	if !ok {
		return nil
	}
	defer sender.Zeroize()

	recipient, ok := publicFromHex(C.GoString(recipientSigningKeyHex), C.GoString(recipientExchangeKeyHex))
	if !ok {
		return nil
	}

	carrier, err := channel.Encode(sender, recipient, C.GoString(cover), C.GoString(secret))
	if err != nil {
		return nil
	}
	return C.CString(carrier)
}

// WaterscapeDecode recovers the secret hidden in carrier, verifying it
// was produced by the expected sender. Returns NULL on any error,
// including failed authentication.
//
//export WaterscapeDecode
func WaterscapeDecode(receiverSigningSeedHex, receiverExchangeSecretHex, senderSigningKeyHex, senderExchangeKeyHex, carrier *C.char) *C.char {
	receiver, ok := identityFromHex(C.GoString(receiverSigningSeedHex), C.GoString(receiverExchangeSecretHex))
	if !ok {
		return nil
	}
	defer receiver.Zeroize()

	sender, ok := publicFromHex(C.GoString(senderSigningKeyHex), C.GoString(senderExchangeKeyHex))
	if !ok {
		return nil
	}

	secret, err := channel.Decode(receiver, sender, C.GoString(carrier))
	if err != nil {
		return nil
	}
	return C.CString(secret)
}

// WaterscapeHasHidden reports whether carrier contains a hidden
// waterscape envelope: 1 if so, 0 otherwise.
//
//export WaterscapeHasHidden
func WaterscapeHasHidden(carrier *C.char) C.int {
	if channel.HasHiddenMessage(C.GoString(carrier)) {
		return 1
	}
	return 0
}

// WaterscapeVisibleText returns carrier with every steganographic
// alphabet codepoint stripped, the text a human reader actually sees.
//
//export WaterscapeVisibleText
func WaterscapeVisibleText(carrier *C.char) *C.char {
	return C.CString(channel.VisibleText(C.GoString(carrier)))
}

func main() {
	// Required for buildmode=c-shared/c-archive.
}
