// Package channel implements the stateless encode/decode operations that
// tie together an AgentIdentity or Group, the envelope format, and the
// steganographic codec into the four high-level operations callers
// actually use: Encode, Decode, GroupEncode, GroupDecode.
package channel

import (
	"time"

	"github.com/waterscape-project/waterscape/agent"
	"github.com/waterscape-project/waterscape/crypto"
	"github.com/waterscape-project/waterscape/envelope"
	"github.com/waterscape-project/waterscape/internal/logger"
	"github.com/waterscape-project/waterscape/internal/metrics"
	"github.com/waterscape-project/waterscape/stego"
	"github.com/waterscape-project/waterscape/waterscapeerr"
)

// SessionContext is the fixed HKDF info string used to derive a
// pairwise or group session key.
const SessionContext = "waterscape-v1-encrypt"

// establishSenderSession computes the sender-side session key: DH
// between the sender's exchange secret and the recipient's exchange
// public key, then HKDF under SessionContext.
func establishSenderSession(sender *agent.AgentIdentity, recipientExchangeKey crypto.ExchangePublic) (crypto.SessionKey, error) {
	shared, err := crypto.DH(sender.ExchangeSecret, recipientExchangeKey)
	if err != nil {
		return crypto.SessionKey{}, err
	}
	defer shared.Zeroize()
	return crypto.DeriveKey(shared, []byte(SessionContext))
}

// establishReceiverSession computes the receiver-side session key from
// the envelope's embedded ephemeral key.
func establishReceiverSession(receiver *agent.AgentIdentity, ephemeralKey crypto.ExchangePublic) (crypto.SessionKey, error) {
	shared, err := crypto.DH(receiver.ExchangeSecret, ephemeralKey)
	if err != nil {
		return crypto.SessionKey{}, err
	}
	defer shared.Zeroize()
	return crypto.DeriveKey(shared, []byte(SessionContext))
}

// Encode establishes a pairwise channel from sender to recipient, builds
// and signs an envelope carrying secret, and hides it in cover.
//
// Note: the sender's exchange public key (its long-term key, not a
// fresh ephemeral) is embedded as the envelope's ephemeral_key. This is
// a deliberate, documented non-forward-secret design: two messages from
// the same sender to the same recipient share a session key.
func Encode(sender *agent.AgentIdentity, recipient agent.PublicIdentity, cover string, secret string) (carrier string, err error) {
	defer observe("encode", time.Now(), &err)

	sessionKey, err := establishSenderSession(sender, recipient.ExchangeKey)
	if err != nil {
		return "", err
	}
	defer sessionKey.Zeroize()

	return encodeWithSessionKey(sender, sender.ExchangeKey, sessionKey, nil, cover, secret)
}

// Decode parses carrier, asserts the envelope's sender_key matches
// expectedSender's verifying key (the recommended strengthening of the
// base contract), verifies the signature, establishes the pairwise
// channel from the envelope's embedded ephemeral_key, and returns the
// decrypted secret.
func Decode(receiver *agent.AgentIdentity, expectedSender agent.PublicIdentity, carrier string) (secret string, err error) {
	defer observe("decode", time.Now(), &err)

	env, err := parseEnvelopeFromCarrier(carrier)
	if err != nil {
		return "", err
	}

	if env.SenderKey != expectedSender.SigningKey {
		return "", waterscapeerr.InvalidSignature()
	}
	if err := crypto.Verify(env.SenderKey, env.Ciphertext, env.Signature); err != nil {
		return "", err
	}

	sessionKey, err := establishReceiverSession(receiver, env.EphemeralKey)
	if err != nil {
		return "", err
	}
	defer sessionKey.Zeroize()

	return decryptEnvelope(env, sessionKey)
}

// GroupEncode signs a message with sender's long-term key, encrypts it
// under group's symmetric key, embeds the all-zero ephemeral key, and
// records the group name in the inner payload's metadata.
func GroupEncode(sender *agent.AgentIdentity, group agent.Group, cover string, secret string) (carrier string, err error) {
	defer observe("group_encode", time.Now(), &err)

	var zeroEphemeral crypto.ExchangePublic
	metadata := map[string]string{"group": group.Name}
	return encodeWithSessionKey(sender, zeroEphemeral, group.Key, metadata, cover, secret)
}

// GroupDecode verifies the signature and decrypts with group's
// symmetric key. The group's member list is advisory only and is not
// consulted here.
func GroupDecode(group agent.Group, carrier string) (secret string, err error) {
	defer observe("group_decode", time.Now(), &err)

	env, err := parseEnvelopeFromCarrier(carrier)
	if err != nil {
		return "", err
	}
	if err := crypto.Verify(env.SenderKey, env.Ciphertext, env.Signature); err != nil {
		return "", err
	}
	return decryptEnvelope(env, group.Key)
}

// observe records the outcome and duration of a channel operation for
// metrics and the structured log, and is intended to run via defer with
// the error named-return's address.
func observe(operation string, start time.Time, err *error) {
	elapsed := time.Since(start)
	outcome := "ok"
	if *err != nil {
		outcome = "error"
	}
	metrics.ObserveChannelOperation(operation, outcome, elapsed.Seconds())

	fields := []logger.Field{
		logger.String("operation", operation),
		logger.String("outcome", outcome),
		logger.Duration("elapsed", elapsed),
	}
	if *err != nil {
		fields = append(fields, logger.String("code", string(waterscapeerr.CodeOf(*err))), logger.Error(*err))
		logger.ErrorMsg(operation+" failed", fields...)
		return
	}
	logger.Debug(operation+" succeeded", fields...)
}

// VisibleText returns carrier with every steganographic alphabet
// codepoint removed.
func VisibleText(carrier string) string {
	return stego.VisibleText(carrier)
}

// HasHiddenMessage reports whether carrier contains a hidden envelope.
func HasHiddenMessage(carrier string) bool {
	return stego.HasHiddenMessage(carrier)
}

func encodeWithSessionKey(
	sender *agent.AgentIdentity,
	ephemeralKey crypto.ExchangePublic,
	sessionKey crypto.SessionKey,
	metadata map[string]string,
	cover string,
	secret string,
) (string, error) {
	payload := envelope.InnerPayload{
		Content:   secret,
		Timestamp: time.Now().Unix(),
		Metadata:  metadata,
	}
	plaintext, err := payload.Serialize()
	if err != nil {
		return "", err
	}

	env, err := envelope.Build(sender.SigningSeed, sender.SigningKey, ephemeralKey, sessionKey, plaintext)
	if err != nil {
		return "", err
	}

	wire, err := env.Serialize()
	if err != nil {
		return "", err
	}
	metrics.StegoHiddenBytes.Observe(float64(len(wire)))

	return stego.HideInText(cover, stego.EncodeBytes(wire))
}

func parseEnvelopeFromCarrier(carrier string) (envelope.Envelope, error) {
	raw, err := stego.ExtractFromCarrier(carrier)
	if err != nil {
		return envelope.Envelope{}, err
	}
	metrics.StegoHiddenBytes.Observe(float64(len(raw)))
	return envelope.Parse(raw)
}

func decryptEnvelope(env envelope.Envelope, sessionKey crypto.SessionKey) (string, error) {
	plaintext, err := crypto.AEADDecrypt(sessionKey, env.Nonce, env.Ciphertext)
	if err != nil {
		if waterscapeerr.CodeOf(err) == waterscapeerr.CodeAuthenticationFailed {
			metrics.AEADFailures.Inc()
		}
		return "", err
	}
	payload, err := envelope.ParseInnerPayload(plaintext)
	if err != nil {
		return "", err
	}
	return payload.Content, nil
}
